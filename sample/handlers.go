package main

import (
	"encoding/base64"
	"errors"
	"image"
	"log"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/gofiber/fiber/v2"

	fprint "github.com/ChocolateLoverRaj/libfprint-cros"
	"github.com/ChocolateLoverRaj/libfprint-cros/config"
	"github.com/ChocolateLoverRaj/libfprint-cros/imgio"
	"github.com/ChocolateLoverRaj/libfprint-cros/store"
)

// Prints enrolled through this daemon are bound to the software
// engine rather than a hardware device.
const (
	engineDriver   = "sourceafis"
	engineDeviceID = "builtin"
)

type server struct {
	store store.Store
}

func newServer(st store.Store) *server {
	initEngine()
	return &server{store: st}
}

func (s *server) enroll(c *fiber.Ctx) error {
	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.Username == "" || req.Image == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Both username and image are required")
	}
	finger := fprint.Finger(req.Finger)
	if req.Finger < 0 || req.Finger > 255 || !finger.IsValid() {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown finger")
	}

	gray, err := decodeCapture(req.Image)
	if err != nil {
		return err
	}
	// Prove the capture is usable before storing anything.
	if err := usableCapture(gray); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Capture unusable: "+err.Error())
	}

	payload, err := imgio.EncodePNG(gray)
	if err != nil {
		return err
	}

	p := fprint.New(engineDriver, engineDeviceID)
	if err := p.SetType(fprint.TypeRaw); err != nil {
		return err
	}
	if err := p.SetRawData(payload); err != nil {
		return err
	}
	p.SetUsername(req.Username)
	p.SetFinger(finger)
	p.SetDescription(req.Description)
	p.SetEnrollDate(time.Now())

	id, err := s.store.Save(c.Context(), p)
	if err != nil {
		return err
	}
	log.Println("Enrolled print", id, "for user", req.Username)
	return c.Status(fiber.StatusCreated).JSON(EnrollResponse{ID: id})
}

func (s *server) verify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.ID == "" || req.Image == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Both id and image are required")
	}

	enrolled, err := s.store.Get(c.Context(), req.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Print not found")
		}
		return err
	}
	enrolledGray, err := capturedPayload(enrolled)
	if err != nil {
		return err
	}

	gray, err := decodeCapture(req.Image)
	if err != nil {
		return err
	}
	score, err := matchScore(c.Context(), gray, enrolledGray)
	if err != nil {
		return err
	}
	log.Println("Verify", req.ID, "score:", score)
	return c.JSON(VerifyResponse{
		Match: score >= config.Config.MatchThreshold,
		Score: score,
	})
}

func (s *server) identify(c *fiber.Ctx) error {
	var req IdentifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.Username == "" || req.Image == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Both username and image are required")
	}

	gray, err := decodeCapture(req.Image)
	if err != nil {
		return err
	}
	entries, err := s.store.List(c.Context(), req.Username)
	if err != nil {
		return err
	}

	// Score stored prints in order and stop at the first one that
	// reaches the threshold.
	for _, e := range entries {
		enrolled, err := s.store.Get(c.Context(), e.ID)
		if err != nil {
			return err
		}
		enrolledGray, err := capturedPayload(enrolled)
		if err != nil {
			log.Println("Skipping print", e.ID, "during identify:", err)
			continue
		}
		score, err := matchScore(c.Context(), gray, enrolledGray)
		if err != nil {
			return err
		}
		if score >= config.Config.MatchThreshold {
			return c.JSON(IdentifyResponse{
				Match:  true,
				ID:     e.ID,
				Finger: e.Finger.String(),
				Score:  score,
			})
		}
	}
	return c.JSON(IdentifyResponse{Match: false})
}

func (s *server) compare(c *fiber.Ctx) error {
	start := time.Now()

	var req CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.ProbeImage == "" || req.CandidateImage == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Both probe_image and candidate_image are required")
	}

	probe, err := decodeCapture(req.ProbeImage)
	if err != nil {
		return err
	}
	candidate, err := decodeCapture(req.CandidateImage)
	if err != nil {
		return err
	}

	score, err := matchScore(c.Context(), probe, candidate)
	if err != nil {
		return err
	}
	log.Println("Fingerprint comparison score:", score)
	return c.JSON(CompareResponse{
		Score:   score,
		Match:   score >= config.Config.MatchThreshold,
		Elapsed: time.Since(start).String(),
	})
}

func (s *server) listPrints(c *fiber.Ctx) error {
	entries, err := s.store.List(c.Context(), c.Query("username"))
	if err != nil {
		return err
	}
	out := make([]PrintSummary, len(entries))
	for i, e := range entries {
		out[i] = PrintSummary{
			ID:        e.ID,
			Username:  e.Username,
			Finger:    e.Finger.String(),
			Driver:    e.Driver,
			DeviceID:  e.DeviceID,
			CreatedAt: e.CreatedAt,
		}
	}
	return c.JSON(out)
}

func (s *server) exportPrint(c *fiber.Ctx) error {
	p, err := s.store.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Print not found")
		}
		return err
	}
	data, err := p.Serialize()
	if err != nil {
		return err
	}
	return c.JSON(ExportResponse{Data: base64.StdEncoding.EncodeToString(data)})
}

func (s *server) importPrint(c *fiber.Ctx) error {
	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to decode base64: "+err.Error())
	}
	p, err := fprint.Deserialize(data)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	id, err := s.store.Save(c.Context(), p)
	if err != nil {
		return err
	}
	log.Println("Imported print", id)
	return c.Status(fiber.StatusCreated).JSON(EnrollResponse{ID: id})
}

func (s *server) deletePrint(c *fiber.Ctx) error {
	if err := s.store.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Print not found")
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// capturedPayload unpacks the capture stored in a raw print enrolled
// by this daemon.
func capturedPayload(p *fprint.Print) (*image.Gray, error) {
	if p.Type() != fprint.TypeRaw || !p.Compatible(engineDriver, engineDeviceID) {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
			"Print was not enrolled by this daemon")
	}
	var png []byte
	if err := cbor.Unmarshal(p.RawData(), &png); err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
			"Print payload is not a stored capture")
	}
	gray, err := imgio.DecodeGray(png)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
			"Stored capture unreadable: "+err.Error())
	}
	return gray, nil
}
