package fprint

import (
	"fmt"
	"math"
	"time"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/exp/slices"
)

// A serialized print is the 3-byte "FP3" magic followed by one CBOR
// envelope. The envelope is a fixed-arity array, so field order and
// count are part of the format; the payload slot is interpreted
// through the type field. Encoding is deterministic: serializing the
// same record twice yields identical bytes.

const (
	containerMagic = "FP3"
	cborNull       = 0xf6

	// Julian days count from 0001-01-01 as day 1. julianAbsent marks
	// a print without an enrollment date.
	julianAbsent    = math.MinInt32
	unixEpochJulian = 719163 // 1970-01-01
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{Sort: cbor.SortCanonical}.EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
}

// wireEnvelope is the envelope tuple. Reserved is a forward
// compatibility slot: always written empty, read and ignored.
type wireEnvelope struct {
	_            struct{} `cbor:",toarray"`
	Type         int32
	Driver       string
	DeviceID     string
	DeviceStored bool
	Finger       uint8
	Username     *string
	Description  *string
	EnrollDate   int32
	Reserved     map[string]cbor.RawMessage
	Payload      cbor.RawMessage
}

// wireTemplate is one xyt table on the wire: three equal-length
// columns of packed little-endian int32, the row count implied by
// their length.
type wireTemplate struct {
	_     struct{} `cbor:",toarray"`
	X     []byte
	Y     []byte
	Theta []byte
}

// Serialize encodes the print into its portable container. The
// retained image is not part of the format and is dropped. The print
// type must have been set, otherwise ErrTypeNotSet.
func (p *Print) Serialize() ([]byte, error) {
	if p.printType == TypeUndefined {
		return nil, ErrTypeNotSet
	}

	payload := cbor.RawMessage{cborNull}
	switch p.printType {
	case TypeNbis:
		wts := make([]wireTemplate, len(p.templates))
		for i, t := range p.templates {
			wts[i] = wireTemplate{
				X:     colToWire(t.X),
				Y:     colToWire(t.Y),
				Theta: colToWire(t.Theta),
			}
		}
		b, err := encMode.Marshal(wts)
		if err != nil {
			return nil, fmt.Errorf("encode templates: %w", err)
		}
		payload = b
	case TypeRaw:
		if len(p.rawData) > 0 {
			payload = p.rawData
		}
	}

	env := wireEnvelope{
		Type:         int32(p.printType),
		Driver:       p.driver,
		DeviceID:     p.deviceID,
		DeviceStored: p.deviceStored,
		Finger:       uint8(p.finger),
		Username:     optString(p.username),
		Description:  optString(p.description),
		EnrollDate:   julianOf(p.enrollDate),
		Reserved:     map[string]cbor.RawMessage{},
		Payload:      payload,
	}
	body, err := encMode.Marshal(&env)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}

	out := make([]byte, 0, len(containerMagic)+len(body))
	out = append(out, containerMagic...)
	return append(out, body...), nil
}

// Deserialize parses a container produced by Serialize. Rejected data
// always yields an error unwrapping to ErrInvalidFormat; the concrete
// cause says what was wrong.
func Deserialize(data []byte) (*Print, error) {
	if len(data) <= len(containerMagic) || string(data[:len(containerMagic)]) != containerMagic {
		return nil, ErrBadMagic
	}

	var env wireEnvelope
	if err := decMode.Unmarshal(data[len(containerMagic):], &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}

	p := New(env.Driver, env.DeviceID)
	switch Type(env.Type) {
	case TypeNbis:
		var wts []wireTemplate
		if err := decMode.Unmarshal(env.Payload, &wts); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
		}
		templates := make([]*Template, 0, len(wts))
		for _, wt := range wts {
			t, err := templateFromWire(wt)
			if err != nil {
				return nil, err
			}
			templates = append(templates, t)
		}
		p.printType = TypeNbis
		p.templates = templates
	case TypeRaw:
		p.printType = TypeRaw
		p.rawData = slices.Clone(env.Payload)
	default:
		return nil, ErrUnknownType
	}

	p.deviceStored = env.DeviceStored
	p.finger = Finger(env.Finger)
	if env.Username != nil {
		p.username = *env.Username
	}
	if env.Description != nil {
		p.description = *env.Description
	}
	if d, ok := dateOfJulian(env.EnrollDate); ok {
		p.enrollDate = d
	}
	return p, nil
}

func templateFromWire(wt wireTemplate) (*Template, error) {
	x, err := colFromWire(wt.X)
	if err != nil {
		return nil, err
	}
	y, err := colFromWire(wt.Y)
	if err != nil {
		return nil, err
	}
	theta, err := colFromWire(wt.Theta)
	if err != nil {
		return nil, err
	}
	if len(x) != len(y) || len(x) != len(theta) {
		return nil, ErrColumnMismatch
	}
	if len(x) > MaxTemplateRows {
		return nil, ErrTemplateTooBig
	}
	return &Template{X: x, Y: y, Theta: theta}, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func julianOf(t time.Time) int32 {
	if t.IsZero() {
		return julianAbsent
	}
	y, m, d := t.Date()
	days := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	return int32(days + unixEpochJulian)
}

// dateOfJulian turns a wire date back into a time. The absent
// sentinel and non-positive values mean no date was recorded.
func dateOfJulian(j int32) (time.Time, bool) {
	if j <= 0 {
		return time.Time{}, false
	}
	return time.Unix((int64(j)-unixEpochJulian)*86400, 0).UTC(), true
}
