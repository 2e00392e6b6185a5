package main

import (
	"context"
	"fmt"
	"image"

	"github.com/jtejido/sourceafis"
	sfconfig "github.com/jtejido/sourceafis/config"

	"github.com/ChocolateLoverRaj/libfprint-cros/config"
	"github.com/ChocolateLoverRaj/libfprint-cros/imgio"
)

type TransparencyContents struct {
}

func (c *TransparencyContents) Accepts(key string) bool {
	return true
}

func (c *TransparencyContents) Accept(key, mime string, data []byte) error {
	return nil
}

// initEngine applies the daemon configuration to the sourceafis
// engine. Call once before scoring.
func initEngine() {
	sfconfig.LoadDefaultConfig()
	sfconfig.Config.Workers = config.Config.Workers
}

// matchScore extracts templates from both captures and returns their
// sourceafis similarity score.
func matchScore(ctx context.Context, probe, candidate *image.Gray) (float64, error) {
	probeImg, err := imgio.ToSourceAFIS(probe)
	if err != nil {
		return 0, fmt.Errorf("failed to load probe image: %w", err)
	}

	l := sourceafis.NewTransparencyLogger(new(TransparencyContents))
	tc := sourceafis.NewTemplateCreator(l)
	probeTpl, err := tc.Template(probeImg)
	if err != nil {
		return 0, fmt.Errorf("failed to create template for probe image: %w", err)
	}

	candidateImg, err := imgio.ToSourceAFIS(candidate)
	if err != nil {
		return 0, fmt.Errorf("failed to load candidate image: %w", err)
	}
	candidateTpl, err := tc.Template(candidateImg)
	if err != nil {
		return 0, fmt.Errorf("failed to create template for candidate image: %w", err)
	}

	matcher, err := sourceafis.NewMatcher(l, probeTpl)
	if err != nil {
		return 0, fmt.Errorf("failed to create matcher: %w", err)
	}

	return matcher.Match(ctx, candidateTpl), nil
}

// usableCapture extracts a template from the capture and throws it
// away, proving the image is sharp enough to enroll.
func usableCapture(gray *image.Gray) error {
	img, err := imgio.ToSourceAFIS(gray)
	if err != nil {
		return err
	}
	l := sourceafis.NewTransparencyLogger(new(TransparencyContents))
	if _, err := sourceafis.NewTemplateCreator(l).Template(img); err != nil {
		return err
	}
	return nil
}
