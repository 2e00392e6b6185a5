// Package fprinttest provides canned prints, images and a fixed-score
// scorer for testing code that handles fingerprint prints without a
// real detection or matching engine behind it.
package fprinttest

import (
	"testing"

	fprint "github.com/ChocolateLoverRaj/libfprint-cros"
)

// NewImage returns an image carrying count deterministic minutiae.
// Different seeds give different minutiae, so templates built from
// them compare unequal.
func NewImage(seed, count int) *fprint.Image {
	minutiae := make([]fprint.Minutia, count)
	for i := range minutiae {
		minutiae[i] = fprint.Minutia{
			X:           int32((seed*37 + i*11) % 256),
			Y:           int32((seed*17 + i*29) % 288),
			Theta:       int32((seed*23 + i*41) % 360),
			Reliability: 0.5,
		}
	}
	return &fprint.Image{Width: 256, Height: 288, Minutiae: minutiae}
}

// NewNbisPrint returns an NBIS print holding one template per seed.
func NewNbisPrint(tb testing.TB, driver, deviceID string, seeds ...int) *fprint.Print {
	tb.Helper()
	p := fprint.New(driver, deviceID)
	if err := p.SetType(fprint.TypeNbis); err != nil {
		tb.Fatalf("SetType: %v", err)
	}
	for _, seed := range seeds {
		if err := p.AddFromImage(NewImage(seed, 12)); err != nil {
			tb.Fatalf("AddFromImage: %v", err)
		}
	}
	return p
}

// NewRawPrint returns a raw print with the given payload. A nil
// payload leaves the print without one.
func NewRawPrint(tb testing.TB, driver, deviceID string, payload any) *fprint.Print {
	tb.Helper()
	p := fprint.New(driver, deviceID)
	if err := p.SetType(fprint.TypeRaw); err != nil {
		tb.Fatalf("SetType: %v", err)
	}
	if payload != nil {
		if err := p.SetRawData(payload); err != nil {
			tb.Fatalf("SetRawData: %v", err)
		}
	}
	return p
}

// ConstScorer scores every gallery template with the same value.
type ConstScorer int

func (s ConstScorer) InitProbe(*fprint.Template) (fprint.Probe, error) {
	return constProbe(s), nil
}

type constProbe int

func (p constProbe) Score(*fprint.Template) int { return int(p) }
