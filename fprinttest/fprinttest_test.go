package fprinttest

import (
	"testing"

	fprint "github.com/ChocolateLoverRaj/libfprint-cros"
)

func TestNewNbisPrintDeterministic(t *testing.T) {
	a := NewNbisPrint(t, "synaptics", "0852", 1, 2)
	b := NewNbisPrint(t, "synaptics", "0852", 1, 2)
	if eq, err := a.Equal(b); err != nil || !eq {
		t.Fatalf("same seeds differ: eq=%v err=%v", eq, err)
	}

	c := NewNbisPrint(t, "synaptics", "0852", 1, 3)
	if eq, _ := a.Equal(c); eq {
		t.Fatalf("different seeds compare equal")
	}
	if len(a.Templates()) != 2 {
		t.Fatalf("templates = %d, want 2", len(a.Templates()))
	}
}

func TestNewRawPrint(t *testing.T) {
	p := NewRawPrint(t, "upekts", "00", []byte{1, 2})
	if p.Type() != fprint.TypeRaw || len(p.RawData()) == 0 {
		t.Fatalf("raw print not populated: type=%v", p.Type())
	}
	if q := NewRawPrint(t, "upekts", "00", nil); q.RawData() != nil {
		t.Fatalf("nil payload produced raw data")
	}
}

func TestConstScorerDrivesMatch(t *testing.T) {
	gallery := NewNbisPrint(t, "synaptics", "0852", 1, 2, 3)
	probe := NewNbisPrint(t, "synaptics", "0852", 9)

	res, err := fprint.BZ3Match(ConstScorer(50), gallery, probe, 40)
	if err != nil || res != fprint.MatchSuccess {
		t.Fatalf("high score: res=%v err=%v", res, err)
	}
	res, err = fprint.BZ3Match(ConstScorer(10), gallery, probe, 40)
	if err != nil || res != fprint.MatchFail {
		t.Fatalf("low score: res=%v err=%v", res, err)
	}
}
