package imgio

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestToGray(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	src.Set(1, 0, color.RGBA{A: 255})

	gray := ToGray(src)
	if gray.GrayAt(0, 0).Y != 255 || gray.GrayAt(1, 0).Y != 0 {
		t.Fatalf("gray values = %d, %d", gray.GrayAt(0, 0).Y, gray.GrayAt(1, 0).Y)
	}

	// Already-gray input passes through.
	if ToGray(gray) != gray {
		t.Fatalf("gray input was copied")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 40)
	}

	data, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	got, err := DecodeGray(data)
	if err != nil {
		t.Fatalf("DecodeGray: %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), src.Bounds())
	}
	for i := range src.Pix {
		if got.Pix[i] != src.Pix[i] {
			t.Fatalf("pixel %d = %d, want %d", i, got.Pix[i], src.Pix[i])
		}
	}
}

// The netpbm import registers PGM, the format raw scanner captures
// usually arrive in.
func TestDecodeGrayPGM(t *testing.T) {
	pgm := append([]byte("P5\n2 2\n255\n"), 0, 85, 170, 255)
	gray, err := DecodeGray(pgm)
	if err != nil {
		t.Fatalf("DecodeGray: %v", err)
	}
	if b := gray.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 2x2", b)
	}
	if gray.GrayAt(0, 0).Y != 0 || gray.GrayAt(1, 1).Y != 255 {
		t.Fatalf("pixels = %d, %d", gray.GrayAt(0, 0).Y, gray.GrayAt(1, 1).Y)
	}
}

// The wsq decoder does not register itself; the package init does.
func TestDecodeGrayWSQRegistered(t *testing.T) {
	_, err := DecodeGray([]byte{0xff, 0xa0})
	if err == nil {
		t.Fatalf("truncated wsq frame decoded")
	}
	if errors.Is(err, image.ErrFormat) {
		t.Fatalf("wsq frames are not recognized: %v", err)
	}
}

func TestDecodeGrayRejectsGarbage(t *testing.T) {
	if _, err := DecodeGray([]byte("not an image")); err == nil {
		t.Fatalf("garbage decoded without error")
	}
}
