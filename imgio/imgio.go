// Package imgio decodes fingerprint captures into the 8-bit gray form
// the matching engines consume. Importing it makes DecodeGray accept
// png, jpeg, netpbm and wsq captures: the first three register
// themselves with the image package; the wsq format is registered here
// around go-wsq's Decode.
package imgio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/jtejido/go-wsq"
	"github.com/jtejido/sourceafis"
	_ "github.com/spakin/netpbm"
)

// WSQ frames open with the SOI_WSQ marker.
func init() {
	image.RegisterFormat("wsq", "\xff\xa0", wsq.Decode, wsqDecodeConfig)
}

// wsqDecodeConfig decodes the whole frame to report its bounds;
// go-wsq has no header-only parse.
func wsqDecodeConfig(r io.Reader) (image.Config, error) {
	img, err := wsq.Decode(r)
	if err != nil {
		return image.Config{}, err
	}
	b := img.Bounds()
	return image.Config{ColorModel: img.ColorModel(), Width: b.Dx(), Height: b.Dy()}, nil
}

// DecodeGray decodes a capture in any registered format.
func DecodeGray(data []byte) (*image.Gray, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode capture: %w", err)
	}
	return ToGray(img), nil
}

// ToGray converts an image to 8-bit gray, returning the input
// unchanged when it already is one.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// ToSourceAFIS hands a capture to the sourceafis engine.
func ToSourceAFIS(img image.Image) (*sourceafis.Image, error) {
	return sourceafis.NewFromGray(ToGray(img))
}

// EncodePNG renders a gray capture as PNG, the canonical form stored
// in raw print payloads.
func EncodePNG(g *image.Gray) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, g); err != nil {
		return nil, fmt.Errorf("encode capture: %w", err)
	}
	return buf.Bytes(), nil
}
