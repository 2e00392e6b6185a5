package main

import (
	"encoding/base64"
	"image"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ChocolateLoverRaj/libfprint-cros/imgio"
)

// decodeCapture turns a base64 or data-URL capture into 8-bit gray.
// Any format registered by imgio is accepted.
func decodeCapture(b64 string) (*image.Gray, error) {
	if strings.HasPrefix(b64, "data:") {
		parts := strings.SplitN(b64, ",", 2)
		if len(parts) != 2 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid base64 image format")
		}
		b64 = parts[1]
	}

	decoded, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Failed to decode base64: "+err.Error())
	}

	gray, err := imgio.DecodeGray(decoded)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnsupportedMediaType, "Unsupported image type: "+err.Error())
	}
	return gray, nil
}
