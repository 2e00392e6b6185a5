package fprint

import "image"

// Image is one captured fingerprint frame together with the minutiae a
// detector found on it. Detection happens outside this package; an
// Image only carries the result around so Print.AddFromImage can turn
// it into a template.
//
// Images are never serialized. A print retains at most the last image
// it was fed, for debugging.
type Image struct {
	Width, Height int

	// Pixels is the raw capture. Optional; template conversion only
	// needs the minutiae.
	Pixels *image.Gray

	// Minutiae in the space Geometry understands.
	Minutiae []Minutia

	// Geometry maps Minutiae into NIST image coordinates. Nil means
	// they already are (NISTGeometry).
	Geometry GeometryFunc
}
