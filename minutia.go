package fprint

import "math"

// Minutia is one ridge feature reported by a detector: its position,
// its orientation and how confident the detector was in it. Position
// and orientation are in whatever space the detector works in; the
// GeometryFunc handed to NewTemplate maps them into NIST image
// coordinates.
type Minutia struct {
	X, Y int32
	// Theta is the orientation in the unit system the geometry
	// function expects. NISTGeometry reads it as degrees in [0, 360).
	Theta int32
	// Reliability is the detection confidence in [0, 1].
	Reliability float64
}

// GeometryFunc projects one minutia into NIST image coordinates:
// x and y in pixels with the origin at the bottom-left, theta in
// counter-clockwise degrees in [0, 360). width and height are the
// dimensions of the image the minutia was detected on.
type GeometryFunc func(m Minutia, width, height int) (x, y, theta int32)

// NISTGeometry passes minutiae through unchanged, for detectors that
// already report NIST image coordinates.
func NISTGeometry(m Minutia, _, _ int) (int32, int32, int32) {
	return m.X, m.Y, m.Theta
}

// LFSGeometry maps LFS skeleton output into NIST image coordinates:
// the y axis is flipped to a bottom-left origin and the integer
// direction units of 11.25 degrees become counter-clockwise degrees.
func LFSGeometry(m Minutia, _, height int) (int32, int32, int32) {
	theta := (270 - int32(math.Round(float64(m.Theta)*11.25))) % 360
	if theta < 0 {
		theta += 360
	}
	return m.X, int32(height) - 1 - m.Y, theta
}
