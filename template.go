package fprint

import (
	"cmp"
	"math"

	"golang.org/x/exp/slices"
)

// MaxTemplateRows is the xyt table capacity of the bozorth3 matcher.
// Conversion keeps the first MaxTemplateRows minutiae in detection
// order and drops the rest.
const MaxTemplateRows = 200

// Template is one minutiae table in the NIST xyt form point-pattern
// matchers consume: parallel x, y and theta columns, rows sorted
// ascending by x and then y, theta in (-180, 180].
//
// Quality holds the scaled detection reliability of each row. It is
// filled by the converter but never persisted, so it takes no part in
// template equality.
type Template struct {
	X, Y, Theta []int32
	Quality     []int32
}

type xytRow struct {
	x, y, theta, quality int32
}

// NewTemplate converts detected minutiae into an xyt template. geom
// maps each minutia into NIST image coordinates; nil means the
// minutiae already use that convention. Returns ErrNoMinutiae when
// the input is empty.
func NewTemplate(minutiae []Minutia, width, height int, geom GeometryFunc) (*Template, error) {
	if len(minutiae) == 0 {
		return nil, ErrNoMinutiae
	}
	if geom == nil {
		geom = NISTGeometry
	}

	n := len(minutiae)
	if n > MaxTemplateRows {
		// Keep the first rows as detected, not the most reliable ones.
		n = MaxTemplateRows
	}

	rows := make([]xytRow, n)
	for i, m := range minutiae[:n] {
		x, y, theta := geom(m, width, height)
		if theta > 180 {
			theta -= 360
		}
		rows[i] = xytRow{
			x:       x,
			y:       y,
			theta:   theta,
			quality: int32(math.Round(m.Reliability * 100)),
		}
	}
	slices.SortFunc(rows, func(a, b xytRow) int {
		if c := cmp.Compare(a.x, b.x); c != 0 {
			return c
		}
		return cmp.Compare(a.y, b.y)
	})

	t := &Template{
		X:       make([]int32, n),
		Y:       make([]int32, n),
		Theta:   make([]int32, n),
		Quality: make([]int32, n),
	}
	for i, r := range rows {
		t.X[i] = r.x
		t.Y[i] = r.y
		t.Theta[i] = r.theta
		t.Quality[i] = r.quality
	}
	return t, nil
}

// Rows returns the number of minutiae rows in the template.
func (t *Template) Rows() int {
	return len(t.X)
}

// Clone returns a deep copy.
func (t *Template) Clone() *Template {
	return &Template{
		X:       slices.Clone(t.X),
		Y:       slices.Clone(t.Y),
		Theta:   slices.Clone(t.Theta),
		Quality: slices.Clone(t.Quality),
	}
}

// Equal compares the persisted columns row for row in stored order.
func (t *Template) Equal(other *Template) bool {
	if t == nil || other == nil {
		return t == other
	}
	return slices.Equal(t.X, other.X) &&
		slices.Equal(t.Y, other.Y) &&
		slices.Equal(t.Theta, other.Theta)
}
