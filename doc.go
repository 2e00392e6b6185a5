// Package fprint models portable fingerprint enrollment data: prints
// carrying NBIS-style minutiae templates or opaque driver payloads, a
// stable binary container for moving prints between hosts, and the
// bridge for scoring one probe print against enrolled gallery prints.
//
// Minutiae detection and template scoring are external engines; the
// package consumes them through the GeometryFunc and Scorer types.
package fprint
