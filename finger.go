package fprint

// Finger identifies which finger a print belongs to. The zero value
// means the finger was never recorded.
type Finger uint8

const (
	FingerUnknown Finger = iota
	FingerLeftThumb
	FingerLeftIndex
	FingerLeftMiddle
	FingerLeftRing
	FingerLeftLittle
	FingerRightThumb
	FingerRightIndex
	FingerRightMiddle
	FingerRightRing
	FingerRightLittle
)

// IsValid reports whether f is one of the named fingers or unknown.
// Deserialized prints may carry values outside this range; they are
// kept as-is.
func (f Finger) IsValid() bool {
	return f <= FingerRightLittle
}

func (f Finger) String() string {
	switch f {
	case FingerUnknown:
		return "unknown"
	case FingerLeftThumb:
		return "left-thumb"
	case FingerLeftIndex:
		return "left-index"
	case FingerLeftMiddle:
		return "left-middle"
	case FingerLeftRing:
		return "left-ring"
	case FingerLeftLittle:
		return "left-little"
	case FingerRightThumb:
		return "right-thumb"
	case FingerRightIndex:
		return "right-index"
	case FingerRightMiddle:
		return "right-middle"
	case FingerRightRing:
		return "right-ring"
	case FingerRightLittle:
		return "right-little"
	}
	return "invalid"
}
