package fprint

import "fmt"

// Scorer computes similarity scores between xyt templates.
// Implementations wrap a point-pattern engine such as NBIS bozorth3;
// this package never scores anything itself.
type Scorer interface {
	// InitProbe prepares a probe template for repeated comparisons
	// against gallery templates.
	InitProbe(probe *Template) (Probe, error)
}

// Probe is a probe template prepared by a Scorer.
type Probe interface {
	// Score returns the integer similarity between the prepared probe
	// and one gallery template. Higher means more similar.
	Score(gallery *Template) int
}

// MatchResult is the verdict of BZ3Match.
type MatchResult int

const (
	// MatchError means the comparison itself could not be carried out.
	MatchError MatchResult = -1
	// MatchFail means no gallery template reached the threshold.
	MatchFail MatchResult = 0
	// MatchSuccess means some gallery template reached the threshold.
	MatchSuccess MatchResult = 1
)

func (r MatchResult) String() string {
	switch r {
	case MatchError:
		return "error"
	case MatchFail:
		return "fail"
	case MatchSuccess:
		return "success"
	}
	return "invalid"
}

// BZ3Match scores the single template of probe against every template
// enrolled in gallery, in stored order, and reports MatchSuccess as
// soon as one score reaches threshold. The threshold is inclusive. A
// gallery that never reaches it, including an empty one, yields
// MatchFail. Both prints must be NBIS typed and the probe must hold
// exactly one template; violations yield MatchError with an error
// unwrapping to ErrMatch.
func BZ3Match(scorer Scorer, gallery, probe *Print, threshold int) (MatchResult, error) {
	if gallery.printType != TypeNbis || probe.printType != TypeNbis {
		return MatchError, ErrMatchTypes
	}
	if len(probe.templates) != 1 {
		return MatchError, ErrMatchProbe
	}

	pb, err := scorer.InitProbe(probe.templates[0])
	if err != nil {
		return MatchError, fmt.Errorf("%w: init probe: %v", ErrMatch, err)
	}
	for _, gt := range gallery.templates {
		if pb.Score(gt) >= threshold {
			return MatchSuccess, nil
		}
	}
	return MatchFail, nil
}
