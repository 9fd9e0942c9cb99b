package moderation

import "fmt"

type Recommendation int

const (
	RecommendationAppropriate Recommendation = iota
	RecommendationNeedsReview
	RecommendationInappropriate
)

func (r Recommendation) String() string {
	switch r {
	case RecommendationAppropriate:
		return "APPROPRIATE"
	case RecommendationNeedsReview:
		return "NEEDS_REVIEW"
	case RecommendationInappropriate:
		return "INAPPROPRIATE"
	default:
		return fmt.Sprintf("Recommendation(%d)", int(r))
	}
}

func (r Recommendation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Recommendation) UnmarshalText(text []byte) error {
	for _, candidate := range []Recommendation{
		RecommendationAppropriate,
		RecommendationNeedsReview,
		RecommendationInappropriate,
	} {
		if candidate.String() == string(text) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown recommendation %q", text)
}

// Recommend derives the recommendation from appropriateness and flags. It is
// the only place a Recommendation is computed.
func Recommend(isAppropriate bool, flags []string) Recommendation {
	switch {
	case !isAppropriate:
		return RecommendationInappropriate
	case len(flags) > 0:
		return RecommendationNeedsReview
	default:
		return RecommendationAppropriate
	}
}
