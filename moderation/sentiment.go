package moderation

import "math"

// SentimentVerdict is the bucket a sentiment reading falls into.
type SentimentVerdict struct {
	IsPositive bool
	Reasons    []ReasonCode
}

type sentimentRule struct {
	matches  func(score, magnitude float64) bool
	positive bool
	reason   ReasonCode
}

// sentimentRules is evaluated top to bottom and the first match wins. The
// ranges overlap, so the order is part of the rule set. The last rule always
// matches.
var sentimentRules = []sentimentRule{
	{
		// Mixed: neutral score carried by high magnitude.
		matches:  func(score, magnitude float64) bool { return math.Abs(score) < 0.2 && magnitude >= 3.0 },
		positive: false,
		reason:   ReasonStrongLanguage,
	},
	{
		matches:  func(score, magnitude float64) bool { return score <= -0.5 && magnitude >= 3.0 },
		positive: false,
		reason:   ReasonVeryNegative,
	},
	{
		matches:  func(score, magnitude float64) bool { return score >= 0.5 && magnitude >= 3.0 },
		positive: true,
		reason:   ReasonGeneralAppropriate,
	},
	{
		// Flat.
		matches:  func(score, magnitude float64) bool { return math.Abs(score) < 0.2 && magnitude < 1.0 },
		positive: true,
		reason:   ReasonGeneralAppropriate,
	},
	{
		matches:  func(score, _ float64) bool { return score < -0.2 },
		positive: false,
		reason:   ReasonInappropriateLanguage,
	},
	{
		matches:  func(_, _ float64) bool { return true },
		positive: true,
		reason:   ReasonGeneralAppropriate,
	},
}

// ClassifySentiment buckets a sentiment reading. Every input, NaN included,
// lands in exactly one bucket.
func ClassifySentiment(s Sentiment) SentimentVerdict {
	for _, rule := range sentimentRules {
		if rule.matches(s.Score, s.Magnitude) {
			return SentimentVerdict{
				IsPositive: rule.positive,
				Reasons:    []ReasonCode{rule.reason},
			}
		}
	}

	// unreachable, the final rule matches everything
	return SentimentVerdict{IsPositive: true, Reasons: []ReasonCode{ReasonGeneralAppropriate}}
}

// Check converts the sentiment bucket into a partial verdict.
func (v SentimentVerdict) Check() Check {
	result := newCheck()
	result.IsAppropriate = v.IsPositive
	result.Reasons = append(result.Reasons, v.Reasons...)
	return result
}
