package moderation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifySentiment(t *testing.T) {
	for _, tc := range []struct {
		name     string
		in       Sentiment
		positive bool
		reason   ReasonCode
	}{
		{"mixed heated", Sentiment{Score: 0.1, Magnitude: 3.0}, false, ReasonStrongLanguage},
		{"mixed heated negative edge", Sentiment{Score: -0.19, Magnitude: 8}, false, ReasonStrongLanguage},
		{"very negative", Sentiment{Score: -0.5, Magnitude: 3.0}, false, ReasonVeryNegative},
		{"very negative strong", Sentiment{Score: -0.9, Magnitude: 12}, false, ReasonVeryNegative},
		{"very positive", Sentiment{Score: 0.5, Magnitude: 3.0}, true, ReasonGeneralAppropriate},
		{"flat", Sentiment{Score: 0.1, Magnitude: 0.5}, true, ReasonGeneralAppropriate},
		{"flat zero", Sentiment{}, true, ReasonGeneralAppropriate},
		{"moderately negative", Sentiment{Score: -0.3, Magnitude: 1.2}, false, ReasonInappropriateLanguage},
		{"moderately negative high magnitude", Sentiment{Score: -0.3, Magnitude: 3.5}, false, ReasonInappropriateLanguage},
		{"borderline negative", Sentiment{Score: -0.2, Magnitude: 1.5}, true, ReasonGeneralAppropriate},
		{"neutral medium magnitude", Sentiment{Score: 0.0, Magnitude: 2.0}, true, ReasonGeneralAppropriate},
		{"moderately positive", Sentiment{Score: 0.3, Magnitude: 2.0}, true, ReasonGeneralAppropriate},
		{"nan score", Sentiment{Score: math.NaN(), Magnitude: 4}, true, ReasonGeneralAppropriate},
	} {
		t.Run(tc.name, func(t *testing.T) {
			verdict := ClassifySentiment(tc.in)
			require.Equal(t, tc.positive, verdict.IsPositive)
			require.Equal(t, []ReasonCode{tc.reason}, verdict.Reasons)
		})
	}
}

func TestClassifySentiment_Total(t *testing.T) {
	for score := -1.0; score <= 1.0; score += 0.05 {
		for magnitude := 0.0; magnitude <= 6.0; magnitude += 0.25 {
			s := Sentiment{Score: score, Magnitude: magnitude}

			first := ClassifySentiment(s)
			require.Len(t, first.Reasons, 1)
			require.Equal(t, first, ClassifySentiment(s))

			matched := 0
			for _, rule := range sentimentRules {
				if rule.matches(score, magnitude) {
					matched++
				}
			}
			require.GreaterOrEqual(t, matched, 1)
		}
	}
}

func TestSentimentVerdict_Check(t *testing.T) {
	check := ClassifySentiment(Sentiment{Score: -0.8, Magnitude: 5}).Check()
	require.False(t, check.IsAppropriate)
	require.Equal(t, []ReasonCode{ReasonVeryNegative}, check.Reasons)
	require.Empty(t, check.Warnings)
	require.Empty(t, check.Flags)
}
