package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/code-payments/flipchat-moderation/moderation"
)

// Backend builds analyzers that report exactly the given signals.
type Backend interface {
	ImageAnalyzer(t *testing.T, safeSearch moderation.SafeSearch, labels []moderation.Signal) moderation.ImageAnalyzer
	TextAnalyzer(t *testing.T, sentiment moderation.Sentiment, categories []moderation.Signal) moderation.TextAnalyzer
}

func RunImageModerationTests(t *testing.T, b Backend, teardown func()) {
	for _, tf := range []func(t *testing.T, b Backend){
		testAdultImage,
		testMedicalLabelImage,
		testMedicalSafeSearchImage,
		testLabelConfidenceBoundary,
		testCleanImage,
	} {
		tf(t, b)
		teardown()
	}
}

func RunTextModerationTests(t *testing.T, b Backend, teardown func()) {
	for _, tf := range []func(t *testing.T, b Backend){
		testNeutralText,
		testViolentNegativeText,
		testHealthCategoryText,
		testCategoryConfidenceBoundary,
	} {
		tf(t, b)
		teardown()
	}
}

func moderateImage(t *testing.T, analyzer moderation.ImageAnalyzer) *moderation.ImageResult {
	result, err := moderation.NewImageModerator(zap.NewNop(), analyzer).Moderate(context.Background(), []byte("image"))
	require.NoError(t, err)
	return result
}

func moderateText(t *testing.T, analyzer moderation.TextAnalyzer, text string) *moderation.TextResult {
	result, err := moderation.NewTextModerator(zap.NewNop(), analyzer).Moderate(context.Background(), text)
	require.NoError(t, err)
	return result
}

func testAdultImage(t *testing.T, b Backend) {
	t.Run("Adult image", func(t *testing.T) {
		result := moderateImage(t, b.ImageAnalyzer(t, moderation.SafeSearch{Adult: moderation.LikelihoodVeryLikely}, nil))

		require.False(t, result.IsAppropriate)
		require.Equal(t, []moderation.ReasonCode{moderation.ReasonAdultContent}, result.Reasons)
		require.Equal(t, []string{"Detected adult content (VERY_LIKELY)"}, result.Warnings)
		require.Empty(t, result.Flags)
		require.Equal(t, moderation.RecommendationInappropriate, result.Recommendation)
		require.Equal(t, moderation.LikelihoodVeryLikely, result.SafeSearch.Adult)
		require.Equal(t, moderation.LikelihoodUnknown, result.SafeSearch.Racy)
	})
}

func testMedicalLabelImage(t *testing.T, b Backend) {
	t.Run("Medical label image", func(t *testing.T) {
		labels := []moderation.Signal{{Name: "Medical", Confidence: 0.8}}
		result := moderateImage(t, b.ImageAnalyzer(t, moderation.SafeSearch{}, labels))

		require.True(t, result.IsAppropriate)
		require.Equal(t, []string{"Contains Medical content (80.0% confidence)"}, result.Flags)
		require.Empty(t, result.Warnings)
		require.Equal(t, []moderation.ReasonCode{moderation.ReasonMedicalContent}, result.Reasons)
		require.Equal(t, moderation.RecommendationNeedsReview, result.Recommendation)
		require.Len(t, result.Labels, 1)
		require.Equal(t, "Medical", result.Labels[0].Name)
		require.InDelta(t, 0.8, result.Labels[0].Confidence, 1e-9)
	})
}

func testMedicalSafeSearchImage(t *testing.T, b Backend) {
	t.Run("Medical safe search image", func(t *testing.T) {
		result := moderateImage(t, b.ImageAnalyzer(t, moderation.SafeSearch{Medical: moderation.LikelihoodLikely}, nil))

		require.True(t, result.IsAppropriate)
		require.Contains(t, result.Reasons, moderation.ReasonMedicalContent)
		require.Equal(t, []string{"Detected medical content (LIKELY)"}, result.Warnings)
		require.Equal(t, moderation.RecommendationAppropriate, result.Recommendation)
	})
}

func testLabelConfidenceBoundary(t *testing.T, b Backend) {
	t.Run("Label confidence boundary", func(t *testing.T) {
		labels := []moderation.Signal{
			{Name: "Weapon", Confidence: 0.5},
			{Name: "Injury", Confidence: 0.5},
		}
		result := moderateImage(t, b.ImageAnalyzer(t, moderation.SafeSearch{}, labels))
		require.True(t, result.IsAppropriate)
		require.Empty(t, result.Warnings)
		require.Empty(t, result.Flags)
		require.Equal(t, moderation.RecommendationAppropriate, result.Recommendation)

		labels = []moderation.Signal{{Name: "Weapon", Confidence: 0.51}}
		result = moderateImage(t, b.ImageAnalyzer(t, moderation.SafeSearch{}, labels))
		require.False(t, result.IsAppropriate)
		require.Equal(t, []string{"Detected Weapon content (51.0% confidence)"}, result.Warnings)
		require.Equal(t, []moderation.ReasonCode{moderation.ReasonSensitiveContent}, result.Reasons)
	})
}

func testCleanImage(t *testing.T, b Backend) {
	t.Run("Clean image", func(t *testing.T) {
		safeSearch := moderation.SafeSearch{
			Adult:    moderation.LikelihoodVeryUnlikely,
			Medical:  moderation.LikelihoodUnlikely,
			Spoof:    moderation.LikelihoodVeryLikely,
			Violence: moderation.LikelihoodUnlikely,
			Racy:     moderation.LikelihoodVeryUnlikely,
		}
		labels := []moderation.Signal{{Name: "Sports", Confidence: 0.97}, {Name: "Ball", Confidence: 0.9}}
		result := moderateImage(t, b.ImageAnalyzer(t, safeSearch, labels))

		require.True(t, result.IsAppropriate)
		require.Empty(t, result.Reasons)
		require.Empty(t, result.Warnings)
		require.Empty(t, result.Flags)
		require.Equal(t, moderation.RecommendationAppropriate, result.Recommendation)
		require.Equal(t, safeSearch, result.SafeSearch)
	})
}

func testNeutralText(t *testing.T, b Backend) {
	t.Run("Neutral text", func(t *testing.T) {
		text := "Match cancelled due to heavy rain."
		result := moderateText(t, b.TextAnalyzer(t, moderation.Sentiment{Score: 0.1, Magnitude: 0.5}, nil), text)

		require.True(t, result.IsAppropriate)
		require.Equal(t, []moderation.ReasonCode{moderation.ReasonGeneralAppropriate}, result.Reasons)
		require.Empty(t, result.Warnings)
		require.Empty(t, result.Flags)
		require.Equal(t, moderation.RecommendationAppropriate, result.Recommendation)
		require.Equal(t, text, result.Text)
		require.Empty(t, result.Categories)
	})
}

func testViolentNegativeText(t *testing.T, b Backend) {
	t.Run("Violent negative text", func(t *testing.T) {
		categories := []moderation.Signal{{Name: "/Violence/Riot", Confidence: 0.9}}
		result := moderateText(t, b.TextAnalyzer(t, moderation.Sentiment{Score: -0.6, Magnitude: 4.0}, categories), "Players fighting in the changing room.")

		require.False(t, result.IsAppropriate)
		require.Equal(t, []moderation.ReasonCode{moderation.ReasonViolenceContent, moderation.ReasonVeryNegative}, result.Reasons)
		require.Equal(t, []string{"Detected /Violence/Riot content (90.0% confidence)"}, result.Warnings)
		require.Equal(t, moderation.RecommendationInappropriate, result.Recommendation)
	})
}

func testHealthCategoryText(t *testing.T, b Backend) {
	t.Run("Health category text", func(t *testing.T) {
		categories := []moderation.Signal{{Name: "/Health/Medical Facilities & Services", Confidence: 0.7}}
		result := moderateText(t, b.TextAnalyzer(t, moderation.Sentiment{Score: 0.3, Magnitude: 1.5}, categories), "Blood test required for all players.")

		require.True(t, result.IsAppropriate)
		require.Equal(t, []string{"Contains /Health/Medical Facilities & Services content (70.0% confidence)"}, result.Flags)
		require.Equal(t, []moderation.ReasonCode{moderation.ReasonMedicalContent, moderation.ReasonGeneralAppropriate}, result.Reasons)
		require.Equal(t, moderation.RecommendationNeedsReview, result.Recommendation)
	})
}

func testCategoryConfidenceBoundary(t *testing.T, b Backend) {
	t.Run("Category confidence boundary", func(t *testing.T) {
		categories := []moderation.Signal{{Name: "/Adult/Explicit", Confidence: 0.5}}
		result := moderateText(t, b.TextAnalyzer(t, moderation.Sentiment{Score: 0.6, Magnitude: 0.4}, categories), "borderline")

		require.True(t, result.IsAppropriate)
		require.Empty(t, result.Warnings)
		require.Equal(t, moderation.RecommendationAppropriate, result.Recommendation)
	})
}
