package moderation

import "context"

// ImageAnalyzer produces the raw signals image moderation is decided on.
// Safe search is mandatory; labels are optional.
type ImageAnalyzer interface {
	DetectSafeSearch(ctx context.Context, image []byte) (*SafeSearch, error)
	DetectLabels(ctx context.Context, image []byte) ([]Signal, error)
}

// TextAnalyzer produces the raw signals text moderation is decided on.
// Sentiment is mandatory; categories are optional.
type TextAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, text string) (*Sentiment, error)
	ClassifyText(ctx context.Context, text string) ([]Signal, error)
}

// Signal is a named, confidence scored classification item: an image label
// or a text category.
type Signal struct {
	Name       string  `json:"name" yaml:"name"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// SafeSearch holds the per attribute likelihoods of a safe search analysis.
type SafeSearch struct {
	Adult    Likelihood `json:"adult" yaml:"adult"`
	Medical  Likelihood `json:"medical" yaml:"medical"`
	Spoof    Likelihood `json:"spoof" yaml:"spoof"`
	Violence Likelihood `json:"violence" yaml:"violence"`
	Racy     Likelihood `json:"racy" yaml:"racy"`
}

// Sentiment is a document level sentiment reading.
type Sentiment struct {
	Score     float64 `json:"score" yaml:"score"`
	Magnitude float64 `json:"magnitude" yaml:"magnitude"`
}

// CloneSignals returns a copy of signals that never aliases the input. A nil
// input yields an empty, non-nil slice.
func CloneSignals(signals []Signal) []Signal {
	copied := make([]Signal, len(signals))
	copy(copied, signals)
	return copied
}
