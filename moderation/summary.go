package moderation

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Summary is the flat record rendered for manual inspection of a result.
type Summary struct {
	IsAppropriate  bool           `json:"is_appropriate"`
	Recommendation Recommendation `json:"recommendation"`
	Reasons        []ReasonCode   `json:"reasons"`
	Warnings       []string       `json:"warnings"`
	Flags          []string       `json:"flags"`

	SafeSearch *SafeSearch    `json:"safe_search,omitempty"`
	Labels     []LabelSummary `json:"labels,omitempty"`

	Text       string     `json:"text,omitempty"`
	Sentiment  *Sentiment `json:"sentiment,omitempty"`
	Categories []Signal   `json:"categories,omitempty"`
}

type LabelSummary struct {
	Name       string `json:"name"`
	Confidence string `json:"confidence"`
}

func Summarize(r Result) Summary {
	base := r.Base()
	s := Summary{
		IsAppropriate:  base.IsAppropriate,
		Recommendation: base.Recommendation,
		Reasons:        append([]ReasonCode{}, base.Reasons...),
		Warnings:       append([]string{}, base.Warnings...),
		Flags:          append([]string{}, base.Flags...),
	}

	switch t := r.(type) {
	case *ImageResult:
		safeSearch := t.SafeSearch
		s.SafeSearch = &safeSearch
		s.Labels = make([]LabelSummary, len(t.Labels))
		for i, l := range t.Labels {
			s.Labels[i] = LabelSummary{Name: l.Name, Confidence: roundedPercent(l.Confidence) + "%"}
		}
	case *TextResult:
		sentiment := t.Sentiment
		s.Text = t.Text
		s.Sentiment = &sentiment
		s.Categories = CloneSignals(t.Categories)
	}

	return s
}

// MarshalJSON always renders the payload list of the summarized variant,
// empty or not: labels for images, categories for text.
func (s Summary) MarshalJSON() ([]byte, error) {
	type summary Summary
	out := struct {
		summary
		Labels     *[]LabelSummary `json:"labels,omitempty"`
		Categories *[]Signal       `json:"categories,omitempty"`
	}{summary: summary(s)}

	if s.SafeSearch != nil {
		labels := s.Labels
		if labels == nil {
			labels = []LabelSummary{}
		}
		out.Labels = &labels
	}
	if s.Sentiment != nil {
		categories := s.Categories
		if categories == nil {
			categories = []Signal{}
		}
		out.Categories = &categories
	}

	return json.Marshal(out)
}

func roundedPercent(confidence float64) string {
	if math.IsInf(confidence, 0) || math.IsNaN(confidence) {
		return strconv.FormatFloat(confidence*100, 'f', 0, 64)
	}
	return decimal.NewFromFloat(confidence).Mul(decimal.NewFromInt(100)).StringFixed(0)
}
