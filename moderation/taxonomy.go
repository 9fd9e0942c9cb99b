package moderation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// KeywordReason selects a reason code for any signal whose name contains
// Keyword.
type KeywordReason struct {
	Keyword string     `json:"keyword" yaml:"keyword"`
	Reason  ReasonCode `json:"reason" yaml:"reason"`
}

// Taxonomy is the declarative keyword configuration for one signal domain.
//
// A signal matches a keyword list when its name contains one of the keywords
// (compared case-insensitively) and its confidence is strictly greater than
// Threshold. Inappropriate is checked before Review; a signal lands in at
// most one of them.
type Taxonomy struct {
	Inappropriate []string `json:"inappropriate" yaml:"inappropriate"`
	Review        []string `json:"review" yaml:"review"`

	// InappropriateReasons is searched in order for the first keyword the
	// signal name contains; DefaultReason applies when none does.
	InappropriateReasons []KeywordReason `json:"inappropriate_reasons" yaml:"inappropriate_reasons"`
	DefaultReason        ReasonCode      `json:"default_reason" yaml:"default_reason"`

	// ReviewReasons is searched the same way, but a review match with no
	// matching entry contributes no reason.
	ReviewReasons []KeywordReason `json:"review_reasons" yaml:"review_reasons"`

	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// Check is a partial verdict produced by one independent check.
type Check struct {
	IsAppropriate bool
	Reasons       []ReasonCode
	Warnings      []string
	Flags         []string
}

func newCheck() Check {
	return Check{
		IsAppropriate: true,
		Reasons:       []ReasonCode{},
		Warnings:      []string{},
		Flags:         []string{},
	}
}

// Match classifies every signal, in order, against the taxonomy.
func (t Taxonomy) Match(signals []Signal) Check {
	result := newCheck()

	fold := cases.Fold()
	inappropriate := foldAll(fold, t.Inappropriate)
	review := foldAll(fold, t.Review)

	for _, signal := range signals {
		if signal.Confidence <= t.Threshold || math.IsNaN(signal.Confidence) {
			continue
		}

		name := fold.String(signal.Name)

		if containsAny(name, inappropriate) {
			result.IsAppropriate = false
			result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s content (%s%% confidence)", signal.Name, formatPercent(signal.Confidence)))

			reason, ok := lookupReason(fold, name, t.InappropriateReasons)
			if !ok {
				reason = t.DefaultReason
			}
			if reason != "" {
				result.Reasons = append(result.Reasons, reason)
			}
		} else if containsAny(name, review) {
			result.Flags = append(result.Flags, fmt.Sprintf("Contains %s content (%s%% confidence)", signal.Name, formatPercent(signal.Confidence)))

			if reason, ok := lookupReason(fold, name, t.ReviewReasons); ok {
				result.Reasons = append(result.Reasons, reason)
			}
		}
	}

	return result
}

func foldAll(fold cases.Caser, keywords []string) []string {
	folded := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k == "" {
			continue
		}
		folded = append(folded, fold.String(k))
	}
	return folded
}

func containsAny(name string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

func lookupReason(fold cases.Caser, name string, table []KeywordReason) (ReasonCode, bool) {
	for _, entry := range table {
		if entry.Keyword == "" {
			continue
		}
		if strings.Contains(name, fold.String(entry.Keyword)) {
			return entry.Reason, true
		}
	}
	return "", false
}

// formatPercent renders a confidence as a percentage with one decimal place.
func formatPercent(confidence float64) string {
	if math.IsInf(confidence, 0) || math.IsNaN(confidence) {
		return strconv.FormatFloat(confidence*100, 'f', 1, 64)
	}
	return decimal.NewFromFloat(confidence).Mul(decimal.NewFromInt(100)).StringFixed(1)
}
