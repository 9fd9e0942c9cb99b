package moderation

import "fmt"

type safeSearchRule struct {
	label      string
	likelihood func(SafeSearch) Likelihood
	reason     ReasonCode
	blocks     bool
}

// safeSearchRules are evaluated in order. Spoof is intentionally absent.
var safeSearchRules = []safeSearchRule{
	{label: "adult", likelihood: func(s SafeSearch) Likelihood { return s.Adult }, reason: ReasonAdultContent, blocks: true},
	{label: "violent", likelihood: func(s SafeSearch) Likelihood { return s.Violence }, reason: ReasonViolenceContent, blocks: true},
	{label: "medical", likelihood: func(s SafeSearch) Likelihood { return s.Medical }, reason: ReasonMedicalContent, blocks: false},
	{label: "racy", likelihood: func(s SafeSearch) Likelihood { return s.Racy }, reason: ReasonAdultContent, blocks: true},
}

// CheckSafeSearch evaluates the safe search likelihoods directly, independent
// of any label matching. Medical content is reported but does not block.
func CheckSafeSearch(safeSearch SafeSearch) Check {
	result := newCheck()

	for _, rule := range safeSearchRules {
		l := rule.likelihood(safeSearch)
		if !l.Triggers() {
			continue
		}

		if rule.blocks {
			result.IsAppropriate = false
		}
		result.Reasons = append(result.Reasons, rule.reason)
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s content (%s)", rule.label, l))
	}

	return result
}

// Aggregate folds independent checks into a verdict. Warnings, flags and
// reasons are concatenated in argument order; duplicates are kept.
func Aggregate(checks ...Check) Verdict {
	v := Verdict{
		IsAppropriate: true,
		Warnings:      []string{},
		Flags:         []string{},
		Reasons:       []ReasonCode{},
	}

	for _, c := range checks {
		v.IsAppropriate = v.IsAppropriate && c.IsAppropriate
		v.Warnings = append(v.Warnings, c.Warnings...)
		v.Flags = append(v.Flags, c.Flags...)
		v.Reasons = append(v.Reasons, c.Reasons...)
	}

	v.Recommendation = Recommend(v.IsAppropriate, v.Flags)
	return v
}
