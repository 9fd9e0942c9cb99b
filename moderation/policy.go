package moderation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type SignalKind string

const (
	SignalSafeSearch SignalKind = "safe_search"
	SignalLabels     SignalKind = "labels"
	SignalSentiment  SignalKind = "sentiment"
	SignalCategories SignalKind = "categories"
)

// SignalPolicy decides what happens when a signal cannot be obtained.
type SignalPolicy int

const (
	// PolicyMandatory aborts the moderation call with an AnalysisError.
	PolicyMandatory SignalPolicy = iota
	// PolicyOptional degrades the signal to its empty value and continues.
	PolicyOptional
)

func (p SignalPolicy) String() string {
	switch p {
	case PolicyMandatory:
		return "mandatory"
	case PolicyOptional:
		return "optional"
	default:
		return "unknown"
	}
}

func ParseSignalPolicy(name string) (SignalPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mandatory":
		return PolicyMandatory, nil
	case "optional":
		return PolicyOptional, nil
	default:
		return PolicyMandatory, fmt.Errorf("unknown signal policy %q", name)
	}
}

func DefaultSignalPolicies() map[SignalKind]SignalPolicy {
	return map[SignalKind]SignalPolicy{
		SignalSafeSearch: PolicyMandatory,
		SignalLabels:     PolicyOptional,
		SignalSentiment:  PolicyMandatory,
		SignalCategories: PolicyOptional,
	}
}

// fetchSignal runs fetch and applies policy to its failure. Optional signals
// never return an error; they log and yield the zero value instead.
func fetchSignal[T any](
	ctx context.Context,
	log *zap.Logger,
	domain Domain,
	kind SignalKind,
	policy SignalPolicy,
	fetch func(context.Context) (T, error),
) (T, error) {
	v, err := fetch(ctx)
	if err == nil {
		return v, nil
	}

	var empty T
	if policy == PolicyOptional {
		log.Warn("Signal analysis skipped", zap.String("signal", string(kind)), zap.Error(err))
		return empty, nil
	}

	return empty, &AnalysisError{
		Domain: domain,
		Signal: kind,
		Cause:  err,
	}
}

// firstError returns the first non-nil error in signal priority order.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
