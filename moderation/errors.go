package moderation

import "fmt"

type Domain string

const (
	DomainImage Domain = "image"
	DomainText  Domain = "text"
)

// ValidationError reports unusable input. It is returned before any signal
// is requested from an analyzer.
type ValidationError struct {
	Domain  Domain
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AnalysisError reports that a mandatory signal could not be obtained. The
// whole moderation call failed and may be retried.
type AnalysisError struct {
	Domain Domain
	Signal SignalKind
	Cause  error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s moderation failed: %v", e.Domain, e.Cause)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}
