package moderation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Likelihood is the ordinal confidence category an analyzer assigns to a
// safe search attribute.
type Likelihood int

const (
	LikelihoodUnknown Likelihood = iota
	LikelihoodVeryUnlikely
	LikelihoodUnlikely
	LikelihoodPossible
	LikelihoodLikely
	LikelihoodVeryLikely
)

// TriggerSeverity is the minimum severity ("POSSIBLE") at which a likelihood
// typed signal counts as detected.
const TriggerSeverity = 3

var likelihoodNames = map[Likelihood]string{
	LikelihoodUnknown:      "UNKNOWN",
	LikelihoodVeryUnlikely: "VERY_UNLIKELY",
	LikelihoodUnlikely:     "UNLIKELY",
	LikelihoodPossible:     "POSSIBLE",
	LikelihoodLikely:       "LIKELY",
	LikelihoodVeryLikely:   "VERY_LIKELY",
}

var likelihoodsByName = func() map[string]Likelihood {
	m := make(map[string]Likelihood, len(likelihoodNames))
	for l, name := range likelihoodNames {
		m[name] = l
	}
	return m
}()

func (l Likelihood) String() string {
	if name, ok := likelihoodNames[l]; ok {
		return name
	}
	return likelihoodNames[LikelihoodUnknown]
}

// Severity resolves the likelihood through the severity table. Values
// outside the table resolve to 0.
func (l Likelihood) Severity() int {
	return SeverityTable[l.String()]
}

// Triggers reports whether the likelihood is POSSIBLE or stronger.
func (l Likelihood) Triggers() bool {
	return l.Severity() >= TriggerSeverity
}

func (l Likelihood) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText accepts a canonical name or a numeric code.
func (l *Likelihood) UnmarshalText(text []byte) error {
	name := strings.TrimSpace(string(text))
	if code, err := strconv.ParseInt(name, 10, 64); err == nil {
		*l = fromCode(code)
		return nil
	}
	*l = ParseLikelihood(name)
	return nil
}

// ParseLikelihood maps a canonical likelihood name to its Likelihood.
// Unrecognized names map to LikelihoodUnknown.
func ParseLikelihood(name string) Likelihood {
	if l, ok := likelihoodsByName[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return l
	}
	return LikelihoodUnknown
}

// NormalizeLikelihood maps any of an analyzer's native likelihood
// representations (symbolic code, canonical string, or nothing at all) to a
// Likelihood. It never fails: absent or unrecognized input is UNKNOWN.
func NormalizeLikelihood(v any) Likelihood {
	switch t := v.(type) {
	case nil:
		return LikelihoodUnknown
	case Likelihood:
		return fromCode(int64(t))
	case *Likelihood:
		if t == nil {
			return LikelihoodUnknown
		}
		return fromCode(int64(*t))
	case string:
		return ParseLikelihood(t)
	case *string:
		if t == nil {
			return LikelihoodUnknown
		}
		return ParseLikelihood(*t)
	case int:
		return fromCode(int64(t))
	case int8:
		return fromCode(int64(t))
	case int16:
		return fromCode(int64(t))
	case int32:
		return fromCode(int64(t))
	case int64:
		return fromCode(t)
	case uint:
		return fromUnsigned(uint64(t))
	case uint8:
		return fromCode(int64(t))
	case uint16:
		return fromCode(int64(t))
	case uint32:
		return fromCode(int64(t))
	case uint64:
		return fromUnsigned(t)
	case fmt.Stringer:
		return ParseLikelihood(t.String())
	default:
		return LikelihoodUnknown
	}
}

func fromUnsigned(code uint64) Likelihood {
	if code > math.MaxInt64 {
		return LikelihoodUnknown
	}
	return fromCode(int64(code))
}

func fromCode(code int64) Likelihood {
	l := Likelihood(code)
	if _, ok := likelihoodNames[l]; !ok {
		return LikelihoodUnknown
	}
	return l
}
