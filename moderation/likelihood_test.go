package moderation

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestNormalizeLikelihood(t *testing.T) {
	var nilLikelihood *Likelihood
	var nilString *string
	possible := "POSSIBLE"
	likely := LikelihoodLikely

	for _, tc := range []struct {
		name string
		in   any
		want Likelihood
	}{
		{"nil", nil, LikelihoodUnknown},
		{"nil likelihood pointer", nilLikelihood, LikelihoodUnknown},
		{"nil string pointer", nilString, LikelihoodUnknown},
		{"canonical string", "VERY_LIKELY", LikelihoodVeryLikely},
		{"lowercase string", "very_unlikely", LikelihoodVeryUnlikely},
		{"padded string", "  UNLIKELY ", LikelihoodUnlikely},
		{"string pointer", &possible, LikelihoodPossible},
		{"unrecognized string", "SOMEWHAT", LikelihoodUnknown},
		{"empty string", "", LikelihoodUnknown},
		{"likelihood", LikelihoodPossible, LikelihoodPossible},
		{"likelihood pointer", &likely, LikelihoodLikely},
		{"int code", 5, LikelihoodVeryLikely},
		{"int32 code", int32(3), LikelihoodPossible},
		{"int64 code", int64(1), LikelihoodVeryUnlikely},
		{"int8 code", int8(5), LikelihoodVeryLikely},
		{"int16 code", int16(5), LikelihoodVeryLikely},
		{"uint code", uint(5), LikelihoodVeryLikely},
		{"uint8 code", uint8(4), LikelihoodLikely},
		{"uint16 code", uint16(5), LikelihoodVeryLikely},
		{"uint32 code", uint32(2), LikelihoodUnlikely},
		{"uint64 code", uint64(5), LikelihoodVeryLikely},
		{"uint64 overflow", uint64(math.MaxUint64), LikelihoodUnknown},
		{"out of range code", 42, LikelihoodUnknown},
		{"negative code", -1, LikelihoodUnknown},
		{"out of range likelihood", Likelihood(9), LikelihoodUnknown},
		{"stringer", stringer("LIKELY"), LikelihoodLikely},
		{"unsupported type", 3.0, LikelihoodUnknown},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeLikelihood(tc.in))
		})
	}
}

func TestLikelihoodSeverity(t *testing.T) {
	for l, want := range map[Likelihood]int{
		LikelihoodUnknown:      0,
		LikelihoodVeryUnlikely: 1,
		LikelihoodUnlikely:     2,
		LikelihoodPossible:     3,
		LikelihoodLikely:       4,
		LikelihoodVeryLikely:   5,
		Likelihood(-3):         0,
		Likelihood(17):         0,
	} {
		require.Equal(t, want, l.Severity(), l.String())
		require.Equal(t, want >= TriggerSeverity, l.Triggers(), l.String())
	}
}

func TestLikelihoodText(t *testing.T) {
	require.Equal(t, "UNKNOWN", Likelihood(17).String())

	b, err := json.Marshal(SafeSearch{Adult: LikelihoodVeryLikely})
	require.NoError(t, err)
	require.JSONEq(t, `{"adult":"VERY_LIKELY","medical":"UNKNOWN","spoof":"UNKNOWN","violence":"UNKNOWN","racy":"UNKNOWN"}`, string(b))

	var ss SafeSearch
	require.NoError(t, json.Unmarshal([]byte(`{"racy":"LIKELY","violence":"bogus"}`), &ss))
	require.Equal(t, LikelihoodLikely, ss.Racy)
	require.Equal(t, LikelihoodUnknown, ss.Violence)

	ss = SafeSearch{}
	require.NoError(t, yaml.Unmarshal([]byte("adult: 5\nracy: VERY_LIKELY\nmedical: 9\nviolence: \" 4 \""), &ss))
	require.Equal(t, LikelihoodVeryLikely, ss.Adult)
	require.True(t, ss.Adult.Triggers())
	require.Equal(t, LikelihoodVeryLikely, ss.Racy)
	require.Equal(t, LikelihoodUnknown, ss.Medical)
	require.Equal(t, LikelihoodLikely, ss.Violence)

	var l Likelihood
	require.NoError(t, l.UnmarshalText([]byte("3")))
	require.Equal(t, LikelihoodPossible, l)
}
