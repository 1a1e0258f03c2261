package weights

import (
	"errors"
	"testing"

	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/spigell/hh-matcher/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatricesSumToOne(t *testing.T) {
	m := Default()
	require.NoError(t, m.Validate())

	for _, reason := range profile.AllReasons {
		matrix, ok := m[reason]
		require.True(t, ok, reason)
		assert.Len(t, matrix, len(scoring.Components), reason)
		assert.InDelta(t, 1.0, matrix.Sum(), Tolerance, reason)
	}
}

func TestForFallsBackToOther(t *testing.T) {
	m := Default()
	assert.Equal(t, m[profile.ReasonOther], m.For("unheard_of"))
	assert.Equal(t, 0.25, m.For(profile.ReasonLowCompensation)[scoring.Salary])
	assert.Equal(t, m[profile.ReasonOther], m.Base())
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a[profile.ReasonOther][scoring.Salary] = 0.9

	assert.Equal(t, 0.15, Default()[profile.ReasonOther][scoring.Salary])
}

func TestValidateReportsEveryDriftingMatrix(t *testing.T) {
	m, err := Default().ApplyOverrides(map[string]map[string]float64{
		"low_compensation":   {"salary": 0.30},
		"flexibility_needed": {"work_modality": 0.10},
	})
	require.NoError(t, err)

	err = m.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, profile.ReasonFlexibilityNeeded, verr.Reason)
	assert.InDelta(t, 0.92, verr.Sum, 1e-9)

	assert.Contains(t, err.Error(), "low_compensation")
	assert.Contains(t, err.Error(), "flexibility_needed")
}

func TestApplyOverridesRejectsUnknownNames(t *testing.T) {
	_, err := Default().ApplyOverrides(map[string]map[string]float64{"boredom": {"salary": 0.1}})
	assert.ErrorContains(t, err, "boredom")

	_, err = Default().ApplyOverrides(map[string]map[string]float64{"other": {"vibes": 0.1}})
	assert.ErrorContains(t, err, "vibes")

	_, err = Default().ApplyOverrides(map[string]map[string]float64{"other": {"salary": -0.1}})
	assert.ErrorContains(t, err, "negative")
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name      string
		candidate *profile.Candidate
		explicit  Reason
		want      Reason
		how       Inference
	}{
		{
			name:      "explicit argument wins",
			candidate: &profile.Candidate{ListeningReasons: []profile.ListeningReason{profile.ReasonRoleMismatch}},
			explicit:  profile.ReasonFlexibilityNeeded,
			want:      profile.ReasonFlexibilityNeeded,
			how:       InferenceExplicit,
		},
		{
			name:      "primary stated reason",
			candidate: &profile.Candidate{ListeningReasons: []profile.ListeningReason{profile.ReasonRoleMismatch}},
			want:      profile.ReasonRoleMismatch,
			how:       InferenceExplicit,
		},
		{
			name:      "keyword in free text",
			candidate: &profile.Candidate{ReasonText: "Trop de trajet chaque jour"},
			want:      profile.ReasonLocationDissatisfaction,
			how:       InferenceKeyword,
		},
		{
			name:      "keyword in unparsed tag",
			candidate: &profile.Candidate{ReasonTags: []string{"wants more remote"}},
			want:      profile.ReasonFlexibilityNeeded,
			how:       InferenceKeyword,
		},
		{
			name:      "keyword table order",
			candidate: &profile.Candidate{ReasonText: "career growth and a better salary"},
			want:      profile.ReasonLowCompensation,
			how:       InferenceKeyword,
		},
		{
			name:      "salary gap",
			candidate: &profile.Candidate{CurrentSalary: 50000, DesiredSalary: 57500},
			want:      profile.ReasonLowCompensation,
			how:       InferenceSalary,
		},
		{
			name:      "small salary gap",
			candidate: &profile.Candidate{CurrentSalary: 50000, DesiredSalary: 57000},
			want:      profile.ReasonOther,
			how:       InferenceDefault,
		},
		{
			name:      "nothing to go on",
			candidate: &profile.Candidate{},
			want:      profile.ReasonOther,
			how:       InferenceDefault,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, how := Resolve(tc.candidate, tc.explicit)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.how, how)
		})
	}
}
