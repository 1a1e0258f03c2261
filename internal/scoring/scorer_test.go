package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCandidate(mutate func(c *profile.Candidate)) *profile.Candidate {
	c := &profile.Candidate{
		ID:                     "cand",
		Openness:               3,
		SectorPriority:         3,
		ProgressionExpectation: 3,
		Notice:                 profile.Weeks(0),
		Availability:           profile.Weeks(0),
		Confidence:             1,
	}
	if mutate != nil {
		mutate(c)
	}
	return c
}

func newPosition(mutate func(p *profile.Position)) *profile.Position {
	p := &profile.Position{
		ID:         "pos",
		Urgency:    profile.UrgencyNormal,
		MaxWait:    profile.Weeks(8),
		Confidence: 1,
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func run(t *testing.T, name Component, c *profile.Candidate, p *profile.Position) ComponentScore {
	t.Helper()

	s, ok := New(name)
	require.True(t, ok, "no scorer for %s", name)

	score, err := s.Score(context.Background(), c, p, Weight{Value: 0.1, Base: 0.08})
	require.NoError(t, err)
	require.Equal(t, name, score.Name)
	return score
}

func TestQualityOf(t *testing.T) {
	cases := []struct {
		raw  float64
		want Quality
	}{
		{1, QualityPerfect},
		{0.95, QualityPerfect},
		{0.9, QualityExcellent},
		{0.7, QualityGood},
		{0.5, QualityAcceptable},
		{0.3, QualityPoor},
		{0.29, QualityIncompatible},
		{0, QualityIncompatible},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, QualityOf(tc.raw), "raw=%v", tc.raw)
	}
}

func TestNewScoreDerivesWeightedFields(t *testing.T) {
	s := NewScore(Salary, 1.4, -1, Weight{Value: 0.25, Base: 0.15}, nil)

	assert.InDelta(t, 1.0, s.RawScore, 1e-9)
	assert.InDelta(t, 0.0, s.Confidence, 1e-9)
	assert.InDelta(t, 0.25, s.WeightedScore, 1e-9)
	assert.InDelta(t, 0.10, s.Boost, 1e-9)
	assert.Equal(t, QualityPerfect, s.Quality)
}

func TestNeutral(t *testing.T) {
	s := Neutral(Sector, Weight{Value: 0.06, Base: 0.06}, errors.New("boom"))

	assert.InDelta(t, 0.5, s.RawScore, 1e-9)
	assert.InDelta(t, 0.1, s.Confidence, 1e-9)
	assert.Equal(t, true, s.Details["fallback"])
	assert.Equal(t, "boom", s.Details["error"])
}

func TestDefaults(t *testing.T) {
	scorers := Defaults()
	require.Len(t, scorers, len(Components)-1)

	for _, s := range scorers {
		assert.NotEqual(t, Location, s.Name())
	}

	_, ok := New(Location)
	assert.False(t, ok)
}

func TestScoreErrors(t *testing.T) {
	s, _ := New(Semantic)

	_, err := s.Score(context.Background(), nil, newPosition(nil), Weight{})
	var scoreErr *ScoreError
	require.ErrorAs(t, err, &scoreErr)
	assert.Equal(t, Semantic, scoreErr.Component)
	assert.ErrorIs(t, err, ErrMissingProfile)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Score(ctx, newCandidate(nil), newPosition(nil), Weight{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseComponent(t *testing.T) {
	c, ok := ParseComponent("work_modality")
	assert.True(t, ok)
	assert.Equal(t, WorkModality, c)

	_, ok = ParseComponent("vibes")
	assert.False(t, ok)
}

// Every built-in scorer stays within [0,1] on sparse, contradictory and extreme inputs.
func TestScoresStayInRange(t *testing.T) {
	candidates := []*profile.Candidate{
		newCandidate(nil),
		newCandidate(func(c *profile.Candidate) {
			c.Skills = []string{"go"}
			c.YearsExperience = 45
			c.ExperienceKnown = true
			c.CurrentSalary = 1
			c.DesiredSalary = 1e7
			c.Status = profile.StatusEmployed
			c.Notice = profile.Weeks(52)
			c.RequiresDiscretion = true
			c.ListeningReasons = []profile.ListeningReason{profile.ReasonFlexibilityNeeded, profile.ReasonLowCompensation}
			c.PreferredModality = profile.ModalityOnSite
			c.ContractRanking = []profile.ContractType{profile.ContractFreelance}
			c.ProhibitedSectors = []string{"banking"}
			c.Openness = 1
			c.SectorPriority = 5
		}),
		newCandidate(func(c *profile.Candidate) {
			c.Skills = []string{"go", "sql", "k8s"}
			c.Domains = []string{"fintech"}
			c.DomainYears = 20
			c.YearsExperience = 20
			c.ExperienceKnown = true
			c.CurrentSalary = 50000
			c.DesiredSalary = 52000
			c.Status = profile.StatusJobSeeking
			c.AvailabilityFlexible = true
			c.PreferredSectors = []string{"fintech"}
			c.CurrentSector = "fintech"
			c.PreferredCompanySizes = []profile.CompanySize{profile.SizeStartup}
			c.Motivations = profile.Motivations{"salary": 1, "team": 2, "autonomy": 3}
			c.ProgressionExpectation = 5
			c.PreferredModality = profile.ModalityFullRemote
			c.ListeningReasons = []profile.ListeningReason{profile.ReasonNoGrowthPerspective, profile.ReasonRoleMismatch}
		}),
	}
	positions := []*profile.Position{
		newPosition(nil),
		newPosition(func(p *profile.Position) {
			p.RequiredSkills = []string{"go", "sql", "k8s"}
			p.Domain = "fintech"
			p.SalaryMin = 40000
			p.SalaryMax = 90000
			p.ExperienceMin = 2
			p.ExperienceMax = 5
			p.Sector = "fintech"
			p.CompanySize = profile.SizeStartup
			p.ContractType = profile.ContractPermanent
			p.Modality = profile.ModalityFullRemote
			p.Urgency = profile.UrgencyCritical
			p.MaxWait = profile.Weeks(0)
			p.Benefits = []string{"a", "b", "c", "d", "e", "f", "g"}
			p.TrialPeriodMonths = 1
			p.Motivations = profile.Motivations{"salary": 5, "team": 1}
			p.ProgressionTimeline = "yearly review"
			p.RemoteInterviews = true
		}),
	}

	for _, c := range candidates {
		for _, p := range positions {
			for _, s := range Defaults() {
				score, err := s.Score(context.Background(), c, p, Weight{Value: 0.1, Base: 0.1})
				require.NoError(t, err, s.Name())
				assert.GreaterOrEqual(t, score.RawScore, 0.0, s.Name())
				assert.LessOrEqual(t, score.RawScore, 1.0, s.Name())
				assert.GreaterOrEqual(t, score.Confidence, 0.0, s.Name())
				assert.LessOrEqual(t, score.Confidence, 1.0, s.Name())
				assert.NotEmpty(t, score.Quality, s.Name())
			}
		}
	}
}
