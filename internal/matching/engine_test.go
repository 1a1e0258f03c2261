package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spigell/hh-matcher/internal/location"
	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/spigell/hh-matcher/internal/routing"
	"github.com/spigell/hh-matcher/internal/scoring"
	"github.com/spigell/hh-matcher/internal/weights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func scenarioCandidate() map[string]any {
	return map[string]any{
		"id":                "cand-1",
		"skills":            []any{"python", "django", "react"},
		"years_experience":  7,
		"current_salary":    58000,
		"desired_salary":    "70000",
		"listening_reasons": "low compensation",
	}
}

func scenarioPosition() map[string]any {
	return map[string]any{
		"id":              "pos-1",
		"required_skills": "python, django",
		"salary_max":      75000,
		"sector":          "fintech",
	}
}

type failingScorer struct {
	name scoring.Component
}

func (s failingScorer) Name() scoring.Component { return s.name }

func (s failingScorer) Score(context.Context, *profile.Candidate, *profile.Position, scoring.Weight) (scoring.ComponentScore, error) {
	return scoring.ComponentScore{}, &scoring.ScoreError{Component: s.name, Cause: errors.New("division by zero")}
}

type panickingScorer struct {
	name scoring.Component
}

func (s panickingScorer) Name() scoring.Component { return s.name }

func (s panickingScorer) Score(context.Context, *profile.Candidate, *profile.Position, scoring.Weight) (scoring.ComponentScore, error) {
	panic("unexpected nil map")
}

func withoutTimings(r *Result) *Result {
	cp := *r
	cp.ProcessingMS = 0
	cp.Components = append([]scoring.ComponentScore(nil), r.Components...)
	for i := range cp.Components {
		cp.Components[i].ComputationMS = 0
	}
	return &cp
}

func TestMatchEndToEnd(t *testing.T) {
	e := New(Config{}, Deps{})

	result, err := e.MatchFields(context.Background(), scenarioCandidate(), scenarioPosition(), "")
	require.NoError(t, err)

	assert.Greater(t, result.TotalScore, 0.5)
	assert.Equal(t, profile.ReasonLowCompensation, result.ListeningReason)
	assert.False(t, result.ReasonInferred)
	assert.Equal(t, weights.InferenceExplicit, result.Inference)
	assert.True(t, result.MatricesValid)
	assert.Equal(t, "cand-1", result.CandidateID)
	assert.Equal(t, "pos-1", result.PositionID)

	require.Len(t, result.Components, len(scoring.Components))
	for i, cs := range result.Components {
		assert.Equal(t, scoring.Components[i], cs.Name)
		assert.GreaterOrEqual(t, cs.RawScore, 0.0)
		assert.LessOrEqual(t, cs.RawScore, 1.0)
		assert.GreaterOrEqual(t, cs.Confidence, 0.0)
		assert.LessOrEqual(t, cs.Confidence, 1.0)
	}

	salary, ok := result.Component(scoring.Salary)
	require.True(t, ok)
	assert.InDelta(t, 1.0, salary.RawScore, 1e-9)
	assert.InDelta(t, 0.25, salary.Weight, 1e-9)
	assert.InDelta(t, 0.10, salary.Boost, 1e-9)

	semantic, _ := result.Component(scoring.Semantic)
	assert.InDelta(t, 2.0/3.0, semantic.RawScore, 1e-9)

	loc, _ := result.Component(scoring.Location)
	assert.Equal(t, true, loc.Details["fallback"])
	assert.Equal(t, true, loc.Details["degraded"])

	sum := 0.0
	for _, cs := range result.Components {
		sum += cs.WeightedScore
	}
	assert.InDelta(t, sum, result.TotalScore, 1e-12)

	require.Len(t, result.TopContributors, 3)
	assert.Equal(t, scoring.Salary, result.TopContributors[0].Name)
	assert.GreaterOrEqual(t, result.TopContributors[0].WeightedScore, result.TopContributors[1].WeightedScore)
	assert.GreaterOrEqual(t, result.TopContributors[1].WeightedScore, result.TopContributors[2].WeightedScore)

	assert.LessOrEqual(t, len(result.Suggestions), 3)
	assert.Contains(t, result.Warnings, "candidate: missing address")
	assert.Contains(t, result.Warnings, "position: missing modality")
	assert.InDelta(t, 1.0, sumWeights(result.WeightsUsed), 1e-6)
}

func sumWeights(m map[scoring.Component]float64) float64 {
	sum := 0.0
	for _, w := range m {
		sum += w
	}
	return sum
}

func TestMatchIsIdempotent(t *testing.T) {
	e := New(Config{}, Deps{})

	first, err := e.MatchFields(context.Background(), scenarioCandidate(), scenarioPosition(), "")
	require.NoError(t, err)
	second, err := e.MatchFields(context.Background(), scenarioCandidate(), scenarioPosition(), "")
	require.NoError(t, err)

	assert.Equal(t, withoutTimings(first), withoutTimings(second))
}

type fixedRoutes struct{}

func (fixedRoutes) Geocode(_ context.Context, address string) (routing.Coordinates, error) {
	return routing.Coordinates{Lat: float64(len(address)), Lng: 4.8}, nil
}

func (fixedRoutes) Route(context.Context, routing.Coordinates, routing.Coordinates, profile.TransportMode) (routing.Route, error) {
	return routing.Route{Duration: 25 * time.Minute, DistanceMeters: 9000}, nil
}

func TestMatchIsIdempotentWithRouting(t *testing.T) {
	stats := &location.Stats{}
	e := New(Config{}, Deps{Location: location.New(fixedRoutes{}, location.Config{}, stats, nil)})

	candidate := scenarioCandidate()
	candidate["address"] = "3 rue de la République, 69002 Lyon"
	position := scenarioPosition()
	position["address"] = "20 quai Perrache, 69002 Lyon"

	first, err := e.MatchFields(context.Background(), candidate, position, "")
	require.NoError(t, err)
	second, err := e.MatchFields(context.Background(), candidate, position, "")
	require.NoError(t, err)

	assert.Equal(t, withoutTimings(first), withoutTimings(second))
	assert.Equal(t, int64(1), stats.Snapshot().CacheHits)

	loc, ok := first.Component(scoring.Location)
	require.True(t, ok)
	assert.Nil(t, loc.Details["fallback"])
}

func TestMatchInfersListeningReason(t *testing.T) {
	e := New(Config{}, Deps{})

	tests := []struct {
		name      string
		candidate map[string]any
		reason    string
		want      weights.Reason
		inference weights.Inference
	}{
		{
			name:      "salary gap",
			candidate: map[string]any{"current_salary": 40000, "desired_salary": 46000},
			want:      profile.ReasonLowCompensation,
			inference: weights.InferenceSalary,
		},
		{
			name:      "keywords",
			candidate: map[string]any{"reason_text": "Trop de trajet tous les jours"},
			want:      profile.ReasonLocationDissatisfaction,
			inference: weights.InferenceKeyword,
		},
		{
			name:      "nothing to go on",
			candidate: map[string]any{"current_salary": 40000, "desired_salary": 42000},
			want:      profile.ReasonOther,
			inference: weights.InferenceDefault,
		},
		{
			name:      "explicit argument wins",
			candidate: map[string]any{"current_salary": 40000, "desired_salary": 60000},
			reason:    "flexibility_needed",
			want:      profile.ReasonFlexibilityNeeded,
			inference: weights.InferenceExplicit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.MatchFields(context.Background(), tt.candidate, scenarioPosition(), tt.reason)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.ListeningReason)
			assert.Equal(t, tt.inference, result.Inference)
			assert.Equal(t, tt.inference != weights.InferenceExplicit, result.ReasonInferred)
		})
	}
}

func TestMatchFieldsUnknownReason(t *testing.T) {
	e := New(Config{}, Deps{})

	c := scenarioCandidate()
	delete(c, "listening_reasons")
	result, err := e.MatchFields(context.Background(), c, scenarioPosition(), "bored")
	require.NoError(t, err)

	assert.Equal(t, profile.ReasonLowCompensation, result.ListeningReason)
	assert.Equal(t, weights.InferenceSalary, result.Inference)
	assert.Contains(t, result.Warnings, `unknown listening reason "bored", inferring one`)
}

func TestMatchDegradesFailingComponents(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	stats := &Stats{}
	e := New(Config{}, Deps{
		Logger:  zap.New(core),
		Stats:   stats,
		Scorers: []scoring.Scorer{failingScorer{scoring.Sector}, panickingScorer{scoring.Timing}},
	})

	result, err := e.MatchFields(context.Background(), scenarioCandidate(), scenarioPosition(), "")
	require.NoError(t, err)
	require.Len(t, result.Components, len(scoring.Components))

	sector, _ := result.Component(scoring.Sector)
	assert.InDelta(t, 0.5, sector.RawScore, 1e-9)
	assert.InDelta(t, 0.1, sector.Confidence, 1e-9)
	assert.Equal(t, true, sector.Details["fallback"])
	assert.Contains(t, sector.Details["error"], "division by zero")

	timing, _ := result.Component(scoring.Timing)
	assert.InDelta(t, 0.5, timing.RawScore, 1e-9)
	assert.Contains(t, timing.Details["error"], "panic: unexpected nil map")

	snapshot := stats.Snapshot()
	assert.Equal(t, int64(1), snapshot.Matches)
	assert.Equal(t, int64(2), snapshot.ComponentFailures)
	// The location fallback counts as degraded.
	assert.Equal(t, int64(1), snapshot.DegradedComponents)

	failures := logs.FilterMessage("component failed, using neutral score").All()
	require.Len(t, failures, 2)
	assert.Equal(t, "low_compensation", failures[0].ContextMap()["listening_reason"])
	assert.NotEmpty(t, failures[0].ContextMap()["match_id"])
}

func TestNewLogsInvalidMatrices(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	matrices, err := weights.Default().ApplyOverrides(map[string]map[string]float64{
		"low_compensation": {"salary": 0.35},
	})
	require.NoError(t, err)

	e := New(Config{Weights: matrices}, Deps{Logger: zap.New(core)})
	assert.False(t, e.MatricesValid())

	entries := logs.FilterMessage("weight matrix does not sum to 1, using it anyway").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "low_compensation", entries[0].ContextMap()["listening_reason"])
	assert.InDelta(t, 1.1, entries[0].ContextMap()["sum"], 1e-9)

	result, err := e.MatchFields(context.Background(), scenarioCandidate(), scenarioPosition(), "")
	require.NoError(t, err)
	assert.False(t, result.MatricesValid)
	// The drifting matrix is used as is.
	assert.InDelta(t, 1.1, sumWeights(result.WeightsUsed), 1e-9)
}

func TestMatchErrors(t *testing.T) {
	e := New(Config{}, Deps{})

	_, err := e.Match(context.Background(), nil, &profile.Position{}, "")
	require.ErrorIs(t, err, scoring.ErrMissingProfile)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Match(ctx, &profile.Candidate{}, &profile.Position{}, "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestMatchScoresStayInRange(t *testing.T) {
	e := New(Config{}, Deps{})

	candidates := []map[string]any{
		{},
		scenarioCandidate(),
		{
			"skills":            "go, kubernetes", "status": "employed", "current_salary": 90000, "desired_salary": 50000,
			"preferred_sectors": "banking", "prohibited_sectors": "defense", "openness": 9,
			"contract_ranking":  "cdi, freelance", "preferred_modality": "remote", "notice": "3 months",
			"motivations":       map[string]any{"autonomy": 1, "salary": 2}, "requires_discretion": true,
		},
		{"status": "student", "desired_salary": 30000, "availability": "asap", "listening_reasons": "flexibilité, salaire"},
	}
	positions := []map[string]any{
		{},
		scenarioPosition(),
		{
			"sector":        "defense", "salary_min": 40000, "salary_max": 45000, "experience_min": 10,
			"contract_type": "interim", "modality": "on_site", "urgency": "critical", "max_wait": "1 week",
			"benefits":      "tickets, mutuelle", "trial_period_months": 6,
		},
	}

	for _, reason := range append([]profile.ListeningReason{""}, profile.AllReasons...) {
		for _, c := range candidates {
			for _, p := range positions {
				result, err := e.MatchFields(context.Background(), c, p, string(reason))
				require.NoError(t, err)

				assert.GreaterOrEqual(t, result.TotalScore, 0.0)
				assert.LessOrEqual(t, result.TotalScore, 1.0+1e-9)
				assert.GreaterOrEqual(t, result.Confidence, 0.0)
				assert.LessOrEqual(t, result.Confidence, 1.0)
				for _, cs := range result.Components {
					assert.GreaterOrEqual(t, cs.RawScore, 0.0, cs.Name)
					assert.LessOrEqual(t, cs.RawScore, 1.0, cs.Name)
					if cs.Name != scoring.Location {
						assert.Nil(t, cs.Details["error"], cs.Name)
					}
				}
			}
		}
	}
}

func TestSuggestions(t *testing.T) {
	scores := []scoring.ComponentScore{
		{Name: scoring.Salary, RawScore: 0.6},
		{Name: scoring.Semantic, RawScore: 0.3},
		{Name: scoring.Location, RawScore: 0.4},
		{Name: scoring.Timing, RawScore: 0.9},
	}

	got := suggestions(profile.ReasonLowCompensation, scores)
	require.Len(t, got, 3)
	assert.Equal(t, adviceByReason[profile.ReasonLowCompensation].text, got[0])
	assert.Equal(t, componentAdvice[scoring.Semantic], got[1])
	assert.Equal(t, componentAdvice[scoring.Location], got[2])

	// The reason-specific advice only applies below its threshold.
	scores[0].RawScore = 0.9
	got = suggestions(profile.ReasonLowCompensation, scores)
	assert.Equal(t, []string{componentAdvice[scoring.Semantic], componentAdvice[scoring.Location]}, got)

	// Strong components get no advice.
	got = suggestions(profile.ReasonOther, []scoring.ComponentScore{{Name: scoring.Timing, RawScore: 0.9}})
	assert.Empty(t, got)
}

func TestAggregateConfidence(t *testing.T) {
	scores := []scoring.ComponentScore{
		{Confidence: 1, Weight: 0.75},
		{Confidence: 0.2, Weight: 0.25},
	}
	assert.InDelta(t, 0.8, aggregateConfidence(scores), 1e-9)

	unweighted := []scoring.ComponentScore{{Confidence: 1}, {Confidence: 0.5}}
	assert.InDelta(t, 0.75, aggregateConfidence(unweighted), 1e-9)
	assert.Zero(t, aggregateConfidence(nil))
}
