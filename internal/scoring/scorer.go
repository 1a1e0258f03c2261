package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/spigell/hh-matcher/internal/profile"
)

// Component identifies one compatibility dimension.
type Component string

const (
	Semantic          Component = "semantic"
	Salary            Component = "salary"
	Experience        Component = "experience"
	Location          Component = "location"
	Motivations       Component = "motivations"
	Sector            Component = "sector"
	ContractType      Component = "contract_type"
	Timing            Component = "timing"
	WorkModality      Component = "work_modality"
	SalaryProgression Component = "salary_progression"
	ListeningReason   Component = "listening_reason"
	CandidateStatus   Component = "candidate_status"
)

// Components lists every component in reporting order.
var Components = []Component{
	Semantic,
	Salary,
	Experience,
	Location,
	Motivations,
	Sector,
	ContractType,
	Timing,
	WorkModality,
	SalaryProgression,
	ListeningReason,
	CandidateStatus,
}

// ParseComponent reports false for unknown component names.
func ParseComponent(s string) (Component, bool) {
	for _, c := range Components {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Quality is the qualitative tier of a raw score.
type Quality string

const (
	QualityPerfect      Quality = "perfect"
	QualityExcellent    Quality = "excellent"
	QualityGood         Quality = "good"
	QualityAcceptable   Quality = "acceptable"
	QualityPoor         Quality = "poor"
	QualityIncompatible Quality = "incompatible"
)

// QualityOf maps a raw score onto its tier.
func QualityOf(raw float64) Quality {
	switch {
	case raw >= 0.95:
		return QualityPerfect
	case raw >= 0.85:
		return QualityExcellent
	case raw >= 0.70:
		return QualityGood
	case raw >= 0.50:
		return QualityAcceptable
	case raw >= 0.30:
		return QualityPoor
	default:
		return QualityIncompatible
	}
}

// Weight is the weight a component receives for one match, together with its base weight.
type Weight struct {
	Value float64
	Base  float64
}

// ComponentScore is the outcome of one component for one candidate/position pair.
type ComponentScore struct {
	Name          Component      `json:"name"`
	RawScore      float64        `json:"raw_score"`
	Weight        float64        `json:"weight"`
	BaseWeight    float64        `json:"base_weight"`
	Boost         float64        `json:"boost"`
	WeightedScore float64        `json:"weighted_score"`
	Quality       Quality        `json:"quality"`
	Confidence    float64        `json:"confidence"`
	Details       map[string]any `json:"details,omitempty"`
	ComputationMS float64        `json:"computation_ms"`
}

// NewScore clamps raw and confidence to [0,1] and derives the weighted fields.
func NewScore(name Component, raw, confidence float64, w Weight, details map[string]any) ComponentScore {
	raw = Clamp01(raw)
	return ComponentScore{
		Name:          name,
		RawScore:      raw,
		Weight:        w.Value,
		BaseWeight:    w.Base,
		Boost:         w.Value - w.Base,
		WeightedScore: raw * w.Value,
		Quality:       QualityOf(raw),
		Confidence:    Clamp01(confidence),
		Details:       details,
	}
}

// Neutral is the conservative score used in place of a failed component.
func Neutral(name Component, w Weight, cause error) ComponentScore {
	details := map[string]any{"fallback": true}
	if cause != nil {
		details["error"] = cause.Error()
	}
	return NewScore(name, 0.5, 0.1, w, details)
}

// Scorer computes one component score.
type Scorer interface {
	Name() Component
	Score(ctx context.Context, c *profile.Candidate, p *profile.Position, w Weight) (ComponentScore, error)
}

var (
	// ErrMissingProfile is returned when a scorer receives a nil candidate or position.
	ErrMissingProfile = errors.New("missing candidate or position")
	// ErrNonFinite is returned when a rule produced NaN or an infinite score.
	ErrNonFinite = errors.New("non-finite score")
)

// ScoreError wraps a failure of a single component.
type ScoreError struct {
	Component Component
	Cause     error
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Component, e.Cause)
}

func (e *ScoreError) Unwrap() error {
	return e.Cause
}

// outcome is what a rule decides; the adapter turns it into a ComponentScore.
type outcome struct {
	raw        float64
	confidence float64
	// quality overrides the tier derived from raw when set.
	quality Quality
	details map[string]any
}

type rule func(c *profile.Candidate, p *profile.Position) (outcome, error)

type ruleScorer struct {
	name Component
	rule rule
}

func (s ruleScorer) Name() Component {
	return s.name
}

func (s ruleScorer) Score(ctx context.Context, c *profile.Candidate, p *profile.Position, w Weight) (ComponentScore, error) {
	if err := ctx.Err(); err != nil {
		return ComponentScore{}, &ScoreError{Component: s.name, Cause: err}
	}
	if c == nil || p == nil {
		return ComponentScore{}, &ScoreError{Component: s.name, Cause: ErrMissingProfile}
	}

	o, err := s.rule(c, p)
	if err != nil {
		return ComponentScore{}, &ScoreError{Component: s.name, Cause: err}
	}
	if math.IsNaN(o.raw) || math.IsInf(o.raw, 0) || math.IsNaN(o.confidence) {
		return ComponentScore{}, &ScoreError{Component: s.name, Cause: ErrNonFinite}
	}

	score := NewScore(s.name, o.raw, o.confidence, w, o.details)
	if o.quality != "" {
		score.Quality = o.quality
	}
	return score, nil
}

var rules = map[Component]rule{
	Semantic:          scoreSemantic,
	Salary:            scoreSalary,
	Experience:        scoreExperience,
	Motivations:       scoreMotivations,
	Sector:            scoreSector,
	ContractType:      scoreContract,
	Timing:            scoreTiming,
	WorkModality:      scoreModality,
	SalaryProgression: scoreProgression,
	ListeningReason:   scoreCoherence,
	CandidateStatus:   scoreStatus,
}

// New returns the built-in scorer for a component. Location has no built-in scorer
// because it needs a routing provider.
func New(name Component) (Scorer, bool) {
	r, ok := rules[name]
	if !ok {
		return nil, false
	}
	return ruleScorer{name: name, rule: r}, true
}

// Defaults returns every built-in scorer in reporting order.
func Defaults() []Scorer {
	out := make([]Scorer, 0, len(rules))
	for _, name := range Components {
		if s, ok := New(name); ok {
			out = append(out, s)
		}
	}
	return out
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
