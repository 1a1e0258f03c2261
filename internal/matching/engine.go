// Package matching scores candidates against positions with weights adapted to the
// candidate's listening reason.
package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spigell/hh-matcher/internal/location"
	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/spigell/hh-matcher/internal/scoring"
	"github.com/spigell/hh-matcher/internal/weights"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 5

// Config configures an Engine.
type Config struct {
	// Weights defaults to weights.Default().
	Weights weights.Matrices
	// Concurrency bounds how many positions a batch scores at once.
	Concurrency int
}

// Deps are the collaborators of an Engine. Every field is optional.
type Deps struct {
	Logger *zap.Logger
	// Location defaults to a location scorer without routing provider.
	Location scoring.Scorer
	Stats    *Stats
	// Scorers replace the built-in scorers with the same Name.
	Scorers []scoring.Scorer
}

// Engine runs every component scorer and combines them into a Result.
// It is safe for concurrent use.
type Engine struct {
	cfg           Config
	scorers       []scoring.Scorer
	matrices      weights.Matrices
	matricesValid bool
	stats         *Stats
	logger        *zap.Logger
}

func New(cfg Config, deps Deps) *Engine {
	log := logger.WithFields(deps.Logger)

	if cfg.Weights == nil {
		cfg.Weights = weights.Default()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if deps.Stats == nil {
		deps.Stats = &Stats{}
	}
	if deps.Location == nil {
		deps.Location = location.New(nil, location.Config{}, nil, log)
	}

	overrides := map[scoring.Component]scoring.Scorer{scoring.Location: deps.Location}
	for _, s := range deps.Scorers {
		overrides[s.Name()] = s
	}

	scorers := make([]scoring.Scorer, 0, len(scoring.Components))
	for _, name := range scoring.Components {
		if s, ok := overrides[name]; ok {
			scorers = append(scorers, s)
			continue
		}
		if s, ok := scoring.New(name); ok {
			scorers = append(scorers, s)
		}
	}

	e := &Engine{
		cfg:           cfg,
		scorers:       scorers,
		matrices:      cfg.Weights,
		matricesValid: true,
		stats:         deps.Stats,
		logger:        log,
	}

	if err := cfg.Weights.Validate(); err != nil {
		e.matricesValid = false
		for _, verr := range unjoin(err) {
			var ve *weights.ValidationError
			if errors.As(verr, &ve) {
				log.Error("weight matrix does not sum to 1, using it anyway",
					zap.String(logger.FieldReason, string(ve.Reason)),
					zap.Float64("sum", ve.Sum),
				)
				continue
			}
			log.Error("invalid weight matrix", zap.Error(verr))
		}
	}

	return e
}

// MatricesValid reports whether every weight matrix sums to 1.
func (e *Engine) MatricesValid() bool {
	return e.matricesValid
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() StatsSnapshot {
	return e.stats.Snapshot()
}

// Match scores c against p. An empty or unknown reason is resolved from the candidate.
// Component failures degrade to neutral scores; Match only fails on nil profiles or a
// cancelled context.
func (e *Engine) Match(ctx context.Context, c *profile.Candidate, p *profile.Position, reason weights.Reason) (*Result, error) {
	if c == nil || p == nil {
		return nil, scoring.ErrMissingProfile
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	resolved, inference := weights.Resolve(c, reason)
	matrix := e.matrices.For(resolved)
	base := e.matrices.Base()

	log := logger.WithMatchFields(e.logger, logger.Match{
		ID:          uuid.NewString(),
		CandidateID: c.ID,
		PositionID:  p.ID,
		Reason:      string(resolved),
	})

	scores := make([]scoring.ComponentScore, len(e.scorers))
	var g errgroup.Group
	for i, s := range e.scorers {
		w := scoring.Weight{Value: matrix[s.Name()], Base: base[s.Name()]}
		g.Go(func() error {
			scores[i] = e.score(ctx, s, c, p, w, log)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0.0
	for _, cs := range scores {
		total += cs.WeightedScore
	}

	used := make(map[scoring.Component]float64, len(matrix))
	for name, w := range matrix {
		used[name] = w
	}

	result := &Result{
		CandidateID:     c.ID,
		PositionID:      p.ID,
		TotalScore:      total,
		ListeningReason: resolved,
		ReasonInferred:  inference != weights.InferenceExplicit,
		Inference:       inference,
		Components:      scores,
		WeightsUsed:     used,
		MatricesValid:   e.matricesValid,
		Confidence:      aggregateConfidence(scores),
		TopContributors: contributors(scores),
		Suggestions:     suggestions(resolved, scores),
		Warnings:        completenessWarnings(c, p),
		ProcessingMS:    millis(time.Since(start)),
	}

	e.stats.matches.Add(1)
	log.Debug("match scored",
		zap.Float64("total_score", result.TotalScore),
		zap.String("inference", string(inference)),
		zap.Float64("confidence", result.Confidence),
		zap.Float64("processing_ms", result.ProcessingMS),
	)

	return result, nil
}

// MatchFields decodes upstream records, then matches them. Decoding problems and an
// unrecognised reason become warnings, never errors.
func (e *Engine) MatchFields(ctx context.Context, candidate, position map[string]any, reason string) (*Result, error) {
	c, cWarnings := profile.DecodeCandidate(candidate)
	p, pWarnings := profile.DecodePosition(position)

	var warnings []string
	explicit, ok := profile.ParseListeningReason(reason)
	if strings.TrimSpace(reason) != "" && !ok {
		warnings = append(warnings, fmt.Sprintf("unknown listening reason %q, inferring one", reason))
	}

	result, err := e.Match(ctx, c, p, explicit)
	if err != nil {
		return nil, err
	}

	warnings = append(warnings, prefixed("candidate: ", cWarnings)...)
	warnings = append(warnings, prefixed("position: ", pWarnings)...)
	result.Warnings = append(warnings, result.Warnings...)
	return result, nil
}

// score runs one scorer, turning errors and panics into a neutral score.
func (e *Engine) score(ctx context.Context, s scoring.Scorer, c *profile.Candidate, p *profile.Position, w scoring.Weight, log *zap.Logger) (cs scoring.ComponentScore) {
	start := time.Now()
	name := s.Name()

	defer func() {
		if r := recover(); r != nil {
			cs = e.degrade(name, w, fmt.Errorf("panic: %v", r), log)
		}
		cs.ComputationMS = millis(time.Since(start))
	}()

	cs, err := s.Score(ctx, c, p, w)
	if err != nil {
		return e.degrade(name, w, err, log)
	}

	if fallback, _ := cs.Details["fallback"].(bool); fallback {
		e.stats.degradedComponents.Add(1)
	}
	return cs
}

func (e *Engine) degrade(name scoring.Component, w scoring.Weight, cause error, log *zap.Logger) scoring.ComponentScore {
	e.stats.componentFailures.Add(1)
	log.Warn("component failed, using neutral score", zap.String("component", string(name)), zap.Error(cause))
	return scoring.Neutral(name, w, cause)
}

func unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func prefixed(prefix string, items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, prefix+item)
	}
	return out
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
