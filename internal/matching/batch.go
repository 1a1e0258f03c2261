package matching

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/spigell/hh-matcher/internal/scoring"
	"github.com/spigell/hh-matcher/internal/weights"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchResult holds the matches of one candidate against many positions.
type BatchResult struct {
	RunID       string `json:"run_id"`
	CandidateID string `json:"candidate_id,omitempty"`
	// Results is keyed by position ID, or "position-<n>" (1-based) when the ID is empty.
	Results map[string]*Result `json:"results"`
	// Ranking lists the keys of Results by descending total score.
	Ranking      []string `json:"ranking"`
	ProcessingMS float64  `json:"processing_ms"`
}

// Best returns the highest scoring match, or nil for an empty batch.
func (b *BatchResult) Best() *Result {
	if len(b.Ranking) == 0 {
		return nil
	}
	return b.Results[b.Ranking[0]]
}

// MatchMany scores one candidate against every position with bounded concurrency.
func (e *Engine) MatchMany(ctx context.Context, c *profile.Candidate, positions []*profile.Position, reason weights.Reason) (*BatchResult, error) {
	if c == nil {
		return nil, fmt.Errorf("batch: %w", scoring.ErrMissingProfile)
	}

	start := time.Now()
	runID := uuid.NewString()
	log := logger.WithFields(e.logger, zap.String(logger.FieldRunID, runID))
	keys := uniqueKeys("position", len(positions), func(i int) string {
		if positions[i] == nil {
			return ""
		}
		return positions[i].ID
	})

	batch := &BatchResult{
		RunID:       runID,
		CandidateID: c.ID,
		Results:     make(map[string]*Result, len(positions)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)
	for i, p := range positions {
		if p == nil {
			log.Warn("skipping empty position", zap.Int("index", i))
			continue
		}
		g.Go(func() error {
			result, err := e.Match(gctx, c, p, reason)
			if err != nil {
				return fmt.Errorf("position %s: %w", keys[i], err)
			}
			mu.Lock()
			batch.Results[keys[i]] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch.Ranking = rank(batch.Results)
	batch.ProcessingMS = millis(time.Since(start))

	log.Info("batch scored",
		zap.String(logger.FieldCandidateID, c.ID),
		zap.Int("positions", len(batch.Results)),
		zap.Float64("processing_ms", batch.ProcessingMS),
	)
	return batch, nil
}

// CrossMatch scores every candidate against every position. The result is keyed by
// candidate ID, or "candidate-<n>" when the ID is empty.
func (e *Engine) CrossMatch(ctx context.Context, candidates []*profile.Candidate, positions []*profile.Position, reason weights.Reason) (map[string]*BatchResult, error) {
	keys := uniqueKeys("candidate", len(candidates), func(i int) string {
		if candidates[i] == nil {
			return ""
		}
		return candidates[i].ID
	})

	out := make(map[string]*BatchResult, len(candidates))
	for i, c := range candidates {
		if c == nil {
			continue
		}
		batch, err := e.MatchMany(ctx, c, positions, reason)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", keys[i], err)
		}
		out[keys[i]] = batch
	}
	return out, nil
}

// uniqueKeys derives a map key per item from its ID, falling back to "<kind>-<n>" and
// suffixing duplicates.
func uniqueKeys(kind string, n int, id func(i int) string) []string {
	keys := make([]string, n)
	seen := make(map[string]int, n)
	for i := range n {
		key := id(i)
		if key == "" {
			key = fmt.Sprintf("%s-%d", kind, i+1)
		}
		seen[key]++
		if seen[key] > 1 {
			key = fmt.Sprintf("%s#%d", key, seen[key])
		}
		keys[i] = key
	}
	return keys
}

func rank(results map[string]*Result) []string {
	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := results[keys[i]], results[keys[j]]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		return keys[i] < keys[j]
	})
	return keys
}
