// Package location scores commute compatibility between a candidate and a position
// using live routing estimates, with a cache and a heuristic fallback.
package location

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/spigell/hh-matcher/internal/cache"
	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/spigell/hh-matcher/internal/routing"
	"github.com/spigell/hh-matcher/internal/scoring"
	"github.com/spigell/hh-matcher/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTimeout    = 20 * time.Second
	logAddressLength = 48
)

var errMissingAddress = errors.New("candidate or position address is missing")

// Config tunes the scorer.
type Config struct {
	// Timeout bounds all provider calls of one Score.
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration
}

// Scorer implements scoring.Scorer for the location component.
type Scorer struct {
	provider routing.Provider
	cfg      Config
	cache    *cache.TTL[string, []leg]
	stats    *Stats
	logger   *zap.Logger
}

// New builds a scorer. A nil provider makes every score take the fallback path; a nil
// stats gets a private counter.
func New(provider routing.Provider, cfg Config, stats *Stats, log *zap.Logger) *Scorer {
	if provider == nil {
		provider = routing.Disabled{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if stats == nil {
		stats = &Stats{}
	}

	return &Scorer{
		provider: provider,
		cfg:      cfg,
		cache:    cache.New[string, []leg](cfg.CacheSize, cfg.CacheTTL),
		stats:    stats,
		logger:   logger.WithFields(log, zap.String("component", string(scoring.Location))),
	}
}

func (s *Scorer) Name() scoring.Component {
	return scoring.Location
}

// Stats returns the counters the scorer reports into.
func (s *Scorer) Stats() *Stats {
	return s.stats
}

// Score never returns an error for provider failures; those produce a degraded fallback score.
func (s *Scorer) Score(ctx context.Context, c *profile.Candidate, p *profile.Position, w scoring.Weight) (scoring.ComponentScore, error) {
	if err := ctx.Err(); err != nil {
		return scoring.ComponentScore{}, &scoring.ScoreError{Component: scoring.Location, Cause: err}
	}
	if c == nil || p == nil {
		return scoring.ComponentScore{}, &scoring.ScoreError{Component: scoring.Location, Cause: scoring.ErrMissingProfile}
	}

	s.stats.requests.Add(1)
	modes, limits := modeLimits(c)

	if strings.TrimSpace(c.Address) == "" || strings.TrimSpace(p.Address) == "" {
		return s.fallback(c, p, w, limits, errMissingAddress), nil
	}

	key := cacheKey(c.Address, p.Address, limits)
	legs, ok := s.cache.Get(key)
	if ok {
		s.stats.cacheHits.Add(1)
	} else {
		var err error
		legs, err = s.route(ctx, c.Address, p.Address, modes, limits)
		if err != nil {
			s.stats.providerFailures.Add(1)
			s.logger.Warn("routing failed, using heuristic",
				zap.Bool("degraded", true),
				zap.String("from", utils.TruncateForLog(c.Address, logAddressLength)),
				zap.String("to", utils.TruncateForLog(p.Address, logAddressLength)),
				zap.Error(err),
			)
			return s.fallback(c, p, w, limits, err), nil
		}
		// Modes that failed are routed again on the next call.
		if allRouted(legs) {
			s.cache.Put(key, legs)
		}
	}

	b := blendLegs(legs)
	multiplier := contextMultiplier(p)
	raw := min(1, b.raw*multiplier)

	confidence := 0.9
	if !allRouted(legs) {
		confidence = 0.7
	}

	details := map[string]any{
		"modes":            legDetails(legs),
		"compatible_modes": b.compatible,
		"fraction":         round2(b.fraction),
		"flexibility":      round2(b.flexibility),
		"efficiency":       round2(b.efficiency),
		"reliability":      round2(b.reliability),
		"multiplier":       round2(multiplier),
	}

	return scoring.NewScore(scoring.Location, raw, confidence, w, details), nil
}

func (s *Scorer) fallback(c *profile.Candidate, p *profile.Position, w scoring.Weight, limits map[profile.TransportMode]int, cause error) scoring.ComponentScore {
	s.stats.fallbacks.Add(1)

	raw, details := fallbackScore(c, p, limits)
	details["fallback"] = true
	details["degraded"] = true
	details["error"] = cause.Error()

	return scoring.NewScore(scoring.Location, raw, 0.3, w, details)
}

// route geocodes both addresses concurrently, then routes every mode concurrently.
// It fails when geocoding fails or when no mode could be routed at all.
func (s *Scorer) route(ctx context.Context, from, to string, modes []profile.TransportMode, limits map[profile.TransportMode]int) ([]leg, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	var origin, destination routing.Coordinates
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		origin, err = s.provider.Geocode(gctx, from)
		return err
	})
	g.Go(func() error {
		var err error
		destination, err = s.provider.Geocode(gctx, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}

	legs := make([]leg, len(modes))
	var rg errgroup.Group
	for i, mode := range modes {
		rg.Go(func() error {
			legs[i] = leg{Mode: mode, Limit: limits[mode]}

			r, err := s.provider.Route(ctx, origin, destination, mode)
			if err != nil {
				legs[i].Err = err.Error()
				return nil
			}
			legs[i].Available = true
			legs[i].Minutes = r.Effective().Minutes()
			legs[i].DelayMin = r.TrafficDelay().Minutes()
			legs[i].Meters = r.DistanceMeters
			return nil
		})
	}
	_ = rg.Wait()

	for _, l := range legs {
		if l.Available {
			return legs, nil
		}
	}
	return nil, fmt.Errorf("no mode could be routed: %w", routing.ErrRouteUnavailable)
}

func allRouted(legs []leg) bool {
	for _, l := range legs {
		if !l.Available {
			return false
		}
	}
	return true
}

func cacheKey(from, to string, limits map[profile.TransportMode]int) string {
	parts := make([]string, 0, len(limits))
	for mode, limit := range limits {
		parts = append(parts, fmt.Sprintf("%s=%d", mode, limit))
	}
	sort.Strings(parts)

	h := sha256.New()
	for _, s := range []string{normalizeAddress(from), normalizeAddress(to), strings.Join(parts, ",")} {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func normalizeAddress(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func legDetails(legs []leg) map[string]any {
	out := make(map[string]any, len(legs))
	for _, l := range legs {
		d := map[string]any{
			"limit_minutes": l.Limit,
			"compatible":    l.compatible(),
		}
		if l.Available {
			d["minutes"] = round2(l.Minutes)
			d["traffic_delay_minutes"] = round2(l.DelayMin)
			d["distance_km"] = round2(float64(l.Meters) / 1000)
		} else {
			d["error"] = l.Err
		}
		out[string(l.Mode)] = d
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
