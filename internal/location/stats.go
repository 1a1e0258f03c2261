package location

import "sync/atomic"

// Stats counts location scorer activity. The zero value is ready to use and safe
// for concurrent use.
type Stats struct {
	requests         atomic.Int64
	cacheHits        atomic.Int64
	providerFailures atomic.Int64
	fallbacks        atomic.Int64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Requests         int64 `json:"requests"`
	CacheHits        int64 `json:"cache_hits"`
	ProviderFailures int64 `json:"provider_failures"`
	Fallbacks        int64 `json:"fallbacks"`
}

func (s *Stats) Snapshot() StatsSnapshot {
	if s == nil {
		return StatsSnapshot{}
	}
	return StatsSnapshot{
		Requests:         s.requests.Load(),
		CacheHits:        s.cacheHits.Load(),
		ProviderFailures: s.providerFailures.Load(),
		Fallbacks:        s.fallbacks.Load(),
	}
}
