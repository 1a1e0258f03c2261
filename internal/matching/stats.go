package matching

import "sync/atomic"

// Stats accumulates engine activity across matches. Share one value between engines
// to aggregate; the zero value is ready to use.
type Stats struct {
	matches            atomic.Int64
	componentFailures  atomic.Int64
	degradedComponents atomic.Int64
}

type StatsSnapshot struct {
	Matches            int64 `json:"matches"`
	ComponentFailures  int64 `json:"component_failures"`
	DegradedComponents int64 `json:"degraded_components"`
}

func (s *Stats) Snapshot() StatsSnapshot {
	if s == nil {
		return StatsSnapshot{}
	}
	return StatsSnapshot{
		Matches:            s.matches.Load(),
		ComponentFailures:  s.componentFailures.Load(),
		DegradedComponents: s.degradedComponents.Load(),
	}
}
