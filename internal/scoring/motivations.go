package scoring

import (
	"math"
	"sort"

	"github.com/spigell/hh-matcher/internal/profile"
)

// scoreMotivations weighs each candidate motivation by its rank and credits how close
// the position's own ranking of it is. Motivations the position does not offer count zero.
func scoreMotivations(c *profile.Candidate, p *profile.Position) (outcome, error) {
	if len(c.Motivations) == 0 || len(p.Motivations) == 0 {
		return outcome{raw: 0.5, confidence: 0.3, details: map[string]any{"reason": "missing motivations"}}, nil
	}

	labels := make([]string, 0, len(c.Motivations))
	for label := range c.Motivations {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var total, aligned float64
	var shared []string
	for _, label := range labels {
		rank := c.Motivations[label]
		importance := float64(6-rank) / 5
		total += importance

		offered, ok := p.Motivations[label]
		if !ok {
			continue
		}
		gap := math.Abs(float64(rank - offered))
		aligned += (1 - gap/5) * importance
		shared = append(shared, label)
	}

	raw := 0.0
	if total > 0 {
		raw = aligned / total
	}

	return outcome{
		raw:        raw,
		confidence: math.Min(0.9, 0.5+0.1*float64(len(shared))),
		details: map[string]any{
			"shared":    shared,
			"alignment": round(raw, 4),
		},
	}, nil
}

func valuesAny(m profile.Motivations, labels ...string) bool {
	for _, l := range labels {
		if _, ok := m[l]; ok {
			return true
		}
	}
	return false
}
