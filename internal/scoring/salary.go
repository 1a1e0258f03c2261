package scoring

import (
	"math"

	"github.com/spigell/hh-matcher/internal/profile"
)

// scoreSalary checks the desired salary against the position band. A missing minimum
// counts as zero and a missing maximum leaves the band open-ended.
func scoreSalary(c *profile.Candidate, p *profile.Position) (outcome, error) {
	desired := c.DesiredSalary
	lo, hi := p.SalaryMin, p.SalaryMax

	if desired <= 0 || !p.HasSalaryBand() {
		return outcome{
			raw:        0.5,
			confidence: 0.3,
			details:    map[string]any{"reason": "missing salary data"},
		}, nil
	}

	var raw, gap float64
	var placement string
	switch {
	case hi > 0 && desired > hi:
		gap = (desired - hi) / hi
		raw = math.Max(0.2, 1-2*gap)
		placement = "above_band"
	case desired >= lo:
		raw = 1
		placement = "within_band"
	default:
		gap = (lo - desired) / lo
		raw = math.Max(0.6, 1-gap)
		placement = "below_band"
	}

	return outcome{
		raw:        raw,
		confidence: 0.9,
		details: map[string]any{
			"desired":   desired,
			"band_min":  lo,
			"band_max":  hi,
			"gap_pct":   round(gap*100, 2),
			"placement": placement,
		},
	}, nil
}
