package scoring

import (
	"math"

	"github.com/spigell/hh-matcher/internal/profile"
)

// Score for candidates without a reference salary, by status.
var noReferenceScores = map[profile.EmploymentStatus]float64{
	profile.StatusFreelance:    0.6,
	profile.StatusJobSeeking:   0.7,
	profile.StatusStudent:      0.65,
	profile.StatusInTransition: 0.65,
}

// scoreProgression compares the raise a candidate expects with what the band offers.
// Both percentages are set on every branch.
func scoreProgression(c *profile.Candidate, p *profile.Position) (outcome, error) {
	var expected, offered, raw float64
	var branch string

	current, desired, top := c.CurrentSalary, c.DesiredSalary, p.SalaryMax

	switch {
	case current <= 0:
		branch = "no_reference_salary"
		raw = 0.6
		if s, ok := noReferenceScores[c.Status]; ok {
			raw = s
		}

	case desired <= 0:
		branch = "no_desired_salary"
		if top <= 0 {
			raw = 0.5
			break
		}
		offered = math.Max(0, (top-current)/current*100)
		switch ratio := top / current; {
		case ratio >= 1.1:
			raw = 0.9
		case ratio >= 1.0:
			raw = 0.75
		default:
			raw = 0.4
		}

	default:
		branch = "full_comparison"
		expected = (desired - current) / current * 100
		if top <= 0 {
			raw = 0.5
			break
		}
		offered = math.Max(0, (top-current)/current*100)
		switch {
		case offered >= expected:
			raw = 1.0
		case offered > 0:
			raw = math.Max(0.3, offered/expected)
		default:
			raw = 0.2
		}
		if c.ProgressionExpectation <= 3 && expected <= 15 {
			raw += 0.1
		}
	}

	if c.ProgressionExpectation >= 4 && p.ProgressionTimeline != "" {
		raw += 0.05
	}

	confidence := 0.8
	if branch != "full_comparison" {
		confidence = 0.5
	}

	return outcome{
		raw:        raw,
		confidence: confidence,
		details: map[string]any{
			"branch":                   branch,
			"expected_progression_pct": round(expected, 2),
			"offered_progression_pct":  round(offered, 2),
		},
	}, nil
}
