package scoring

import "github.com/spigell/hh-matcher/internal/profile"

// Positions asking for an immediate start still get half a week.
const minWaitWeeks = 0.5

func scoreTiming(c *profile.Candidate, p *profile.Position) (outcome, error) {
	total := c.Availability.Weeks + c.Notice.Weeks
	wait := p.MaxWait.Weeks
	if wait < minWaitWeeks {
		wait = minWaitWeeks
	}
	ratio := total / wait

	var raw float64
	var band string
	incompatible := false

	switch {
	case ratio <= 1:
		band = "on_time"
		if p.Urgency == profile.UrgencyCritical || p.Urgency == profile.UrgencyUrgent {
			raw = 0.9 + 0.1*(1-ratio)
		} else {
			raw = 1.0
		}
	case ratio <= 1.25:
		raw, band = 0.8, "slight_delay"
	case ratio <= 1.5:
		raw, band = 0.65, "moderate_delay"
	case ratio <= 2:
		raw, band = 0.5, "needs_negotiation"
	default:
		raw, band = 0.3, "too_late"
		incompatible = true
	}

	if ratio > 1 && c.AvailabilityFlexible {
		raw += 0.05
	}

	o := outcome{
		raw:        raw,
		confidence: 0.8,
		details: map[string]any{
			"candidate_weeks": round(total, 2),
			"max_wait_weeks":  round(wait, 2),
			"ratio":           round(ratio, 3),
			"band":            band,
			"urgency":         string(p.Urgency),
			"incompatible":    incompatible,
		},
	}
	if incompatible {
		o.quality = QualityIncompatible
	}
	return o, nil
}
