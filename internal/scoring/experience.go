package scoring

import (
	"math"

	"github.com/spigell/hh-matcher/internal/profile"
)

func scoreExperience(c *profile.Candidate, p *profile.Position) (outcome, error) {
	if !p.HasExperienceBand() {
		return outcome{raw: 0.7, confidence: 0.4, details: map[string]any{"reason": "no experience band"}}, nil
	}
	if !c.ExperienceKnown {
		return outcome{raw: 0.5, confidence: 0.3, details: map[string]any{"reason": "missing years of experience"}}, nil
	}

	years := c.YearsExperience
	lo, hi := p.ExperienceMin, p.ExperienceMax

	raw := 1.0
	placement := "within_band"
	switch {
	case years < lo:
		raw = math.Max(0.3, 1-0.10*(lo-years))
		placement = "below_band"
	case hi > 0 && years > hi:
		raw = math.Max(0.6, 1-0.05*(years-hi))
		placement = "above_band"
	}

	bonus := 0.0
	if p.Domain != "" && containsFold(c.Domains, p.Domain) {
		bonus = math.Min(0.1, c.DomainYears*0.02)
	}

	return outcome{
		raw:        raw + bonus,
		confidence: 0.85,
		details: map[string]any{
			"years":        years,
			"band_min":     lo,
			"band_max":     hi,
			"placement":    placement,
			"domain_bonus": round(bonus, 4),
		},
	}, nil
}
