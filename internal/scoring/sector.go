package scoring

import (
	"math"
	"slices"

	"github.com/spigell/hh-matcher/internal/profile"
)

// scoreSector applies the first matching rule: prohibited, preferred, same sector,
// connected sector, then a new sector gated by the candidate's openness.
func scoreSector(c *profile.Candidate, p *profile.Position) (outcome, error) {
	sector := canonicalSector(p.Sector)
	if sector == "" {
		return outcome{raw: 0.6, confidence: 0.3, details: map[string]any{"reason": "unknown company sector"}}, nil
	}

	details := map[string]any{"sector": sector}

	if slices.Contains(canonicalSectors(c.ProhibitedSectors), sector) {
		details["rule"] = "prohibited"
		return outcome{raw: 0, confidence: 0.95, quality: QualityIncompatible, details: details}, nil
	}

	current := canonicalSector(c.CurrentSector)
	preferred := canonicalSectors(c.PreferredSectors)
	experienceBonus := math.Min(0.05, c.DomainYears*0.01)

	var raw float64
	confidence := 0.8
	matched := false

	switch {
	case slices.Contains(preferred, sector):
		raw = 0.95
		if current == sector {
			raw += experienceBonus
		}
		matched = true
		details["rule"] = "preferred"
	case current != "" && current == sector:
		raw = 0.85 + experienceBonus
		matched = true
		details["rule"] = "same_sector"
	default:
		tier := strongestConnection(sector, append([]string{current}, preferred...))
		if tier != tierNone {
			raw = 0.45 + tierStrength[tier]*0.35*opennessFactor(c.Openness)
			details["rule"] = "connected"
			details["tier"] = tier.String()
			break
		}

		details["rule"] = "new_sector"
		confidence = 0.6
		if c.Openness >= 4 {
			raw = 0.6
			if regulatedSectors[sector] {
				raw -= 0.15
				details["regulated"] = true
			}
		} else {
			raw = 0.3
		}
	}

	if !matched && c.SectorPriority >= 4 {
		raw -= 0.05
		details["sector_priority_penalty"] = 0.05
	}

	if p.CompanySize != profile.SizeUnknown && len(c.PreferredCompanySizes) > 0 {
		if slices.Contains(c.PreferredCompanySizes, p.CompanySize) {
			raw += 0.05
			details["company_size"] = "preferred"
		} else {
			raw -= 0.03
			details["company_size"] = "not_preferred"
		}
	}

	return outcome{raw: raw, confidence: confidence, details: details}, nil
}

// opennessFactor maps openness 1..5 onto 0.6..1.0.
func opennessFactor(openness int) float64 {
	return 0.6 + 0.4*float64(openness-1)/4
}

func strongestConnection(sector string, known []string) sectorTier {
	best := tierNone
	for _, k := range known {
		if k == "" {
			continue
		}
		best = max(best, sectorConnection(sector, k))
	}
	return best
}

func canonicalSectors(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = canonicalSector(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
