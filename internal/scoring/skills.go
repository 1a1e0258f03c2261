package scoring

import (
	"sort"
	"strings"

	"github.com/spigell/hh-matcher/internal/profile"
)

const (
	emptySkillsScore = 0.3
	domainBonus      = 0.1
)

// scoreSemantic is the Jaccard similarity of the two skill sets.
func scoreSemantic(c *profile.Candidate, p *profile.Position) (outcome, error) {
	have := lowerSet(c.Skills)
	want := lowerSet(p.RequiredSkills)

	if len(have) == 0 || len(want) == 0 {
		return outcome{
			raw:        emptySkillsScore,
			confidence: 0.3,
			details: map[string]any{
				"reason":           "missing skills",
				"candidate_skills": len(have),
				"required_skills":  len(want),
			},
		}, nil
	}

	var matched, missing []string
	for skill := range want {
		if have[skill] {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	union := len(have) + len(want) - len(matched)
	jaccard := float64(len(matched)) / float64(union)

	bonus := 0.0
	if p.Domain != "" && containsFold(c.Domains, p.Domain) {
		bonus = domainBonus
	}

	confidence := 0.7
	if len(have) >= 3 && len(want) >= 3 {
		confidence = 0.9
	}

	return outcome{
		raw:        jaccard + bonus,
		confidence: confidence,
		details: map[string]any{
			"jaccard":        round(jaccard, 4),
			"matched":        matched,
			"missing":        missing,
			"domain_bonus":   bonus,
			"skills_matched": len(matched),
			"skills_union":   union,
		},
	}, nil
}

func lowerSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, s := range items {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out[s] = true
		}
	}
	return out
}

func containsFold(items []string, target string) bool {
	target = strings.TrimSpace(target)
	for _, s := range items {
		if strings.EqualFold(strings.TrimSpace(s), target) {
			return true
		}
	}
	return false
}
