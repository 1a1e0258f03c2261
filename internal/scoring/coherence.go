package scoring

import "github.com/spigell/hh-matcher/internal/profile"

type reasonPair struct {
	a, b profile.ListeningReason
}

// Secondary reasons that usually go together with the primary one.
var compatibleReasons = map[reasonPair]bool{
	{profile.ReasonLowCompensation, profile.ReasonNoGrowthPerspective}:       true,
	{profile.ReasonRoleMismatch, profile.ReasonNoGrowthPerspective}:          true,
	{profile.ReasonLocationDissatisfaction, profile.ReasonFlexibilityNeeded}: true,
	{profile.ReasonLowCompensation, profile.ReasonRoleMismatch}:              true,
}

// Secondary reasons that undermine the primary one.
var contradictoryReasons = map[reasonPair]bool{
	{profile.ReasonLowCompensation, profile.ReasonFlexibilityNeeded}:           true,
	{profile.ReasonNoGrowthPerspective, profile.ReasonLocationDissatisfaction}: true,
}

func pairIn(set map[reasonPair]bool, a, b profile.ListeningReason) bool {
	return set[reasonPair{a, b}] || set[reasonPair{b, a}]
}

// scoreCoherence checks the stated listening reasons against the rest of the profile.
func scoreCoherence(c *profile.Candidate, _ *profile.Position) (outcome, error) {
	if len(c.ListeningReasons) == 0 {
		return outcome{raw: 0.5, confidence: 0.3, details: map[string]any{"reason": "no stated listening reason"}}, nil
	}

	primary := c.ListeningReasons[0]
	signals := reasonSignals(c, primary)

	raw := 0.5
	for _, s := range signals {
		raw += s.delta
	}

	intensity := 0.0
	var contradictions []string
	for _, secondary := range c.ListeningReasons[1:] {
		switch {
		case pairIn(compatibleReasons, primary, secondary):
			intensity += 0.05
		case pairIn(contradictoryReasons, primary, secondary):
			raw -= 0.1
			contradictions = append(contradictions, string(secondary))
		}
	}
	raw += min(intensity, 0.1)

	names := make([]string, 0, len(signals))
	for _, s := range signals {
		names = append(names, s.name)
	}

	return outcome{
		raw:        raw,
		confidence: 0.7,
		details: map[string]any{
			"primary":        string(primary),
			"signals":        names,
			"intensity":      round(min(intensity, 0.1), 2),
			"contradictions": contradictions,
			"coherence":      coherenceTier(Clamp01(raw)),
		},
	}, nil
}

type signal struct {
	name  string
	delta float64
}

func reasonSignals(c *profile.Candidate, r profile.ListeningReason) []signal {
	var out []signal
	add := func(name string, delta float64) {
		out = append(out, signal{name: name, delta: delta})
	}

	remoteLeaning := c.PreferredModality == profile.ModalityFullRemote || c.PreferredModality == profile.ModalityHybrid
	shortCommute := c.MaxCommuteMinutes > 0 && c.MaxCommuteMinutes <= 45

	switch r {
	case profile.ReasonLowCompensation:
		if c.Status == profile.StatusEmployed {
			add("employed", 0.2)
		}
		switch {
		case c.CurrentSalary > 0 && c.DesiredSalary >= c.CurrentSalary*1.15:
			add("large_salary_gap", 0.3)
		case c.CurrentSalary > 0 && c.DesiredSalary > 0 && c.DesiredSalary <= c.CurrentSalary:
			add("no_salary_gap", -0.2)
		}
	case profile.ReasonFlexibilityNeeded:
		switch {
		case remoteLeaning:
			add("remote_preference", 0.3)
		case c.PreferredModality == profile.ModalityOnSite:
			add("on_site_preference", -0.2)
		}
		if shortCommute {
			add("short_commute_tolerance", 0.2)
		}
	case profile.ReasonLocationDissatisfaction:
		if shortCommute || remoteLeaning {
			add("commute_sensitive", 0.3)
		}
	case profile.ReasonRoleMismatch:
		if len(c.Motivations) >= 3 {
			add("ranked_motivations", 0.2)
		}
	case profile.ReasonNoGrowthPerspective:
		if c.ProgressionExpectation >= 4 {
			add("high_progression_expectation", 0.3)
		}
	}
	return out
}

func coherenceTier(raw float64) string {
	switch {
	case raw >= 0.85:
		return "excellent"
	case raw >= 0.7:
		return "good"
	case raw >= 0.5:
		return "average"
	case raw >= 0.3:
		return "poor"
	default:
		return "incoherent"
	}
}
