package scoring

import (
	"math"

	"github.com/spigell/hh-matcher/internal/profile"
)

// Rows are the candidate preference, columns the company policy.
var modalityMatrix = map[profile.Modality]map[profile.Modality]float64{
	profile.ModalityFullRemote: {
		profile.ModalityFullRemote: 1.0,
		profile.ModalityHybrid:     0.6,
		profile.ModalityOnSite:     0.15,
		profile.ModalityFlexible:   0.85,
	},
	profile.ModalityHybrid: {
		profile.ModalityFullRemote: 0.75,
		profile.ModalityHybrid:     1.0,
		profile.ModalityOnSite:     0.45,
		profile.ModalityFlexible:   0.9,
	},
	profile.ModalityOnSite: {
		profile.ModalityFullRemote: 0.4,
		profile.ModalityHybrid:     0.8,
		profile.ModalityOnSite:     1.0,
		profile.ModalityFlexible:   0.85,
	},
	profile.ModalityFlexible: {
		profile.ModalityFullRemote: 0.9,
		profile.ModalityHybrid:     0.95,
		profile.ModalityOnSite:     0.8,
		profile.ModalityFlexible:   1.0,
	},
}

var (
	collaborationMotivations = []string{"team", "collaboration", "team_spirit"}
	autonomyMotivations      = []string{"autonomy"}
)

const rescueBonus = 0.15

func scoreModality(c *profile.Candidate, p *profile.Position) (outcome, error) {
	want, offer := c.PreferredModality, p.Modality
	if want == profile.ModalityUnknown || offer == profile.ModalityUnknown {
		return outcome{raw: 0.6, confidence: 0.3, details: map[string]any{"reason": "unknown modality"}}, nil
	}

	raw := modalityMatrix[want][offer]
	details := map[string]any{
		"candidate": string(want),
		"company":   string(offer),
		"base":      raw,
	}

	if want == profile.ModalityHybrid && offer == profile.ModalityHybrid {
		if c.DesiredRemoteDays > 0 {
			gap := math.Abs(float64(c.DesiredRemoteDays - p.RemoteDays))
			raw = math.Max(0.6, raw-0.1*gap)
			details["remote_days_gap"] = gap
		}
		if c.MaxCommuteMinutes > 0 && c.MaxCommuteMinutes < 30 && p.RemoteDays <= 1 {
			raw -= 0.1
			details["short_commute_penalty"] = true
		}
	}

	switch {
	case want == profile.ModalityFullRemote && offer == profile.ModalityOnSite && valuesAny(c.Motivations, collaborationMotivations...):
		raw += rescueBonus
		details["rescue"] = "collaboration"
	case want == profile.ModalityOnSite && offer == profile.ModalityFullRemote && valuesAny(c.Motivations, autonomyMotivations...):
		raw += rescueBonus
		details["rescue"] = "autonomy"
	}

	return outcome{raw: raw, confidence: 0.85, details: details}, nil
}
