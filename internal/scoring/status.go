package scoring

import (
	"math"

	"github.com/spigell/hh-matcher/internal/profile"
)

type urgencyScores map[profile.Urgency]float64

var statusMatrix = map[profile.EmploymentStatus]urgencyScores{
	profile.StatusJobSeeking: {
		profile.UrgencyCritical: 1.0,
		profile.UrgencyUrgent:   0.95,
		profile.UrgencyNormal:   0.85,
		profile.UrgencyFlexible: 0.8,
	},
	profile.StatusEmployed: {
		profile.UrgencyCritical: 0.3,
		profile.UrgencyUrgent:   0.5,
		profile.UrgencyNormal:   0.8,
		profile.UrgencyFlexible: 0.9,
	},
	profile.StatusFreelance: {
		profile.UrgencyCritical: 0.85,
		profile.UrgencyUrgent:   0.85,
		profile.UrgencyNormal:   0.8,
		profile.UrgencyFlexible: 0.75,
	},
	profile.StatusStudent: {
		profile.UrgencyCritical: 0.7,
		profile.UrgencyUrgent:   0.75,
		profile.UrgencyNormal:   0.75,
		profile.UrgencyFlexible: 0.7,
	},
	profile.StatusInTransition: {
		profile.UrgencyCritical: 0.9,
		profile.UrgencyUrgent:   0.9,
		profile.UrgencyNormal:   0.85,
		profile.UrgencyFlexible: 0.8,
	},
}

const unknownStatusScore = 0.6

type noticeCurve struct {
	allowanceWeeks float64
	perWeek        float64
}

var noticeCurves = map[profile.Urgency]noticeCurve{
	profile.UrgencyCritical: {allowanceWeeks: 2, perWeek: 0.05},
	profile.UrgencyUrgent:   {allowanceWeeks: 4, perWeek: 0.03},
	profile.UrgencyNormal:   {allowanceWeeks: 8, perWeek: 0.015},
	profile.UrgencyFlexible: {allowanceWeeks: 12, perWeek: 0.01},
}

const maxNoticePenalty = 0.4

func scoreStatus(c *profile.Candidate, p *profile.Position) (outcome, error) {
	urgency := p.Urgency
	if _, ok := noticeCurves[urgency]; !ok {
		urgency = profile.UrgencyNormal
	}

	base := unknownStatusScore
	confidence := 0.5
	if row, ok := statusMatrix[c.Status]; ok {
		base = row[urgency]
		confidence = 0.85
	}

	curve := noticeCurves[urgency]
	extra := math.Max(0, c.Notice.Weeks-curve.allowanceWeeks)
	penalty := math.Min(maxNoticePenalty, extra*curve.perWeek)

	raw := base - penalty
	details := map[string]any{
		"status":         string(c.Status),
		"urgency":        string(urgency),
		"base":           base,
		"notice_weeks":   round(c.Notice.Weeks, 2),
		"notice_penalty": round(penalty, 4),
	}

	if c.Status == profile.StatusEmployed && c.RequiresDiscretion {
		if p.RemoteInterviews {
			raw += 0.02
			details["discretion"] = "remote_interviews"
		} else {
			raw -= 0.1
			details["discretion"] = "at_risk"
		}
	}

	return outcome{raw: raw, confidence: confidence, details: details}, nil
}
