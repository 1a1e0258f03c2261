package scoring

import (
	"math"
	"slices"

	"github.com/spigell/hh-matcher/internal/profile"
)

// Score by position of the offered contract in the candidate's ranking.
var contractRankScores = []float64{1.0, 0.85, 0.65, 0.40, 0.20}

const (
	contractNotRanked     = 0.15
	contractUnknown       = 0.6
	benefitBonusPerItem   = 0.01
	benefitBonusMax       = 0.05
	shortTrialBonus       = 0.03
	longTrialPenalty      = 0.03
	shortTrialMonths      = 2
	longTrialMonths       = 4
	salaryToleranceFactor = 0.1
)

func scoreContract(c *profile.Candidate, p *profile.Position) (outcome, error) {
	details := map[string]any{"offered": string(p.ContractType)}

	rankScore := contractUnknown
	confidence := 0.4
	incompatible := false

	if len(c.ContractRanking) > 0 && p.ContractType != profile.ContractUnknown {
		confidence = 0.8
		idx := slices.Index(c.ContractRanking, p.ContractType)
		switch {
		case idx < 0:
			rankScore = contractNotRanked
			incompatible = true
		case idx < len(contractRankScores):
			rankScore = contractRankScores[idx]
		default:
			rankScore = contractRankScores[len(contractRankScores)-1]
		}
		details["rank"] = idx + 1
	}

	overlap := salaryOverlap(c.DesiredSalary, p.SalaryMin, p.SalaryMax)
	benefits := math.Min(benefitBonusMax, benefitBonusPerItem*float64(len(p.Benefits)))

	trial := 0.0
	switch {
	case p.TrialPeriodMonths > 0 && p.TrialPeriodMonths <= shortTrialMonths:
		trial = shortTrialBonus
	case p.TrialPeriodMonths > longTrialMonths:
		trial = -longTrialPenalty
	}

	details["rank_score"] = rankScore
	details["salary_overlap"] = round(overlap, 4)
	details["benefits_bonus"] = round(benefits, 4)
	details["trial_adjustment"] = trial

	o := outcome{
		raw:        0.75*rankScore + 0.25*overlap + benefits + trial,
		confidence: confidence,
		details:    details,
	}
	if incompatible {
		o.quality = QualityIncompatible
	}
	return o, nil
}

// salaryOverlap is the share of the candidate's acceptable range (desired ±10%) that
// falls inside the position band. Missing data is neutral.
func salaryOverlap(desired, lo, hi float64) float64 {
	if desired <= 0 || hi <= 0 {
		return 0.5
	}
	from := desired * (1 - salaryToleranceFactor)
	to := desired * (1 + salaryToleranceFactor)

	overlap := math.Min(to, hi) - math.Max(from, lo)
	if overlap <= 0 {
		return 0
	}
	return overlap / (to - from)
}
