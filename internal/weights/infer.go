package weights

import (
	"strings"

	"github.com/spigell/hh-matcher/internal/profile"
)

// Desired salary at or above this multiple of the current one implies low compensation.
const compensationGapRatio = 1.15

type reasonKeywords struct {
	reason   Reason
	keywords []string
}

// Checked in order; the first reason with a hit wins.
var keywordTable = []reasonKeywords{
	{profile.ReasonLowCompensation, []string{"salaire", "salary", "rémunération", "remuneration", "pay", "compensation", "underpaid"}},
	{profile.ReasonRoleMismatch, []string{"poste", "role", "missions", "mismatch", "intéressant"}},
	{profile.ReasonNoGrowthPerspective, []string{"évolution", "evolution", "growth", "progression", "career", "perspective"}},
	{profile.ReasonLocationDissatisfaction, []string{"loin", "distance", "commute", "trajet", "location", "transport"}},
	{profile.ReasonFlexibilityNeeded, []string{"flexibilité", "flexibility", "remote", "télétravail", "horaires", "hours"}},
}

// Inference tells how a listening reason was obtained.
type Inference string

const (
	InferenceExplicit Inference = "explicit"
	InferenceKeyword  Inference = "keyword"
	InferenceSalary   Inference = "salary_gap"
	InferenceDefault  Inference = "default"
)

// Resolve picks the listening reason for a candidate: an explicit one when given,
// otherwise keywords in the reason text and raw tags, then the salary gap, then ReasonOther.
func Resolve(c *profile.Candidate, explicit Reason) (Reason, Inference) {
	if explicit.Valid() {
		return explicit, InferenceExplicit
	}
	if c == nil {
		return profile.ReasonOther, InferenceDefault
	}
	if len(c.ListeningReasons) > 0 {
		return c.ListeningReasons[0], InferenceExplicit
	}
	return Infer(c)
}

// Infer ignores parsed reasons and applies the keyword and salary heuristics only.
func Infer(c *profile.Candidate) (Reason, Inference) {
	text := strings.ToLower(c.ReasonText + " " + strings.Join(c.ReasonTags, " "))
	if strings.TrimSpace(text) != "" {
		for _, entry := range keywordTable {
			for _, kw := range entry.keywords {
				if strings.Contains(text, kw) {
					return entry.reason, InferenceKeyword
				}
			}
		}
	}

	if c.CurrentSalary > 0 && c.DesiredSalary >= c.CurrentSalary*compensationGapRatio {
		return profile.ReasonLowCompensation, InferenceSalary
	}
	return profile.ReasonOther, InferenceDefault
}
