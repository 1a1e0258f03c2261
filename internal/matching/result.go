package matching

import (
	"fmt"
	"sort"

	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/spigell/hh-matcher/internal/scoring"
	"github.com/spigell/hh-matcher/internal/weights"
)

const (
	topContributors = 3
	maxSuggestions  = 3
	// Components scoring at or above this are not worth a suggestion.
	suggestionThreshold = 0.85
)

// Result is the outcome of matching one candidate against one position.
type Result struct {
	CandidateID     string                        `json:"candidate_id,omitempty"`
	PositionID      string                        `json:"position_id,omitempty"`
	TotalScore      float64                       `json:"total_score"`
	ListeningReason weights.Reason                `json:"listening_reason"`
	ReasonInferred  bool                          `json:"reason_inferred"`
	Inference       weights.Inference             `json:"inference"`
	Components      []scoring.ComponentScore      `json:"components"`
	ProcessingMS    float64                       `json:"processing_ms"`
	WeightsUsed     map[scoring.Component]float64 `json:"weights_used"`
	MatricesValid   bool                          `json:"matrices_valid"`
	Confidence      float64                       `json:"confidence"`
	TopContributors []Contributor                 `json:"top_contributors"`
	Suggestions     []string                      `json:"suggestions"`
	Warnings        []string                      `json:"warnings,omitempty"`
}

// Contributor is one of the components adding the most to the total.
type Contributor struct {
	Name          scoring.Component `json:"name"`
	WeightedScore float64           `json:"weighted_score"`
	Quality       scoring.Quality   `json:"quality"`
}

// Component returns the score of one component.
func (r *Result) Component(name scoring.Component) (scoring.ComponentScore, bool) {
	for _, cs := range r.Components {
		if cs.Name == name {
			return cs, true
		}
	}
	return scoring.ComponentScore{}, false
}

// aggregateConfidence is the weight-weighted mean of component confidences.
func aggregateConfidence(scores []scoring.ComponentScore) float64 {
	var sum, weight float64
	for _, cs := range scores {
		sum += cs.Confidence * cs.Weight
		weight += cs.Weight
	}
	if weight == 0 {
		if len(scores) == 0 {
			return 0
		}
		for _, cs := range scores {
			sum += cs.Confidence
		}
		return sum / float64(len(scores))
	}
	return sum / weight
}

func contributors(scores []scoring.ComponentScore) []Contributor {
	sorted := append([]scoring.ComponentScore(nil), scores...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WeightedScore > sorted[j].WeightedScore
	})

	out := make([]Contributor, 0, topContributors)
	for _, cs := range sorted[:min(topContributors, len(sorted))] {
		out = append(out, Contributor{Name: cs.Name, WeightedScore: cs.WeightedScore, Quality: cs.Quality})
	}
	return out
}

var componentAdvice = map[scoring.Component]string{
	scoring.Semantic:          "Close the skills gap: discuss training or adjust the required skills.",
	scoring.Salary:            "Align the salary offer with the candidate's expectations.",
	scoring.Experience:        "Check whether the experience requirement can be relaxed or the role re-levelled.",
	scoring.Location:          "Ease the commute with remote days, flexible hours or relocation support.",
	scoring.Motivations:       "Highlight what the position offers on the candidate's top motivations.",
	scoring.Sector:            "Explain how the candidate's sector background transfers to this company.",
	scoring.ContractType:      "Discuss the contract type, it is low in the candidate's ranking.",
	scoring.Timing:            "Negotiate the start date or the notice period.",
	scoring.WorkModality:      "Review the remote work policy against the candidate's preferred modality.",
	scoring.SalaryProgression: "Present a salary progression path that meets the candidate's expectations.",
	scoring.ListeningReason:   "Clarify the candidate's reasons for changing jobs, they look inconsistent.",
	scoring.CandidateStatus:   "Account for the candidate's current situation in the recruitment timeline.",
}

type reasonAdvice struct {
	component scoring.Component
	below     float64
	text      string
}

var adviceByReason = map[weights.Reason]reasonAdvice{
	profile.ReasonLowCompensation:         {scoring.Salary, 0.8, "Renegotiate the package: compensation is why the candidate is listening."},
	profile.ReasonRoleMismatch:            {scoring.Semantic, 0.7, "Detail the missions of the role: the candidate is leaving a role that does not fit."},
	profile.ReasonNoGrowthPerspective:     {scoring.SalaryProgression, 0.8, "Present a concrete career path: the candidate lacks growth perspectives."},
	profile.ReasonLocationDissatisfaction: {scoring.Location, 0.8, "Put the commute first: the candidate is leaving because of location."},
	profile.ReasonFlexibilityNeeded:       {scoring.WorkModality, 0.8, "Offer more remote days or flexible hours: the candidate needs flexibility."},
}

// suggestions proposes up to three improvements: the reason-specific one first, then
// advice for the two weakest components.
func suggestions(reason weights.Reason, scores []scoring.ComponentScore) []string {
	out := make([]string, 0, maxSuggestions)
	seen := map[scoring.Component]bool{}

	if advice, ok := adviceByReason[reason]; ok {
		for _, cs := range scores {
			if cs.Name == advice.component && cs.RawScore < advice.below {
				out = append(out, advice.text)
				seen[cs.Name] = true
			}
		}
	}

	sorted := append([]scoring.ComponentScore(nil), scores...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RawScore < sorted[j].RawScore
	})

	for _, cs := range sorted[:min(2, len(sorted))] {
		if len(out) == maxSuggestions || cs.RawScore >= suggestionThreshold || seen[cs.Name] {
			continue
		}
		text, ok := componentAdvice[cs.Name]
		if !ok {
			text = fmt.Sprintf("Improve %s.", cs.Name)
		}
		out = append(out, text)
		seen[cs.Name] = true
	}
	return out
}

func completenessWarnings(c *profile.Candidate, p *profile.Position) []string {
	var out []string
	for _, field := range c.Completeness() {
		out = append(out, "candidate: missing "+field)
	}
	for _, field := range p.Completeness() {
		out = append(out, "position: missing "+field)
	}
	return out
}
