package profile

// ListeningReason is why a candidate is open to a new position.
type ListeningReason string

const (
	ReasonLowCompensation         ListeningReason = "low_compensation"
	ReasonRoleMismatch            ListeningReason = "role_mismatch"
	ReasonNoGrowthPerspective     ListeningReason = "no_growth_perspective"
	ReasonLocationDissatisfaction ListeningReason = "location_dissatisfaction"
	ReasonFlexibilityNeeded       ListeningReason = "flexibility_needed"
	ReasonOther                   ListeningReason = "other"
)

// AllReasons lists every listening reason in a stable order.
var AllReasons = []ListeningReason{
	ReasonLowCompensation,
	ReasonRoleMismatch,
	ReasonNoGrowthPerspective,
	ReasonLocationDissatisfaction,
	ReasonFlexibilityNeeded,
	ReasonOther,
}

var reasonAliases = map[string]ListeningReason{
	"low_compensation":         ReasonLowCompensation,
	"low-compensation":         ReasonLowCompensation,
	"low compensation":         ReasonLowCompensation,
	"salaire trop faible":      ReasonLowCompensation,
	"remuneration_faible":      ReasonLowCompensation,
	"rémunération trop faible": ReasonLowCompensation,
	"salary_too_low":           ReasonLowCompensation,
	"role_mismatch":            ReasonRoleMismatch,
	"role-mismatch":            ReasonRoleMismatch,
	"poste_ne_coincide_pas":    ReasonRoleMismatch,
	"no_growth_perspective":    ReasonNoGrowthPerspective,
	"no-growth-perspective":    ReasonNoGrowthPerspective,
	"lack_of_growth":           ReasonNoGrowthPerspective,
	"manque_perspectives":      ReasonNoGrowthPerspective,
	"location_dissatisfaction": ReasonLocationDissatisfaction,
	"location-dissatisfaction": ReasonLocationDissatisfaction,
	"poste_trop_loin":          ReasonLocationDissatisfaction,
	"flexibility_needed":       ReasonFlexibilityNeeded,
	"flexibility-needed":       ReasonFlexibilityNeeded,
	"manque_flexibilite":       ReasonFlexibilityNeeded,
	"other":                    ReasonOther,
	"autre":                    ReasonOther,
}

// ParseListeningReason only recognises explicit reason identifiers; free text is left
// to keyword inference.
func ParseListeningReason(s string) (ListeningReason, bool) {
	r, ok := reasonAliases[normalizeKey(s)]
	return r, ok
}

// Valid reports whether r is one of AllReasons.
func (r ListeningReason) Valid() bool {
	for _, known := range AllReasons {
		if r == known {
			return true
		}
	}
	return false
}
