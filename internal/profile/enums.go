package profile

import "strings"

type EmploymentStatus string

const (
	StatusUnknown      EmploymentStatus = ""
	StatusEmployed     EmploymentStatus = "employed"
	StatusJobSeeking   EmploymentStatus = "job_seeking"
	StatusFreelance    EmploymentStatus = "freelance"
	StatusStudent      EmploymentStatus = "student"
	StatusInTransition EmploymentStatus = "in_transition"
)

var statusAliases = map[string]EmploymentStatus{
	"employed":           StatusEmployed,
	"en poste":           StatusEmployed,
	"salarie":            StatusEmployed,
	"salarié":            StatusEmployed,
	"in_post":            StatusEmployed,
	"job_seeking":        StatusJobSeeking,
	"job-seeking":        StatusJobSeeking,
	"job_seeker":         StatusJobSeeking,
	"job-seeker":         StatusJobSeeking,
	"unemployed":         StatusJobSeeking,
	"demandeur d'emploi": StatusJobSeeking,
	"freelance":          StatusFreelance,
	"freelancer":         StatusFreelance,
	"independant":        StatusFreelance,
	"indépendant":        StatusFreelance,
	"student":            StatusStudent,
	"etudiant":           StatusStudent,
	"étudiant":           StatusStudent,
	"in_transition":      StatusInTransition,
	"in-transition":      StatusInTransition,
	"transition":         StatusInTransition,
	"en transition":      StatusInTransition,
}

// ParseEmploymentStatus maps free-form status labels to a known status, StatusUnknown otherwise.
func ParseEmploymentStatus(s string) EmploymentStatus {
	return statusAliases[normalizeKey(s)]
}

type Modality string

const (
	ModalityUnknown    Modality = ""
	ModalityFullRemote Modality = "full_remote"
	ModalityHybrid     Modality = "hybrid"
	ModalityOnSite     Modality = "on_site"
	ModalityFlexible   Modality = "flexible"
)

var modalityAliases = map[string]Modality{
	"full_remote":   ModalityFullRemote,
	"full-remote":   ModalityFullRemote,
	"remote":        ModalityFullRemote,
	"télétravail":   ModalityFullRemote,
	"teletravail":   ModalityFullRemote,
	"hybrid":        ModalityHybrid,
	"hybride":       ModalityHybrid,
	"on_site":       ModalityOnSite,
	"on-site":       ModalityOnSite,
	"onsite":        ModalityOnSite,
	"office":        ModalityOnSite,
	"présentiel":    ModalityOnSite,
	"presentiel":    ModalityOnSite,
	"flexible":      ModalityFlexible,
	"no_preference": ModalityFlexible,
}

func ParseModality(s string) Modality {
	return modalityAliases[normalizeKey(s)]
}

type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyNormal   Urgency = "normal"
	UrgencyFlexible Urgency = "flexible"
)

var urgencyAliases = map[string]Urgency{
	"critical": UrgencyCritical,
	"critique": UrgencyCritical,
	"asap":     UrgencyCritical,
	"urgent":   UrgencyUrgent,
	"normal":   UrgencyNormal,
	"standard": UrgencyNormal,
	"flexible": UrgencyFlexible,
}

// ParseUrgency falls back to UrgencyNormal for unknown values.
func ParseUrgency(s string) Urgency {
	if u, ok := urgencyAliases[normalizeKey(s)]; ok {
		return u
	}
	return UrgencyNormal
}

type ContractType string

const (
	ContractUnknown        ContractType = ""
	ContractPermanent      ContractType = "cdi"
	ContractFixedTerm      ContractType = "cdd"
	ContractFreelance      ContractType = "freelance"
	ContractInterim        ContractType = "interim"
	ContractInternship     ContractType = "internship"
	ContractApprenticeship ContractType = "apprenticeship"
)

var contractAliases = map[string]ContractType{
	"cdi":            ContractPermanent,
	"permanent":      ContractPermanent,
	"full-time":      ContractPermanent,
	"cdd":            ContractFixedTerm,
	"fixed_term":     ContractFixedTerm,
	"fixed-term":     ContractFixedTerm,
	"temporary":      ContractFixedTerm,
	"freelance":      ContractFreelance,
	"contractor":     ContractFreelance,
	"interim":        ContractInterim,
	"intérim":        ContractInterim,
	"internship":     ContractInternship,
	"stage":          ContractInternship,
	"apprenticeship": ContractApprenticeship,
	"alternance":     ContractApprenticeship,
}

func ParseContractType(s string) ContractType {
	return contractAliases[normalizeKey(s)]
}

type CompanySize string

const (
	SizeUnknown    CompanySize = ""
	SizeStartup    CompanySize = "startup"
	SizeSME        CompanySize = "sme"
	SizeMidCap     CompanySize = "mid_cap"
	SizeLargeGroup CompanySize = "large_group"
	SizePublic     CompanySize = "public"
)

var sizeAliases = map[string]CompanySize{
	"startup":       SizeStartup,
	"start-up":      SizeStartup,
	"sme":           SizeSME,
	"pme":           SizeSME,
	"mid_cap":       SizeMidCap,
	"eti":           SizeMidCap,
	"large_group":   SizeLargeGroup,
	"large":         SizeLargeGroup,
	"grand groupe":  SizeLargeGroup,
	"public":        SizePublic,
	"public sector": SizePublic,
}

func ParseCompanySize(s string) CompanySize {
	return sizeAliases[normalizeKey(s)]
}

type TransportMode string

const (
	ModeDriving   TransportMode = "driving"
	ModeTransit   TransportMode = "transit"
	ModeWalking   TransportMode = "walking"
	ModeBicycling TransportMode = "bicycling"
)

var modeAliases = map[string]TransportMode{
	"driving":              ModeDriving,
	"car":                  ModeDriving,
	"voiture":              ModeDriving,
	"transit":              ModeTransit,
	"public_transport":     ModeTransit,
	"transport":            ModeTransit,
	"transports en commun": ModeTransit,
	"walking":              ModeWalking,
	"walk":                 ModeWalking,
	"marche":               ModeWalking,
	"bicycling":            ModeBicycling,
	"bike":                 ModeBicycling,
	"cycling":              ModeBicycling,
	"vélo":                 ModeBicycling,
	"velo":                 ModeBicycling,
}

// ParseTransportMode reports false for modes the routing provider does not know.
func ParseTransportMode(s string) (TransportMode, bool) {
	m, ok := modeAliases[normalizeKey(s)]
	return m, ok
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
