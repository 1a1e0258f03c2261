package profile

import (
	"math"
	"strings"
)

// Motivations maps a motivation label to its rank, 1 being the most important.
type Motivations map[string]int

// Candidate is the typed view of an upstream candidate record.
type Candidate struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`

	Skills          []string `mapstructure:"skills"`
	Domains         []string `mapstructure:"domains"`
	YearsExperience float64  `mapstructure:"years_experience" validate:"gte=0,lte=60"`
	DomainYears     float64  `mapstructure:"domain_years" validate:"gte=0,lte=60"`
	// ExperienceKnown separates a junior with 0 years from a record without the field.
	ExperienceKnown bool `mapstructure:"-"`

	CurrentSalary float64 `mapstructure:"current_salary" validate:"gte=0"`
	DesiredSalary float64 `mapstructure:"desired_salary" validate:"gte=0"`

	Status               EmploymentStatus `mapstructure:"status"`
	Notice               Delay            `mapstructure:"notice"`
	Availability         Delay            `mapstructure:"availability"`
	AvailabilityFlexible bool             `mapstructure:"availability_flexible"`

	ReasonTags       []string          `mapstructure:"listening_reasons"`
	ReasonText       string            `mapstructure:"reason_text"`
	ListeningReasons []ListeningReason `mapstructure:"-"`

	CurrentSector         string        `mapstructure:"current_sector"`
	PreferredSectors      []string      `mapstructure:"preferred_sectors"`
	ProhibitedSectors     []string      `mapstructure:"prohibited_sectors"`
	Openness              int           `mapstructure:"openness" validate:"omitempty,min=1,max=5"`
	SectorPriority        int           `mapstructure:"sector_priority" validate:"omitempty,min=1,max=5"`
	PreferredCompanySizes []CompanySize `mapstructure:"preferred_company_sizes"`

	Motivations            Motivations `mapstructure:"motivations"`
	ProgressionExpectation int         `mapstructure:"progression_expectation" validate:"omitempty,min=1,max=5"`

	PreferredModality Modality `mapstructure:"preferred_modality"`
	DesiredRemoteDays int      `mapstructure:"desired_remote_days" validate:"gte=0,lte=5"`

	Address           string                `mapstructure:"address"`
	City              string                `mapstructure:"city"`
	TransportModes    []TransportMode       `mapstructure:"transport_modes"`
	MaxMinutes        map[TransportMode]int `mapstructure:"max_minutes"`
	MaxCommuteMinutes int                   `mapstructure:"max_commute_minutes" validate:"gte=0,lte=300"`

	ContractRanking    []ContractType `mapstructure:"contract_ranking"`
	RequiresDiscretion bool           `mapstructure:"requires_discretion"`

	Confidence float64 `mapstructure:"confidence" validate:"gte=0,lte=1"`
}

// Default notice periods in weeks, used when the record carries none.
var defaultNotice = map[EmploymentStatus]float64{
	StatusEmployed:     8,
	StatusFreelance:    2,
	StatusJobSeeking:   0,
	StatusStudent:      0,
	StatusInTransition: 2,
	StatusUnknown:      4,
}

// normalize fills defaults and clamps values to their documented ranges.
func (c *Candidate) normalize() {
	c.ID = strings.TrimSpace(c.ID)
	c.Skills = cleanList(c.Skills)
	c.Domains = cleanList(c.Domains)
	c.PreferredSectors = cleanList(c.PreferredSectors)
	c.ProhibitedSectors = cleanList(c.ProhibitedSectors)
	c.CurrentSector = strings.TrimSpace(c.CurrentSector)

	c.YearsExperience = clampFloat(c.YearsExperience, 0, 60)
	c.DomainYears = clampFloat(c.DomainYears, 0, 60)
	c.CurrentSalary = math.Max(0, c.CurrentSalary)
	c.DesiredSalary = math.Max(0, c.DesiredSalary)

	if !c.Notice.Known {
		c.Notice = Weeks(defaultNotice[c.Status])
	}
	if !c.Availability.Known {
		c.Availability = Weeks(0)
	}

	c.ListeningReasons = nil
	seen := map[ListeningReason]bool{}
	for _, tag := range c.ReasonTags {
		if r, ok := ParseListeningReason(tag); ok && !seen[r] {
			seen[r] = true
			c.ListeningReasons = append(c.ListeningReasons, r)
		}
	}

	c.Openness = defaultScale(c.Openness)
	c.SectorPriority = defaultScale(c.SectorPriority)
	c.ProgressionExpectation = defaultScale(c.ProgressionExpectation)
	c.PreferredCompanySizes = dedupe(c.PreferredCompanySizes, SizeUnknown)

	c.Motivations = c.Motivations.normalized()

	c.DesiredRemoteDays = clampInt(c.DesiredRemoteDays, 0, 5)
	c.Address = strings.TrimSpace(c.Address)
	c.City = strings.TrimSpace(c.City)
	c.TransportModes = dedupe(c.TransportModes, "")
	for mode, minutes := range c.MaxMinutes {
		if mode == "" || minutes <= 0 {
			delete(c.MaxMinutes, mode)
		}
	}
	c.MaxCommuteMinutes = clampInt(c.MaxCommuteMinutes, 0, 300)

	c.ContractRanking = dedupe(c.ContractRanking, ContractUnknown)

	if c.Confidence <= 0 {
		c.Confidence = 1
	}
	c.Confidence = clampFloat(c.Confidence, 0, 1)
}

// Motivation labels are lower-cased and ranks clamped to 1..5.
func (m Motivations) normalized() Motivations {
	if len(m) == 0 {
		return nil
	}
	out := make(Motivations, len(m))
	for k, rank := range m {
		k = normalizeKey(k)
		if k == "" {
			continue
		}
		out[k] = clampInt(rank, 1, 5)
	}
	return out
}

func defaultScale(v int) int {
	if v == 0 {
		return 3
	}
	return clampInt(v, 1, 5)
}

func cleanList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func dedupe[T comparable](in []T, skip T) []T {
	if len(in) == 0 {
		return nil
	}
	out := make([]T, 0, len(in))
	seen := make(map[T]bool, len(in))
	for _, v := range in {
		if v == skip || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
