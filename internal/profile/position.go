package profile

import (
	"math"
	"strings"
	"time"
)

// Position is the typed view of an upstream job position record.
type Position struct {
	ID      string `mapstructure:"id"`
	Title   string `mapstructure:"title"`
	Company string `mapstructure:"company"`

	RequiredSkills []string `mapstructure:"required_skills"`
	Domain         string   `mapstructure:"domain"`

	SalaryMin     float64 `mapstructure:"salary_min" validate:"gte=0"`
	SalaryMax     float64 `mapstructure:"salary_max" validate:"omitempty,gtefield=SalaryMin"`
	ExperienceMin float64 `mapstructure:"experience_min" validate:"gte=0,lte=60"`
	ExperienceMax float64 `mapstructure:"experience_max" validate:"omitempty,gtefield=ExperienceMin"`

	Address string `mapstructure:"address"`
	City    string `mapstructure:"city"`

	Sector       string       `mapstructure:"sector"`
	CompanySize  CompanySize  `mapstructure:"company_size"`
	ContractType ContractType `mapstructure:"contract_type"`

	Modality      Modality `mapstructure:"modality"`
	RemoteDays    int      `mapstructure:"remote_days" validate:"gte=0,lte=5"`
	FlexibleHours bool     `mapstructure:"flexible_hours"`

	Urgency   Urgency `mapstructure:"urgency"`
	MaxWait   Delay   `mapstructure:"max_wait"`
	StartDate string  `mapstructure:"start_date" validate:"omitempty,datetime=2006-01-02"`

	ProgressionTimeline string      `mapstructure:"progression_timeline"`
	Benefits            []string    `mapstructure:"benefits"`
	TrialPeriodMonths   float64     `mapstructure:"trial_period_months" validate:"gte=0,lte=12"`
	Motivations         Motivations `mapstructure:"motivations"`
	RemoteInterviews    bool        `mapstructure:"remote_interviews"`

	Confidence float64 `mapstructure:"confidence" validate:"gte=0,lte=1"`
}

// Weeks a position can wait for a hire when neither max_wait nor start_date is given.
var defaultMaxWait = map[Urgency]float64{
	UrgencyCritical: 2,
	UrgencyUrgent:   4,
	UrgencyNormal:   8,
	UrgencyFlexible: 12,
}

func (p *Position) normalize(now time.Time) {
	p.ID = strings.TrimSpace(p.ID)
	p.RequiredSkills = cleanList(p.RequiredSkills)
	p.Domain = strings.TrimSpace(p.Domain)
	p.Sector = strings.TrimSpace(p.Sector)

	p.SalaryMin = math.Max(0, p.SalaryMin)
	p.SalaryMax = math.Max(0, p.SalaryMax)
	if p.SalaryMax > 0 && p.SalaryMax < p.SalaryMin {
		p.SalaryMin, p.SalaryMax = p.SalaryMax, p.SalaryMin
	}
	p.ExperienceMin = clampFloat(p.ExperienceMin, 0, 60)
	p.ExperienceMax = clampFloat(p.ExperienceMax, 0, 60)
	if p.ExperienceMax > 0 && p.ExperienceMax < p.ExperienceMin {
		p.ExperienceMin, p.ExperienceMax = p.ExperienceMax, p.ExperienceMin
	}

	p.Address = strings.TrimSpace(p.Address)
	p.City = strings.TrimSpace(p.City)
	p.RemoteDays = clampInt(p.RemoteDays, 0, 5)

	if p.Urgency == "" {
		p.Urgency = UrgencyNormal
	}
	if !p.MaxWait.Known {
		p.MaxWait = p.waitFromStartDate(now)
	}

	p.Benefits = cleanList(p.Benefits)
	p.TrialPeriodMonths = clampFloat(p.TrialPeriodMonths, 0, 12)
	p.Motivations = p.Motivations.normalized()

	if p.Confidence <= 0 {
		p.Confidence = 1
	}
	p.Confidence = clampFloat(p.Confidence, 0, 1)
}

func (p *Position) waitFromStartDate(now time.Time) Delay {
	if start, err := time.Parse(time.DateOnly, strings.TrimSpace(p.StartDate)); err == nil {
		return Weeks(start.Sub(now).Hours() / (24 * 7))
	}
	return Weeks(defaultMaxWait[p.Urgency])
}

// HasSalaryBand reports whether at least one salary bound is known.
func (p *Position) HasSalaryBand() bool {
	return p.SalaryMin > 0 || p.SalaryMax > 0
}

// HasExperienceBand reports whether at least one experience bound is known.
func (p *Position) HasExperienceBand() bool {
	return p.ExperienceMin > 0 || p.ExperienceMax > 0
}
