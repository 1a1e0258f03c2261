package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Check reports data-quality issues of a decoded record. It never rejects the record;
// scoring proceeds on the normalized values either way.
func Check(record any) []string {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s: value %v violates %s", fe.Field(), fe.Value(), constraint(fe)))
	}
	return out
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// Completeness lists the fields a scorer would fall back on because they are missing.
func (c *Candidate) Completeness() []string {
	var missing []string
	if len(c.Skills) == 0 {
		missing = append(missing, "skills")
	}
	if c.DesiredSalary == 0 && c.CurrentSalary == 0 {
		missing = append(missing, "salary")
	}
	if c.Status == StatusUnknown {
		missing = append(missing, "status")
	}
	if c.Address == "" && c.City == "" {
		missing = append(missing, "address")
	}
	if c.PreferredModality == ModalityUnknown {
		missing = append(missing, "preferred_modality")
	}
	return missing
}

// Completeness lists the fields a scorer would fall back on because they are missing.
func (p *Position) Completeness() []string {
	var missing []string
	if len(p.RequiredSkills) == 0 {
		missing = append(missing, "required_skills")
	}
	if !p.HasSalaryBand() {
		missing = append(missing, "salary")
	}
	if p.Address == "" && p.City == "" {
		missing = append(missing, "address")
	}
	if p.Sector == "" {
		missing = append(missing, "sector")
	}
	if p.Modality == ModalityUnknown {
		missing = append(missing, "modality")
	}
	return missing
}
