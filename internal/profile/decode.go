package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

var (
	delayType       = reflect.TypeOf(Delay{})
	motivationsType = reflect.TypeOf(Motivations{})
)

// Keys some upstream parsers emit instead of the canonical field names.
var fieldAliases = map[string]string{
	"competences":        "skills",
	"salary_current":     "current_salary",
	"salary_desired":     "desired_salary",
	"experience_years":   "years_experience",
	"years":              "years_experience",
	"notice_period":      "notice",
	"preavis":            "notice",
	"reasons":            "listening_reasons",
	"listening_reason":   "listening_reasons",
	"sector_preferences": "preferred_sectors",
	"excluded_sectors":   "prohibited_sectors",
	"modality":           "preferred_modality",
	"remote_days":        "desired_remote_days",
	"transport":          "transport_modes",
	"skills_required":    "required_skills",
	"salary_range_min":   "salary_min",
	"salary_range_max":   "salary_max",
	"work_modality":      "modality",
	"start":              "start_date",
}

// DecodeCandidate converts an upstream record into a Candidate. Decoding never fails:
// fields that cannot be converted are left at their defaults, and both conversion
// problems and out-of-range values are reported as warnings before clamping.
func DecodeCandidate(fields map[string]any) (*Candidate, []string) {
	c := &Candidate{}
	canonical := canonicalize(fields, candidateOnly)
	warnings := decodeInto(canonical, c)
	c.ExperienceKnown = numberPresent(canonical["years_experience"])
	warnings = append(warnings, Check(c)...)
	c.normalize()
	return c, warnings
}

// DecodePosition converts an upstream record into a Position, see DecodeCandidate.
func DecodePosition(fields map[string]any) (*Position, []string) {
	return decodePositionAt(fields, time.Now())
}

func decodePositionAt(fields map[string]any, now time.Time) (*Position, []string) {
	p := &Position{}
	warnings := decodeInto(canonicalize(fields, positionOnly), p)
	warnings = append(warnings, Check(p)...)
	p.normalize(now)
	return p, warnings
}

// Aliases that would collide between the two record kinds.
var (
	candidateOnly = map[string]bool{"modality": true, "remote_days": true}
	positionOnly  = map[string]bool{"work_modality": true}
)

// canonicalize lower-cases keys, flattens one level of nesting ("salary": {"min": 1}
// becomes "salary_min") and applies fieldAliases.
func canonicalize(fields map[string]any, allowed map[string]bool) map[string]any {
	out := make(map[string]any, len(fields))
	put := func(key string, v any) {
		key = strings.ReplaceAll(normalizeKey(key), "-", "_")
		if alias, ok := fieldAliases[key]; ok && (allowed[key] || !isScopedAlias(key)) {
			key = alias
		}
		if _, exists := out[key]; !exists {
			out[key] = v
		}
	}

	for k, v := range fields {
		nested, ok := v.(map[string]any)
		if !ok || isMapField(k) {
			put(k, v)
			continue
		}
		for nk, nv := range nested {
			put(k+"_"+nk, nv)
		}
	}
	return out
}

// numberPresent reports whether v holds a value that decodes to a number.
func numberPresent(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err == nil
	case bool:
		return false
	}
	return true
}

func isScopedAlias(key string) bool {
	return candidateOnly[key] || positionOnly[key]
}

// Fields that are maps in their own right and must not be flattened.
func isMapField(key string) bool {
	switch normalizeKey(key) {
	case "motivations", "max_minutes":
		return true
	}
	return false
}

func decodeInto(fields map[string]any, target any) []string {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			splitListHook,
			enumHook,
			delayHook,
			motivationsHook,
		),
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return []string{fmt.Sprintf("decoder: %v", err)}
	}

	if err := dec.Decode(fields); err != nil {
		var merr *mapstructure.Error
		if errors.As(err, &merr) {
			return merr.Errors
		}
		return []string{err.Error()}
	}
	return nil
}

// splitListHook accepts "go, python; sql" where a list is expected.
func splitListHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
		return data, nil
	}
	raw := reflect.ValueOf(data).String()
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' || r == '|' })
	return parts, nil
}

// enumHook maps free-form labels onto the enum types. Unknown labels become the zero value.
func enumHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	s := reflect.ValueOf(data).String()

	switch to {
	case reflect.TypeOf(StatusUnknown):
		return ParseEmploymentStatus(s), nil
	case reflect.TypeOf(ModalityUnknown):
		return ParseModality(s), nil
	case reflect.TypeOf(UrgencyNormal):
		return ParseUrgency(s), nil
	case reflect.TypeOf(ContractUnknown):
		return ParseContractType(s), nil
	case reflect.TypeOf(SizeUnknown):
		return ParseCompanySize(s), nil
	case reflect.TypeOf(ModeDriving):
		m, _ := ParseTransportMode(s)
		return m, nil
	}
	return data, nil
}

func delayHook(from, to reflect.Type, data any) (any, error) {
	if to != delayType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.String:
		return ParseDelay(reflect.ValueOf(data).String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Weeks(float64(reflect.ValueOf(data).Int())), nil
	case reflect.Float32, reflect.Float64:
		return Weeks(reflect.ValueOf(data).Float()), nil
	}
	return data, nil
}

// motivationsHook turns an ordered list of labels into ranks 1..5.
func motivationsHook(from, to reflect.Type, data any) (any, error) {
	if to != motivationsType || from.Kind() != reflect.Slice {
		return data, nil
	}
	v := reflect.ValueOf(data)
	out := make(map[string]any, v.Len())
	for i := 0; i < v.Len(); i++ {
		label := fmt.Sprint(v.Index(i).Interface())
		if _, seen := out[label]; !seen {
			out[label] = min(len(out)+1, 5)
		}
	}
	return out, nil
}
