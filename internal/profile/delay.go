package profile

import (
	"regexp"
	"strconv"
	"strings"
)

const weeksPerMonth = 4.33

// Delay is a duration expressed in weeks. Known is false when the upstream value was
// absent or could not be parsed, in which case callers substitute their own default.
type Delay struct {
	Weeks float64
	Known bool
}

// Weeks builds a known delay.
func Weeks(w float64) Delay {
	if w < 0 {
		w = 0
	}
	return Delay{Weeks: w, Known: true}
}

var delayPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*([\p{L}]*)`)

// ParseDelay understands "immediate", "2 weeks", "3 mois", "10 days" and bare numbers (weeks).
func ParseDelay(s string) Delay {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Delay{}
	}

	switch s {
	case "immediate", "immédiat", "immediat", "immédiate", "now", "asap", "none", "aucun":
		return Weeks(0)
	}

	m := delayPattern.FindStringSubmatch(s)
	if m == nil {
		return Delay{}
	}

	n, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return Delay{}
	}

	unit := m[2]
	switch {
	case unit == "":
		return Weeks(n)
	case strings.HasPrefix(unit, "d") || strings.HasPrefix(unit, "j"):
		return Weeks(n / 7)
	case strings.HasPrefix(unit, "w") || strings.HasPrefix(unit, "sem"):
		return Weeks(n)
	case strings.HasPrefix(unit, "mo") || strings.HasPrefix(unit, "m"):
		return Weeks(n * weeksPerMonth)
	case strings.HasPrefix(unit, "y") || strings.HasPrefix(unit, "an"):
		return Weeks(n * 52)
	default:
		return Delay{}
	}
}
