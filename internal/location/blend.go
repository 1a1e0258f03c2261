package location

import (
	"math"
	"strings"
	"unicode"

	"github.com/spigell/hh-matcher/internal/profile"
)

const (
	defaultMaxMinutes = 45
	generousMinutes   = 60
	// Traffic delays above this many minutes make a mode unreliable.
	trafficDelayMinutes = 5

	fractionWeight    = 0.50
	flexibilityWeight = 0.25
	efficiencyWeight  = 0.15
	reliabilityWeight = 0.10

	fallbackBase = 0.6
)

var flexibilityBonus = map[int]float64{1: 0, 2: 0.15, 3: 0.25, 4: 0.35}

// leg is the routing outcome of one transport mode.
type leg struct {
	Mode      profile.TransportMode
	Limit     int
	Minutes   float64
	DelayMin  float64
	Meters    int
	Err       string
	Available bool
}

func (l leg) compatible() bool {
	return l.Available && l.Minutes <= float64(l.Limit)
}

// modeLimits returns the candidate's modes in a stable order with the maximum minutes
// accepted for each.
func modeLimits(c *profile.Candidate) ([]profile.TransportMode, map[profile.TransportMode]int) {
	modes := c.TransportModes
	if len(modes) == 0 {
		modes = []profile.TransportMode{profile.ModeDriving}
	}

	fallback := c.MaxCommuteMinutes
	if fallback <= 0 {
		fallback = defaultMaxMinutes
	}

	limits := make(map[profile.TransportMode]int, len(modes))
	for _, m := range modes {
		if v, ok := c.MaxMinutes[m]; ok && v > 0 {
			limits[m] = v
			continue
		}
		limits[m] = fallback
	}
	return modes, limits
}

type blend struct {
	compatible  int
	fraction    float64
	flexibility float64
	efficiency  float64
	reliability float64
	raw         float64
}

func blendLegs(legs []leg) blend {
	var b blend
	if len(legs) == 0 {
		return b
	}

	routed := 0
	delayed := 0
	efficiency := 0.0
	for _, l := range legs {
		if !l.Available {
			continue
		}
		routed++
		if l.compatible() {
			b.compatible++
		}
		if l.DelayMin > trafficDelayMinutes {
			delayed++
		}
		if l.Minutes <= 0 {
			efficiency++
			continue
		}
		efficiency += math.Min(1, float64(l.Limit)/l.Minutes)
	}

	b.fraction = float64(b.compatible) / float64(len(legs))
	if b.compatible > 0 {
		b.flexibility = 0.65 + flexibilityBonus[min(b.compatible, 4)]
	}
	if routed > 0 {
		b.efficiency = efficiency / float64(routed)
		b.reliability = 1 - 0.5*float64(delayed)/float64(routed)
	}

	b.raw = fractionWeight*b.fraction +
		flexibilityWeight*b.flexibility +
		efficiencyWeight*b.efficiency +
		reliabilityWeight*b.reliability
	return b
}

func remoteDays(p *profile.Position) int {
	if p.Modality == profile.ModalityFullRemote {
		return 5
	}
	return p.RemoteDays
}

// contextMultiplier rewards positions that reduce how often the commute happens.
func contextMultiplier(p *profile.Position) float64 {
	m := 1.0
	switch days := remoteDays(p); {
	case days >= 3:
		m *= 1.15
	case days >= 1:
		m *= 1.05
	}
	if p.FlexibleHours {
		m *= 1.05
	}
	return m
}

// fallbackScore estimates commute fit without a routing provider.
func fallbackScore(c *profile.Candidate, p *profile.Position, limits map[profile.TransportMode]int) (float64, map[string]any) {
	score := fallbackBase

	sameCity := false
	if cc, pc := cityOf(c.City, c.Address), cityOf(p.City, p.Address); cc != "" && cc == pc {
		sameCity = true
		score += 0.15
	}

	generous := false
	for _, v := range limits {
		if v >= generousMinutes {
			generous = true
		}
	}
	if generous {
		score += 0.1
	}
	if remoteDays(p) >= 2 {
		score += 0.05
	}

	return math.Min(1, score), map[string]any{
		"same_city":      sameCity,
		"generous_limit": generous,
		"remote_days":    remoteDays(p),
	}
}

// cityOf prefers the explicit city, else the last address segment without postal codes.
func cityOf(city, address string) string {
	if city = strings.TrimSpace(city); city != "" {
		return strings.ToLower(city)
	}

	parts := strings.Split(address, ",")
	last := strings.TrimSpace(parts[len(parts)-1])
	if len(parts) < 2 || last == "" {
		return ""
	}

	words := strings.FieldsFunc(last, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsDigit(r)
	})
	return strings.ToLower(strings.Join(words, " "))
}
