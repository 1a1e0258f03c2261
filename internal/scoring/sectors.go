package scoring

import (
	"slices"
	"strings"
)

type sectorTier int

const (
	tierNone sectorTier = iota
	tierDistant
	tierTransition
	tierDirect
)

func (t sectorTier) String() string {
	switch t {
	case tierDirect:
		return "direct"
	case tierTransition:
		return "transition"
	case tierDistant:
		return "distant"
	default:
		return "none"
	}
}

var tierStrength = map[sectorTier]float64{
	tierDirect:     0.8,
	tierTransition: 0.6,
	tierDistant:    0.4,
}

type sectorLinks struct {
	direct     []string
	transition []string
	distant    []string
}

// Sector adjacency. Lookups are symmetric, so each pair only needs to appear once.
var sectorGraph = map[string]sectorLinks{
	"software": {
		direct:     []string{"saas", "it_services", "telecom"},
		transition: []string{"fintech", "ecommerce", "media"},
		distant:    []string{"consulting"},
	},
	"saas": {
		direct:     []string{"it_services", "fintech"},
		transition: []string{"ecommerce", "consulting"},
	},
	"fintech": {
		direct:     []string{"banking", "insurance"},
		transition: []string{"consulting", "ecommerce"},
		distant:    []string{"retail"},
	},
	"banking": {
		direct:     []string{"insurance"},
		transition: []string{"consulting", "real_estate"},
		distant:    []string{"public"},
	},
	"insurance": {
		transition: []string{"health", "consulting"},
	},
	"consulting": {
		direct:     []string{"it_services"},
		transition: []string{"legal", "public"},
	},
	"ecommerce": {
		direct:     []string{"retail"},
		transition: []string{"logistics", "media"},
	},
	"retail": {
		transition: []string{"logistics", "hospitality"},
		distant:    []string{"agrifood"},
	},
	"industry": {
		direct:     []string{"automotive", "aerospace", "energy"},
		transition: []string{"logistics", "agrifood"},
		distant:    []string{"construction"},
	},
	"automotive": {
		direct:     []string{"aerospace"},
		transition: []string{"logistics"},
	},
	"energy": {
		transition: []string{"construction", "public"},
	},
	"health": {
		direct:     []string{"pharma", "biotech"},
		transition: []string{"public"},
	},
	"pharma": {
		direct:  []string{"biotech"},
		distant: []string{"agrifood"},
	},
	"telecom": {
		direct:     []string{"it_services"},
		transition: []string{"media"},
	},
	"media": {
		transition: []string{"education"},
	},
	"education": {
		transition: []string{"public"},
	},
	"real_estate": {
		direct:  []string{"construction"},
		distant: []string{"hospitality"},
	},
	"logistics": {
		distant: []string{"hospitality"},
	},
}

// Sectors with an entry barrier for newcomers.
var regulatedSectors = map[string]bool{
	"banking":   true,
	"insurance": true,
	"health":    true,
	"pharma":    true,
	"energy":    true,
	"public":    true,
	"legal":     true,
}

var sectorAliases = map[string]string{
	"tech":                   "software",
	"it":                     "it_services",
	"esn":                    "it_services",
	"ssii":                   "it_services",
	"informatique":           "software",
	"logiciel":               "software",
	"finance":                "banking",
	"bank":                   "banking",
	"banque":                 "banking",
	"assurance":              "insurance",
	"conseil":                "consulting",
	"e-commerce":             "ecommerce",
	"commerce":               "retail",
	"distribution":           "retail",
	"industrie":              "industry",
	"manufacturing":          "industry",
	"automobile":             "automotive",
	"aeronautique":           "aerospace",
	"aéronautique":           "aerospace",
	"énergie":                "energy",
	"energie":                "energy",
	"santé":                  "health",
	"sante":                  "health",
	"healthcare":             "health",
	"pharmaceutique":         "pharma",
	"pharmaceutical":         "pharma",
	"télécoms":               "telecom",
	"telecoms":               "telecom",
	"médias":                 "media",
	"medias":                 "media",
	"éducation":              "education",
	"immobilier":             "real_estate",
	"real estate":            "real_estate",
	"btp":                    "construction",
	"juridique":              "legal",
	"law":                    "legal",
	"secteur public":         "public",
	"public sector":          "public",
	"government":             "public",
	"transport":              "logistics",
	"hôtellerie":             "hospitality",
	"hotellerie":             "hospitality",
	"restauration":           "hospitality",
	"agroalimentaire":        "agrifood",
	"food":                   "agrifood",
	"agriculture":            "agrifood",
	"information technology": "it_services",
}

// canonicalSector lower-cases a sector label and resolves known aliases.
func canonicalSector(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if alias, ok := sectorAliases[s]; ok {
		return alias
	}
	return strings.ReplaceAll(s, " ", "_")
}

func sectorConnection(a, b string) sectorTier {
	return max(linkTier(a, b), linkTier(b, a))
}

func linkTier(from, to string) sectorTier {
	links, ok := sectorGraph[from]
	if !ok {
		return tierNone
	}
	switch {
	case slices.Contains(links.direct, to):
		return tierDirect
	case slices.Contains(links.transition, to):
		return tierTransition
	case slices.Contains(links.distant, to):
		return tierDistant
	}
	return tierNone
}
