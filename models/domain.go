package models

// Domain is one of the fixed academic categories used to bucket weighted XP
// for domain-specific leaderboards.
type Domain string

const (
	DomainSTEM       Domain = "STEM"
	DomainHumanities Domain = "Humanities"
	DomainArts       Domain = "Arts"
	DomainBusiness   Domain = "Business"
	DomainLanguage   Domain = "Language"
	DomainGeneral    Domain = "General"
)

// Domains lists every valid domain.
var Domains = []Domain{
	DomainSTEM,
	DomainHumanities,
	DomainArts,
	DomainBusiness,
	DomainLanguage,
	DomainGeneral,
}

// ParseDomain validates a domain string against the closed set.
func ParseDomain(s string) (Domain, bool) {
	for _, d := range Domains {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// DomainStats holds per-domain weighted XP accumulators. It is a fixed-size
// struct rather than an open map so an unknown key can never mint a bucket.
type DomainStats struct {
	STEM       int `bson:"STEM" json:"STEM"`
	Humanities int `bson:"Humanities" json:"Humanities"`
	Arts       int `bson:"Arts" json:"Arts"`
	Business   int `bson:"Business" json:"Business"`
	Language   int `bson:"Language" json:"Language"`
	General    int `bson:"General" json:"General"`
}

// Add credits amount to the accumulator for d. Unknown domains are ignored;
// callers validate with ParseDomain before crediting.
func (s *DomainStats) Add(d Domain, amount int) {
	switch d {
	case DomainSTEM:
		s.STEM += amount
	case DomainHumanities:
		s.Humanities += amount
	case DomainArts:
		s.Arts += amount
	case DomainBusiness:
		s.Business += amount
	case DomainLanguage:
		s.Language += amount
	case DomainGeneral:
		s.General += amount
	}
}

// Get returns the accumulator for d.
func (s DomainStats) Get(d Domain) int {
	switch d {
	case DomainSTEM:
		return s.STEM
	case DomainHumanities:
		return s.Humanities
	case DomainArts:
		return s.Arts
	case DomainBusiness:
		return s.Business
	case DomainLanguage:
		return s.Language
	case DomainGeneral:
		return s.General
	}
	return 0
}

// Total sums every bucket. Equals the user's weightedXp only when every award
// was attributed to a lesson; awards without a resolvable lesson raise
// weightedXp without touching any bucket.
func (s DomainStats) Total() int {
	return s.STEM + s.Humanities + s.Arts + s.Business + s.Language + s.General
}
