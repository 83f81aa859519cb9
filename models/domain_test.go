package models

import "testing"

func TestParseDomain(t *testing.T) {
	for _, d := range Domains {
		parsed, ok := ParseDomain(string(d))
		if !ok || parsed != d {
			t.Errorf("ParseDomain(%q) = %q, %v", d, parsed, ok)
		}
	}

	for _, s := range []string{"", "stem", "Astrology", "all"} {
		if _, ok := ParseDomain(s); ok {
			t.Errorf("ParseDomain(%q) unexpectedly succeeded", s)
		}
	}
}

func TestDomainStatsAddGet(t *testing.T) {
	var stats DomainStats
	stats.Add(DomainSTEM, 140)
	stats.Add(DomainSTEM, 60)
	stats.Add(DomainArts, 30)

	if got := stats.Get(DomainSTEM); got != 200 {
		t.Errorf("STEM bucket = %d, want 200", got)
	}
	if got := stats.Get(DomainArts); got != 30 {
		t.Errorf("Arts bucket = %d, want 30", got)
	}
	if got := stats.Get(DomainBusiness); got != 0 {
		t.Errorf("Business bucket = %d, want 0", got)
	}
	if stats.Total() != 230 {
		t.Errorf("Total = %d, want 230", stats.Total())
	}
}

func TestDomainStatsIgnoresUnknown(t *testing.T) {
	var stats DomainStats
	stats.Add(Domain("Astrology"), 100)
	if stats.Total() != 0 {
		t.Errorf("Unknown domain credited a bucket: total = %d", stats.Total())
	}
}
