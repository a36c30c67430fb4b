package models

import (
	"math/rand"
	"testing"
)

func TestParseHazardType(t *testing.T) {
	for _, h := range HazardTypes {
		got, ok := ParseHazardType(string(h))
		if !ok || got != h {
			t.Errorf("ParseHazardType(%q) = %q, %v", h, got, ok)
		}
	}
	if _, ok := ParseHazardType("EARTHQUAKE"); ok {
		t.Error("expected EARTHQUAKE to be rejected")
	}
	if _, ok := ParseHazardType("cyclone"); ok {
		t.Error("hazard types are case sensitive")
	}
}

func TestParseAlertStatus(t *testing.T) {
	for _, s := range []AlertStatus{
		StatusGenerated, StatusPendingApproval, StatusApproved, StatusRejected, StatusSent,
	} {
		got, ok := ParseAlertStatus(string(s))
		if !ok || got != s {
			t.Errorf("ParseAlertStatus(%q) = %q, %v", s, got, ok)
		}
	}
	if _, ok := ParseAlertStatus("DELETED"); ok {
		t.Error("expected DELETED to be rejected")
	}
}

func TestSeverityRank(t *testing.T) {
	order := []AlertSeverity{SeverityLow, SeverityModerate, SeverityHigh, SeverityExtreme}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("%s should outrank %s", order[i], order[i-1])
		}
	}
	if AlertSeverity("UNKNOWN").Rank() != 0 {
		t.Error("unknown severity should rank as LOW")
	}
}

func TestRegionsTable(t *testing.T) {
	if len(Regions) != 59 {
		t.Fatalf("expected 59 monitored regions, got %d", len(Regions))
	}

	seen := make(map[string]bool)
	for _, r := range Regions {
		if r.Region == "" || r.State == "" {
			t.Errorf("region with empty name or state: %+v", r)
		}
		if seen[r.Region] {
			t.Errorf("duplicate region %q", r.Region)
		}
		seen[r.Region] = true

		// All monitored regions sit on or near the Indian coastline.
		if r.Lat < 6 || r.Lat > 24 {
			t.Errorf("%s: latitude %.4f out of range", r.Region, r.Lat)
		}
		if r.Long < 68 || r.Long > 94 {
			t.Errorf("%s: longitude %.4f out of range", r.Region, r.Long)
		}
	}
}

func TestRandomRegion(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		r := RandomRegion(rng)
		if r.Region == "" {
			t.Fatal("RandomRegion returned empty region")
		}
	}

	// Seeded draws are reproducible.
	a := RandomRegion(rand.New(rand.NewSource(9)))
	b := RandomRegion(rand.New(rand.NewSource(9)))
	if a != b {
		t.Errorf("same seed should pick the same region: %v vs %v", a, b)
	}
}
