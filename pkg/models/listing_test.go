package models

import "testing"

func TestListingSummary_TotalPrice_AddsKnownShipping(t *testing.T) {
	ship := 5.5
	l := ListingSummary{Price: 100, ShippingCost: &ship}
	if got := l.TotalPrice(); got != 105.5 {
		t.Fatalf("expected 105.5, got %v", got)
	}
}

func TestListingSummary_TotalPrice_IgnoresUnknownShipping(t *testing.T) {
	l := ListingSummary{Price: 100}
	if got := l.TotalPrice(); got != 100 {
		t.Fatalf("expected price alone when shipping is unknown, got %v", got)
	}
}

func TestMatchCommon_TotalCost_MirrorsListingSummary(t *testing.T) {
	ship := 10.0
	m := MatchCommon{ListedPrice: 50, ShippingCost: &ship}
	if got := m.TotalCost(); got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}
}

func TestNormalizedDetail_AspectIsCaseSensitiveLookupOnNormalizedMap(t *testing.T) {
	d := &NormalizedDetail{Aspects: map[string]string{"metal": "Gold"}}
	v, ok := d.Aspect("metal")
	if !ok || v != "Gold" {
		t.Fatalf("expected to find normalized key 'metal', got %q ok=%v", v, ok)
	}
	if _, ok := d.Aspect("Metal"); ok {
		t.Fatalf("expected Aspect lookup to be case-sensitive against the pre-normalized map")
	}
}

func TestListingDetail_NormalizeLowercasesAspectNames(t *testing.T) {
	raw := &ListingDetail{
		LocalizedAspects: []LocalizedAspect{{Name: "Metal Purity", Value: "14K"}},
		Description:      "desc",
		CategoryID:        "281",
	}
	norm := raw.Normalize()
	v, ok := norm.Aspect("metal purity")
	if !ok || v != "14K" {
		t.Fatalf("expected normalized lookup to find 'metal purity', got %q ok=%v", v, ok)
	}
}
