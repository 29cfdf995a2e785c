package extract

import "testing"

func TestExtractBandMaterial_RequiresBandContext(t *testing.T) {
	// "stainless steel" case only, no band/strap/bracelet token nearby.
	_, ok := ExtractBandMaterial("Rolex stainless steel case watch", nil)
	if ok {
		t.Fatalf("expected no band material without band/strap/bracelet context")
	}
}

func TestExtractBandMaterial_MatchesWithBandContext(t *testing.T) {
	m, ok := ExtractBandMaterial("Watch with leather strap and steel case", nil)
	if !ok || m != "Leather" {
		t.Fatalf("expected Leather band material, got %q ok=%v", m, ok)
	}
}

func TestExtractYear_RejectsOutOfRange(t *testing.T) {
	_, ok := ExtractYear("Rare 1750 pocket watch", nil)
	if ok {
		t.Fatalf("expected year before 1800 to be rejected")
	}
}

func TestExtractYear_AcceptsFromAspect(t *testing.T) {
	aspects := map[string]string{"year": "1965"}
	y, ok := ExtractYear("Vintage watch", aspects)
	if !ok || y != 1965 {
		t.Fatalf("expected year 1965, got %d ok=%v", y, ok)
	}
}

func TestExtractBrand_ExactAspectMatchBeatsSubstring(t *testing.T) {
	aspects := map[string]string{"brand": "Tudor"}
	b, ok := ExtractBrand("Rolex-style homage watch", aspects)
	if !ok || b != "Tudor" {
		t.Fatalf("expected aspect brand Tudor to win, got %q ok=%v", b, ok)
	}
}

func TestExtractModel_FallsBackToReferenceNumber(t *testing.T) {
	aspects := map[string]string{"reference number": "116610LN"}
	m, ok := ExtractModel(aspects)
	if !ok || m != "116610LN" {
		t.Fatalf("expected reference number fallback, got %q ok=%v", m, ok)
	}
}
