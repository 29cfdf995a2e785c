package extract

import "testing"

func TestExtractStoneType_MatchesAspectOverTitle(t *testing.T) {
	aspects := map[string]string{"stone type": "Sapphire"}
	s, ok := ExtractStoneType("Beautiful Ruby Ring", aspects)
	if !ok || s != "Sapphire" {
		t.Fatalf("expected aspect stone type Sapphire, got %q ok=%v", s, ok)
	}
}

func TestExtractCarat_RejectsOutOfRange(t *testing.T) {
	_, ok := ExtractCarat("Stone 20000ct", nil)
	if ok {
		t.Fatalf("expected carat >= 10000 to be rejected")
	}
}

func TestExtractCarat_ParsesTitleSuffix(t *testing.T) {
	c, ok := ExtractCarat("Round brilliant 1.25ct diamond", nil)
	if !ok || c != 1.25 {
		t.Fatalf("expected 1.25, got %v ok=%v", c, ok)
	}
}

func TestExtractColor_OnlyAcceptsDiamondLadder(t *testing.T) {
	c, ok := ExtractColor("1ct diamond color Z clarity VS1", nil)
	if ok {
		t.Fatalf("expected color Z (outside D-P) to be rejected, got %q", c)
	}
}

func TestExtractTreatment_HeavyBeatsHeatOnly(t *testing.T) {
	got := ExtractTreatment("Heat treated and glass filled ruby", nil)
	if got != TreatmentHeavy {
		t.Fatalf("expected heavy treatment to take priority, got %q", got)
	}
}

func TestExtractIsNatural_LabCreatedAspectOverridesTitle(t *testing.T) {
	aspects := map[string]string{"creation method": "Lab-Created"}
	if ExtractIsNatural("Natural looking sapphire", aspects) {
		t.Fatalf("expected lab-created aspect to override a 'natural' title claim")
	}
}

func TestExtractIsNatural_PlainNaturalClaim(t *testing.T) {
	if !ExtractIsNatural("Natural ruby, no treatment", nil) {
		t.Fatalf("expected natural claim with no contradiction to be accepted")
	}
}
