package scheduler

import "testing"

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestExpandMetals_GoldExpandsToKaratVariants(t *testing.T) {
	out := expandMetals(map[string]bool{"Yellow Gold": true})
	if !contains(out, "Yellow Gold") {
		t.Fatalf("expected the original entry to pass through, got %v", out)
	}
	for _, variant := range []string{"18K Gold", "14K Gold", "10K Gold", "24K Gold", "18kt Gold", "14kt Gold", "10kt Gold"} {
		if !contains(out, variant) {
			t.Fatalf("expected expansion to include %q, got %v", variant, out)
		}
	}
}

func TestExpandMetals_NonGoldPassesThroughUnexpanded(t *testing.T) {
	out := expandMetals(map[string]bool{"Sterling Silver": true})
	if len(out) != 1 || out[0] != "Sterling Silver" {
		t.Fatalf("expected silver to pass through unexpanded, got %v", out)
	}
}

func TestExpandMetals_DedupesAcrossMultipleGoldEntries(t *testing.T) {
	out := expandMetals(map[string]bool{"Yellow Gold": true, "White Gold": true})
	count := 0
	for _, v := range out {
		if v == "18K Gold" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected '18K Gold' to appear exactly once across two gold entries, got %d", count)
	}
}
