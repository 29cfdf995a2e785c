package extract

import "testing"

func TestStripHTML_RemovesTagsAndEntities(t *testing.T) {
	got := StripHTML("<p>Solid 14k &amp; stamped</p><br/>  extra   space")
	want := "Solid 14k & stamped extra space"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestContainsAny_ShortNeedleRequiresWordBoundary(t *testing.T) {
	if _, found := ContainsAny("a specimen box", []string{"cz"}); found {
		t.Fatalf("expected 'cz' to require a word boundary, not match inside 'specimen'")
	}
	if _, found := ContainsAny("loose cz stone", []string{"cz"}); !found {
		t.Fatalf("expected standalone 'cz' token to match")
	}
}

func TestContainsAny_LongNeedleAllowsSubstring(t *testing.T) {
	if _, found := ContainsAny("a cubic zirconia ring", []string{"cubic zirconia"}); !found {
		t.Fatalf("expected long needle to match via substring containment")
	}
}
