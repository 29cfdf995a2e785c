package scheduler

import "testing"

func TestNotifiedTestSet_FirstClaimSucceeds(t *testing.T) {
	s := newNotifiedTestSet()
	if !s.claim("item-1") {
		t.Fatalf("expected the first claim on a listing id to succeed")
	}
}

func TestNotifiedTestSet_SecondClaimFails(t *testing.T) {
	s := newNotifiedTestSet()
	s.claim("item-1")
	if s.claim("item-1") {
		t.Fatalf("expected a repeat claim on the same listing id to fail")
	}
}

func TestNotifiedTestSet_DistinctListingsClaimIndependently(t *testing.T) {
	s := newNotifiedTestSet()
	s.claim("item-1")
	if !s.claim("item-2") {
		t.Fatalf("expected a distinct listing id to claim independently")
	}
}
