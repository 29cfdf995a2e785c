package models

import "testing"

func TestEffectiveMinProfitMargin_TaskOverrideWins(t *testing.T) {
	margin := -10.0
	task := &Task{MinProfitMargin: -20, Filters: FilterBag{Jewelry: &JewelryFilters{MinProfitMargin: &margin}}}
	got := task.EffectiveMinProfitMargin()
	if got != -20 {
		t.Fatalf("expected task-level override -20, got %v", got)
	}
}

func TestEffectiveMinProfitMargin_FallsBackToJewelryFilter(t *testing.T) {
	margin := -15.0
	task := &Task{Filters: FilterBag{Jewelry: &JewelryFilters{MinProfitMargin: &margin}}}
	got := task.EffectiveMinProfitMargin()
	if got != -15 {
		t.Fatalf("expected jewelry filter fallback -15, got %v", got)
	}
}

func TestEffectiveMinProfitMargin_HardFloorWhenNothingSet(t *testing.T) {
	task := &Task{Filters: FilterBag{Jewelry: &JewelryFilters{}}}
	got := task.EffectiveMinProfitMargin()
	if got != -50 {
		t.Fatalf("expected the hard floor of -50, got %v", got)
	}
}

func TestHasCondition_EmptySetAllowsEverything(t *testing.T) {
	task := &Task{}
	if !task.HasCondition("New") {
		t.Fatalf("expected an empty condition set to allow every condition")
	}
}

func TestHasCondition_UsedAliasesPreOwned(t *testing.T) {
	task := &Task{Conditions: map[Condition]bool{ConditionPreOwned: true}}
	if !task.HasCondition("used") {
		t.Fatalf("expected lowercase 'used' to alias Pre-owned")
	}
	if !task.HasCondition("Used") {
		t.Fatalf("expected capitalized 'Used' to alias Pre-owned")
	}
}

func TestHasCondition_RejectsUnlistedCondition(t *testing.T) {
	task := &Task{Conditions: map[Condition]bool{ConditionNew: true}}
	if task.HasCondition("For parts or not working") {
		t.Fatalf("expected a condition outside the allowed set to be rejected")
	}
}
