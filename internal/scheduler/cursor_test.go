package scheduler

import "testing"

func TestPaginationCursor_DefaultsToZero(t *testing.T) {
	c := NewPaginationCursor()
	if got := c.Offset(1); got != 0 {
		t.Fatalf("expected default offset 0, got %d", got)
	}
}

func TestPaginationCursor_AdvancesByPageSizeOnFullPage(t *testing.T) {
	c := NewPaginationCursor()
	c.Advance(1, pageSize)
	if got := c.Offset(1); got != pageSize {
		t.Fatalf("expected offset to advance to %d, got %d", pageSize, got)
	}
}

func TestPaginationCursor_ResetsOnShortPage(t *testing.T) {
	c := NewPaginationCursor()
	c.Advance(1, pageSize)
	c.Advance(1, pageSize-1)
	if got := c.Offset(1); got != 0 {
		t.Fatalf("expected a short page to reset the offset, got %d", got)
	}
}

func TestPaginationCursor_ResetsAtMaxOffset(t *testing.T) {
	c := NewPaginationCursor()
	for i := 0; i < maxOffset/pageSize; i++ {
		c.Advance(1, pageSize)
	}
	if got := c.Offset(1); got != maxOffset {
		t.Fatalf("expected offset to reach max %d, got %d", maxOffset, got)
	}
	c.Advance(1, pageSize)
	if got := c.Offset(1); got != 0 {
		t.Fatalf("expected the cycle to reset to 0 once max offset is reached, got %d", got)
	}
}

func TestPaginationCursor_TracksTasksIndependently(t *testing.T) {
	c := NewPaginationCursor()
	c.Advance(1, pageSize)
	if got := c.Offset(2); got != 0 {
		t.Fatalf("expected an unrelated task's offset to remain 0, got %d", got)
	}
}
