package scheduler

import "sync"

const pageSize = 200
const maxOffset = 800

// PaginationCursor is spec §4.9's in-memory per-task offset cycle.
type PaginationCursor struct {
	mu      sync.Mutex
	offsets map[int64]int
}

// NewPaginationCursor builds an empty cursor map.
func NewPaginationCursor() *PaginationCursor {
	return &PaginationCursor{offsets: make(map[int64]int)}
}

// Offset returns a task's current offset, defaulting to 0.
func (c *PaginationCursor) Offset(taskID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offsets[taskID]
}

// Advance implements spec §4.9's reset/advance rule after a page is
// returned.
func (c *PaginationCursor) Advance(taskID int64, itemsReturned int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.offsets[taskID]
	if itemsReturned < pageSize || current >= maxOffset {
		c.offsets[taskID] = 0
		return
	}
	c.offsets[taskID] = current + pageSize
}
