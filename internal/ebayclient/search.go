// Package ebayclient models the marketplace collaborator: the search
// adapter contract the core depends on (spec §2/§6, implemented elsewhere)
// and the detail-fetch path this repo does own (spec §4.2).
package ebayclient

import (
	"context"

	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// SearchRequest is the request body shape the search adapter expects
// (spec §6). TypeSpecificFilters carries whichever of the three filter
// bags the task's item type selected, pre-flattened by the caller.
type SearchRequest struct {
	Keywords            string
	MinPrice            *float64
	MaxPrice            *float64
	ListingType         []string
	MinFeedback         int
	ItemLocation        string
	DateFrom            *string
	DateTo              *string
	ItemType            models.ItemType
	TypeSpecificFilters map[string]any
	Condition           []string
	CategoryIDs         []string
	Offset              int
}

// SearchResponse is the search adapter's response shape (spec §6): at most
// 200 items per page.
type SearchResponse struct {
	Items []models.ListingSummary
}

// SearchAdapter is the opaque external collaborator that turns a task +
// pagination cursor into a page of listing summaries. Its implementation
// lives outside this repo (spec §1's explicit out-of-scope list); this
// interface is the contract the scheduler depends on, satisfied in
// production by Client.
type SearchAdapter interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}
