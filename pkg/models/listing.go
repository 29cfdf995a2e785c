package models

import "time"

// ShippingType classifies how a listing's shipping cost was quoted.
type ShippingType string

const (
	ShippingFree       ShippingType = "free"
	ShippingFixed      ShippingType = "fixed"
	ShippingCalculated ShippingType = "calculated"
	ShippingUnknown    ShippingType = "unknown"
)

// SellerInfo is the seller summary embedded in a search result row.
type SellerInfo struct {
	Name               string
	FeedbackScore      int
	FeedbackPercentage float64
}

// ListingSummary is one row of a SearchAdapter response page.
type ListingSummary struct {
	ItemID             string
	Title              string
	Price              float64
	Currency           string
	ShippingCost       *float64 // nil = unknown
	ShippingType       ShippingType
	Condition          string
	ListingURL         string
	ListingType        string
	Seller             SellerInfo
	BuyingOptions      []string
	ItemCreationDate   *time.Time
	CategoryID         string
	ReturnsAccepted    *bool // nil = unknown, treated as false by the risk scorer
}

// TotalPrice returns price plus shipping-when-known, the figure every
// price gate in the classification pipeline compares against.
func (s *ListingSummary) TotalPrice() float64 {
	if s.ShippingCost != nil {
		return s.Price + *s.ShippingCost
	}
	return s.Price
}

// LocalizedAspect is one raw name/value pair as returned by the detail API.
type LocalizedAspect struct {
	Name  string
	Value string
}

// ListingDetail is the raw detail-API response shape before normalization.
type ListingDetail struct {
	LocalizedAspects []LocalizedAspect
	Title            string
	Description      string
	ShippingOptions  []ShippingOption
	CategoryID       string
}

// ShippingOption is one entry of a detail response's shipping options list.
type ShippingOption struct {
	CostType  string // e.g. FREE, CALCULATED, FIXED
	Cost      *float64
}

// NormalizedDetail is ListingDetail folded into the shape the classification
// pipeline actually consumes: a lowercase-keyed aspect map plus description.
type NormalizedDetail struct {
	Aspects     map[string]string // lowercased aspect name -> raw value
	Description string
	CategoryID  string
}

// Aspect does an exact, case-sensitive lookup against the normalized aspect
// map, whose keys are already lowercased; callers pass lowercase names.
func (d *NormalizedDetail) Aspect(name string) (string, bool) {
	if d == nil || d.Aspects == nil {
		return "", false
	}
	v, ok := d.Aspects[name]
	return v, ok
}

// Normalize folds raw detail-API aspects into the lowercase map the rest of
// the pipeline reads, mirroring the marketplace's own normalization step.
func (d *ListingDetail) Normalize() *NormalizedDetail {
	aspects := make(map[string]string, len(d.LocalizedAspects))
	for _, a := range d.LocalizedAspects {
		aspects[lowerASCII(a.Name)] = a.Value
	}
	return &NormalizedDetail{
		Aspects:     aspects,
		Description: d.Description,
		CategoryID:  d.CategoryID,
	}
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
