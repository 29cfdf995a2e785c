package models

import "time"

// MatchStatus is the lifecycle state of a persisted match row, mutated
// either by the user reacting on the Slack notification or by the worker
// itself (always starts at MatchNew).
type MatchStatus string

const (
	MatchNew       MatchStatus = "new"
	MatchPurchased MatchStatus = "purchased"
	MatchRejected  MatchStatus = "rejected"
	MatchWatching  MatchStatus = "watching"
	MatchReviewing MatchStatus = "reviewing"
)

// MatchCommon holds the fields shared by every item-type match table.
type MatchCommon struct {
	ID               int64
	TaskID           int64
	UserID           int64
	EbayListingID    string
	EbayTitle        string
	EbayURL          string
	ListedPrice      float64
	ShippingCost     *float64 // nil = unknown, 0 = free
	Currency         string
	BuyFormat        string
	SellerFeedback   int
	FoundAt          time.Time
	ItemCreationDate *time.Time
	Status           MatchStatus
	NotificationSent bool
	SlackMessageTS   string
	SlackChannelID   string
}

// TotalCost mirrors ListingSummary.TotalPrice for a persisted match.
func (m *MatchCommon) TotalCost() float64 {
	if m.ShippingCost != nil {
		return m.ListedPrice + *m.ShippingCost
	}
	return m.ListedPrice
}

// JewelryMatch is a matches_jewelry row.
type JewelryMatch struct {
	MatchCommon
	Karat          int
	WeightG        float64
	MetalType      string
	MeltValue      float64
	ProfitScrap    float64
	BreakEven      float64
	SuggestedOffer float64
}

// GemstoneMatch is a matches_gemstone row.
type GemstoneMatch struct {
	MatchCommon
	StoneType string
	Shape     string
	Carat     float64
	Colour    string
	Clarity   string
	CertLab   string
	Treatment string
	IsNatural bool
	DealScore int // 0-100
	RiskScore int // 0-100
}

// WatchMatch is a matches_watch row.
type WatchMatch struct {
	MatchCommon
	CaseMaterial string
	BandMaterial string
	Movement     string
	DialColor    string
	Year         int
	Brand        string
	Model        string
}
