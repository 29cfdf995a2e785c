package models

import "time"

// ItemType selects which filter bag and classification chain a task uses.
type ItemType string

const (
	ItemTypeJewelry  ItemType = "jewelry"
	ItemTypeWatch    ItemType = "watch"
	ItemTypeGemstone ItemType = "gemstone"
)

// TaskStatus controls whether the scheduler polls a task.
type TaskStatus string

const (
	TaskStatusActive  TaskStatus = "active"
	TaskStatusPaused  TaskStatus = "paused"
	TaskStatusStopped TaskStatus = "stopped"
)

// ListingFormat is the sale mode whitelist recognized on a task.
type ListingFormat string

const (
	FormatAuction     ListingFormat = "Auction"
	FormatFixedPrice  ListingFormat = "Fixed Price"
	FormatBestOffer   ListingFormat = "Best Offer"
	FormatClassifiedAd ListingFormat = "Classified Ad"
	FormatAcceptsOffers ListingFormat = "Accepts Offers"
)

// Condition is the listing condition whitelist recognized on a task, with
// "used" treated as an alias of Pre-owned at match time.
type Condition string

const (
	ConditionNew       Condition = "New"
	ConditionPreOwned  Condition = "Pre-owned"
	ConditionForParts  Condition = "For parts or not working"
)

// JewelryFilters is the type-specific filter bag for item_type=jewelry.
// Recognized keys per the marketplace task form; every one is an explicit
// field rather than a dynamic map so the pipeline can't silently miss one.
type JewelryFilters struct {
	Metal              map[string]bool
	Conditions         map[string]bool
	Categories         map[string]bool
	Brands             map[string]bool
	MainStones         map[string]bool
	MetalPurity        map[string]bool
	SettingStyle       map[string]bool
	Era                map[string]bool
	Features           map[string]bool
	Colors             map[string]bool
	StoneColors        map[string]bool
	Materials          map[string]bool
	Styles             map[string]bool
	WeightMin          *float64
	WeightMax          *float64
	CaratWeightMin     *float64
	CaratWeightMax     *float64
	Keywords           []string
	NoStone            bool // default true
	SelectedSubcategories []string
	MinProfitMargin    *float64
}

// GemstoneFilters is the type-specific filter bag for item_type=gemstone.
type GemstoneFilters struct {
	StoneTypes       map[string]bool
	GemstoneCreation map[string]bool
	Colors           map[string]bool
	Shapes           map[string]bool
	Clarities        map[string]bool
	Treatments       map[string]bool
	Conditions       map[string]bool
	Brands           map[string]bool
	CaratMin         *float64
	CaratMax         *float64
	Certifications   []string
	AllowLabCreated  bool // default false
	IncludeJewelry   bool
	MinDealScore     *int
	MaxRiskScore     *int
	Keywords         []string
}

// Chrono24ReferenceMode selects how a task cross-checks watch reference
// prices against Chrono24 aggregate data.
type Chrono24ReferenceMode string

const (
	Chrono24Avg      Chrono24ReferenceMode = "avg"
	Chrono24Low      Chrono24ReferenceMode = "low"
	Chrono24Disabled Chrono24ReferenceMode = "disabled"
)

// WatchFilters is the type-specific filter bag for item_type=watch.
type WatchFilters struct {
	Brands             map[string]bool
	Models             map[string]bool
	Movements          map[string]bool
	CaseMaterials      map[string]bool
	BezelMaterials     map[string]bool
	DialColors         map[string]bool
	BandMaterials      map[string]bool
	YearFrom           *int
	YearTo             *int
	CaseSizeMin        *float64
	CaseSizeMax        *float64
	ThicknessMin       *float64
	ThicknessMax       *float64
	LugWidthMin        *float64
	LugWidthMax        *float64
	ReferenceNumber    string
	Chrono24Reference  Chrono24ReferenceMode
	ReferenceMargin    *float64
	Keywords           []string
}

// FilterBag is the tagged union replacing the source's dynamic per-type
// filter map: exactly one of these is populated, selected by Task.ItemType.
type FilterBag struct {
	Jewelry  *JewelryFilters
	Gemstone *GemstoneFilters
	Watch    *WatchFilters
}

// Task is a user-defined search configuration, the unit of work the
// scheduler polls. Source of truth is the tasks table.
type Task struct {
	ID       int64
	UserID   int64
	Name     string
	ItemType ItemType
	Status   TaskStatus

	MinPrice *float64
	MaxPrice *float64

	MinSellerFeedback int

	ListingFormats  map[ListingFormat]bool
	ExcludeKeywords map[string]bool
	Conditions      map[Condition]bool

	ItemLocation string

	Filters FilterBag

	PollIntervalSeconds int // 1..3600

	SlackChannel   string
	SlackChannelID string

	MinProfitMargin float64 // percent, signed, default -50

	LastRun   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveMinProfitMargin resolves the fallback chain documented in
// spec §4.5.2-14 / §9: task-level override first, then the jewelry
// filter's own value, then the hard floor of -50%.
func (t *Task) EffectiveMinProfitMargin() float64 {
	if t.MinProfitMargin != 0 {
		return t.MinProfitMargin
	}
	if t.Filters.Jewelry != nil && t.Filters.Jewelry.MinProfitMargin != nil {
		return *t.Filters.Jewelry.MinProfitMargin
	}
	return -50
}

// HasCondition reports whether a listing condition is allowed by the task,
// treating "used" as an alias of Pre-owned.
func (t *Task) HasCondition(raw string) bool {
	if len(t.Conditions) == 0 {
		return true
	}
	c := Condition(raw)
	if raw == "used" || raw == "Used" {
		c = ConditionPreOwned
	}
	return t.Conditions[c]
}
