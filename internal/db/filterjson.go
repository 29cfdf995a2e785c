package db

import "github.com/dealhunter/ebay-hunter/pkg/models"

// jewelryFiltersJSON mirrors the jewelry_filters jsonb column. Field tags
// are the "recognized keys" enumerated in spec §6, verbatim.
type jewelryFiltersJSON struct {
	Metal                 []string `json:"metal"`
	Conditions            []string `json:"conditions"`
	Categories             []string `json:"categories"`
	Brands                 []string `json:"brands"`
	MainStones             []string `json:"main_stones"`
	MetalPurity            []string `json:"metal_purity"`
	SettingStyle           []string `json:"setting_style"`
	Era                    []string `json:"era"`
	Features               []string `json:"features"`
	Colors                 []string `json:"colors"`
	StoneColors            []string `json:"stone_colors"`
	Materials              []string `json:"materials"`
	Styles                 []string `json:"styles"`
	WeightMin              *float64 `json:"weight_min"`
	WeightMax              *float64 `json:"weight_max"`
	CaratWeightMin         *float64 `json:"carat_weight_min"`
	CaratWeightMax         *float64 `json:"carat_weight_max"`
	Keywords               []string `json:"keywords"`
	NoStone                *bool    `json:"no_stone"`
	SelectedSubcategories  []string `json:"selected_subcategories"`
	MinProfitMargin        *float64 `json:"min_profit_margin"`
}

func toModelJewelry(j *jewelryFiltersJSON) *models.JewelryFilters {
	if j == nil {
		return nil
	}
	noStone := true
	if j.NoStone != nil {
		noStone = *j.NoStone
	}
	return &models.JewelryFilters{
		Metal:                 toSet(j.Metal),
		Conditions:            toSet(j.Conditions),
		Categories:            toSet(j.Categories),
		Brands:                toSet(j.Brands),
		MainStones:            toSet(j.MainStones),
		MetalPurity:           toSet(j.MetalPurity),
		SettingStyle:          toSet(j.SettingStyle),
		Era:                   toSet(j.Era),
		Features:              toSet(j.Features),
		Colors:                toSet(j.Colors),
		StoneColors:           toSet(j.StoneColors),
		Materials:             toSet(j.Materials),
		Styles:                toSet(j.Styles),
		WeightMin:             j.WeightMin,
		WeightMax:             j.WeightMax,
		CaratWeightMin:        j.CaratWeightMin,
		CaratWeightMax:        j.CaratWeightMax,
		Keywords:              j.Keywords,
		NoStone:               noStone,
		SelectedSubcategories: j.SelectedSubcategories,
		MinProfitMargin:       j.MinProfitMargin,
	}
}

// gemstoneFiltersJSON mirrors the gemstone_filters jsonb column.
type gemstoneFiltersJSON struct {
	StoneTypes       []string `json:"stone_types"`
	GemstoneCreation []string `json:"gemstone_creation"`
	Colors           []string `json:"colors"`
	Shapes           []string `json:"shapes"`
	Clarities        []string `json:"clarities"`
	Treatments       []string `json:"treatments"`
	Conditions       []string `json:"conditions"`
	Brands           []string `json:"brands"`
	CaratMin         *float64 `json:"carat_min"`
	CaratMax         *float64 `json:"carat_max"`
	Certifications   []string `json:"certifications"`
	AllowLabCreated  *bool    `json:"allow_lab_created"`
	IncludeJewelry   *bool    `json:"include_jewelry"`
	MinDealScore     *int     `json:"min_deal_score"`
	MaxRiskScore     *int     `json:"max_risk_score"`
	Keywords         []string `json:"keywords"`
}

func toModelGemstone(g *gemstoneFiltersJSON) *models.GemstoneFilters {
	if g == nil {
		return nil
	}
	allowLab := false
	if g.AllowLabCreated != nil {
		allowLab = *g.AllowLabCreated
	}
	includeJewelry := false
	if g.IncludeJewelry != nil {
		includeJewelry = *g.IncludeJewelry
	}
	return &models.GemstoneFilters{
		StoneTypes:       toSet(g.StoneTypes),
		GemstoneCreation: toSet(g.GemstoneCreation),
		Colors:           toSet(g.Colors),
		Shapes:           toSet(g.Shapes),
		Clarities:        toSet(g.Clarities),
		Treatments:       toSet(g.Treatments),
		Conditions:       toSet(g.Conditions),
		Brands:           toSet(g.Brands),
		CaratMin:         g.CaratMin,
		CaratMax:         g.CaratMax,
		Certifications:   g.Certifications,
		AllowLabCreated:  allowLab,
		IncludeJewelry:   includeJewelry,
		MinDealScore:     g.MinDealScore,
		MaxRiskScore:     g.MaxRiskScore,
		Keywords:         g.Keywords,
	}
}

// watchFiltersJSON mirrors the watch_filters jsonb column.
type watchFiltersJSON struct {
	Brands            []string `json:"brands"`
	Models            []string `json:"models"`
	Movements         []string `json:"movements"`
	CaseMaterials     []string `json:"case_materials"`
	BezelMaterials    []string `json:"bezel_materials"`
	DialColors        []string `json:"dial_colors"`
	BandMaterials     []string `json:"band_materials"`
	YearFrom          *int     `json:"year_from"`
	YearTo            *int     `json:"year_to"`
	CaseSizeMin       *float64 `json:"case_size_min"`
	CaseSizeMax       *float64 `json:"case_size_max"`
	ThicknessMin      *float64 `json:"thickness_min"`
	ThicknessMax      *float64 `json:"thickness_max"`
	LugWidthMin       *float64 `json:"lug_width_min"`
	LugWidthMax       *float64 `json:"lug_width_max"`
	ReferenceNumber   string   `json:"reference_number"`
	Chrono24Reference string   `json:"chrono24_reference"`
	ReferenceMargin   *float64 `json:"reference_margin"`
	Keywords          []string `json:"keywords"`
}

func toModelWatch(w *watchFiltersJSON) *models.WatchFilters {
	if w == nil {
		return nil
	}
	mode := models.Chrono24Disabled
	switch w.Chrono24Reference {
	case "avg":
		mode = models.Chrono24Avg
	case "low":
		mode = models.Chrono24Low
	}
	return &models.WatchFilters{
		Brands:            toSet(w.Brands),
		Models:            toSet(w.Models),
		Movements:         toSet(w.Movements),
		CaseMaterials:     toSet(w.CaseMaterials),
		BezelMaterials:    toSet(w.BezelMaterials),
		DialColors:        toSet(w.DialColors),
		BandMaterials:     toSet(w.BandMaterials),
		YearFrom:          w.YearFrom,
		YearTo:            w.YearTo,
		CaseSizeMin:       w.CaseSizeMin,
		CaseSizeMax:       w.CaseSizeMax,
		ThicknessMin:      w.ThicknessMin,
		ThicknessMax:      w.ThicknessMax,
		LugWidthMin:       w.LugWidthMin,
		LugWidthMax:       w.LugWidthMax,
		ReferenceNumber:   w.ReferenceNumber,
		Chrono24Reference: mode,
		ReferenceMargin:   w.ReferenceMargin,
		Keywords:          w.Keywords,
	}
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}
