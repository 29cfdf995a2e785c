// Package extract implements the ExtractionKernel: pure functions mapping
// (title, aspects, description) to domain attributes (spec §4.4). None of
// these functions perform I/O or hold state.
package extract

// JewelryCategoryIDs and JewelryBlacklistCategories gate jewelry listings
// by marketplace category (spec §6, carried verbatim).
var JewelryCategoryIDs = toSet([]string{
	"281", "164331", "67681", "67680", "261990", "261988", "261989", "261993",
	"261994", "261995", "262003", "262004", "262008", "262011", "262013",
	"262014", "262016", "261975", "50637", "155101", "50610", "50647",
	"50692", "48579", "48585", "48583", "48581", "110633", "75576",
})

var JewelryBlacklistCategories = toSet([]string{
	"182901", "262017", "13837", "31387", "261669", "10034", "166725",
	"16102", "38199", "1378", "261642",
})

// GemstoneCategoryIDs gates gemstone listings (spec §6).
var GemstoneCategoryIDs = toSet([]string{
	"10207", "51089", "164694", "262026", "262027",
})

// GemstoneTypes is the recognized stone-type vocabulary.
var GemstoneTypes = []string{
	"diamond", "sapphire", "ruby", "emerald", "aquamarine", "amethyst",
	"topaz", "tourmaline", "garnet", "opal", "peridot", "citrine",
	"tanzanite", "morganite", "tsavorite", "spinel", "zircon", "turquoise",
	"lapis lazuli", "onyx", "jade", "pearl", "alexandrite", "kunzite",
	"iolite", "moonstone", "labradorite", "chrysoberyl", "andalusite",
}

// StoneShapes is the recognized cut/shape vocabulary.
var StoneShapes = []string{
	"round", "princess", "cushion", "oval", "emerald", "pear", "marquise",
	"radiant", "asscher", "heart", "trillion", "baguette", "cabochon",
	"square", "octagon", "rose cut",
}

// DiamondColors is the D-P grading ladder (single letter).
var DiamondColors = []string{"D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P"}

// DiamondClarities is the standard clarity ladder, best to worst.
var DiamondClarities = []string{
	"FL", "IF", "VVS1", "VVS2", "VS1", "VS2", "SI1", "SI2", "I1", "I2", "I3",
}

// CertLabs tiers certification laboratories by market trust (spec §4.5.4).
var CertLabs = struct {
	Premium  []string
	Standard []string
	Budget   []string
}{
	Premium:  []string{"GIA", "AGS"},
	Standard: []string{"IGI", "GCAL", "HRD"},
	Budget:   []string{"EGL", "GSI", "GIA-ALUMNI"},
}

// GemstoneBlacklist denies simulants/imitations; short entries require a
// word-boundary match (spec §4.5.3-4).
var GemstoneBlacklist = []string{
	"cz", "cubic zirconia", "moissanite", "simulant", "imitation",
	"synthetic diamond", "man made diamond", "lab diamond",
}

// LabCreatedTerms denies lab-grown stones unless the task opts in.
var LabCreatedTerms = []string{
	"lab created", "lab-created", "lab grown", "lab-grown", "man-made",
	"man made", "synthetic", "cvd", "hpht", "created sapphire",
	"created ruby", "created emerald",
}

// NoStoneValues are aspect values treated as "no stone present" (placeholders).
var NoStoneValues = map[string]bool{
	"none": true, "n/a": true, "na": true, "no stone": true, "-": true, "": true,
}

// StoneKeywords flags a title as stone-bearing for the jewelry no_stone gate.
var StoneKeywords = append(append([]string{}, GemstoneTypes...), "gem", "gemstone", "stone", "cz", "cubic zirconia")

// CostumeJewelryExclusions denies obvious costume-jewelry titles.
var CostumeJewelryExclusions = []string{
	"costume jewelry", "fashion jewelry", "costume", "novelty",
}

// BadMetals denies plated/filled/vermeil construction.
var BadMetals = []string{
	"plated", "gold-plated", "silver-plated", "filled", "gold-filled",
	"vermeil", "gold tone", "goldtone",
}

// BaseMetalsToReject denies non-precious base metals.
var BaseMetalsToReject = []string{
	"brass", "bronze", "copper", "pewter", "alloy", "stainless", "titanium",
	"tungsten", "nickel",
}

// JewelryToolsExclusions denies tool/supply listings masquerading as jewelry.
var JewelryToolsExclusions = []string{
	"mold", "mould", "wax pattern", "jewelry tool", "jewelry tools",
	"polishing cloth", "display stand", "ring sizer", "engraving tool",
	"casting", "findings lot", "jump rings", "wire spool",
}

// MetalKeywords lists the precious-metal family vocabulary.
var MetalKeywords = []string{"gold", "silver", "platinum", "palladium"}

// DescriptionBadMetalPhrases and DescriptionBaseMetalPhrases gate the
// HTML-stripped description text (spec §4.5.2-8).
var DescriptionBadMetalPhrases = []string{
	"gold plated", "rose gold plated", "silver plated", "plated brass",
	"brass plated", "plated metal", "electroplated", "gold filled",
	"gold-filled", "rose gold filled", "silver filled", "gold toned",
	"goldtone", "silvertone",
}

var DescriptionBaseMetalPhrases = []string{
	"made of brass", "brass base", "base metal: brass", "brass with",
	"brass material", "solid brass",
}

// WatchBrands is the curated watch-brand containment list (spec §4.4).
var WatchBrands = []string{
	"Rolex", "Omega", "Tag Heuer", "Seiko", "Citizen", "Breitling",
	"Tudor", "Cartier", "Patek Philippe", "Audemars Piguet", "IWC",
	"Panerai", "Hamilton", "Longines", "Tissot", "Bulova", "Grand Seiko",
	"Zenith", "Jaeger-LeCoultre", "Vacheron Constantin", "Hublot",
	"Movado", "Fossil", "Invicta", "Orient",
}

// WatchMaterials is the recognized case/band material vocabulary.
var WatchMaterials = []string{
	"stainless steel", "gold", "titanium", "ceramic", "platinum",
	"rose gold", "two-tone", "leather", "rubber", "nylon", "silicone",
	"bracelet",
}

// WatchMovementPatterns maps a regex-free containment term to a normalized
// movement name (spec §4.4 "pattern table").
var WatchMovementPatterns = []struct {
	Contains string
	Movement string
}{
	{"automatic", "Automatic"},
	{"self-winding", "Automatic"},
	{"manual wind", "Manual"},
	{"hand wind", "Manual"},
	{"quartz", "Quartz"},
	{"kinetic", "Kinetic"},
	{"solar", "Solar"},
	{"spring drive", "Spring Drive"},
}

func toSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}
