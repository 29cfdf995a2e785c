package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// validKarats is the canonical gold karat domain (spec §4.4).
var validKarats = map[int]bool{8: true, 9: true, 10: true, 14: true, 18: true, 22: true, 24: true}

var karatAspectFields = []string{"metal purity", "purity", "karat", "gold purity", "fineness"}

var karatPattern = regexp.MustCompile(`(\d+)\s*[kK]`)
var karatGoldPattern = regexp.MustCompile(`\b(10|14|18|22|24)kt?\s*gold\b`)

// ExtractKarat implements spec §4.4's Karat extractor: aspects in field
// order, then title, then HTML-stripped description with an extra
// gold-suffixed pattern.
func ExtractKarat(title string, aspects map[string]string, description string) (int, bool) {
	for _, field := range karatAspectFields {
		if v, ok := aspects[field]; ok {
			if k, ok := parseKarat(v); ok {
				return k, true
			}
		}
	}
	if k, ok := parseKarat(title); ok {
		return k, true
	}
	if description != "" {
		stripped := strings.ToLower(StripHTML(description))
		if k, ok := parseKarat(stripped); ok {
			return k, true
		}
		if m := karatGoldPattern.FindStringSubmatch(stripped); m != nil {
			if k, err := strconv.Atoi(m[1]); err == nil {
				return k, true
			}
		}
	}
	return 0, false
}

func parseKarat(s string) (int, bool) {
	m := karatPattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}
	k, err := strconv.Atoi(m[1])
	if err != nil || !validKarats[k] {
		return 0, false
	}
	return k, true
}

// weightAspectFields is the canonical 18-name weight aspect whitelist from
// spec §4.4. "total carat weight" is deliberately excluded: the marketplace
// uses that field for karat, not grams.
var weightAspectFields = []string{
	"total weight", "gram weight", "net weight", "metal weight(grams)",
	"metal weight (grams)", "weight", "item weight", "total gram weight",
	"weight (g)", "weight(g)", "weight in grams", "gold weight",
	"metal weight", "approximate weight", "approx weight", "dwt",
	"pennyweight", "total item weight", "jewelry weight",
}

var weightUnitPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(g|gr|gm|gms|gram|grams|oz|ounce|ounces|dwt|pennyweight)\b`)
var weightTypoPattern = regexp.MustCompile(`\.(\d+)\.(\d+)`)

// ExtractWeight implements spec §4.4's Weight extractor: unit suffix
// required (to avoid matching the karat number), with seller-typo repair.
func ExtractWeight(title string, aspects map[string]string, description string) (float64, bool) {
	for _, field := range weightAspectFields {
		if v, ok := aspects[field]; ok {
			if w, ok := parseWeight(v); ok {
				return w, true
			}
		}
	}
	if w, ok := parseWeight(title); ok {
		return w, true
	}
	if description != "" {
		if w, ok := parseWeight(StripHTML(description)); ok {
			return w, true
		}
	}
	return 0, false
}

func parseWeight(raw string) (float64, bool) {
	s := repairWeightTypo(raw)
	m := weightUnitPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "oz", "ounce", "ounces":
		value *= 28.3495
	case "dwt", "pennyweight":
		value *= 1.555
	}
	return value, true
}

// repairWeightTypo fixes the seller typo pattern ".1.08" -> "1.08" (a
// leading dot before what should be the real decimal point), per spec
// §4.4/§8.
func repairWeightTypo(s string) string {
	return weightTypoPattern.ReplaceAllString(s, "$1.$2")
}

// MetalType is the canonical metal family, used to pick a melt-value formula.
type MetalType string

const (
	MetalGold      MetalType = "Gold"
	MetalSilver    MetalType = "Silver"
	MetalPlatinum  MetalType = "Platinum"
	MetalPalladium MetalType = "Palladium"
)

// MetalResult is the outcome of ExtractMetal: the family plus purity in
// parts-per-thousand (silver/platinum/palladium) or karat (gold, handled
// by the caller via ExtractKarat).
type MetalResult struct {
	Metal   MetalType
	Purity  int // parts per thousand; 0 for gold (purity derives from karat)
}

// ExtractMetal implements spec §4.4's metal-type/purity detector: platinum,
// palladium, silver checked in order before falling back to gold.
func ExtractMetal(title string, aspects map[string]string, description string) MetalResult {
	haystack := strings.ToLower(title + " " + description)
	for _, v := range aspects {
		haystack += " " + strings.ToLower(v)
	}

	if strings.Contains(haystack, "platinum") {
		purity := 950
		switch {
		case strings.Contains(haystack, "900"):
			purity = 900
		case strings.Contains(haystack, "850"):
			purity = 850
		}
		return MetalResult{Metal: MetalPlatinum, Purity: purity}
	}
	if strings.Contains(haystack, "palladium") {
		purity := 950
		if strings.Contains(haystack, "500") {
			purity = 500
		}
		return MetalResult{Metal: MetalPalladium, Purity: purity}
	}
	if strings.Contains(haystack, "sterling") || strings.Contains(haystack, "925") ||
		strings.Contains(haystack, ".999") || strings.Contains(haystack, "800") ||
		strings.Contains(haystack, "coin silver") || strings.Contains(haystack, "silver") {
		purity := 925
		switch {
		case strings.Contains(haystack, ".999"):
			purity = 999
		case strings.Contains(haystack, "800"):
			purity = 800
		}
		return MetalResult{Metal: MetalSilver, Purity: purity}
	}
	return MetalResult{Metal: MetalGold}
}
