package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// StoneAttributes is the bundle ClassificationPipeline's gemstone chain
// extracts before running its filter gates and scoring (spec §4.5.3).
type StoneAttributes struct {
	StoneType string
	Shape     string
	Carat     float64
	HasCarat  bool
	Color     string
	Clarity   string
	Cert      string
	Treatment string
	IsNatural bool
}

// ExtractStoneType matches title/aspects against GemstoneTypes, case-insensitive.
func ExtractStoneType(title string, aspects map[string]string) (string, bool) {
	haystack := strings.ToLower(title)
	if v, ok := aspects["stone type"]; ok {
		haystack = strings.ToLower(v) + " " + haystack
	}
	if v, ok := aspects["gemstone"]; ok {
		haystack = strings.ToLower(v) + " " + haystack
	}
	for _, t := range GemstoneTypes {
		if strings.Contains(haystack, t) {
			return strings.Title(t), true
		}
	}
	return "", false
}

// ExtractShape matches title/aspects against StoneShapes.
func ExtractShape(title string, aspects map[string]string) (string, bool) {
	haystack := strings.ToLower(title)
	if v, ok := aspects["shape"]; ok {
		haystack = strings.ToLower(v) + " " + haystack
	}
	for _, sh := range StoneShapes {
		if strings.Contains(haystack, sh) {
			return strings.Title(sh), true
		}
	}
	return "", false
}

var caratPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*ct\b`)

// ExtractCarat accepts values in (0, 10000), preferring the aspect field.
func ExtractCarat(title string, aspects map[string]string) (float64, bool) {
	if v, ok := aspects["carat"]; ok {
		if c, ok := parseCaratValue(v); ok {
			return c, true
		}
	}
	if v, ok := aspects["carat weight"]; ok {
		if c, ok := parseCaratValue(v); ok {
			return c, true
		}
	}
	m := caratPattern.FindStringSubmatch(strings.ToLower(title))
	if m != nil {
		if c, err := strconv.ParseFloat(m[1], 64); err == nil && c > 0 && c < 10000 {
			return c, true
		}
	}
	return 0, false
}

func parseCaratValue(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), "ct")))
	c, err := strconv.ParseFloat(s, 64)
	if err != nil || c <= 0 || c >= 10000 {
		return 0, false
	}
	return c, true
}

// ExtractColor is diamond-only: a single letter D-P (spec §4.4).
func ExtractColor(title string, aspects map[string]string) (string, bool) {
	if v, ok := aspects["color"]; ok {
		c := strings.ToUpper(strings.TrimSpace(v))
		for _, valid := range DiamondColors {
			if c == valid {
				return c, true
			}
		}
	}
	upper := strings.ToUpper(title)
	for _, valid := range DiamondColors {
		if strings.Contains(upper, " "+valid+" ") || strings.Contains(upper, " "+valid+"-") {
			return valid, true
		}
	}
	return "", false
}

// ExtractClarity matches the diamond clarity ladder.
func ExtractClarity(title string, aspects map[string]string) (string, bool) {
	haystack := strings.ToUpper(title)
	if v, ok := aspects["clarity"]; ok {
		haystack = strings.ToUpper(v) + " " + haystack
	}
	for _, c := range DiamondClarities {
		if strings.Contains(haystack, c) {
			return c, true
		}
	}
	return "", false
}

// ExtractCertification returns the certifying lab if one from CertLabs'
// tiers appears in title or aspects.
func ExtractCertification(title string, aspects map[string]string) (string, bool) {
	haystack := strings.ToUpper(title)
	if v, ok := aspects["certification"]; ok {
		haystack = strings.ToUpper(v) + " " + haystack
	}
	if v, ok := aspects["cert lab"]; ok {
		haystack = strings.ToUpper(v) + " " + haystack
	}
	all := append(append(append([]string{}, CertLabs.Premium...), CertLabs.Standard...), CertLabs.Budget...)
	for _, lab := range all {
		if strings.Contains(haystack, lab) {
			return lab, true
		}
	}
	return "", false
}

// TreatmentNotEnhanced, TreatmentHeatOnly, TreatmentHeavy, TreatmentUnknown
// are the four treatment buckets spec §4.4 enumerates.
const (
	TreatmentNotEnhanced = "Not Enhanced"
	TreatmentHeatOnly    = "Heat Only"
	TreatmentHeavy       = "Heavy Treatment"
	TreatmentUnknown     = "Unknown"
)

var heavyTreatmentTerms = []string{
	"irradiated", "diffusion", "fracture filled", "fracture-filled",
	"glass filled", "glass-filled", "dyed", "bonded", "composite",
}

// ExtractTreatment buckets a stone's treatment from title/aspects.
func ExtractTreatment(title string, aspects map[string]string) string {
	haystack := strings.ToLower(title)
	if v, ok := aspects["treatment"]; ok {
		haystack = strings.ToLower(v) + " " + haystack
	}
	if term, found := ContainsAny(haystack, heavyTreatmentTerms); found {
		_ = term
		return TreatmentHeavy
	}
	if strings.Contains(haystack, "not enhanced") || strings.Contains(haystack, "no enhancement") ||
		strings.Contains(haystack, "untreated") {
		return TreatmentNotEnhanced
	}
	if strings.Contains(haystack, "heat") || strings.Contains(haystack, "heated") {
		return TreatmentHeatOnly
	}
	return TreatmentUnknown
}

// ExtractIsNatural checks title + aspects for "natural" presence without a
// lab-created contradiction.
func ExtractIsNatural(title string, aspects map[string]string) bool {
	haystack := strings.ToLower(title)
	if v, ok := aspects["creation method"]; ok {
		haystack = strings.ToLower(v) + " " + haystack
		if strings.Contains(strings.ToLower(v), "natural") {
			return true
		}
		if strings.Contains(strings.ToLower(v), "lab") || strings.Contains(strings.ToLower(v), "synthetic") {
			return false
		}
	}
	if _, found := ContainsAny(haystack, LabCreatedTerms); found {
		return false
	}
	return strings.Contains(haystack, "natural")
}
