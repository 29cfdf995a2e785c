package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// WatchAttributes is the bundle the watch chain captures (spec §4.5.6);
// there is no scoring beyond attribute capture for watches.
type WatchAttributes struct {
	CaseMaterial string
	BandMaterial string
	Movement     string
	DialColor    string
	Year         int
	Brand        string
	Model        string
}

// ExtractCaseMaterial matches WatchMaterials against title/aspects.
func ExtractCaseMaterial(title string, aspects map[string]string) (string, bool) {
	haystack := strings.ToLower(title)
	if v, ok := aspects["case material"]; ok {
		return strings.Title(strings.ToLower(v)), true
	}
	for _, m := range WatchMaterials {
		if strings.Contains(haystack, m) {
			return strings.Title(m), true
		}
	}
	return "", false
}

var bandContextPattern = regexp.MustCompile(`\b(band|strap|bracelet)\b`)

// ExtractBandMaterial requires an adjacent band/strap/bracelet token in the
// title to avoid confusing case material with band material (spec §4.4).
func ExtractBandMaterial(title string, aspects map[string]string) (string, bool) {
	if v, ok := aspects["band material"]; ok {
		return strings.Title(strings.ToLower(v)), true
	}
	lower := strings.ToLower(title)
	if !bandContextPattern.MatchString(lower) {
		return "", false
	}
	for _, m := range WatchMaterials {
		adjacent := regexp.MustCompile(regexp.QuoteMeta(m) + `\s*(band|strap|bracelet)\b`)
		if adjacent.MatchString(lower) {
			return strings.Title(m), true
		}
	}
	return "", false
}

// ExtractMovement matches WatchMovementPatterns against title/aspects.
func ExtractMovement(title string, aspects map[string]string) (string, bool) {
	haystack := strings.ToLower(title)
	if v, ok := aspects["movement"]; ok {
		haystack = strings.ToLower(v) + " " + haystack
	}
	for _, p := range WatchMovementPatterns {
		if strings.Contains(haystack, p.Contains) {
			return p.Movement, true
		}
	}
	return "", false
}

// ExtractDialColor reads the dial color aspect directly when present.
func ExtractDialColor(aspects map[string]string) (string, bool) {
	if v, ok := aspects["dial color"]; ok {
		return strings.Title(strings.ToLower(v)), true
	}
	if v, ok := aspects["dial colour"]; ok {
		return strings.Title(strings.ToLower(v)), true
	}
	return "", false
}

var yearPattern = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)

// ExtractYear accepts years in [1800, current year + 1].
func ExtractYear(title string, aspects map[string]string) (int, bool) {
	maxYear := time.Now().Year() + 1
	if v, ok := aspects["year"]; ok {
		if y, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && y >= 1800 && y <= maxYear {
			return y, true
		}
	}
	m := yearPattern.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	if err != nil || y < 1800 || y > maxYear {
		return 0, false
	}
	return y, true
}

// ExtractBrand matches the curated WatchBrands list via exact containment.
func ExtractBrand(title string, aspects map[string]string) (string, bool) {
	if v, ok := aspects["brand"]; ok {
		for _, b := range WatchBrands {
			if strings.EqualFold(v, b) {
				return b, true
			}
		}
	}
	upper := strings.ToLower(title)
	for _, b := range WatchBrands {
		if strings.Contains(upper, strings.ToLower(b)) {
			return b, true
		}
	}
	return "", false
}

// ExtractModel reads the model aspect when present; no title fallback since
// model strings are too free-form to regex reliably (spec §4.4).
func ExtractModel(aspects map[string]string) (string, bool) {
	if v, ok := aspects["model"]; ok && v != "" {
		return v, true
	}
	if v, ok := aspects["reference number"]; ok && v != "" {
		return v, true
	}
	return "", false
}
