package extract

import (
	"regexp"
	"strings"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// StripHTML removes tags and collapses whitespace, matching what the
// classification pipeline runs every description through before keyword
// matching (spec §4.5.2-8).
func StripHTML(s string) string {
	stripped := htmlTagPattern.ReplaceAllString(s, " ")
	stripped = strings.NewReplacer("&amp;", "&", "&nbsp;", " ", "&quot;", `"`, "&#39;", "'").Replace(stripped)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(stripped, " "))
}

// ContainsAny reports whether haystack (already lowercased) contains any of
// needles, using a word-boundary match for entries of length <= 3 to avoid
// matching short tokens as substrings of unrelated words (spec §4.5.3-4).
func ContainsAny(haystack string, needles []string) (string, bool) {
	for _, n := range needles {
		if len(n) <= 3 {
			if wordBoundaryContains(haystack, n) {
				return n, true
			}
			continue
		}
		if strings.Contains(haystack, n) {
			return n, true
		}
	}
	return "", false
}

func wordBoundaryContains(haystack, needle string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(needle) + `\b`)
	return re.MatchString(haystack)
}
