package scheduler

import "strings"

var goldKaratVariants = []string{"18K", "14K", "10K", "24K", "18kt", "14kt", "10kt"}

// expandMetals implements spec §4.11's metal expansion: a "* Gold" entry in
// a jewelry task's metal set additionally searches each karat-suffixed
// variant, since sellers title gold listings inconsistently ("Yellow Gold"
// vs "14K Gold"). Any entry whose name ends in "gold" (case-insensitive) is
// expanded; every other entry passes through unexpanded.
func expandMetals(metals map[string]bool) []string {
	seen := make(map[string]bool, len(metals))
	var out []string
	add := func(m string) {
		if m == "" || seen[m] {
			return
		}
		seen[m] = true
		out = append(out, m)
	}

	for m := range metals {
		add(m)
		if strings.HasSuffix(strings.ToLower(m), "gold") {
			for _, variant := range goldKaratVariants {
				add(variant + " Gold")
			}
		}
	}
	return out
}
