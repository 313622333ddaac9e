package resolve

import (
	"fmt"

	"github.com/agext/levenshtein"
)

// suggest returns a "did you mean" hint naming the candidate closest to
// given, or "" when nothing is close enough.
func suggest(given string, candidates []string) string {
	best, bestDist := "", 3
	for _, c := range candidates {
		if d := levenshtein.Distance(given, c, nil); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("did you mean %q?", best)
}
