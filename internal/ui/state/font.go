package state

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultFont is selected on start and after Clear.
const DefaultFont = "Cormorant Garamond"

// Fonts lists the typefaces the backend can render, in display order.
var Fonts = []string{
	DefaultFont,
	"Open Sans",
	"Montserrat",
	"PT Serif",
	"Libre Baskerville",
	"Amiri",
}

// FontIndex returns the position of name in Fonts, or -1.
func FontIndex(name string) int {
	for i, f := range Fonts {
		if f == name {
			return i
		}
	}
	return -1
}

// CycleFont steps delta places from current, wrapping at both ends. Unknown
// fonts start from the default.
func CycleFont(current string, delta int) string {
	n := len(Fonts)
	idx := FontIndex(current)
	if idx < 0 {
		idx = 0
	}
	idx = ((idx+delta)%n + n) % n
	return Fonts[idx]
}

// MatchFont picks the font best matching query. Prefix matches win, then the
// closest fuzzy match, then display order.
func MatchFont(query string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}
	lower := strings.ToLower(query)
	for _, f := range Fonts {
		if strings.HasPrefix(strings.ToLower(f), lower) {
			return f, true
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(query, Fonts)
	if len(ranks) == 0 {
		return "", false
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	return ranks[0].Target, true
}
