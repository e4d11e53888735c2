package match

import (
	"sort"
)

// DefaultMinScore is the minimum similarity for a name to be suggested.
const DefaultMinScore = 0.6

// Suggestion is a ranked known name.
type Suggestion struct {
	Name  string
	Score float64
}

// Rank scores every known name against ref and returns those at or above
// minScore, best first. Ties keep the order of names.
func Rank(ref string, names []string, minScore float64) []Suggestion {
	target := NormalizeTypeRef(ref)

	var out []Suggestion

	for _, name := range names {
		score := Similarity(target, NormalizeTypeRef(name))
		if score < minScore {
			continue
		}

		out = append(out, Suggestion{Name: name, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}

// Suggest returns at most limit near-miss names for ref.
func Suggest(ref string, names []string, limit int) []string {
	ranked := Rank(ref, names, DefaultMinScore)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.Name)
	}

	return out
}
