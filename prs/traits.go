package prs

import "sort"

// TraitScore is the summed contribution of every association for one trait.
type TraitScore struct {
	Trait string
	Score float64
}

// ByTrait groups contributions by trait, highest score first. Ties are
// ordered by trait name.
func (r Result) ByTrait() []TraitScore {
	sums := make(map[string]float64)
	for _, c := range r.Contributions {
		sums[c.Trait] += c.Contribution
	}

	out := make([]TraitScore, 0, len(sums))
	for trait, score := range sums {
		out = append(out, TraitScore{Trait: trait, Score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Trait < out[j].Trait
	})

	return out
}

// Top returns at most n traits from ByTrait. n <= 0 means all of them.
func (r Result) Top(n int) []TraitScore {
	ranked := r.ByTrait()
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}
