package matching

import (
	"cmp"
	"slices"
)

// tieEpsilon absorbs float error when comparing a score gap with the margin.
const tieEpsilon = 1e-9

// Scored pairs a recipe with its score for one request.
type Scored struct {
	Recipe Recipe      `json:"recipe"`
	Result ScoreResult `json:"result"`
}

// Filter keeps recipes that reach the minimum score and, when key ingredients
// are required, have at least one matched key ingredient.
func (e *Engine) Filter(scored []Scored) []Scored {
	out := make([]Scored, 0, len(scored))
	for _, s := range scored {
		if s.Result.Score < e.cfg.MinScore {
			continue
		}
		if e.cfg.RequireKeyIngredient && s.Result.KeysMatched == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Rank orders recipes by score, treating scores within margin of each other as
// tied and breaking ties by fewer missing ingredients.
//
// Near-equality is not transitive, so scores are grouped by anchor: walking the
// list from the highest score, each group starts at the first recipe not yet
// grouped and takes every following recipe whose score is within margin of that
// first one. Groups keep their score order; inside a group recipes are ordered
// by missing count, then score, then ID. The input is not modified.
func Rank(scored []Scored, margin float64) []Scored {
	out := slices.Clone(scored)
	slices.SortStableFunc(out, func(a, b Scored) int {
		if c := cmp.Compare(b.Result.Score, a.Result.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Recipe.ID, b.Recipe.ID)
	})

	for start := 0; start < len(out); {
		anchor := out[start].Result.Score
		end := start + 1
		for end < len(out) && anchor-out[end].Result.Score <= margin+tieEpsilon {
			end++
		}
		slices.SortStableFunc(out[start:end], compareWithinTie)
		start = end
	}
	return out
}

func compareWithinTie(a, b Scored) int {
	if c := cmp.Compare(a.Result.MissingCount, b.Result.MissingCount); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Result.Score, a.Result.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.Recipe.ID, b.Recipe.ID)
}
