package matching

import "math"

// MissingIngredient is an unmatched ingredient with alternates the user could
// look for instead.
type MissingIngredient struct {
	Name                 string   `json:"name"`
	CandidateSubstitutes []string `json:"candidate_substitutes"`
}

// MatchDetails summarizes the weighted ingredients of a scored recipe.
type MatchDetails struct {
	ExactCount      int                 `json:"exact_count"`
	SubstituteCount int                 `json:"substitute_count"`
	Missing         []MissingIngredient `json:"missing"`
}

// ScoreResult is the per-request score of one recipe.
type ScoreResult struct {
	Score        float64       `json:"score"`
	Matches      []MatchResult `json:"matches"`
	MissingCount int           `json:"missing_count"`
	Details      MatchDetails  `json:"match_details"`

	KeyIngredients int `json:"-"`
	KeysMatched    int `json:"-"`
}

// Score computes the weighted match score of recipe against pool. Base
// ingredients are reported as exact matches and carry no weight.
func (e *Engine) Score(recipe Recipe, pool Pool) ScoreResult {
	res := ScoreResult{
		Matches: make([]MatchResult, 0, len(recipe.Ingredients)),
		Details: MatchDetails{Missing: []MissingIngredient{}},
	}

	var earned, total float64
	for _, raw := range recipe.Ingredients {
		ing := e.PrepareIngredient(raw)
		m := e.resolver.Resolve(ing, pool)
		res.Matches = append(res.Matches, m)

		if ing.Category == CategoryBase {
			continue
		}

		weight := e.cfg.Weights.For(ing.Category)
		total += weight
		earned += weight * e.cfg.Multipliers.For(m.MatchType)

		switch m.MatchType {
		case MatchExact:
			res.Details.ExactCount++
		case MatchSubstitute:
			res.Details.SubstituteCount++
		default:
			res.MissingCount++
			res.Details.Missing = append(res.Details.Missing, MissingIngredient{
				Name:                 ing.Label(),
				CandidateSubstitutes: e.resolver.Suggestions(ing, e.cfg.MaxSuggestions),
			})
		}

		if ing.Category == CategoryKey {
			res.KeyIngredients++
			if m.MatchType != MatchNone {
				res.KeysMatched++
			}
		}
	}

	var score float64
	if total > 0 {
		score = earned / total * 100
	}
	if res.KeyIngredients > 0 && res.KeysMatched == res.KeyIngredients {
		score += e.cfg.AllKeysBonus
	}
	res.Score = round1(math.Max(0, math.Min(100, score)))
	return res
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
