package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), DefaultTables(), nil)
	require.NoError(t, err)
	return e
}

func sampleRecipe() Recipe {
	return Recipe{
		ID:    "chicken-onion",
		Title: "Chicken and onions",
		Ingredients: []Ingredient{
			{Name: "chicken breast", Category: CategoryKey},
			{Name: "onion", Category: CategoryImportant},
			{Name: "salt", Category: CategoryBase},
		},
	}
}

func TestScoreExampleA(t *testing.T) {
	e := newTestEngine(t)
	res := e.Score(sampleRecipe(), NewPool("chicken", "onion"))

	assert.Equal(t, 100.0, res.Score)
	assert.Equal(t, 0, res.MissingCount)
	assert.Equal(t, 2, res.Details.ExactCount)
	assert.Equal(t, 0, res.Details.SubstituteCount)
	assert.Empty(t, res.Details.Missing)

	require.Len(t, res.Matches, 3)
	for _, m := range res.Matches {
		assert.Equal(t, MatchExact, m.MatchType, m.Ingredient.Name)
		assert.Empty(t, m.MatchedWith)
	}
}

func TestScoreExampleB(t *testing.T) {
	e := newTestEngine(t)
	res := e.Score(sampleRecipe(), NewPool("onion"))

	assert.Equal(t, 33.3, res.Score)
	assert.Equal(t, 1, res.MissingCount)
	assert.Equal(t, MatchNone, res.Matches[0].MatchType)
	assert.Equal(t, MatchExact, res.Matches[1].MatchType)

	require.Len(t, res.Details.Missing, 1)
	assert.Equal(t, "chicken breast", res.Details.Missing[0].Name)
	assert.Equal(t, []string{"chicken thighs", "turkey breast", "tofu"}, res.Details.Missing[0].CandidateSubstitutes)

	assert.Empty(t, e.Filter([]Scored{{Recipe: sampleRecipe(), Result: res}}))
}

func TestScoreExampleC(t *testing.T) {
	e := newTestEngine(t)
	recipe := Recipe{ID: "dip", Ingredients: []Ingredient{
		{Name: "sour cream", Category: CategoryImportant},
		{Name: "chives", Category: CategoryFlavor},
	}}
	res := e.Score(recipe, NewPool("greek yogurt"))

	require.Len(t, res.Matches, 2)
	assert.Equal(t, MatchSubstitute, res.Matches[0].MatchType)
	assert.Equal(t, "greek yogurt", res.Matches[0].MatchedWith)
	assert.Equal(t, 1, res.Details.SubstituteCount)
	// 5*0.7 of 7 points
	assert.Equal(t, 50.0, res.Score)
}

func TestScoreEdgeCases(t *testing.T) {
	e := newTestEngine(t)

	t.Run("should score zero when only base ingredients are present", func(t *testing.T) {
		recipe := Recipe{Ingredients: []Ingredient{{Name: "salt"}, {Name: "water"}}}
		res := e.Score(recipe, NewPool("salt"))
		assert.Equal(t, 0.0, res.Score)
		assert.Equal(t, 0, res.MissingCount)
		assert.Len(t, res.Matches, 2)
	})

	t.Run("should score zero for an empty recipe", func(t *testing.T) {
		res := e.Score(Recipe{}, NewPool("salt"))
		assert.Equal(t, 0.0, res.Score)
		assert.NotNil(t, res.Details.Missing)
	})

	t.Run("should categorize ingredients that have no category", func(t *testing.T) {
		recipe := Recipe{Ingredients: []Ingredient{{Name: "Beef Mince"}, {Name: "oregano", Category: "bogus"}}}
		res := e.Score(recipe, NewPool())
		assert.Equal(t, CategoryKey, res.Matches[0].Ingredient.Category)
		assert.Equal(t, "beef mince", res.Matches[0].Ingredient.Name)
		assert.Equal(t, "Beef Mince", res.Matches[0].Ingredient.DisplayName)
		assert.Equal(t, CategoryFlavor, res.Matches[1].Ingredient.Category)
	})

	t.Run("should not add the bonus without key ingredients", func(t *testing.T) {
		recipe := Recipe{Ingredients: []Ingredient{
			{Name: "onion", Category: CategoryImportant},
			{Name: "carrot", Category: CategoryImportant},
		}}
		res := e.Score(recipe, NewPool("onion"))
		assert.Equal(t, 50.0, res.Score)
	})

	t.Run("should add the bonus when every key ingredient matched", func(t *testing.T) {
		recipe := Recipe{Ingredients: []Ingredient{
			{Name: "beef", Category: CategoryKey},
			{Name: "carrot", Category: CategoryImportant},
		}}
		res := e.Score(recipe, NewPool("beef"))
		// 10 of 15 points plus the bonus
		assert.Equal(t, 76.7, res.Score)
	})

	t.Run("should count substitute key matches toward the bonus", func(t *testing.T) {
		recipe := Recipe{Ingredients: []Ingredient{
			{Name: "salmon", Category: CategoryKey},
			{Name: "lemon", Category: CategoryImportant},
		}}
		res := e.Score(recipe, NewPool("trout", "lemon"))
		// (7 + 5) / 15 = 80, plus the bonus
		assert.Equal(t, 90.0, res.Score)
		assert.Equal(t, 1, res.KeysMatched)
	})
}

func TestScoreIsDeterministicAndBounded(t *testing.T) {
	e := newTestEngine(t)
	pools := [][]string{
		nil,
		{"chicken"},
		{"chicken", "onion", "garlic", "rice", "tomato", "cheese"},
		{"greek yogurt", "turkey", "leek"},
	}
	recipes := []Recipe{
		sampleRecipe(),
		{Ingredients: ParseLines([]string{"1 lb ground beef", "1 onion", "2 cloves garlic", "1 can tomatoes", "salt"})},
		{Ingredients: ParseLines([]string{"2 cups rice", "1 cup sour cream", "1 tsp cumin", "1 lime"})},
	}

	for _, p := range pools {
		pool := NewPool(p...)
		for _, r := range recipes {
			first := e.Score(r, pool)
			second := e.Score(r, pool)
			assert.Equal(t, first, second)
			assert.GreaterOrEqual(t, first.Score, 0.0)
			assert.LessOrEqual(t, first.Score, 100.0)
		}
	}
}
