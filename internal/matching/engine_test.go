package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Multipliers.Substitute = 1.5
	cfg.PoolLimit = 0

	_, err := NewEngine(cfg, DefaultTables(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "substitute multiplier")
	assert.Contains(t, err.Error(), "pool_limit")
}

func TestSearch(t *testing.T) {
	e := newTestEngine(t)

	recipes := []Recipe{
		{ID: "stir-fry", Title: "Chicken stir fry", Ingredients: ParseLines([]string{
			"2 chicken breasts", "1 onion", "2 cloves garlic", "2 tbsp soy sauce", "1 tbsp oil",
		})},
		{ID: "salad", Title: "Garden salad", Ingredients: ParseLines([]string{
			"1 head lettuce", "1 cucumber", "2 tomatoes", "olive oil", "salt",
		})},
		{ID: "beef-stew", Title: "Beef stew", Ingredients: ParseLines([]string{
			"1 lb beef", "3 carrots", "2 potatoes", "1 onion", "2 cups stock",
		})},
		{ID: "chicken-rice", Title: "Chicken and rice", Ingredients: ParseLines([]string{
			"1 lb chicken thighs", "1 cup rice", "1 onion", "salt",
		})},
	}

	t.Run("should return qualifying recipes in rank order", func(t *testing.T) {
		res := e.Search(recipes, []string{"chicken", "onion"}, []string{"garlic", "rice"}, 3)

		assert.Equal(t, 4, res.Considered)
		assert.Equal(t, []string{"chicken-rice", "stir-fry"}, ids(res.Results))
		assert.Equal(t, 2, res.Qualified)
		assert.False(t, res.MinimumMet)
	})

	t.Run("should exclude recipes without key ingredients", func(t *testing.T) {
		res := e.Search(recipes, []string{"lettuce", "cucumber", "tomato"}, nil, 1)
		for _, r := range res.Results {
			assert.NotEqual(t, "salad", r.Recipe.ID)
		}
	})

	t.Run("should truncate to the requested minimum", func(t *testing.T) {
		res := e.Search(recipes, []string{"chicken", "onion", "rice", "garlic", "soy sauce"}, nil, 1)
		assert.Len(t, res.Results, 1)
		assert.True(t, res.MinimumMet)
	})

	t.Run("should use the default minimum", func(t *testing.T) {
		res := e.Search(recipes, []string{"chicken"}, nil, 0)
		assert.LessOrEqual(t, len(res.Results), DefaultConfig().DefaultMinResults)
		assert.False(t, res.MinimumMet)
	})

	t.Run("should score no more than the pool limit", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PoolLimit = 2
		small, err := NewEngine(cfg, DefaultTables(), nil)
		require.NoError(t, err)

		res := small.Search(recipes, []string{"chicken"}, nil, 5)
		assert.Equal(t, 2, res.Considered)
	})
}

func TestSearchRankingExampleD(t *testing.T) {
	e := newTestEngine(t)

	// A scores higher but misses the carrot.
	a := Recipe{ID: "A", Ingredients: []Ingredient{
		{Name: "beef", Category: CategoryKey},
		{Name: "onion", Category: CategoryImportant},
		{Name: "carrot", Category: CategoryImportant},
	}}
	// B misses nothing thanks to a substitute.
	b := Recipe{ID: "B", Ingredients: []Ingredient{
		{Name: "venison", Category: CategoryKey, Substitutes: []string{"beef"}},
	}}

	res := e.Search([]Recipe{a, b}, []string{"beef", "onion"}, nil, 5)
	require.Len(t, res.Results, 2)

	scores := map[string]ScoreResult{}
	for _, r := range res.Results {
		scores[r.Recipe.ID] = r.Result
	}
	assert.Equal(t, 85.0, scores["A"].Score)
	assert.Equal(t, 1, scores["A"].MissingCount)
	assert.Equal(t, 80.0, scores["B"].Score)
	assert.Equal(t, 0, scores["B"].MissingCount)
	assert.Equal(t, []string{"B", "A"}, ids(res.Results))
}

func TestSearchNoKeyRecipeAlwaysExcluded(t *testing.T) {
	e := newTestEngine(t)
	for i, pool := range [][]string{nil, {"onion"}, {"onion", "carrot", "garlic", "milk"}} {
		recipe := Recipe{ID: fmt.Sprintf("veg-%d", i), Ingredients: []Ingredient{
			{Name: "onion", Category: CategoryImportant},
			{Name: "carrot", Category: CategoryImportant},
		}}
		res := e.Search([]Recipe{recipe}, pool, nil, 1)
		assert.Empty(t, res.Results)
		assert.False(t, res.MinimumMet)
	}
}

func TestPrepare(t *testing.T) {
	e := newTestEngine(t)
	in := Recipe{ID: "x", Ingredients: []Ingredient{{Name: "Fresh Basil"}, {Name: "tofu", Category: CategoryImportant}}}
	out := e.Prepare(in)

	assert.Equal(t, CategoryFlavor, out.Ingredients[0].Category)
	assert.Equal(t, "fresh basil", out.Ingredients[0].Name)
	assert.Equal(t, CategoryImportant, out.Ingredients[1].Category)
	assert.Equal(t, Category(""), in.Ingredients[0].Category)
}
