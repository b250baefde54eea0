// Package matching scores candidate recipes against the ingredients a user has
// and ranks the ones worth cooking. Everything here is a pure function of its
// inputs; the lookup tables and configuration are fixed when the Engine is built
// and are safe for concurrent use.
package matching

import "fmt"

// Engine scores, filters and ranks recipes.
type Engine struct {
	cfg      Config
	rules    RuleTable
	resolver Resolver
}

// NewEngine builds an Engine. A nil policy selects TokenOverlapPolicy.
func NewEngine(cfg Config, tables Tables, policy MatchPolicy) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matching config: %w", err)
	}
	return &Engine{
		cfg:      cfg,
		rules:    tables.Rules,
		resolver: NewResolver(policy, tables.Substitutions),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Categorize classifies an ingredient name with the engine's rule table.
func (e *Engine) Categorize(name string) Category {
	return e.rules.Categorize(name)
}

// PrepareIngredient canonicalizes the name and fills in a missing or unknown
// category.
func (e *Engine) PrepareIngredient(ing Ingredient) Ingredient {
	if ing.DisplayName == "" {
		ing.DisplayName = ing.Name
	}
	ing.Name = Normalize(ing.Name)
	if !ing.Category.Valid() {
		ing.Category = e.rules.Categorize(ing.Name)
	}
	return ing
}

// Prepare returns a copy of recipe with every ingredient prepared.
func (e *Engine) Prepare(recipe Recipe) Recipe {
	out := recipe
	out.Ingredients = make([]Ingredient, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		out.Ingredients[i] = e.PrepareIngredient(ing)
	}
	return out
}

// SearchResult is the ranked outcome of one search.
type SearchResult struct {
	Results    []Scored `json:"results"`
	MinimumMet bool     `json:"minimum_met"`
	// Considered is how many recipes were scored.
	Considered int `json:"considered"`
	// Qualified is how many passed the filter before truncation.
	Qualified int `json:"qualified"`
}

// Search scores every recipe against the query and pantry ingredients and
// returns the best minResults of those that pass the filter. minResults <= 0
// means the configured default. Only the first PoolLimit recipes are scored.
func (e *Engine) Search(recipes []Recipe, query, pantry []string, minResults int) SearchResult {
	if minResults <= 0 {
		minResults = e.cfg.DefaultMinResults
	}
	if len(recipes) > e.cfg.PoolLimit {
		recipes = recipes[:e.cfg.PoolLimit]
	}

	names := make([]string, 0, len(query)+len(pantry))
	names = append(names, query...)
	names = append(names, pantry...)
	pool := NewPool(names...)

	scored := make([]Scored, 0, len(recipes))
	for _, r := range recipes {
		scored = append(scored, Scored{Recipe: r, Result: e.Score(r, pool)})
	}

	ranked := Rank(e.Filter(scored), e.cfg.TieMargin)
	res := SearchResult{
		MinimumMet: len(ranked) >= minResults,
		Considered: len(scored),
		Qualified:  len(ranked),
	}
	if len(ranked) > minResults {
		ranked = ranked[:minResults]
	}
	res.Results = ranked
	return res
}
