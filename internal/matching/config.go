package matching

import (
	"errors"
	"fmt"
)

// Weights is the points each non-base category contributes to a recipe's total.
type Weights struct {
	Key       float64 `json:"key" mapstructure:"key"`
	Important float64 `json:"important" mapstructure:"important"`
	Flavor    float64 `json:"flavor" mapstructure:"flavor"`
}

// For returns the weight of c. Base ingredients weigh nothing.
func (w Weights) For(c Category) float64 {
	switch c {
	case CategoryKey:
		return w.Key
	case CategoryImportant:
		return w.Important
	case CategoryFlavor:
		return w.Flavor
	default:
		return 0
	}
}

// Multipliers scale an ingredient's weight by how it was matched.
type Multipliers struct {
	Exact      float64 `json:"exact" mapstructure:"exact"`
	Substitute float64 `json:"substitute" mapstructure:"substitute"`
}

// For returns the multiplier for t. Unmatched ingredients earn nothing.
func (m Multipliers) For(t MatchType) float64 {
	switch t {
	case MatchExact:
		return m.Exact
	case MatchSubstitute:
		return m.Substitute
	default:
		return 0
	}
}

// Config holds the scoring and ranking knobs of the engine.
type Config struct {
	Weights     Weights     `json:"weights" mapstructure:"weights"`
	Multipliers Multipliers `json:"multipliers" mapstructure:"multipliers"`

	// MinScore is the lowest score a recipe may have and still be returned.
	MinScore float64 `json:"min_score" mapstructure:"min_score"`
	// RequireKeyIngredient drops recipes in which no key ingredient matched,
	// including recipes that have no key ingredient at all.
	RequireKeyIngredient bool `json:"require_key_ingredient" mapstructure:"require_key_ingredient"`
	// AllKeysBonus is added when every key ingredient matched.
	AllKeysBonus float64 `json:"all_keys_bonus" mapstructure:"all_keys_bonus"`
	// TieMargin is the score distance within which recipes rank by missing count.
	TieMargin float64 `json:"tie_margin" mapstructure:"tie_margin"`

	DefaultMinResults int `json:"default_min_results" mapstructure:"default_min_results"`
	MaxSuggestions    int `json:"max_suggestions" mapstructure:"max_suggestions"`
	// PoolLimit caps how many candidate recipes are scored per search.
	PoolLimit int `json:"pool_limit" mapstructure:"pool_limit"`
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights:              Weights{Key: 10, Important: 5, Flavor: 2},
		Multipliers:          Multipliers{Exact: 1.0, Substitute: 0.7},
		MinScore:             40,
		RequireKeyIngredient: true,
		AllKeysBonus:         10,
		TieMargin:            5,
		DefaultMinResults:    5,
		MaxSuggestions:       5,
		PoolLimit:            200,
	}
}

// Validate checks the configuration for values the engine cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Weights.Key < 0 || c.Weights.Important < 0 || c.Weights.Flavor < 0 {
		errs = append(errs, errors.New("weights must not be negative"))
	}
	if v := c.Multipliers.Exact; v < 0 || v > 1 {
		errs = append(errs, fmt.Errorf("exact multiplier must be within [0,1], got %v", v))
	}
	if v := c.Multipliers.Substitute; v < 0 || v > 1 {
		errs = append(errs, fmt.Errorf("substitute multiplier must be within [0,1], got %v", v))
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		errs = append(errs, fmt.Errorf("min_score must be within [0,100], got %v", c.MinScore))
	}
	if c.AllKeysBonus < 0 {
		errs = append(errs, errors.New("all_keys_bonus must not be negative"))
	}
	if c.TieMargin < 0 {
		errs = append(errs, errors.New("tie_margin must not be negative"))
	}
	if c.DefaultMinResults < 1 {
		errs = append(errs, errors.New("default_min_results must be at least 1"))
	}
	if c.MaxSuggestions < 0 {
		errs = append(errs, errors.New("max_suggestions must not be negative"))
	}
	if c.PoolLimit < 1 {
		errs = append(errs, errors.New("pool_limit must be at least 1"))
	}
	return errors.Join(errs...)
}

// Tables bundles the read-only lookup data the engine consults.
type Tables struct {
	Rules         RuleTable
	Substitutions SubstitutionIndex
}
