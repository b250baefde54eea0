package matching

import (
	"fmt"
	"strings"
)

// Category is the importance class of a recipe ingredient.
type Category string

const (
	CategoryKey       Category = "key"
	CategoryImportant Category = "important"
	CategoryFlavor    Category = "flavor"
	CategoryBase      Category = "base"
)

// categoryOrder is the precedence used when a name matches several rules.
var categoryOrder = map[Category]int{
	CategoryKey:       0,
	CategoryImportant: 1,
	CategoryFlavor:    2,
	CategoryBase:      3,
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	_, ok := categoryOrder[c]
	return ok
}

// ParseCategory converts free text into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown ingredient category %q", s)
	}
	return c, nil
}

// CategoryRule maps a set of keywords to a category.
type CategoryRule struct {
	Category Category `json:"category" mapstructure:"category" yaml:"category"`
	Keywords []string `json:"keywords" mapstructure:"keywords" yaml:"keywords"`
}

// RuleTable is an ordered, read-only list of category rules. The first rule with
// a keyword overlapping the name wins.
type RuleTable struct {
	rules []CategoryRule
}

// NewRuleTable validates and normalizes rules. Rules must be listed in the order
// key, important, flavor, base; a category may be omitted but not repeated out of
// order.
func NewRuleTable(rules []CategoryRule) (RuleTable, error) {
	out := make([]CategoryRule, 0, len(rules))
	last := -1
	for i, r := range rules {
		rank, ok := categoryOrder[r.Category]
		if !ok {
			return RuleTable{}, fmt.Errorf("rule %d: unknown category %q", i, r.Category)
		}
		if rank < last {
			return RuleTable{}, fmt.Errorf("rule %d: category %q listed after a lower-precedence category", i, r.Category)
		}
		last = rank

		keywords := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if n := Normalize(kw); n != "" {
				keywords = append(keywords, n)
			}
		}
		out = append(out, CategoryRule{Category: r.Category, Keywords: keywords})
	}
	return RuleTable{rules: out}, nil
}

// Categorize returns the category of an ingredient name. Names that match no
// keyword, including empty names, are important.
func (t RuleTable) Categorize(name string) Category {
	n := Normalize(name)
	if n == "" {
		return CategoryImportant
	}
	for _, r := range t.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(n, kw) || strings.Contains(kw, n) {
				return r.Category
			}
		}
	}
	return CategoryImportant
}

// Rules returns a copy of the normalized rules.
func (t RuleTable) Rules() []CategoryRule {
	out := make([]CategoryRule, len(t.rules))
	for i, r := range t.rules {
		out[i] = CategoryRule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}
