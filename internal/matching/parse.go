package matching

import (
	"regexp"
	"strings"
)

const (
	quantityPattern = `\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?(?:\s*-\s*\d+(?:\.\d+)?)?|[½¼¾⅓⅔⅛]`
	unitPattern     = `cups?|c|tablespoons?|tbsps?|tbs|teaspoons?|tsps?|pounds?|lbs?|ounces?|oz|grams?|g|kilograms?|kg|milliliters?|millilitres?|ml|liters?|litres?|l|pinch(?:es)?|dash(?:es)?|cloves?|cans?|slices?|pieces?|sprigs?|bunch(?:es)?|handfuls?|packages?|sticks?|heads?|quarts?|pints?`
)

var lineRe = regexp.MustCompile(`(?i)^\s*(?:(` + quantityPattern + `)\s*(?:(` + unitPattern + `)\.?\s+)?)?(?:of\s+)?(.+?)\s*$`)

// ParseLine splits a free-text ingredient line of the form
// "quantity unit name[, notes]". It never fails: a line it cannot split becomes
// an ingredient whose name is the whole line and whose amount is empty. The
// category is left empty for the engine to fill.
func ParseLine(line string) Ingredient {
	trimmed := strings.TrimSpace(line)
	m := lineRe.FindStringSubmatch(trimmed)
	if m == nil {
		return Ingredient{Name: Normalize(trimmed), DisplayName: trimmed}
	}

	amount, unit, rest := strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), m[3]
	name, notes := rest, ""
	if idx := strings.Index(rest, ","); idx >= 0 {
		name, notes = strings.TrimSpace(rest[:idx]), strings.TrimSpace(rest[idx+1:])
	}
	if Normalize(name) == "" {
		return Ingredient{Name: Normalize(trimmed), DisplayName: trimmed}
	}

	return Ingredient{
		Name:        Normalize(name),
		DisplayName: name,
		Amount:      amount,
		Unit:        strings.ToLower(unit),
		Notes:       notes,
	}
}

// ParseLines parses every line, skipping blank ones.
func ParseLines(lines []string) []Ingredient {
	out := make([]Ingredient, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, ParseLine(l))
	}
	return out
}
