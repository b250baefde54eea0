package matching

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ingredient is one structured line of a recipe.
type Ingredient struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name,omitempty"`
	Amount      string   `json:"amount,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Category    Category `json:"category,omitempty"`
	Substitutes []string `json:"substitutes,omitempty"`
}

// UnmarshalJSON accepts either a structured object or a free-text line such as
// "2 cups flour, sifted".
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var line string
		if err := json.Unmarshal(trimmed, &line); err != nil {
			return err
		}
		*i = ParseLine(line)
		return nil
	}

	type plain Ingredient
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return fmt.Errorf("invalid ingredient: %w", err)
	}
	*i = Ingredient(p)
	if i.DisplayName == "" {
		i.DisplayName = i.Name
	}
	i.Name = Normalize(i.Name)
	return nil
}

// Label is the name to show a user.
func (i Ingredient) Label() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return i.Name
}

// Recipe is the engine's view of a candidate recipe.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Ingredients []Ingredient `json:"ingredients"`
}
