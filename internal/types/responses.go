package types

import (
	"github.com/google/uuid"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/model"
)

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	SkillLevel string    `json:"skill_level"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RecipeMatch is one ranked recipe with its score breakdown
type RecipeMatch struct {
	Recipe       model.Recipe           `json:"recipe"`
	Score        float64                `json:"score"`
	Matches      []matching.MatchResult `json:"matches"`
	MissingCount int                    `json:"missing_count"`
	MatchDetails matching.MatchDetails  `json:"match_details"`
	Generated    bool                   `json:"generated,omitempty"`
	DraftID      string                 `json:"draft_id,omitempty"`
}

// NewRecipeMatch flattens a score result next to its recipe
func NewRecipeMatch(recipe model.Recipe, res matching.ScoreResult) RecipeMatch {
	return RecipeMatch{
		Recipe:       recipe,
		Score:        res.Score,
		Matches:      res.Matches,
		MissingCount: res.MissingCount,
		MatchDetails: res.Details,
	}
}

type SearchResponse struct {
	Recipes     []RecipeMatch `json:"recipes"`
	MinimumMet  bool          `json:"minimum_met"`
	Considered  int           `json:"considered"`
	Qualified   int           `json:"qualified"`
	Unavailable bool          `json:"unavailable,omitempty"`
	Code        string        `json:"code,omitempty"`
}

type PantryResponse struct {
	Items []model.PantryItem `json:"items"`
}
