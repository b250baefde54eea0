package types

import (
	"github.com/pageza/pantrymatch/backend/internal/matching"
)

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	SkillLevel string `json:"skill_level" binding:"omitempty,oneof=beginner intermediate advanced"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SearchRequest is the body of POST /recipes/search
type SearchRequest struct {
	Ingredients     []string `json:"ingredients"`
	Pantry          []string `json:"pantry"`
	MinResults      int      `json:"min_results" binding:"min=0,max=50"`
	MaxTotalTime    int      `json:"max_total_time" binding:"min=0"`
	SkillLevel      string   `json:"skill_level"`
	MealType        string   `json:"meal_type"`
	Dietary         []string `json:"dietary"`
	GenerateIfShort bool     `json:"generate_if_short"`
}

// ScoreRequest is the body of POST /recipes/:id/score
type ScoreRequest struct {
	Ingredients []string `json:"ingredients"`
	Pantry      []string `json:"pantry"`
}

// CreateRecipeRequest accepts ingredients as free-text lines or objects
type CreateRecipeRequest struct {
	Title           string                `json:"title" binding:"required,max=255"`
	Description     string                `json:"description"`
	Ingredients     []matching.Ingredient `json:"ingredients" binding:"required,min=1"`
	Instructions    []string              `json:"instructions"`
	Difficulty      string                `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	PrepTimeMinutes int                   `json:"prep_time_minutes" binding:"min=0"`
	CookTimeMinutes int                   `json:"cook_time_minutes" binding:"min=0"`
	Calories        float64               `json:"calories" binding:"min=0"`
	Tags            []string              `json:"tags"`
	SourceURL       string                `json:"source_url" binding:"omitempty,url"`
}

type PantryRequest struct {
	Items []string `json:"items"`
}

// GenerateRequest is the body of POST /llm/generate
type GenerateRequest struct {
	Ingredients  []string `json:"ingredients" binding:"required,min=1"`
	MaxTotalTime int      `json:"max_total_time" binding:"min=0"`
	MealType     string   `json:"meal_type"`
	SkillLevel   string   `json:"skill_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Dietary      []string `json:"dietary"`
	Count        int      `json:"count" binding:"min=0,max=5"`
}

// AdaptRequest is the body of POST /llm/adapt/:id
type AdaptRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1"`
}
