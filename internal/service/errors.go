package service

import "errors"

var (
	// ErrSearchUnavailable means the candidate pool could not be loaded.
	ErrSearchUnavailable = errors.New("recipe search is temporarily unavailable")
	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrDraftNotFound     = errors.New("draft not found or expired")
	// ErrGeneratorUnavailable means recipe generation is unconfigured or its
	// circuit breaker is open.
	ErrGeneratorUnavailable = errors.New("recipe generator unavailable")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoIngredients      = errors.New("at least one ingredient or pantry item is required")
	ErrEmptyRecipe        = errors.New("recipe needs at least one ingredient")
	ErrInvalidSkillLevel  = errors.New("skill level must be beginner, intermediate or advanced")
)
