package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/model"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password, skillLevel string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	RecipeCreator
	CandidateStore
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
}

// IPantryService defines the interface for pantry operations
type IPantryService interface {
	PantryStore
	GetPantry(ctx context.Context, userID uuid.UUID) ([]model.PantryItem, error)
	ReplacePantry(ctx context.Context, userID uuid.UUID, names []string) ([]model.PantryItem, error)
}

// ISearchService defines the interface for ranked search
type ISearchService interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	ScoreOne(ctx context.Context, recipe *model.Recipe, req SearchRequest) matching.ScoreResult
}

// ILLMService defines the interface for recipe generation
type ILLMService interface {
	RecipeGenerator
	AdaptRecipe(ctx context.Context, recipe *model.Recipe, userIngredients []string) (*AdaptedRecipe, error)
}

// IDraftService defines the interface for draft lifecycle operations
type IDraftService interface {
	DraftSaver
	GetDraft(ctx context.Context, id, userID string) (*RecipeDraft, error)
	DeleteDraft(ctx context.Context, id, userID string) error
	PublishDraft(ctx context.Context, id string, userID uuid.UUID, recipes RecipeCreator) (*model.Recipe, error)
}

var (
	_ IAuthService   = (*AuthService)(nil)
	_ IRecipeService = (*RecipeService)(nil)
	_ IPantryService = (*PantryService)(nil)
	_ ISearchService = (*SearchService)(nil)
	_ ILLMService    = (*LLMService)(nil)
	_ IDraftService  = (*DraftStore)(nil)
)
