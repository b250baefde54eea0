package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/model"
)

// PoolFilter narrows the candidate pool fetched for one search
type PoolFilter struct {
	// Difficulties limits the pool to these levels; empty means any.
	Difficulties []string
	// MaxTotalTime caps prep plus cook minutes; zero means no cap.
	MaxTotalTime int
	// Ingredients orders the pool by embedding distance on Postgres.
	Ingredients []string
	Limit       int
}

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	engine *matching.Engine
	log    *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, engine *matching.Engine, log *zap.Logger) *RecipeService {
	return &RecipeService{
		db:     db,
		engine: engine,
		log:    log.Named("recipes"),
	}
}

// CreateRecipe categorizes the recipe's ingredients, embeds them and stores
// the recipe.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	prepared := make(model.IngredientList, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		ing = s.engine.PrepareIngredient(ing)
		if ing.Name == "" {
			continue
		}
		prepared = append(prepared, ing)
	}
	if len(prepared) == 0 {
		return nil, ErrEmptyRecipe
	}

	recipe.Ingredients = prepared
	recipe.Embedding = EmbedRecipe(prepared)
	if recipe.Instructions == nil {
		recipe.Instructions = model.JSONBStringArray{}
	}
	if recipe.Tags == nil {
		recipe.Tags = model.JSONBStringArray{}
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	s.log.Debug("recipe created", zap.String("id", recipe.ID.String()), zap.Int("ingredients", len(prepared)))
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// FetchCandidates loads one page of candidate recipes for scoring
func (s *RecipeService) FetchCandidates(ctx context.Context, filter PoolFilter) ([]model.Recipe, error) {
	limit := filter.Limit
	if limit <= 0 || limit > s.engine.Config().PoolLimit {
		limit = s.engine.Config().PoolLimit
	}

	query := s.db.WithContext(ctx).Model(&model.Recipe{})
	if len(filter.Difficulties) > 0 {
		query = query.Where("difficulty IN ?", filter.Difficulties)
	}
	if filter.MaxTotalTime > 0 {
		query = query.Where("prep_time_minutes + cook_time_minutes <= ?", filter.MaxTotalTime)
	}

	if s.db.Dialector.Name() == "postgres" && len(filter.Ingredients) > 0 {
		query = query.Clauses(clause.OrderBy{
			Expression: clause.Expr{
				SQL:                "embedding <-> ?",
				Vars:               []interface{}{EmbedIngredients(filter.Ingredients)},
				WithoutParentheses: true,
			},
		})
	} else {
		query = query.Order("created_at DESC").Order("id")
	}

	var recipes []model.Recipe
	if err := query.Limit(limit).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch candidate recipes: %w", err)
	}
	return recipes, nil
}
