package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantrymatch/backend/internal/model"
	"github.com/pageza/pantrymatch/backend/internal/service"
)

// MockLLMService is a mock implementation of the recipe generator
type MockLLMService struct {
	mock.Mock
}

func (m *MockLLMService) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockLLMService) GenerateRecipes(ctx context.Context, req service.GenerateRequest) ([]service.GeneratedRecipe, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.GeneratedRecipe), args.Error(1)
}

func (m *MockLLMService) AdaptRecipe(ctx context.Context, recipe *model.Recipe, userIngredients []string) (*service.AdaptedRecipe, error) {
	args := m.Called(ctx, recipe, userIngredients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdaptedRecipe), args.Error(1)
}

// MockDraftService is a mock implementation of the draft store
type MockDraftService struct {
	mock.Mock
}

// SaveDraft assigns an ID the way the real store does when none is set
func (m *MockDraftService) SaveDraft(ctx context.Context, draft *service.RecipeDraft) error {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	return m.Called(ctx, draft).Error(0)
}

func (m *MockDraftService) GetDraft(ctx context.Context, id, userID string) (*service.RecipeDraft, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecipeDraft), args.Error(1)
}

func (m *MockDraftService) DeleteDraft(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockDraftService) PublishDraft(ctx context.Context, id string, userID uuid.UUID, recipes service.RecipeCreator) (*model.Recipe, error) {
	args := m.Called(ctx, id, userID, recipes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}
