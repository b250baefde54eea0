package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/model"
	"github.com/pageza/pantrymatch/backend/internal/service"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// FetchCandidates mocks the FetchCandidates method
func (m *MockRecipeService) FetchCandidates(ctx context.Context, filter service.PoolFilter) ([]model.Recipe, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// MockSearchService is a mock implementation of the search service
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, req service.SearchRequest) (*service.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchResponse), args.Error(1)
}

func (m *MockSearchService) ScoreOne(ctx context.Context, recipe *model.Recipe, req service.SearchRequest) matching.ScoreResult {
	args := m.Called(ctx, recipe, req)
	return args.Get(0).(matching.ScoreResult)
}

// MockPantryService is a mock implementation of the pantry service
type MockPantryService struct {
	mock.Mock
}

func (m *MockPantryService) PantryNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPantryService) GetPantry(ctx context.Context, userID uuid.UUID) ([]model.PantryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PantryItem), args.Error(1)
}

func (m *MockPantryService) ReplacePantry(ctx context.Context, userID uuid.UUID, names []string) ([]model.PantryItem, error) {
	args := m.Called(ctx, userID, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PantryItem), args.Error(1)
}
