package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/model"
)

type stubCandidates struct {
	recipes []model.Recipe
	err     error
	filter  PoolFilter
}

func (s *stubCandidates) FetchCandidates(_ context.Context, filter PoolFilter) ([]model.Recipe, error) {
	s.filter = filter
	return s.recipes, s.err
}

type stubPantry struct {
	names []string
	err   error
}

func (s stubPantry) PantryNames(context.Context, uuid.UUID) ([]string, error) {
	return s.names, s.err
}

type stubGenerator struct {
	recipes []GeneratedRecipe
	err     error
	req     GenerateRequest
	calls   int
}

func (s *stubGenerator) Enabled() bool { return true }

func (s *stubGenerator) GenerateRecipes(_ context.Context, req GenerateRequest) ([]GeneratedRecipe, error) {
	s.calls++
	s.req = req
	return s.recipes, s.err
}

type stubDrafts struct {
	saved []*RecipeDraft
}

func (s *stubDrafts) SaveDraft(_ context.Context, d *RecipeDraft) error {
	s.saved = append(s.saved, d)
	return nil
}

var (
	garlicChickenID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	beefStewID      = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	chickenPastaID  = uuid.MustParse("00000000-0000-0000-0000-000000000003")
)

func searchPool() []model.Recipe {
	return []model.Recipe{
		{ID: garlicChickenID, Title: "Garlic chicken", Ingredients: ingredients("chicken", "garlic", "salt")},
		{ID: beefStewID, Title: "Beef stew", Ingredients: ingredients("beef", "carrot", "onion")},
		{ID: chickenPastaID, Title: "Chicken pasta", Ingredients: ingredients("chicken", "pasta", "onion")},
	}
}

func hitIDs(hits []SearchHit) []uuid.UUID {
	out := make([]uuid.UUID, len(hits))
	for i, h := range hits {
		out[i] = h.Recipe.ID
	}
	return out
}

func TestSearchService(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	t.Run("should rank the stored pool", func(t *testing.T) {
		store := &stubCandidates{recipes: searchPool()}
		svc := NewSearchService(engine, store, nil, nil, nil, zap.NewNop())

		resp, err := svc.Search(ctx, SearchRequest{Ingredients: []string{"chicken", "garlic"}, MinResults: 2})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{garlicChickenID, chickenPastaID}, hitIDs(resp.Results))
		assert.Equal(t, 100.0, resp.Results[0].Result.Score)
		assert.Equal(t, 40.0, resp.Results[1].Result.Score)
		assert.Equal(t, 2, resp.Results[1].Result.MissingCount)
		assert.Equal(t, "Chicken pasta", resp.Results[1].Recipe.Title)
		assert.True(t, resp.MinimumMet)
		assert.Equal(t, 3, resp.Considered)
		assert.Equal(t, 2, resp.Qualified)
		assert.Equal(t, engine.Config().PoolLimit, store.filter.Limit)
		assert.Equal(t, []string{"chicken", "garlic"}, store.filter.Ingredients)
	})

	t.Run("should use the default minimum", func(t *testing.T) {
		svc := NewSearchService(engine, &stubCandidates{recipes: searchPool()}, nil, nil, nil, zap.NewNop())

		resp, err := svc.Search(ctx, SearchRequest{Ingredients: []string{"chicken", "garlic"}})
		require.NoError(t, err)
		assert.Len(t, resp.Results, 2)
		assert.False(t, resp.MinimumMet)
	})

	t.Run("should merge the saved pantry for signed-in users", func(t *testing.T) {
		userID := uuid.New()
		svc := NewSearchService(engine, &stubCandidates{recipes: searchPool()},
			stubPantry{names: []string{"pasta", "onion"}}, nil, nil, zap.NewNop())

		resp, err := svc.Search(ctx, SearchRequest{UserID: &userID, Ingredients: []string{"chicken", "garlic"}, MinResults: 2})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{garlicChickenID, chickenPastaID}, hitIDs(resp.Results))
		assert.Equal(t, 100.0, resp.Results[1].Result.Score)
		assert.Zero(t, resp.Results[1].Result.MissingCount)
	})

	t.Run("should carry on when the saved pantry fails to load", func(t *testing.T) {
		userID := uuid.New()
		svc := NewSearchService(engine, &stubCandidates{recipes: searchPool()},
			stubPantry{err: errors.New("db down")}, nil, nil, zap.NewNop())

		resp, err := svc.Search(ctx, SearchRequest{UserID: &userID, Ingredients: []string{"chicken", "garlic"}, MinResults: 2})
		require.NoError(t, err)
		assert.Equal(t, 40.0, resp.Results[1].Result.Score)
	})

	t.Run("should accept a pantry-only request", func(t *testing.T) {
		svc := NewSearchService(engine, &stubCandidates{recipes: searchPool()}, nil, nil, nil, zap.NewNop())

		resp, err := svc.Search(ctx, SearchRequest{Pantry: []string{"chicken", "garlic"}, MinResults: 1})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{garlicChickenID}, hitIDs(resp.Results))
	})

	t.Run("should reject requests with nothing to match", func(t *testing.T) {
		svc := NewSearchService(engine, &stubCandidates{}, nil, nil, nil, zap.NewNop())

		_, err := svc.Search(ctx, SearchRequest{Ingredients: []string{"  ", "123"}})
		assert.ErrorIs(t, err, ErrNoIngredients)
	})

	t.Run("should map skill level to difficulties", func(t *testing.T) {
		store := &stubCandidates{}
		svc := NewSearchService(engine, store, nil, nil, nil, zap.NewNop())

		_, err := svc.Search(ctx, SearchRequest{Ingredients: []string{"rice"}, SkillLevel: "Beginner", MaxTotalTime: 30})
		require.NoError(t, err)
		assert.Equal(t, []string{model.DifficultyEasy}, store.filter.Difficulties)
		assert.Equal(t, 30, store.filter.MaxTotalTime)

		_, err = svc.Search(ctx, SearchRequest{Ingredients: []string{"rice"}, SkillLevel: "chef"})
		assert.ErrorIs(t, err, ErrInvalidSkillLevel)
	})

	t.Run("should report an unavailable pool", func(t *testing.T) {
		svc := NewSearchService(engine, &stubCandidates{err: errors.New("connection refused")}, nil, nil, nil, zap.NewNop())

		resp, err := svc.Search(ctx, SearchRequest{Ingredients: []string{"chicken"}})
		assert.ErrorIs(t, err, ErrSearchUnavailable)
		require.NotNil(t, resp)
		assert.Empty(t, resp.Results)
		assert.False(t, resp.MinimumMet)
	})

	t.Run("should never return recipes without a matched key ingredient", func(t *testing.T) {
		svc := NewSearchService(engine, &stubCandidates{recipes: searchPool()}, nil, nil, nil, zap.NewNop())

		resp, err := svc.Search(ctx, SearchRequest{Ingredients: []string{"carrot", "onion", "garlic", "salt"}})
		require.NoError(t, err)
		assert.Empty(t, resp.Results)
	})
}

func TestSearchServiceGenerateIfShort(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)
	userID := uuid.New()

	generated := []GeneratedRecipe{
		{Title: "Chicken garlic rice", Ingredients: []matching.Ingredient{{Name: "chicken"}, {Name: "garlic"}, {Name: "rice"}}},
		{Title: "Lentil soup", Ingredients: []matching.Ingredient{{Name: "lentils"}, {Name: "carrot"}}},
	}

	t.Run("should top up with generated recipes that qualify", func(t *testing.T) {
		gen := &stubGenerator{recipes: generated}
		drafts := &stubDrafts{}
		svc := NewSearchService(engine, &stubCandidates{recipes: searchPool()}, nil, gen, drafts, zap.NewNop())

		resp, err := svc.Search(ctx, SearchRequest{
			UserID:          &userID,
			Ingredients:     []string{"chicken", "garlic"},
			MinResults:      3,
			GenerateIfShort: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, gen.req.Count)
		require.Len(t, resp.Results, 3)
		assert.True(t, resp.MinimumMet)

		last := resp.Results[2]
		assert.True(t, last.Generated)
		assert.Equal(t, "Chicken garlic rice", last.Recipe.Title)
		assert.Equal(t, 54.5, last.Result.Score)
		require.Len(t, drafts.saved, 1)
		assert.Equal(t, drafts.saved[0].ID, last.DraftID)
		assert.Equal(t, userID.String(), drafts.saved[0].UserID)
	})

	t.Run("should not generate when the minimum is met", func(t *testing.T) {
		gen := &stubGenerator{recipes: generated}
		svc := NewSearchService(engine, &stubCandidates{recipes: searchPool()}, nil, gen, nil, zap.NewNop())

		_, err := svc.Search(ctx, SearchRequest{Ingredients: []string{"chicken", "garlic"}, MinResults: 1, GenerateIfShort: true})
		require.NoError(t, err)
		assert.Zero(t, gen.calls)
	})

	t.Run("should keep stored results when generation fails", func(t *testing.T) {
		gen := &stubGenerator{err: ErrGeneratorUnavailable}
		svc := NewSearchService(engine, &stubCandidates{recipes: searchPool()}, nil, gen, nil, zap.NewNop())

		resp, err := svc.Search(ctx, SearchRequest{Ingredients: []string{"chicken", "garlic"}, MinResults: 3, GenerateIfShort: true})
		require.NoError(t, err)
		assert.Len(t, resp.Results, 2)
		assert.False(t, resp.MinimumMet)
		assert.Equal(t, 1, gen.calls)
	})
}

func TestScoreOne(t *testing.T) {
	userID := uuid.New()
	svc := NewSearchService(newTestEngine(t), &stubCandidates{}, stubPantry{names: []string{"pasta"}}, nil, nil, zap.NewNop())
	recipe := searchPool()[2]

	t.Run("should score without the saved pantry", func(t *testing.T) {
		res := svc.ScoreOne(context.Background(), &recipe, SearchRequest{Ingredients: []string{"chicken"}})
		assert.Equal(t, 40.0, res.Score)
	})

	t.Run("should include the saved pantry", func(t *testing.T) {
		res := svc.ScoreOne(context.Background(), &recipe, SearchRequest{UserID: &userID, Ingredients: []string{"chicken"}})
		// chicken and pasta exact, onion missing: 20/25 plus the all-keys bonus
		assert.Equal(t, 90.0, res.Score)
		assert.Equal(t, 1, res.MissingCount)
	})
}

func TestDifficultiesForSkill(t *testing.T) {
	cases := map[string][]string{
		"":             nil,
		"advanced":     nil,
		"beginner":     {model.DifficultyEasy},
		"Intermediate": {model.DifficultyEasy, model.DifficultyMedium},
	}
	for level, want := range cases {
		got, err := DifficultiesForSkill(level)
		require.NoError(t, err, level)
		assert.Equal(t, want, got, level)
	}

	_, err := DifficultiesForSkill("expert")
	assert.ErrorIs(t, err, ErrInvalidSkillLevel)
}
