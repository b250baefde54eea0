package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/metrics"
	"github.com/pageza/pantrymatch/backend/internal/model"
)

// CandidateStore loads the recipe pool for a search
type CandidateStore interface {
	FetchCandidates(ctx context.Context, filter PoolFilter) ([]model.Recipe, error)
}

// PantryStore loads a user's saved pantry
type PantryStore interface {
	PantryNames(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// RecipeGenerator produces new recipes when the stored pool falls short
type RecipeGenerator interface {
	Enabled() bool
	GenerateRecipes(ctx context.Context, req GenerateRequest) ([]GeneratedRecipe, error)
}

// DraftSaver keeps generated recipes so they can be published later
type DraftSaver interface {
	SaveDraft(ctx context.Context, draft *RecipeDraft) error
}

// SearchRequest is one "what can I cook" query
type SearchRequest struct {
	UserID          *uuid.UUID
	Ingredients     []string
	Pantry          []string
	MinResults      int
	MaxTotalTime    int
	SkillLevel      string
	MealType        string
	Dietary         []string
	GenerateIfShort bool
}

// SearchHit is one ranked recipe
type SearchHit struct {
	Recipe    model.Recipe
	Result    matching.ScoreResult
	Generated bool
	DraftID   string
}

// SearchResponse is the ranked result of a search
type SearchResponse struct {
	Results    []SearchHit
	MinimumMet bool
	Considered int
	Qualified  int
}

// SearchService runs searches end to end: pool fetch, scoring, ranking and
// the optional generation top-up.
type SearchService struct {
	engine    *matching.Engine
	recipes   CandidateStore
	pantry    PantryStore
	generator RecipeGenerator
	drafts    DraftSaver
	log       *zap.Logger
}

// NewSearchService wires a search service. generator and drafts may be nil.
func NewSearchService(engine *matching.Engine, recipes CandidateStore, pantry PantryStore, generator RecipeGenerator, drafts DraftSaver, log *zap.Logger) *SearchService {
	return &SearchService{
		engine:    engine,
		recipes:   recipes,
		pantry:    pantry,
		generator: generator,
		drafts:    drafts,
		log:       log.Named("search"),
	}
}

// DifficultiesForSkill maps a skill level to the recipe difficulties it may
// see. Advanced and empty mean no restriction.
func DifficultiesForSkill(level string) ([]string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", model.SkillAdvanced:
		return nil, nil
	case model.SkillBeginner:
		return []string{model.DifficultyEasy}, nil
	case model.SkillIntermediate:
		return []string{model.DifficultyEasy, model.DifficultyMedium}, nil
	default:
		return nil, ErrInvalidSkillLevel
	}
}

// Search ranks stored recipes against the request's ingredients. A failed
// pool fetch returns an empty response with ErrSearchUnavailable.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	start := time.Now()

	difficulties, err := DifficultiesForSkill(req.SkillLevel)
	if err != nil {
		metrics.RecordSearch("invalid", time.Since(start), 0, 0, false)
		return nil, err
	}

	pantry := s.mergePantry(ctx, req)

	if matching.NewPool(append(append([]string{}, req.Ingredients...), pantry...)...).Len() == 0 {
		metrics.RecordSearch("invalid", time.Since(start), 0, 0, false)
		return nil, ErrNoIngredients
	}

	minResults := req.MinResults
	if minResults <= 0 {
		minResults = s.engine.Config().DefaultMinResults
	}

	candidates, err := s.recipes.FetchCandidates(ctx, PoolFilter{
		Difficulties: difficulties,
		MaxTotalTime: req.MaxTotalTime,
		Ingredients:  req.Ingredients,
		Limit:        s.engine.Config().PoolLimit,
	})
	if err != nil {
		metrics.PoolFetchErrors.Inc()
		metrics.RecordSearch("unavailable", time.Since(start), 0, 0, false)
		s.log.Error("candidate pool fetch failed", zap.Error(err))
		return &SearchResponse{Results: []SearchHit{}}, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}

	byID := make(map[string]model.Recipe, len(candidates))
	pool := make([]matching.Recipe, len(candidates))
	for i := range candidates {
		pool[i] = candidates[i].ToMatching()
		byID[pool[i].ID] = candidates[i]
	}

	found := s.engine.Search(pool, req.Ingredients, pantry, minResults)
	resp := &SearchResponse{
		Results:    make([]SearchHit, 0, len(found.Results)),
		MinimumMet: found.MinimumMet,
		Considered: found.Considered,
		Qualified:  found.Qualified,
	}
	for _, hit := range found.Results {
		resp.Results = append(resp.Results, SearchHit{Recipe: byID[hit.Recipe.ID], Result: hit.Result})
	}

	if !resp.MinimumMet && req.GenerateIfShort {
		s.topUp(ctx, req, pantry, minResults, resp)
	}

	metrics.RecordSearch("ok", time.Since(start), found.Considered, len(resp.Results), resp.MinimumMet)
	s.log.Info("search completed",
		zap.Int("ingredients", len(req.Ingredients)),
		zap.Int("pantry", len(pantry)),
		zap.Int("considered", resp.Considered),
		zap.Int("qualified", resp.Qualified),
		zap.Int("returned", len(resp.Results)),
		zap.Bool("minimum_met", resp.MinimumMet),
		zap.Duration("took", time.Since(start)),
	)
	return resp, nil
}

// topUp asks the generator for the shortfall and appends generated recipes
// that pass the same filter. Generation failures leave resp untouched.
func (s *SearchService) topUp(ctx context.Context, req SearchRequest, pantry []string, minResults int, resp *SearchResponse) {
	if s.generator == nil || !s.generator.Enabled() {
		return
	}

	shortfall := minResults - len(resp.Results)
	generated, err := s.generator.GenerateRecipes(ctx, GenerateRequest{
		Ingredients:  append(append([]string{}, req.Ingredients...), pantry...),
		MaxTotalTime: req.MaxTotalTime,
		MealType:     req.MealType,
		SkillLevel:   req.SkillLevel,
		Dietary:      req.Dietary,
		Count:        shortfall,
	})
	if err != nil {
		s.log.Warn("recipe generation failed", zap.Error(err))
		return
	}

	byID := make(map[string]model.Recipe, len(generated))
	candidates := make([]matching.Recipe, 0, len(generated))
	for _, g := range generated {
		recipe := *g.ToModel(req.UserID)
		recipe.ID = uuid.New()
		byID[recipe.ID.String()] = recipe
		candidates = append(candidates, recipe.ToMatching())
	}

	found := s.engine.Search(candidates, req.Ingredients, pantry, shortfall)
	for _, hit := range found.Results {
		recipe := byID[hit.Recipe.ID]
		out := SearchHit{Recipe: recipe, Result: hit.Result, Generated: true}
		if s.drafts != nil && req.UserID != nil {
			gen := generatedFromModel(recipe)
			draft := &RecipeDraft{ID: recipe.ID.String(), UserID: req.UserID.String(), Recipe: gen}
			if err := s.drafts.SaveDraft(ctx, draft); err != nil {
				s.log.Warn("failed to save generated draft", zap.Error(err))
			} else {
				out.DraftID = draft.ID
			}
		}
		resp.Results = append(resp.Results, out)
	}
	resp.Considered += found.Considered
	resp.Qualified += found.Qualified
	resp.MinimumMet = len(resp.Results) >= minResults
}

func generatedFromModel(r model.Recipe) GeneratedRecipe {
	return GeneratedRecipe{
		Title:           r.Title,
		Description:     r.Description,
		Ingredients:     []matching.Ingredient(r.Ingredients),
		Instructions:    []string(r.Instructions),
		Difficulty:      r.Difficulty,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		Calories:        r.Calories,
		Tags:            []string(r.Tags),
	}
}

func (s *SearchService) mergePantry(ctx context.Context, req SearchRequest) []string {
	pantry := append([]string{}, req.Pantry...)
	if req.UserID == nil || s.pantry == nil {
		return pantry
	}
	saved, err := s.pantry.PantryNames(ctx, *req.UserID)
	if err != nil {
		s.log.Warn("failed to load saved pantry, continuing without it",
			zap.String("user_id", req.UserID.String()), zap.Error(err))
		return pantry
	}
	return append(pantry, saved...)
}

// ScoreOne scores a single recipe against the request's ingredients and
// pantry. It never filters: a recipe below the threshold still gets its score.
func (s *SearchService) ScoreOne(ctx context.Context, recipe *model.Recipe, req SearchRequest) matching.ScoreResult {
	names := append(append([]string{}, req.Ingredients...), s.mergePantry(ctx, req)...)
	return s.engine.Score(recipe.ToMatching(), matching.NewPool(names...))
}
