package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/middleware"
	"github.com/pageza/pantrymatch/backend/internal/model"
	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

type RecipeHandler struct {
	recipes     service.IRecipeService
	search      service.ISearchService
	authService middleware.TokenValidator
	log         *zap.Logger
}

func NewRecipeHandler(recipes service.IRecipeService, search service.ISearchService, authService middleware.TokenValidator, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		search:      search,
		authService: authService,
		log:         log,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/search", middleware.OptionalAuth(h.authService), h.SearchRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.authService), h.CreateRecipe)
		recipes.POST("/:id/score", middleware.OptionalAuth(h.authService), h.ScoreRecipe)
	}
}

// SearchRecipes ranks stored recipes against the caller's ingredients
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	var req types.SearchRequest
	if !bindJSON(c, &req) {
		return
	}

	skill := req.SkillLevel
	if skill == "" {
		skill = middleware.SkillLevel(c)
	}

	resp, err := h.search.Search(c.Request.Context(), service.SearchRequest{
		UserID:          middleware.UserID(c),
		Ingredients:     req.Ingredients,
		Pantry:          req.Pantry,
		MinResults:      req.MinResults,
		MaxTotalTime:    req.MaxTotalTime,
		SkillLevel:      skill,
		MealType:        req.MealType,
		Dietary:         req.Dietary,
		GenerateIfShort: req.GenerateIfShort,
	})
	if errors.Is(err, service.ErrSearchUnavailable) {
		c.JSON(http.StatusServiceUnavailable, types.SearchResponse{
			Recipes:     []types.RecipeMatch{},
			MinimumMet:  false,
			Unavailable: true,
			Code:        types.CodeSearchUnavailable,
		})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	out := types.SearchResponse{
		Recipes:    make([]types.RecipeMatch, 0, len(resp.Results)),
		MinimumMet: resp.MinimumMet,
		Considered: resp.Considered,
		Qualified:  resp.Qualified,
	}
	for _, hit := range resp.Results {
		m := types.NewRecipeMatch(hit.Recipe, hit.Result)
		m.Generated = hit.Generated
		m.DraftID = hit.DraftID
		out.Recipes = append(out.Recipes, m)
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), &model.Recipe{
		Title:           req.Title,
		Description:     req.Description,
		Ingredients:     model.IngredientList(req.Ingredients),
		Instructions:    model.JSONBStringArray(req.Instructions),
		Difficulty:      difficulty,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Calories:        req.Calories,
		Tags:            model.JSONBStringArray(req.Tags),
		SourceURL:       req.SourceURL,
		AuthorID:        middleware.UserID(c),
	})
	if err != nil {
		fail(c, err)
		return
	}

	h.log.Info("recipe created", zap.String("id", recipe.ID.String()), zap.String("title", recipe.Title))
	c.JSON(http.StatusCreated, recipe)
}

// ScoreRecipe scores one stored recipe without filtering it
func (h *RecipeHandler) ScoreRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var req types.ScoreRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	res := h.search.ScoreOne(c.Request.Context(), recipe, service.SearchRequest{
		UserID:      middleware.UserID(c),
		Ingredients: req.Ingredients,
		Pantry:      req.Pantry,
	})
	c.JSON(http.StatusOK, types.NewRecipeMatch(*recipe, res))
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(types.NewAPIError(http.StatusBadRequest, types.CodeInvalidRequest, "invalid recipe ID", err))
		return uuid.Nil, false
	}
	return id, true
}
