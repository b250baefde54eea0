package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrymatch/backend/internal/middleware"
	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

type LLMHandler struct {
	llm         service.ILLMService
	drafts      service.IDraftService
	recipes     service.IRecipeService
	authService middleware.TokenValidator
	limiter     *middleware.RateLimiter
}

func NewLLMHandler(llm service.ILLMService, drafts service.IDraftService, recipes service.IRecipeService, authService middleware.TokenValidator, limiter *middleware.RateLimiter) *LLMHandler {
	return &LLMHandler{
		llm:         llm,
		drafts:      drafts,
		recipes:     recipes,
		authService: authService,
		limiter:     limiter,
	}
}

func (h *LLMHandler) RegisterRoutes(router *gin.RouterGroup) {
	llm := router.Group("/llm", middleware.AuthMiddleware(h.authService))

	generation := []gin.HandlerFunc{}
	if h.limiter != nil {
		generation = append(generation, h.limiter.RateLimitMiddleware())
	}
	llm.POST("/generate", append(generation, h.Generate)...)
	llm.POST("/adapt/:id", append(generation, h.Adapt)...)

	drafts := llm.Group("/drafts")
	{
		drafts.GET("/:id", h.GetDraft)
		drafts.DELETE("/:id", h.DeleteDraft)
		drafts.POST("/:id/publish", h.PublishDraft)
	}
}

// Generate asks the generator for new recipes and keeps each one as a draft
func (h *LLMHandler) Generate(c *gin.Context) {
	var req types.GenerateRequest
	if !bindJSON(c, &req) {
		return
	}
	userID := middleware.UserID(c)

	skill := req.SkillLevel
	if skill == "" {
		skill = middleware.SkillLevel(c)
	}

	generated, err := h.llm.GenerateRecipes(c.Request.Context(), service.GenerateRequest{
		Ingredients:  req.Ingredients,
		MaxTotalTime: req.MaxTotalTime,
		MealType:     req.MealType,
		SkillLevel:   skill,
		Dietary:      req.Dietary,
		Count:        req.Count,
	})
	if err != nil {
		fail(c, err)
		return
	}

	drafts := make([]*service.RecipeDraft, 0, len(generated))
	for _, recipe := range generated {
		draft := &service.RecipeDraft{UserID: userID.String(), Recipe: recipe}
		if err := h.drafts.SaveDraft(c.Request.Context(), draft); err != nil {
			fail(c, err)
			return
		}
		drafts = append(drafts, draft)
	}
	c.JSON(http.StatusCreated, gin.H{"drafts": drafts})
}

// Adapt rewrites a stored recipe around the caller's ingredients
func (h *LLMHandler) Adapt(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var req types.AdaptRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	adapted, err := h.llm.AdaptRecipe(c.Request.Context(), recipe, req.Ingredients)
	if err != nil {
		fail(c, err)
		return
	}

	draft := &service.RecipeDraft{
		UserID:         middleware.UserID(c).String(),
		SourceRecipeID: recipe.ID.String(),
		Recipe:         adapted.Recipe,
		Substitutions:  adapted.Substitutions,
	}
	if err := h.drafts.SaveDraft(c.Request.Context(), draft); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

func (h *LLMHandler) GetDraft(c *gin.Context) {
	draft, err := h.drafts.GetDraft(c.Request.Context(), c.Param("id"), middleware.UserID(c).String())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *LLMHandler) DeleteDraft(c *gin.Context) {
	if err := h.drafts.DeleteDraft(c.Request.Context(), c.Param("id"), middleware.UserID(c).String()); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PublishDraft turns a draft into a stored recipe authored by the caller
func (h *LLMHandler) PublishDraft(c *gin.Context) {
	recipe, err := h.drafts.PublishDraft(c.Request.Context(), c.Param("id"), *middleware.UserID(c), h.recipes)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}
