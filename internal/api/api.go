// Package api holds the HTTP handlers of the /api/v1 surface.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/middleware"
	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

// Deps is everything the handlers need
type Deps struct {
	Auth    service.IAuthService
	Recipes service.IRecipeService
	Pantry  service.IPantryService
	Search  service.ISearchService
	// LLM and Drafts are optional; the /llm routes are only mounted when
	// both are set.
	LLM    service.ILLMService
	Drafts service.IDraftService
	// GenerationLimiter guards the LLM routes; nil disables limiting.
	GenerationLimiter *middleware.RateLimiter
	// Ready reports whether backing stores are reachable.
	Ready func(ctx context.Context) error
	Log   *zap.Logger
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Deps) {
	health := HealthCheck(deps.Ready)
	router.GET("/health", health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.GET("/health", health)

	NewAuthHandler(deps.Auth).RegisterRoutes(v1)
	NewRecipeHandler(deps.Recipes, deps.Search, deps.Auth, deps.Log).RegisterRoutes(v1)
	NewPantryHandler(deps.Pantry, deps.Auth).RegisterRoutes(v1)
	if deps.LLM != nil && deps.Drafts != nil {
		NewLLMHandler(deps.LLM, deps.Drafts, deps.Recipes, deps.Auth, deps.GenerationLimiter).RegisterRoutes(v1)
	}
}

// HealthCheck returns the health status of the API
func HealthCheck(ready func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			if err := ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// fail attaches err for the error middleware, translating service errors
// into their HTTP form.
func fail(c *gin.Context, err error) {
	var apiErr *types.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, service.ErrRecipeNotFound), errors.Is(err, service.ErrDraftNotFound):
		apiErr = types.NewAPIError(http.StatusNotFound, types.CodeNotFound, err.Error(), err)
	case errors.Is(err, service.ErrUserExists):
		apiErr = types.NewAPIError(http.StatusConflict, types.CodeConflict, err.Error(), err)
	case errors.Is(err, service.ErrInvalidCredentials):
		apiErr = types.NewAPIError(http.StatusUnauthorized, types.CodeUnauthorized, err.Error(), err)
	case errors.Is(err, service.ErrNoIngredients), errors.Is(err, service.ErrEmptyRecipe),
		errors.Is(err, service.ErrInvalidSkillLevel):
		apiErr = types.BadRequest(err)
	case errors.Is(err, service.ErrGeneratorUnavailable):
		apiErr = types.NewAPIError(http.StatusServiceUnavailable, types.CodeGeneratorDown, service.ErrGeneratorUnavailable.Error(), err)
	default:
		c.Error(err)
		return
	}
	c.Error(apiErr)
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(types.BadRequest(err))
		return false
	}
	return true
}
