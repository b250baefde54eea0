package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrymatch/backend/internal/middleware"
	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

type PantryHandler struct {
	pantry      service.IPantryService
	authService middleware.TokenValidator
}

func NewPantryHandler(pantry service.IPantryService, authService middleware.TokenValidator) *PantryHandler {
	return &PantryHandler{pantry: pantry, authService: authService}
}

func (h *PantryHandler) RegisterRoutes(router *gin.RouterGroup) {
	pantry := router.Group("/pantry", middleware.AuthMiddleware(h.authService))
	{
		pantry.GET("", h.GetPantry)
		pantry.PUT("", h.ReplacePantry)
	}
}

func (h *PantryHandler) GetPantry(c *gin.Context) {
	items, err := h.pantry.GetPantry(c.Request.Context(), *middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, types.PantryResponse{Items: items})
}

func (h *PantryHandler) ReplacePantry(c *gin.Context) {
	var req types.PantryRequest
	if !bindJSON(c, &req) {
		return
	}

	items, err := h.pantry.ReplacePantry(c.Request.Context(), *middleware.UserID(c), req.Items)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, types.PantryResponse{Items: items})
}
