package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrymatch/backend/internal/model"
	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.SkillLevel)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResponse(user, token))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse(user, token))
}

func authResponse(user *model.User, token string) types.AuthResponse {
	return types.AuthResponse{
		Token: token,
		User: types.UserResponse{
			ID:         user.ID,
			Name:       user.Name,
			Email:      user.Email,
			SkillLevel: user.SkillLevel,
		},
	}
}
