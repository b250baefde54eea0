package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/pantrymatch/backend/internal/types"
)

const (
	userIDKey     = "user_id"
	skillLevelKey = "skill_level"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that validates JWT tokens
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		claims, msg := parseBearer(validator, authHeader)
		if claims == nil {
			unauthorized(c, msg)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and lets anonymous requests through. A malformed or invalid token is still
// rejected.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		claims, msg := parseBearer(validator, authHeader)
		if claims == nil {
			unauthorized(c, msg)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// UserID returns the authenticated user's ID, or nil for anonymous requests
func UserID(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(userIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// SkillLevel returns the skill level carried by the caller's token
func SkillLevel(c *gin.Context) string {
	return c.GetString(skillLevelKey)
}

func parseBearer(validator TokenValidator, header string) (*types.TokenClaims, string) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "invalid authorization header format"
	}

	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		return nil, "invalid or expired token"
	}
	return claims, ""
}

func setClaims(c *gin.Context, claims *types.TokenClaims) {
	c.Set(userIDKey, claims.UserID)
	c.Set(skillLevelKey, claims.SkillLevel)
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: msg, Code: types.CodeUnauthorized})
}
