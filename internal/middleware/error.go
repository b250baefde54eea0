package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/types"
)

// ErrorHandler renders the last error a handler attached with c.Error as the
// JSON error envelope. Errors that are not *types.APIError become a 500.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var apiErr *types.APIError
		if !errors.As(err, &apiErr) {
			apiErr = types.NewAPIError(http.StatusInternalServerError, types.CodeInternal, "internal server error", err)
		}

		if apiErr.Status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("code", apiErr.Code),
				zap.Error(err),
			)
		}

		c.AbortWithStatusJSON(apiErr.Status, types.ErrorResponse{Error: apiErr.Message, Code: apiErr.Code})
	}
}
