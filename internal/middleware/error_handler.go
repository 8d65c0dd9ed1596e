package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "chat_relay/pkg/errors"
	"chat_relay/pkg/logger"
)

// ErrorHandler renders the last error pushed with c.Error as the
// {"status":"error"} body, unless the handler already wrote a response.
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last()
		apiErr := apperrors.NewAPIError(err.Err)
		if apiErr.Code >= http.StatusInternalServerError {
			log.Error("Request failed", "error", err.Err, "path", c.Request.URL.Path)
		}

		c.JSON(apiErr.Code, apiErr)
	}
}
