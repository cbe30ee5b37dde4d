package middleware

import (
	"errors"
	"net/http"

	"go-portfolio-forms/internal/delivery/http/response"
	"go-portfolio-forms/pkg/apperror"
	"go-portfolio-forms/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString(RequestIDKey)

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Errorw("request failed",
					"request_id", requestID,
					"kind", appErr.Kind,
					"status", appErr.Code,
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, response.ErrorBody{
				Kind: string(appErr.Kind),
				Form: appErr.Details,
			})
			return
		}

		// Never expose internal error details to clients; the cause is logged.
		logger.Log.Errorw("unhandled error", "request_id", requestID, "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
