package middleware

import (
	"errors"
	"net/http"

	"job-catalog-api/internal/delivery/http/response"
	"job-catalog-api/pkg/apperror"
	"job-catalog-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		// Never expose internal error details to clients; log them instead.
		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error("request failed",
				"request_id", c.GetString(response.RequestIDKey),
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", appErr.Code,
				"error", appErr.Err,
			)
		}

		var details interface{}
		if len(appErr.Details) > 0 {
			details = appErr.Details
		}
		response.Error(c, appErr.Code, appErr.Message, details)
	}
}
