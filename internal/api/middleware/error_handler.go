package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	apierrors "github.com/samratjha96/bakbak-sub001/internal/api/errors"
)

// ErrorHandler recovers panics and turns them into structured API error
// responses. Panicking with an *apierrors.APIError keeps its kind and
// message; anything else is logged and reported as a generic internal error.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString("request_id")

		var apiErr *apierrors.APIError

		switch err := recovered.(type) {
		case *apierrors.APIError:
			apiErr = err
			apiErr.RequestID = requestID
		case error:
			logger.Error("Internal server error",
				"error", err.Error(),
				"request_id", requestID,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)

			apiErr = &apierrors.APIError{
				Kind:      apierrors.KindInternal,
				Message:   "Internal server error",
				RequestID: requestID,
			}
		default:
			logger.Error("Unknown panic occurred",
				"recovered", recovered,
				"request_id", requestID,
			)

			apiErr = &apierrors.APIError{
				Kind:      apierrors.KindInternal,
				Message:   "Internal server error",
				RequestID: requestID,
			}
		}

		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError writes err as a structured response. Domain errors are mapped
// to their API kinds first.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := apierrors.FromDomain(err)
	apiErr.RequestID = c.GetString("request_id")

	// Attach the original error so the request log line carries it even when
	// the response body does not.
	_ = c.Error(err)

	c.Header("Content-Type", "application/json")
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
