// internal/pkg/response/response.go
package response

import (
	"errors"
	"net/http"

	xerrors "gateway-auth-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error, data ...interface{}) {
	c.Abort()

	response := Response{
		Success: false,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
	}

	if len(data) > 0 {
		response.Data = data[0]
	}

	c.JSON(code, response)
}

// FromError maps a service error to the proper HTTP status. Internal detail
// stays server-side: anything outside the sentinel taxonomy becomes a
// generic retry message.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, xerrors.ErrValidation):
		Error(c, http.StatusBadRequest, "validation failed", err)
	case errors.Is(err, xerrors.ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, "login failed", xerrors.ErrInvalidCredentials)
	case errors.Is(err, xerrors.ErrUnauthorized), errors.Is(err, xerrors.ErrTokenExpired):
		Error(c, http.StatusUnauthorized, "authentication required", xerrors.ErrUnauthorized)
	case errors.Is(err, xerrors.ErrForbidden):
		Error(c, http.StatusForbidden, "insufficient permissions", xerrors.ErrForbidden)
	case errors.Is(err, xerrors.ErrNotFound):
		Error(c, http.StatusNotFound, "not found", xerrors.ErrNotFound)
	case errors.Is(err, xerrors.ErrConflict):
		Error(c, http.StatusConflict, "conflict", xerrors.ErrConflict)
	case errors.Is(err, xerrors.ErrRateLimited):
		Error(c, http.StatusTooManyRequests, "too many attempts, please try again later", xerrors.ErrRateLimited)
	default:
		Error(c, http.StatusInternalServerError, "something went wrong, please try again", nil)
	}
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}
