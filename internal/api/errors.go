package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// Error codes carried in the body of every non-2xx response
const (
	CodeInvalidRequest = "invalid_request"
	CodeNotFound       = "not_found"
	CodeInternal       = "internal"
)

// APIError is the body of every non-2xx response: {"error": {...}}
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps APIError on the wire
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e APIError) Error() string {
	return e.Code + ": " + e.Message
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: APIError{Code: code, Message: message}})
}

func abortBadRequest(c *gin.Context, err error) {
	abort(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
}

// abortWithError maps store errors to a status code
func (h *Handler) abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrTaskNotFound), errors.Is(err, models.ErrExecutorNotFound):
		abort(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidStatus), errors.Is(err, models.ErrInvalidPriority):
		abortBadRequest(c, err)
	default:
		h.logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		abort(c, http.StatusInternalServerError, CodeInternal, http.StatusText(http.StatusInternalServerError))
	}
}
