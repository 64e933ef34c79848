package utils

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/errors"
)

// ErrorResponse is the error envelope rendered for every failed request.
type ErrorResponse struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

// timestampLayout is ISO-8601 at second precision.
const timestampLayout = "2006-01-02T15:04:05"

// NewErrorResponse builds the envelope for an AppError on the given path.
func NewErrorResponse(appErr *errors.AppError, path string) ErrorResponse {
	return ErrorResponse{
		Status:    appErr.StatusCode,
		Error:     appErr.Code,
		Message:   appErr.Message,
		Path:      path,
		Timestamp: time.Now().Format(timestampLayout),
	}
}

// SendError renders err as the error envelope. Unknown error types become a
// generic 500 so internal details never leak into the response body.
func SendError(c *fiber.Ctx, err error) error {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.ErrInternalServer
	}

	return c.Status(appErr.StatusCode).JSON(NewErrorResponse(appErr, c.Path()))
}

// SendNotFound renders a plain 404 envelope for unmatched routes.
func SendNotFound(c *fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(ErrorResponse{
		Status:    http.StatusNotFound,
		Error:     "NOT_FOUND",
		Message:   "The requested resource does not exist",
		Path:      c.Path(),
		Timestamp: time.Now().Format(timestampLayout),
	})
}
