package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dine/backend/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	case errors.Is(err, domain.ErrTutorialNotFound):
		return http.StatusNotFound, "TUTORIAL_NOT_FOUND", message
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusNotFound, "TUTORIAL_NOT_FOUND", message

	case errors.Is(err, domain.ErrEmptyContent):
		return http.StatusBadRequest, "EMPTY_CONTENT", "Content can not be empty!"
	case errors.Is(err, domain.ErrEmptyUpdate):
		return http.StatusBadRequest, "EMPTY_CONTENT", "Data to update can not be empty!"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
