package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/tasktag-api/internal/domain"
	"github.com/phrazzld/tasktag-api/internal/enrichment"
	"github.com/phrazzld/tasktag-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// ErrTimeout is also an ErrEnrichment, so it must be checked first.
	case errors.Is(err, enrichment.ErrTimeout):
		return http.StatusGatewayTimeout

	case errors.Is(err, enrichment.ErrEnrichment):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrEmptyContent):
		return "Task title or description is required"
	case errors.Is(err, domain.ErrMissingTags):
		return "Tags are required for status-only updates"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid task id"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	case errors.Is(err, store.ErrNotFound):
		return "Task not found"

	case errors.Is(err, enrichment.ErrTimeout):
		return "Tag generation timed out"
	case errors.Is(err, enrichment.ErrContentBlocked):
		return "Tag generation was refused for this content"
	case errors.Is(err, enrichment.ErrEnrichment):
		return "Tag generation failed"

	case errors.Is(err, store.ErrStorage):
		return "Task storage is unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a short message that
// names the offending JSON field without echoing struct internals.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return fmt.Sprintf("Field '%s' is required", fe.Field())
		}
		return fmt.Sprintf("Field '%s' is invalid", fe.Field())
	}
	return "Validation error"
}
