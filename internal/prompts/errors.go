package prompts

import (
	"errors"
	"net/http"
)

// Domain errors for prompt operations.
var (
	ErrNotFound          = errors.New("prompt not found")
	ErrNoPrompts         = errors.New("no prompts available")
	ErrValidation        = errors.New("invalid request")
	ErrInvalidSortColumn = errors.New("invalid sort column")
	ErrReadOnly          = errors.New("prompt is read-only")
	ErrForbidden         = errors.New("invalid or missing modification code")
	ErrCodeConflict      = errors.New("modification code already in use")
	ErrExhaustedRetries  = errors.New("could not generate a unique modification code")
)

// MapHTTPStatus maps prompt domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoPrompts):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidSortColumn):
		return http.StatusBadRequest
	case errors.Is(err, ErrReadOnly), errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
