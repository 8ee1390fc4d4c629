package models

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error codes for JSON responses
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Common errors
var (
	ErrAnimeNotFound    = errors.New("anime not found")
	ErrEntryNotFound    = errors.New("watchlist entry not found")
	ErrEntryExists      = errors.New("anime already on watchlist")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInvalidInput     = errors.New("invalid input")
	ErrCatalogUpstream  = errors.New("catalog upstream unavailable")
	ErrStoreUnavailable = errors.New("watch record store unavailable")
)

// AppError carries an error code alongside the message so handlers can
// translate service failures into a consistent envelope.
type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"status_code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new application error
func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// HTTPStatusForError maps sentinel errors onto HTTP status codes.
// Anything unrecognized is a 500.
func HTTPStatusForError(err error) int {
	switch {
	case errors.Is(err, ErrAnimeNotFound), errors.Is(err, ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrEntryExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrCatalogUpstream), errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
