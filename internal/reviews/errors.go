package reviews

import (
	"errors"
	"net/http"
)

// Domain errors for review operations.
var (
	ErrNotFound      = errors.New("listing not found")
	ErrNotPending    = errors.New("listing is not awaiting location review")
	ErrInvalidReview = errors.New("invalid review")
)

// MapHTTPStatus maps review domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrNotPending) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidReview) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
