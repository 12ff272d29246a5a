package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/selection"
	"github.com/quantmind-br/repo2txt-go/internal/session"
)

// ErrNoListing indicates an export on a session without a loaded repository
var ErrNoListing = errors.New("no repository loaded")

// statusFor maps an error to the HTTP status reported for it
func statusFor(err error) int {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrInvalidURLFormat),
		errors.Is(err, domain.ErrEmptySelection),
		errors.Is(err, selection.ErrUnknownPath),
		errors.Is(err, selection.ErrInvalidPattern):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStaleSubmission), errors.Is(err, ErrNoListing):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout
	case domain.StatusCode(err) != 0:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
