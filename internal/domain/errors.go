package domain

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Sentinel errors
var (
	// ErrInvalidURLFormat indicates the input is not a repository URL
	ErrInvalidURLFormat = errors.New("invalid repository URL format")

	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the hosting API quota is exhausted
	ErrRateLimited = errors.New("rate limited")

	// ErrUnauthorized indicates the credential was missing or rejected
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTimeout indicates a timeout occurred
	ErrTimeout = errors.New("timeout")

	// ErrTreeTruncated is the non-fatal warning for a capped tree listing
	ErrTreeTruncated = errors.New("repository tree is truncated; the file list may be incomplete")

	// ErrUnresolvedRoot indicates no content address could be found for a ref/path
	ErrUnresolvedRoot = errors.New("could not resolve a tree for the requested ref and path")

	// ErrEmptySelection indicates an export was requested with no files
	ErrEmptySelection = errors.New("no files selected")

	// ErrArchiveUnavailable indicates the archive compressor is not available
	ErrArchiveUnavailable = errors.New("archive compression is unavailable")

	// ErrDuplicateEntry indicates two archive entries share a path
	ErrDuplicateEntry = errors.New("duplicate archive entry")

	// ErrStaleSubmission indicates a result arrived after a newer submission
	ErrStaleSubmission = errors.New("submission superseded by a newer one")
)

// HTTPFetchError is a non-success response from the hosting API
type HTTPFetchError struct {
	StatusCode int
	// Context describes the operation that was being attempted
	Context        string
	Message        string
	RateLimitReset time.Time
	ScopeHint      string
	Err            error
}

func (e *HTTPFetchError) Error() string {
	switch {
	case e.IsRateLimit():
		return fmt.Sprintf("GitHub API rate limit exceeded. Please try again after %s or provide a valid access token.",
			e.RateLimitReset.Local().Format("15:04:05 MST"))
	case e.StatusCode == http.StatusNotFound:
		return fmt.Sprintf("Resource not found during %s. Please check that the URL, branch/tag, and path are correct and accessible.", e.Context)
	case e.StatusCode == http.StatusUnauthorized:
		hint := e.ScopeHint
		if hint == "" {
			hint = "repo"
		}
		return fmt.Sprintf("Authentication failed during %s. Please provide a valid access token with '%s' scope for private repositories.", e.Context, hint)
	}
	msg := fmt.Sprintf("Error during %s. Status: %d.", e.Context, e.StatusCode)
	if e.Message != "" {
		msg += " Message: " + e.Message
	}
	return msg
}

func (e *HTTPFetchError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	switch {
	case e.IsRateLimit():
		return ErrRateLimited
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	}
	return nil
}

// IsRateLimit reports whether the response was a quota rejection
func (e *HTTPFetchError) IsRateLimit() bool {
	return !e.RateLimitReset.IsZero() &&
		(e.StatusCode == http.StatusForbidden || e.StatusCode == http.StatusTooManyRequests)
}

// NewHTTPFetchError creates a new HTTPFetchError
func NewHTTPFetchError(statusCode int, context, message string) *HTTPFetchError {
	return &HTTPFetchError{
		StatusCode: statusCode,
		Context:    context,
		Message:    message,
	}
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var fetchErr *HTTPFetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.StatusCode
	}
	return 0
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var fetchErr *HTTPFetchError
	if errors.As(err, &fetchErr) {
		if fetchErr.IsRateLimit() {
			return false
		}
		switch fetchErr.StatusCode {
		case 429, 503, 502, 504:
			return true
		}
		if fetchErr.StatusCode >= 520 && fetchErr.StatusCode <= 530 {
			return true
		}
		return false
	}

	return errors.Is(err, ErrTimeout)
}

// ReferenceListingError reports that branches and tags could not be listed.
// Resolution degrades to a path-only interpretation when it occurs.
type ReferenceListingError struct {
	Repository string
	Err        error
}

func (e *ReferenceListingError) Error() string {
	return fmt.Sprintf("could not fetch references for %s, treating the fragment as a path: %v", e.Repository, e.Err)
}

func (e *ReferenceListingError) Unwrap() error {
	return e.Err
}

// PerFileFetchError is the failure of one selected file
type PerFileFetchError struct {
	Path string
	Err  error
}

func (e *PerFileFetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Path, e.Err)
}

func (e *PerFileFetchError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
