package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	gogithub "github.com/google/go-github/v75/github"
	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/fetcher"
)

const (
	headerRateRemaining  = "X-RateLimit-Remaining"
	headerRateReset      = "X-RateLimit-Reset"
	headerAcceptedScopes = "X-Accepted-OAuth-Scopes"
)

// mapError converts a go-github error into a domain error. op names the
// operation for the user-facing message.
func mapError(err error, resp *gogithub.Response, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, domain.ErrTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var rateErr *gogithub.RateLimitError
	if errors.As(err, &rateErr) {
		fe := &domain.HTTPFetchError{
			StatusCode:     http.StatusForbidden,
			Context:        op,
			Message:        rateErr.Message,
			RateLimitReset: rateErr.Rate.Reset.Time,
		}
		if rateErr.Response != nil {
			fe.StatusCode = rateErr.Response.StatusCode
		}
		return fe
	}

	var abuseErr *gogithub.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		fe := &domain.HTTPFetchError{
			StatusCode: http.StatusForbidden,
			Context:    op,
			Message:    abuseErr.Message,
		}
		if abuseErr.Response != nil {
			fe.StatusCode = abuseErr.Response.StatusCode
			fe.RateLimitReset = time.Now().Add(fetcher.ParseRetryAfter(abuseErr.Response.Header.Get("Retry-After")))
		}
		if abuseErr.RetryAfter != nil {
			fe.RateLimitReset = time.Now().Add(*abuseErr.RetryAfter)
		}
		return fe
	}

	var respErr *gogithub.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		fe := domain.NewHTTPFetchError(respErr.Response.StatusCode, op, respErr.Message)
		fe.ScopeHint = respErr.Response.Header.Get(headerAcceptedScopes)
		if fe.StatusCode == http.StatusForbidden || fe.StatusCode == http.StatusTooManyRequests {
			fe.RateLimitReset = rateLimitReset(respErr.Response.Header)
		}
		return fe
	}

	if resp != nil && resp.Response != nil && resp.StatusCode >= http.StatusBadRequest {
		return &domain.HTTPFetchError{StatusCode: resp.StatusCode, Context: op, Err: err}
	}

	return fmt.Errorf("error during %s: %w", op, err)
}

// rateLimitReset returns the quota reset time when the response reports a
// zero remaining quota
func rateLimitReset(h http.Header) time.Time {
	if h.Get(headerRateRemaining) != "0" {
		return time.Time{}
	}
	secs, err := strconv.ParseInt(h.Get(headerRateReset), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}
