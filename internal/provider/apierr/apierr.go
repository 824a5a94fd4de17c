// Package apierr turns backend HTTP failures into categorized goalagent errors.
package apierr

import (
	"net/http"
	"strconv"
	"time"

	ai "github.com/spetersoncode/goalagent"
)

// Categorize maps an HTTP status code to an error category.
func Categorize(code int) ai.ErrorCategory {
	switch {
	case code == http.StatusTooManyRequests:
		return ai.ErrorTransient
	case code >= 500 && code < 600:
		return ai.ErrorTransient
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ai.ErrorPermanent
	case code == http.StatusBadRequest || code == http.StatusNotFound || code == http.StatusUnprocessableEntity:
		return ai.ErrorUserInput
	default:
		return ai.ErrorPermanent
	}
}

// RetryAfter parses the Retry-After header of resp, in seconds or as an
// HTTP date. It returns 0 when absent or unparsable.
func RetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}
	return 0
}

// Wrap categorizes err by its status code. A Retry-After hint always makes
// the error transient.
func Wrap(err error, code int, retryAfter time.Duration) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	if retryAfter > 0 {
		return ai.NewTransientErrorWithRetry(msg, code, retryAfter, err)
	}

	switch Categorize(code) {
	case ai.ErrorTransient:
		return ai.NewTransientError(msg, code, err)
	case ai.ErrorUserInput:
		return ai.NewUserInputError(msg, code, err)
	default:
		return ai.NewPermanentError(msg, code, err)
	}
}
