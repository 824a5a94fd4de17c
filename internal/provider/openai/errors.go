package openai

import (
	"errors"

	"github.com/openai/openai-go"

	"github.com/spetersoncode/goalagent/internal/provider/apierr"
)

// wrapError categorizes an SDK error by status code and Retry-After.
// Errors without a status (network failures) are returned unchanged and
// left to the retry heuristics.
func wrapError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	return apierr.Wrap(err, apiErr.StatusCode, apierr.RetryAfter(apiErr.Response))
}
