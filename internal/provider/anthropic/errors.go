package anthropic

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/spetersoncode/goalagent/internal/provider/apierr"
)

// wrapError categorizes an SDK error by status code and Retry-After.
func wrapError(err error) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	return apierr.Wrap(err, apiErr.StatusCode, apierr.RetryAfter(apiErr.Response))
}
