package google

import (
	"errors"

	"google.golang.org/genai"

	"github.com/spetersoncode/goalagent/internal/provider/apierr"
)

// wrapError categorizes a genai error by status code. genai.APIError does
// not expose response headers, so no Retry-After hint is available.
func wrapError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	return apierr.Wrap(err, apiErr.Code, 0)
}
