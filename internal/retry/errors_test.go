package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"

	"google.golang.org/genai"

	ai "github.com/spetersoncode/goalagent"
	"github.com/stretchr/testify/assert"
)

type statusError struct {
	code int
}

func (e *statusError) Error() string   { return fmt.Sprintf("status %d", e.code) }
func (e *statusError) StatusCode() int { return e.code }

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o deadline" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"categorized transient", ai.NewTransientError("x", 503, nil), true},
		{"categorized permanent", ai.NewPermanentError("x", 500, nil), false},
		{"categorized user input", ai.NewUserInputError("x", 400, nil), false},
		{"status 429", &statusError{429}, true},
		{"status 502", &statusError{502}, true},
		{"status 400", &statusError{400}, false},
		{"status 401", &statusError{401}, false},
		{"genai 503", genai.APIError{Code: 503, Message: "overloaded"}, true},
		{"genai 404", genai.APIError{Code: 404, Message: "no such model"}, false},
		{"net timeout", timeoutError{}, true},
		{"url timeout", &url.Error{Op: "Post", URL: "https://api", Err: timeoutError{}}, true},
		{"dns temporary", &net.DNSError{Err: "lookup", IsTemporary: true}, true},
		{"dns not found", &net.DNSError{Err: "no such host", IsNotFound: true}, false},
		{"connection reset", fmt.Errorf("read: %w", syscall.ECONNRESET), true},
		{"message pattern", errors.New("upstream said: Too Many Requests"), true},
		{"plain error", errors.New("invalid model"), false},
		{"context canceled", context.Canceled, false},
		{"context deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), false},
		{"wrapped categorized", fmt.Errorf("chat: %w", ai.NewTransientError("x", 429, nil)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
