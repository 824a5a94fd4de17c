package tool

import "context"

// Func is the callable behind a tool. It receives arguments that have
// already been validated against the tool's Definition and returns a typed
// value, which the registry renders for the transcript.
type Func func(ctx context.Context, args Args) (any, error)
