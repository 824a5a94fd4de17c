package tool

import "fmt"

// ErrToolNotFound is returned when a tool call references an unregistered tool.
type ErrToolNotFound struct {
	Name string
}

// Error returns a formatted error message including the tool name.
func (e *ErrToolNotFound) Error() string {
	return fmt.Sprintf("tool: not found: %s", e.Name)
}

// ErrToolExecution wraps errors raised by a tool's callable.
type ErrToolExecution struct {
	Name string
	Err  error
}

// Error returns a formatted error message including the tool name and cause.
func (e *ErrToolExecution) Error() string {
	return fmt.Sprintf("tool: %s execution failed: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ErrToolExecution) Unwrap() error {
	return e.Err
}

// ErrToolAlreadyRegistered is returned when registering a tool with a duplicate name.
type ErrToolAlreadyRegistered struct {
	Name string
}

// Error returns a formatted error message including the duplicate tool name.
func (e *ErrToolAlreadyRegistered) Error() string {
	return fmt.Sprintf("tool: already registered: %s", e.Name)
}

// ErrInvalidDefinition is returned when a Definition cannot be registered.
type ErrInvalidDefinition struct {
	Name   string
	Reason string
}

// Error returns a formatted error message including the reason.
func (e *ErrInvalidDefinition) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("tool: invalid definition: %s", e.Reason)
	}
	return fmt.Sprintf("tool: invalid definition %s: %s", e.Name, e.Reason)
}

// ErrArgumentValidation is returned when a call's arguments do not satisfy
// the tool's parameter schema. The tool is never invoked in that case.
type ErrArgumentValidation struct {
	Tool   string
	Param  string
	Reason string
}

// Error returns a formatted error message naming the tool and parameter.
func (e *ErrArgumentValidation) Error() string {
	switch {
	case e.Tool == "" && e.Param == "":
		return fmt.Sprintf("tool: invalid arguments: %s", e.Reason)
	case e.Param == "":
		return fmt.Sprintf("tool: %s: invalid arguments: %s", e.Tool, e.Reason)
	case e.Tool == "":
		return fmt.Sprintf("tool: invalid argument %q: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("tool: %s: invalid argument %q: %s", e.Tool, e.Param, e.Reason)
}
