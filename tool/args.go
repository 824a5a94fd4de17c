package tool

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	ai "github.com/spetersoncode/goalagent"
)

// Args is a validated argument record. Every declared parameter is present,
// either as supplied by the caller or from its default.
type Args struct {
	values   map[string]any
	supplied map[string]bool
}

// Value returns the raw value of a parameter.
func (a Args) Value(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Supplied reports whether the caller supplied name rather than it being
// filled in from a default.
func (a Args) Supplied(name string) bool {
	return a.supplied[name]
}

// String returns a string parameter, or "" when absent.
func (a Args) String(name string) string {
	s, _ := a.values[name].(string)
	return s
}

// Int returns an integer parameter, or 0 when absent.
func (a Args) Int(name string) int64 {
	n, _ := a.values[name].(int64)
	return n
}

// Bool returns a boolean parameter, or false when absent.
func (a Args) Bool(name string) bool {
	b, _ := a.values[name].(bool)
	return b
}

// Object returns an object parameter, or nil when absent.
func (a Args) Object(name string) map[string]any {
	m, _ := a.values[name].(map[string]any)
	return m
}

// Array returns an array parameter, or nil when absent.
func (a Args) Array(name string) []any {
	s, _ := a.values[name].([]any)
	return s
}

// Map returns a copy of all parameter values, defaults included.
func (a Args) Map() map[string]any {
	out := make(map[string]any, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}

// NewArgs builds an Args from already-validated values. It is intended for
// tests of tool functions; dispatch goes through Registry.Dispatch.
func NewArgs(values map[string]any) Args {
	a := Args{values: make(map[string]any, len(values)), supplied: make(map[string]bool, len(values))}
	for k, v := range values {
		a.values[k] = v
		a.supplied[k] = true
	}
	return a
}

// DecodeArguments strictly decodes a tool-call argument payload.
// The payload must be a single JSON object; an empty payload is treated as
// {}. Integral numbers decode to int64 and all other numbers to float64.
func DecodeArguments(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ErrArgumentValidation{Reason: "arguments are not valid JSON: " + err.Error()}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ErrArgumentValidation{Reason: "arguments contain trailing data after the JSON object"}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ErrArgumentValidation{Reason: "arguments must be a JSON object, got " + jsonTypeOf(v)}
	}
	return normalizeNumbers(obj).(map[string]any), nil
}

// DecodeCall decodes the arguments of a tool call, attributing any
// validation error to the called tool.
func DecodeCall(call ai.ToolCall) (map[string]any, error) {
	raw, err := DecodeArguments(call.Arguments)
	if err != nil {
		var ve *ErrArgumentValidation
		if errors.As(err, &ve) {
			ve.Tool = call.Name
		}
		return nil, err
	}
	return raw, nil
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	}
	return v
}

// bind validates raw against def. It never calls the tool.
func bind(def Definition, raw map[string]any) (Args, error) {
	for key := range raw {
		if _, ok := def.Param(key); !ok {
			return Args{}, &ErrArgumentValidation{Tool: def.Name, Param: key, Reason: "unknown parameter"}
		}
	}

	args := Args{
		values:   make(map[string]any, len(def.Params)),
		supplied: make(map[string]bool, len(raw)),
	}
	for _, p := range def.Params {
		v, present := raw[p.Name]
		if !present || v == nil {
			if p.Required() {
				return Args{}, &ErrArgumentValidation{Tool: def.Name, Param: p.Name, Reason: "missing required parameter"}
			}
			args.values[p.Name] = p.defaultValue
			continue
		}

		cv, err := conform(p.Type, v, p.CoerceNumericString)
		if err != nil {
			return Args{}, &ErrArgumentValidation{Tool: def.Name, Param: p.Name, Reason: err.Error()}
		}
		args.values[p.Name] = cv
		args.supplied[p.Name] = true
	}
	return args, nil
}

func parseIntString(s string) (int64, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return i, err == nil
}

// Render produces the transcript form of a tool's return value.
// Strings pass through unchanged; everything else is JSON encoded.
func Render(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case json.RawMessage:
		return string(t)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimRight(buf.String(), "\n")
}
