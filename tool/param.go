package tool

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	ai "github.com/spetersoncode/goalagent"
)

// ParamType is the JSON type tag of a tool parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
	TypeObject  ParamType = "object"
	TypeArray   ParamType = "array"
)

// Valid reports whether t is one of the supported type tags.
func (t ParamType) Valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeBoolean, TypeObject, TypeArray:
		return true
	}
	return false
}

// Param declares one named, typed tool parameter.
// A parameter is required exactly when no default has been supplied.
type Param struct {
	Name        string
	Type        ParamType
	Description string

	// CoerceNumericString allows an integer parameter to accept a string
	// holding a base-10 integer, such as "25".
	CoerceNumericString bool

	defaultValue any
	hasDefault   bool
}

// String declares a string parameter.
func String(name, description string) Param {
	return Param{Name: name, Type: TypeString, Description: description}
}

// Integer declares an integer parameter.
func Integer(name, description string) Param {
	return Param{Name: name, Type: TypeInteger, Description: description}
}

// Boolean declares a boolean parameter.
func Boolean(name, description string) Param {
	return Param{Name: name, Type: TypeBoolean, Description: description}
}

// Object declares a JSON object parameter.
func Object(name, description string) Param {
	return Param{Name: name, Type: TypeObject, Description: description}
}

// Array declares a JSON array parameter.
func Array(name, description string) Param {
	return Param{Name: name, Type: TypeArray, Description: description}
}

// WithDefault returns a copy of p that is optional and falls back to v.
// A nil default makes the parameter optional with no value.
func (p Param) WithDefault(v any) Param {
	p.defaultValue = v
	p.hasDefault = true
	return p
}

// AllowNumericString returns a copy of p that accepts numeric strings.
func (p Param) AllowNumericString() Param {
	p.CoerceNumericString = true
	return p
}

// Required reports whether the parameter has no default.
func (p Param) Required() bool {
	return !p.hasDefault
}

// Default returns the default value and whether one was supplied.
func (p Param) Default() (any, bool) {
	return p.defaultValue, p.hasDefault
}

func (p Param) validate() error {
	if p.Name == "" {
		return fmt.Errorf("parameter name is empty")
	}
	if !p.Type.Valid() {
		return fmt.Errorf("parameter %q: unknown type %q", p.Name, p.Type)
	}
	if p.CoerceNumericString && p.Type != TypeInteger {
		return fmt.Errorf("parameter %q: numeric string coercion requires integer type", p.Name)
	}
	if p.hasDefault && p.defaultValue != nil {
		if _, err := conform(p.Type, p.defaultValue, false); err != nil {
			return fmt.Errorf("parameter %q: default %v", p.Name, err)
		}
	}
	return nil
}

// Definition is the declarative description of a tool.
// Definitions are immutable once registered.
type Definition struct {
	Name string
	// Description is offered to the model. When empty it is taken from
	// the summary line of Doc.
	Description string
	// Doc is free-form documentation; only its first non-empty line is
	// used as the description.
	Doc    string
	Params []Param
}

// SummaryLine returns the first non-empty line of doc, trimmed.
func SummaryLine(doc string) string {
	for _, line := range strings.Split(doc, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// Required returns the names of the required parameters in declaration order.
func (d Definition) Required() []string {
	var names []string
	for _, p := range d.Params {
		if p.Required() {
			names = append(names, p.Name)
		}
	}
	return names
}

// Param looks up a parameter by name.
func (d Definition) Param(name string) (Param, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Schema renders the parameter list as a JSON Schema object.
// Properties keep declaration order.
func (d Definition) Schema() json.RawMessage {
	props := orderedmap.New[string, map[string]any]()
	for _, p := range d.Params {
		prop := map[string]any{"type": string(p.Type)}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if p.hasDefault && p.defaultValue != nil {
			prop["default"] = p.defaultValue
		}
		props.Set(p.Name, prop)
	}

	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if required := d.Required(); len(required) > 0 {
		schema["required"] = required
	}

	data, err := json.Marshal(schema)
	if err != nil {
		// Defaults are validated at registration, so this only happens for
		// values json cannot encode.
		return json.RawMessage(`{"type":"object","properties":{}}`)
	}
	return data
}

// Tool converts the definition into the form offered to completion backends.
func (d Definition) Tool() ai.Tool {
	return ai.Tool{
		Name:        d.Name,
		Description: d.Description,
		Parameters:  d.Schema(),
	}
}

// normalize resolves the description and copies the parameter slice so the
// registry owns its own value.
func (d Definition) normalize() Definition {
	if d.Description == "" {
		d.Description = SummaryLine(d.Doc)
	}
	d.Params = append([]Param(nil), d.Params...)
	for i, p := range d.Params {
		if p.hasDefault && p.defaultValue != nil {
			if v, err := conform(p.Type, p.defaultValue, false); err == nil {
				d.Params[i].defaultValue = v
			}
		}
	}
	return d
}

func (d Definition) validate() error {
	if d.Name == "" {
		return fmt.Errorf("tool name is empty")
	}
	seen := make(map[string]bool, len(d.Params))
	for _, p := range d.Params {
		if err := p.validate(); err != nil {
			return err
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate parameter %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// conform checks v against t and returns it in canonical form: int64 for
// integers, map[string]any for objects and []any for arrays.
func conform(t ParamType, v any, coerceNumericString bool) (any, error) {
	switch t {
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case TypeBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case TypeInteger:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
			if f, err := n.Float64(); err == nil {
				if i, ok := integralFloat(f); ok {
					return i, nil
				}
			}
		case float64:
			if i, ok := integralFloat(n); ok {
				return i, nil
			}
		case string:
			if coerceNumericString {
				if i, ok := parseIntString(n); ok {
					return i, nil
				}
				return nil, fmt.Errorf("expected integer, got non-numeric string %q", n)
			}
		}
	case TypeObject:
		if m, ok := v.(map[string]any); ok {
			return m, nil
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
			m := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				m[iter.Key().String()] = iter.Value().Interface()
			}
			return m, nil
		}
	case TypeArray:
		if a, ok := v.([]any); ok {
			return a, nil
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			a := make([]any, rv.Len())
			for i := range a {
				a[i] = rv.Index(i).Interface()
			}
			return a, nil
		}
	}
	return nil, fmt.Errorf("expected %s, got %s", t, jsonTypeOf(v))
}

// integralFloat accepts numbers such as 25.0, which JSON Schema counts as
// integers, when they fit in an int64.
func integralFloat(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// jsonTypeOf names the JSON type of a decoded value for error messages.
func jsonTypeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int32, int64:
		return "integer"
	case float32, float64, json.Number:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}

func (d Definition) clone() Definition {
	d.Params = append([]Param(nil), d.Params...)
	return d
}
