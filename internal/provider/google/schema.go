package google

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"google.golang.org/genai"
)

var schemaTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// convertSchema converts a JSON schema document to a genai Schema. Property
// order is kept in PropertyOrdering so Gemini sees parameters in declaration
// order.
func convertSchema(raw json.RawMessage) *genai.Schema {
	if len(raw) == 0 {
		return nil
	}

	var fields struct {
		Type        string                                          `json:"type"`
		Description string                                          `json:"description"`
		Enum        []string                                        `json:"enum"`
		Default     any                                             `json:"default"`
		Required    []string                                        `json:"required"`
		Items       json.RawMessage                                 `json:"items"`
		Properties  *orderedmap.OrderedMap[string, json.RawMessage] `json:"properties"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	result := &genai.Schema{
		Type:        schemaTypes[fields.Type],
		Description: fields.Description,
		Enum:        fields.Enum,
		Default:     fields.Default,
		Required:    fields.Required,
	}
	if len(fields.Items) > 0 {
		result.Items = convertSchema(fields.Items)
	}
	if fields.Properties != nil {
		result.Properties = make(map[string]*genai.Schema, fields.Properties.Len())
		for pair := fields.Properties.Oldest(); pair != nil; pair = pair.Next() {
			result.Properties[pair.Key] = convertSchema(pair.Value)
			result.PropertyOrdering = append(result.PropertyOrdering, pair.Key)
		}
	}
	return result
}
