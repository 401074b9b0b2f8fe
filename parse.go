package vireo

import (
	"bytes"
	"context"

	json "github.com/goccy/go-json"
	yaml "gopkg.in/yaml.v3"
)

// ParseJSON decodes data and validates it against schema. Numbers are decoded
// as json.Number so integer values survive undistorted. A malformed document
// yields a single-entry ValidationErrorGroup with code parse_error.
func ParseJSON(ctx context.Context, schema Validator, data []byte) (any, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return schema.Validate(ctx, v)
}

// ParseJSONAsync is ParseJSON backed by ValidateAsync.
func ParseJSONAsync(ctx context.Context, schema Validator, data []byte) (any, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return schema.ValidateAsync(ctx, v)
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, ValidationErrorGroup{{
			Path:    Path{},
			Code:    CodeParseError,
			Message: "invalid JSON: " + err.Error(),
		}}
	}
	return v, nil
}

// ParseYAML decodes a YAML document and validates it against schema.
func ParseYAML(ctx context.Context, schema Validator, data []byte) (any, error) {
	v, err := decodeYAML(data)
	if err != nil {
		return nil, err
	}
	return schema.Validate(ctx, v)
}

// ParseYAMLAsync is ParseYAML backed by ValidateAsync.
func ParseYAMLAsync(ctx context.Context, schema Validator, data []byte) (any, error) {
	v, err := decodeYAML(data)
	if err != nil {
		return nil, err
	}
	return schema.ValidateAsync(ctx, v)
}

func decodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, ValidationErrorGroup{{
			Path:    Path{},
			Code:    CodeParseError,
			Message: "invalid YAML: " + err.Error(),
		}}
	}
	return normalizeYAML(v), nil
}

// normalizeYAML rewrites yaml.v3's map[string]any/[]any trees so nested
// non-string keys cannot leak through (yaml allows them, the schema model
// does not).
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeYAML(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			if ks, ok := k.(string); ok {
				out[ks] = normalizeYAML(e)
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeYAML(e)
		}
		return out
	default:
		return v
	}
}
