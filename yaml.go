package jsonmend

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// SchemaFromYAML decodes the first YAML document in data into a JSON-shaped
// schema object (map[string]any, with yaml map keys normalized to strings
// and integers widened to float64). Schemas are frequently authored in YAML
// alongside the JSON instances they govern; this bridge keeps the engine's
// value model uniform.
func SchemaFromYAML(data []byte) (map[string]any, error) {
	v, err := ValueFromYAML(data)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("jsonmend: YAML schema document is not a mapping")
	}
	return m, nil
}

// ValueFromYAML decodes the first YAML document in data into the engine's
// JSON value model.
func ValueFromYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("jsonmend: empty YAML document")
		}
		return nil, err
	}
	return yamlNormalizeValue(node), nil
}

// yamlNormalizeValue converts YAML-decoded values (which may contain
// map[any]any keys and int numbers) into JSON-like values recursively.
func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return v
	}
}
