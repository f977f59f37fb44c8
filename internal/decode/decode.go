// Package decode converts between the wire formats jpq accepts (JSON and
// YAML) and the ordered value.Value document model the evaluator navigates.
package decode

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jpq/internal/jmespath/value"
)

// Format selects the wire format Decode/Encode use.
type Format int

const (
	// FormatAuto sniffs the input: anything that looks like JSON is decoded
	// as JSON, everything else falls back to YAML (which is a superset of
	// JSON, so this also accepts JSON documents through the YAML path).
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

// Decode parses data as format and returns the resulting document.
func Decode(data []byte, format Format) (value.Value, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		if looksLikeJSON(data) {
			return decodeJSON(data)
		}
		return decodeYAML(data)
	}
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return true
	}
	switch trimmed[0] {
	case '{', '[', '"', '-':
		return true
	}
	if trimmed[0] >= '0' && trimmed[0] <= '9' {
		return true
	}
	for _, lit := range [][]byte{[]byte("true"), []byte("false"), []byte("null")} {
		if bytes.HasPrefix(trimmed, lit) {
			return true
		}
	}
	return false
}

func decodeJSON(data []byte) (value.Value, error) {
	v, err := value.DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return value.Value{}, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// decodeYAML unmarshals into a generic any and folds the result into
// value.Value. yaml.UseOrderedMap makes goccy hand back every mapping as a
// yaml.MapSlice, so mapping order survives; a plain map[string]any would
// fall back to Go map iteration order, which is not guaranteed to match
// source order.
func decodeYAML(data []byte) (value.Value, error) {
	var generic any
	if err := yaml.UnmarshalWithOptions(data, &generic, yaml.UseOrderedMap()); err != nil {
		return value.Value{}, fmt.Errorf("decode yaml: %w", err)
	}
	return fromAny(generic), nil
}

func fromAny(in any) value.Value {
	switch t := in.(type) {
	case nil:
		return value.NullValue
	case bool:
		return value.FromBool(t)
	case string:
		return value.FromString(t)
	case int:
		return value.FromInt(int64(t))
	case int64:
		return value.FromInt(t)
	case uint64:
		return value.FromInt(int64(t))
	case float64:
		return value.FromFloat(t)
	case yaml.MapSlice:
		obj := value.NewObject()
		obj.Reserve(len(t))
		for _, item := range t {
			obj.Set(fmt.Sprintf("%v", item.Key), fromAny(item.Value))
		}
		return value.FromObject(obj)
	case map[string]any:
		obj := value.NewObject()
		obj.Reserve(len(t))
		for k, vv := range t {
			obj.Set(k, fromAny(vv))
		}
		return value.FromObject(obj)
	case []any:
		items := make([]value.Value, len(t))
		for i, it := range t {
			items[i] = fromAny(it)
		}
		return value.FromArray(items)
	default:
		return value.FromString(fmt.Sprintf("%v", t))
	}
}

// Encode renders v as format, indenting JSON output unless indent is false.
// YAML output is always block-style indented, matching yaml.Marshal.
func Encode(v value.Value, format Format, indent bool) ([]byte, error) {
	if format == FormatYAML {
		out, err := yaml.Marshal(toAny(v))
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return out, nil
	}
	return encodeJSON(v, indent)
}

// toAny converts v to the plain Go values goccy's encoder expects, using
// yaml.MapSlice for objects so the emitted YAML preserves field order.
func toAny(v value.Value) any {
	switch v.Kind() {
	case value.Null:
		return nil
	case value.Bool:
		return v.Bool()
	case value.Number:
		if v.NumKind() == value.Int {
			return v.Int64()
		}
		return v.Float64()
	case value.String:
		return v.String()
	case value.Array:
		items := v.Items()
		out := make([]any, len(items))
		for i, it := range items {
			out[i] = toAny(it)
		}
		return out
	case value.Object:
		var ms yaml.MapSlice
		v.Object().Range(func(k string, vv value.Value) bool {
			ms = append(ms, yaml.MapItem{Key: k, Value: toAny(vv)})
			return true
		})
		return ms
	default:
		return nil
	}
}
