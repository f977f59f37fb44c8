package value

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Parse decodes text as a single JSON value, preserving object key order.
// encoding/json's map[string]any does not preserve order, so the decoder is
// driven token-by-token and objects are rebuilt through Object, which does.
func Parse(text string) (Value, error) {
	return DecodeJSON(strings.NewReader(text))
}

// DecodeJSON decodes a single JSON value from r, preserving object key order.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case nil:
		return NullValue, nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case json.Number:
		return numberFromJSON(t), nil
	default:
		return Value{}, fmt.Errorf("unsupported JSON token %T", tok)
	}
}

func numberFromJSON(n json.Number) Value {
	if i, err := n.Int64(); err == nil {
		return FromInt(i)
	}
	f, _ := n.Float64()
	return FromFloat(f)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected object key, got %T", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return Value{}, err
	}
	return FromObject(obj), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, val)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return Value{}, err
	}
	return FromArray(items), nil
}
