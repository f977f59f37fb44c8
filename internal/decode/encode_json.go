package decode

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jacoelho/jpq/internal/jmespath/value"
)

// encodeJSON renders v as JSON, preserving object member order directly
// from value.Object rather than round-tripping through a map. Go's
// encoding/json cannot do this on its own since map[string]any iteration
// order is unspecified.
func encodeJSON(v value.Value, indent bool) ([]byte, error) {
	e := &jsonEncoder{indent: indent}
	if err := e.encode(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type jsonEncoder struct {
	buf    bytes.Buffer
	indent bool
}

func (e *jsonEncoder) newline(depth int) {
	if !e.indent {
		return
	}
	e.buf.WriteByte('\n')
	e.buf.WriteString(strings.Repeat("  ", depth))
}

func (e *jsonEncoder) encode(v value.Value, depth int) error {
	switch v.Kind() {
	case value.Null:
		e.buf.WriteString("null")
	case value.Bool:
		if v.Bool() {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case value.Number:
		if v.NumKind() == value.Int {
			e.buf.WriteString(strconv.FormatInt(v.Int64(), 10))
		} else {
			e.buf.WriteString(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
		}
	case value.String:
		return e.encodeString(v.String())
	case value.Array:
		return e.encodeArray(v, depth)
	case value.Object:
		return e.encodeObject(v, depth)
	}
	return nil
}

func (e *jsonEncoder) encodeString(s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	e.buf.Write(b)
	return nil
}

func (e *jsonEncoder) encodeArray(v value.Value, depth int) error {
	items := v.Items()
	if len(items) == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	e.buf.WriteByte('[')
	for i, it := range items {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.encode(it, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte(']')
	return nil
}

func (e *jsonEncoder) encodeObject(v value.Value, depth int) error {
	obj := v.Object()
	if obj.Len() == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	e.buf.WriteByte('{')
	first := true
	var encErr error
	obj.Range(func(k string, vv value.Value) bool {
		if !first {
			e.buf.WriteByte(',')
		}
		first = false
		e.newline(depth + 1)
		if encErr = e.encodeString(k); encErr != nil {
			return false
		}
		e.buf.WriteByte(':')
		if e.indent {
			e.buf.WriteByte(' ')
		}
		if encErr = e.encode(vv, depth+1); encErr != nil {
			return false
		}
		return true
	})
	if encErr != nil {
		return encErr
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}
