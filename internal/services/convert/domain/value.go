package domain

import (
	"bytes"
	"encoding/json"

	perr "itemsexport/internal/platform/errors"
)

// Value is a passthrough JSON value copied from the source unchanged
type Value json.RawMessage

// IsNull reports whether the value is absent or JSON null
func (v Value) IsNull() bool {
	t := bytes.TrimSpace(v)
	return len(t) == 0 || string(t) == "null"
}

// Decode returns the Go form of the value, numbers as json.Number
func (v Value) Decode() (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode value")
	}
	return out, nil
}

// String renders the value for a CSV cell: null is empty, strings are
// unquoted, booleans are True/False, numbers keep their literal and
// arrays/objects become compact JSON
func (v Value) String() string {
	if v.IsNull() {
		return ""
	}
	t := bytes.TrimSpace(v)
	switch t[0] {
	case '"':
		var s string
		if err := json.Unmarshal(t, &s); err != nil {
			return string(t)
		}
		return s
	case 't':
		return "True"
	case 'f':
		return "False"
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, t); err != nil {
			return string(t)
		}
		return buf.String()
	default:
		return string(t)
	}
}

// Text returns the CSV rendering as a pointer, nil when null
func (v Value) Text() *string {
	if v.IsNull() {
		return nil
	}
	s := v.String()
	return &s
}

// Bool returns the value as a boolean, nil when null, error when it is another type
func (v Value) Bool() (*bool, error) {
	d, err := v.Decode()
	if err != nil || d == nil {
		return nil, err
	}
	b, ok := d.(bool)
	if !ok {
		return nil, perr.Validationf("expected a boolean, got %s", string(bytes.TrimSpace(v)))
	}
	return &b, nil
}
