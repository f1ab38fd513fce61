// Package jsonval provides lenient access to loosely typed JSON values as
// returned by the MyRapid geoservice. Values are the generic tree produced
// by encoding/json with UseNumber: map[string]any, []any, string,
// json.Number, bool and nil.
package jsonval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// NotAvailable is the placeholder rendered for absent values.
const NotAvailable = "N/A"

// truthyStrings are the lower-cased string spellings accepted as true.
var truthyStrings = map[string]struct{}{
	"true": {},
	"1":    {},
	"yes":  {},
}

// Decode parses data into a generic value, keeping numbers as json.Number
// so they render exactly as the API spelled them.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

// DecodeMaybeString decodes v a second time when the API double-encoded
// its payload as a JSON string. Any other value is returned unchanged.
func DecodeMaybeString(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	return Decode([]byte(s))
}

// Object returns v as a JSON object.
func Object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// Array returns v as a JSON array.
func Array(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// Has reports whether container is an object with key present, even when
// the value is null.
func Has(container any, key string) bool {
	m, ok := container.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

// Lookup returns container[key] when container is an object holding a
// non-null value for key, and placeholder otherwise.
func Lookup(container any, key string, placeholder any) any {
	m, ok := container.(map[string]any)
	if !ok {
		return placeholder
	}
	v, ok := m[key]
	if !ok || v == nil {
		return placeholder
	}
	return v
}

// LookupString is Lookup followed by Display.
func LookupString(container any, key string, placeholder string) string {
	return Display(Lookup(container, key, placeholder))
}

// Display renders a JSON value as text. Numbers keep their source
// spelling, null renders as NotAvailable and composite values render as
// compact JSON.
func Display(v any) string {
	switch t := v.(type) {
	case nil:
		return NotAvailable
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "True"
		}
		return "False"
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		s, err := cast.ToStringE(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return s
	}
}

// Truthy normalizes a lenient flag to a definite boolean. Booleans are
// taken as is, numbers are true when non-zero, and strings are true when
// they equal "true", "1" or "yes" ignoring case. Everything else,
// including null, is false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		_, ok := truthyStrings[strings.ToLower(strings.TrimSpace(t))]
		return ok
	case map[string]any, []any:
		return false
	default:
		f, err := cast.ToFloat64E(t)
		if err != nil {
			return false
		}
		return f != 0
	}
}

// Float converts a JSON number or numeric string to float64. Null,
// booleans and composite values are rejected.
func Float(v any) (float64, error) {
	switch v.(type) {
	case nil:
		return 0, errors.New("value is null")
	case bool, map[string]any, []any:
		return 0, fmt.Errorf("value of type %T is not a number", v)
	}
	return cast.ToFloat64E(v)
}
