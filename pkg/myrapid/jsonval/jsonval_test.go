package jsonval

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKeepsNumberSpelling(t *testing.T) {
	v, err := Decode([]byte(`{"a": 5.0, "b": 5, "c": 1.50}`))
	require.NoError(t, err)

	assert.Equal(t, "5.0", LookupString(v, "a", NotAvailable))
	assert.Equal(t, "5", LookupString(v, "b", NotAvailable))
	assert.Equal(t, "1.50", LookupString(v, "c", NotAvailable))
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	_, err := Decode([]byte(`{"a": 1} {"b": 2}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecodeMaybeString(t *testing.T) {
	v, err := DecodeMaybeString(`{"success": true}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"success": true}, v)

	obj := map[string]any{"x": "y"}
	v, err = DecodeMaybeString(obj)
	require.NoError(t, err)
	assert.Equal(t, obj, v)

	_, err = DecodeMaybeString("{broken")
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	container := map[string]any{
		"present": "value",
		"null":    nil,
	}

	tests := []struct {
		name      string
		container any
		key       string
		want      any
	}{
		{"present", container, "present", "value"},
		{"absent", container, "absent", NotAvailable},
		{"null", container, "null", NotAvailable},
		{"not an object", []any{"present"}, "present", NotAvailable},
		{"nil container", nil, "present", NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lookup(tt.container, tt.key, NotAvailable))
		})
	}

	assert.True(t, Has(container, "null"))
	assert.False(t, Has(container, "absent"))
	assert.False(t, Has("string", "present"))
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"number one", json.Number("1"), true},
		{"number zero", json.Number("0"), false},
		{"float non-zero", json.Number("2.5"), true},
		{"native int", 1, true},
		{"string yes", "yes", true},
		{"string YES", "YES", true},
		{"string True", "True", true},
		{"string 1", "1", true},
		{"string padded", " yes ", true},
		{"string no", "no", false},
		{"string 0", "0", false},
		{"string y", "y", false},
		{"empty string", "", false},
		{"nil", nil, false},
		{"object", map[string]any{}, false},
		{"array", []any{true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truthy(tt.input))
		})
	}
}

func TestFloat(t *testing.T) {
	f, err := Float(json.Number("101.6865"))
	require.NoError(t, err)
	assert.InDelta(t, 101.6865, f, 1e-9)

	f, err = Float("3.1343")
	require.NoError(t, err)
	assert.InDelta(t, 3.1343, f, 1e-9)

	for _, bad := range []any{nil, true, "abc", map[string]any{}, []any{}} {
		_, err := Float(bad)
		assert.Error(t, err, "Float(%#v)", bad)
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "N/A", Display(nil))
	assert.Equal(t, "KL Sentral", Display("KL Sentral"))
	assert.Equal(t, "2.40", Display(json.Number("2.40")))
	assert.Equal(t, "True", Display(true))
	assert.Equal(t, "False", Display(false))
	assert.Equal(t, `{"a":"b"}`, Display(map[string]any{"a": "b"}))
	assert.Equal(t, `[1,2]`, Display([]any{json.Number("1"), json.Number("2")}))
	assert.Equal(t, "3.5", Display(3.5))
}
