package validation

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pricedSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"id":    {"type": "string", "minLength": 1},
		"price": {"type": "number", "exclusiveMinimum": 0}
	},
	"required": ["id"]
}`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"item.schema.json":   {Data: []byte(pricedSchema)},
		"broken.schema.json": {Data: []byte(`{"type": `)},
	}
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator(testFS())

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "valid", data: `{"id": "awp", "price": 120.5}`},
		{name: "optional field omitted", data: `{"id": "awp"}`},
		{name: "missing required", data: `{"price": 10}`, wantErr: "required"},
		{name: "wrong type", data: `{"id": "awp", "price": "ten"}`, wantErr: "/price"},
		{name: "constraint", data: `{"id": "awp", "price": 0}`, wantErr: "/price"},
		{name: "empty id", data: `{"id": ""}`, wantErr: "/id"},
		{name: "malformed", data: `{"id": }`, wantErr: "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), "item.schema.json")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchemaValidator_SchemaErrors(t *testing.T) {
	v := NewSchemaValidator(testFS())

	err := v.ValidateBytes([]byte(`{}`), "missing.schema.json")
	assert.ErrorContains(t, err, "failed to load schema missing.schema.json")

	err = v.ValidateBytes([]byte(`{}`), "broken.schema.json")
	assert.ErrorContains(t, err, "parse schema JSON")
}

func TestSchemaValidator_CachesCompiledSchema(t *testing.T) {
	v := NewSchemaValidator(testFS()).(*validator)

	require.NoError(t, v.ValidateBytes([]byte(`{"id": "a"}`), "item.schema.json"))
	require.NoError(t, v.ValidateBytes([]byte(`{"id": "b"}`), "item.schema.json"))
	assert.Len(t, v.schemas, 1)
}
