package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["title", "confidence"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1}
	}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"title": "Suit", "confidence": 0.95}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_MissingField(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"title": "Suit"}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	assert.Contains(t, validationErr.Errors[0].Message, "confidence")
}

func TestValidateJSONString_WrongType(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"title": 7, "confidence": 0.5}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "title", validationErr.Errors[0].Field)
	assert.Contains(t, validationErr.Error(), "validation failed")
}

func TestValidateJSONBytes_Malformed(t *testing.T) {
	err := ValidateJSONBytes(testSchema, []byte("{ invalid json }"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateValue_GoStruct(t *testing.T) {
	type payload struct {
		Title      string  `json:"title"`
		Confidence float64 `json:"confidence"`
	}

	assert.NoError(t, ValidateValue(testSchema, payload{Title: "Suit", Confidence: 0.7}))
	assert.Error(t, ValidateValue(testSchema, payload{Title: "Suit", Confidence: 1.7}))
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "failed to load schema")
}

func TestCompile_ReusedAcrossDocuments(t *testing.T) {
	schema, err := Compile(testSchema)
	require.NoError(t, err)

	assert.NoError(t, schema.ValidateBytes([]byte(`{"title": "Suit", "confidence": 0.9}`)))

	err = schema.ValidateBytes([]byte(`{"title": "Suit", "confidence": 2}`))
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "confidence", validationErr.Errors[0].Field)

	assert.Error(t, schema.ValidateBytes([]byte(`{ nope`)))
}

func TestCompile_BadSchema(t *testing.T) {
	_, err := Compile(`{"type": 12}`)
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "failed to compile schema")
}
