package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectWithRequiredFields(t *testing.T) {
	built, err := Object().
		Desc("Search parameters").
		Field("query", String().Desc("Search query").Required()).
		Field("limit", Integer().Min(1).Max(100)).
		Strict().
		Build()
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "object",
		"description": "Search parameters",
		"properties": {
			"query": {"type": "string", "description": "Search query"},
			"limit": {"type": "integer", "minimum": 1, "maximum": 100}
		},
		"required": ["query"],
		"additionalProperties": false
	}`, string(built))
}

func TestStringEnumAndDefault(t *testing.T) {
	built, err := String().Enum("low", "medium", "high").Default("medium").Build()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"string","enum":["low","medium","high"],"default":"medium"}`, string(built))
}

func TestArrayRequiresItems(t *testing.T) {
	_, err := Array(nil).Build()
	assert.ErrorIs(t, err, ErrNilItems)

	built, err := Array(String()).MinItems(1).Build()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"array","items":{"type":"string"},"minItems":1}`, string(built))
}

func TestInvalidRangeRejected(t *testing.T) {
	_, err := Number().Min(10).Max(1).Build()
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Object().Field("n", Number().Min(5).Max(2)).Build()
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRequiredDeduplicated(t *testing.T) {
	built, err := Object().
		Field("a", Bool().Required()).
		Field("a", Bool().Required()).
		Build()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {"a": {"type": "boolean"}},
		"required": ["a"]
	}`, string(built))
}
