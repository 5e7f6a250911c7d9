package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestConstant(t *testing.T) {
	t.Run("integer", func(t *testing.T) {
		v, err := Constant(cty.NumberIntVal(42), "Integer")
		require.NoError(t, err)
		require.NotNil(t, v.IntValue)
		assert.Equal(t, int64(42), *v.IntValue)
		assert.Nil(t, v.StringValue)
	})

	t.Run("integer from string", func(t *testing.T) {
		v, err := Constant(cty.StringVal("7"), "int")
		require.NoError(t, err)
		assert.Equal(t, int64(7), *v.IntValue)
	})

	t.Run("double", func(t *testing.T) {
		v, err := Constant(cty.NumberFloatVal(0.5), "Float")
		require.NoError(t, err)
		assert.Equal(t, 0.5, *v.DoubleValue)
	})

	t.Run("string from number", func(t *testing.T) {
		v, err := Constant(cty.NumberIntVal(3), "String")
		require.NoError(t, err)
		assert.Equal(t, "3", *v.StringValue)
	})

	t.Run("fractional value as integer fails", func(t *testing.T) {
		_, err := Constant(cty.NumberFloatVal(1.5), "Integer")
		assert.Error(t, err)
	})

	t.Run("non-numeric string as integer fails", func(t *testing.T) {
		_, err := Constant(cty.StringVal("abc"), "Integer")
		assert.Error(t, err)
	})

	t.Run("null fails", func(t *testing.T) {
		_, err := Constant(cty.NullVal(cty.String), "String")
		assert.Error(t, err)
	})
}

func TestLiteralRendering(t *testing.T) {
	testCases := []struct {
		name          string
		value         cty.Value
		expectedPlain string
		expectedCond  string
	}{
		{name: "string", value: cty.StringVal("heads"), expectedPlain: "heads", expectedCond: "'heads'"},
		{name: "integer", value: cty.NumberIntVal(10), expectedPlain: "10", expectedCond: "10"},
		{name: "float", value: cty.NumberFloatVal(0.25), expectedPlain: "0.25", expectedCond: "0.25"},
		{name: "bool", value: cty.True, expectedPlain: "true", expectedCond: "true"},
		{
			name:          "object",
			value:         cty.ObjectVal(map[string]cty.Value{"b": cty.NumberIntVal(1), "a": cty.StringVal("x")}),
			expectedPlain: `{"a":"x","b":1}`,
			expectedCond:  `{"a":"x","b":1}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			plain, err := LiteralString(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedPlain, plain)

			cond, err := ConditionLiteral(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedCond, cond)
		})
	}
}

func TestRawItems(t *testing.T) {
	t.Run("tuple keeps order and duplicates", func(t *testing.T) {
		raw, n, err := RawItems(cty.TupleVal([]cty.Value{
			cty.NumberIntVal(3), cty.NumberIntVal(1), cty.NumberIntVal(3),
		}))
		require.NoError(t, err)
		assert.Equal(t, "[3,1,3]", raw)
		assert.Equal(t, 3, n)
	})

	t.Run("list of objects", func(t *testing.T) {
		raw, n, err := RawItems(cty.ListVal([]cty.Value{
			cty.ObjectVal(map[string]cty.Value{"a": cty.NumberIntVal(1)}),
			cty.ObjectVal(map[string]cty.Value{"a": cty.NumberIntVal(2)}),
		}))
		require.NoError(t, err)
		assert.Equal(t, `[{"a":1},{"a":2}]`, raw)
		assert.Equal(t, 2, n)
	})

	t.Run("scalar is rejected", func(t *testing.T) {
		_, _, err := RawItems(cty.StringVal("nope"))
		assert.ErrorContains(t, err, "must be a list")
	})
}

func TestInferType(t *testing.T) {
	assert.Equal(t, "Integer", InferType(cty.NumberIntVal(1)))
	assert.Equal(t, "Float", InferType(cty.NumberFloatVal(1.5)))
	assert.Equal(t, "String", InferType(cty.StringVal("x")))
	assert.Equal(t, "String", InferType(cty.True))
	assert.Equal(t, "String", InferType(cty.NilVal))
}
