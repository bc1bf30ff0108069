/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package coerce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mazzi/graphlark/lang/graphql/ast"
	"github.com/mazzi/graphlark/lang/graphql/gqlerrors"
	"github.com/mazzi/graphlark/lang/graphql/parser"
	"github.com/mazzi/graphlark/lang/graphql/schema"
)

func buildSchema(t *testing.T) *schema.Schema {
	t.Helper()
	cst, err := parser.Parse("test", `type Query { intField(param: Int = 30): Int }`)
	require.NoError(t, err)
	doc, err := ast.Lower(cst)
	require.NoError(t, err)
	sch, err := schema.Build(doc, nil)
	require.NoError(t, err)
	return sch
}

func operationArgs(t *testing.T, sch *schema.Schema, src string, variables map[string]interface{}) map[string]Presence {
	t.Helper()
	cst, err := parser.Parse("test", src)
	require.NoError(t, err)
	doc, err := ast.Lower(cst)
	require.NoError(t, err)
	op := doc.Operations()[0]

	vars, err := CoerceVariables(op.VariableDefinitions, variables, sch)
	require.NoError(t, err)

	field := op.SelectionSet[0].(ast.Field)
	fieldDef, ok := sch.FieldDefinition("Query", field.Name)
	require.True(t, ok)

	args, err := CoerceArguments(field.Arguments, fieldDef.Arguments, vars, sch, nil, nil)
	require.NoError(t, err)
	return args
}

// The six seed scenarios from the int-field coercion oracle: a field
// declared `intField(param: Int = 30): Int` exercises absent/null/value at
// the argument-literal level and defaulted/null/missing-required at the
// variable level.
func TestIntFieldCoercionScenarios(t *testing.T) {
	sch := buildSchema(t)

	t.Run("no arguments at all takes the declared default", func(t *testing.T) {
		args := operationArgs(t, sch, `{ intField }`, nil)
		require.True(t, args["param"].IsValue())
		require.Equal(t, int64(30), args["param"].Value)
	})

	t.Run("explicit literal null overrides the default", func(t *testing.T) {
		args := operationArgs(t, sch, `{ intField(param: null) }`, nil)
		require.True(t, args["param"].IsNull())
	})

	t.Run("explicit literal value is coerced directly", func(t *testing.T) {
		args := operationArgs(t, sch, `{ intField(param: 20) }`, nil)
		require.True(t, args["param"].IsValue())
		require.Equal(t, int64(20), args["param"].Value)
	})

	t.Run("variable with its own default and no supplied value", func(t *testing.T) {
		args := operationArgs(t, sch, `query($p: Int = 30) { intField(param: $p) }`, nil)
		require.True(t, args["param"].IsValue())
		require.Equal(t, int64(30), args["param"].Value)
	})

	t.Run("variable explicitly supplied as null", func(t *testing.T) {
		args := operationArgs(t, sch, `query($p: Int = 30) { intField(param: $p) }`,
			map[string]interface{}{"p": nil})
		require.True(t, args["param"].IsNull())
	})

	t.Run("required non-null variable not provided is a terminal error", func(t *testing.T) {
		cst, err := parser.Parse("test", `query ($p: Int!) { intField(param: $p) }`)
		require.NoError(t, err)
		doc, err := ast.Lower(cst)
		require.NoError(t, err)
		op := doc.Operations()[0]

		_, err = CoerceVariables(op.VariableDefinitions, nil, sch)
		require.Error(t, err)
		require.Equal(t, "Variable < $p > of required type < Int! > was not provided.", err.Error())

		oe, ok := gqlerrors.AsOperationError(err)
		require.True(t, ok)
		require.True(t, oe.Terminal)
		require.NotNil(t, oe.Location)
		require.Equal(t, 1, oe.Location.Line)
		require.Equal(t, 8, oe.Location.Column)
	})
}

func TestCoerceVariablesNonNullMustNotBeNull(t *testing.T) {
	sch := buildSchema(t)
	cst, err := parser.Parse("test", `query ($p: Int!) { intField(param: $p) }`)
	require.NoError(t, err)
	doc, err := ast.Lower(cst)
	require.NoError(t, err)
	op := doc.Operations()[0]

	_, err = CoerceVariables(op.VariableDefinitions, map[string]interface{}{"p": nil}, sch)
	require.Error(t, err)
	require.Equal(t, "Variable < $p > of non-null type < Int! > must not be null.", err.Error())
}

func TestCoerceListSingleValueCoercion(t *testing.T) {
	v := ast.IntValue{Value: 5}
	p, err := Coerce(v, ast.ListType{Elem: ast.NamedType{Name: "Int"}}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []interface{}{int64(5)}, p.Value)
}

func TestCoerceRawListSingleValueCoercion(t *testing.T) {
	p, err := CoerceRaw(float64(5), ast.ListType{Elem: ast.NamedType{Name: "Int"}}, nil)
	require.NoError(t, err)
	require.Equal(t, []interface{}{int64(5)}, p.Value)
}

func TestCoerceIDNormalizesIntToString(t *testing.T) {
	p, err := Coerce(ast.IntValue{Value: 7}, ast.NamedType{Name: "ID"}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "7", p.Value)

	p, err = CoerceRaw(float64(7), ast.NamedType{Name: "ID"}, nil)
	require.NoError(t, err)
	require.Equal(t, "7", p.Value)
}

func TestCoerceIntOutOfRangeIsError(t *testing.T) {
	_, err := Coerce(ast.IntValue{Value: 1 << 40}, ast.NamedType{Name: "Int"}, nil, nil)
	require.Error(t, err)
}

func TestDecodeVariablesJSONPreservesNullVersusAbsent(t *testing.T) {
	out, err := DecodeVariablesJSON([]byte(`{"a": null, "b": 1, "c": "s", "d": true, "e": [1,2], "f": {"x":1}}`))
	require.NoError(t, err)

	_, present := out["a"]
	require.True(t, present)
	require.Nil(t, out["a"])

	_, present = out["missing"]
	require.False(t, present)

	require.Equal(t, float64(1), out["b"])
	require.Equal(t, "s", out["c"])
	require.Equal(t, true, out["d"])
	require.Equal(t, []interface{}{float64(1), float64(2)}, out["e"])
	require.Equal(t, map[string]interface{}{"x": float64(1)}, out["f"])
}

func TestDecodeVariablesJSONEmptyPayload(t *testing.T) {
	out, err := DecodeVariablesJSON(nil)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestToArgsMapOmitsAbsentKeys(t *testing.T) {
	m := map[string]Presence{
		"a": Absent,
		"b": Null(),
		"c": Of(42),
	}
	out := ToArgsMap(m)
	_, ok := out["a"]
	require.False(t, ok)
	v, ok := out["b"]
	require.True(t, ok)
	require.Nil(t, v)
	require.Equal(t, 42, out["c"])
}
