/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/mazzi/graphlark/lang/graphql/parser"
)

func mustLower(t *testing.T, src string) *Document {
	t.Helper()
	cst, err := parser.Parse("test", src)
	require.NoError(t, err)
	doc, err := Lower(cst)
	require.NoError(t, err)
	return doc
}

func TestLowerObjectTypeDefinition(t *testing.T) {
	doc := mustLower(t, `type Greeting implements Named {
		name: String!
		greeting(loud: Boolean = false): String
	}`)
	require.Len(t, doc.Definitions, 1)
	obj, ok := doc.Definitions[0].(ObjectTypeDefinition)
	require.True(t, ok)
	require.Equal(t, "Greeting", obj.Name)
	require.Equal(t, []string{"Named"}, obj.Interfaces)
	require.Len(t, obj.Fields, 2)
	require.Equal(t, "name", obj.Fields[0].Name)
	require.Equal(t, "String!", obj.Fields[0].Type.String())
	require.Len(t, obj.Fields[1].Arguments, 1)
	require.True(t, obj.Fields[1].Arguments[0].HasDefault)
}

func TestLowerVariableDefinitionCarriesDollarLocation(t *testing.T) {
	doc := mustLower(t, `query ($p: Int!) { intField(param: $p) }`)
	op := doc.Operations()[0]
	require.Len(t, op.VariableDefinitions, 1)
	vd := op.VariableDefinitions[0]
	require.Equal(t, "p", vd.Name)
	require.Equal(t, 1, vd.Line)
	// column 8 is where '$' appears in "query ($p: Int!)"
	require.Equal(t, 8, vd.Column)
}

func TestLowerBlockStringDedent(t *testing.T) {
	doc := mustLower(t, "\"\"\"\n    indented\n    text\n    \"\"\"\nscalar Date")
	desc, ok := doc.Definitions[0].(ScalarTypeDefinition)
	require.True(t, ok)
	require.Equal(t, "indented\ntext", desc.Description)
}

func TestLowerListAndNonNullTypeRefs(t *testing.T) {
	doc := mustLower(t, `type T { f(a: [Int!]!): [String] }`)
	obj := doc.Definitions[0].(ObjectTypeDefinition)
	arg := obj.Fields[0].Arguments[0]
	require.Equal(t, "[Int!]!", arg.Type.String())
	require.Equal(t, "[String]", obj.Fields[0].Type.String())
}

func TestValidateTypeRefRejectsDoubleNonNull(t *testing.T) {
	err := ValidateTypeRef(NonNullType{Inner: NonNullType{Inner: NamedType{Name: "Int"}}})
	require.Error(t, err)
}

func TestDocumentOperationByNameAnonymousShorthand(t *testing.T) {
	doc := mustLower(t, `{ intField }`)
	op := doc.OperationByName("")
	require.NotNil(t, op)
	require.Equal(t, "query", op.Operation)
}

func TestLowerEnumAndInputObjectDefinitions(t *testing.T) {
	doc := mustLower(t, `
	enum Color { RED GREEN BLUE }
	input Point { x: Int = 0 y: Int = 0 }
	`)
	require.Len(t, doc.Definitions, 2)
	enum := doc.Definitions[0].(EnumTypeDefinition)
	require.Equal(t, []string{"RED", "GREEN", "BLUE"}, enumValueNames(enum.Values))
	input := doc.Definitions[1].(InputObjectTypeDefinition)
	require.Len(t, input.Fields, 2)
}

func TestLowerInputObjectFieldsStructurallyMatch(t *testing.T) {
	doc := mustLower(t, `input Point { x: Int = 0 y: Int = 0 }`)
	input := doc.Definitions[0].(InputObjectTypeDefinition)

	want := []InputValueDefinition{
		{Name: "x", Type: NamedType{Name: "Int"}, Default: IntValue{Value: 0}, HasDefault: true},
		{Name: "y", Type: NamedType{Name: "Int"}, Default: IntValue{Value: 0}, HasDefault: true},
	}
	if diff := cmp.Diff(want, input.Fields); diff != "" {
		t.Errorf("input object fields mismatch (-want +got):\n%s", diff)
	}
}

func enumValueNames(vs []EnumValueDefinition) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name
	}
	return out
}
