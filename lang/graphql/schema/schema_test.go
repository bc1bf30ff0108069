/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mazzi/graphlark/lang/graphql/ast"
	"github.com/mazzi/graphlark/lang/graphql/parser"
)

func mustBuild(t *testing.T, src string) *Schema {
	t.Helper()
	cst, err := parser.Parse("test", src)
	require.NoError(t, err)
	doc, err := ast.Lower(cst)
	require.NoError(t, err)
	sch, err := Build(doc, nil)
	require.NoError(t, err)
	return sch
}

func TestBuildResolvesDefaultRootTypes(t *testing.T) {
	sch := mustBuild(t, `
	type Query { intField(param: Int = 30): Int }
	type Mutation { ping: Boolean }
	`)
	require.NotNil(t, sch.Query)
	require.Equal(t, "Query", sch.Query.TypeName())
	require.NotNil(t, sch.Mutation)
}

func TestBuildResolvesExplicitSchemaDefinition(t *testing.T) {
	sch := mustBuild(t, `
	schema { query: Root }
	type Root { intField: Int }
	`)
	require.NotNil(t, sch.Query)
	require.Equal(t, "Root", sch.Query.TypeName())
}

func TestBuildRejectsDuplicateTypeName(t *testing.T) {
	cst, err := parser.Parse("test", `
	type Query { a: Int }
	type Query { b: Int }
	`)
	require.NoError(t, err)
	doc, err := ast.Lower(cst)
	require.NoError(t, err)
	_, err = Build(doc, nil)
	require.Error(t, err)
}

func TestBuildRejectsDuplicateTypeNameAcrossKinds(t *testing.T) {
	cst, err := parser.Parse("test", `
	type Foo { a: Int }
	interface Foo { a: Int }
	`)
	require.NoError(t, err)
	doc, err := ast.Lower(cst)
	require.NoError(t, err)
	_, err = Build(doc, nil)
	require.Error(t, err)
}

func TestBuildRejectsUnknownNamedType(t *testing.T) {
	cst, err := parser.Parse("test", `type Query { a: Missing }`)
	require.NoError(t, err)
	doc, err := ast.Lower(cst)
	require.NoError(t, err)
	_, err = Build(doc, nil)
	require.Error(t, err)
}

func TestApplyExtensionAppendsFields(t *testing.T) {
	sch := mustBuild(t, `
	type Query { a: Int }
	extend type Query { b: String }
	`)
	_, ok := sch.FieldDefinition("Query", "b")
	require.True(t, ok)
}

func TestResolveTypeMemoizesLookup(t *testing.T) {
	sch := mustBuild(t, `type Query { a: Int }`)
	nt1, ok := sch.ResolveType(ast.NamedType{Name: "Query"})
	require.True(t, ok)
	nt2, ok := sch.ResolveType(ast.NamedType{Name: "Query"})
	require.True(t, ok)
	require.Same(t, nt1, nt2)
	require.Len(t, sch.cache, 1)
}

func TestFieldDefinitionUnknownType(t *testing.T) {
	sch := mustBuild(t, `type Query { a: Int }`)
	_, ok := sch.FieldDefinition("Nope", "a")
	require.False(t, ok)
}
