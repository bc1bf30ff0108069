/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mazzi/graphlark/lang/graphql/ast"
	"github.com/mazzi/graphlark/lang/graphql/parser"
	"github.com/mazzi/graphlark/lang/graphql/schema"
)

func buildIntFieldSchema(t *testing.T) *Schema {
	t.Helper()
	cst, err := parser.Parse("test", `type Query { intField(param: Int = 30): Int }`)
	require.NoError(t, err)
	doc, err := ast.Lower(cst)
	require.NoError(t, err)
	sch, err := schema.Build(doc, nil)
	require.NoError(t, err)

	exec := NewSchema(sch)
	exec.RegisterResolver("Query", "intField", func(_ context.Context, _ interface{}, args map[string]interface{}, _ *ResolveInfo) (interface{}, error) {
		v, ok := args["param"]
		if !ok || v == nil {
			return nil, nil
		}
		return v.(int64) + 3, nil
	})
	return exec
}

// The six seed scenarios, now exercised end to end through Execute: a field
// `intField(param: Int = 30): Int` whose resolver adds 3 to whatever
// argument value it's handed, or returns null when the argument is null or
// absent-with-no-default.
func TestExecuteIntFieldScenarios(t *testing.T) {
	exec := buildIntFieldSchema(t)
	ctx := context.Background()

	t.Run("no arguments takes the declared default", func(t *testing.T) {
		resp := Execute(ctx, exec, `{ intField }`, nil, "", nil)
		require.Empty(t, resp.Errors)
		require.JSONEq(t, `{"intField": 33}`, string(resp.Data))
	})

	t.Run("explicit literal null overrides the default", func(t *testing.T) {
		resp := Execute(ctx, exec, `{ intField(param: null) }`, nil, "", nil)
		require.Empty(t, resp.Errors)
		require.JSONEq(t, `{"intField": null}`, string(resp.Data))
	})

	t.Run("explicit literal value is coerced directly", func(t *testing.T) {
		resp := Execute(ctx, exec, `{ intField(param: 20) }`, nil, "", nil)
		require.Empty(t, resp.Errors)
		require.JSONEq(t, `{"intField": 23}`, string(resp.Data))
	})

	t.Run("variable with its own default and no supplied value", func(t *testing.T) {
		resp := Execute(ctx, exec, `query($p: Int = 30) { intField(param: $p) }`, nil, "", nil)
		require.Empty(t, resp.Errors)
		require.JSONEq(t, `{"intField": 33}`, string(resp.Data))
	})

	t.Run("variable explicitly supplied as null", func(t *testing.T) {
		resp := Execute(ctx, exec, `query($p: Int = 30) { intField(param: $p) }`,
			map[string]interface{}{"p": nil}, "", nil)
		require.Empty(t, resp.Errors)
		require.JSONEq(t, `{"intField": null}`, string(resp.Data))
	})

	t.Run("required non-null variable not provided is a terminal error", func(t *testing.T) {
		resp := Execute(ctx, exec, `query ($p: Int!) { intField(param: $p) }`, nil, "", nil)
		require.Nil(t, resp.Data)
		require.Len(t, resp.Errors, 1)
		require.Equal(t, "Variable < $p > of required type < Int! > was not provided.", resp.Errors[0].Message)
		require.Len(t, resp.Errors[0].Locations, 1)
		require.Equal(t, 1, resp.Errors[0].Locations[0].Line)
		require.Equal(t, 8, resp.Errors[0].Locations[0].Column)
	})
}

func TestExecuteNonNullFieldBubblesToParent(t *testing.T) {
	cst, err := parser.Parse("test", `
	type Widget { id: ID! name: String! }
	type Query { widget: Widget }
	`)
	require.NoError(t, err)
	doc, err := ast.Lower(cst)
	require.NoError(t, err)
	sch, err := schema.Build(doc, nil)
	require.NoError(t, err)

	exec := NewSchema(sch)
	exec.RegisterResolver("Query", "widget", func(_ context.Context, _ interface{}, _ map[string]interface{}, _ *ResolveInfo) (interface{}, error) {
		return struct{}{}, nil
	})
	exec.RegisterResolver("Widget", "id", func(_ context.Context, _ interface{}, _ map[string]interface{}, _ *ResolveInfo) (interface{}, error) {
		return "w-1", nil
	})
	exec.RegisterResolver("Widget", "name", func(_ context.Context, _ interface{}, _ map[string]interface{}, _ *ResolveInfo) (interface{}, error) {
		return nil, nil
	})

	resp := Execute(context.Background(), exec, `{ widget { id name } }`, nil, "", nil)
	require.JSONEq(t, `{"widget": null}`, string(resp.Data))
	require.Len(t, resp.Errors, 1)
	require.Contains(t, resp.Errors[0].Message, "Widget.name")
}

// A non-null violation must null out only the nearest nullable ancestor,
// never fields outside that ancestor's own selection set: widget's subtree
// collapses to null, but the unrelated sibling field ping is untouched and
// still resolves normally.
func TestExecuteNonNullFieldDoesNotAffectUnrelatedSiblings(t *testing.T) {
	cst, err := parser.Parse("test", `
	type Widget { name: String! }
	type Query { widget: Widget ping: String }
	`)
	require.NoError(t, err)
	doc, err := ast.Lower(cst)
	require.NoError(t, err)
	sch, err := schema.Build(doc, nil)
	require.NoError(t, err)

	exec := NewSchema(sch)
	exec.RegisterResolver("Query", "widget", func(_ context.Context, _ interface{}, _ map[string]interface{}, _ *ResolveInfo) (interface{}, error) {
		return struct{}{}, nil
	})
	exec.RegisterResolver("Widget", "name", func(_ context.Context, _ interface{}, _ map[string]interface{}, _ *ResolveInfo) (interface{}, error) {
		return nil, nil
	})
	exec.RegisterResolver("Query", "ping", func(_ context.Context, _ interface{}, _ map[string]interface{}, _ *ResolveInfo) (interface{}, error) {
		return "pong", nil
	})

	for i := 0; i < 20; i++ {
		resp := Execute(context.Background(), exec, `{ widget { name } ping }`, nil, "", nil)
		require.JSONEq(t, `{"widget": null, "ping": "pong"}`, string(resp.Data))
		require.Len(t, resp.Errors, 1)
		require.Contains(t, resp.Errors[0].Message, "Widget.name")
	}
}

func TestExecuteAsyncResolver(t *testing.T) {
	cst, err := parser.Parse("test", `type Query { ping: String }`)
	require.NoError(t, err)
	doc, err := ast.Lower(cst)
	require.NoError(t, err)
	sch, err := schema.Build(doc, nil)
	require.NoError(t, err)

	exec := NewSchema(sch)
	exec.RegisterAsyncResolver("Query", "ping", func(_ context.Context, _ interface{}, _ map[string]interface{}, _ *ResolveInfo) <-chan Result {
		ch := make(chan Result, 1)
		ch <- Result{Value: "pong"}
		close(ch)
		return ch
	})

	resp := Execute(context.Background(), exec, `{ ping }`, nil, "", nil)
	require.Empty(t, resp.Errors)
	require.JSONEq(t, `{"ping": "pong"}`, string(resp.Data))
}

func TestExecuteFieldOrderPreservedRegardlessOfCompletionOrder(t *testing.T) {
	cst, err := parser.Parse("test", `type Query { a: Int b: Int c: Int }`)
	require.NoError(t, err)
	doc, err := ast.Lower(cst)
	require.NoError(t, err)
	sch, err := schema.Build(doc, nil)
	require.NoError(t, err)

	exec := NewSchema(sch)
	exec.RegisterResolver("Query", "a", func(_ context.Context, _ interface{}, _ map[string]interface{}, _ *ResolveInfo) (interface{}, error) {
		return 1, nil
	})
	exec.RegisterResolver("Query", "b", func(_ context.Context, _ interface{}, _ map[string]interface{}, _ *ResolveInfo) (interface{}, error) {
		return 2, nil
	})
	exec.RegisterResolver("Query", "c", func(_ context.Context, _ interface{}, _ map[string]interface{}, _ *ResolveInfo) (interface{}, error) {
		return 3, nil
	})

	resp := Execute(context.Background(), exec, `{ c a b }`, nil, "", nil)
	require.Empty(t, resp.Errors)
	require.Equal(t, `{"c":3,"a":1,"b":2}`, string(resp.Data))
}

func TestExecuteUnknownOperationName(t *testing.T) {
	exec := buildIntFieldSchema(t)
	resp := Execute(context.Background(), exec, `{ intField }`, nil, "DoesNotExist", nil)
	require.Len(t, resp.Errors, 1)
}

func TestExecuteFragmentSpreadIsFlattened(t *testing.T) {
	exec := buildIntFieldSchema(t)
	resp := Execute(context.Background(), exec, `{ ...parts } fragment parts on Query { intField }`, nil, "", nil)
	require.Empty(t, resp.Errors)
	require.JSONEq(t, `{"intField": 33}`, string(resp.Data))
}
