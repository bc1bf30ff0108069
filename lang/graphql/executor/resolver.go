/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

// Package executor drives the minimal pipeline described in Design Note §9:
// parse, lower, coerce variables once, walk the selection set coercing each
// field's arguments and invoking its registered resolver, and assemble the
// `{"data":..., "errors":...}` envelope. Resolver *registration* is
// deliberately the simplest possible map, not a framework - scheduling,
// directive application and subscription transport are out of scope.
package executor

import (
	"context"

	"github.com/mazzi/graphlark/lang/graphql/ast"
	"github.com/mazzi/graphlark/lang/graphql/gqlerrors"
)

// ResolveInfo is the read-only context handed to every resolver invocation.
type ResolveInfo struct {
	FieldName     string
	Path          gqlerrors.Path
	OperationID   string
	Operation     *ast.OperationDefinition
	ReturnType    ast.TypeRef
}

// Resolver produces a field's value synchronously. parent is the value
// produced by resolving the enclosing field (nil at the root); args is the
// field's coerced argument map with absent arguments omitted entirely, so a
// resolver can distinguish "argument not supplied" from "argument supplied
// as null" with a comma-ok map lookup.
type Resolver func(ctx context.Context, parent interface{}, args map[string]interface{}, info *ResolveInfo) (interface{}, error)

// Result is what an AsyncResolver delivers on its channel: exactly one
// value, then the channel is closed.
type Result struct {
	Value interface{}
	Err   error
}

// AsyncResolver is the suspendable resolver variant sharing the same
// dispatch path as Resolver: the executor reads the channel's single value
// instead of a direct return.
type AsyncResolver func(ctx context.Context, parent interface{}, args map[string]interface{}, info *ResolveInfo) <-chan Result
