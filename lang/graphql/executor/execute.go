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
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mazzi/graphlark/lang/graphql/ast"
	"github.com/mazzi/graphlark/lang/graphql/coerce"
	"github.com/mazzi/graphlark/lang/graphql/gqlerrors"
	"github.com/mazzi/graphlark/lang/graphql/parser"
	"github.com/mazzi/graphlark/lang/graphql/schema"
)

// maxConcurrentFields bounds each selection set's errgroup, in the spirit of
// the teacher lexer's single-goroutine-per-document model: fan-out is
// allowed, but not unbounded.
const maxConcurrentFields = 8

// errContext is shared by every goroutine resolving fields for the whole
// operation; it only ever accumulates errors, so a plain mutex-guarded
// slice is enough - non-null bubbling is tracked separately, per selection
// set, not through errContext.
type errContext struct {
	mu   sync.Mutex
	errs []*gqlerrors.Error
}

func (ec *errContext) record(err error) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.errs = append(ec.errs, gqlerrors.ToError(err))
}

// Execute is the minimal round-trip pipeline: parse, lower, select the
// operation, coerce its variables once, walk its selection set, and
// assemble the `{"data":..., "errors":...}` envelope.
func Execute(ctx context.Context, sch *Schema, query string, variables map[string]interface{}, operationName string, log *zap.SugaredLogger) *gqlerrors.Response {
	opID := uuid.NewString()

	cst, err := parser.Parse("operation", query)
	if err != nil {
		if log != nil {
			log.Warnw("operation parse failed", "operation_id", opID, "error", err)
		}
		return &gqlerrors.Response{Errors: []*gqlerrors.Error{gqlerrors.ToError(err)}}
	}

	doc, err := ast.Lower(cst)
	if err != nil {
		return &gqlerrors.Response{Errors: []*gqlerrors.Error{gqlerrors.ToError(err)}}
	}

	op := doc.OperationByName(operationName)
	if op == nil {
		return &gqlerrors.Response{Errors: []*gqlerrors.Error{{
			Message: "no operation found matching the requested operation name",
		}}}
	}

	root, rootTypeName, err := rootForOperation(sch.Schema, op.Operation)
	if err != nil {
		return &gqlerrors.Response{Errors: []*gqlerrors.Error{gqlerrors.ToError(err)}}
	}

	vars, err := coerce.CoerceVariables(op.VariableDefinitions, variables, sch.Schema)
	if err != nil {
		if log != nil {
			log.Warnw("variable coercion failed", "operation_id", opID, "error", err)
		}
		return &gqlerrors.Response{Errors: []*gqlerrors.Error{gqlerrors.ToError(err)}}
	}

	fragments := collectFragments(doc)
	ec := &errContext{}

	data, bubbled := executeSelectionSet(ctx, sch, root, rootTypeName, op.SelectionSet, fragments, vars, gqlerrors.Path{}, ec, opID)
	if bubbled {
		data = []byte("null")
	}

	if log != nil {
		log.Infow("operation executed", "operation_id", opID, "errors", len(ec.errs))
	}

	return &gqlerrors.Response{Data: json.RawMessage(data), Errors: ec.errs}
}

func rootForOperation(sch *schema.Schema, operation string) (interface{}, string, error) {
	var obj *schema.ObjectType
	switch operation {
	case "mutation":
		obj = sch.Mutation
	case "subscription":
		obj = sch.Subscription
	default:
		obj = sch.Query
	}
	if obj == nil {
		return nil, "", gqlerrors.NewTerminalOperationError("the schema defines no root type for this operation", nil)
	}
	return nil, obj.TypeName(), nil
}

// executeSelectionSet resolves every field of one selection set concurrently
// and returns the JSON object bytes for it, plus whether a non-null field
// within it came back null and must bubble to the caller (forcing this
// entire object null in turn). bubbled is local to this one selection set:
// once a field under this particular parent has bubbled, the object is
// going to be discarded regardless, so remaining siblings *of this same
// set* stop starting new resolver calls - but that never reaches outside
// this set's own path, so unrelated fields elsewhere in the operation (a
// sibling of the field that owns this set, or anywhere else) are never
// affected and always resolve normally.
func executeSelectionSet(ctx context.Context, sch *Schema, parent interface{}, parentType string, sels []ast.Selection, fragments map[string]*ast.FragmentDefinition, vars map[string]coerce.Presence, path gqlerrors.Path, ec *errContext, opID string) ([]byte, bool) {
	fields := flattenSelections(sels, fragments, nil)

	type slot struct {
		key    string
		value  []byte
		bubble bool
	}
	slots := make([]slot, len(fields))

	var bubbled atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFields)

	for i, f := range fields {
		i, f := i, f
		responseKey := f.Alias
		if responseKey == "" {
			responseKey = f.Name
		}
		fieldPath := append(append(gqlerrors.Path{}, path...), responseKey)

		g.Go(func() error {
			if bubbled.Load() {
				slots[i] = slot{key: responseKey, value: []byte("null")}
				return nil
			}
			value, bubble := executeField(gctx, sch, parent, parentType, f, fragments, vars, fieldPath, ec, opID)
			if bubble {
				bubbled.Store(true)
			}
			slots[i] = slot{key: responseKey, value: value, bubble: bubble}
			return nil
		})
	}
	_ = g.Wait()

	buf := []byte("{}")
	for _, s := range slots {
		if s.bubble {
			return nil, true
		}
		var err error
		buf, err = sjson.SetRawBytes(buf, s.key, s.value)
		if err != nil {
			ec.record(gqlerrors.NewOperationError("failed to assemble response: "+err.Error(), path, nil))
			return []byte("null"), false
		}
	}
	return buf, false
}

// executeField coerces one field's arguments, invokes its resolver, and
// either recurses into its own selection set or marshals a scalar leaf
// value. It returns (rawJSON, bubble) where bubble reports that this
// field's own non-null type was violated and the caller must null out its
// entire object in turn.
func executeField(ctx context.Context, sch *Schema, parent interface{}, parentType string, f ast.Field, fragments map[string]*ast.FragmentDefinition, vars map[string]coerce.Presence, path gqlerrors.Path, ec *errContext, opID string) ([]byte, bool) {
	loc := (*gqlerrors.Location)(nil)

	fieldDef, ok := sch.FieldDefinition(parentType, f.Name)
	if !ok {
		ec.record(gqlerrors.NewOperationError("field \""+f.Name+"\" is not defined on type \""+parentType+"\"", path, loc))
		return nullOrBubble(fieldDef)
	}

	args, err := coerce.CoerceArguments(f.Arguments, fieldDef.Arguments, vars, sch.Schema, path, loc)
	if err != nil {
		ec.record(err)
		return nullOrBubble(fieldDef)
	}

	resolver, asyncResolver, ok := sch.resolverFor(parentType, f.Name)
	if !ok {
		ec.record(gqlerrors.NewOperationError("no resolver registered for \""+parentType+"."+f.Name+"\"", path, loc))
		return nullOrBubble(fieldDef)
	}

	info := &ResolveInfo{FieldName: f.Name, Path: path, OperationID: opID, ReturnType: fieldDef.Type}
	argsMap := coerce.ToArgsMap(args)

	var value interface{}
	if resolver != nil {
		value, err = resolver(ctx, parent, argsMap, info)
	} else {
		res := <-asyncResolver(ctx, parent, argsMap, info)
		value, err = res.Value, res.Err
	}

	if err != nil {
		ec.record(gqlerrors.NewOperationError(err.Error(), path, loc))
		return nullOrBubble(fieldDef)
	}

	if value == nil {
		if isNonNullType(fieldDef.Type) {
			ec.record(gqlerrors.NewOperationError("Cannot return null for non-nullable field "+parentType+"."+f.Name+".", path, loc))
			return nil, true
		}
		return []byte("null"), false
	}

	if len(f.SelectionSet) > 0 {
		childType, ok := sch.ResolveType(fieldDef.Type)
		if !ok {
			ec.record(gqlerrors.NewOperationError("cannot resolve selection set type for \""+f.Name+"\"", path, loc))
			return nullOrBubble(fieldDef)
		}
		raw, bubble := executeSelectionSet(ctx, sch, value, childType.TypeName(), f.SelectionSet, fragments, vars, path, ec, opID)
		if bubble {
			return nullOrBubble(fieldDef)
		}
		return raw, false
	}

	raw, err := json.Marshal(value)
	if err != nil {
		ec.record(gqlerrors.NewOperationError("failed to encode field value: "+err.Error(), path, loc))
		return nullOrBubble(fieldDef)
	}
	return raw, false
}

// nullOrBubble is the shared "something went wrong resolving this field"
// tail: a nullable field simply renders as JSON null, a non-null field
// bubbles the null one level up per the non-null propagation rule.
func nullOrBubble(fieldDef *ast.FieldDefinition) ([]byte, bool) {
	if fieldDef != nil && isNonNullType(fieldDef.Type) {
		return nil, true
	}
	return []byte("null"), false
}

func isNonNullType(t ast.TypeRef) bool {
	if t == nil {
		return false
	}
	_, ok := t.(ast.NonNullType)
	return ok
}
