/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

// Package schema builds and holds the type system (C4): it registers the
// type, interface, union, enum, scalar, input-object and directive
// definitions of a lowered ast.Document, resolves named-type references
// lazily (a type may be used before it is declared), applies `extend`
// definitions, and exposes the per-field InputValueDefinition list that
// variable and argument coercion read from.
package schema

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/mazzi/graphlark/errorutil"
	"github.com/mazzi/graphlark/lang/graphql/ast"
	"github.com/mazzi/graphlark/lang/graphql/gqlerrors"
)

// Kind distinguishes the six named-type categories.
type Kind string

// The six kinds of named type a Schema can hold.
const (
	KindObject      Kind = "OBJECT"
	KindInterface   Kind = "INTERFACE"
	KindUnion       Kind = "UNION"
	KindEnum        Kind = "ENUM"
	KindScalar      Kind = "SCALAR"
	KindInputObject Kind = "INPUT_OBJECT"
)

// builtinScalars are always valid named-type references even when the
// document never defines them, per the Non-goal "no custom scalar registry
// beyond Int/Float/String/Boolean/ID".
var builtinScalars = map[string]bool{
	"Int": true, "Float": true, "String": true, "Boolean": true, "ID": true,
}

// NamedType is any of the six registrable type kinds.
type NamedType interface {
	TypeName() string
	Kind() Kind
}

// ObjectType wraps an object type definition, with its fields mutable so
// `extend type` can append to them after the base definition is registered.
type ObjectType struct {
	Def        ast.ObjectTypeDefinition
	Interfaces []string
	Fields     []ast.FieldDefinition
}

func (t *ObjectType) TypeName() string { return t.Def.Name }
func (t *ObjectType) Kind() Kind        { return KindObject }

// InterfaceType wraps an interface type definition.
type InterfaceType struct {
	Def    ast.InterfaceTypeDefinition
	Fields []ast.FieldDefinition
}

func (t *InterfaceType) TypeName() string { return t.Def.Name }
func (t *InterfaceType) Kind() Kind        { return KindInterface }

// UnionType wraps a union type definition.
type UnionType struct {
	Def     ast.UnionTypeDefinition
	Members []string
}

func (t *UnionType) TypeName() string { return t.Def.Name }
func (t *UnionType) Kind() Kind        { return KindUnion }

// EnumType wraps an enum type definition.
type EnumType struct {
	Def    ast.EnumTypeDefinition
	Values []ast.EnumValueDefinition
}

func (t *EnumType) TypeName() string { return t.Def.Name }
func (t *EnumType) Kind() Kind        { return KindEnum }

// ScalarType wraps a scalar type definition.
type ScalarType struct {
	Def ast.ScalarTypeDefinition
}

func (t *ScalarType) TypeName() string { return t.Def.Name }
func (t *ScalarType) Kind() Kind        { return KindScalar }

// HasValues always reports false: ScalarType carries no enumerable values.
func (t *ScalarType) HasValues() bool { return false }

// InputObjectType wraps an input-object type definition.
type InputObjectType struct {
	Def    ast.InputObjectTypeDefinition
	Fields []ast.InputValueDefinition
}

func (t *InputObjectType) TypeName() string { return t.Def.Name }
func (t *InputObjectType) Kind() Kind        { return KindInputObject }

// Schema is the immutable (after Build returns) type system value C4
// describes. Once built, concurrent readers need no synchronization; the
// internal cache uses its own lock because ResolveType may still be called
// from multiple goroutines during execution.
type Schema struct {
	Types      map[string]NamedType
	Directives map[string]*ast.DirectiveDefinition

	Query        *ObjectType
	Mutation     *ObjectType
	Subscription *ObjectType

	cacheMu sync.RWMutex
	cache   map[uint64]NamedType
}

// Build constructs a Schema from a lowered document. log may be nil; when
// present it receives an Info-level summary on success and a Warn for every
// SchemaError before it is returned to the caller.
func Build(doc *ast.Document, log *zap.SugaredLogger) (*Schema, error) {
	s := &Schema{
		Types:      make(map[string]NamedType),
		Directives: make(map[string]*ast.DirectiveDefinition),
		cache:      make(map[uint64]NamedType),
	}

	kindOf := make(map[string]Kind)
	var extensions []ast.TypeExtension
	var schemaDef *ast.SchemaDefinition

	warn := func(err error) error {
		if log != nil {
			if se, ok := gqlerrors.AsSchemaError(err); ok {
				log.Warnw("schema error", "type", se.TypeName, "detail", se.Detail)
			}
		}
		return err
	}

	register := func(kind Kind, name string, nt NamedType) error {
		if _, ok := kindOf[name]; ok {
			return warn(gqlerrors.NewSchemaError(name, "duplicate type name"))
		}
		kindOf[name] = kind
		s.Types[name] = nt
		return nil
	}

	for _, def := range doc.Definitions {
		switch d := def.(type) {
		case ast.SchemaDefinition:
			sd := d
			schemaDef = &sd

		case ast.ObjectTypeDefinition:
			if err := register(KindObject, d.Name, &ObjectType{Def: d, Interfaces: d.Interfaces, Fields: d.Fields}); err != nil {
				return nil, err
			}

		case ast.InterfaceTypeDefinition:
			if err := register(KindInterface, d.Name, &InterfaceType{Def: d, Fields: d.Fields}); err != nil {
				return nil, err
			}

		case ast.UnionTypeDefinition:
			if err := register(KindUnion, d.Name, &UnionType{Def: d, Members: d.Members}); err != nil {
				return nil, err
			}

		case ast.EnumTypeDefinition:
			if err := register(KindEnum, d.Name, &EnumType{Def: d, Values: d.Values}); err != nil {
				return nil, err
			}

		case ast.ScalarTypeDefinition:
			if err := register(KindScalar, d.Name, &ScalarType{Def: d}); err != nil {
				return nil, err
			}

		case ast.InputObjectTypeDefinition:
			if err := register(KindInputObject, d.Name, &InputObjectType{Def: d, Fields: d.Fields}); err != nil {
				return nil, err
			}

		case ast.DirectiveDefinition:
			if _, ok := s.Directives[d.Name]; ok {
				return nil, warn(gqlerrors.NewSchemaError(d.Name, "duplicate directive name"))
			}
			dd := d
			s.Directives[d.Name] = &dd

		case ast.TypeExtension:
			extensions = append(extensions, d)
		}
	}

	for _, ext := range extensions {
		if err := s.applyExtension(ext); err != nil {
			return nil, warn(err)
		}
	}

	if err := s.resolveRoots(schemaDef); err != nil {
		return nil, warn(err)
	}

	if err := s.validateReferences(); err != nil {
		if ce, ok := err.(*errorutil.CompositeError); ok && log != nil {
			for _, e := range ce.Errors {
				warn(e)
			}
		}
		return nil, err
	}

	if log != nil {
		counts := map[Kind]int{}
		for _, nt := range s.Types {
			counts[nt.Kind()]++
		}
		log.Infow("schema built",
			"objects", counts[KindObject],
			"interfaces", counts[KindInterface],
			"unions", counts[KindUnion],
			"enums", counts[KindEnum],
			"scalars", counts[KindScalar],
			"inputObjects", counts[KindInputObject],
			"directives", len(s.Directives),
		)
	}

	return s, nil
}

func (s *Schema) applyExtension(ext ast.TypeExtension) error {
	existing, ok := s.Types[ext.Name]
	if !ok {
		return gqlerrors.NewSchemaError(ext.Name, "extend of missing type")
	}

	switch t := existing.(type) {
	case *ObjectType:
		if ext.Kind != "type" {
			return gqlerrors.NewSchemaError(ext.Name, "extend kind mismatch")
		}
		t.Interfaces = append(t.Interfaces, ext.Interfaces...)
		t.Fields = append(t.Fields, ext.Fields...)
	case *InterfaceType:
		if ext.Kind != "interface" {
			return gqlerrors.NewSchemaError(ext.Name, "extend kind mismatch")
		}
		t.Fields = append(t.Fields, ext.Fields...)
	case *UnionType:
		if ext.Kind != "union" {
			return gqlerrors.NewSchemaError(ext.Name, "extend kind mismatch")
		}
		t.Members = append(t.Members, ext.Members...)
	case *EnumType:
		if ext.Kind != "enum" {
			return gqlerrors.NewSchemaError(ext.Name, "extend kind mismatch")
		}
		t.Values = append(t.Values, ext.Values...)
	case *InputObjectType:
		if ext.Kind != "input" {
			return gqlerrors.NewSchemaError(ext.Name, "extend kind mismatch")
		}
		t.Fields = append(t.Fields, ext.Fields...)
	case *ScalarType:
		if ext.Kind != "scalar" {
			return gqlerrors.NewSchemaError(ext.Name, "extend kind mismatch")
		}
	default:
		return gqlerrors.NewSchemaError(ext.Name, "extend of unrecognized type")
	}
	return nil
}

func (s *Schema) resolveRoots(def *ast.SchemaDefinition) error {
	queryName, mutationName, subName := "Query", "Mutation", "Subscription"
	if def != nil {
		if def.Query != "" {
			queryName = def.Query
		}
		if def.Mutation != "" {
			mutationName = def.Mutation
		}
		if def.Subscription != "" {
			subName = def.Subscription
		}
	}

	if t, ok := s.Types[queryName]; ok {
		if ot, ok := t.(*ObjectType); ok {
			s.Query = ot
		}
	}
	if t, ok := s.Types[mutationName]; ok {
		if ot, ok := t.(*ObjectType); ok {
			s.Mutation = ot
		}
	}
	if t, ok := s.Types[subName]; ok {
		if ot, ok := t.(*ObjectType); ok {
			s.Subscription = ot
		}
	}
	return nil
}

// validateReferences walks every field, argument, interface and union-member
// reference in the schema, reporting unknown named types and
// NonNull(NonNull(_)) shapes. It collects every SchemaError found (not just the
// first) into a single errorutil.CompositeError so a caller sees every
// unresolved reference in one pass rather than fixing and rebuilding once
// per error.
func (s *Schema) validateReferences() error {
	errs := errorutil.NewCompositeError()

	checkRef := func(owner string, t ast.TypeRef) {
		if err := ast.ValidateTypeRef(t); err != nil {
			errs.Add(gqlerrors.NewSchemaError(owner, err.Error()))
			return
		}
		name := innermostName(t)
		if name == "" || builtinScalars[name] {
			return
		}
		if _, ok := s.Types[name]; !ok {
			errs.Add(gqlerrors.NewSchemaError(owner, "unknown named type: "+name))
		}
	}

	checkArgs := func(owner string, args []ast.InputValueDefinition) {
		for _, a := range args {
			checkRef(owner+"."+a.Name, a.Type)
		}
	}

	for name, nt := range s.Types {
		switch t := nt.(type) {
		case *ObjectType:
			for _, iface := range t.Interfaces {
				if _, ok := s.Types[iface]; !ok {
					errs.Add(gqlerrors.NewSchemaError(name, "unknown interface: "+iface))
				}
			}
			for _, f := range t.Fields {
				checkRef(name+"."+f.Name, f.Type)
				checkArgs(name+"."+f.Name, f.Arguments)
			}
		case *InterfaceType:
			for _, f := range t.Fields {
				checkRef(name+"."+f.Name, f.Type)
				checkArgs(name+"."+f.Name, f.Arguments)
			}
		case *UnionType:
			for _, m := range t.Members {
				if _, ok := s.Types[m]; !ok {
					errs.Add(gqlerrors.NewSchemaError(name, "unknown union member: "+m))
				}
			}
		case *InputObjectType:
			for _, f := range t.Fields {
				checkRef(name+"."+f.Name, f.Type)
			}
		}
	}

	for name, d := range s.Directives {
		checkArgs("@"+name, d.Arguments)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func innermostName(t ast.TypeRef) string {
	for {
		switch v := t.(type) {
		case ast.NamedType:
			return v.Name
		case ast.ListType:
			t = v.Elem
		case ast.NonNullType:
			t = v.Inner
		default:
			return ""
		}
	}
}

// FieldDefinition returns the field definition for typeName.fieldName, the
// way C4 exposes the InputValueDefinition list coercion reads from.
func (s *Schema) FieldDefinition(typeName, fieldName string) (*ast.FieldDefinition, bool) {
	var fields []ast.FieldDefinition
	switch t := s.Types[typeName].(type) {
	case *ObjectType:
		fields = t.Fields
	case *InterfaceType:
		fields = t.Fields
	default:
		return nil, false
	}
	for i := range fields {
		if fields[i].Name == fieldName {
			return &fields[i], true
		}
	}
	return nil, false
}

// ResolveType resolves a TypeRef's innermost named type against the schema,
// memoized by an xxhash of its printed form so repeated coercion calls for
// the same field don't re-walk the reference chain.
func (s *Schema) ResolveType(t ast.TypeRef) (NamedType, bool) {
	key := xxhash.Sum64String(t.String())

	s.cacheMu.RLock()
	if nt, ok := s.cache[key]; ok {
		s.cacheMu.RUnlock()
		return nt, true
	}
	s.cacheMu.RUnlock()

	name := innermostName(t)
	nt, ok := s.Types[name]
	if !ok {
		return nil, false
	}

	s.cacheMu.Lock()
	s.cache[key] = nt
	s.cacheMu.Unlock()

	return nt, true
}
