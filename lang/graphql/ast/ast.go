/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

// Package ast holds the typed tree produced by lowering a parser.Node CST:
// type references, literal values, definitions and executable selections.
// Unlike the CST, the AST has no notion of source token kind - a name is a
// plain string regardless of which reserved word it was lexed from.
package ast

import (
	"strconv"
	"strings"
)

func itoa(i int64) string   { return strconv.FormatInt(i, 10) }
func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// TypeRef is a recursive type reference: Named, List or NonNull.
type TypeRef interface {
	typeRef()
	String() string
}

// NamedType is a reference to a type by name, resolved lazily by the schema.
type NamedType struct {
	Name string
}

func (NamedType) typeRef()        {}
func (t NamedType) String() string { return t.Name }

// ListType wraps an element type: `[Elem]`.
type ListType struct {
	Elem TypeRef
}

func (ListType) typeRef() {}
func (t ListType) String() string {
	return "[" + t.Elem.String() + "]"
}

// NonNullType wraps a Named or List type: `Inner!`. It must never directly
// wrap another NonNullType.
type NonNullType struct {
	Inner TypeRef
}

func (NonNullType) typeRef() {}
func (t NonNullType) String() string {
	return t.Inner.String() + "!"
}

// Value is the nine-variant literal value carried by the AST.
type Value interface {
	value()
}

// IntValue is a SIGNED_INT literal, already range-checked against int64.
type IntValue struct{ Value int64 }

// FloatValue is a SIGNED_FLOAT literal.
type FloatValue struct{ Value float64 }

// StringValue is a decoded STRING or LONG_STRING literal. Block records
// whether it came from a triple-quoted block string (informational only;
// coercion treats both the same).
type StringValue struct {
	Value string
	Block bool
}

// BoolValue is `true` or `false`.
type BoolValue struct{ Value bool }

// NullValue is the literal `null`.
type NullValue struct{}

// EnumValue is a bare name in value position.
type EnumValue struct{ Value string }

// ListValue is `[ value, ... ]`.
type ListValue struct{ Values []Value }

// ObjectValue is `{ name: value, ... }`.
type ObjectValue struct{ Fields []ObjectField }

// ObjectField is one `name: value` pair of an ObjectValue.
type ObjectField struct {
	Name  string
	Value Value
}

// VariableValue is a `$name` reference appearing in value position.
type VariableValue struct{ Name string }

func (IntValue) value()      {}
func (FloatValue) value()    {}
func (StringValue) value()   {}
func (BoolValue) value()     {}
func (NullValue) value()     {}
func (EnumValue) value()     {}
func (ListValue) value()     {}
func (ObjectValue) value()   {}
func (VariableValue) value() {}

// Directive is preserved verbatim wherever it is attached; the core does not
// interpret directives beyond recognizing their placement in the grammar.
type Directive struct {
	Name      string
	Arguments []Argument
}

// Argument is one `name: value` pair inside an argument list or directive.
type Argument struct {
	Name  string
	Value Value
}

// InputValueDefinition describes one argument or input-object field:
// `name: Type = default @directives`.
type InputValueDefinition struct {
	Description string
	Name        string
	Type        TypeRef
	Default     Value // nil if no default was declared
	HasDefault  bool
	Directives  []Directive
}

// VariableDefinition describes one operation variable: `$name: Type = default`.
// Line/Column locate the variable's own '$' token, which is where a
// coercion error against this variable is reported (not the operation's
// leading keyword).
type VariableDefinition struct {
	Name       string
	Type       TypeRef
	Default    Value
	HasDefault bool
	Directives []Directive
	Line       int
	Column     int
}

// Definition is one top-level document member.
type Definition interface {
	definition()
}

// SchemaDefinition names the root operation types.
type SchemaDefinition struct {
	Directives   []Directive
	Query        string
	Mutation     string
	Subscription string
}

// FieldDefinition is one field of an object or interface type.
type FieldDefinition struct {
	Description string
	Name        string
	Arguments   []InputValueDefinition
	Type        TypeRef
	Directives  []Directive
}

// ObjectTypeDefinition is a `type Name implements I & J { ... }` definition.
type ObjectTypeDefinition struct {
	Description string
	Name        string
	Interfaces  []string
	Directives  []Directive
	Fields      []FieldDefinition
}

// InterfaceTypeDefinition is an `interface Name { ... }` definition.
type InterfaceTypeDefinition struct {
	Description string
	Name        string
	Directives  []Directive
	Fields      []FieldDefinition
}

// UnionTypeDefinition is a `union Name = A | B` definition.
type UnionTypeDefinition struct {
	Description string
	Name        string
	Directives  []Directive
	Members     []string
}

// EnumValueDefinition is one member of an enum type.
type EnumValueDefinition struct {
	Description string
	Name        string
	Directives  []Directive
}

// EnumTypeDefinition is an `enum Name { ... }` definition.
type EnumTypeDefinition struct {
	Description string
	Name        string
	Directives  []Directive
	Values      []EnumValueDefinition
}

// ScalarTypeDefinition is a `scalar Name` definition.
type ScalarTypeDefinition struct {
	Description string
	Name        string
	Directives  []Directive
}

// InputObjectTypeDefinition is an `input Name { ... }` definition.
type InputObjectTypeDefinition struct {
	Description string
	Name        string
	Directives  []Directive
	Fields      []InputValueDefinition
}

// DirectiveDefinition is a `directive @name(args) on LOC | LOC` definition.
type DirectiveDefinition struct {
	Description string
	Name        string
	Arguments   []InputValueDefinition
	Locations   []string
}

// TypeExtension wraps one of the six `extend <kind> Name ...` extensions.
// Kind is the underlying type definition's keyword ("scalar", "type",
// "interface", "union", "enum", "input").
type TypeExtension struct {
	Kind       string
	Name       string
	Interfaces []string
	Directives []Directive
	Fields     []FieldDefinition
	Members    []string
	Values     []EnumValueDefinition
}

// Selection is one member of a SelectionSet: Field, FragmentSpread or
// InlineFragment.
type Selection interface {
	selection()
}

// Field is a single field selection, with optional alias/arguments/
// sub-selection.
type Field struct {
	Alias        string
	Name         string
	Arguments    []Argument
	Directives   []Directive
	SelectionSet []Selection
}

// FragmentSpread is `...Name @directives`.
type FragmentSpread struct {
	Name       string
	Directives []Directive
}

// InlineFragment is `... on Type @directives { ... }`. TypeCondition is
// empty when the fragment applies to the parent type untyped.
type InlineFragment struct {
	TypeCondition string
	Directives    []Directive
	SelectionSet  []Selection
}

// FragmentDefinition is a named `fragment Name on Type { ... }`.
type FragmentDefinition struct {
	Name          string
	TypeCondition string
	Directives    []Directive
	SelectionSet  []Selection
}

// OperationDefinition is a query/mutation/subscription, possibly anonymous.
type OperationDefinition struct {
	Operation           string // "query", "mutation" or "subscription"
	Name                string
	VariableDefinitions []VariableDefinition
	Directives          []Directive
	SelectionSet        []Selection
}

func (SchemaDefinition) definition()          {}
func (ObjectTypeDefinition) definition()      {}
func (InterfaceTypeDefinition) definition()   {}
func (UnionTypeDefinition) definition()       {}
func (EnumTypeDefinition) definition()        {}
func (ScalarTypeDefinition) definition()      {}
func (InputObjectTypeDefinition) definition() {}
func (DirectiveDefinition) definition()       {}
func (TypeExtension) definition()             {}
func (OperationDefinition) definition()       {}
func (FragmentDefinition) definition()        {}

func (Field) selection()          {}
func (FragmentSpread) selection() {}
func (InlineFragment) selection() {}

// Document is the lowered root: an ordered list of definitions exactly as
// they appeared in source.
type Document struct {
	Definitions []Definition
}

// Operations returns the document's OperationDefinitions in source order.
func (d *Document) Operations() []*OperationDefinition {
	var ops []*OperationDefinition
	for _, def := range d.Definitions {
		if op, ok := def.(OperationDefinition); ok {
			o := op
			ops = append(ops, &o)
		}
	}
	return ops
}

// OperationByName returns the named operation, or the sole operation when
// name is empty and the document declares exactly one. Mirrors the
// "anonymous-shorthand" selection rule of the execution pipeline.
func (d *Document) OperationByName(name string) *OperationDefinition {
	ops := d.Operations()
	if name == "" {
		if len(ops) == 1 {
			return ops[0]
		}
		for _, op := range ops {
			if op.Name == "" {
				return op
			}
		}
		return nil
	}
	for _, op := range ops {
		if op.Name == name {
			return op
		}
	}
	return nil
}

// isNonNullOfNonNull reports whether t is the invalid NonNull(NonNull(_))
// shape; schema build rejects types matching this.
func isNonNullOfNonNull(t TypeRef) bool {
	nn, ok := t.(NonNullType)
	if !ok {
		return false
	}
	_, inner := nn.Inner.(NonNullType)
	return inner
}

// ValidateTypeRef walks t and reports the first NonNull(NonNull(_)) shape
// found, per the type system's invariant.
func ValidateTypeRef(t TypeRef) error {
	if isNonNullOfNonNull(t) {
		return &InvalidTypeRefError{TypeRef: t}
	}
	switch v := t.(type) {
	case ListType:
		return ValidateTypeRef(v.Elem)
	case NonNullType:
		return ValidateTypeRef(v.Inner)
	}
	return nil
}

// InvalidTypeRefError reports a NonNull directly wrapping another NonNull.
type InvalidTypeRefError struct {
	TypeRef TypeRef
}

func (e *InvalidTypeRefError) Error() string {
	return "invalid type reference: " + e.TypeRef.String() + " (non-null cannot wrap non-null)"
}

// PrintValue renders a Value the way it would appear in GraphQL source,
// used by coercion error messages that embed a default value.
func PrintValue(v Value) string {
	switch val := v.(type) {
	case IntValue:
		return itoa(val.Value)
	case FloatValue:
		return ftoa(val.Value)
	case StringValue:
		return `"` + val.Value + `"`
	case BoolValue:
		if val.Value {
			return "true"
		}
		return "false"
	case NullValue:
		return "null"
	case EnumValue:
		return val.Value
	case VariableValue:
		return "$" + val.Name
	case ListValue:
		parts := make([]string, len(val.Values))
		for i, e := range val.Values {
			parts[i] = PrintValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ObjectValue:
		parts := make([]string, len(val.Fields))
		for i, f := range val.Fields {
			parts[i] = f.Name + ": " + PrintValue(f.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}
