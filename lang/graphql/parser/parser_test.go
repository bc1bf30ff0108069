/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package parser

import (
	"testing"
)

func TestParseSimpleQuery(t *testing.T) {
	doc, err := Parse("test", "{ intField }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Rule != RuleDocument {
		t.Fatalf("root rule = %q, want %q", doc.Rule, RuleDocument)
	}
	if len(doc.Children) != 1 {
		t.Fatalf("got %d top-level definitions, want 1", len(doc.Children))
	}
}

func TestParseOperationWithVariables(t *testing.T) {
	doc, err := Parse("test", `query($p: Int = 30) { intField(param: $p) }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	op := doc.Children[0]
	varDefs := op.Child(RuleVariableDefinitions)
	if varDefs == nil {
		t.Fatal("expected variable_definitions node")
	}
	def := varDefs.ChildrenOf(RuleVariableDefinition)
	if len(def) != 1 {
		t.Fatalf("got %d variable definitions, want 1", len(def))
	}
	v := def[0].Child(RuleVariable)
	if v == nil || len(v.Children) != 2 {
		t.Fatalf("variable node malformed: %v", v)
	}
	if v.Children[0].Tok.Kind != TokenDollar {
		t.Errorf("first child of variable node should be the '$' token, got %v", v.Children[0])
	}
	if v.Children[1].FirstToken().Lexeme != "p" {
		t.Errorf("variable name = %q, want %q", v.Children[1].FirstToken().Lexeme, "p")
	}
}

func TestParseFieldAlias(t *testing.T) {
	doc, err := Parse("test", "{ renamed: intField }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	field := doc.Children[0].Child(RuleSelectionSet).Child(RuleField)
	alias := field.Child(RuleAlias)
	if alias == nil {
		t.Fatal("expected an alias node")
	}
}

func TestParseScalarTypeDefinitionAtEOF(t *testing.T) {
	// A bare scalar definition with no trailing newline must still parse
	// successfully: end-of-input is a valid definition terminator.
	if _, err := Parse("test", "scalar Date"); err != nil {
		t.Fatalf("unexpected error parsing bare scalar at EOF: %v", err)
	}
}

func TestParseObjectTypeWithDescriptionAndImplements(t *testing.T) {
	src := `"A greeting" type Greeting implements Named & Aged {
		name: String!
		age: Int
	}`
	doc, err := Parse("test", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := doc.Children[0].Child(RuleTypeDefinition).Child(RuleObjectTypeDefinition)
	if def.Child(RuleDescription) == nil {
		t.Error("expected a description node")
	}
	if def.Child(RuleImplementsInterfaces) == nil {
		t.Error("expected an implements_interfaces node")
	}
}

func TestParseRejectsDoubleNonNull(t *testing.T) {
	_, err := Parse("test", "type T { f: Int!! }")
	if err == nil {
		t.Fatal("expected a syntax error for Int!!")
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("got error of type %T, want *SyntaxError", err)
	}
	if se.Kind != UnexpectedToken {
		t.Errorf("error kind = %v, want UnexpectedToken", se.Kind)
	}
}

func TestParseRejectsEmptyArguments(t *testing.T) {
	_, err := Parse("test", "{ field() }")
	if err == nil {
		t.Fatal("expected a syntax error for an empty argument list")
	}
}

func TestParseRejectsEmptySelectionSet(t *testing.T) {
	_, err := Parse("test", "{ }")
	if err == nil {
		t.Fatal("expected a syntax error for an empty selection set")
	}
}

func TestParseUnexpectedCharacterIsSyntaxError(t *testing.T) {
	_, err := Parse("test", "{ field `bad` }")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("got error of type %T, want *SyntaxError", err)
	}
	if se.Kind != UnexpectedCharacters {
		t.Errorf("error kind = %v, want UnexpectedCharacters", se.Kind)
	}
}

func TestParseFragmentDefinitionAndSpread(t *testing.T) {
	src := `
	{ ...parts }
	fragment parts on Query { intField }
	`
	doc, err := Parse("test", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Children) != 2 {
		t.Fatalf("got %d definitions, want 2", len(doc.Children))
	}
}
