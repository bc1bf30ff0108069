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
	"fmt"
	"strconv"
	"strings"

	"github.com/mazzi/graphlark/errorutil"
	"github.com/mazzi/graphlark/lang/graphql/parser"
	"github.com/mazzi/graphlark/stringutil"
)

// Lower converts a document-rooted CST, as produced by parser.Parse, into a
// Document. The CST must already be a valid tree (Lower panics on shapes
// the grammar cannot produce, but returns an error for semantic problems
// such as a malformed literal).
func Lower(doc *parser.Node) (*Document, error) {
	if doc.Rule != parser.RuleDocument {
		return nil, fmt.Errorf("ast: expected document root, got %q", doc.Rule)
	}

	out := &Document{}
	for _, child := range doc.Children {
		def, err := lowerTopLevel(child)
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, def)
	}
	return out, nil
}

func lowerTopLevel(n *parser.Node) (Definition, error) {
	switch n.Rule {
	case parser.RuleTypeSystemDefinition:
		return lowerTypeSystemInner(n.Children[0])
	case parser.RuleOperationDefinition:
		return lowerOperationDefinition(n)
	case parser.RuleFragmentDefinition:
		return lowerFragmentDefinition(n)
	}
	return nil, fmt.Errorf("ast: unexpected top-level rule %q", n.Rule)
}

func lowerTypeSystemInner(n *parser.Node) (Definition, error) {
	switch n.Rule {
	case parser.RuleSchemaDefinition:
		return lowerSchemaDefinition(n)
	case parser.RuleTypeDefinition:
		return lowerTypeDefinitionInner(n.Children[0])
	case parser.RuleDirectiveDefinition:
		return lowerDirectiveDefinition(n)
	case parser.RuleTypeExtension:
		return lowerTypeExtension(n.Children[0])
	}
	return nil, fmt.Errorf("ast: unexpected type system rule %q", n.Rule)
}

// -----------------------------------------------------------------------
// small shared helpers
// -----------------------------------------------------------------------

// nodeName reads the IDENT/keyword lexeme out of a `name` CST node.
func nodeName(n *parser.Node) string {
	if n == nil {
		return ""
	}
	if tok := n.FirstToken(); tok != nil {
		return tok.Lexeme
	}
	return ""
}

// leafLexeme reads the lexeme of a node whose single child is a leaf token
// directly (alias, fragment_name).
func leafLexeme(n *parser.Node) string {
	if n == nil || len(n.Children) == 0 || n.Children[0].Tok == nil {
		return ""
	}
	return n.Children[0].Tok.Lexeme
}

func description(n *parser.Node) (string, error) {
	d := n.Child(parser.RuleDescription)
	if d == nil {
		return "", nil
	}
	return decodeString(d.Children[0].Tok)
}

func lowerDirectives(n *parser.Node) ([]Directive, error) {
	dirsNode := n.Child(parser.RuleDirectives)
	if dirsNode == nil {
		return nil, nil
	}
	var out []Directive
	for _, d := range dirsNode.ChildrenOf(parser.RuleDirective) {
		dir, err := lowerDirective(d)
		if err != nil {
			return nil, err
		}
		out = append(out, dir)
	}
	return out, nil
}

func lowerDirective(n *parser.Node) (Directive, error) {
	args, err := lowerArguments(n)
	if err != nil {
		return Directive{}, err
	}
	return Directive{Name: nodeName(n.Child(parser.RuleName)), Arguments: args}, nil
}

func lowerArguments(n *parser.Node) ([]Argument, error) {
	argsNode := n.Child(parser.RuleArguments)
	if argsNode == nil {
		return nil, nil
	}
	var out []Argument
	for _, a := range argsNode.ChildrenOf(parser.RuleArgument) {
		val, err := lowerValueNode(a.Child(parser.RuleValue))
		if err != nil {
			return nil, err
		}
		out = append(out, Argument{Name: nodeName(a.Child(parser.RuleName)), Value: val})
	}
	return out, nil
}

func lowerDefaultValue(n *parser.Node) (Value, bool, error) {
	dv := n.Child(parser.RuleDefaultValue)
	if dv == nil {
		return nil, false, nil
	}
	v, err := lowerValueNode(dv.Children[0])
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// -----------------------------------------------------------------------
// types and values
// -----------------------------------------------------------------------

func lowerTypeNode(n *parser.Node) (TypeRef, error) {
	if n == nil {
		return nil, fmt.Errorf("ast: missing type node")
	}
	switch n.Rule {
	case parser.RuleType:
		errorutil.AssertTrue(len(n.Children) == 1, "ast: type node must wrap exactly one child")
		return lowerTypeNode(n.Children[0])
	case parser.RuleNamedType:
		return NamedType{Name: nodeName(n.Children[0])}, nil
	case parser.RuleListType:
		elem, err := lowerTypeNode(n.Children[0])
		if err != nil {
			return nil, err
		}
		return ListType{Elem: elem}, nil
	case parser.RuleNonNullType:
		inner, err := lowerTypeNode(n.Children[0])
		if err != nil {
			return nil, err
		}
		return NonNullType{Inner: inner}, nil
	}
	return nil, fmt.Errorf("ast: unexpected type rule %q", n.Rule)
}

func lowerValueNode(n *parser.Node) (Value, error) {
	if n == nil {
		return nil, fmt.Errorf("ast: missing value node")
	}
	switch n.Rule {
	case parser.RuleValue:
		return lowerValueNode(n.Children[0])

	case parser.RuleIntValue:
		tok := n.Children[0].Tok
		i, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ast: bad int literal %q: %w", tok.Lexeme, err)
		}
		return IntValue{Value: i}, nil

	case parser.RuleFloatValue:
		tok := n.Children[0].Tok
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, fmt.Errorf("ast: bad float literal %q: %w", tok.Lexeme, err)
		}
		return FloatValue{Value: f}, nil

	case parser.RuleStringValue:
		tok := n.Children[0].Tok
		s, err := decodeString(tok)
		if err != nil {
			return nil, err
		}
		return StringValue{Value: s, Block: tok.Kind == parser.TokenLongString}, nil

	case parser.RuleTrueValue:
		return BoolValue{Value: true}, nil

	case parser.RuleFalseValue:
		return BoolValue{Value: false}, nil

	case parser.RuleNullValue:
		return NullValue{}, nil

	case parser.RuleEnumValue:
		return EnumValue{Value: nodeName(n.Children[0])}, nil

	case parser.RuleListValue:
		var vals []Value
		for _, v := range n.ChildrenOf(parser.RuleValue) {
			lv, err := lowerValueNode(v)
			if err != nil {
				return nil, err
			}
			vals = append(vals, lv)
		}
		return ListValue{Values: vals}, nil

	case parser.RuleObjectValue:
		var fields []ObjectField
		for _, f := range n.ChildrenOf(parser.RuleObjectField) {
			val, err := lowerValueNode(f.Child(parser.RuleValue))
			if err != nil {
				return nil, err
			}
			fields = append(fields, ObjectField{Name: nodeName(f.Child(parser.RuleName)), Value: val})
		}
		return ObjectValue{Fields: fields}, nil

	case parser.RuleVariable:
		return VariableValue{Name: nodeName(n.Children[1])}, nil
	}

	return nil, fmt.Errorf("ast: unexpected value rule %q", n.Rule)
}

// decodeString turns a raw STRING/LONG_STRING lexeme (quotes included) into
// its semantic value: escapes interpreted for short strings, common
// indentation and leading/trailing blank lines stripped for block strings.
func decodeString(tok *parser.Token) (string, error) {
	switch tok.Kind {
	case parser.TokenLongString:
		body := tok.Lexeme[3 : len(tok.Lexeme)-3]
		body = strings.ReplaceAll(body, `\"""`, `"""`)
		body = stringutil.ToUnixNewlines(body)
		body = stringutil.StripUniformIndentation(body)
		body = stringutil.TrimBlankLines(body)
		return body, nil
	case parser.TokenString:
		return unescapeShortString(tok.Lexeme[1 : len(tok.Lexeme)-1])
	}
	return "", fmt.Errorf("ast: not a string token: %s", tok.Kind)
}

func unescapeShortString(s string) (string, error) {
	var buf strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			buf.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("ast: trailing backslash in string literal")
		}
		switch s[i+1] {
		case '"':
			buf.WriteByte('"')
			i += 2
		case '\\':
			buf.WriteByte('\\')
			i += 2
		case '/':
			buf.WriteByte('/')
			i += 2
		case 'b':
			buf.WriteByte('\b')
			i += 2
		case 'f':
			buf.WriteByte('\f')
			i += 2
		case 'n':
			buf.WriteByte('\n')
			i += 2
		case 'r':
			buf.WriteByte('\r')
			i += 2
		case 't':
			buf.WriteByte('\t')
			i += 2
		case 'u':
			if i+6 > len(s) {
				return "", fmt.Errorf("ast: truncated \\u escape")
			}
			v, err := strconv.ParseUint(s[i+2:i+6], 16, 32)
			if err != nil {
				return "", fmt.Errorf("ast: bad \\u escape %q: %w", s[i+2:i+6], err)
			}
			buf.WriteRune(rune(v))
			i += 6
		default:
			return "", fmt.Errorf("ast: bad escape sequence \\%c", s[i+1])
		}
	}
	return buf.String(), nil
}

// -----------------------------------------------------------------------
// type system definitions
// -----------------------------------------------------------------------

func lowerSchemaDefinition(n *parser.Node) (Definition, error) {
	dirs, err := lowerDirectives(n)
	if err != nil {
		return nil, err
	}
	out := SchemaDefinition{Directives: dirs}
	for _, op := range n.ChildrenOf(parser.RuleQueryOperationTypeDefinition) {
		out.Query = nodeName(op.Children[len(op.Children)-1].Children[0])
	}
	for _, op := range n.ChildrenOf(parser.RuleMutationOperationTypeDef) {
		out.Mutation = nodeName(op.Children[len(op.Children)-1].Children[0])
	}
	for _, op := range n.ChildrenOf(parser.RuleSubscriptionOperationTypeDef) {
		out.Subscription = nodeName(op.Children[len(op.Children)-1].Children[0])
	}
	return out, nil
}

func lowerTypeDefinitionInner(n *parser.Node) (Definition, error) {
	switch n.Rule {
	case parser.RuleScalarTypeDefinition:
		return lowerScalarTypeDefinition(n)
	case parser.RuleObjectTypeDefinition:
		return lowerObjectTypeDefinition(n)
	case parser.RuleInterfaceTypeDefinition:
		return lowerInterfaceTypeDefinition(n)
	case parser.RuleUnionTypeDefinition:
		return lowerUnionTypeDefinition(n)
	case parser.RuleEnumTypeDefinition:
		return lowerEnumTypeDefinition(n)
	case parser.RuleInputObjectTypeDefinition:
		return lowerInputObjectTypeDefinition(n)
	}
	return nil, fmt.Errorf("ast: unexpected type definition rule %q", n.Rule)
}

func lowerScalarTypeDefinition(n *parser.Node) (Definition, error) {
	desc, err := description(n)
	if err != nil {
		return nil, err
	}
	dirs, err := lowerDirectives(n)
	if err != nil {
		return nil, err
	}
	return ScalarTypeDefinition{
		Description: desc,
		Name:        nodeName(n.Child(parser.RuleName)),
		Directives:  dirs,
	}, nil
}

func interfaceNames(n *parser.Node) []string {
	impls := n.Child(parser.RuleImplementsInterfaces)
	if impls == nil {
		return nil
	}
	var out []string
	for _, nt := range impls.ChildrenOf(parser.RuleNamedType) {
		out = append(out, nodeName(nt.Children[0]))
	}
	return out
}

func fieldDefinitions(n *parser.Node) ([]FieldDefinition, error) {
	fieldsNode := n.Child(parser.RuleFieldsDefinition)
	if fieldsNode == nil {
		return nil, nil
	}
	var out []FieldDefinition
	for _, fd := range fieldsNode.ChildrenOf(parser.RuleFieldDefinition) {
		f, err := lowerFieldDefinition(fd)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func lowerFieldDefinition(n *parser.Node) (FieldDefinition, error) {
	desc, err := description(n)
	if err != nil {
		return FieldDefinition{}, err
	}
	typ, err := lowerTypeNode(n.Child(parser.RuleType))
	if err != nil {
		return FieldDefinition{}, err
	}
	args, err := inputValueDefinitions(n.Child(parser.RuleArgumentsDefinition))
	if err != nil {
		return FieldDefinition{}, err
	}
	dirs, err := lowerDirectives(n)
	if err != nil {
		return FieldDefinition{}, err
	}
	return FieldDefinition{
		Description: desc,
		Name:        nodeName(n.Child(parser.RuleName)),
		Arguments:   args,
		Type:        typ,
		Directives:  dirs,
	}, nil
}

func inputValueDefinitions(n *parser.Node) ([]InputValueDefinition, error) {
	if n == nil {
		return nil, nil
	}
	var out []InputValueDefinition
	for _, ivd := range n.ChildrenOf(parser.RuleInputValueDefinition) {
		v, err := lowerInputValueDefinition(ivd)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func lowerInputValueDefinition(n *parser.Node) (InputValueDefinition, error) {
	desc, err := description(n)
	if err != nil {
		return InputValueDefinition{}, err
	}
	typ, err := lowerTypeNode(n.Child(parser.RuleType))
	if err != nil {
		return InputValueDefinition{}, err
	}
	def, hasDef, err := lowerDefaultValue(n)
	if err != nil {
		return InputValueDefinition{}, err
	}
	dirs, err := lowerDirectives(n)
	if err != nil {
		return InputValueDefinition{}, err
	}
	return InputValueDefinition{
		Description: desc,
		Name:        nodeName(n.Child(parser.RuleName)),
		Type:        typ,
		Default:     def,
		HasDefault:  hasDef,
		Directives:  dirs,
	}, nil
}

func lowerObjectTypeDefinition(n *parser.Node) (Definition, error) {
	desc, err := description(n)
	if err != nil {
		return nil, err
	}
	dirs, err := lowerDirectives(n)
	if err != nil {
		return nil, err
	}
	fields, err := fieldDefinitions(n)
	if err != nil {
		return nil, err
	}
	return ObjectTypeDefinition{
		Description: desc,
		Name:        nodeName(n.Child(parser.RuleName)),
		Interfaces:  interfaceNames(n),
		Directives:  dirs,
		Fields:      fields,
	}, nil
}

func lowerInterfaceTypeDefinition(n *parser.Node) (Definition, error) {
	desc, err := description(n)
	if err != nil {
		return nil, err
	}
	dirs, err := lowerDirectives(n)
	if err != nil {
		return nil, err
	}
	fields, err := fieldDefinitions(n)
	if err != nil {
		return nil, err
	}
	return InterfaceTypeDefinition{
		Description: desc,
		Name:        nodeName(n.Child(parser.RuleName)),
		Directives:  dirs,
		Fields:      fields,
	}, nil
}

func lowerUnionTypeDefinition(n *parser.Node) (Definition, error) {
	desc, err := description(n)
	if err != nil {
		return nil, err
	}
	dirs, err := lowerDirectives(n)
	if err != nil {
		return nil, err
	}
	return UnionTypeDefinition{
		Description: desc,
		Name:        nodeName(n.Child(parser.RuleName)),
		Directives:  dirs,
		Members:     unionMembers(n),
	}, nil
}

func unionMembers(n *parser.Node) []string {
	members := n.Child(parser.RuleUnionMemberTypes)
	if members == nil {
		return nil
	}
	var out []string
	for _, nt := range members.ChildrenOf(parser.RuleNamedType) {
		out = append(out, nodeName(nt.Children[0]))
	}
	return out
}

func lowerEnumTypeDefinition(n *parser.Node) (Definition, error) {
	desc, err := description(n)
	if err != nil {
		return nil, err
	}
	dirs, err := lowerDirectives(n)
	if err != nil {
		return nil, err
	}
	values, err := enumValueDefinitions(n)
	if err != nil {
		return nil, err
	}
	return EnumTypeDefinition{
		Description: desc,
		Name:        nodeName(n.Child(parser.RuleName)),
		Directives:  dirs,
		Values:      values,
	}, nil
}

func enumValueDefinitions(n *parser.Node) ([]EnumValueDefinition, error) {
	valuesNode := n.Child(parser.RuleEnumValuesDefinition)
	if valuesNode == nil {
		return nil, nil
	}
	var out []EnumValueDefinition
	for _, evd := range valuesNode.ChildrenOf(parser.RuleEnumValueDefinition) {
		desc, err := description(evd)
		if err != nil {
			return nil, err
		}
		dirs, err := lowerDirectives(evd)
		if err != nil {
			return nil, err
		}
		enumVal := evd.Child(parser.RuleEnumValue)
		out = append(out, EnumValueDefinition{
			Description: desc,
			Name:        nodeName(enumVal.Children[0]),
			Directives:  dirs,
		})
	}
	return out, nil
}

func lowerInputObjectTypeDefinition(n *parser.Node) (Definition, error) {
	desc, err := description(n)
	if err != nil {
		return nil, err
	}
	dirs, err := lowerDirectives(n)
	if err != nil {
		return nil, err
	}
	fields, err := inputValueDefinitions(n.Child(parser.RuleInputFieldsDefinition))
	if err != nil {
		return nil, err
	}
	return InputObjectTypeDefinition{
		Description: desc,
		Name:        nodeName(n.Child(parser.RuleName)),
		Directives:  dirs,
		Fields:      fields,
	}, nil
}

func lowerDirectiveDefinition(n *parser.Node) (Definition, error) {
	desc, err := description(n)
	if err != nil {
		return nil, err
	}
	args, err := inputValueDefinitions(n.Child(parser.RuleArgumentsDefinition))
	if err != nil {
		return nil, err
	}
	var locs []string
	locsNode := n.Child(parser.RuleDirectiveLocations)
	if locsNode != nil {
		for _, loc := range locsNode.ChildrenOf(parser.RuleDirectiveLocation) {
			locs = append(locs, nodeName(loc.Children[0]))
		}
	}
	return DirectiveDefinition{
		Description: desc,
		Name:        nodeName(n.Child(parser.RuleName)),
		Arguments:   args,
		Locations:   locs,
	}, nil
}

// -----------------------------------------------------------------------
// type extensions
// -----------------------------------------------------------------------

func lowerTypeExtension(n *parser.Node) (Definition, error) {
	dirs, err := lowerDirectives(n)
	if err != nil {
		return nil, err
	}

	switch n.Rule {
	case parser.RuleScalarTypeExtension:
		return TypeExtension{Kind: "scalar", Name: nodeName(n.Child(parser.RuleName)), Directives: dirs}, nil

	case parser.RuleObjectTypeExtension:
		fields, err := fieldDefinitions(n)
		if err != nil {
			return nil, err
		}
		return TypeExtension{
			Kind:       "type",
			Name:       nodeName(n.Child(parser.RuleName)),
			Interfaces: interfaceNames(n),
			Directives: dirs,
			Fields:     fields,
		}, nil

	case parser.RuleInterfaceTypeExtension:
		fields, err := fieldDefinitions(n)
		if err != nil {
			return nil, err
		}
		return TypeExtension{
			Kind:       "interface",
			Name:       nodeName(n.Child(parser.RuleName)),
			Directives: dirs,
			Fields:     fields,
		}, nil

	case parser.RuleUnionTypeExtension:
		return TypeExtension{
			Kind:       "union",
			Name:       nodeName(n.Child(parser.RuleName)),
			Directives: dirs,
			Members:    unionMembers(n),
		}, nil

	case parser.RuleEnumTypeExtension:
		values, err := enumValueDefinitions(n)
		if err != nil {
			return nil, err
		}
		return TypeExtension{
			Kind:       "enum",
			Name:       nodeName(n.Child(parser.RuleName)),
			Directives: dirs,
			Values:     values,
		}, nil

	case parser.RuleInputObjectTypeExtension:
		fields, err := inputValueDefinitions(n.Child(parser.RuleInputFieldsDefinition))
		if err != nil {
			return nil, err
		}
		return TypeExtension{
			Kind:       "input",
			Name:       nodeName(n.Child(parser.RuleName)),
			Directives: dirs,
			Fields:     fields,
		}, nil
	}

	return nil, fmt.Errorf("ast: unexpected type extension rule %q", n.Rule)
}

// -----------------------------------------------------------------------
// executable documents
// -----------------------------------------------------------------------

func lowerOperationDefinition(n *parser.Node) (Definition, error) {
	op := "query"
	for _, c := range n.Children {
		if c.IsLeaf() {
			switch c.Tok.Kind {
			case parser.TokenQuery:
				op = "query"
			case parser.TokenMutation:
				op = "mutation"
			case parser.TokenSubscription:
				op = "subscription"
			}
		}
	}

	var varDefs []VariableDefinition
	if vds := n.Child(parser.RuleVariableDefinitions); vds != nil {
		for _, vd := range vds.ChildrenOf(parser.RuleVariableDefinition) {
			v, err := lowerVariableDefinition(vd)
			if err != nil {
				return nil, err
			}
			varDefs = append(varDefs, v)
		}
	}

	dirs, err := lowerDirectives(n)
	if err != nil {
		return nil, err
	}

	sels, err := lowerSelectionSet(n.Child(parser.RuleSelectionSet))
	if err != nil {
		return nil, err
	}

	return OperationDefinition{
		Operation:           op,
		Name:                nodeName(n.Child(parser.RuleName)),
		VariableDefinitions: varDefs,
		Directives:          dirs,
		SelectionSet:        sels,
	}, nil
}

func lowerVariableDefinition(n *parser.Node) (VariableDefinition, error) {
	typ, err := lowerTypeNode(n.Child(parser.RuleType))
	if err != nil {
		return VariableDefinition{}, err
	}
	def, hasDef, err := lowerDefaultValue(n)
	if err != nil {
		return VariableDefinition{}, err
	}
	dirs, err := lowerDirectives(n)
	if err != nil {
		return VariableDefinition{}, err
	}
	v := n.Child(parser.RuleVariable)
	errorutil.AssertTrue(v != nil && len(v.Children) == 2, "ast: variable_definition missing its variable node")
	dollar := v.Children[0].Tok
	return VariableDefinition{
		Name:       nodeName(v.Children[1]),
		Type:       typ,
		Default:    def,
		HasDefault: hasDef,
		Directives: dirs,
		Line:       dollar.Line,
		Column:     dollar.Column,
	}, nil
}

func lowerSelectionSet(n *parser.Node) ([]Selection, error) {
	if n == nil {
		return nil, nil
	}
	var out []Selection
	for _, c := range n.Children {
		switch c.Rule {
		case parser.RuleField:
			f, err := lowerField(c)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		case parser.RuleFragmentSpread:
			fs, err := lowerFragmentSpread(c)
			if err != nil {
				return nil, err
			}
			out = append(out, fs)
		case parser.RuleInlineFragment:
			inf, err := lowerInlineFragment(c)
			if err != nil {
				return nil, err
			}
			out = append(out, inf)
		default:
			return nil, fmt.Errorf("ast: unexpected selection rule %q", c.Rule)
		}
	}
	return out, nil
}

func lowerField(n *parser.Node) (Field, error) {
	alias := ""
	if a := n.Child(parser.RuleAlias); a != nil {
		alias = leafLexeme(a)
	}
	args, err := lowerArguments(n)
	if err != nil {
		return Field{}, err
	}
	dirs, err := lowerDirectives(n)
	if err != nil {
		return Field{}, err
	}
	sels, err := lowerSelectionSet(n.Child(parser.RuleSelectionSet))
	if err != nil {
		return Field{}, err
	}
	return Field{
		Alias:        alias,
		Name:         nodeName(n.Child(parser.RuleName)),
		Arguments:    args,
		Directives:   dirs,
		SelectionSet: sels,
	}, nil
}

func lowerFragmentSpread(n *parser.Node) (FragmentSpread, error) {
	dirs, err := lowerDirectives(n)
	if err != nil {
		return FragmentSpread{}, err
	}
	return FragmentSpread{Name: leafLexeme(n.Child(parser.RuleFragmentName)), Directives: dirs}, nil
}

func lowerInlineFragment(n *parser.Node) (InlineFragment, error) {
	cond := ""
	if tc := n.Child(parser.RuleTypeCondition); tc != nil {
		if nt := tc.Child(parser.RuleNamedType); nt != nil {
			cond = nodeName(nt.Children[0])
		}
	}
	dirs, err := lowerDirectives(n)
	if err != nil {
		return InlineFragment{}, err
	}
	sels, err := lowerSelectionSet(n.Child(parser.RuleSelectionSet))
	if err != nil {
		return InlineFragment{}, err
	}
	return InlineFragment{TypeCondition: cond, Directives: dirs, SelectionSet: sels}, nil
}

func lowerFragmentDefinition(n *parser.Node) (Definition, error) {
	cond := ""
	if tc := n.Child(parser.RuleTypeCondition); tc != nil {
		if nt := tc.Child(parser.RuleNamedType); nt != nil {
			cond = nodeName(nt.Children[0])
		}
	}
	dirs, err := lowerDirectives(n)
	if err != nil {
		return nil, err
	}
	sels, err := lowerSelectionSet(n.Child(parser.RuleSelectionSet))
	if err != nil {
		return nil, err
	}
	return FragmentDefinition{
		Name:          leafLexeme(n.Child(parser.RuleFragmentName)),
		TypeCondition: cond,
		Directives:    dirs,
		SelectionSet:  sels,
	}, nil
}
