/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package parser

// parser is a recursive descent parser operating over a fully-lexed token
// slice (rather than the teacher's raw channel) so that arbitrary lookahead
// is available for the SDL grammar's optional productions.
type parser struct {
	name string
	toks []Token
	pos  int
}

// Parse parses a GraphQL SDL or executable document and returns its CST.
func Parse(name, input string) (*Node, error) {
	toks := LexAll(name, input)
	p := &parser{name: name, toks: toks}
	return p.parseDocument()
}

func (p *parser) cur() Token {
	return p.peek(0)
}

func (p *parser) peek(n int) Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) advance() Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) atEOF() bool {
	return p.cur().Kind == TokenEOF
}

func (p *parser) errCur(detail string) error {
	t := p.cur()
	if t.Kind == TokenError {
		return newUnexpectedCharacters(p.name, t.Lexeme, t.Line, t.Column)
	}
	return newUnexpectedToken(p.name, detail, t.Line, t.Column)
}

// expect consumes the current token if it matches kind, otherwise reports a
// syntax error. A lexer error token is always reported as
// UnexpectedCharacters regardless of which kind was expected.
func (p *parser) expect(kind TokenKind, what string) (*Node, error) {
	if p.cur().Kind == TokenError {
		t := p.cur()
		return nil, newUnexpectedCharacters(p.name, t.Lexeme, t.Line, t.Column)
	}
	if p.cur().Kind != kind {
		return nil, p.errCur("expected " + what)
	}
	return leaf(p.advance()), nil
}

// isNameToken reports whether t can be lowered into a `name` node: a plain
// identifier, or any reserved keyword used in name position.
func isNameToken(t Token) bool {
	return t.Kind == TokenIdent || t.Kind.isKeyword()
}

func (p *parser) parseName() (*Node, error) {
	if !isNameToken(p.cur()) {
		if p.cur().Kind == TokenError {
			t := p.cur()
			return nil, newUnexpectedCharacters(p.name, t.Lexeme, t.Line, t.Column)
		}
		return nil, p.errCur("name expected")
	}
	return tree(RuleName, leaf(p.advance())), nil
}

// -----------------------------------------------------------------------
// Document
// -----------------------------------------------------------------------

func (p *parser) parseDocument() (*Node, error) {
	var children []*Node

	for !p.atEOF() {
		def, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, def)
	}

	return tree(RuleDocument, children...), nil
}

func (p *parser) parseDefinition() (*Node, error) {
	t := p.cur()

	if t.Kind == TokenString || t.Kind == TokenLongString {
		return p.parseDescribedTypeSystemDefinition()
	}

	switch t.Kind {
	case TokenSchema:
		def, err := p.parseSchemaDefinition(nil)
		if err != nil {
			return nil, err
		}
		return tree(RuleTypeSystemDefinition, def), nil

	case TokenType, TokenInterface, TokenUnion, TokenEnum, TokenScalar, TokenInput:
		def, err := p.parseTypeDefinition(nil)
		if err != nil {
			return nil, err
		}
		return tree(RuleTypeSystemDefinition, tree(RuleTypeDefinition, def)), nil

	case TokenDirective:
		def, err := p.parseDirectiveDefinition(nil)
		if err != nil {
			return nil, err
		}
		return tree(RuleTypeSystemDefinition, def), nil

	case TokenExtend:
		ext, err := p.parseTypeExtension()
		if err != nil {
			return nil, err
		}
		return tree(RuleTypeSystemDefinition, ext), nil

	case TokenQuery, TokenMutation, TokenSubscription:
		return p.parseOperationDefinition()

	case TokenLBrace:
		return p.parseAnonymousOperation()

	case TokenIdent:
		if t.Lexeme == "fragment" {
			return p.parseFragmentDefinition()
		}
	}

	return nil, p.errCur("a type system or executable definition")
}

func (p *parser) parseDescribedTypeSystemDefinition() (*Node, error) {
	desc, err := p.parseDescription()
	if err != nil {
		return nil, err
	}

	t := p.cur()
	switch t.Kind {
	case TokenSchema:
		def, err := p.parseSchemaDefinition(desc)
		if err != nil {
			return nil, err
		}
		return tree(RuleTypeSystemDefinition, def), nil

	case TokenType, TokenInterface, TokenUnion, TokenEnum, TokenScalar, TokenInput:
		def, err := p.parseTypeDefinition(desc)
		if err != nil {
			return nil, err
		}
		return tree(RuleTypeSystemDefinition, tree(RuleTypeDefinition, def)), nil

	case TokenDirective:
		def, err := p.parseDirectiveDefinition(desc)
		if err != nil {
			return nil, err
		}
		return tree(RuleTypeSystemDefinition, def), nil
	}

	return nil, p.errCur("a definition to describe")
}

// parseDescription consumes a STRING or LONG_STRING token in description
// position. The caller has already checked the current token kind.
func (p *parser) parseDescription() (*Node, error) {
	tok := leaf(p.advance())
	return tree(RuleDescription, tok), nil
}

// -----------------------------------------------------------------------
// schema definition
// -----------------------------------------------------------------------

func (p *parser) parseSchemaDefinition(desc *Node) (*Node, error) {
	kw, err := p.expect(TokenSchema, "'schema'")
	if err != nil {
		return nil, err
	}

	children := []*Node{}
	if desc != nil {
		children = append(children, desc)
	}
	children = append(children, kw)

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	if _, err := p.expect(TokenLBrace, "'{'"); err != nil {
		return nil, err
	}

	for p.cur().Kind != TokenRBrace {
		opDef, err := p.parseOperationTypeDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, opDef)
	}

	if _, err := p.expect(TokenRBrace, "'}'"); err != nil {
		return nil, err
	}

	return tree(RuleSchemaDefinition, children...), nil
}

func (p *parser) parseOperationTypeDefinition() (*Node, error) {
	var rule string
	var kw *Node
	var err error

	switch p.cur().Kind {
	case TokenQuery:
		rule = RuleQueryOperationTypeDefinition
		kw, err = p.expect(TokenQuery, "'query'")
	case TokenMutation:
		rule = RuleMutationOperationTypeDef
		kw, err = p.expect(TokenMutation, "'mutation'")
	case TokenSubscription:
		rule = RuleSubscriptionOperationTypeDef
		kw, err = p.expect(TokenSubscription, "'subscription'")
	default:
		return nil, p.errCur("an operation type (query, mutation or subscription)")
	}
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenColon, "':'"); err != nil {
		return nil, err
	}

	named, err := p.parseNamedType()
	if err != nil {
		return nil, err
	}

	return tree(rule, kw, named), nil
}

// -----------------------------------------------------------------------
// type definitions
// -----------------------------------------------------------------------

func (p *parser) parseTypeDefinition(desc *Node) (*Node, error) {
	switch p.cur().Kind {
	case TokenScalar:
		return p.parseScalarTypeDefinition(desc)
	case TokenType:
		return p.parseObjectTypeDefinition(desc)
	case TokenInterface:
		return p.parseInterfaceTypeDefinition(desc)
	case TokenUnion:
		return p.parseUnionTypeDefinition(desc)
	case TokenEnum:
		return p.parseEnumTypeDefinition(desc)
	case TokenInput:
		return p.parseInputObjectTypeDefinition(desc)
	}
	return nil, p.errCur("a type definition")
}

func prepend(desc *Node, rest ...*Node) []*Node {
	if desc == nil {
		return rest
	}
	return append([]*Node{desc}, rest...)
}

func (p *parser) parseScalarTypeDefinition(desc *Node) (*Node, error) {
	kw, err := p.expect(TokenScalar, "'scalar'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := prepend(desc, kw, name)

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	return tree(RuleScalarTypeDefinition, children...), nil
}

func (p *parser) parseObjectTypeDefinition(desc *Node) (*Node, error) {
	kw, err := p.expect(TokenType, "'type'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := prepend(desc, kw, name)

	if p.cur().Kind == TokenImplements {
		impls, err := p.parseImplementsInterfaces()
		if err != nil {
			return nil, err
		}
		children = append(children, impls)
	}

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	if p.cur().Kind == TokenLBrace {
		fields, err := p.parseFieldsDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, fields)
	}

	return tree(RuleObjectTypeDefinition, children...), nil
}

func (p *parser) parseInterfaceTypeDefinition(desc *Node) (*Node, error) {
	kw, err := p.expect(TokenInterface, "'interface'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := prepend(desc, kw, name)

	if p.cur().Kind == TokenImplements {
		impls, err := p.parseImplementsInterfaces()
		if err != nil {
			return nil, err
		}
		children = append(children, impls)
	}

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	if p.cur().Kind == TokenLBrace {
		fields, err := p.parseFieldsDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, fields)
	}

	return tree(RuleInterfaceTypeDefinition, children...), nil
}

// parseImplementsInterfaces parses `implements A & B`. Repeating the
// `implements` keyword is rejected.
func (p *parser) parseImplementsInterfaces() (*Node, error) {
	kw, err := p.expect(TokenImplements, "'implements'")
	if err != nil {
		return nil, err
	}
	children := []*Node{kw}

	// Tolerate a leading '&' before the first member.
	if p.cur().Kind == TokenAmp {
		p.advance()
	}

	first, err := p.parseNamedType()
	if err != nil {
		return nil, err
	}
	children = append(children, first)

	for p.cur().Kind == TokenAmp {
		p.advance()
		if p.cur().Kind == TokenImplements {
			return nil, p.errCur("a type name, not 'implements'")
		}
		next, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}

	if p.cur().Kind == TokenImplements {
		return nil, p.errCur("unexpected repeated 'implements'")
	}

	return tree(RuleImplementsInterfaces, children...), nil
}

func (p *parser) parseUnionTypeDefinition(desc *Node) (*Node, error) {
	kw, err := p.expect(TokenUnion, "'union'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := prepend(desc, kw, name)

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	if p.cur().Kind == TokenEquals {
		members, err := p.parseUnionMemberTypes()
		if err != nil {
			return nil, err
		}
		children = append(children, members)
	}

	return tree(RuleUnionTypeDefinition, children...), nil
}

func (p *parser) parseUnionMemberTypes() (*Node, error) {
	if _, err := p.expect(TokenEquals, "'='"); err != nil {
		return nil, err
	}

	if p.cur().Kind == TokenPipe {
		p.advance()
	}

	first, err := p.parseNamedType()
	if err != nil {
		return nil, err
	}
	children := []*Node{first}

	for p.cur().Kind == TokenPipe {
		p.advance()
		next, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}

	return tree(RuleUnionMemberTypes, children...), nil
}

func (p *parser) parseEnumTypeDefinition(desc *Node) (*Node, error) {
	kw, err := p.expect(TokenEnum, "'enum'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := prepend(desc, kw, name)

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	if p.cur().Kind == TokenLBrace {
		values, err := p.parseEnumValuesDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, values)
	}

	return tree(RuleEnumTypeDefinition, children...), nil
}

func (p *parser) parseEnumValuesDefinition() (*Node, error) {
	if _, err := p.expect(TokenLBrace, "'{'"); err != nil {
		return nil, err
	}

	var children []*Node
	for p.cur().Kind != TokenRBrace {
		val, err := p.parseEnumValueDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, val)
	}

	if _, err := p.expect(TokenRBrace, "'}'"); err != nil {
		return nil, err
	}

	return tree(RuleEnumValuesDefinition, children...), nil
}

func (p *parser) parseEnumValueDefinition() (*Node, error) {
	var desc *Node
	var err error
	if p.cur().Kind == TokenString || p.cur().Kind == TokenLongString {
		desc, err = p.parseDescription()
		if err != nil {
			return nil, err
		}
	}

	if p.cur().Kind == TokenColon {
		return nil, p.errCur("an enum value, not a field")
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if p.cur().Kind == TokenColon {
		return nil, p.errCur("an enum value must not declare a type")
	}

	enumVal := tree(RuleEnumValue, name)
	children := prepend(desc, enumVal)

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	return tree(RuleEnumValueDefinition, children...), nil
}

func (p *parser) parseInputObjectTypeDefinition(desc *Node) (*Node, error) {
	kw, err := p.expect(TokenInput, "'input'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := prepend(desc, kw, name)

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	if p.cur().Kind == TokenLBrace {
		fields, err := p.parseInputFieldsDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, fields)
	}

	return tree(RuleInputObjectTypeDefinition, children...), nil
}

func (p *parser) parseInputFieldsDefinition() (*Node, error) {
	if _, err := p.expect(TokenLBrace, "'{'"); err != nil {
		return nil, err
	}

	var children []*Node
	for p.cur().Kind != TokenRBrace {
		ivd, err := p.parseInputValueDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, ivd)
	}

	if _, err := p.expect(TokenRBrace, "'}'"); err != nil {
		return nil, err
	}

	return tree(RuleInputFieldsDefinition, children...), nil
}

// -----------------------------------------------------------------------
// fields, arguments, directives
// -----------------------------------------------------------------------

func (p *parser) parseFieldsDefinition() (*Node, error) {
	if _, err := p.expect(TokenLBrace, "'{'"); err != nil {
		return nil, err
	}

	var children []*Node
	for p.cur().Kind != TokenRBrace {
		fd, err := p.parseFieldDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, fd)
	}

	if _, err := p.expect(TokenRBrace, "'}'"); err != nil {
		return nil, err
	}

	return tree(RuleFieldsDefinition, children...), nil
}

func (p *parser) parseFieldDefinition() (*Node, error) {
	var desc *Node
	var err error
	if p.cur().Kind == TokenString || p.cur().Kind == TokenLongString {
		desc, err = p.parseDescription()
		if err != nil {
			return nil, err
		}
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := prepend(desc, name)

	if p.cur().Kind == TokenLParen {
		argsDef, err := p.parseArgumentsDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, argsDef)
	}

	if _, err := p.expect(TokenColon, "':'"); err != nil {
		return nil, err
	}

	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	children = append(children, typ)

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	return tree(RuleFieldDefinition, children...), nil
}

func (p *parser) parseArgumentsDefinition() (*Node, error) {
	if _, err := p.expect(TokenLParen, "'('"); err != nil {
		return nil, err
	}

	if p.cur().Kind == TokenRParen {
		return nil, p.errCur("at least one argument definition")
	}

	var children []*Node
	for p.cur().Kind != TokenRParen {
		ivd, err := p.parseInputValueDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, ivd)
	}

	if _, err := p.expect(TokenRParen, "')'"); err != nil {
		return nil, err
	}

	return tree(RuleArgumentsDefinition, children...), nil
}

func (p *parser) parseInputValueDefinition() (*Node, error) {
	var desc *Node
	var err error
	if p.cur().Kind == TokenString || p.cur().Kind == TokenLongString {
		desc, err = p.parseDescription()
		if err != nil {
			return nil, err
		}
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenColon, "':'"); err != nil {
		return nil, err
	}

	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}

	children := prepend(desc, name, typ)

	if p.cur().Kind == TokenEquals {
		p.advance()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		children = append(children, tree(RuleDefaultValue, val))
	}

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	return tree(RuleInputValueDefinition, children...), nil
}

// tryParseDirectives parses zero or more `@name(args)` directives. Returns
// nil (no error) if none are present at the current position.
func (p *parser) tryParseDirectives() (*Node, error) {
	if p.cur().Kind != TokenAt {
		return nil, nil
	}

	var children []*Node
	for p.cur().Kind == TokenAt {
		d, err := p.parseDirective()
		if err != nil {
			return nil, err
		}
		children = append(children, d)
	}
	return tree(RuleDirectives, children...), nil
}

func (p *parser) parseDirective() (*Node, error) {
	if _, err := p.expect(TokenAt, "'@'"); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := []*Node{name}

	if p.cur().Kind == TokenLParen {
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		children = append(children, args)
	}

	return tree(RuleDirective, children...), nil
}

func (p *parser) parseArguments() (*Node, error) {
	if _, err := p.expect(TokenLParen, "'('"); err != nil {
		return nil, err
	}

	if p.cur().Kind == TokenRParen {
		return nil, p.errCur("at least one argument")
	}

	var children []*Node
	for p.cur().Kind != TokenRParen {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		children = append(children, arg)
	}

	if _, err := p.expect(TokenRParen, "')'"); err != nil {
		return nil, err
	}

	return tree(RuleArguments, children...), nil
}

func (p *parser) parseArgument() (*Node, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon, "':'"); err != nil {
		return nil, err
	}
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return tree(RuleArgument, name, val), nil
}

// -----------------------------------------------------------------------
// types
// -----------------------------------------------------------------------

func (p *parser) parseType() (*Node, error) {
	inner, err := p.parseTypeInner()
	if err != nil {
		return nil, err
	}
	return tree(RuleType, inner), nil
}

// parseTypeInner parses named_type | list_type | non_null_type, without the
// enclosing `type` wrapper (used directly inside non_null_type and inside
// list_type's own `type` child, recursively).
func (p *parser) parseTypeInner() (*Node, error) {
	var base *Node
	var err error

	switch p.cur().Kind {
	case TokenLBracket:
		base, err = p.parseListType()
	case TokenIdent, TokenTrue, TokenFalse, TokenNull:
		base, err = p.parseNamedType()
	default:
		if isNameToken(p.cur()) {
			base, err = p.parseNamedType()
		} else {
			return nil, p.errCur("a type name or '['")
		}
	}
	if err != nil {
		return nil, err
	}

	if p.cur().Kind == TokenBang {
		p.advance()
		if p.cur().Kind == TokenBang {
			return nil, p.errCur("'!' cannot follow another '!'")
		}
		return tree(RuleNonNullType, base), nil
	}

	return base, nil
}

func (p *parser) parseNamedType() (*Node, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return tree(RuleNamedType, name), nil
}

func (p *parser) parseListType() (*Node, error) {
	if _, err := p.expect(TokenLBracket, "'['"); err != nil {
		return nil, err
	}
	if p.cur().Kind == TokenRBracket {
		return nil, p.errCur("a type inside '[' ']'")
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBracket, "']'"); err != nil {
		return nil, err
	}
	return tree(RuleListType, typ), nil
}

// -----------------------------------------------------------------------
// values
// -----------------------------------------------------------------------

func (p *parser) parseValue() (*Node, error) {
	inner, err := p.parseValueInner()
	if err != nil {
		return nil, err
	}
	return tree(RuleValue, inner), nil
}

func (p *parser) parseValueInner() (*Node, error) {
	t := p.cur()

	switch t.Kind {
	case TokenDollar:
		return p.parseVariable()
	case TokenSignedInt:
		return tree(RuleIntValue, leaf(p.advance())), nil
	case TokenSignedFloat:
		return tree(RuleFloatValue, leaf(p.advance())), nil
	case TokenString, TokenLongString:
		return tree(RuleStringValue, leaf(p.advance())), nil
	case TokenTrue:
		return tree(RuleTrueValue, leaf(p.advance())), nil
	case TokenFalse:
		return tree(RuleFalseValue, leaf(p.advance())), nil
	case TokenNull:
		return tree(RuleNullValue, leaf(p.advance())), nil
	case TokenLBracket:
		return p.parseListValue()
	case TokenLBrace:
		return p.parseObjectValue()
	case TokenIdent:
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return tree(RuleEnumValue, name), nil
	}

	if t.Kind == TokenError {
		return nil, newUnexpectedCharacters(p.name, t.Lexeme, t.Line, t.Column)
	}

	return nil, p.errCur("a value")
}

// parseVariable parses `$name`. The CST keeps the '$' token as the first
// child (ahead of the name node) so downstream error reporting can point at
// the variable's own source position rather than at its name.
func (p *parser) parseVariable() (*Node, error) {
	dollar, err := p.expect(TokenDollar, "'$'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return tree(RuleVariable, dollar, name), nil
}

func (p *parser) parseListValue() (*Node, error) {
	if _, err := p.expect(TokenLBracket, "'['"); err != nil {
		return nil, err
	}
	var children []*Node
	for p.cur().Kind != TokenRBracket {
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		children = append(children, val)
	}
	if _, err := p.expect(TokenRBracket, "']'"); err != nil {
		return nil, err
	}
	return tree(RuleListValue, children...), nil
}

func (p *parser) parseObjectValue() (*Node, error) {
	if _, err := p.expect(TokenLBrace, "'{'"); err != nil {
		return nil, err
	}
	var children []*Node
	for p.cur().Kind != TokenRBrace {
		field, err := p.parseObjectField()
		if err != nil {
			return nil, err
		}
		children = append(children, field)
	}
	if _, err := p.expect(TokenRBrace, "'}'"); err != nil {
		return nil, err
	}
	return tree(RuleObjectValue, children...), nil
}

func (p *parser) parseObjectField() (*Node, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon, "':'"); err != nil {
		return nil, err
	}
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return tree(RuleObjectField, name, val), nil
}

// -----------------------------------------------------------------------
// directive definitions
// -----------------------------------------------------------------------

func (p *parser) parseDirectiveDefinition(desc *Node) (*Node, error) {
	kw, err := p.expect(TokenDirective, "'directive'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenAt, "'@'"); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := prepend(desc, kw, name)

	if p.cur().Kind == TokenLParen {
		argsDef, err := p.parseArgumentsDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, argsDef)
	}

	if p.cur().Kind == TokenLBrace {
		return nil, p.errCur("'on', not a field block, after a directive definition")
	}

	onTok, err := p.expect(TokenOn, "'on'")
	if err != nil {
		return nil, err
	}
	children = append(children, onTok)

	locs, err := p.parseDirectiveLocations()
	if err != nil {
		return nil, err
	}
	children = append(children, locs)

	return tree(RuleDirectiveDefinition, children...), nil
}

func (p *parser) parseDirectiveLocations() (*Node, error) {
	if p.cur().Kind == TokenPipe {
		p.advance()
	}

	first, err := p.parseDirectiveLocation()
	if err != nil {
		return nil, err
	}
	children := []*Node{first}

	for p.cur().Kind == TokenPipe {
		p.advance()
		next, err := p.parseDirectiveLocation()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}

	return tree(RuleDirectiveLocations, children...), nil
}

func (p *parser) parseDirectiveLocation() (*Node, error) {
	if !isNameToken(p.cur()) {
		return nil, p.errCur("a directive location")
	}
	t := p.cur()
	if !DirectiveLocations[t.Lexeme] {
		return nil, p.errCur("a known directive location")
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return tree(RuleDirectiveLocation, name), nil
}

// -----------------------------------------------------------------------
// type extensions
// -----------------------------------------------------------------------

func (p *parser) parseTypeExtension() (*Node, error) {
	extendKw, err := p.expect(TokenExtend, "'extend'")
	if err != nil {
		return nil, err
	}

	switch p.cur().Kind {
	case TokenScalar:
		return p.finishScalarExtension(extendKw)
	case TokenType:
		return p.finishObjectExtension(extendKw)
	case TokenInterface:
		return p.finishInterfaceExtension(extendKw)
	case TokenUnion:
		return p.finishUnionExtension(extendKw)
	case TokenEnum:
		return p.finishEnumExtension(extendKw)
	case TokenInput:
		return p.finishInputObjectExtension(extendKw)
	}

	return nil, p.errCur("a type kind to extend")
}

func (p *parser) finishScalarExtension(extendKw *Node) (*Node, error) {
	kw, err := p.expect(TokenScalar, "'scalar'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs == nil {
		return nil, p.errCur("a directive (a scalar extension must add something)")
	}
	inner := tree(RuleScalarTypeExtension, extendKw, kw, name, dirs)
	return tree(RuleTypeExtension, inner), nil
}

func (p *parser) finishObjectExtension(extendKw *Node) (*Node, error) {
	kw, err := p.expect(TokenType, "'type'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := []*Node{extendKw, kw, name}

	if p.cur().Kind == TokenImplements {
		impls, err := p.parseImplementsInterfaces()
		if err != nil {
			return nil, err
		}
		children = append(children, impls)
	}

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	var fields *Node
	if p.cur().Kind == TokenLBrace {
		fields, err = p.parseFieldsDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, fields)
	}

	if len(children) == 3 {
		return nil, p.errCur("an extension must add interfaces, directives or fields")
	}

	inner := tree(RuleObjectTypeExtension, children...)
	return tree(RuleTypeExtension, inner), nil
}

func (p *parser) finishInterfaceExtension(extendKw *Node) (*Node, error) {
	kw, err := p.expect(TokenInterface, "'interface'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := []*Node{extendKw, kw, name}

	if p.cur().Kind == TokenImplements {
		impls, err := p.parseImplementsInterfaces()
		if err != nil {
			return nil, err
		}
		children = append(children, impls)
	}

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	if p.cur().Kind == TokenLBrace {
		fields, err := p.parseFieldsDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, fields)
	}

	if len(children) == 3 {
		return nil, p.errCur("an extension must add directives or fields")
	}

	inner := tree(RuleInterfaceTypeExtension, children...)
	return tree(RuleTypeExtension, inner), nil
}

func (p *parser) finishUnionExtension(extendKw *Node) (*Node, error) {
	kw, err := p.expect(TokenUnion, "'union'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := []*Node{extendKw, kw, name}

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	if p.cur().Kind == TokenEquals {
		members, err := p.parseUnionMemberTypes()
		if err != nil {
			return nil, err
		}
		children = append(children, members)
	}

	if len(children) == 3 {
		return nil, p.errCur("an extension must add directives or members")
	}

	inner := tree(RuleUnionTypeExtension, children...)
	return tree(RuleTypeExtension, inner), nil
}

func (p *parser) finishEnumExtension(extendKw *Node) (*Node, error) {
	kw, err := p.expect(TokenEnum, "'enum'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := []*Node{extendKw, kw, name}

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	if p.cur().Kind == TokenLBrace {
		values, err := p.parseEnumValuesDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, values)
	}

	if len(children) == 3 {
		return nil, p.errCur("an extension must add directives or values")
	}

	inner := tree(RuleEnumTypeExtension, children...)
	return tree(RuleTypeExtension, inner), nil
}

func (p *parser) finishInputObjectExtension(extendKw *Node) (*Node, error) {
	kw, err := p.expect(TokenInput, "'input'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := []*Node{extendKw, kw, name}

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	if p.cur().Kind == TokenLBrace {
		fields, err := p.parseInputFieldsDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, fields)
	}

	if len(children) == 3 {
		return nil, p.errCur("an extension must add directives or fields")
	}

	inner := tree(RuleInputObjectTypeExtension, children...)
	return tree(RuleTypeExtension, inner), nil
}

// -----------------------------------------------------------------------
// executable documents
// -----------------------------------------------------------------------

func (p *parser) parseOperationDefinition() (*Node, error) {
	var kw *Node
	var err error

	switch p.cur().Kind {
	case TokenQuery:
		kw, err = p.expect(TokenQuery, "'query'")
	case TokenMutation:
		kw, err = p.expect(TokenMutation, "'mutation'")
	case TokenSubscription:
		kw, err = p.expect(TokenSubscription, "'subscription'")
	}
	if err != nil {
		return nil, err
	}

	children := []*Node{kw}

	if isNameToken(p.cur()) && p.cur().Kind != TokenOn {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		children = append(children, name)
	}

	if p.cur().Kind == TokenLParen {
		varDefs, err := p.parseVariableDefinitions()
		if err != nil {
			return nil, err
		}
		children = append(children, varDefs)
	}

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	sel, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	children = append(children, sel)

	return tree(RuleOperationDefinition, children...), nil
}

func (p *parser) parseAnonymousOperation() (*Node, error) {
	sel, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	return tree(RuleOperationDefinition, sel), nil
}

func (p *parser) parseVariableDefinitions() (*Node, error) {
	if _, err := p.expect(TokenLParen, "'('"); err != nil {
		return nil, err
	}
	if p.cur().Kind == TokenRParen {
		return nil, p.errCur("at least one variable definition")
	}

	var children []*Node
	for p.cur().Kind != TokenRParen {
		vd, err := p.parseVariableDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, vd)
	}

	if _, err := p.expect(TokenRParen, "')'"); err != nil {
		return nil, err
	}

	return tree(RuleVariableDefinitions, children...), nil
}

func (p *parser) parseVariableDefinition() (*Node, error) {
	v, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon, "':'"); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	children := []*Node{v, typ}

	if p.cur().Kind == TokenEquals {
		p.advance()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		children = append(children, tree(RuleDefaultValue, val))
	}

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	return tree(RuleVariableDefinition, children...), nil
}

func (p *parser) parseSelectionSet() (*Node, error) {
	if _, err := p.expect(TokenLBrace, "'{'"); err != nil {
		return nil, err
	}
	if p.cur().Kind == TokenRBrace {
		return nil, p.errCur("at least one selection")
	}

	var children []*Node
	for p.cur().Kind != TokenRBrace {
		sel, err := p.parseSelection()
		if err != nil {
			return nil, err
		}
		children = append(children, sel)
	}

	if _, err := p.expect(TokenRBrace, "'}'"); err != nil {
		return nil, err
	}

	return tree(RuleSelectionSet, children...), nil
}

func (p *parser) parseSelection() (*Node, error) {
	if p.cur().Kind == TokenSpread {
		return p.parseFragmentSpreadOrInlineFragment()
	}
	return p.parseField()
}

func (p *parser) parseField() (*Node, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	children := []*Node{}

	if p.cur().Kind == TokenColon {
		p.advance()
		fieldName, err := p.parseName()
		if err != nil {
			return nil, err
		}
		children = append(children, tree(RuleAlias, name.Children[0]), fieldName)
	} else {
		children = append(children, name)
	}

	if p.cur().Kind == TokenLParen {
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		children = append(children, args)
	}

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	if p.cur().Kind == TokenLBrace {
		sel, err := p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
		children = append(children, sel)
	}

	return tree(RuleField, children...), nil
}

func (p *parser) parseFragmentSpreadOrInlineFragment() (*Node, error) {
	if _, err := p.expect(TokenSpread, "'...'"); err != nil {
		return nil, err
	}

	if p.cur().Kind == TokenOn {
		onTok := leaf(p.advance())
		named, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		cond := tree(RuleTypeCondition, onTok, named)
		return p.finishInlineFragment(cond)
	}

	if p.cur().Kind == TokenAt {
		return p.finishInlineFragment(nil)
	}

	if isNameToken(p.cur()) && p.cur().Lexeme != "on" {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		fragName := tree(RuleFragmentName, name.Children[0])

		dirs, err := p.tryParseDirectives()
		if err != nil {
			return nil, err
		}
		children := []*Node{fragName}
		if dirs != nil {
			children = append(children, dirs)
		}
		return tree(RuleFragmentSpread, children...), nil
	}

	return p.finishInlineFragment(nil)
}

func (p *parser) finishInlineFragment(cond *Node) (*Node, error) {
	var children []*Node
	if cond != nil {
		children = append(children, cond)
	}

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	sel, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	children = append(children, sel)

	return tree(RuleInlineFragment, children...), nil
}

func (p *parser) parseFragmentDefinition() (*Node, error) {
	if p.cur().Kind != TokenIdent || p.cur().Lexeme != "fragment" {
		return nil, p.errCur("'fragment'")
	}
	p.advance()

	nameTok, err := p.parseName()
	if err != nil {
		return nil, err
	}
	fragName := tree(RuleFragmentName, nameTok.Children[0])

	onTok, err := p.expect(TokenOn, "'on'")
	if err != nil {
		return nil, err
	}
	named, err := p.parseNamedType()
	if err != nil {
		return nil, err
	}
	cond := tree(RuleTypeCondition, onTok, named)

	children := []*Node{fragName, cond}

	dirs, err := p.tryParseDirectives()
	if err != nil {
		return nil, err
	}
	if dirs != nil {
		children = append(children, dirs)
	}

	sel, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	children = append(children, sel)

	return tree(RuleFragmentDefinition, children...), nil
}
