package parser

import (
	"fmt"

	"solparse/ast"
	"solparse/diag"
	"solparse/token"
)

// parseUnitBody implements the Unit production of §4.4: repeated
// top-level dispatch, then license scanning over whatever source the
// parsed nodes didn't cover.
func (p *Parser) parseUnitBody() *ast.Unit {
	g := p.enter()
	defer g.exit()

	b := p.builder()
	var nodes []ast.Node
	for !p.check(token.EOF) {
		node := p.parseUnitItem()
		if node == nil {
			continue
		}
		nodes = append(nodes, node)
		p.recordSpan(node.NodeSpan())
	}

	unit := ast.NewUnit(b.MarkEnd(p.prevEnd()), p.prevEnd(), nodes)
	unit.License = p.scanLicense()
	return unit
}

func (p *Parser) parseUnitItem() ast.Node {
	switch p.cur.current() {
	case token.PRAGMA:
		return p.parsePragma()
	case token.IMPORT:
		return p.parseImport()
	case token.ABSTRACT, token.CONTRACT, token.INTERFACE, token.LIBRARY:
		return p.parseContractDefinition()
	case token.STRUCT:
		return p.parseStructDefinition()
	case token.ENUM:
		return p.parseEnumDefinition()
	case token.FUNCTION:
		return p.parseFunctionDefinition(true)
	default:
		p.fatal(diag.UnexpectedTopLevel, p.currentSpan(), fmt.Sprintf("unexpected token %s at top level", p.cur.current()))
		return nil
	}
}

// parsePragma consumes tokens until `;`, recording their literal
// spellings. When the first literal is "solidity" the raw text between
// it and the terminator is checked against this parser's own version.
func (p *Parser) parsePragma() *ast.PragmaDirective {
	b := p.builder()
	p.cur.advance() // 'pragma'

	var literals []string
	var firstLiteral string
	versionStart := -1
	for !p.check(token.SEMICOLON) && !p.check(token.EOF) {
		tok := p.cur.currentToken()
		if len(literals) == 0 {
			firstLiteral = tok.Literal
			literals = append(literals, tok.Literal)
			p.cur.advance()
			continue
		}
		if versionStart < 0 {
			versionStart = tok.Pos.Offset
		}
		if tok.Type == token.NUMBER || tok.Type == token.DOT {
			start := tok.Pos.Offset
			end := tok.EndPos.Offset
			p.cur.advance()
			for p.check(token.DOT) || p.check(token.NUMBER) {
				end = p.cur.currentToken().EndPos.Offset
				p.cur.advance()
			}
			literals = append(literals, p.source[start:end])
			continue
		}
		literals = append(literals, tok.Literal)
		p.cur.advance()
	}
	versionEnd := p.cur.currentToken().Pos.Offset
	semi := p.expectToken(token.SEMICOLON, "expected ';' after pragma directive")

	node := ast.NewPragmaDirective(b.MarkEnd(semi.EndPos.Offset), semi.EndPos.Offset, literals)

	if firstLiteral == "solidity" && versionStart >= 0 {
		constraint := p.source[versionStart:versionEnd]
		p.matchVersion(constraint, node.NodeSpan())
	}
	return node
}

// parseImport covers the three surface forms named in §4.4.
func (p *Parser) parseImport() *ast.ImportDirective {
	b := p.builder()
	p.cur.advance() // 'import'

	switch {
	case p.check(token.STRING):
		return p.finishSimpleImport(b)
	case p.check(token.LBRACE):
		return p.finishNamedImport(b)
	case p.check(token.STAR):
		return p.finishWildcardImport(b)
	default:
		p.fatal(diag.ImportPathExpected, p.currentSpan(), "expected import path, '{', or '*'")
		return nil
	}
}

func (p *Parser) parseImportPath() string {
	pathTok := p.expectToken(token.STRING, "expected import path string")
	if pathTok.Literal == "" {
		p.fatal(diag.EmptyImportPath, p.spanOf(pathTok), "import path must not be empty")
	}
	return pathTok.Literal
}

func (p *Parser) expectFromKeyword() {
	tok := p.cur.currentToken()
	if tok.Type != token.IDENTIFIER || tok.Literal != "from" {
		p.fatal(diag.FromExpected, p.currentSpan(), "expected 'from' in import directive")
	}
	p.cur.advance()
}

func (p *Parser) finishSimpleImport(b *ast.Builder) *ast.ImportDirective {
	path := p.parseImportPath()
	alias := ""
	if p.match(token.AS) {
		alias = p.expectToken(token.IDENTIFIER, "expected identifier after 'as'").Literal
	}
	semi := p.expectToken(token.SEMICOLON, "expected ';' after import directive")
	return ast.NewImportDirective(b.MarkEnd(semi.EndPos.Offset), semi.EndPos.Offset, path, alias, false, "", nil)
}

func (p *Parser) finishNamedImport(b *ast.Builder) *ast.ImportDirective {
	p.cur.advance() // '{'
	var aliases []ast.ImportAlias
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		symTok := p.expectToken(token.IDENTIFIER, "expected imported symbol name")
		symAlias := ""
		aliasSpan := p.spanOf(symTok)
		if p.match(token.AS) {
			aliasTok := p.expectToken(token.IDENTIFIER, "expected identifier after 'as'")
			symAlias = aliasTok.Literal
			aliasSpan = p.spanOf(aliasTok)
		}
		aliases = append(aliases, ast.ImportAlias{Symbol: symTok.Literal, Alias: symAlias, AliasSpan: aliasSpan})
		if !p.match(token.COMMA) {
			break
		}
		if p.check(token.RBRACE) {
			p.errorDiag(diag.ImportAliasListExpected, p.currentSpan(), "trailing comma in import alias list")
			break
		}
	}
	p.expectToken(token.RBRACE, "expected '}' to close import alias list")
	p.expectFromKeyword()
	path := p.parseImportPath()
	semi := p.expectToken(token.SEMICOLON, "expected ';' after import directive")
	return ast.NewImportDirective(b.MarkEnd(semi.EndPos.Offset), semi.EndPos.Offset, path, "", false, "", aliases)
}

func (p *Parser) finishWildcardImport(b *ast.Builder) *ast.ImportDirective {
	p.cur.advance() // '*'
	p.expectToken(token.AS, "expected 'as' after '*' in import directive")
	aliasTok := p.expectToken(token.IDENTIFIER, "expected identifier after 'as'")
	p.expectFromKeyword()
	path := p.parseImportPath()
	semi := p.expectToken(token.SEMICOLON, "expected ';' after import directive")
	return ast.NewImportDirective(b.MarkEnd(semi.EndPos.Offset), semi.EndPos.Offset, path, "", true, aliasTok.Literal, nil)
}

// parseContractDefinition parses a (optionally abstract) contract,
// interface, or library declaration.
func (p *Parser) parseContractDefinition() *ast.ContractDefinition {
	g := p.enter()
	defer g.exit()

	doc := p.captureDoc()
	b := p.builder()
	abstract := p.match(token.ABSTRACT)

	var kind ast.ContractKind
	switch p.cur.current() {
	case token.CONTRACT:
		kind = ast.Contract
	case token.INTERFACE:
		kind = ast.Interface
	case token.LIBRARY:
		kind = ast.Library
	default:
		p.fatal(diag.ContractKindExpected, p.currentSpan(), "expected 'contract', 'interface', or 'library'")
	}
	p.cur.advance()

	nameTok := p.expectToken(token.IDENTIFIER, "expected contract name")

	var baseList []*ast.InheritanceSpecifier
	if p.match(token.IS) {
		baseList = append(baseList, p.parseInheritanceSpecifier())
		for p.match(token.COMMA) {
			baseList = append(baseList, p.parseInheritanceSpecifier())
		}
	}

	if !p.check(token.LBRACE) {
		p.fatal(diag.ContractBodyExpected, p.currentSpan(), "expected '{' to open contract body")
	}
	p.cur.advance()
	body := p.parseContractBody()
	p.expectToken(token.RBRACE, "expected '}' to close contract body")

	return ast.NewContractDefinition(b.MarkEnd(p.prevEnd()), p.prevEnd(), nameTok.Literal, kind, abstract, doc, baseList, body)
}

func (p *Parser) parseInheritanceSpecifier() *ast.InheritanceSpecifier {
	b := p.builder()
	base := p.parseUserDefinedTypeName()
	var args []ast.Expression
	if p.match(token.LPAREN) {
		args = []ast.Expression{}
		if !p.check(token.RPAREN) {
			args = append(args, p.parseExpression(nil))
			for p.match(token.COMMA) {
				args = append(args, p.parseExpression(nil))
			}
		}
		p.expectToken(token.RPAREN, "expected ')' to close base constructor arguments")
	}
	return ast.NewInheritanceSpecifier(b.MarkEnd(p.prevEnd()), p.prevEnd(), base, args)
}

// parseContractBody loops over members, recovering at the contract-body
// recovery point (§7) when enabled.
func (p *Parser) parseContractBody() []ast.Node {
	var body []ast.Node
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		node, ok := p.tryParseContractBodyItem()
		if ok && node != nil {
			body = append(body, node)
			p.recordSpan(node.NodeSpan())
		}
	}
	return body
}

func (p *Parser) tryParseContractBodyItem() (node ast.Node, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isFatal := r.(fatalParseError); !isFatal {
				panic(r)
			}
			if p.recoverAndContinue() {
				node, ok = nil, false
				return
			}
			panic(r)
		}
	}()
	return p.parseContractBodyItem(), true
}

func (p *Parser) parseContractBodyItem() ast.Node {
	switch p.cur.current() {
	case token.FUNCTION:
		if p.cur.peek() == token.LPAREN {
			return p.parseStateVariableTerminated()
		}
		return p.parseFunctionDefinition(false)
	case token.CONSTRUCTOR, token.FALLBACK, token.RECEIVE:
		return p.parseFunctionDefinition(false)
	case token.STRUCT:
		return p.parseStructDefinition()
	case token.ENUM:
		return p.parseEnumDefinition()
	case token.MODIFIER:
		return p.parseModifierDefinition()
	case token.EVENT:
		return p.parseEventDefinition()
	case token.USING:
		return p.parseUsingForDirective()
	case token.MAPPING, token.IDENTIFIER:
		return p.parseStateVariableTerminated()
	default:
		if token.IsElementaryType(p.cur.current()) {
			return p.parseStateVariableTerminated()
		}
		p.fatal(diag.ContractBodyExpected, p.currentSpan(), "unexpected token in contract body")
		return nil
	}
}

func (p *Parser) parseStateVariableTerminated() *ast.VariableDeclaration {
	v := p.parseVariableDeclaration(ctxStateVariable)
	p.expectToken(token.SEMICOLON, "expected ';' after state variable declaration")
	return v
}

func (p *Parser) parseStructDefinition() *ast.StructDefinition {
	g := p.enter()
	defer g.exit()

	doc := p.captureDoc()
	b := p.builder()
	p.cur.advance() // 'struct'
	nameTok := p.expectToken(token.IDENTIFIER, "expected struct name")
	p.expectToken(token.LBRACE, "expected '{' to open struct body")

	var fields []*ast.VariableDeclaration
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		f := p.parseVariableDeclaration(ctxStructField)
		p.expectToken(token.SEMICOLON, "expected ';' after struct field")
		fields = append(fields, f)
	}
	p.expectToken(token.RBRACE, "expected '}' to close struct body")
	return ast.NewStructDefinition(b.MarkEnd(p.prevEnd()), p.prevEnd(), nameTok.Literal, doc, fields)
}

func (p *Parser) parseEnumDefinition() *ast.EnumDefinition {
	g := p.enter()
	defer g.exit()

	doc := p.captureDoc()
	b := p.builder()
	p.cur.advance() // 'enum'
	nameTok := p.expectToken(token.IDENTIFIER, "expected enum name")
	p.expectToken(token.LBRACE, "expected '{' to open enum body")

	var values []*ast.EnumValue
	if !p.check(token.RBRACE) {
		values = append(values, p.parseEnumValue())
		for p.match(token.COMMA) {
			if !p.check(token.IDENTIFIER) {
				p.fatal(diag.EnumIdentifierExpectedAfterComma, p.currentSpan(), "expected identifier after ',' in enum member list")
			}
			values = append(values, p.parseEnumValue())
		}
	}
	if len(values) == 0 {
		p.errorDiag(diag.EnumNoMembers, p.currentSpan(), "enum has no members")
	}
	p.expectToken(token.RBRACE, "expected '}' to close enum body")
	return ast.NewEnumDefinition(b.MarkEnd(p.prevEnd()), p.prevEnd(), nameTok.Literal, doc, values)
}

func (p *Parser) parseEnumValue() *ast.EnumValue {
	b := p.builder()
	tok := p.expectToken(token.IDENTIFIER, "expected enum member name")
	return ast.NewEnumValue(b.MarkEnd(p.prevEnd()), p.prevEnd(), tok.Literal)
}

func (p *Parser) parseUsingForDirective() *ast.UsingForDirective {
	g := p.enter()
	defer g.exit()

	b := p.builder()
	p.cur.advance() // 'using'
	lib := p.parseUserDefinedTypeName()
	p.expectToken(token.FOR, "expected 'for' in using-for directive")

	var typ ast.TypeName
	if !p.match(token.STAR) {
		typ = p.parseTypeName()
	}

	global := false
	if p.check(token.IDENTIFIER) && p.cur.currentLiteral() == "global" {
		global = true
		p.cur.advance()
	}

	p.expectToken(token.SEMICOLON, "expected ';' after using-for directive")
	return ast.NewUsingForDirective(b.MarkEnd(p.prevEnd()), p.prevEnd(), lib, typ, global)
}

func (p *Parser) parseModifierDefinition() *ast.ModifierDefinition {
	g := p.enter()
	defer g.exit()

	doc := p.captureDoc()
	b := p.builder()
	p.cur.advance() // 'modifier'
	nameTok := p.expectToken(token.IDENTIFIER, "expected modifier name")

	var params []*ast.VariableDeclaration
	if p.check(token.LPAREN) {
		params = p.parseParameterList(ctxParameter)
	}

	virtual := false
	var override []*ast.UserDefinedTypeName
	overrideSeen := false
headerLoop:
	for {
		switch {
		case p.check(token.VIRTUAL):
			if virtual {
				p.errorDiag(diag.VirtualDuplicateAlt, p.currentSpan(), "virtual specified more than once")
			}
			virtual = true
			p.cur.advance()
		case p.check(token.OVERRIDE):
			if overrideSeen {
				p.errorDiag(diag.OverrideDuplicateAlt1, p.currentSpan(), "override specified more than once")
			}
			overrideSeen = true
			p.cur.advance()
			override = p.parseOptionalOverrideList()
		default:
			break headerLoop
		}
	}

	mf := p.enterModifier()
	defer mf.exit()
	body := p.parseBlock()

	return ast.NewModifierDefinition(b.MarkEnd(p.prevEnd()), p.prevEnd(), nameTok.Literal, doc, params, virtual, override, body)
}

func (p *Parser) parseEventDefinition() *ast.EventDefinition {
	g := p.enter()
	defer g.exit()

	doc := p.captureDoc()
	b := p.builder()
	p.cur.advance() // 'event'
	nameTok := p.expectToken(token.IDENTIFIER, "expected event name")
	params := p.parseParameterList(ctxEventParameter)
	anonymous := p.match(token.ANONYMOUS)
	p.expectToken(token.SEMICOLON, "expected ';' after event definition")
	return ast.NewEventDefinition(b.MarkEnd(p.prevEnd()), p.prevEnd(), nameTok.Literal, doc, params, anonymous)
}

// parseVariableDeclaration is the single production behind state
// variables, parameters, return parameters, struct fields, event
// parameters, and local declarations (§4.4); ctx governs which
// modifiers and terminators are legal.
func (p *Parser) parseVariableDeclaration(ctx varDeclContext) *ast.VariableDeclaration {
	g := p.enter()
	defer g.exit()

	var doc *ast.DocComment
	if ctx == ctxStateVariable {
		doc = p.captureDoc()
	} else if lit := p.cur.currentCommentLiteral(); lit != "" {
		p.warning(diag.DocstringOnNonState, p.cur.currentCommentLocation(), "documentation comment ignored outside a state variable declaration")
	}

	b := p.builder()
	typ := p.parseTypeName()

	if ctx == ctxStateVariable {
		if _, isFn := typ.(*ast.FunctionTypeName); isFn && p.check(token.LBRACE) {
			p.errorDiag(diag.StateVariableIsFunctionBlk, p.currentSpan(), "function-type state variable cannot have a body; did you mean 'fallback' or 'receive'?")
		}
	}

	visibility := ast.DefaultVisibility
	var override []*ast.UserDefinedTypeName
	indexed := false
	mutability := ast.Mutable
	location := ast.LocationUnspecified
	visSet, overrideSet, indexedSet, mutSet, locSet := false, false, false, false, false

modifierLoop:
	for {
		switch {
		case ctx == ctxStateVariable && token.IsVisibility(p.cur.current()):
			if visSet {
				p.errorDiag(diag.VisibilityDuplicate, p.currentSpan(), "visibility specified more than once")
			}
			visibility = visibilityFromToken(p.cur.current())
			visSet = true
			p.cur.advance()
		case ctx == ctxStateVariable && p.check(token.OVERRIDE):
			if overrideSet {
				p.errorDiag(diag.OverrideDuplicate, p.currentSpan(), "override specified more than once")
			}
			overrideSet = true
			p.cur.advance()
			override = p.parseOptionalOverrideList()
		case ctx == ctxEventParameter && p.check(token.INDEXED):
			if indexedSet {
				p.errorDiag(diag.IndexedDuplicate, p.currentSpan(), "indexed specified more than once")
			}
			indexed = true
			indexedSet = true
			p.cur.advance()
		case p.check(token.CONSTANT) || p.check(token.IMMUTABLE):
			if mutSet {
				p.errorDiag(diag.MutabilityDuplicate, p.currentSpan(), "constant/immutable specified more than once")
			}
			if p.check(token.CONSTANT) {
				mutability = ast.Constant
			} else {
				mutability = ast.Immutable
			}
			mutSet = true
			p.cur.advance()
		case (ctx == ctxLocalVariable || ctx == ctxParameter || ctx == ctxReturnParameter) && token.IsDataLocation(p.cur.current()):
			if locSet {
				p.errorDiag(diag.LocationSpecifierDuplicate, p.currentSpan(), "data location specified more than once")
			}
			location = dataLocationFromToken(p.cur.current())
			locSet = true
			p.cur.advance()
		default:
			break modifierLoop
		}
	}

	name := ""
	if p.check(token.IDENTIFIER) {
		name = p.cur.currentLiteral()
		p.cur.advance()
	}

	var value ast.Expression
	if ctx == ctxStateVariable && p.match(token.ASSIGN) {
		value = p.parseExpression(nil)
	}

	return ast.NewVariableDeclaration(b.MarkEnd(p.prevEnd()), p.prevEnd(), typ, name, value,
		visibility, doc, ctx == ctxStateVariable, indexed, mutability, override, location)
}
