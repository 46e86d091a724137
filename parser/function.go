package parser

import (
	"solparse/ast"
	"solparse/diag"
	"solparse/token"
)

// parseFunctionDefinition implements the Function Header production of
// §4.5: name/kind, modifier invocations, visibility, state mutability,
// override, virtual (each at most once), a returns clause, and a body
// or bare terminator.
func (p *Parser) parseFunctionDefinition(free bool) *ast.FunctionDefinition {
	g := p.enter()
	defer g.exit()

	doc := p.captureDoc()
	b := p.builder()

	var kind ast.FunctionKind
	var name string
	switch p.cur.current() {
	case token.CONSTRUCTOR:
		kind = ast.FunctionKindConstructor
		p.cur.advance()
	case token.FALLBACK:
		kind = ast.FunctionKindFallback
		p.cur.advance()
	case token.RECEIVE:
		kind = ast.FunctionKindReceive
		p.cur.advance()
	default:
		p.cur.advance() // 'function'
		kind = ast.FunctionKindNamed
		nameTok := p.cur.currentToken()
		if nameTok.Type == token.CONSTRUCTOR || nameTok.Type == token.FALLBACK || nameTok.Type == token.RECEIVE {
			p.cur.advance()
		} else {
			nameTok = p.expectToken(token.IDENTIFIER, "expected function name")
		}
		name = nameTok.Literal
		if name == "constructor" {
			p.errorDiag(diag.ConstructorNameReserved, p.spanOf(nameTok), "function name 'constructor' is reserved")
		} else if name == "fallback" || name == "receive" {
			p.warning(diag.FallbackOrReceiveNameReserved, p.spanOf(nameTok), "function name shadows a special function name")
		}
	}

	params := p.parseParameterList(ctxParameter)

	var modifiers []*ast.ModifierInvocation
	visibility := ast.DefaultVisibility
	mutability := ast.MutabilityUnspecified
	virtual := false
	var override []*ast.UserDefinedTypeName
	visSet, mutSet, virtualSet, overrideSet := false, false, false, false

headerLoop:
	for {
		switch {
		case token.IsVisibility(p.cur.current()):
			if visSet {
				p.errorDiag(diag.VisibilityDuplicateAlt, p.currentSpan(), "visibility specified more than once")
			}
			visibility = visibilityFromToken(p.cur.current())
			visSet = true
			p.cur.advance()
		case token.IsStateMutability(p.cur.current()):
			if mutSet {
				p.errorDiag(diag.MutabilityDuplicateAlt, p.currentSpan(), "state mutability specified more than once")
			}
			mutability = stateMutabilityFromToken(p.cur.current())
			mutSet = true
			p.cur.advance()
		case p.check(token.VIRTUAL):
			if virtualSet {
				p.errorDiag(diag.VirtualDuplicateAlt, p.currentSpan(), "virtual specified more than once")
			}
			virtual = true
			virtualSet = true
			p.cur.advance()
		case p.check(token.OVERRIDE):
			if overrideSet {
				p.errorDiag(diag.OverrideDuplicateAlt1, p.currentSpan(), "override specified more than once")
			}
			overrideSet = true
			p.cur.advance()
			override = p.parseOptionalOverrideList()
		case p.check(token.IDENTIFIER):
			modifiers = append(modifiers, p.parseModifierInvocation())
		default:
			break headerLoop
		}
	}

	var returns []*ast.VariableDeclaration
	if p.match(token.RETURNS) {
		returns = p.parseParameterList(ctxReturnParameter)
	}

	var body *ast.Block
	if p.check(token.LBRACE) {
		body = p.parseBlock()
	} else {
		p.expectToken(token.SEMICOLON, "expected ';' or function body")
	}

	return ast.NewFunctionDefinition(b.MarkEnd(p.prevEnd()), p.prevEnd(), name, kind, free,
		visibility, mutability, virtual, override, doc, params, modifiers, returns, body)
}

func (p *Parser) parseModifierInvocation() *ast.ModifierInvocation {
	b := p.builder()
	name := p.parseUserDefinedTypeName()
	var args []ast.Expression
	if p.match(token.LPAREN) {
		args = []ast.Expression{}
		if !p.check(token.RPAREN) {
			args = append(args, p.parseExpression(nil))
			for p.match(token.COMMA) {
				args = append(args, p.parseExpression(nil))
			}
		}
		p.expectToken(token.RPAREN, "expected ')' to close modifier invocation arguments")
	}
	return ast.NewModifierInvocation(b.MarkEnd(p.prevEnd()), p.prevEnd(), name, args)
}
