package parser

import (
	"solparse/ast"
	"solparse/diag"
	"solparse/token"
)

// parseTypeName implements the Type-Name Parser of §4.6: an elementary
// type, a function type, a mapping, a dotted user-defined type, or a
// fatal if none apply, followed by zero or more array suffixes.
func (p *Parser) parseTypeName() ast.TypeName {
	g := p.enter()
	defer g.exit()

	base := p.parseTypeNameBase()
	for p.check(token.LBRACKET) {
		b := p.builderFrom(base)
		p.cur.advance()
		var length ast.Expression
		if !p.check(token.RBRACKET) {
			length = p.parseExpression(nil)
		}
		p.expectToken(token.RBRACKET, "expected ']' to close array type")
		base = ast.NewArrayTypeName(b.MarkEnd(p.prevEnd()), p.prevEnd(), base, length)
	}
	return base
}

func (p *Parser) parseTypeNameBase() ast.TypeName {
	switch {
	case token.IsElementaryType(p.cur.current()):
		return p.parseElementaryTypeName()
	case p.check(token.FUNCTION):
		return p.parseFunctionTypeName()
	case p.check(token.MAPPING):
		return p.parseMappingTypeName()
	case p.check(token.IDENTIFIER):
		return p.parseUserDefinedTypeName()
	default:
		p.fatal(diag.ExpectedTypeName, p.currentSpan(), "expected a type name")
		return nil
	}
}

func (p *Parser) parseElementaryTypeName() *ast.ElementaryTypeName {
	b := p.builder()
	tok := p.cur.currentToken()
	firstSize, secondSize := p.cur.currentTokenInfo()
	kind := tok.Type
	p.cur.advance()

	payable := false
	if p.check(token.PAYABLE) {
		if kind != token.ADDRESS {
			p.errorDiag(diag.StateMutabilityOnNonAddress, p.currentSpan(), "'payable' is only valid on 'address'")
		}
		payable = true
		p.cur.advance()
	}

	info := ast.TokenInfo{Kind: kind, FirstSize: firstSize, SecondSize: secondSize}
	return ast.NewElementaryTypeName(b.MarkEnd(p.prevEnd()), p.prevEnd(), info, payable)
}

func (p *Parser) parseFunctionTypeName() *ast.FunctionTypeName {
	b := p.builder()
	p.cur.advance() // 'function'
	params := p.parseParameterList(ctxParameter)

	visibility := ast.DefaultVisibility
	mutability := ast.MutabilityUnspecified
loop:
	for {
		switch {
		case token.IsVisibility(p.cur.current()):
			if visibility == ast.ExternalVisibility || visibility == ast.InternalVisibility {
				// A further visibility belongs to the enclosing variable.
				break loop
			}
			visibility = visibilityFromToken(p.cur.current())
			p.cur.advance()
		case token.IsStateMutability(p.cur.current()):
			mutability = stateMutabilityFromToken(p.cur.current())
			p.cur.advance()
		default:
			break loop
		}
	}

	var returns []*ast.VariableDeclaration
	if p.match(token.RETURNS) {
		returns = p.parseParameterList(ctxReturnParameter)
	}
	return ast.NewFunctionTypeName(b.MarkEnd(p.prevEnd()), p.prevEnd(), params, visibility, mutability, returns)
}

func (p *Parser) parseMappingTypeName() *ast.MappingTypeName {
	b := p.builder()
	p.cur.advance() // 'mapping'
	p.expectToken(token.LPAREN, "expected '(' after 'mapping'")

	keyTok := p.cur.current()
	if !token.IsElementaryType(keyTok) && keyTok != token.IDENTIFIER {
		p.fatal(diag.MappingKeyExpected, p.currentSpan(), "mapping key type must be elementary or a user-defined type")
	}
	key := p.parseTypeNameBase()
	// A keyed name (`mapping(uint id => ...)`) is permitted; skip it.
	if p.check(token.IDENTIFIER) {
		p.cur.advance()
	}

	p.expectToken(token.ARROW, "expected '=>' in mapping type")
	value := p.parseTypeName()
	if p.check(token.IDENTIFIER) {
		p.cur.advance()
	}
	p.expectToken(token.RPAREN, "expected ')' to close mapping type")
	return ast.NewMappingTypeName(b.MarkEnd(p.prevEnd()), p.prevEnd(), key, value)
}
