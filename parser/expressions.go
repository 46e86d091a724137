package parser

import (
	"solparse/ast"
	"solparse/diag"
	"solparse/token"
)

var binaryPrecedence = map[token.Type]int{
	token.OR_OR:   4,
	token.AND_AND: 5,
	token.EQ:      6, token.NOT_EQ: 6,
	token.LT: 7, token.LT_EQ: 7, token.GT: 7, token.GT_EQ: 7,
	token.PIPE: 8,
	token.CARET: 9,
	token.AMPERSAND: 10,
	token.SHL: 11, token.SHR: 11,
	token.PLUS: 12, token.MINUS: 12,
	token.STAR: 13, token.SLASH: 13, token.PERCENT: 13,
	token.STAR_STAR: 14,
}

const minPrecedence = 4

var assignOps = map[token.Type]bool{
	token.ASSIGN: true, token.PLUS_EQ: true, token.MINUS_EQ: true,
	token.STAR_EQ: true, token.SLASH_EQ: true, token.PERCENT_EQ: true,
	token.AND_EQ: true, token.OR_EQ: true, token.XOR_EQ: true,
	token.SHL_EQ: true, token.SHR_EQ: true,
}

// parseExpression implements §4.8's top-level production. partial, when
// non-nil, is a left operand the ambiguity resolver already consumed.
func (p *Parser) parseExpression(partial ast.Expression) ast.Expression {
	g := p.enter()
	defer g.exit()

	expr := p.parseBinaryExpression(partial, minPrecedence)
	switch {
	case assignOps[p.cur.current()]:
		b := p.builderFrom(expr)
		op := p.cur.current()
		p.cur.advance()
		rhs := p.parseExpression(nil)
		return ast.NewAssignment(b.MarkEnd(p.prevEnd()), p.prevEnd(), op, expr, rhs)
	case p.check(token.QUESTION):
		b := p.builderFrom(expr)
		p.cur.advance()
		then := p.parseExpression(nil)
		p.expectToken(token.COLON, "expected ':' in conditional expression")
		els := p.parseExpression(nil)
		return ast.NewConditional(b.MarkEnd(p.prevEnd()), p.prevEnd(), expr, then, els)
	default:
		return expr
	}
}

func (p *Parser) parseBinaryExpression(partial ast.Expression, minPrec int) ast.Expression {
	left := partial
	if left == nil {
		left = p.parseUnaryExpression(nil)
	}
	for prec, ok := binaryPrecedence[p.cur.current()]; ok && prec >= minPrec; prec, ok = binaryPrecedence[p.cur.current()] {
		b := p.builderFrom(left)
		op := p.cur.current()
		p.cur.advance()
		right := p.parseBinaryExpression(nil, prec+1)
		left = ast.NewBinaryOperation(b.MarkEnd(p.prevEnd()), p.prevEnd(), op, left, right)
	}
	return left
}

func (p *Parser) parseUnaryExpression(partial ast.Expression) ast.Expression {
	if partial == nil && isPrefixUnary(p.cur.current()) {
		b := p.builder()
		op := p.cur.current()
		p.cur.advance()
		operand := p.parseUnaryExpression(nil)
		return ast.NewUnaryOperation(b.MarkEnd(p.prevEnd()), p.prevEnd(), op, operand, true)
	}

	expr := p.parseLeftHandSide(partial)
	if p.check(token.INCREMENT) || p.check(token.DECREMENT) {
		b := p.builderFrom(expr)
		op := p.cur.current()
		p.cur.advance()
		return ast.NewUnaryOperation(b.MarkEnd(p.prevEnd()), p.prevEnd(), op, expr, false)
	}
	return expr
}

func isPrefixUnary(t token.Type) bool {
	switch t {
	case token.PLUS, token.MINUS, token.BANG, token.TILDE, token.INCREMENT, token.DECREMENT, token.DELETE:
		return true
	default:
		return false
	}
}

func (p *Parser) parseLeftHandSide(partial ast.Expression) ast.Expression {
	var expr ast.Expression
	switch {
	case partial != nil:
		expr = partial
	case p.check(token.NEW):
		b := p.builder()
		p.cur.advance()
		typ := p.parseTypeName()
		expr = ast.NewNewExpression(b.MarkEnd(p.prevEnd()), p.prevEnd(), typ)
	case p.check(token.PAYABLE) && p.cur.peek() == token.LPAREN:
		b := p.builder()
		info := ast.TokenInfo{Kind: token.ADDRESS}
		p.cur.advance()
		et := ast.NewElementaryTypeName(b.MarkEnd(p.prevEnd()), p.prevEnd(), info, true)
		expr = ast.NewElementaryTypeNameExpression(p.builderFrom(et).MarkEnd(p.prevEnd()), p.prevEnd(), et)
	default:
		expr = p.parsePrimaryExpression()
	}
	return p.parseSuffixes(expr)
}

func (p *Parser) parseSuffixes(expr ast.Expression) ast.Expression {
	for {
		switch {
		case p.check(token.LBRACKET):
			expr = p.parseIndexSuffix(expr)
		case p.check(token.DOT):
			b := p.builderFrom(expr)
			p.cur.advance()
			var member string
			if p.check(token.ADDRESS) {
				member = "address"
				p.cur.advance()
			} else {
				member = p.expectToken(token.IDENTIFIER, "expected member name after '.'").Literal
			}
			expr = ast.NewMemberAccess(b.MarkEnd(p.prevEnd()), p.prevEnd(), expr, member)
		case p.check(token.LPAREN):
			expr = p.parseCallSuffix(expr)
		case p.check(token.LBRACE) && p.cur.peek() == token.IDENTIFIER && p.cur.peekNextNext() == token.COLON:
			expr = p.parseCallOptionsSuffix(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) parseIndexSuffix(expr ast.Expression) ast.Expression {
	b := p.builderFrom(expr)
	p.cur.advance() // '['
	if p.match(token.COLON) {
		var end ast.Expression
		if !p.check(token.RBRACKET) {
			end = p.parseExpression(nil)
		}
		p.expectToken(token.RBRACKET, "expected ']' to close index range access")
		return ast.NewIndexRangeAccess(b.MarkEnd(p.prevEnd()), p.prevEnd(), expr, nil, end)
	}
	var index ast.Expression
	if !p.check(token.RBRACKET) && !p.check(token.COLON) {
		index = p.parseExpression(nil)
	}
	if p.match(token.COLON) {
		var end ast.Expression
		if !p.check(token.RBRACKET) {
			end = p.parseExpression(nil)
		}
		p.expectToken(token.RBRACKET, "expected ']' to close index range access")
		return ast.NewIndexRangeAccess(b.MarkEnd(p.prevEnd()), p.prevEnd(), expr, index, end)
	}
	p.expectToken(token.RBRACKET, "expected ']' to close index access")
	return ast.NewIndexAccess(b.MarkEnd(p.prevEnd()), p.prevEnd(), expr, index)
}

func (p *Parser) parseCallSuffix(callee ast.Expression) ast.Expression {
	b := p.builderFrom(callee)
	p.cur.advance() // '('
	var args []ast.Expression
	var names []string
	if p.check(token.LBRACE) {
		args, names = p.parseNamedArgBlock()
	} else if !p.check(token.RPAREN) {
		args = append(args, p.parseExpression(nil))
		for p.match(token.COMMA) {
			args = append(args, p.parseExpression(nil))
		}
	}
	p.expectToken(token.RPAREN, "expected ')' to close call arguments")
	return ast.NewFunctionCall(b.MarkEnd(p.prevEnd()), p.prevEnd(), callee, args, names)
}

func (p *Parser) parseNamedArgBlock() (args []ast.Expression, names []string) {
	p.cur.advance() // '{'
	if !p.check(token.RBRACE) {
		n, v := p.parseNamedArg()
		names = append(names, n)
		args = append(args, v)
		for p.match(token.COMMA) {
			if p.check(token.RBRACE) {
				p.fatal(diag.TrailingCommaNamedArg, p.currentSpan(), "trailing comma in named argument list")
			}
			n, v := p.parseNamedArg()
			names = append(names, n)
			args = append(args, v)
		}
	}
	p.expectToken(token.RBRACE, "expected '}' to close named argument list")
	return args, names
}

func (p *Parser) parseNamedArg() (string, ast.Expression) {
	name := p.expectToken(token.IDENTIFIER, "expected argument name").Literal
	p.expectToken(token.COLON, "expected ':' after named argument name")
	return name, p.parseExpression(nil)
}

func (p *Parser) parseCallOptionsSuffix(callee ast.Expression) ast.Expression {
	b := p.builderFrom(callee)
	args, names := p.parseNamedArgBlock()
	return ast.NewFunctionCallOptions(b.MarkEnd(p.prevEnd()), p.prevEnd(), callee, names, args)
}

func (p *Parser) parsePrimaryExpression() ast.Expression {
	switch {
	case p.check(token.TRUE) || p.check(token.FALSE):
		b := p.builder()
		val := p.cur.currentLiteral()
		p.cur.advance()
		return ast.NewLiteral(b.MarkEnd(p.prevEnd()), p.prevEnd(), ast.LiteralBool, val, token.ILLEGAL)
	case p.check(token.NUMBER) || p.check(token.HEX_NUMBER):
		return p.parseNumberLiteral()
	case p.check(token.STRING):
		return p.parseStringLiteralRun(token.STRING, ast.LiteralString)
	case p.check(token.UNICODE_STRING):
		return p.parseStringLiteralRun(token.UNICODE_STRING, ast.LiteralUnicodeString)
	case p.check(token.HEX_STRING):
		return p.parseStringLiteralRun(token.HEX_STRING, ast.LiteralHexString)
	case p.check(token.TYPE):
		b := p.builder()
		p.cur.advance()
		return ast.NewIdentifier(b.MarkEnd(p.prevEnd()), p.prevEnd(), "type")
	case p.check(token.IDENTIFIER):
		b := p.builder()
		name := p.cur.currentLiteral()
		p.cur.advance()
		return ast.NewIdentifier(b.MarkEnd(p.prevEnd()), p.prevEnd(), name)
	case token.IsElementaryType(p.cur.current()):
		et := p.parseElementaryTypeName()
		return ast.NewElementaryTypeNameExpression(p.builderFrom(et).MarkEnd(p.prevEnd()), p.prevEnd(), et)
	case p.check(token.LPAREN):
		return p.parseTupleExpression()
	case p.check(token.LBRACKET):
		return p.parseInlineArrayExpression()
	default:
		p.fatal(diag.PrimaryExpected, p.currentSpan(), "expected an expression")
		return nil
	}
}

func (p *Parser) parseNumberLiteral() *ast.Literal {
	b := p.builder()
	val := p.cur.currentLiteral()
	p.cur.advance()
	sub := token.ILLEGAL
	if token.IsSubDenomination(p.cur.current()) {
		sub = p.cur.current()
		p.cur.advance()
	}
	return ast.NewLiteral(b.MarkEnd(p.prevEnd()), p.prevEnd(), ast.LiteralNumber, val, sub)
}

// parseStringLiteralRun folds a run of adjacent same-kind string tokens
// into one literal node, mirroring how the scanner yields separate
// tokens for concatenated string literals.
func (p *Parser) parseStringLiteralRun(kind token.Type, litKind ast.LiteralKind) *ast.Literal {
	b := p.builder()
	val := p.cur.currentLiteral()
	p.cur.advance()
	for p.check(kind) {
		val += p.cur.currentLiteral()
		p.cur.advance()
	}
	return ast.NewLiteral(b.MarkEnd(p.prevEnd()), p.prevEnd(), litKind, val, token.ILLEGAL)
}

func (p *Parser) parseTupleExpression() *ast.TupleExpression {
	b := p.builder()
	p.cur.advance() // '('
	var components []ast.Expression
	if !p.check(token.RPAREN) {
		components = append(components, p.parseTupleComponent())
		for p.match(token.COMMA) {
			components = append(components, p.parseTupleComponent())
		}
	}
	p.expectToken(token.RPAREN, "expected ')' to close tuple expression")
	return ast.NewTupleExpression(b.MarkEnd(p.prevEnd()), p.prevEnd(), components, false)
}

func (p *Parser) parseTupleComponent() ast.Expression {
	if p.check(token.COMMA) || p.check(token.RPAREN) {
		return nil
	}
	return p.parseExpression(nil)
}

func (p *Parser) parseInlineArrayExpression() *ast.TupleExpression {
	b := p.builder()
	p.cur.advance() // '['
	var components []ast.Expression
	if !p.check(token.RBRACKET) {
		for {
			if p.check(token.COMMA) || p.check(token.RBRACKET) {
				p.errorDiag(diag.InlineArrayHole, p.currentSpan(), "inline array elements cannot be omitted")
			} else {
				components = append(components, p.parseExpression(nil))
			}
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expectToken(token.RBRACKET, "expected ']' to close inline array expression")
	return ast.NewTupleExpression(b.MarkEnd(p.prevEnd()), p.prevEnd(), components, true)
}
