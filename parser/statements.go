package parser

import (
	"solparse/ast"
	"solparse/diag"
	"solparse/token"
)

func (p *Parser) parseBlock() *ast.Block {
	g := p.enter()
	defer g.exit()

	b := p.builder()
	p.expectToken(token.LBRACE, "expected '{' to open block")
	var stmts []ast.Statement
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		s, ok := p.tryParseStatement()
		if ok && s != nil {
			stmts = append(stmts, s)
			p.recordSpan(s.NodeSpan())
		}
	}
	p.expectToken(token.RBRACE, "expected '}' to close block")
	return ast.NewBlock(b.MarkEnd(p.prevEnd()), p.prevEnd(), stmts)
}

func (p *Parser) tryParseStatement() (stmt ast.Statement, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isFatal := r.(fatalParseError); !isFatal {
				panic(r)
			}
			if p.recoverAndContinue() {
				stmt, ok = nil, false
				return
			}
			panic(r)
		}
	}()
	return p.parseStatement(), true
}

func (p *Parser) parseStatement() ast.Statement {
	g := p.enter()
	defer g.exit()

	switch {
	case p.check(token.LBRACE):
		return p.parseBlock()
	case p.check(token.IF):
		return p.parseIfStatement()
	case p.check(token.WHILE):
		return p.parseWhileStatement()
	case p.check(token.DO):
		return p.parseDoWhileStatement()
	case p.check(token.FOR):
		return p.parseForStatement()
	case p.check(token.CONTINUE):
		b := p.builder()
		p.cur.advance()
		p.expectToken(token.SEMICOLON, "expected ';' after 'continue'")
		return ast.NewContinue(b.MarkEnd(p.prevEnd()), p.prevEnd())
	case p.check(token.BREAK):
		b := p.builder()
		p.cur.advance()
		p.expectToken(token.SEMICOLON, "expected ';' after 'break'")
		return ast.NewBreak(b.MarkEnd(p.prevEnd()), p.prevEnd())
	case p.check(token.THROW):
		b := p.builder()
		p.cur.advance()
		p.expectToken(token.SEMICOLON, "expected ';' after 'throw'")
		return ast.NewThrow(b.MarkEnd(p.prevEnd()), p.prevEnd())
	case p.check(token.RETURN):
		return p.parseReturnStatement()
	case p.check(token.TRY):
		return p.parseTryStatement()
	case p.check(token.ASSEMBLY):
		return p.parseInlineAssemblyStatement()
	case p.check(token.EMIT):
		return p.parseEmitStatement()
	case p.insideModifier && p.check(token.IDENTIFIER) && p.cur.currentLiteral() == "_" && p.cur.peek() == token.SEMICOLON:
		b := p.builder()
		p.cur.advance()
		p.cur.advance()
		return ast.NewPlaceholderStatement(b.MarkEnd(p.prevEnd()), p.prevEnd())
	default:
		return p.parseSimpleStatementTerminated()
	}
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	b := p.builder()
	p.cur.advance() // 'if'
	p.expectToken(token.LPAREN, "expected '(' after 'if'")
	cond := p.parseExpression(nil)
	p.expectToken(token.RPAREN, "expected ')' to close 'if' condition")
	then := p.parseStatement()
	var els ast.Statement
	if p.match(token.ELSE) {
		els = p.parseStatement()
	}
	return ast.NewIfStatement(b.MarkEnd(p.prevEnd()), p.prevEnd(), cond, then, els)
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	b := p.builder()
	p.cur.advance() // 'while'
	p.expectToken(token.LPAREN, "expected '(' after 'while'")
	cond := p.parseExpression(nil)
	p.expectToken(token.RPAREN, "expected ')' to close 'while' condition")
	body := p.parseStatement()
	return ast.NewWhileStatement(b.MarkEnd(p.prevEnd()), p.prevEnd(), cond, body)
}

func (p *Parser) parseDoWhileStatement() *ast.DoWhileStatement {
	b := p.builder()
	p.cur.advance() // 'do'
	body := p.parseStatement()
	p.expectToken(token.WHILE, "expected 'while' after do-block")
	p.expectToken(token.LPAREN, "expected '(' after 'while'")
	cond := p.parseExpression(nil)
	p.expectToken(token.RPAREN, "expected ')' to close 'while' condition")
	p.expectToken(token.SEMICOLON, "expected ';' after do-while statement")
	return ast.NewDoWhileStatement(b.MarkEnd(p.prevEnd()), p.prevEnd(), body, cond)
}

func (p *Parser) parseForStatement() *ast.ForStatement {
	b := p.builder()
	p.cur.advance() // 'for'
	p.expectToken(token.LPAREN, "expected '(' after 'for'")

	var init ast.Statement
	if !p.check(token.SEMICOLON) {
		init = p.parseSimpleStatement()
	}
	p.expectToken(token.SEMICOLON, "expected ';' after for-loop initializer")

	var cond ast.Expression
	if !p.check(token.SEMICOLON) {
		cond = p.parseExpression(nil)
	}
	p.expectToken(token.SEMICOLON, "expected ';' after for-loop condition")

	var loop ast.Statement
	if !p.check(token.RPAREN) {
		expr := p.parseExpression(nil)
		lb := p.builderFrom(expr)
		loop = ast.NewExpressionStatement(lb.MarkEnd(p.prevEnd()), p.prevEnd(), expr)
	}
	p.expectToken(token.RPAREN, "expected ')' to close for-loop header")

	body := p.parseStatement()
	return ast.NewForStatement(b.MarkEnd(p.prevEnd()), p.prevEnd(), init, cond, loop, body)
}

func (p *Parser) parseReturnStatement() *ast.Return {
	b := p.builder()
	p.cur.advance() // 'return'
	var value ast.Expression
	if !p.check(token.SEMICOLON) {
		value = p.parseExpression(nil)
	}
	p.expectToken(token.SEMICOLON, "expected ';' after return statement")
	return ast.NewReturn(b.MarkEnd(p.prevEnd()), p.prevEnd(), value)
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	b := p.builder()
	p.cur.advance() // 'try'
	call := p.parseExpression(nil)

	var returns []*ast.VariableDeclaration
	if p.match(token.RETURNS) {
		returns = p.parseParameterList(ctxReturnParameter)
	}

	successBody := p.parseBlock()
	successClause := ast.NewCatchClause(p.builderFrom(successBody).MarkEnd(successBody.NodeSpan().End), successBody.NodeSpan().End, "", nil, successBody)
	clauses := []*ast.CatchClause{successClause}

	for p.check(token.CATCH) {
		clauses = append(clauses, p.parseCatchClause())
	}
	return ast.NewTryStatement(b.MarkEnd(p.prevEnd()), p.prevEnd(), call, returns, clauses)
}

func (p *Parser) parseCatchClause() *ast.CatchClause {
	cb := p.builder()
	p.cur.advance() // 'catch'
	errName := ""
	var params []*ast.VariableDeclaration
	if p.check(token.IDENTIFIER) {
		errName = p.cur.currentLiteral()
		p.cur.advance()
	}
	if p.check(token.LPAREN) {
		params = p.parseParameterList(ctxParameter)
	}
	body := p.parseBlock()
	return ast.NewCatchClause(cb.MarkEnd(p.prevEnd()), p.prevEnd(), errName, params, body)
}

func (p *Parser) parseInlineAssemblyStatement() *ast.InlineAssemblyStatement {
	b := p.builder()
	p.cur.advance() // 'assembly'
	dialect := ""
	if p.check(token.STRING) {
		dialect = p.cur.currentLiteral()
		if dialect != "evmasm" {
			p.errorDiag(diag.AssemblyDialect, p.currentSpan(), "unsupported inline assembly dialect")
		}
		p.cur.advance()
	}
	p.expectToken(token.LBRACE, "expected '{' to open assembly block")
	depth := 1
	start := p.cur.currentToken().Pos.Offset
	end := start
	for !p.check(token.EOF) {
		if p.check(token.LBRACE) {
			depth++
		} else if p.check(token.RBRACE) {
			depth--
			if depth == 0 {
				break
			}
		}
		end = p.cur.currentToken().EndPos.Offset
		p.cur.advance()
	}
	p.expectToken(token.RBRACE, "expected '}' to close assembly block")
	body := ""
	if end > start {
		body = p.source[start:end]
	}
	return ast.NewInlineAssemblyStatement(b.MarkEnd(p.prevEnd()), p.prevEnd(), dialect, body)
}

func (p *Parser) parseEmitStatement() *ast.EmitStatement {
	b := p.builder()
	p.cur.advance() // 'emit'
	if !p.check(token.IDENTIFIER) {
		p.fatal(diag.EmitNameExpected, p.currentSpan(), "expected event name after 'emit'")
	}
	nameExpr := p.parseLeftHandSideEmitCallee()
	call, ok := nameExpr.(*ast.FunctionCall)
	if !ok {
		p.fatal(diag.EmitNameExpected, p.currentSpan(), "expected a function call after 'emit'")
	}
	p.expectToken(token.SEMICOLON, "expected ';' after emit statement")
	return ast.NewEmitStatement(b.MarkEnd(p.prevEnd()), p.prevEnd(), call)
}

// parseLeftHandSideEmitCallee parses the dotted-path-plus-call grammar
// of an emit statement by reusing the general left-hand-side suffix
// loop over a bare identifier primary.
func (p *Parser) parseLeftHandSideEmitCallee() ast.Expression {
	b := p.builder()
	name := p.cur.currentLiteral()
	p.cur.advance()
	id := ast.NewIdentifier(b.MarkEnd(p.prevEnd()), p.prevEnd(), name)
	return p.parseSuffixes(id)
}

// --- the ambiguity resolver (§4.7) ------------------------------------

type pathSegment struct {
	isRange bool
	index   ast.Expression
	start   ast.Expression
	end     ast.Expression
}

// parseSimpleStatementTerminated parses one simple statement (variable
// declaration or expression) followed by its terminating ';'.
func (p *Parser) parseSimpleStatementTerminated() ast.Statement {
	s := p.parseSimpleStatement()
	p.expectToken(token.SEMICOLON, "expected ';' after statement")
	return s
}

// parseSimpleStatement dispatches on a fast path when the current token
// alone decides the category, the leading-'(' tuple form, or the
// general ambiguity resolver otherwise.
func (p *Parser) parseSimpleStatement() ast.Statement {
	switch {
	case p.check(token.MAPPING) || p.check(token.FUNCTION):
		return p.parseVariableDeclarationStatementHead()
	case p.check(token.LPAREN):
		return p.parseParenLeadingSimpleStatement()
	case p.check(token.IDENTIFIER) || token.IsElementaryType(p.cur.current()):
		return p.resolveIndexAccessedPathStatement()
	default:
		b := p.builder()
		expr := p.parseExpression(nil)
		return ast.NewExpressionStatement(b.MarkEnd(p.prevEnd()), p.prevEnd(), expr)
	}
}

func (p *Parser) parseVariableDeclarationStatementHead() ast.Statement {
	b := p.builder()
	decl := p.parseVariableDeclaration(ctxLocalVariable)
	var value ast.Expression
	if p.match(token.ASSIGN) {
		value = p.parseExpression(nil)
	}
	return ast.NewVariableDeclarationStatement(b.MarkEnd(p.prevEnd()), p.prevEnd(), []*ast.VariableDeclaration{decl}, value)
}

// resolveIndexAccessedPathStatement implements steps 2-4 of the
// ambiguity resolver for the common (non-tuple) case: capture a dotted
// path or elementary type followed by index/range segments, then decide
// whether what follows makes this a declaration or an expression.
func (p *Parser) resolveIndexAccessedPathStatement() ast.Statement {
	b := p.builder()

	var elementary *ast.ElementaryTypeName
	var idPath []string
	if token.IsElementaryType(p.cur.current()) {
		elementary = p.parseElementaryTypeName()
	} else {
		idTok := p.cur.currentToken()
		idPath = append(idPath, idTok.Literal)
		p.cur.advance()
		for p.check(token.DOT) && p.cur.peek() == token.IDENTIFIER {
			p.cur.advance()
			idPath = append(idPath, p.cur.currentToken().Literal)
			p.cur.advance()
		}
	}

	var segments []pathSegment
	for p.check(token.LBRACKET) {
		p.cur.advance()
		if p.match(token.COLON) {
			var end ast.Expression
			if !p.check(token.RBRACKET) {
				end = p.parseExpression(nil)
			}
			p.expectToken(token.RBRACKET, "expected ']' to close index range access")
			segments = append(segments, pathSegment{isRange: true, end: end})
			continue
		}
		var idx ast.Expression
		if !p.check(token.RBRACKET) && !p.check(token.COLON) {
			idx = p.parseExpression(nil)
		}
		if p.match(token.COLON) {
			var end ast.Expression
			if !p.check(token.RBRACKET) {
				end = p.parseExpression(nil)
			}
			p.expectToken(token.RBRACKET, "expected ']' to close index range access")
			segments = append(segments, pathSegment{isRange: true, start: idx, end: end})
			continue
		}
		p.expectToken(token.RBRACKET, "expected ']' to close index access")
		segments = append(segments, pathSegment{index: idx})
	}

	isDeclaration := p.check(token.IDENTIFIER) || token.IsDataLocation(p.cur.current())
	if isDeclaration {
		return p.rebuildAsDeclaration(b, elementary, idPath, segments)
	}
	return p.rebuildAsExpression(b, elementary, idPath, segments)
}

func (p *Parser) rebuildAsDeclaration(b *ast.Builder, elementary *ast.ElementaryTypeName, idPath []string, segments []pathSegment) ast.Statement {
	var typ ast.TypeName
	if elementary != nil {
		typ = elementary
	} else {
		typ = ast.NewUserDefinedTypeName(b.MarkEnd(p.prevEnd()), p.prevEnd(), idPath)
	}
	for _, seg := range segments {
		if seg.isRange {
			p.errorDiag(diag.ArrayLengthExpected, p.currentSpan(), "expected array length expression")
			typ = ast.NewArrayTypeName(p.builderFrom(typ).MarkEnd(p.prevEnd()), p.prevEnd(), typ, nil)
			continue
		}
		typ = ast.NewArrayTypeName(p.builderFrom(typ).MarkEnd(p.prevEnd()), p.prevEnd(), typ, seg.index)
	}

	var location ast.DataLocation = ast.LocationUnspecified
	if token.IsDataLocation(p.cur.current()) {
		location = dataLocationFromToken(p.cur.current())
		p.cur.advance()
	}
	nameTok := p.expectToken(token.IDENTIFIER, "expected variable name")

	decl := ast.NewVariableDeclaration(p.builderFrom(typ).MarkEnd(p.prevEnd()), p.prevEnd(), typ, nameTok.Literal, nil,
		ast.DefaultVisibility, nil, false, false, ast.Mutable, nil, location)

	var value ast.Expression
	if p.match(token.ASSIGN) {
		value = p.parseExpression(nil)
	}
	return ast.NewVariableDeclarationStatement(b.MarkEnd(p.prevEnd()), p.prevEnd(), []*ast.VariableDeclaration{decl}, value)
}

func (p *Parser) rebuildAsExpression(b *ast.Builder, elementary *ast.ElementaryTypeName, idPath []string, segments []pathSegment) ast.Statement {
	var expr ast.Expression
	if elementary != nil {
		expr = ast.NewElementaryTypeNameExpression(b.MarkEnd(p.prevEnd()), p.prevEnd(), elementary)
	} else {
		expr = ast.NewIdentifier(b.MarkEnd(p.prevEnd()), p.prevEnd(), idPath[0])
		for _, member := range idPath[1:] {
			expr = ast.NewMemberAccess(p.builderFrom(expr).MarkEnd(p.prevEnd()), p.prevEnd(), expr, member)
		}
	}
	for _, seg := range segments {
		if seg.isRange {
			expr = ast.NewIndexRangeAccess(p.builderFrom(expr).MarkEnd(p.prevEnd()), p.prevEnd(), expr, seg.start, seg.end)
		} else {
			expr = ast.NewIndexAccess(p.builderFrom(expr).MarkEnd(p.prevEnd()), p.prevEnd(), expr, seg.index)
		}
	}
	expr = p.parseSuffixes(expr)
	expr = p.parseExpression(expr)
	return ast.NewExpressionStatement(b.MarkEnd(p.prevEnd()), p.prevEnd(), expr)
}

// parseParenLeadingSimpleStatement handles a statement opening with '(',
// which is either a parenthesized tuple of variable declarations (with a
// single shared initializer) or a parenthesized tuple expression.
func (p *Parser) parseParenLeadingSimpleStatement() ast.Statement {
	b := p.builder()
	p.cur.advance() // '('

	var declComponents []*ast.VariableDeclaration
	var exprComponents []ast.Expression
	isDeclTuple := false
	sawNonEmpty := false

	appendEmpty := func() {
		declComponents = append(declComponents, nil)
		exprComponents = append(exprComponents, nil)
	}
	for p.check(token.COMMA) {
		appendEmpty()
		p.cur.advance()
	}

	if !p.check(token.RPAREN) {
		stmt := p.parseSimpleStatement()
		switch s := stmt.(type) {
		case *ast.VariableDeclarationStatement:
			isDeclTuple = true
			declComponents = append(declComponents, s.Declarations...)
			exprComponents = append(exprComponents, nil)
		case *ast.ExpressionStatement:
			exprComponents = append(exprComponents, s.Expression)
			declComponents = append(declComponents, nil)
		}
		sawNonEmpty = true
	}

	for p.match(token.COMMA) {
		if p.check(token.RPAREN) || p.check(token.COMMA) {
			appendEmpty()
			continue
		}
		if isDeclTuple || !sawNonEmpty {
			decl := p.parseVariableDeclaration(ctxLocalVariable)
			declComponents = append(declComponents, decl)
			exprComponents = append(exprComponents, nil)
			isDeclTuple = true
		} else {
			expr := p.parseExpression(nil)
			exprComponents = append(exprComponents, expr)
			declComponents = append(declComponents, nil)
		}
		sawNonEmpty = true
	}
	p.expectToken(token.RPAREN, "expected ')' to close tuple")

	if isDeclTuple {
		var value ast.Expression
		if p.match(token.ASSIGN) {
			value = p.parseExpression(nil)
		}
		return ast.NewVariableDeclarationStatement(b.MarkEnd(p.prevEnd()), p.prevEnd(), declComponents, value)
	}

	tuple := ast.NewTupleExpression(b.MarkEnd(p.prevEnd()), p.prevEnd(), exprComponents, false)
	full := p.parseExpression(tuple)
	return ast.NewExpressionStatement(b.MarkEnd(p.prevEnd()), p.prevEnd(), full)
}
