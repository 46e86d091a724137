package parser

import (
	"solparse/ast"
	"solparse/diag"
	"solparse/token"
)

// parseSpecificationExpression implements §4.9's two surface shapes:
// the `property(arrayId) <params> <expr>` sugar, desugared to one
// implicit forall group, or explicit leading quantifier groups.
func (p *Parser) parseSpecificationExpression() *ast.SpecificationExpression {
	g := p.enter()
	defer g.exit()

	b := p.builder()

	if p.check(token.IDENTIFIER) && p.cur.currentLiteral() == "property" && p.cur.peek() == token.LPAREN {
		p.cur.advance() // 'property'
		p.cur.advance() // '('
		arrayID := p.expectToken(token.IDENTIFIER, "expected array identifier in property(...)").Literal
		p.expectToken(token.RPAREN, "expected ')' after property array identifier")
		params := p.parseQuantifierParameterList()
		predicate := p.parseExpression(nil)
		p.requireSpecificationTerminator()
		qb := p.builderFrom(predicate)
		group := ast.NewQuantifierGroup(qb.MarkEnd(p.prevEnd()), p.prevEnd(), ast.ForAll, params)
		return ast.NewSpecificationExpression(b.MarkEnd(p.prevEnd()), p.prevEnd(), []*ast.QuantifierGroup{group}, predicate, arrayID)
	}

	var quantifiers []*ast.QuantifierGroup
	for p.check(token.IDENTIFIER) && (p.cur.currentLiteral() == "forall" || p.cur.currentLiteral() == "exists") {
		quantifiers = append(quantifiers, p.parseQuantifierGroup())
	}
	predicate := p.parseExpression(nil)
	p.requireSpecificationTerminator()
	return ast.NewSpecificationExpression(b.MarkEnd(p.prevEnd()), p.prevEnd(), quantifiers, predicate, "")
}

func (p *Parser) parseQuantifierGroup() *ast.QuantifierGroup {
	qb := p.builder()
	kind := ast.ForAll
	if p.cur.currentLiteral() == "exists" {
		kind = ast.Exists
	}
	p.cur.advance()
	params := p.parseQuantifierParameterList()
	return ast.NewQuantifierGroup(qb.MarkEnd(p.prevEnd()), p.prevEnd(), kind, params)
}

func (p *Parser) parseQuantifierParameterList() []*ast.VariableDeclaration {
	p.expectToken(token.LPAREN, "expected '(' to open quantifier parameter list")
	var params []*ast.VariableDeclaration
	if !p.check(token.RPAREN) {
		params = append(params, p.parseQuantifiedVariable())
		for p.match(token.COMMA) {
			if p.check(token.RPAREN) {
				p.fatal(diag.TrailingCommaQuantifier, p.currentSpan(), "trailing comma in quantifier parameter list")
			}
			params = append(params, p.parseQuantifiedVariable())
		}
	}
	p.expectToken(token.RPAREN, "expected ')' to close quantifier parameter list")
	return params
}

func (p *Parser) parseQuantifiedVariable() *ast.VariableDeclaration {
	decl := p.parseVariableDeclaration(ctxParameter)
	switch decl.Type.(type) {
	case *ast.ElementaryTypeName:
		// permitted
	case *ast.MappingTypeName, *ast.ArrayTypeName:
		decl.Location = ast.Storage
	default:
		p.errorDiag(diag.QuantifierTypeUnsupported, decl.NodeSpan(), "quantified variables must be elementary, mapping, or array typed")
	}
	return decl
}

// requireSpecificationTerminator enforces that a specification
// expression ends cleanly at EOF, ';', or the tokens that close a
// surrounding case-list entry.
func (p *Parser) requireSpecificationTerminator() {
	switch p.cur.current() {
	case token.EOF, token.SEMICOLON, token.COLON, token.RBRACKET:
		return
	default:
		p.fatal(diag.ExpectedEndOfSpecificationExpr, p.currentSpan(), "unexpected token after specification expression")
	}
}

// parseCaseList implements the `[ case P : Q ; ... ]` form.
func (p *Parser) parseCaseList() *ast.CaseList {
	g := p.enter()
	defer g.exit()

	b := p.builder()
	p.expectToken(token.LBRACKET, "expected '[' to open case list")
	var entries []*ast.CaseEntry
	for !p.check(token.RBRACKET) && !p.check(token.EOF) {
		entries = append(entries, p.parseCaseEntry())
	}
	p.expectToken(token.RBRACKET, "expected ']' to close case list")
	return ast.NewCaseList(b.MarkEnd(p.prevEnd()), p.prevEnd(), entries)
}

func (p *Parser) parseCaseEntry() *ast.CaseEntry {
	cb := p.builder()
	if !p.check(token.IDENTIFIER) || p.cur.currentLiteral() != "case" {
		p.fatal(diag.ExpectedEndOfCaseListEntry, p.currentSpan(), "expected 'case' in case list")
	}
	p.cur.advance()
	cond := p.parseSpecificationExpression()
	p.expectToken(token.COLON, "expected ':' in case list entry")
	result := p.parseSpecificationExpression()
	if !p.check(token.SEMICOLON) {
		p.fatal(diag.ExpectedEndOfCaseListEntry, p.currentSpan(), "expected ';' to terminate case list entry")
	}
	p.cur.advance()
	return ast.NewCaseEntry(cb.MarkEnd(p.prevEnd()), p.prevEnd(), cond, result)
}
