package parser

import (
	"solparse/ast"
	"solparse/diag"
	"solparse/token"
)

// varDeclContext selects which modifiers and terminators are legal for a
// given surface the variable-declaration grammar is reused across (§4.4).
type varDeclContext int

const (
	ctxStateVariable varDeclContext = iota
	ctxParameter
	ctxReturnParameter
	ctxStructField
	ctxEventParameter
	ctxLocalVariable
)

func visibilityFromToken(t token.Type) ast.Visibility {
	switch t {
	case token.PUBLIC:
		return ast.Public
	case token.PRIVATE:
		return ast.PrivateVisibility
	case token.INTERNAL:
		return ast.InternalVisibility
	case token.EXTERNAL:
		return ast.ExternalVisibility
	default:
		return ast.DefaultVisibility
	}
}

func stateMutabilityFromToken(t token.Type) ast.StateMutability {
	switch t {
	case token.PURE:
		return ast.Pure
	case token.VIEW:
		return ast.View
	case token.PAYABLE:
		return ast.Payable
	default:
		return ast.MutabilityUnspecified
	}
}

func dataLocationFromToken(t token.Type) ast.DataLocation {
	switch t {
	case token.STORAGE:
		return ast.Storage
	case token.MEMORY:
		return ast.Memory
	case token.CALLDATA:
		return ast.CallData
	default:
		return ast.LocationUnspecified
	}
}

// parseUserDefinedTypeName parses a dotted identifier path such as
// `x.y.z`, used wherever the grammar names a contract/library/interface
// or struct/enum by reference rather than declaring it.
func (p *Parser) parseUserDefinedTypeName() *ast.UserDefinedTypeName {
	b := p.builder()
	tok := p.expectToken(token.IDENTIFIER, "expected identifier")
	path := []string{tok.Literal}
	for p.check(token.DOT) && p.cur.peek() == token.IDENTIFIER {
		p.cur.advance()
		idTok := p.cur.currentToken()
		path = append(path, idTok.Literal)
		p.cur.advance()
	}
	return ast.NewUserDefinedTypeName(b.MarkEnd(p.prevEnd()), p.prevEnd(), path)
}

// parseOptionalOverrideList parses `(Base, Base2, ...)` following the
// `override` keyword; returns nil if no parenthesized list was written.
func (p *Parser) parseOptionalOverrideList() []*ast.UserDefinedTypeName {
	if !p.match(token.LPAREN) {
		return nil
	}
	var list []*ast.UserDefinedTypeName
	if !p.check(token.RPAREN) {
		list = append(list, p.parseUserDefinedTypeName())
		for p.match(token.COMMA) {
			list = append(list, p.parseUserDefinedTypeName())
		}
	}
	p.expectToken(token.RPAREN, "expected ')' to close override list")
	return list
}

// parseParameterList parses a parenthesized, comma-separated variable
// declaration list shared by function headers, modifiers, and events. A
// trailing comma is a fatal error (id 7591).
func (p *Parser) parseParameterList(ctx varDeclContext) []*ast.VariableDeclaration {
	p.expectToken(token.LPAREN, "expected '('")
	var params []*ast.VariableDeclaration
	if !p.check(token.RPAREN) {
		params = append(params, p.parseVariableDeclaration(ctx))
		for p.match(token.COMMA) {
			if p.check(token.RPAREN) {
				p.fatal(diag.TrailingCommaParam, p.currentSpan(), "trailing comma in parameter list")
			}
			params = append(params, p.parseVariableDeclaration(ctx))
		}
	}
	p.expectToken(token.RPAREN, "expected ')' to close parameter list")
	return params
}

// captureDoc returns the doc comment directly preceding the current
// token, or nil if there is none.
func (p *Parser) captureDoc() *ast.DocComment {
	lit := p.cur.currentCommentLiteral()
	if lit == "" {
		return nil
	}
	loc := p.cur.currentCommentLocation()
	b := p.ids.NewBuilder(p.source, loc.Start).MarkEnd(loc.End)
	return ast.NewDocComment(b, loc.End, lit)
}

// recoverAndContinue implements the recovery behavior of §7: on a fatal
// error, if recovery is enabled and the reporter is not in an
// excessive-error state, skip to the next `;` or `}` and resume; a `;`
// is consumed so the caller's loop resumes with the next member or
// statement, while a `}` is left for the caller's loop condition to end
// on. Returns false when the error must be rethrown.
func (p *Parser) recoverAndContinue() bool {
	if !p.cfg.ErrorRecovery || p.cfg.Reporter.ExcessiveErrors() {
		return false
	}
	p.inRecovery = true
	for !p.check(token.SEMICOLON) && !p.check(token.RBRACE) && !p.check(token.EOF) {
		p.cur.advance()
	}
	if p.check(token.SEMICOLON) {
		p.cur.advance()
		return true
	}
	return p.check(token.RBRACE)
}
