// Package parser implements a hand-written recursive-descent parser for
// a Solidity-like contract language, following the span-builder,
// recursion-guard, and diagnostic-sink design of its scanner counterpart.
package parser

import (
	"fmt"

	"solparse/ast"
	"solparse/diag"
	"solparse/lexer"
	"solparse/token"
)

// compilerVersion is the semantic version this parser implements,
// matched against `pragma solidity` constraints (§4.10).
const compilerVersion = "0.8.24"

const maxRecursionDepth = 1024

// Config is the parser's external configuration (§6 EXTERNAL INTERFACES).
type Config struct {
	EVMVersion    string
	ErrorRecovery bool
	Reporter      *diag.Reporter
}

// Parser parses one source unit. It is not safe for concurrent use;
// independent instances may run on separate goroutines (§5).
type Parser struct {
	cur      *cursor
	ids      *ast.IDCounter
	source   string
	filename string
	cfg      Config

	depth          int
	insideModifier bool
	inRecovery     bool

	parsedSpans []ast.Span
}

// New creates a parser for source, scanning it immediately so lexical
// errors surface as diagnostics before any grammar production runs.
func New(filename, source string, cfg Config) *Parser {
	if cfg.Reporter == nil {
		cfg.Reporter = diag.NewReporter(filename, source)
	}
	sc := lexer.New(filename, source)
	toks := sc.Scan()
	for _, e := range sc.Errors() {
		cfg.Reporter.Error(diag.IllegalToken, ast.Span{Start: e.Pos.Offset, End: e.Pos.Offset + 1, Source: source}, e.Message)
	}
	return &Parser{
		cur:      newCursor(source, toks),
		ids:      ast.NewIDCounter(),
		source:   source,
		filename: filename,
		cfg:      cfg,
	}
}

// fatalParseError is the unexported sentinel raised via panic and caught
// at the three driver entry points below and at the contract-body and
// block recovery points, which rethrow it when recovery does not apply
// (§7, §9).
type fatalParseError struct{}

func (fatalParseError) Error() string { return "fatal parse error" }

// recursionGuard enforces §4.2: every non-trivial production increments
// depth on entry and decrements on every exit path via defer.
type recursionGuard struct{ p *Parser }

func (p *Parser) enter() *recursionGuard {
	p.depth++
	if p.depth > maxRecursionDepth {
		p.fatal(diag.IllegalToken, p.currentSpan(), "maximum parse recursion depth exceeded")
	}
	return &recursionGuard{p}
}

func (g *recursionGuard) exit() { g.p.depth-- }

// modifierFlag scopes the inside-modifier flag for the duration of a
// modifier body parse, always restoring it on exit.
type modifierFlag struct {
	p   *Parser
	old bool
}

func (p *Parser) enterModifier() *modifierFlag {
	f := &modifierFlag{p: p, old: p.insideModifier}
	p.insideModifier = true
	return f
}

func (f *modifierFlag) exit() { f.p.insideModifier = f.old }

// --- diagnostics -----------------------------------------------------

func (p *Parser) currentSpan() ast.Span {
	t := p.cur.currentToken()
	return ast.Span{Start: t.Pos.Offset, End: t.EndPos.Offset, Source: p.source}
}

func (p *Parser) spanOf(t token.Token) ast.Span {
	return ast.Span{Start: t.Pos.Offset, End: t.EndPos.Offset, Source: p.source}
}

func (p *Parser) warning(id int, span ast.Span, message string) {
	p.cfg.Reporter.Warning(id, span, message)
}

func (p *Parser) errorDiag(id int, span ast.Span, message string) {
	p.cfg.Reporter.Error(id, span, message)
}

// fatal records a fatal diagnostic and unwinds via panic/recover to the
// nearest recovery point or driver entry (§7, §9).
func (p *Parser) fatal(id int, span ast.Span, message string) {
	p.cfg.Reporter.Fatal(id, span, message)
	panic(fatalParseError{})
}

// --- token helpers -----------------------------------------------------

func (p *Parser) check(k token.Type) bool { return p.cur.current() == k }

func (p *Parser) match(k token.Type) bool {
	if p.check(k) {
		p.cur.advance()
		return true
	}
	return false
}

// expectToken consumes the current token if it matches k; otherwise it
// records an error diagnostic and leaves the cursor where it is (§4.3).
func (p *Parser) expectToken(k token.Type, message string) token.Token {
	tok := p.cur.currentToken()
	if tok.Type != k {
		p.errorDiag(diag.IllegalToken, p.spanOf(tok), message)
		return tok
	}
	p.cur.advance()
	return tok
}

// expectTokenOrConsumeUntil is the error-recovery variant of expectToken:
// on mismatch it skips tokens until k or end-of-source.
func (p *Parser) expectTokenOrConsumeUntil(k token.Type, message string) {
	if p.match(k) {
		return
	}
	p.errorDiag(diag.IllegalToken, p.currentSpan(), message)
	for !p.check(k) && !p.check(token.EOF) {
		p.cur.advance()
	}
	p.match(k)
}

// builder starts a span at the current token's start offset.
func (p *Parser) builder() *ast.Builder {
	return p.ids.NewBuilder(p.source, p.cur.currentToken().Pos.Offset)
}

// builderFrom starts a span inheriting an already-built child's start.
func (p *Parser) builderFrom(child ast.Node) *ast.Builder {
	return p.ids.NewBuilderFrom(p.source, child)
}

// prevEnd is the end offset of the most recently consumed token, the
// usual `currentEnd` argument to an ast.NewXxx call once a production has
// consumed everything belonging to its node.
func (p *Parser) prevEnd() int { return p.cur.previousEnd() }

func (p *Parser) recordSpan(s ast.Span) { p.parsedSpans = append(p.parsedSpans, s) }

// --- driver entry points (§4.11) --------------------------------------

// ParseUnit parses a complete source unit: the first of the three public
// entry points.
func (p *Parser) ParseUnit() (unit *ast.Unit, err error) {
	p.depth = 0
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(fatalParseError); !ok {
				panic(r)
			}
			if len(p.cfg.Reporter.Diagnostics()) == 0 {
				panic(r)
			}
			unit = nil
		}
	}()
	unit = p.parseUnitBody()
	if p.depth != 0 {
		panic(fmt.Sprintf("parser: recursion depth %d after successful parse", p.depth))
	}
	return unit, nil
}

// ParseExpression parses a standalone expression: the second entry
// point, used by tooling that only needs to evaluate one expression
// (e.g. a REPL or a specification sub-expression host).
func (p *Parser) ParseExpression() (expr ast.Expression, err error) {
	p.depth = 0
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(fatalParseError); !ok {
				panic(r)
			}
			if len(p.cfg.Reporter.Diagnostics()) == 0 {
				panic(r)
			}
			expr = nil
		}
	}()
	expr = p.parseExpression(nil)
	if p.depth != 0 {
		panic(fmt.Sprintf("parser: recursion depth %d after successful parse", p.depth))
	}
	return expr, nil
}

// ParseSpecification parses either a specification expression or a
// case list, whichever the input spells: the third entry point.
func (p *Parser) ParseSpecification() (node ast.Node, err error) {
	p.depth = 0
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(fatalParseError); !ok {
				panic(r)
			}
			if len(p.cfg.Reporter.Diagnostics()) == 0 {
				panic(r)
			}
			node = nil
		}
	}()
	if p.check(token.LBRACKET) {
		node = p.parseCaseList()
	} else {
		node = p.parseSpecificationExpression()
	}
	if p.depth != 0 {
		panic(fmt.Sprintf("parser: recursion depth %d after successful parse", p.depth))
	}
	return node, nil
}
