// Package ast defines the abstract syntax tree produced by the parser:
// one struct per concrete node kind, each embedding NodeBase so that
// every node carries a process-unique id and a source span by
// construction.
package ast

import "solparse/token"

// NodeID uniquely identifies a node within a single parse. Ids are
// minted by a Builder's counter, starting at 1; 0 means "no node" in an
// optional-node-reference field.
type NodeID uint64

// Span is a half-open byte range within a source buffer.
type Span struct {
	Start  int
	End    int
	Source string
}

// Empty reports whether the span covers no text.
func (s Span) Empty() bool { return s.End == s.Start }

// NodeBase is embedded by every concrete node type. It is never
// constructed directly outside Builder.finish.
type NodeBase struct {
	ID   NodeID
	Span Span
}

func (b NodeBase) NodeID() NodeID { return b.ID }
func (b NodeBase) NodeSpan() Span { return b.Span }

// Node is satisfied by every AST node.
type Node interface {
	NodeID() NodeID
	NodeSpan() Span
	String() string
}

// Kind classifies a node for generic traversal and printing decisions
// that need a tag rather than a type switch (e.g. in property tests).
type Kind int

const (
	KindUnit Kind = iota
	KindPragmaDirective
	KindImportDirective
	KindContractDefinition
	KindInheritanceSpecifier
	KindStructDefinition
	KindEnumDefinition
	KindEnumValue
	KindFunctionDefinition
	KindModifierDefinition
	KindModifierInvocation
	KindEventDefinition
	KindVariableDeclaration
	KindUsingForDirective
	KindElementaryTypeName
	KindUserDefinedTypeName
	KindFunctionTypeName
	KindMappingTypeName
	KindArrayTypeName
	KindBlock
	KindIfStatement
	KindWhileStatement
	KindDoWhileStatement
	KindForStatement
	KindContinue
	KindBreak
	KindReturn
	KindThrow
	KindTryStatement
	KindCatchClause
	KindEmitStatement
	KindInlineAssemblyStatement
	KindPlaceholderStatement
	KindVariableDeclarationStatement
	KindExpressionStatement
	KindLiteral
	KindIdentifier
	KindTupleExpression
	KindMemberAccess
	KindIndexAccess
	KindIndexRangeAccess
	KindFunctionCall
	KindFunctionCallOptions
	KindNewExpression
	KindUnaryOperation
	KindBinaryOperation
	KindConditional
	KindAssignment
	KindElementaryTypeNameExpression
	KindComment
	KindDocComment
	KindQuantifierGroup
	KindSpecificationExpression
	KindCaseEntry
	KindCaseList
)

// Comment is a plain, non-doc comment. The parser never builds one: its
// token cursor discards plain comments from the token stream.
type Comment struct {
	NodeBase
	Text string
}

func NewComment(b *Builder, currentEnd int, text string) *Comment {
	return &Comment{NodeBase: b.finish(currentEnd), Text: text}
}

func (c *Comment) String() string { return "//" + c.Text }

// DocComment is a `///` or `/** ... */` comment attached to the
// declaration that immediately follows it.
type DocComment struct {
	NodeBase
	Text string
}

func NewDocComment(b *Builder, currentEnd int, text string) *DocComment {
	return &DocComment{NodeBase: b.finish(currentEnd), Text: text}
}

func (d *DocComment) String() string { return "///" + d.Text }

// Builder is the single factory point through which every node in a
// parse is constructed, guaranteeing a unique id and a resolved span
// (invariants 1 and 2 of the data model). A Builder is scoped to one
// grammar production; Start captures the current offset (or inherits a
// child's), and finish stamps the node.
type Builder struct {
	ids    *IDCounter
	source string
	start  int
	end    int
	endSet bool
}

// IDCounter is the single per-parse source of node ids. It must not be
// shared across concurrent parses (see the concurrency model: node ids
// are unique only within one parse).
type IDCounter struct{ next NodeID }

// NewIDCounter creates a counter that mints ids starting at 1; 0 is
// reserved for "no node" in optional-node-reference fields.
func NewIDCounter() *IDCounter { return &IDCounter{next: 1} }

func (c *IDCounter) generate() NodeID {
	id := c.next
	c.next++
	return id
}

// NewBuilder starts a span builder at the current token's start offset.
func (ids *IDCounter) NewBuilder(source string, startOffset int) *Builder {
	return &Builder{ids: ids, source: source, start: startOffset}
}

// NewBuilderFrom starts a span builder inheriting a child node's start.
func (ids *IDCounter) NewBuilderFrom(source string, child Node) *Builder {
	return &Builder{ids: ids, source: source, start: child.NodeSpan().Start}
}

// MarkEnd records end as the given offset (typically the end of the
// current or just-consumed token).
func (b *Builder) MarkEnd(offset int) *Builder {
	b.end = offset
	b.endSet = true
	return b
}

// SetEndFromNode sets end to the end of n's span.
func (b *Builder) SetEndFromNode(n Node) *Builder {
	return b.MarkEnd(n.NodeSpan().End)
}

// SetEmpty collapses the span to start==end.
func (b *Builder) SetEmpty() *Builder {
	b.end = b.start
	b.endSet = true
	return b
}

// finish resolves the span, defaulting end to currentEnd when never
// marked, and mints a fresh id. It is called once per node by the
// per-kind constructors in this package, never directly by the parser.
func (b *Builder) finish(currentEnd int) NodeBase {
	end := b.end
	if !b.endSet {
		end = currentEnd
	}
	return NodeBase{
		ID:   b.ids.generate(),
		Span: Span{Start: b.start, End: end, Source: b.source},
	}
}

// TokenInfo mirrors the scanner's size annotation for elementary types,
// carried alongside a TypeName so later passes know bit widths and
// decimal counts without re-parsing the spelling.
type TokenInfo struct {
	Kind       token.Type
	FirstSize  int
	SecondSize int
}
