package parser

import (
	"solparse/ast"
	"solparse/token"
)

// cursor implements the Token Interface contract (§4.3): a read-only
// walk over the scanner's flat token stream with one token of doc-comment
// lookback, comments themselves filtered out of the navigable stream.
type cursor struct {
	src  string
	toks []token.Token
	docs map[int]token.Token
	pos  int
}

func newCursor(src string, raw []token.Token) *cursor {
	c := &cursor{src: src, docs: map[int]token.Token{}}
	var pendingDoc token.Token
	havePending := false
	for _, t := range raw {
		switch t.Type {
		case token.COMMENT:
			havePending = false
		case token.DOC_COMMENT:
			pendingDoc = t
			havePending = true
		default:
			if havePending {
				c.docs[len(c.toks)] = pendingDoc
				havePending = false
			}
			c.toks = append(c.toks, t)
		}
	}
	if len(c.toks) == 0 || c.toks[len(c.toks)-1].Type != token.EOF {
		c.toks = append(c.toks, token.Token{Type: token.EOF})
	}
	return c
}

func (c *cursor) at(i int) token.Token {
	if i < 0 || i >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[i]
}

func (c *cursor) current() token.Type { return c.toks[c.pos].Type }
func (c *cursor) peek() token.Type    { return c.at(c.pos + 1).Type }
func (c *cursor) peekNextNext() token.Type { return c.at(c.pos + 2).Type }

func (c *cursor) advance() token.Type {
	if c.toks[c.pos].Type != token.EOF {
		c.pos++
	}
	return c.current()
}

func (c *cursor) currentToken() token.Token { return c.toks[c.pos] }

func (c *cursor) currentLiteral() string { return c.toks[c.pos].Literal }

func (c *cursor) currentTokenInfo() (firstSize, secondSize int) {
	t := c.toks[c.pos]
	return t.FirstSize, t.SecondSize
}

func (c *cursor) currentCommentLiteral() string {
	if d, ok := c.docs[c.pos]; ok {
		return d.Literal
	}
	return ""
}

func (c *cursor) currentCommentLocation() ast.Span {
	if d, ok := c.docs[c.pos]; ok {
		return ast.Span{Start: d.Pos.Offset, End: d.EndPos.Offset, Source: c.src}
	}
	return ast.Span{}
}

func (c *cursor) source() string { return c.src }

func (c *cursor) previousEnd() int {
	if c.pos == 0 {
		return 0
	}
	return c.toks[c.pos-1].EndPos.Offset
}
