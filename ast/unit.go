package ast

// Unit is the root of a parsed source file: an ordered list of
// top-level declarations plus whatever license string the license
// scanner (see parser/license.go) attached after the fact.
type Unit struct {
	NodeBase
	Nodes   []Node
	License string // empty if none was found
}

func NewUnit(b *Builder, currentEnd int, nodes []Node) *Unit {
	return &Unit{NodeBase: b.finish(currentEnd), Nodes: nodes}
}

func (u *Unit) String() string {
	out := ""
	for i, n := range u.Nodes {
		if i > 0 {
			out += "\n\n"
		}
		out += n.String()
	}
	return out
}

// PragmaDirective records the literal spellings of a pragma's tokens, e.g.
// `pragma solidity ^0.8.0;` is stored as the literals ["solidity", "^", "0.8.0"];
// a dotted version number is kept as one literal. Token kinds are not kept.
type PragmaDirective struct {
	NodeBase
	Literals []string
}

func NewPragmaDirective(b *Builder, currentEnd int, literals []string) *PragmaDirective {
	return &PragmaDirective{NodeBase: b.finish(currentEnd), Literals: literals}
}

func (p *PragmaDirective) String() string {
	out := "pragma"
	for _, l := range p.Literals {
		out += " " + l
	}
	return out + ";"
}

// ImportAlias is one `<symbol> [as <alias>]` entry of a named import list.
type ImportAlias struct {
	Symbol    string
	Alias     string // empty if no "as"
	AliasSpan Span
}

// ImportDirective covers all three surface forms named in the spec:
// `import "p" [as id];`, `import {a as b, ...} from "p";`, and
// `import * as id from "p";`.
type ImportDirective struct {
	NodeBase
	Path      string
	UnitAlias string // form 1's "as id"; empty otherwise
	Wildcard  bool   // form 3
	WildAlias string // form 3's alias
	Aliases   []ImportAlias
}

func NewImportDirective(b *Builder, currentEnd int, path, unitAlias string, wildcard bool, wildAlias string, aliases []ImportAlias) *ImportDirective {
	return &ImportDirective{
		NodeBase:  b.finish(currentEnd),
		Path:      path,
		UnitAlias: unitAlias,
		Wildcard:  wildcard,
		WildAlias: wildAlias,
		Aliases:   aliases,
	}
}

func (i *ImportDirective) String() string {
	switch {
	case i.Wildcard:
		return "import * as " + i.WildAlias + " from \"" + i.Path + "\";"
	case len(i.Aliases) > 0:
		out := "import {"
		for idx, a := range i.Aliases {
			if idx > 0 {
				out += ", "
			}
			out += a.Symbol
			if a.Alias != "" {
				out += " as " + a.Alias
			}
		}
		return out + "} from \"" + i.Path + "\";"
	case i.UnitAlias != "":
		return "import \"" + i.Path + "\" as " + i.UnitAlias + ";"
	default:
		return "import \"" + i.Path + "\";"
	}
}
