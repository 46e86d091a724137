package ast

// QuantifierKind distinguishes a universal from an existential
// quantifier group in a specification expression.
type QuantifierKind int

const (
	ForAll QuantifierKind = iota
	Exists
)

func (k QuantifierKind) String() string {
	if k == Exists {
		return "exists"
	}
	return "forall"
}

// QuantifierGroup is one leading `forall (params)` / `exists (params)`
// clause of a specification expression. Parameters are restricted to
// elementary, mapping, or array types (diagnostic 5674 otherwise).
type QuantifierGroup struct {
	NodeBase
	Kind       QuantifierKind
	Parameters []*VariableDeclaration
}

func NewQuantifierGroup(b *Builder, currentEnd int, kind QuantifierKind, params []*VariableDeclaration) *QuantifierGroup {
	return &QuantifierGroup{NodeBase: b.finish(currentEnd), Kind: kind, Parameters: params}
}

func (q *QuantifierGroup) String() string {
	out := q.Kind.String() + "("
	for i, p := range q.Parameters {
		if i > 0 {
			out += ", "
		}
		out += p.String()
	}
	return out + ")"
}

// SpecificationExpression is a predicate with zero or more leading
// quantifier groups (§4.9). The `property(arrayId) <params> <expr>`
// sugar form desugars to exactly one implicit ForAll group over
// Parameters, tied to ArrayID.
type SpecificationExpression struct {
	NodeBase
	Quantifiers []*QuantifierGroup
	Predicate   Expression
	ArrayID     string // non-empty only for the `property(arrayId)` sugar form
}

func NewSpecificationExpression(b *Builder, currentEnd int, quantifiers []*QuantifierGroup, predicate Expression, arrayID string) *SpecificationExpression {
	return &SpecificationExpression{NodeBase: b.finish(currentEnd), Quantifiers: quantifiers, Predicate: predicate, ArrayID: arrayID}
}

func (s *SpecificationExpression) String() string {
	out := ""
	for _, q := range s.Quantifiers {
		out += q.String() + " "
	}
	return out + s.Predicate.String()
}

// CaseEntry is one `case P : Q ;` entry of a CaseList.
type CaseEntry struct {
	NodeBase
	Condition *SpecificationExpression
	Result    *SpecificationExpression
}

func NewCaseEntry(b *Builder, currentEnd int, cond, result *SpecificationExpression) *CaseEntry {
	return &CaseEntry{NodeBase: b.finish(currentEnd), Condition: cond, Result: result}
}

func (c *CaseEntry) String() string {
	return "case " + c.Condition.String() + ": " + c.Result.String() + ";"
}

// CaseList is `[ case P1 : Q1 ; case P2 : Q2 ; ... ]`.
type CaseList struct {
	NodeBase
	Entries []*CaseEntry
}

func NewCaseList(b *Builder, currentEnd int, entries []*CaseEntry) *CaseList {
	return &CaseList{NodeBase: b.finish(currentEnd), Entries: entries}
}

func (c *CaseList) String() string {
	out := "[\n"
	for _, e := range c.Entries {
		out += "  " + e.String() + "\n"
	}
	return out + "]"
}
