package ast

import "testing"

func TestBuilderAssignsUniqueIncreasingIDs(t *testing.T) {
	ids := NewIDCounter()
	b1 := ids.NewBuilder("src", 0)
	n1 := NewIdentifier(b1.MarkEnd(3), 3, "abc")

	b2 := ids.NewBuilder("src", 4)
	n2 := NewIdentifier(b2.MarkEnd(7), 7, "def")

	if n1.NodeID() == n2.NodeID() {
		t.Fatalf("expected distinct ids, got %d and %d", n1.NodeID(), n2.NodeID())
	}
	if n2.NodeID() <= n1.NodeID() {
		t.Errorf("expected increasing ids, got %d then %d", n1.NodeID(), n2.NodeID())
	}
}

func TestBuilderDefaultsEndToCurrentWhenNeverMarked(t *testing.T) {
	ids := NewIDCounter()
	b := ids.NewBuilder("src", 2)
	n := NewIdentifier(b, 9, "x")

	if n.NodeSpan().Start != 2 || n.NodeSpan().End != 9 {
		t.Errorf("expected span [2,9), got [%d,%d)", n.NodeSpan().Start, n.NodeSpan().End)
	}
}

func TestBuilderFromChildInheritsStart(t *testing.T) {
	ids := NewIDCounter()
	inner := NewIdentifier(ids.NewBuilder("src", 5).MarkEnd(8), 8, "inner")

	outer := ids.NewBuilderFrom("src", inner)
	wrapped := NewUnaryOperation(outer.MarkEnd(10), 10, 0, inner, true)

	if wrapped.NodeSpan().Start != inner.NodeSpan().Start {
		t.Errorf("expected inherited start %d, got %d", inner.NodeSpan().Start, wrapped.NodeSpan().Start)
	}
}

func TestUsingForWildcardHasNilTypeName(t *testing.T) {
	ids := NewIDCounter()
	lib := NewUserDefinedTypeName(ids.NewBuilder("src", 0).MarkEnd(1), 1, []string{"L"})
	u := NewUsingForDirective(ids.NewBuilder("src", 0).MarkEnd(10), 10, lib, nil, false)

	if !u.IsWildcard() {
		t.Errorf("expected wildcard using-for to report IsWildcard() true")
	}
}
