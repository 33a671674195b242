package lattice

import (
	"testing"
)

// uniformConnector returns a fixed transition cost for every edge,
// letting tests isolate RunViterbi's accumulation logic from a real
// connector table.
type uniformConnector struct{ cost int32 }

func (c uniformConnector) TransitionCost(rid, lid uint16) int32 { return c.cost }

func TestRunViterbiSingleChain(t *testing.T) {
	// BOS -> a(wcost=10) -> b(wcost=15) -> c(wcost=15) -> EOS, reading length 3.
	l := New(3)
	a := l.AddNode(Node{Key: "a", Value: "A", WCost: 10, BeginPos: 0, EndPos: 1, LID: 1, RID: 1})
	b := l.AddNode(Node{Key: "b", Value: "B", WCost: 15, BeginPos: 1, EndPos: 2, LID: 1, RID: 1})
	c := l.AddNode(Node{Key: "c", Value: "C", WCost: 15, BeginPos: 2, EndPos: 3, LID: 1, RID: 1})

	conn := uniformConnector{cost: 0}
	if err := RunViterbi(l, conn); err != nil {
		t.Fatalf("RunViterbi() error = %v", err)
	}

	if got := l.Node(a).Cost; got != 10 {
		t.Errorf("a.Cost = %d, want 10", got)
	}
	if got := l.Node(b).Cost; got != 25 {
		t.Errorf("b.Cost = %d, want 25", got)
	}
	if got := l.Node(c).Cost; got != 40 {
		t.Errorf("c.Cost = %d, want 40", got)
	}
	if got := l.Node(l.EOS()).Cost; got != 40 {
		t.Errorf("EOS.Cost = %d, want 40", got)
	}
	if l.Node(b).Prev != a {
		t.Error("b.Prev != a")
	}
	if l.Node(c).Prev != b {
		t.Error("c.Prev != b")
	}
}

func TestRunViterbiUnreachableNode(t *testing.T) {
	l := New(2)
	// Node spans [1,2) but nothing ends at position 1, so it's unreachable.
	l.AddNode(Node{Key: "x", Value: "X", WCost: 5, BeginPos: 1, EndPos: 2})

	conn := uniformConnector{cost: 0}
	if err := RunViterbi(l, conn); err == nil {
		t.Fatal("expected error for unreachable node, got nil")
	}
}

func TestNodesEndingAtAndPanicOnBadID(t *testing.T) {
	l := New(1)
	a := l.AddNode(Node{BeginPos: 0, EndPos: 1})

	ids := l.NodesEndingAt(1)
	found := false
	for _, id := range ids {
		if id == a {
			found = true
		}
	}
	if !found {
		t.Error("NodesEndingAt(1) did not include the node ending there")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range NodeID")
		}
	}()
	l.Node(NodeID(999))
}
