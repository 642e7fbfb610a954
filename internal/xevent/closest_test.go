package xevent

import "testing"

func TestClosestClientFindsNearestDescendant(t *testing.T) {
	children := map[uint32][]uint32{
		1: {2, 3},
		2: {4},
	}
	state := map[uint32]bool{4: true}
	got, ok := ClosestClient(children, func(xid uint32) bool { return state[xid] }, 1)
	if !ok || got != 4 {
		t.Fatalf("got %v, %v", got, ok)
	}
}

func TestClosestClientNoneFound(t *testing.T) {
	children := map[uint32][]uint32{1: {2, 3}}
	_, ok := ClosestClient(children, func(uint32) bool { return false }, 1)
	if ok {
		t.Fatalf("expected no client found")
	}
}

func TestClosestClientBreadthBeforeDepth(t *testing.T) {
	children := map[uint32][]uint32{
		1: {2, 3},
		2: {4},
	}
	state := map[uint32]bool{3: true, 4: true}
	got, ok := ClosestClient(children, func(xid uint32) bool { return state[xid] }, 1)
	if !ok || got != 3 {
		t.Fatalf("expected breadth-first hit on 3, got %v, %v", got, ok)
	}
}

func TestTreeAttachDetachUpdatesChildren(t *testing.T) {
	tree := NewTree()
	tree.Attach(2, 1)
	tree.Attach(3, 1)
	if p, ok := tree.Parent(2); !ok || p != 1 {
		t.Fatalf("expected parent 1, got %v %v", p, ok)
	}
	tree.Detach(2)
	if _, ok := tree.Parent(2); ok {
		t.Fatalf("expected no parent after detach")
	}
	if len(tree.children[1]) != 1 || tree.children[1][0] != 3 {
		t.Fatalf("expected only 3 left under 1, got %v", tree.children[1])
	}
}

func TestTreeReattachMovesFromOldParent(t *testing.T) {
	tree := NewTree()
	tree.Attach(2, 1)
	tree.Attach(2, 5)
	if len(tree.children[1]) != 0 {
		t.Fatalf("expected 2 removed from old parent, got %v", tree.children[1])
	}
	if p, _ := tree.Parent(2); p != 5 {
		t.Fatalf("expected new parent 5, got %v", p)
	}
}

func TestTreeClosestClientCaches(t *testing.T) {
	tree := NewTree()
	tree.Attach(2, 1)
	calls := 0
	state := func(xid uint32) bool {
		calls++
		return xid == 2
	}
	first, ok := tree.ClosestClient(1, state)
	if !ok || first != 2 {
		t.Fatalf("got %v %v", first, ok)
	}
	callsAfterFirst := calls
	second, ok := tree.ClosestClient(1, state)
	if !ok || second != 2 || calls != callsAfterFirst {
		t.Fatalf("expected cached result with no extra calls, calls=%d", calls)
	}
	tree.InvalidateCache(1)
	tree.ClosestClient(1, state)
	if calls <= callsAfterFirst {
		t.Fatalf("expected cache miss after invalidate")
	}
}
