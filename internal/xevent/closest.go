package xevent

// ClosestClient implements §4.1's closest-client lookup: starting from
// frame, a breadth-first frontier descends children looking for the
// nearest descendant for which hasState returns true. Kept as a pure
// function over a plain adjacency map so it's testable without an X
// connection; Tree wraps it with caching per frame (§4.1 "cached by the
// caller per frame").
func ClosestClient(children map[uint32][]uint32, hasState func(xid uint32) bool, frame uint32) (uint32, bool) {
	queue := append([]uint32{}, children[frame]...)
	seen := make(map[uint32]bool, len(queue))
	for _, c := range queue {
		seen[c] = true
	}
	for len(queue) > 0 {
		xid := queue[0]
		queue = queue[1:]
		if hasState(xid) {
			return xid, true
		}
		for _, c := range children[xid] {
			if !seen[c] {
				seen[c] = true
				queue = append(queue, c)
			}
		}
	}
	return 0, false
}

// Tree tracks the parent-pointer map and its reverse (children) needed for
// reparenting bookkeeping and closest-client lookups, plus a per-frame
// cache of the last resolved closest client.
type Tree struct {
	parent   map[uint32]uint32
	children map[uint32][]uint32
	cache    map[uint32]uint32
}

// NewTree returns an empty window tree.
func NewTree() *Tree {
	return &Tree{
		parent:   make(map[uint32]uint32),
		children: make(map[uint32][]uint32),
		cache:    make(map[uint32]uint32),
	}
}

// Attach records xid as a child of parent, detaching it from any previous
// parent first.
func (t *Tree) Attach(xid, parent uint32) {
	t.Detach(xid)
	t.parent[xid] = parent
	t.children[parent] = append(t.children[parent], xid)
	delete(t.cache, xid)
}

// Detach removes xid from its current parent's child list, if any.
func (t *Tree) Detach(xid uint32) {
	old, ok := t.parent[xid]
	if !ok {
		return
	}
	delete(t.parent, xid)
	siblings := t.children[old]
	for i, c := range siblings {
		if c == xid {
			t.children[old] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	delete(t.cache, xid)
}

// Parent returns xid's current parent, if known.
func (t *Tree) Parent(xid uint32) (uint32, bool) {
	p, ok := t.parent[xid]
	return p, ok
}

// ClosestClient resolves and caches the closest client under frame.
func (t *Tree) ClosestClient(frame uint32, hasState func(uint32) bool) (uint32, bool) {
	if c, ok := t.cache[frame]; ok {
		return c, true
	}
	c, ok := ClosestClient(t.children, hasState, frame)
	if ok {
		t.cache[frame] = c
	}
	return c, ok
}

// InvalidateCache drops the cached closest-client result for frame,
// called whenever the subtree under frame changes shape.
func (t *Tree) InvalidateCache(frame uint32) {
	delete(t.cache, frame)
}
