package graph

import "fmt"

// IndexList is a persistent singly-linked list of original arc indices.
// Nodes are immutable once linked, so lists share structure freely: a list
// built by AppendCopy copies only its prefix and points at the existing
// suffix. This replaces per-node manual frees with ordinary garbage
// collection while keeping the same concatenation semantics.
type IndexList struct {
	// Index is an arc index of the original instance.
	Index int
	next  *IndexList
}

// Next returns the rest of the list, or nil.
func (l *IndexList) Next() *IndexList { return l.next }

// AppendCopy prepends a copy of src onto dst and returns the new head.
// dst is shared, not copied; src may be nil. Element order within src is
// preserved. Successive AppendCopy calls onto the same destination therefore
// stack their sources newest-first, which is the order reductions rely on.
func AppendCopy(dst, src *IndexList) *IndexList {
	if src == nil {
		return dst
	}
	head := &IndexList{Index: src.Index}
	tail := head
	for n := src.next; n != nil; n = n.next {
		tail.next = &IndexList{Index: n.Index}
		tail = tail.next
	}
	tail.next = dst
	return head
}

// singleton returns a one-element list. Used when recording an arc's own
// original index at history initialization.
func singleton(index int) *IndexList {
	return &IndexList{Index: index}
}

// Slice returns the list contents in list order. Nil lists yield nil.
func (l *IndexList) Slice() []int {
	var out []int
	for n := l; n != nil; n = n.next {
		out = append(out, n.Index)
	}
	return out
}

// Len returns the number of elements.
func (l *IndexList) Len() int {
	n := 0
	for c := l; c != nil; c = c.next {
		n++
	}
	return n
}

// Ancestors returns arc e's ancestor list. Nil until InitHistory has run
// (or an ancestor-carrying operation has populated the slot).
func (g *Graph) Ancestors(e int) *IndexList {
	g.checkArc(e)
	return g.ancestors[e]
}

// SetAncestors replaces arc e's ancestor list. Reduction passes use it when
// they rebuild an arc's history explicitly, as the degree-2 bypass does.
func (g *Graph) SetAncestors(e int, l *IndexList) {
	g.checkArc(e)
	g.ancestors[e] = l
}

// Fixed returns the graph-wide list of original arcs whose cost has been
// folded into the fixed offset.
func (g *Graph) Fixed() *IndexList { return g.fixed }

// AppendFixed prepends a copy of l to the fixed list.
func (g *Graph) AppendFixed(l *IndexList) {
	g.fixed = AppendCopy(g.fixed, l)
}

// InitHistory seeds every live arc's ancestor list with its own index and
// snapshots the arc endpoints for reconstruction. Call it once on the
// instance the solver will ultimately report against, before any reduction
// runs.
func (g *Graph) InitHistory() {
	g.origTail = make([]int, g.edges)
	g.origHead = make([]int, g.edges)
	for e := 0; e < g.edges; e++ {
		g.origTail[e] = g.tail[e]
		g.origHead[e] = g.head[e]
		if g.ieat[e] == arcFree {
			continue
		}
		g.ancestors[e] = singleton(e)
	}
}

// OrigTail returns the tail the original arc e had when InitHistory ran.
// Ancestor indices resolve through OrigTail/OrigHead, not Tail/Head, since
// redirects rewire the live endpoints.
func (g *Graph) OrigTail(e int) int {
	if g.origTail == nil {
		panic("graph: OrigTail before InitHistory")
	}
	if e < 0 || e >= len(g.origTail) {
		panic(fmt.Sprintf("graph: original arc %d out of range [0,%d)", e, len(g.origTail)))
	}
	return g.origTail[e]
}

// OrigHead returns the head the original arc e had when InitHistory ran.
func (g *Graph) OrigHead(e int) int {
	if g.origHead == nil {
		panic("graph: OrigHead before InitHistory")
	}
	if e < 0 || e >= len(g.origHead) {
		panic(fmt.Sprintf("graph: original arc %d out of range [0,%d)", e, len(g.origHead)))
	}
	return g.origHead[e]
}
