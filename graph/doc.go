// Package graph implements the mutable edge-list graph at the heart of the
// Steiner reduction engine.
//
// A Graph stores every undirected edge as a pair of anti-parallel arcs at
// even/odd slot indices e and e^1 (see Anti). Adjacency is kept in intrusive
// singly-linked lists threaded through per-arc next-pointer arrays, which
// gives O(1) arc insertion and O(degree) deletion without per-node
// allocation. Nodes and arcs are appended while an instance is built; once
// reductions start they are only logically deleted. Freed arc slots are
// reused, and capacity is reclaimed solely by Pack, which rebuilds a dense
// copy.
//
// Each arc owns an ancestor list (IndexList) recording the original-instance
// arc indices that were folded into it by contraction and path bypasses; the
// outer solver expands a reduced solution back to the full instance by
// walking these lists together with the graph-wide fixed list.
//
// Error handling follows two tiers: caller-input problems surface as
// sentinel errors (ErrBadCapacity and friends), while violations of
// structural preconditions (contracting a zero-degree node, a missing
// expected arc, a corrupt adjacency list) are bugs in the engine or its
// caller and panic with a diagnostic. Reduction code never "recovers" from a
// malformed graph.
//
// All cost comparisons route through an eps.Comparator (WithComparator);
// a Graph is owned by a single solve context and is not safe for concurrent
// use.
package graph
