package graph

import "fmt"

// Pack rebuilds the graph as a dense copy: zero-degree nodes and freed arc
// slots are dropped, surviving nodes and arcs are renumbered contiguously,
// and ancestor lists, the fixed list, prizes, degree bounds, grid metadata
// and the original-model sizes all carry over. The receiver is detagged
// (VariantUndefined) and must not be used afterwards.
//
// Should every node have vanished, the result is a single root terminal
// with no edges, which still satisfies Validate.
//
// Packing a structurally invalid graph, or one with hidden edges, is a
// caller bug and panics.
func (g *Graph) Pack() *Graph {
	if err := g.Validate(); err != nil {
		panic(fmt.Sprintf("graph: pack of invalid graph: %v", err))
	}

	remap := make([]int, g.knots)
	knots := 0
	for i := 0; i < g.knots; i++ {
		if g.grad[i] > 0 {
			remap[i] = knots
			knots++
		} else {
			remap[i] = -1
		}
	}
	vanished := knots == 0

	arcs := 0
	for e := 0; e < g.edges; e++ {
		switch g.oeat[e] {
		case arcFree:
		case arcHidden:
			panic(fmt.Sprintf("graph: pack with hidden arc %d; call UncoverEdges first", e))
		default:
			arcs++
		}
	}

	if vanished {
		knots = 1
		if arcs != 0 {
			panic(fmt.Sprintf("graph: pack found %d arcs among zero-degree nodes", arcs))
		}
	}

	q, err := New(knots, arcs, g.layers, WithComparator(g.cmp), WithLogger(g.log))
	if err != nil {
		panic(fmt.Sprintf("graph: pack re-init failed: %v", err))
	}
	q.variant = g.variant
	q.origModelNodes = g.origModelNodes
	q.origModelEdges = g.origModelEdges
	q.origNodes = g.knots
	q.origEdges = g.edges
	q.grid = g.grid
	q.fixed = g.fixed
	// The endpoint snapshot is keyed by original arc indices and is never
	// renumbered.
	q.origTail = g.origTail
	q.origHead = g.origHead

	if vanished {
		q.AddNode(0)
		q.source[0] = 0
		g.variant = VariantUndefined
		g.log.Debug().Msg("pack: graph vanished, emitting degenerate root")
		return q
	}

	for i := 0; i < g.knots; i++ {
		if g.grad[i] <= 0 {
			continue
		}
		v := q.AddNode(g.term[i])
		if g.prize != nil {
			q.SetPrize(v, g.prize[i])
		}
		if g.maxdeg != nil {
			if q.maxdeg == nil {
				q.maxdeg = make([]int, knots)
			}
			q.maxdeg[v] = g.maxdeg[i]
		}
	}

	for e := 0; e < g.edges; e += 2 {
		if g.ieat[e] == arcFree {
			continue
		}
		// Ancestors are set ahead of AddEdge so the slot indices line up.
		q.ancestors[q.edges] = AppendCopy(nil, g.ancestors[e])
		q.ancestors[q.edges+1] = AppendCopy(nil, g.ancestors[e+1])
		q.AddEdge(remap[g.tail[e]], remap[g.head[e]], g.cost[e], g.cost[e+1])
	}

	for l := 0; l < g.layers; l++ {
		src := remap[g.source[l]]
		if src < 0 || q.term[src] != l {
			panic(fmt.Sprintf("graph: pack moved layer-%d root onto non-terminal %d", l, src))
		}
		q.source[l] = src
	}

	g.variant = VariantUndefined

	g.log.Debug().
		Int("nodes", q.knots).
		Int("arcs", q.edges).
		Int("terminals", q.terms).
		Msg("packed graph")
	return q
}
