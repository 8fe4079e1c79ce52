package graph

import "fmt"

// movedEdge snapshots one of s's edges before contraction so its costs and
// ancestry can be reconciled against t's adjacency.
type movedEdge struct {
	reinsert bool
	knot     int
	incost   float64
	outcost  float64
	anc      *IndexList // s→knot direction
	rev      *IndexList // knot→s direction
}

// Contract merges node s into node t, which must be adjacent. Parallel edges
// are reconciled per direction: for a node n adjacent to both, the cheaper
// of cost(t→n) and cost(s→n) survives, likewise for the reverse arcs, with
// the surviving arc's ancestor list rebuilt from the winner's ancestors plus
// the t—s connecting arc's. Edges from s to nodes t does not reach are
// rewired to t, reusing s's freed arc slots. s's terminal tag and the root
// both migrate to t; on return s has degree zero.
//
// Structural preconditions (adjacency, positive degrees, a single layer)
// panic when violated. Complexity: O(deg(s) * deg(t)).
func (g *Graph) Contract(t, s int) {
	g.checkNode(t)
	g.checkNode(s)
	if s == t {
		panic(fmt.Sprintf("graph: contract of node %d with itself", t))
	}
	if g.grad[s] <= 0 || g.grad[t] <= 0 {
		panic(fmt.Sprintf("graph: contract of nodes %d,%d needs positive degrees (%d,%d)",
			t, s, g.grad[t], g.grad[s]))
	}
	if g.layers != 1 {
		panic("graph: contract requires a single terminal layer")
	}

	if g.IsTerm(s) {
		g.ChangeTerm(t, g.term[s])
		g.ChangeTerm(s, TermNone)
	}
	if g.source[0] == s {
		g.source[0] = t
	}

	// Snapshot s's adjacency; the connecting pair contributes the ancestor
	// lists every surviving arc inherits.
	var (
		moved     []movedEdge
		tsAnc     *IndexList // t→s direction
		stAnc     *IndexList // s→t direction
		connected bool
	)
	if g.grad[s] >= 2 {
		moved = make([]movedEdge, 0, g.grad[s]-1)
	}
	for es := g.outbeg[s]; es != arcLast; es = g.oeat[es] {
		if g.head[es] != t {
			moved = append(moved, movedEdge{
				knot:    g.head[es],
				outcost: g.cost[es],
				incost:  g.cost[Anti(es)],
				anc:     AppendCopy(nil, g.ancestors[es]),
				rev:     AppendCopy(nil, g.ancestors[Anti(es)]),
			})
		} else {
			connected = true
			stAnc = AppendCopy(stAnc, g.ancestors[es])
			tsAnc = AppendCopy(tsAnc, g.ancestors[Anti(es)])
		}
	}
	if !connected {
		panic(fmt.Sprintf("graph: contract of non-adjacent nodes %d,%d", t, s))
	}

	// Reconcile against t's existing adjacency, per direction.
	for i := range moved {
		et := g.outbeg[t]
		for ; et != arcLast; et = g.oeat[et] {
			if g.head[et] == moved[i].knot {
				break
			}
		}
		if et == arcLast {
			moved[i].reinsert = true
			continue
		}
		if g.cmp.GT(g.cost[et], moved[i].outcost) {
			g.ancestors[et] = AppendCopy(AppendCopy(nil, moved[i].anc), tsAnc)
			g.cost[et] = moved[i].outcost
		}
		anti := Anti(et)
		if g.cmp.GT(g.cost[anti], moved[i].incost) {
			g.ancestors[anti] = AppendCopy(AppendCopy(nil, moved[i].rev), stAnc)
			g.cost[anti] = moved[i].incost
		}
	}

	// Rewire the remainder to t, reusing s's freed slots.
	for i := range moved {
		if !moved[i].reinsert {
			continue
		}
		es := g.outbeg[s]
		if es == arcLast {
			panic(fmt.Sprintf("graph: contract of %d,%d ran out of reusable arc slots", t, s))
		}
		g.ancestors[es] = AppendCopy(AppendCopy(nil, moved[i].anc), tsAnc)
		g.DeleteEdge(es, false)

		head := moved[i].knot
		g.grad[head]++
		g.grad[t]++

		g.cost[es] = moved[i].outcost
		g.thread(es, t, head)

		ea := Anti(es)
		g.ancestors[ea] = AppendCopy(AppendCopy(nil, moved[i].rev), stAnc)
		g.cost[ea] = moved[i].incost
		g.thread(ea, head, t)
	}

	// Drop every arc still attached to s: the connecting pair to t and the
	// s-n pairs whose costs were reconciled into existing t-n arcs above.
	for g.outbeg[s] != arcLast {
		es := g.outbeg[s]
		g.ancestors[es] = nil
		g.ancestors[Anti(es)] = nil
		g.DeleteEdge(es, false)
	}

	if g.grad[s] != 0 || g.outbeg[s] != arcLast || g.inpbeg[s] != arcLast {
		panic(fmt.Sprintf("graph: contract left node %d partially attached", s))
	}
}

// prizeSubtract lowers terminal i's prize by cost and keeps the matching
// artificial root→twin arc in sync. Panics if i has no pseudo-terminal twin
// or the twin has no root arc.
func (g *Graph) prizeSubtract(cost float64, i int) {
	g.prize[i] -= cost

	e := g.outbeg[i]
	for ; e != arcLast; e = g.oeat[e] {
		if g.IsPseudoTerm(g.head[e]) {
			break
		}
	}
	if e == arcLast {
		panic(fmt.Sprintf("graph: terminal %d has no pseudo-terminal twin", i))
	}
	j := g.head[e]

	e = g.inpbeg[j]
	for ; e != arcLast; e = g.ieat[e] {
		if g.tail[e] == g.source[0] {
			break
		}
	}
	if e == arcLast {
		panic(fmt.Sprintf("graph: twin %d has no arc from the root", j))
	}
	g.cost[e] -= cost
}

// ContractPC contracts s into t on a prize-collecting instance, charging the
// connecting edge's cost against terminal i's prize. The graph must be in
// the original view (see the transform package). When both endpoints are
// terminals, s's twin apparatus (its pseudo-terminal and the root arc
// pricing its prize) is dismantled first and only the cost beyond s's prize
// is charged.
func (g *Graph) ContractPC(t, s, i int) {
	g.checkNode(i)
	if !g.IsTerm(i) {
		panic(fmt.Sprintf("graph: contractpc charged against non-terminal %d", i))
	}

	ets := g.outbeg[t]
	for ; ets != arcLast; ets = g.oeat[ets] {
		if g.head[ets] == s {
			break
		}
	}
	if ets == arcLast {
		panic(fmt.Sprintf("graph: contractpc of non-adjacent nodes %d,%d", t, s))
	}

	if g.IsTerm(t) && g.IsTerm(s) {
		e := g.outbeg[s]
		for ; e != arcLast; e = g.oeat[e] {
			if g.IsPseudoTerm(g.head[e]) {
				break
			}
		}
		if e == arcLast {
			panic(fmt.Sprintf("graph: terminal %d has no pseudo-terminal twin", s))
		}
		j := g.head[e]
		if j == g.source[0] {
			panic(fmt.Sprintf("graph: twin of terminal %d resolves to the root", s))
		}

		g.ChangeTerm(j, TermNone)
		g.DeleteEdge(e, true)

		e = g.inpbeg[j]
		for ; e != arcLast; e = g.ieat[e] {
			if g.tail[e] == g.source[0] {
				break
			}
		}
		if e == arcLast {
			panic(fmt.Sprintf("graph: twin %d has no arc from the root", j))
		}

		g.prizeSubtract(g.cost[ets]-g.prize[s], i)
		g.DeleteEdge(e, true)
		g.Contract(t, s)
		return
	}

	g.prizeSubtract(g.cost[ets], i)
	g.Contract(t, s)
}
