package graph

import "fmt"

// thread links arc e between tail and head: sets its endpoints and pushes it
// onto head's in-list and tail's out-list. Degree bookkeeping is the
// caller's job.
func (g *Graph) thread(e, tail, head int) {
	g.tail[e] = tail
	g.head[e] = head
	g.ieat[e] = g.inpbeg[head]
	g.oeat[e] = g.outbeg[tail]
	g.inpbeg[head] = e
	g.outbeg[tail] = e
}

// unlinkArc removes arc e from its head's in-list and its tail's out-list.
// Panics if e is not found in either list.
func (g *Graph) unlinkArc(e int) {
	head := g.head[e]
	tail := g.tail[e]

	if g.inpbeg[head] == e {
		g.inpbeg[head] = g.ieat[e]
	} else {
		i := g.inpbeg[head]
		for ; i != arcLast && g.ieat[i] != e; i = g.ieat[i] {
		}
		if i == arcLast {
			panic(fmt.Sprintf("graph: arc %d missing from in-list of node %d", e, head))
		}
		g.ieat[i] = g.ieat[e]
	}

	if g.outbeg[tail] == e {
		g.outbeg[tail] = g.oeat[e]
	} else {
		o := g.outbeg[tail]
		for ; o != arcLast && g.oeat[o] != e; o = g.oeat[o] {
		}
		if o == arcLast {
			panic(fmt.Sprintf("graph: arc %d missing from out-list of node %d", e, tail))
		}
		g.oeat[o] = g.oeat[e]
	}
}

// AddEdge appends the undirected edge tail—head as a fresh anti-parallel arc
// pair and returns the even (forward) arc index. cost1 prices tail→head,
// cost2 prices head→tail; pass KeepCost to leave the slot's previous value
// in place. Panics when arc capacity is exhausted or an endpoint is out of
// range. Complexity: O(1).
func (g *Graph) AddEdge(tail, head int, cost1, cost2 float64) int {
	g.checkNode(tail)
	g.checkNode(head)
	if cost1 < 0 && cost1 != KeepCost {
		panic(fmt.Sprintf("graph: negative edge cost %g", cost1))
	}
	if cost2 < 0 && cost2 != KeepCost {
		panic(fmt.Sprintf("graph: negative edge cost %g", cost2))
	}
	if g.edges+2 > g.esize {
		panic(fmt.Sprintf("graph: arc capacity %d exhausted", g.esize))
	}

	e := g.edges
	g.grad[head]++
	g.grad[tail]++

	if cost1 != KeepCost {
		g.cost[e] = cost1
	}
	g.thread(e, tail, head)

	e++
	if cost2 != KeepCost {
		g.cost[e] = cost2
	}
	g.thread(e, head, tail)

	g.edges += 2
	return g.edges - 2
}

// DeleteEdge removes the edge containing arc e (either direction may be
// named). The pair's slots are marked free for reuse by Contract and
// RedirectEdge. When freeAncestors is set the pair's ancestor lists are
// dropped too; reductions that have already captured them pass false.
func (g *Graph) DeleteEdge(e int, freeAncestors bool) {
	e -= e % 2
	g.checkArc(e)

	if freeAncestors {
		g.ancestors[e] = nil
		g.ancestors[e+1] = nil
	}

	g.grad[g.head[e]]--
	g.grad[g.tail[e]]--

	g.unlinkArc(e)
	g.unlinkArc(e + 1)

	g.ieat[e] = arcFree
	g.oeat[e] = arcFree
	g.ieat[e+1] = arcFree
	g.oeat[e+1] = arcFree
}

// HideEdge detaches the edge containing arc e without freeing its slots, so
// UncoverEdges can restore it. Hidden pairs keep their endpoints and costs.
func (g *Graph) HideEdge(e int) {
	e -= e % 2
	g.checkArc(e)

	g.grad[g.head[e]]--
	g.grad[g.tail[e]]--

	g.unlinkArc(e)
	g.unlinkArc(e + 1)

	g.ieat[e] = arcHidden
	g.oeat[e] = arcHidden
	g.ieat[e+1] = arcHidden
	g.oeat[e+1] = arcHidden
}

// UncoverEdges relinks every hidden edge and returns the number of edges
// restored.
func (g *Graph) UncoverEdges() int {
	n := 0
	for e := 0; e < g.edges; e++ {
		if g.ieat[e] != arcHidden {
			continue
		}
		if e%2 != 0 || g.oeat[e] != arcHidden {
			panic(fmt.Sprintf("graph: half-hidden arc pair at %d", e))
		}

		head := g.head[e]
		tail := g.tail[e]
		g.grad[head]++
		g.grad[tail]++
		g.thread(e, tail, head)

		e++
		if g.ieat[e] != arcHidden || g.oeat[e] != arcHidden {
			panic(fmt.Sprintf("graph: half-hidden arc pair at %d", e))
		}
		g.thread(e, head, tail)
		n++
	}
	return n
}

// RedirectEdge rewires the edge containing arc e to run between k and j with
// the given symmetric cost. If a k—j edge already exists, e's slot pair
// stays freed: when cost improves on the existing edge, its cost is lowered
// and its arc index returned so the caller can replace its ancestors; when
// it does not, -1 is returned and nothing changes. Otherwise e's pair is
// reused and its arc index returned.
func (g *Graph) RedirectEdge(e, k, j int, cost float64) int {
	g.checkNode(k)
	g.checkNode(j)
	g.DeleteEdge(e, false)
	e -= e % 2

	for ek := g.outbeg[k]; ek != arcLast; ek = g.oeat[ek] {
		if g.head[ek] == j {
			if g.cmp.GT(g.cost[ek], cost) {
				g.cost[ek] = cost
				g.cost[Anti(ek)] = cost
				return ek
			}
			return -1
		}
	}

	g.grad[k]++
	g.grad[j]++

	g.cost[e] = cost
	g.thread(e, k, j)
	g.cost[e+1] = cost
	g.thread(e+1, j, k)
	return e
}
