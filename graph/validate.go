package graph

import "fmt"

// trail marks every node reachable from start along live outgoing arcs.
// Iterative on an explicit stack; grid instances get deep.
func (g *Graph) trail(start int) {
	if g.mark[start] {
		return
	}
	g.mark[start] = true
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for e := g.outbeg[i]; e != arcLast; e = g.oeat[e] {
			if h := g.head[e]; !g.mark[h] {
				g.mark[h] = true
				stack = append(stack, h)
			}
		}
	}
}

// Validate checks the structural invariants and returns the first violation
// found, wrapped in ErrInvalid, or nil. It checks adjacency-list endpoint
// consistency, terminal counters per layer, root sanity, the pairwise
// free/anti discipline of arc slots, and reachability of every
// positive-degree node from the root (prize-based variants excepted, their
// Faraway arcs legitimately strand nodes).
//
// Validate overwrites the node marks.
func (g *Graph) Validate() error {
	terms := g.terms
	locals := append([]int(nil), g.locals...)

	for k := 0; k < g.knots; k++ {
		if g.term[k] >= 0 {
			locals[g.term[k]]--
			terms--
		}
		for e := g.inpbeg[k]; e != arcLast; e = g.ieat[e] {
			if g.head[e] != k {
				return fmt.Errorf("%w: arc %d in in-list of node %d has head %d",
					ErrInvalid, e, k, g.head[e])
			}
		}
		for e := g.outbeg[k]; e != arcLast; e = g.oeat[e] {
			if g.tail[e] != k {
				return fmt.Errorf("%w: arc %d in out-list of node %d has tail %d",
					ErrInvalid, e, k, g.tail[e])
			}
		}
	}
	if terms != 0 {
		return fmt.Errorf("%w: terminal counter %d does not match tags (off by %d)",
			ErrInvalid, g.terms, terms)
	}
	for l := 0; l < g.layers; l++ {
		if locals[l] != 0 {
			return fmt.Errorf("%w: layer %d terminal counter %d does not match tags (off by %d)",
				ErrInvalid, l, g.locals[l], locals[l])
		}
		if g.source[l] < 0 || g.source[l] >= g.knots || g.term[g.source[l]] != l {
			return fmt.Errorf("%w: layer %d root %d is not a layer-%d terminal",
				ErrInvalid, l, g.source[l], l)
		}
	}

	for e := 0; e < g.edges; e += 2 {
		if g.ieat[e] == arcFree && g.oeat[e] == arcFree &&
			g.ieat[e+1] == arcFree && g.oeat[e+1] == arcFree {
			continue
		}
		if g.ieat[e] == arcFree || g.oeat[e] == arcFree ||
			g.ieat[e+1] == arcFree || g.oeat[e+1] == arcFree {
			return fmt.Errorf("%w: arc pair %d/%d is only half freed", ErrInvalid, e, e+1)
		}
		if g.head[e] != g.tail[e+1] || g.tail[e] != g.head[e+1] {
			return fmt.Errorf("%w: arc pair %d/%d is not anti-parallel (%d->%d vs %d->%d)",
				ErrInvalid, e, e+1, g.tail[e], g.head[e], g.tail[e+1], g.head[e+1])
		}
	}

	for k := 0; k < g.knots; k++ {
		g.mark[k] = false
	}
	g.trail(g.source[0])

	for k := 0; k < g.knots; k++ {
		if g.grad[k] == 0 && (g.inpbeg[k] != arcLast || g.outbeg[k] != arcLast) {
			return fmt.Errorf("%w: node %d has degree 0 but non-empty adjacency", ErrInvalid, k)
		}
		if !g.mark[k] && g.grad[k] > 0 &&
			g.variant != VariantPrizeCollecting && g.variant != VariantMaxNodeWeight {
			return fmt.Errorf("%w: node %d not reachable from the root", ErrInvalid, k)
		}
	}
	return nil
}

// SolutionValid reports whether the arc selection connects every terminal to
// the root. selected must have exactly one entry per arc slot; anything else
// returns ErrSolutionLength. Traversal follows selected arcs only and each
// node is visited at most once, so cyclic selections terminate.
func (g *Graph) SolutionValid(selected []bool) (bool, error) {
	if len(selected) != g.edges {
		return false, fmt.Errorf("%w: got %d, need %d", ErrSolutionLength, len(selected), g.edges)
	}
	root := g.source[0]
	if root < 0 {
		return false, fmt.Errorf("%w: no root set", ErrInvalid)
	}

	visited := make([]bool, g.knots)
	visited[root] = true
	termcount := 0
	if g.term[root] >= 0 {
		termcount++
	}

	queue := []int{root}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		for e := g.outbeg[i]; e != arcLast; e = g.oeat[e] {
			if !selected[e] {
				continue
			}
			h := g.head[e]
			if visited[h] {
				continue
			}
			visited[h] = true
			if g.term[h] >= 0 {
				termcount++
			}
			queue = append(queue, h)
		}
	}

	if termcount != g.terms {
		g.log.Debug().
			Int("reached", termcount).
			Int("terminals", g.terms).
			Msg("solution leaves terminals unconnected")
	}
	return termcount == g.terms, nil
}
