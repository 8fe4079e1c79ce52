package reduce

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/steinred/graph"
)

var (
	// ErrNilGraph is returned when the graph argument is nil.
	ErrNilGraph = errors.New("reduce: graph is nil")
	// ErrNilOffset is returned when no fixed-cost accumulator is supplied.
	ErrNilOffset = errors.New("reduce: fixed-cost offset is nil")
	// ErrVariant is returned when a pass does not support the graph's
	// problem class.
	ErrVariant = errors.New("reduce: pass does not support this graph variant")
)

// DegreeTest runs the degree-based reduction on a plain instance and
// returns the number of eliminations. Degree-1 non-terminals lose their
// pendant edge; degree-1 terminals are folded into their neighbor, the edge
// cost moving into *fixed and the edge's ancestors onto the fixed list;
// degree-2 non-terminals between two non-terminals are bypassed by cost
// addition and contraction. The scan repeats while an elimination re-opens
// an earlier node.
//
// Prize-based variants are rejected with ErrVariant; use DegreeTestPC.
func DegreeTest(g *graph.Graph, fixed *float64) (int, error) {
	if g == nil {
		return 0, ErrNilGraph
	}
	if fixed == nil {
		return 0, ErrNilOffset
	}
	if g.Variant().PrizeBased() {
		return 0, fmt.Errorf("%w: %s", ErrVariant, g.Variant())
	}

	g.MarkActive()
	nnodes := g.NodeCount()
	count := 0

	rerun := true
	for rerun {
		rerun = false

		for i := 0; i < nnodes; i++ {
			if g.Degree(i) == 1 {
				e1 := g.FirstIn(i)
				i1 := g.Tail(e1)
				if !g.Mark(i1) {
					continue
				}

				if g.IsTerm(i) {
					g.AppendFixed(g.Ancestors(e1))
					*fixed += g.Cost(e1)
					g.Contract(i1, i)
				} else {
					g.DeleteEdge(e1, true)
				}

				if g.Degree(i1) == 0 {
					// Everything collapsed into one node.
					rerun = false
					break
				}
				if i1 < i && g.Degree(i1) < 3 {
					rerun = true
				}
				count++
				continue
			}

			if g.Degree(i) == 2 && !g.IsTerm(i) {
				e1 := g.FirstOut(i)
				e2 := g.NextOut(e1)
				i1 := g.Head(e1)
				i2 := g.Head(e2)

				if g.IsTerm(i1) || g.IsTerm(i2) {
					continue
				}

				// Fold i out of the path: the surviving i-i1 edge takes
				// over the through-costs per direction.
				g.AddCost(e1, g.Cost(graph.Anti(e2)))
				g.AddCost(graph.Anti(e1), g.Cost(e2))
				g.Contract(i2, i)
				count++

				if (i1 < i && g.Degree(i1) < 3) || (i2 < i && g.Degree(i2) < 3) {
					rerun = true
				}
			}
		}
	}

	log := g.Logger()
	log.Debug().Int("eliminated", count).Msg("degree test finished")

	if err := g.Validate(); err != nil {
		panic(fmt.Sprintf("reduce: degree test corrupted the graph: %v", err))
	}
	return count, nil
}
