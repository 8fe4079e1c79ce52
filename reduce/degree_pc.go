package reduce

import (
	"fmt"

	"github.com/katalvlaran/steinred/graph"
	"github.com/katalvlaran/steinred/transform"
)

// deleteTerm removes terminal i together with its twin apparatus: i's tag
// and all edges go, then the pseudo-terminal twin found among its neighbors
// is demoted and stripped too. Returns the number of edges deleted.
func deleteTerm(g *graph.Graph, i int) int {
	twin := -1
	count := 0

	g.ChangeTerm(i, graph.TermNone)
	g.SetMark(i, false)
	e := g.FirstOut(i)
	for e != -1 {
		if h := g.Head(e); g.IsPseudoTerm(h) && h != g.Source(0) {
			twin = h
		}
		next := g.NextOut(e)
		count++
		g.DeleteEdge(e, true)
		e = next
	}
	if twin < 0 {
		panic(fmt.Sprintf("reduce: terminal %d has no pseudo-terminal twin", i))
	}

	g.ChangeTerm(twin, graph.TermNone)
	e = g.FirstOut(twin)
	for e != -1 {
		next := g.NextOut(e)
		count++
		g.DeleteEdge(e, true)
		e = next
	}
	return count
}

// isMaxPrize reports whether i is the marked terminal with the strictly
// greatest prize, earliest index winning ties. The overall best terminal
// must never be deleted outright, or the empty solution could win.
func isMaxPrize(g *graph.Graph, i int) bool {
	best := -1
	max := -1.0
	cmp := g.Comparator()
	for k := 0; k < g.NodeCount(); k++ {
		if g.IsTerm(k) && g.Mark(k) && cmp.GT(g.Prize(k), max) {
			max = g.Prize(k)
			best = k
		}
	}
	return best == i
}

// tryDegree1PC handles a terminal of effective degree 1 whose one useful
// arc is eout. If the prize does not exceed the edge cost, the terminal is
// not worth reaching: normally it is deleted with its prize moving into
// *fixed; the max-prize terminal only sheds the edge.
func tryDegree1PC(g *graph.Graph, fixed *float64, i, eout int, rerun *bool) int {
	cmp := g.Comparator()
	if !cmp.LE(g.Prize(i), g.Cost(eout)) {
		return 0
	}

	i1 := g.Head(eout)
	if i1 < i && (g.IsTerm(i1) || g.Degree(i1) == 2) {
		*rerun = true
	}

	if !isMaxPrize(g, i) {
		*fixed += g.Prize(i)
		return deleteTerm(g, i)
	}

	e := g.FirstOut(i)
	for ; e != -1; e = g.NextOut(e) {
		if g.Mark(g.Head(e)) {
			break
		}
	}
	if e == -1 || g.Head(e) == g.Source(0) {
		panic(fmt.Sprintf("reduce: max-prize terminal %d has no marked neighbor", i))
	}
	g.DeleteEdge(e, true)
	return 1
}

// DegreeTestPC runs the degree-based reduction on a prize-collecting or
// rooted prize-collecting instance and returns the number of eliminations.
// The pass works in the original view (terminal tags swapped back, twin
// apparatus unmarked) and restores the solver view before returning, so
// callers never see the intermediate representation.
//
// Terminal degrees are effective degrees: the twin arcs inflate every
// terminal's raw degree by two on the unrooted variant and by one on the
// rooted one (the root bypass arc is missing there). Effective degree 0
// terminals are deleted unless they hold the maximum prize; effective
// degree 1 terminals are traded against their single edge; effective
// degree 2 terminals cheaper than both their edges are bypassed, the
// replacement edge costing cost1+cost2-prize. Adjacent terminals whose
// cheapest connection undercuts both prizes are contracted, the edge cost
// moving into *fixed.
func DegreeTestPC(g *graph.Graph, fixed *float64) (int, error) {
	if g == nil {
		return 0, ErrNilGraph
	}
	if fixed == nil {
		return 0, ErrNilOffset
	}
	variant := g.Variant()
	if variant != graph.VariantPrizeCollecting && variant != graph.VariantRootedPrizeCollecting {
		return 0, fmt.Errorf("%w: %s", ErrVariant, variant)
	}
	if err := transform.OriginalView(g); err != nil {
		return 0, err
	}

	pc := variant == graph.VariantPrizeCollecting
	root := g.Source(0)
	cmp := g.Comparator()
	nnodes := g.NodeCount()
	count := 0

	if !pc {
		g.SetMark(root, false)
	}

	var pairArcs, pairNodes [2]int

	rerun := true
	for rerun {
		rerun = false

		for i := 0; i < nnodes; i++ {
			if !g.Mark(i) {
				continue
			}

			if !g.IsTerm(i) {
				if g.Degree(i) == 1 {
					e1 := g.FirstIn(i)
					i1 := g.Tail(e1)

					g.DeleteEdge(e1, true)

					if g.Degree(i1) == 0 {
						rerun = false
						break
					}
					if i1 < i && (g.Degree(i1) < 3 || g.IsTerm(i1)) {
						rerun = true
					}
					count++
					continue
				}

				if g.Degree(i) == 2 {
					e1 := g.FirstOut(i)
					e2 := g.NextOut(e1)
					i1 := g.Head(e1)
					i2 := g.Head(e2)

					// Symmetric costs on the bypassed edge, so one value
					// serves both directions.
					g.AddCost(e1, g.Cost(e2))
					g.AddCost(graph.Anti(e1), g.Cost(e2))
					g.Contract(i2, i)
					count++

					if (g.IsTerm(i2) && i2 < i) || (g.IsTerm(i1) && i1 < i) {
						rerun = true
					}
				}
				continue
			}

			// Terminal cases, by effective degree.
			deg := g.Degree(i)
			switch {
			case (pc && deg == 2) || (!pc && deg == 1):
				if !isMaxPrize(g, i) {
					count += deleteTerm(g, i)
				}

			case (pc && deg == 3) || (!pc && deg == 2):
				e := g.FirstOut(i)
				for ; e != -1; e = g.NextOut(e) {
					if g.Mark(g.Head(e)) || (!pc && g.Head(e) == root) {
						break
					}
				}
				if e == -1 {
					panic(fmt.Sprintf("reduce: terminal %d has no usable arc", i))
				}
				count += tryDegree1PC(g, fixed, i, e, &rerun)

			case (pc && deg == 4) || (!pc && deg == 3):
				if isMaxPrize(g, i) {
					break
				}
				n := 0
				for e := g.FirstOut(i); e != -1; e = g.NextOut(e) {
					if i1 := g.Head(e); g.Mark(i1) {
						if n >= 2 {
							panic(fmt.Sprintf("reduce: terminal %d has more than two marked neighbors", i))
						}
						pairArcs[n] = e
						pairNodes[n] = i1
						n++
					}
				}
				if n < 2 {
					panic(fmt.Sprintf("reduce: terminal %d has %d marked neighbors, need 2", i, n))
				}
				e, e1 := pairArcs[0], pairArcs[1]
				if !cmp.LE(g.Prize(i), g.Cost(e)) || !cmp.LE(g.Prize(i), g.Cost(e1)) {
					break
				}

				anc := graph.AppendCopy(nil, g.Ancestors(e))
				anc = graph.AppendCopy(anc, g.Ancestors(graph.Anti(e1)))
				rev := graph.AppendCopy(nil, g.Ancestors(graph.Anti(e)))
				rev = graph.AppendCopy(rev, g.Ancestors(e1))

				n1 := g.RedirectEdge(e, pairNodes[1], pairNodes[0],
					g.Cost(e)+g.Cost(e1)-g.Prize(i))
				if n1 >= 0 {
					g.SetAncestors(n1, anc)
					g.SetAncestors(graph.Anti(n1), rev)
				}
				count += deleteTerm(g, i)
				*fixed += g.Prize(i)
			}

			// Adjacent terminal contraction: when the cheapest marked
			// neighbor is a terminal and the edge undercuts both prizes,
			// the two terminals always connect directly.
			if g.Degree(i) > 0 {
				mincost := graph.Faraway
				ett := -1
				for e1 := g.FirstOut(i); e1 != -1; e1 = g.NextOut(e1) {
					i1 := g.Head(e1)
					if !g.Mark(i1) {
						continue
					}
					if cmp.LT(g.Cost(e1), mincost) {
						mincost = g.Cost(e1)
						if g.IsTerm(i1) {
							ett = e1
						}
					} else if g.IsTerm(i1) && cmp.LE(g.Cost(e1), mincost) {
						ett = e1
					}
				}
				if ett != -1 && cmp.LE(g.Cost(ett), mincost) &&
					cmp.LE(g.Cost(ett), g.Prize(i)) &&
					cmp.LE(g.Cost(ett), g.Prize(g.Head(ett))) {
					i1 := g.Head(ett)
					*fixed += g.Cost(ett)
					g.AppendFixed(g.Ancestors(ett))
					count++
					g.ContractPC(i, i1, i)
					rerun = true
				}
			}
		}
	}

	if !pc {
		g.SetMark(root, true)
	}

	log := g.Logger()
	log.Debug().Int("eliminated", count).Msg("prize-collecting degree test finished")

	if err := transform.SolverView(g); err != nil {
		return count, err
	}
	return count, nil
}
