// Package transform rewrites instances between Steiner problem classes.
//
// The prize-collecting family is reduced to ordinary rooted Steiner tree
// instances by twin-node surgery: every terminal k gets a pseudo-terminal
// twin, an artificial root prices k's prize on the root→twin arc, and a
// zero-cost arc lets a tree collect the twin through k itself. An optimal
// Steiner tree on the transformed graph then maps to an optimal
// prize-collecting solution on the original.
//
// Transformed instances exist in two views. The solver view (what the
// transforms produce) tags the twins as proper terminals and the original
// terminals as pseudo-terminals; the original view (OriginalView) swaps the
// tags back so reduction passes can treat the real terminals as terminals,
// with the artificial apparatus unmarked. SolverView restores the solver
// view. The two calls toggle: apply them in matched pairs.
package transform

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/steinred/graph"
)

var (
	// ErrNilGraph is returned when the graph argument is nil.
	ErrNilGraph = errors.New("transform: graph is nil")
	// ErrNoPrizes is returned when a prize transform runs on a graph
	// without prize data.
	ErrNoPrizes = errors.New("transform: graph carries no prizes")
	// ErrNegativePrize is returned when a terminal's prize is negative.
	ErrNegativePrize = errors.New("transform: terminal prize is negative")
	// ErrNoTerminals is returned when a prize transform finds nothing to
	// transform.
	ErrNoTerminals = errors.New("transform: graph has no terminals")
	// ErrNoRoot is returned by RootedPrizeCollecting when no root is set.
	ErrNoRoot = errors.New("transform: rooted transform needs a terminal root")
	// ErrHasTerminals is returned by MaxNodeWeight for graphs that already
	// carry terminals.
	ErrHasTerminals = errors.New("transform: max-node-weight input must have no terminals")
	// ErrWeightsLength is returned by MaxNodeWeight for a weight slice not
	// covering every node.
	ErrWeightsLength = errors.New("transform: weight slice length does not match node count")
	// ErrVariant is returned by the view swaps on non-prize-based graphs.
	ErrVariant = errors.New("transform: graph variant carries no prize structure")
)

// PrizeCollecting rewrites a prize-collecting instance in place: per
// terminal one twin node and three edges (six arcs) are added, plus one
// artificial root that replaces any previous one. The graph comes back in
// the solver view with VariantPrizeCollecting set.
func PrizeCollecting(g *graph.Graph) error {
	if g == nil {
		return ErrNilGraph
	}
	if !g.HasPrizes() {
		return ErrNoPrizes
	}
	nnodes := g.NodeCount()
	nterms := g.TermCount()
	if nterms == 0 {
		return ErrNoTerminals
	}
	for k := 0; k < nnodes; k++ {
		if g.IsTerm(k) && g.Prize(k) < 0 {
			return fmt.Errorf("%w: terminal %d has prize %g", ErrNegativePrize, k, g.Prize(k))
		}
	}

	g.RecordOrigModel()
	g.Resize(g.NodeCapacity()+nterms+1, g.ArcCapacity()+nterms*6, -1)

	for k := 0; k < nterms; k++ {
		g.AddNode(graph.TermNone)
	}
	root := g.AddNode(0)

	cnt := 0
	for k := 0; k < nnodes; k++ {
		if !g.IsTerm(k) {
			g.SetPrize(k, 0)
			continue
		}
		twin := nnodes + cnt
		cnt++

		g.ChangeTerm(k, graph.TermPseudo)
		g.ChangeTerm(twin, 0)

		// The zero-cost root arc keeps the instance connected whether or
		// not the tree pays for terminal k; the prize rides on the twin.
		g.AddEdge(root, k, 0, graph.Faraway)
		g.AddEdge(root, twin, g.Prize(k), graph.Faraway)
		g.AddEdge(k, twin, 0, graph.Faraway)
	}

	g.SetSource(0, root)
	g.SetVariant(graph.VariantPrizeCollecting)

	log := g.Logger()
	log.Debug().
		Int("terminals", nterms).
		Int("nodes", g.NodeCount()).
		Int("arcs", g.ArcCount()).
		Msg("prize-collecting transform applied")
	return nil
}

// RootedPrizeCollecting rewrites a rooted prize-collecting instance in
// place. The existing root keeps its role and gets no twin; every other
// terminal gets the twin apparatus (two edges, four arcs, no zero-cost
// root bypass: connecting the root is not optional here).
func RootedPrizeCollecting(g *graph.Graph) error {
	if g == nil {
		return ErrNilGraph
	}
	if !g.HasPrizes() {
		return ErrNoPrizes
	}
	nnodes := g.NodeCount()
	nterms := g.TermCount()
	if nterms == 0 {
		return ErrNoTerminals
	}
	root := g.Source(0)
	if root < 0 || !g.IsTerm(root) {
		return ErrNoRoot
	}
	for k := 0; k < nnodes; k++ {
		if g.IsTerm(k) && g.Prize(k) < 0 {
			return fmt.Errorf("%w: terminal %d has prize %g", ErrNegativePrize, k, g.Prize(k))
		}
	}

	g.RecordOrigModel()
	g.Resize(g.NodeCapacity()+nterms, g.ArcCapacity()+nterms*4, -1)

	for k := 0; k < nterms-1; k++ {
		g.AddNode(graph.TermNone)
	}

	cnt := 0
	for k := 0; k < nnodes; k++ {
		if !g.IsTerm(k) || k == root {
			g.SetPrize(k, 0)
			continue
		}
		twin := nnodes + cnt
		cnt++

		g.ChangeTerm(k, graph.TermPseudo)
		g.ChangeTerm(twin, 0)

		g.AddEdge(root, twin, g.Prize(k), graph.Faraway)
		g.AddEdge(k, twin, 0, graph.Faraway)
	}

	g.SetVariant(graph.VariantRootedPrizeCollecting)

	log := g.Logger()
	log.Debug().
		Int("terminals", nterms).
		Int("nodes", g.NodeCount()).
		Int("arcs", g.ArcCount()).
		Msg("rooted prize-collecting transform applied")
	return nil
}

// MaxNodeWeight rewrites a maximum-node-weight instance in place. The input
// carries no terminals; weights holds one value per node. Nodes with
// negative weight push that weight onto all their incoming arcs, nodes with
// non-negative weight become prize terminals, and the result is run through
// PrizeCollecting. VariantMaxNodeWeight is set so solution interpretation
// knows the offsets live on the arcs.
func MaxNodeWeight(g *graph.Graph, weights []float64) error {
	if g == nil {
		return ErrNilGraph
	}
	if g.TermCount() != 0 {
		return ErrHasTerminals
	}
	nnodes := g.NodeCount()
	if len(weights) != nnodes {
		return fmt.Errorf("%w: got %d, need %d", ErrWeightsLength, len(weights), nnodes)
	}

	cmp := g.Comparator()
	for i := 0; i < nnodes; i++ {
		if cmp.LT(weights[i], 0) {
			for e := g.FirstIn(i); e != -1; e = g.NextIn(e) {
				g.AddCost(e, -weights[i])
			}
		} else {
			g.ChangeTerm(i, 0)
		}
	}

	prizes := make([]float64, nnodes)
	for i := 0; i < nnodes; i++ {
		if g.IsTerm(i) {
			prizes[i] = weights[i]
		}
	}
	if err := g.SetPrizes(prizes); err != nil {
		return err
	}

	if err := PrizeCollecting(g); err != nil {
		return err
	}
	g.SetVariant(graph.VariantMaxNodeWeight)
	return nil
}

// OriginalView swaps a prize-based instance from the solver view to the
// original view: twins become pseudo-terminals again in effect (their
// terminal tags move back to the original terminals) and marks are set to
// the live original nodes, with the artificial apparatus unmarked. The root
// stays marked only on the rooted variant, where it is a real node.
func OriginalView(g *graph.Graph) error {
	if g == nil {
		return ErrNilGraph
	}
	if !g.Variant().PrizeBased() {
		return fmt.Errorf("%w: %s", ErrVariant, g.Variant())
	}
	root := g.Source(0)
	for k := 0; k < g.NodeCount(); k++ {
		g.SetMark(k, g.Degree(k) > 0)
		if g.IsPseudoTerm(k) {
			g.ChangeTerm(k, 0)
		} else if g.IsTerm(k) {
			g.SetMark(k, false)
			if k != root {
				g.ChangeTerm(k, graph.TermPseudo)
			}
		}
	}
	if g.Variant() == graph.VariantRootedPrizeCollecting {
		g.SetMark(root, true)
	}
	return nil
}

// SolverView swaps the tags back after OriginalView, restoring the
// representation the transforms produce.
func SolverView(g *graph.Graph) error {
	if g == nil {
		return ErrNilGraph
	}
	if !g.Variant().PrizeBased() {
		return fmt.Errorf("%w: %s", ErrVariant, g.Variant())
	}
	root := g.Source(0)
	for k := 0; k < g.NodeCount(); k++ {
		g.SetMark(k, g.Degree(k) > 0)
		if g.IsPseudoTerm(k) {
			g.ChangeTerm(k, 0)
		} else if g.IsTerm(k) && k != root {
			g.ChangeTerm(k, graph.TermPseudo)
		}
	}
	return nil
}
