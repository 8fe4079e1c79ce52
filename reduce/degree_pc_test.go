package reduce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/steinred/graph"
	"github.com/katalvlaran/steinred/reduce"
	"github.com/katalvlaran/steinred/transform"
)

// prizeStar builds a star with non-terminal center 3 and prize terminals
// 0,1,2 (edge costs 1,2,3), then applies the prize-collecting transform.
func prizeStar(t *testing.T, prizes []float64) *graph.Graph {
	t.Helper()
	g, err := graph.New(4, 6, 1)
	require.NoError(t, err)
	g.AddNode(0)
	g.AddNode(0)
	g.AddNode(0)
	g.AddNode(graph.TermNone)
	g.SetSource(0, 0)
	g.AddEdge(3, 0, 1, 1)
	g.AddEdge(3, 1, 2, 2)
	g.AddEdge(3, 2, 3, 3)
	require.NoError(t, g.SetPrizes(prizes))
	require.NoError(t, transform.PrizeCollecting(g))
	g.InitHistory()
	return g
}

func TestDegreeTestPC_InputValidation(t *testing.T) {
	var fixed float64
	_, err := reduce.DegreeTestPC(nil, &fixed)
	assert.ErrorIs(t, err, reduce.ErrNilGraph)

	g := prizeStar(t, []float64{5, 6, 7, 0})
	_, err = reduce.DegreeTestPC(g, nil)
	assert.ErrorIs(t, err, reduce.ErrNilOffset)

	g.SetVariant(graph.VariantPlain)
	_, err = reduce.DegreeTestPC(g, &fixed)
	assert.ErrorIs(t, err, reduce.ErrVariant)
}

func TestDegreeTestPC_HighPrizesUntouched(t *testing.T) {
	// Every prize beats its connection cost: nothing may be eliminated.
	g := prizeStar(t, []float64{5, 6, 7, 0})

	var fixed float64
	n, err := reduce.DegreeTestPC(g, &fixed)
	require.NoError(t, err)

	assert.Zero(t, n)
	assert.Zero(t, fixed)
	assert.Equal(t, 4, g.TermCount()) // three twins plus the root
	require.NoError(t, g.Validate())
}

func TestDegreeTestPC_DropsCheapTerminalAndCascades(t *testing.T) {
	// Terminal 2's prize (0.5) is below its edge cost (3): it is deleted
	// with its twin, its prize joining the offset. That leaves the center
	// with effective degree 2, which gets bypassed into terminal 0, and
	// the resulting 0-1 edge (cost 3) undercuts both remaining prizes, so
	// the terminals contract.
	g := prizeStar(t, []float64{5, 6, 0.5, 0})

	var fixed float64
	n, err := reduce.DegreeTestPC(g, &fixed)
	require.NoError(t, err)

	assert.Equal(t, 6, n)
	assert.InDelta(t, 3.5, fixed, 1e-12)

	// Terminal 0 absorbed terminal 1: its prize grew by the difference
	// between prize 1 and the connection cost, kept in sync on the root
	// arc to its twin.
	assert.InDelta(t, 8.0, g.Prize(0), 1e-12)

	assert.Zero(t, g.Degree(1))
	assert.Zero(t, g.Degree(2))
	assert.Zero(t, g.Degree(3))

	// Back in the solver view: the survivor is a pseudo-terminal, its
	// twin and the artificial root are the terminals.
	assert.True(t, g.IsPseudoTerm(0))
	assert.True(t, g.IsTerm(4))
	assert.Equal(t, 2, g.TermCount())
	assert.NotNil(t, g.Fixed())
	require.NoError(t, g.Validate())

	root := g.Source(0)
	var twinPrice float64
	for e := g.FirstOut(root); e != -1; e = g.NextOut(e) {
		if g.Head(e) == 4 {
			twinPrice = g.Cost(e)
		}
	}
	assert.InDelta(t, 8.0, twinPrice, 1e-12)
}

// TestDegreeTestPC_PreservesOptimum checks the reduction against the
// exhaustively computed prize-collecting optimum of the star: minimize
// tree cost plus forfeited prizes over every subset of terminals (single
// terminals count as one-node trees). The pass collapses this instance
// completely, so its fixed offset plus the zero-cost remainder must equal
// that optimum.
func TestDegreeTestPC_PreservesOptimum(t *testing.T) {
	costs := []float64{1, 2, 3}
	prizes := []float64{5, 6, 0.5}

	total := 0.0
	for _, p := range prizes {
		total += p
	}
	best := total // the empty tree forfeits everything
	for _, p := range prizes {
		if total-p < best { // one-node tree on a single terminal
			best = total - p
		}
	}
	for s := 1; s < 1<<len(prizes); s++ {
		obj := 0.0
		for k := range prizes {
			if s&(1<<k) != 0 {
				obj += costs[k]
			} else {
				obj += prizes[k]
			}
		}
		if obj < best {
			best = obj
		}
	}
	require.InDelta(t, 3.5, best, 1e-12) // connect 0 and 1, forfeit terminal 2

	g := prizeStar(t, append(prizes, 0))
	var fixed float64
	_, err := reduce.DegreeTestPC(g, &fixed)
	require.NoError(t, err)

	// Only root apparatus survives: the root reaches the one remaining
	// twin through zero-cost arcs, so the reduced optimum is zero and the
	// offset carries the whole objective.
	root := g.Source(0)
	var toSurvivor, toTwin float64 = -1, -1
	for e := g.FirstOut(root); e != -1; e = g.NextOut(e) {
		if g.Head(e) == 0 {
			toSurvivor = g.Cost(e)
		}
	}
	for e := g.FirstOut(0); e != -1; e = g.NextOut(e) {
		if g.Head(e) == 4 {
			toTwin = g.Cost(e)
		}
	}
	assert.Zero(t, toSurvivor)
	assert.Zero(t, toTwin)
	assert.InDelta(t, best, fixed, 1e-12)
}

func TestDegreeTestPC_MaxPrizeTerminalSurvives(t *testing.T) {
	// All prizes are below their edge costs, so every terminal is a
	// deletion candidate. The max-prize terminal (first index on ties)
	// must survive, losing only its graph edge.
	g := prizeStar(t, []float64{0.1, 0.1, 0.1, 0})

	var fixed float64
	n, err := reduce.DegreeTestPC(g, &fixed)
	require.NoError(t, err)

	assert.Equal(t, 9, n)
	assert.InDelta(t, 0.2, fixed, 1e-12)

	// Node 0 keeps its prize apparatus; terminals 1 and 2 are gone.
	assert.True(t, g.IsPseudoTerm(0))
	assert.Equal(t, 2, g.Degree(0))
	assert.Zero(t, g.Degree(1))
	assert.Zero(t, g.Degree(2))
	assert.Equal(t, 2, g.TermCount())
	require.NoError(t, g.Validate())
}

func TestDegreeTestPC_RootedBypassesChain(t *testing.T) {
	// Rooted variant: path 0(root)-1-2-3(T, prize 7), costs 1,2,3. The
	// interior non-terminals are bypassed one after the other, leaving a
	// direct root-terminal edge of cost 6; the prize exceeds it, so the
	// terminal stays.
	g, err := graph.New(4, 6, 1)
	require.NoError(t, err)
	g.AddNode(0)
	g.AddNode(graph.TermNone)
	g.AddNode(graph.TermNone)
	g.AddNode(0)
	g.SetSource(0, 0)
	g.AddEdge(0, 1, 1, 1)
	g.AddEdge(1, 2, 2, 2)
	g.AddEdge(2, 3, 3, 3)
	require.NoError(t, g.SetPrizes([]float64{0, 0, 0, 7}))
	require.NoError(t, transform.RootedPrizeCollecting(g))
	g.InitHistory()

	var fixed float64
	n, err := reduce.DegreeTestPC(g, &fixed)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Zero(t, fixed)
	assert.Zero(t, g.Degree(1))
	assert.Zero(t, g.Degree(2))

	e := g.FirstOut(0)
	for ; e != -1; e = g.NextOut(e) {
		if g.Head(e) == 3 {
			break
		}
	}
	require.NotEqual(t, -1, e)
	assert.Equal(t, 6.0, g.Cost(e))
	require.NoError(t, g.Validate())
}
