package reduce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/steinred/graph"
	"github.com/katalvlaran/steinred/reduce"
)

func TestDegreeTest_InputValidation(t *testing.T) {
	var fixed float64
	_, err := reduce.DegreeTest(nil, &fixed)
	assert.ErrorIs(t, err, reduce.ErrNilGraph)

	g, err := graph.New(2, 2, 1)
	require.NoError(t, err)
	g.AddNode(0)
	g.AddNode(0)
	g.AddEdge(0, 1, 1, 1)
	g.SetSource(0, 0)

	_, err = reduce.DegreeTest(g, nil)
	assert.ErrorIs(t, err, reduce.ErrNilOffset)

	g.SetVariant(graph.VariantPrizeCollecting)
	_, err = reduce.DegreeTest(g, &fixed)
	assert.ErrorIs(t, err, reduce.ErrVariant)
}

func TestDegreeTest_CollapsesPath(t *testing.T) {
	// 0(T) -1- 1 -2- 2 -3- 3(T): every leaf fold moves its edge cost into
	// the offset until a single node remains.
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
	g.InitHistory()

	var fixed float64
	n, err := reduce.DegreeTest(g, &fixed)
	require.NoError(t, err)

	assert.Equal(t, 6.0, fixed)
	assert.Equal(t, 1, g.TermCount())
	for v := 0; v < g.NodeCount(); v++ {
		assert.Zero(t, g.Degree(v), "node %d", v)
	}
	// The last fold empties the graph and is not counted.
	assert.Equal(t, 2, n)

	// Folded edges are all on the fixed list for reconstruction.
	assert.ElementsMatch(t, []int{1, 3, 5}, g.Fixed().Slice())

	q := g.Pack()
	assert.Equal(t, 1, q.NodeCount())
	assert.Equal(t, 1, q.TermCount())
}

func TestDegreeTest_BypassesDegree2(t *testing.T) {
	// Cycle 0(T)-1-2-3-0 with a chain of three non-terminals: only node 2
	// has two non-terminal neighbors and gets bypassed.
	g, err := graph.New(4, 8, 1)
	require.NoError(t, err)
	g.AddNode(0)
	g.AddNode(graph.TermNone)
	g.AddNode(graph.TermNone)
	g.AddNode(graph.TermNone)
	g.SetSource(0, 0)
	g.AddEdge(0, 1, 1, 1) // 0/1
	g.AddEdge(1, 2, 1, 1) // 2/3
	g.AddEdge(2, 3, 1, 1) // 4/5
	g.AddEdge(3, 0, 5, 5) // 6/7
	g.InitHistory()

	var fixed float64
	n, err := reduce.DegreeTest(g, &fixed)
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Zero(t, fixed)
	assert.Zero(t, g.Degree(2))
	assert.Equal(t, 2, g.Degree(1))
	assert.Equal(t, 2, g.Degree(3))
	require.NoError(t, g.Validate())

	// The bypass edge 1-3 carries the summed through-cost and the merged
	// histories of both replaced edges.
	e := g.FirstOut(1)
	for ; e != -1; e = g.NextOut(e) {
		if g.Head(e) == 3 {
			break
		}
	}
	require.NotEqual(t, -1, e)
	assert.Equal(t, 2.0, g.Cost(e))
	assert.Equal(t, 2.0, g.Cost(graph.Anti(e)))
	assert.ElementsMatch(t, []int{2, 4}, g.Ancestors(e).Slice())
	assert.ElementsMatch(t, []int{3, 5}, g.Ancestors(graph.Anti(e)).Slice())

	// A second pass finds nothing more.
	n, err = reduce.DegreeTest(g, &fixed)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDegreeTest_LeafFoldsDominate(t *testing.T) {
	// A non-terminal flanked by two terminals is never bypassed, but the
	// terminal leaves fold inward and absorb it anyway.
	g, err := graph.New(3, 4, 1)
	require.NoError(t, err)
	g.AddNode(0)
	g.AddNode(graph.TermNone)
	g.AddNode(0)
	g.SetSource(0, 0)
	g.AddEdge(0, 1, 1, 1)
	g.AddEdge(1, 2, 2, 2)
	g.InitHistory()

	// Both terminals have degree 1 though, so they fold into node 1.
	var fixed float64
	_, err = reduce.DegreeTest(g, &fixed)
	require.NoError(t, err)
	assert.Equal(t, 3.0, fixed)
	assert.Equal(t, 1, g.TermCount())
}
