package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/steinred/graph"
)

func TestValidate_AcceptsTriangle(t *testing.T) {
	assert.NoError(t, triangle(t).Validate())
}

func TestValidate_MissingRoot(t *testing.T) {
	g, err := graph.New(2, 2, 1)
	require.NoError(t, err)
	g.AddNode(0)
	g.AddNode(0)
	g.AddEdge(0, 1, 1, 1)

	assert.ErrorIs(t, g.Validate(), graph.ErrInvalid)
	g.SetSource(0, 0)
	assert.NoError(t, g.Validate())
}

func TestValidate_RootMustBeTerminal(t *testing.T) {
	g, err := graph.New(2, 2, 1)
	require.NoError(t, err)
	g.AddNode(graph.TermNone)
	g.AddNode(0)
	g.AddEdge(0, 1, 1, 1)
	g.SetSource(0, 0)

	assert.ErrorIs(t, g.Validate(), graph.ErrInvalid)
}

func TestValidate_UnreachableNode(t *testing.T) {
	g, err := graph.New(4, 4, 1)
	require.NoError(t, err)
	g.AddNode(0)
	g.AddNode(graph.TermNone)
	g.AddNode(graph.TermNone)
	g.AddNode(graph.TermNone)
	g.SetSource(0, 0)
	g.AddEdge(0, 1, 1, 1)
	g.AddEdge(2, 3, 1, 1) // island

	assert.ErrorIs(t, g.Validate(), graph.ErrInvalid)

	// Prize-based variants may legitimately strand nodes.
	g.SetVariant(graph.VariantPrizeCollecting)
	assert.NoError(t, g.Validate())
}

//---------------------------------------------------------------------
// Solution checking
//---------------------------------------------------------------------

// path builds 0-1-2-3 with unit costs; terminals at both ends, rooted at 0.
func path4(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(4, 6, 1)
	require.NoError(t, err)
	g.AddNode(0)
	g.AddNode(graph.TermNone)
	g.AddNode(graph.TermNone)
	g.AddNode(0)
	g.SetSource(0, 0)
	g.AddEdge(0, 1, 1, 1) // 0/1
	g.AddEdge(1, 2, 2, 2) // 2/3
	g.AddEdge(2, 3, 3, 3) // 4/5
	return g
}

func TestSolutionValid_ConnectedSelection(t *testing.T) {
	g := path4(t)

	sel := make([]bool, g.ArcCount())
	sel[0], sel[2], sel[4] = true, true, true
	ok, err := g.SolutionValid(sel)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSolutionValid_MissingArc(t *testing.T) {
	g := path4(t)

	sel := make([]bool, g.ArcCount())
	sel[0], sel[4] = true, true // arc 4 selected but unreachable from 0
	ok, err := g.SolutionValid(sel)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolutionValid_WrongDirection(t *testing.T) {
	g := path4(t)

	// Reverse arcs point away from the far terminal; the walk from the
	// root never uses them.
	sel := make([]bool, g.ArcCount())
	sel[1], sel[3], sel[5] = true, true, true
	ok, err := g.SolutionValid(sel)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolutionValid_CyclicSelectionTerminates(t *testing.T) {
	g := triangle(t)
	g.ChangeTerm(2, 0)

	sel := make([]bool, g.ArcCount())
	for e := range sel {
		sel[e] = true
	}
	ok, err := g.SolutionValid(sel)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSolutionValid_LengthMismatch(t *testing.T) {
	g := path4(t)
	_, err := g.SolutionValid(make([]bool, 3))
	assert.ErrorIs(t, err, graph.ErrSolutionLength)
}
