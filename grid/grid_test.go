package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/steinred/graph"
	"github.com/katalvlaran/steinred/grid"
)

func TestBuild_TwoTerminals(t *testing.T) {
	// Terminals (0,0) and (3,5) span a 2x2 lattice.
	g, err := grid.Build([][]int{{0, 3}, {0, 5}}, 0)
	require.NoError(t, err)

	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, 8, g.ArcCount())
	assert.Equal(t, 2, g.TermCount())
	assert.Equal(t, graph.VariantGrid, g.Variant())
	require.NoError(t, g.Validate())

	// Row-major numbering, axis 0 most significant: node 0 is (0,0),
	// node 3 is (3,5).
	assert.True(t, g.IsTerm(0))
	assert.True(t, g.IsTerm(3))
	assert.Equal(t, 0, g.Source(0))

	// Axis deltas become the edge costs.
	var costs []float64
	for e := 0; e < g.ArcCount(); e += 2 {
		costs = append(costs, g.Cost(e))
	}
	assert.ElementsMatch(t, []float64{3, 5, 3, 5}, costs)
}

func TestBuild_ScaleOrder(t *testing.T) {
	g, err := grid.Build([][]int{{0, 3}, {0, 5}}, 1)
	require.NoError(t, err)

	var costs []float64
	for e := 0; e < g.ArcCount(); e += 2 {
		costs = append(costs, g.Cost(e))
	}
	assert.ElementsMatch(t, []float64{0.3, 0.5, 0.3, 0.5}, costs)
}

func TestBuild_DuplicateCoordinatesCollapse(t *testing.T) {
	// Three terminals, two sharing an x value: lattice is 2x2, not 3x3.
	g, err := grid.Build([][]int{{0, 0, 4}, {0, 2, 2}}, 0)
	require.NoError(t, err)

	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, 3, g.TermCount())
	require.NoError(t, g.Validate())
}

func TestBuild_InputValidation(t *testing.T) {
	_, err := grid.Build([][]int{{0, 1}}, 0)
	assert.ErrorIs(t, err, grid.ErrDimension)

	_, err = grid.Build([][]int{{}, {}}, 0)
	assert.ErrorIs(t, err, grid.ErrNoTerminals)

	_, err = grid.Build([][]int{{0, 1}, {0}}, 0)
	assert.ErrorIs(t, err, grid.ErrRagged)
}

func TestGridData_NodeCoordinates(t *testing.T) {
	g, err := grid.Build([][]int{{0, 3}, {0, 5}}, 0)
	require.NoError(t, err)

	gd := g.Grid()
	require.NotNil(t, gd)
	assert.Equal(t, []int{0, 0}, gd.NodeCoordinates(0))
	assert.Equal(t, []int{0, 5}, gd.NodeCoordinates(1))
	assert.Equal(t, []int{3, 0}, gd.NodeCoordinates(2))
	assert.Equal(t, []int{3, 5}, gd.NodeCoordinates(3))
}

//---------------------------------------------------------------------
// Obstacles
//---------------------------------------------------------------------

func TestBuildObstacles_RemovesInterior(t *testing.T) {
	// Terminals span a 3x3 lattice; the obstacle covers its center point
	// (1,1) strictly, leaving a ring of eight nodes.
	coords := [][]int{{0, 1, 2}, {0, 2, 1}}
	obstacles := [][]int{{0, 0, 2, 2}}

	g, err := grid.BuildObstacles(coords, obstacles, 0)
	require.NoError(t, err)

	assert.Equal(t, 8, g.NodeCount())
	assert.Equal(t, 16, g.ArcCount())
	assert.Equal(t, 3, g.TermCount())
	assert.Equal(t, graph.VariantObstacleGrid, g.Variant())
	assert.Equal(t, 0, g.Source(0))
	require.NoError(t, g.Validate())

	// Every surviving node sits on the ring: degree 2 corners, degree 2
	// mid-edges (the center connections are gone).
	for v := 0; v < g.NodeCount(); v++ {
		assert.Equal(t, 2, g.Degree(v), "node %d", v)
	}
}

func TestBuildObstacles_BoundaryPointsSurvive(t *testing.T) {
	// An obstacle whose boundary passes through lattice points removes
	// nothing: containment is strict.
	coords := [][]int{{0, 1, 2}, {0, 1, 2}}
	obstacles := [][]int{{0, 0, 1, 1}}

	g, err := grid.BuildObstacles(coords, obstacles, 0)
	require.NoError(t, err)
	assert.Equal(t, 9, g.NodeCount())
	require.NoError(t, g.Validate())
}

func TestBuildObstacles_InputValidation(t *testing.T) {
	_, err := grid.BuildObstacles([][]int{{0}, {0}, {0}}, nil, 0)
	assert.ErrorIs(t, err, grid.ErrDimension)

	_, err = grid.BuildObstacles([][]int{{0, 2}, {0, 2}}, [][]int{{1, 1, 1, 3}}, 0)
	assert.ErrorIs(t, err, grid.ErrBadObstacle)
}
