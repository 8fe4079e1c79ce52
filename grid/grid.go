// Package grid builds Steiner instances from rectilinear terminal layouts.
//
// Given integer terminal coordinates, Build spans the Hanan grid: per axis
// the distinct coordinate values define a lattice, every lattice point
// becomes a node, and axis-aligned neighbors are joined by edges whose cost
// is the coordinate delta (optionally rescaled by a decimal scale order).
// BuildObstacles additionally removes the lattice points strictly inside
// rectangular obstacles; the result is packed so obstacle nodes disappear
// from the instance entirely.
//
// Both builders attach graph.GridData so reduced solutions can be reported
// in the original coordinates.
package grid

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/steinred/graph"
)

var (
	// ErrDimension is returned for layouts with fewer than two axes, or
	// obstacle layouts not in the plane.
	ErrDimension = errors.New("grid: need at least two axes (obstacles: exactly two)")
	// ErrNoTerminals is returned for an empty terminal set.
	ErrNoTerminals = errors.New("grid: need at least one terminal")
	// ErrRagged is returned when the per-axis coordinate slices differ in
	// length.
	ErrRagged = errors.New("grid: coordinate slices differ in length")
	// ErrBadObstacle is returned for an obstacle without positive area.
	ErrBadObstacle = errors.New("grid: obstacle needs x1 < x2 and y1 < y2")
)

// Build creates a Hanan-grid instance from terminal coordinates.
// coords[i][t] is terminal t's coordinate on axis i; all terminals become
// layer-0 terminals and the first one is the root. Edge costs are the
// integer coordinate deltas divided by 10^scaleOrder.
func Build(coords [][]int, scaleOrder int, opts ...graph.Option) (*graph.Graph, error) {
	lat, err := newLattice(coords)
	if err != nil {
		return nil, err
	}
	scale := math.Pow(10, float64(scaleOrder))

	g, err := graph.New(lat.nnodes, 2*lat.maxEdges(), 1, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < lat.nnodes; i++ {
		g.AddNode(graph.TermNone)
	}

	lat.eachPoint(func(curr []int) {
		node := lat.nodeNumber(curr, -1)
		for j := range curr {
			if curr[j]+1 >= len(lat.axes[j]) {
				continue
			}
			cost := float64(lat.axes[j][curr[j]+1]-lat.axes[j][curr[j]]) / scale
			g.AddEdge(node, lat.nodeNumber(curr, j), cost, cost)
		}
	})

	lat.placeTerminals(g)
	g.SetGrid(&graph.GridData{Dim: lat.dim, Coords: lat.axes})
	g.SetVariant(graph.VariantGrid)
	return g, nil
}

// BuildObstacles creates a planar Hanan-grid instance with rectangular
// obstacles. Each obstacle is {x1, y1, x2, y2} with x1 < x2 and y1 < y2;
// lattice points strictly inside an obstacle are removed along with their
// edges (boundary points survive). The instance comes back packed, so node
// indices are dense.
func BuildObstacles(coords, obstacles [][]int, scaleOrder int, opts ...graph.Option) (*graph.Graph, error) {
	if len(coords) != 2 {
		return nil, fmt.Errorf("%w: got %d axes", ErrDimension, len(coords))
	}
	for _, ob := range obstacles {
		if len(ob) != 4 || ob[0] >= ob[2] || ob[1] >= ob[3] {
			return nil, fmt.Errorf("%w: %v", ErrBadObstacle, ob)
		}
	}
	lat, err := newLattice(coords)
	if err != nil {
		return nil, err
	}
	scale := math.Pow(10, float64(scaleOrder))

	blocked := make([]bool, lat.nnodes)
	lat.eachPoint(func(curr []int) {
		x := lat.axes[0][curr[0]]
		y := lat.axes[1][curr[1]]
		for _, ob := range obstacles {
			if x > ob[0] && x < ob[2] && y > ob[1] && y < ob[3] {
				blocked[lat.nodeNumber(curr, -1)] = true
				return
			}
		}
	})

	g, err := graph.New(lat.nnodes, 2*lat.maxEdges(), 1, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < lat.nnodes; i++ {
		g.AddNode(graph.TermNone)
	}

	lat.eachPoint(func(curr []int) {
		node := lat.nodeNumber(curr, -1)
		if blocked[node] {
			return
		}
		for j := range curr {
			if curr[j]+1 >= len(lat.axes[j]) {
				continue
			}
			neighbor := lat.nodeNumber(curr, j)
			if blocked[neighbor] {
				continue
			}
			cost := float64(lat.axes[j][curr[j]+1]-lat.axes[j][curr[j]]) / scale
			g.AddEdge(node, neighbor, cost, cost)
		}
	})

	lat.placeTerminals(g)
	g.SetGrid(&graph.GridData{Dim: lat.dim, Coords: lat.axes})

	q := g.Pack()
	q.SetVariant(graph.VariantObstacleGrid)
	return q, nil
}

// lattice is the Hanan grid induced by a terminal layout.
type lattice struct {
	dim    int
	nnodes int
	axes   [][]int // sorted distinct coordinates per axis
	terms  [][]int // original per-terminal coordinates, [axis][terminal]
}

func newLattice(coords [][]int) (*lattice, error) {
	dim := len(coords)
	if dim < 2 {
		return nil, fmt.Errorf("%w: got %d axes", ErrDimension, dim)
	}
	nterms := len(coords[0])
	if nterms == 0 {
		return nil, ErrNoTerminals
	}

	lat := &lattice{dim: dim, nnodes: 1}
	lat.terms = make([][]int, dim)
	lat.axes = make([][]int, dim)
	for i, axis := range coords {
		if len(axis) != nterms {
			return nil, fmt.Errorf("%w: axis %d has %d values, axis 0 has %d",
				ErrRagged, i, len(axis), nterms)
		}
		lat.terms[i] = append([]int(nil), axis...)

		vals := append([]int(nil), axis...)
		sort.Ints(vals)
		dedup := vals[:1]
		for _, v := range vals[1:] {
			if v != dedup[len(dedup)-1] {
				dedup = append(dedup, v)
			}
		}
		lat.axes[i] = dedup
		lat.nnodes *= len(dedup)
	}
	return lat, nil
}

// maxEdges counts the axis-aligned neighbor pairs of the full lattice.
func (lat *lattice) maxEdges() int {
	n := 0
	for i := 0; i < lat.dim; i++ {
		n += lat.nnodes - lat.nnodes/len(lat.axes[i])
	}
	return n
}

// nodeNumber maps a lattice position to its node index, row-major with
// axis 0 most significant. shift names an axis whose coordinate is taken
// one step up, or -1 for the position itself.
func (lat *lattice) nodeNumber(curr []int, shift int) int {
	number := 0
	for i := 0; i < lat.dim; i++ {
		tmp := 1
		for j := i + 1; j < lat.dim; j++ {
			tmp *= len(lat.axes[j])
		}
		if i == shift {
			number += (curr[i] + 1) * tmp
		} else {
			number += curr[i] * tmp
		}
	}
	return number
}

// eachPoint enumerates every lattice position in odometer order.
func (lat *lattice) eachPoint(fn func(curr []int)) {
	curr := make([]int, lat.dim)
	for {
		fn(curr)
		i := lat.dim - 1
		for ; i >= 0; i-- {
			curr[i]++
			if curr[i] < len(lat.axes[i]) {
				break
			}
			curr[i] = 0
		}
		if i < 0 {
			return
		}
	}
}

// placeTerminals tags the node at each terminal's position and roots the
// instance at the first one. A terminal coordinate missing from its own
// axis would mean the dedup above lost a value, which cannot happen short
// of a bug, so it panics.
func (lat *lattice) placeTerminals(g *graph.Graph) {
	curr := make([]int, lat.dim)
	nterms := len(lat.terms[0])
	for t := 0; t < nterms; t++ {
		for j := 0; j < lat.dim; j++ {
			k := sort.SearchInts(lat.axes[j], lat.terms[j][t])
			if k == len(lat.axes[j]) || lat.axes[j][k] != lat.terms[j][t] {
				panic(fmt.Sprintf("grid: terminal coordinate %d missing from axis %d",
					lat.terms[j][t], j))
			}
			curr[j] = k
		}
		node := lat.nodeNumber(curr, -1)
		if t == 0 {
			g.SetSource(0, node)
		}
		g.ChangeTerm(node, 0)
	}
}
