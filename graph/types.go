package graph

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/steinred/eps"
)

// Arc-slot sentinels stored in the ieat/oeat next-pointer arrays.
// A live arc's next pointer is either another arc index or arcLast.
const (
	arcLast   = -1 // end of an adjacency list
	arcFree   = -2 // slot deleted, available for reuse
	arcHidden = -3 // slot hidden by HideEdge, restored by UncoverEdges
)

// Terminal tags. Non-negative tags name the terminal's layer.
const (
	// TermNone marks a non-terminal node.
	TermNone = -1
	// TermPseudo marks a pseudo-terminal, used by the prize-collecting
	// transforms for original terminals demoted in the solver view.
	TermPseudo = -2
)

// KeepCost, passed as a cost argument to AddEdge, leaves the value already
// present in the reused arc slot untouched. Useful when an edge is deleted
// and later re-added around a temporary modification.
const KeepCost = -1.0

// Faraway is the engine's effectively-infinite cost. Reverse arcs created by
// the prize-collecting transforms carry it so they can never be traversed
// toward the artificial root.
const Faraway = 1e15

// Anti returns the index of the arc anti-parallel to e. Arcs are allocated
// in pairs at even/odd indices, so the partner is always e^1.
func Anti(e int) int { return e ^ 1 }

// Variant identifies the problem class an instance encodes. Transforms and
// reduction passes dispatch on it.
type Variant int

const (
	VariantUndefined Variant = iota
	VariantPlain
	VariantPrizeCollecting
	VariantRootedPrizeCollecting
	VariantMaxNodeWeight
	VariantGrid
	VariantObstacleGrid
	VariantDegreeConstrained
)

var variantNames = map[Variant]string{
	VariantUndefined:             "undefined",
	VariantPlain:                 "plain",
	VariantPrizeCollecting:       "prize-collecting",
	VariantRootedPrizeCollecting: "rooted-prize-collecting",
	VariantMaxNodeWeight:         "max-node-weight",
	VariantGrid:                  "grid",
	VariantObstacleGrid:          "obstacle-grid",
	VariantDegreeConstrained:     "degree-constrained",
}

func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return "unknown"
}

// PrizeBased reports whether the variant carries node prizes
// (an artificial root plus pseudo-terminal twins).
func (v Variant) PrizeBased() bool {
	switch v {
	case VariantPrizeCollecting, VariantRootedPrizeCollecting, VariantMaxNodeWeight:
		return true
	}
	return false
}

// Sentinel errors for caller-input validation. Structural corruption, by
// contrast, panics (see package doc).
var (
	// ErrBadCapacity is returned by New for a non-positive node capacity or
	// a negative arc capacity.
	ErrBadCapacity = errors.New("graph: capacity must be positive")
	// ErrBadLayers is returned by New for a non-positive layer count.
	ErrBadLayers = errors.New("graph: layer count must be positive")
	// ErrInvalid wraps every diagnostic produced by Validate.
	ErrInvalid = errors.New("graph: invalid structure")
	// ErrSolutionLength is returned by SolutionValid when the selection
	// slice does not cover every arc slot.
	ErrSolutionLength = errors.New("graph: solution length does not match arc count")
	// ErrPrizesLength is returned by SetPrizes for a short or long slice.
	ErrPrizesLength = errors.New("graph: prize slice length does not match node count")
)

// GridData records the lattice a grid-built instance was derived from, so a
// solution on the reduced graph can be reported in original coordinates.
// It survives Pack unchanged.
type GridData struct {
	// Dim is the lattice dimension (≥ 2).
	Dim int
	// Coords holds, per axis, the sorted distinct coordinate values the
	// terminals induce; len(Coords[i]) is the lattice extent on axis i.
	Coords [][]int
}

// NodeCoordinates maps a node index of the full lattice back to its
// coordinate values, one per axis. Node numbering is row-major with axis 0
// most significant.
func (gd *GridData) NodeCoordinates(node int) []int {
	out := make([]int, gd.Dim)
	tmp := 1
	for i := 0; i < gd.Dim; i++ {
		tmp *= len(gd.Coords[i])
	}
	rest := node
	for i := 0; i < gd.Dim; i++ {
		tmp /= len(gd.Coords[i])
		out[i] = gd.Coords[i][rest/tmp]
		rest %= tmp
	}
	return out
}

// Graph is the edge-list Steiner instance. See the package documentation for
// the storage model. All fields are index arrays sized to the current
// capacities; slots past the live counts are uninitialized.
type Graph struct {
	cmp eps.Comparator
	log zerolog.Logger

	variant Variant

	ksize int // node capacity
	esize int // arc capacity
	knots int // node slots in use (including zero-degree leftovers)
	edges int // arc slots in use (including freed ones)

	layers int
	terms  int   // live terminals over all layers
	locals []int // live terminals per layer
	source []int // root node per layer

	term   []int
	mark   []bool
	grad   []int
	inpbeg []int
	outbeg []int
	prize  []float64

	cost []float64
	tail []int
	head []int
	ieat []int // next arc with the same head
	oeat []int // next arc with the same tail

	ancestors []*IndexList
	fixed     *IndexList

	// endpoint snapshot taken by InitHistory; indexed by original arc
	// index, never remapped
	origTail []int
	origHead []int

	maxdeg []int
	grid   *GridData

	// sizes of the instance as first modelled, before any transform
	origModelNodes int
	origModelEdges int
	// sizes of the graph a Pack call condensed, for reporting
	origNodes int
	origEdges int
}

// Option configures a Graph at construction time.
type Option func(*Graph)

// WithComparator sets the epsilon comparator used for every cost decision.
func WithComparator(c eps.Comparator) Option {
	return func(g *Graph) { g.cmp = c }
}

// WithLogger sets the debug logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Graph) { g.log = l }
}
