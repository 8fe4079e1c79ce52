package graph

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/steinred/eps"
)

// New allocates an empty graph with room for ksize nodes, esize arcs
// (two per undirected edge) and the given number of terminal layers.
// Returns ErrBadCapacity or ErrBadLayers on nonsensical sizes.
//
// The graph starts with zero nodes; populate it with AddNode and AddEdge.
// Complexity: O(ksize + esize) allocation, nothing else.
func New(ksize, esize, layers int, opts ...Option) (*Graph, error) {
	if ksize <= 0 || esize < 0 {
		return nil, fmt.Errorf("%w: ksize=%d esize=%d", ErrBadCapacity, ksize, esize)
	}
	if layers <= 0 {
		return nil, fmt.Errorf("%w: layers=%d", ErrBadLayers, layers)
	}
	g := &Graph{
		cmp: eps.Default(),
		log: zerolog.Nop(),

		variant: VariantUndefined,
		ksize:   ksize,
		esize:   esize,
		layers:  layers,

		locals: make([]int, layers),
		source: make([]int, layers),

		term:   make([]int, ksize),
		mark:   make([]bool, ksize),
		grad:   make([]int, ksize),
		inpbeg: make([]int, ksize),
		outbeg: make([]int, ksize),

		cost: make([]float64, esize),
		tail: make([]int, esize),
		head: make([]int, esize),
		ieat: make([]int, esize),
		oeat: make([]int, esize),

		ancestors: make([]*IndexList, esize),
	}
	for l := 0; l < layers; l++ {
		g.source[l] = -1
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Resize grows the capacities in place; a negative argument leaves that
// capacity (or the layer count) unchanged. Shrinking panics: live data
// would be lost.
func (g *Graph) Resize(ksize, esize, layers int) {
	if ksize >= 0 && ksize < g.ksize {
		panic(fmt.Sprintf("graph: resize would shrink node capacity %d to %d", g.ksize, ksize))
	}
	if esize >= 0 && esize < g.esize {
		panic(fmt.Sprintf("graph: resize would shrink arc capacity %d to %d", g.esize, esize))
	}
	if layers > 0 && layers != g.layers {
		locals := make([]int, layers)
		source := make([]int, layers)
		copy(locals, g.locals)
		copy(source, g.source)
		for l := g.layers; l < layers; l++ {
			source[l] = -1
		}
		g.locals, g.source, g.layers = locals, source, layers
	}
	if ksize >= 0 && ksize != g.ksize {
		g.term = growInts(g.term, ksize)
		g.mark = growBools(g.mark, ksize)
		g.grad = growInts(g.grad, ksize)
		g.inpbeg = growInts(g.inpbeg, ksize)
		g.outbeg = growInts(g.outbeg, ksize)
		if g.prize != nil {
			g.prize = growFloats(g.prize, ksize)
		}
		if g.maxdeg != nil {
			g.maxdeg = growInts(g.maxdeg, ksize)
		}
		g.ksize = ksize
	}
	if esize >= 0 && esize != g.esize {
		g.cost = growFloats(g.cost, esize)
		g.tail = growInts(g.tail, esize)
		g.head = growInts(g.head, esize)
		g.ieat = growInts(g.ieat, esize)
		g.oeat = growInts(g.oeat, esize)
		anc := make([]*IndexList, esize)
		copy(anc, g.ancestors)
		g.ancestors = anc
		g.esize = esize
	}
}

func growInts(s []int, n int) []int {
	out := make([]int, n)
	copy(out, s)
	return out
}

func growFloats(s []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, s)
	return out
}

func growBools(s []bool, n int) []bool {
	out := make([]bool, n)
	copy(out, s)
	return out
}

// Clone returns an independent copy of the graph. Ancestor lists are shared
// structurally; they are immutable, so mutations on either copy only ever
// replace list heads.
func (g *Graph) Clone() *Graph {
	c := *g
	c.locals = append([]int(nil), g.locals...)
	c.source = append([]int(nil), g.source...)
	c.term = append([]int(nil), g.term...)
	c.mark = append([]bool(nil), g.mark...)
	c.grad = append([]int(nil), g.grad...)
	c.inpbeg = append([]int(nil), g.inpbeg...)
	c.outbeg = append([]int(nil), g.outbeg...)
	c.cost = append([]float64(nil), g.cost...)
	c.tail = append([]int(nil), g.tail...)
	c.head = append([]int(nil), g.head...)
	c.ieat = append([]int(nil), g.ieat...)
	c.oeat = append([]int(nil), g.oeat...)
	c.ancestors = append([]*IndexList(nil), g.ancestors...)
	if g.prize != nil {
		c.prize = append([]float64(nil), g.prize...)
	}
	if g.maxdeg != nil {
		c.maxdeg = append([]int(nil), g.maxdeg...)
	}
	return &c
}

//
// Accessors. Reduction passes live in sibling packages, so the full working
// surface of the instance is exported here.
//

// NodeCount returns the number of node slots in use, zero-degree leftovers
// included. Pack removes those.
func (g *Graph) NodeCount() int { return g.knots }

// ArcCount returns the number of arc slots in use, freed slots included.
func (g *Graph) ArcCount() int { return g.edges }

// NodeCapacity returns the allocated node capacity.
func (g *Graph) NodeCapacity() int { return g.ksize }

// ArcCapacity returns the allocated arc capacity.
func (g *Graph) ArcCapacity() int { return g.esize }

// Layers returns the number of terminal layers.
func (g *Graph) Layers() int { return g.layers }

// TermCount returns the number of live terminals across all layers.
func (g *Graph) TermCount() int { return g.terms }

// Variant returns the problem class tag.
func (g *Graph) Variant() Variant { return g.variant }

// SetVariant updates the problem class tag.
func (g *Graph) SetVariant(v Variant) { g.variant = v }

// Comparator returns the epsilon comparator the graph was built with.
func (g *Graph) Comparator() eps.Comparator { return g.cmp }

// Logger returns the graph's debug logger.
func (g *Graph) Logger() zerolog.Logger { return g.log }

// Term returns node v's terminal tag: a layer index, TermNone or TermPseudo.
func (g *Graph) Term(v int) int {
	g.checkNode(v)
	return g.term[v]
}

// IsTerm reports whether node v is a proper terminal.
func (g *Graph) IsTerm(v int) bool {
	g.checkNode(v)
	return g.term[v] >= 0
}

// IsPseudoTerm reports whether node v is a pseudo-terminal.
func (g *Graph) IsPseudoTerm(v int) bool {
	g.checkNode(v)
	return g.term[v] == TermPseudo
}

// Degree returns node v's live degree (arcs out of v that are neither freed
// nor hidden).
func (g *Graph) Degree(v int) int {
	g.checkNode(v)
	return g.grad[v]
}

// Mark reports node v's scratch mark.
func (g *Graph) Mark(v int) bool {
	g.checkNode(v)
	return g.mark[v]
}

// SetMark sets node v's scratch mark.
func (g *Graph) SetMark(v int, m bool) {
	g.checkNode(v)
	g.mark[v] = m
}

// MarkActive marks exactly the nodes with positive degree. Passes call it on
// entry; marks are scratch state and go stale as the pass deletes edges.
func (g *Graph) MarkActive() {
	for v := 0; v < g.knots; v++ {
		g.mark[v] = g.grad[v] > 0
	}
}

// Source returns the root node of the given layer, or -1 if unset.
func (g *Graph) Source(layer int) int {
	g.checkLayer(layer)
	return g.source[layer]
}

// SetSource sets the root node of the given layer.
func (g *Graph) SetSource(layer, v int) {
	g.checkLayer(layer)
	g.checkNode(v)
	g.source[layer] = v
}

// Cost returns arc e's cost.
func (g *Graph) Cost(e int) float64 {
	g.checkArc(e)
	return g.cost[e]
}

// SetCost sets arc e's cost. The anti-parallel arc is not touched.
func (g *Graph) SetCost(e int, c float64) {
	g.checkArc(e)
	g.cost[e] = c
}

// AddCost adds delta to arc e's cost.
func (g *Graph) AddCost(e int, delta float64) {
	g.checkArc(e)
	g.cost[e] += delta
}

// Tail returns the tail node of arc e.
func (g *Graph) Tail(e int) int {
	g.checkArc(e)
	return g.tail[e]
}

// Head returns the head node of arc e.
func (g *Graph) Head(e int) int {
	g.checkArc(e)
	return g.head[e]
}

// FirstOut returns the first live arc leaving v, or -1.
func (g *Graph) FirstOut(v int) int {
	g.checkNode(v)
	return g.outbeg[v]
}

// NextOut returns the next arc sharing e's tail, or -1.
func (g *Graph) NextOut(e int) int {
	g.checkArc(e)
	return g.oeat[e]
}

// FirstIn returns the first live arc entering v, or -1.
func (g *Graph) FirstIn(v int) int {
	g.checkNode(v)
	return g.inpbeg[v]
}

// NextIn returns the next arc sharing e's head, or -1.
func (g *Graph) NextIn(e int) int {
	g.checkArc(e)
	return g.ieat[e]
}

// ArcLive reports whether arc slot e currently holds a live (not freed, not
// hidden) arc.
func (g *Graph) ArcLive(e int) bool {
	g.checkArc(e)
	return g.oeat[e] != arcFree && g.oeat[e] != arcHidden
}

// Prize returns node v's prize. Zero until SetPrizes or SetPrize ran.
func (g *Graph) Prize(v int) float64 {
	g.checkNode(v)
	if g.prize == nil {
		return 0
	}
	return g.prize[v]
}

// SetPrize sets node v's prize, allocating prize storage on first use.
func (g *Graph) SetPrize(v int, p float64) {
	g.checkNode(v)
	if g.prize == nil {
		g.prize = make([]float64, g.ksize)
	}
	g.prize[v] = p
}

// SetPrizes installs prizes for all current nodes at once.
// Returns ErrPrizesLength unless len(prizes) == NodeCount().
func (g *Graph) SetPrizes(prizes []float64) error {
	if len(prizes) != g.knots {
		return fmt.Errorf("%w: got %d, need %d", ErrPrizesLength, len(prizes), g.knots)
	}
	if g.prize == nil {
		g.prize = make([]float64, g.ksize)
	}
	copy(g.prize, prizes)
	return nil
}

// HasPrizes reports whether prize storage has been installed.
func (g *Graph) HasPrizes() bool { return g.prize != nil }

// MaxDegree returns node v's degree bound, or 0 if the instance carries none.
func (g *Graph) MaxDegree(v int) int {
	g.checkNode(v)
	if g.maxdeg == nil {
		return 0
	}
	return g.maxdeg[v]
}

// SetMaxDegrees installs per-node degree bounds for all current nodes.
func (g *Graph) SetMaxDegrees(bounds []int) error {
	if len(bounds) != g.knots {
		return fmt.Errorf("%w: got %d, need %d", ErrPrizesLength, len(bounds), g.knots)
	}
	if g.maxdeg == nil {
		g.maxdeg = make([]int, g.ksize)
	}
	copy(g.maxdeg, bounds)
	return nil
}

// Grid returns the lattice metadata of a grid-built instance, or nil.
func (g *Graph) Grid() *GridData { return g.grid }

// SetGrid attaches lattice metadata.
func (g *Graph) SetGrid(gd *GridData) { g.grid = gd }

// RecordOrigModel snapshots the current sizes as the pre-transform model
// sizes. The prize-collecting transforms call it before growing the graph.
func (g *Graph) RecordOrigModel() {
	g.origModelNodes = g.knots
	g.origModelEdges = g.edges
}

// OrigModelNodes returns the node count recorded by RecordOrigModel.
func (g *Graph) OrigModelNodes() int { return g.origModelNodes }

// OrigModelEdges returns the arc count recorded by RecordOrigModel.
func (g *Graph) OrigModelEdges() int { return g.origModelEdges }

// OrigNodes returns the node count of the graph the last Pack condensed.
func (g *Graph) OrigNodes() int { return g.origNodes }

// OrigEdges returns the arc count of the graph the last Pack condensed.
func (g *Graph) OrigEdges() int { return g.origEdges }

//
// Internal contract checks.
//

func (g *Graph) checkNode(v int) {
	if v < 0 || v >= g.knots {
		panic(fmt.Sprintf("graph: node index %d out of range [0,%d)", v, g.knots))
	}
}

func (g *Graph) checkArc(e int) {
	if e < 0 || e >= g.edges {
		panic(fmt.Sprintf("graph: arc index %d out of range [0,%d)", e, g.edges))
	}
}

func (g *Graph) checkLayer(l int) {
	if l < 0 || l >= g.layers {
		panic(fmt.Sprintf("graph: layer index %d out of range [0,%d)", l, g.layers))
	}
}
