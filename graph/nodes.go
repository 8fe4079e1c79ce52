package graph

import "fmt"

// AddNode appends a node with the given terminal tag and returns its index.
// Panics when node capacity is exhausted; callers size the graph up front
// (or Resize before growing it).
func (g *Graph) AddNode(tag int) int {
	if g.knots >= g.ksize {
		panic(fmt.Sprintf("graph: node capacity %d exhausted", g.ksize))
	}
	v := g.knots
	g.term[v] = tag
	g.mark[v] = false
	g.grad[v] = 0
	g.inpbeg[v] = arcLast
	g.outbeg[v] = arcLast
	if tag >= 0 {
		g.checkLayer(tag)
		g.terms++
		g.locals[tag]++
	}
	g.knots++
	return v
}

// ChangeTerm retags node v, keeping the global and per-layer terminal
// counters consistent. Moving a node between two proper terminal layers, or
// between terminal, pseudo-terminal and plain states, all go through here.
func (g *Graph) ChangeTerm(v, tag int) {
	g.checkNode(v)
	if g.term[v] >= 0 {
		g.terms--
		g.locals[g.term[v]]--
	}
	if tag >= 0 {
		g.checkLayer(tag)
		g.terms++
		g.locals[tag]++
	}
	g.term[v] = tag
}
