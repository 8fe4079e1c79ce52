// Package steinlib reads Steiner tree instances in the SteinLib STP file
// format and turns them into graphs the reduction engine works on.
//
// The format is line oriented: a magic header, then SECTION blocks
// (Comment, Graph, Terminals, MaximumDegrees, Coordinates) terminated by
// END, with EOF closing the file. Undirected edges use E lines, directed
// arcs A lines; prize-collecting instances carry TP lines with a prize per
// terminal and optionally a RootP line. Keywords are matched without case
// sensitivity, unknown sections are skipped.
package steinlib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/steinred/graph"
)

// magic opens every SteinLib file.
const magic = "33d32945"

var (
	// ErrBadHeader is returned when the magic first line is missing.
	ErrBadHeader = errors.New("steinlib: missing 33D32945 header")
	// ErrSyntax wraps every line-level parse failure.
	ErrSyntax = errors.New("steinlib: syntax error")
	// ErrBadIndex is returned for node references outside 1..Nodes.
	ErrBadIndex = errors.New("steinlib: node index out of range")
)

// Edge is one undirected edge (or arc pair) of an instance, 0-based.
type Edge struct {
	Tail, Head int
	Cost       float64
	// RevCost differs from Cost only for instances given as arcs.
	RevCost float64
}

// Instance is a parsed STP file.
type Instance struct {
	Name      string
	Nodes     int
	Edges     []Edge
	Terminals []int
	// Prizes is nil unless the file carries TP lines.
	Prizes map[int]float64
	// Root is -1 unless the file names one (Root or RootP).
	Root int
	// MaxDegrees is nil unless the file has a MaximumDegrees section.
	MaxDegrees []int
}

// Parse reads an STP file.
func Parse(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	ins := &Instance{Root: -1}
	lineno := 0
	seenMagic := false
	section := ""

	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		key := strings.ToLower(fields[0])

		if !seenMagic {
			if !strings.HasPrefix(key, magic) {
				return nil, fmt.Errorf("%w: line %d", ErrBadHeader, lineno)
			}
			seenMagic = true
			continue
		}

		if key == "eof" {
			break
		}
		if key == "section" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: SECTION without a name", ErrSyntax, lineno)
			}
			section = strings.ToLower(fields[1])
			continue
		}
		if key == "end" {
			section = ""
			continue
		}

		var err error
		switch section {
		case "comment":
			if key == "name" {
				ins.Name = strings.Trim(strings.Join(fields[1:], " "), `"`)
			}
		case "graph":
			err = ins.graphLine(key, fields)
		case "terminals":
			err = ins.terminalLine(key, fields)
		case "maximumdegrees":
			err = ins.degreeLine(key, fields)
		default:
			// Coordinates and vendor sections carry nothing the engine
			// needs; skip them.
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, lineno, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !seenMagic {
		return nil, ErrBadHeader
	}

	if err := ins.check(); err != nil {
		return nil, err
	}
	return ins, nil
}

func (ins *Instance) graphLine(key string, fields []string) error {
	switch key {
	case "nodes":
		n, err := atoi(fields, 1)
		if err != nil {
			return err
		}
		ins.Nodes = n
	case "edges", "arcs":
		// Count hints only; edges are collected as they come.
	case "e", "a":
		if len(fields) < 4 {
			return fmt.Errorf("edge line needs tail, head, cost")
		}
		tail, err := atoi(fields, 1)
		if err != nil {
			return err
		}
		head, err := atoi(fields, 2)
		if err != nil {
			return err
		}
		cost, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return err
		}
		rev := cost
		if key == "a" {
			// A directed arc blocks the reverse direction unless a later
			// line opens it.
			rev = graph.Faraway
			for i := range ins.Edges {
				if ins.Edges[i].Tail == head-1 && ins.Edges[i].Head == tail-1 {
					ins.Edges[i].RevCost = cost
					return nil
				}
			}
		}
		ins.Edges = append(ins.Edges, Edge{Tail: tail - 1, Head: head - 1, Cost: cost, RevCost: rev})
	}
	return nil
}

func (ins *Instance) terminalLine(key string, fields []string) error {
	switch key {
	case "terminals":
	case "t":
		v, err := atoi(fields, 1)
		if err != nil {
			return err
		}
		ins.Terminals = append(ins.Terminals, v-1)
	case "tp":
		if len(fields) < 3 {
			return fmt.Errorf("TP line needs node and prize")
		}
		v, err := atoi(fields, 1)
		if err != nil {
			return err
		}
		prize, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return err
		}
		if ins.Prizes == nil {
			ins.Prizes = make(map[int]float64)
		}
		ins.Terminals = append(ins.Terminals, v-1)
		ins.Prizes[v-1] = prize
	case "root", "rootp":
		v, err := atoi(fields, 1)
		if err != nil {
			return err
		}
		ins.Root = v - 1
	}
	return nil
}

func (ins *Instance) degreeLine(key string, fields []string) error {
	if key != "md" {
		return nil
	}
	d, err := atoi(fields, 1)
	if err != nil {
		return err
	}
	ins.MaxDegrees = append(ins.MaxDegrees, d)
	return nil
}

func atoi(fields []string, i int) (int, error) {
	if i >= len(fields) {
		return 0, fmt.Errorf("missing field %d", i)
	}
	return strconv.Atoi(fields[i])
}

func (ins *Instance) check() error {
	if ins.Nodes <= 0 {
		return fmt.Errorf("%w: no Nodes line", ErrSyntax)
	}
	for _, e := range ins.Edges {
		if e.Tail < 0 || e.Tail >= ins.Nodes || e.Head < 0 || e.Head >= ins.Nodes {
			return fmt.Errorf("%w: edge %d-%d", ErrBadIndex, e.Tail+1, e.Head+1)
		}
	}
	for _, v := range ins.Terminals {
		if v < 0 || v >= ins.Nodes {
			return fmt.Errorf("%w: terminal %d", ErrBadIndex, v+1)
		}
	}
	if ins.Root >= ins.Nodes {
		return fmt.Errorf("%w: root %d", ErrBadIndex, ins.Root+1)
	}
	if ins.MaxDegrees != nil && len(ins.MaxDegrees) != ins.Nodes {
		return fmt.Errorf("%w: %d MD lines for %d nodes", ErrSyntax, len(ins.MaxDegrees), ins.Nodes)
	}
	return nil
}

// Graph builds the instance as a plain (or degree-constrained) graph. The
// root is the named one, else the first terminal. Prize data is installed
// on the graph but not transformed; callers decide between the
// prize-collecting variants (see the transform package).
func (ins *Instance) Graph(opts ...graph.Option) (*graph.Graph, error) {
	g, err := graph.New(ins.Nodes, 2*len(ins.Edges), 1, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < ins.Nodes; i++ {
		g.AddNode(graph.TermNone)
	}
	for _, e := range ins.Edges {
		g.AddEdge(e.Tail, e.Head, e.Cost, e.RevCost)
	}
	for _, v := range ins.Terminals {
		g.ChangeTerm(v, 0)
	}
	switch {
	case ins.Root >= 0:
		g.SetSource(0, ins.Root)
		if !g.IsTerm(ins.Root) {
			g.ChangeTerm(ins.Root, 0)
		}
	case len(ins.Terminals) > 0:
		g.SetSource(0, ins.Terminals[0])
	}

	if ins.Prizes != nil {
		prizes := make([]float64, ins.Nodes)
		for v, p := range ins.Prizes {
			prizes[v] = p
		}
		if err := g.SetPrizes(prizes); err != nil {
			return nil, err
		}
	}

	if ins.MaxDegrees != nil {
		if err := g.SetMaxDegrees(ins.MaxDegrees); err != nil {
			return nil, err
		}
		g.SetVariant(graph.VariantDegreeConstrained)
	} else {
		g.SetVariant(graph.VariantPlain)
	}
	return g, nil
}
