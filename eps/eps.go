// Package eps provides epsilon-tolerant floating-point predicates.
//
// Every cost comparison made by the reduction engine routes through a
// Comparator rather than raw ==/< operators: reduction decisions (keep the
// cheaper parallel edge, fold a degree-1 terminal, pick the max-prize
// terminal) must agree with the outer solver's notion of numeric equality,
// which is tolerance-based. The tolerance is solver-wide and fixed for the
// lifetime of a Comparator.
//
// Complexity: all predicates are O(1) and allocation-free.
package eps

import "errors"

// DefaultTolerance is the comparison tolerance used by Default.
// It matches the usual LP-solver feasibility epsilon.
const DefaultTolerance = 1e-9

// ErrBadTolerance is returned by New for a non-positive tolerance.
var ErrBadTolerance = errors.New("eps: tolerance must be positive")

// Comparator performs tolerance-based comparisons of float64 values.
// The zero value compares exactly; use New or Default instead.
type Comparator struct {
	tol float64
}

// New returns a Comparator with the given tolerance.
// Returns ErrBadTolerance if tol ≤ 0.
func New(tol float64) (Comparator, error) {
	if tol <= 0 {
		return Comparator{}, ErrBadTolerance
	}
	return Comparator{tol: tol}, nil
}

// Default returns a Comparator with DefaultTolerance.
func Default() Comparator {
	return Comparator{tol: DefaultTolerance}
}

// Tolerance reports the comparator's tolerance.
func (c Comparator) Tolerance() float64 { return c.tol }

// EQ reports a == b within tolerance.
func (c Comparator) EQ(a, b float64) bool {
	d := a - b
	return d <= c.tol && d >= -c.tol
}

// GT reports a > b beyond tolerance.
func (c Comparator) GT(a, b float64) bool { return a-b > c.tol }

// LT reports a < b beyond tolerance.
func (c Comparator) LT(a, b float64) bool { return b-a > c.tol }

// GE reports a ≥ b within tolerance.
func (c Comparator) GE(a, b float64) bool { return !c.LT(a, b) }

// LE reports a ≤ b within tolerance.
func (c Comparator) LE(a, b float64) bool { return !c.GT(a, b) }
