// Package steinred is a presolve engine for Steiner tree problems: it
// shrinks instances with cost-preserving reduction tests before a solver
// ever sees them.
//
// 🚀 What is steinred?
//
//	A library (plus the steinred CLI) that brings together:
//		• graph/     — the arc-pair storage the whole engine runs on, with
//		  ancestor histories, contraction, validation and packing
//		• transform/ — prize-collecting, rooted prize-collecting and
//		  maximum-node-weight reformulations via twin terminals
//		• reduce/    — degree-based reduction tests for plain and
//		  prize-collecting instances
//		• grid/      — rectilinear grid construction from terminal
//		  coordinates, with and without obstacles
//		• steinlib/  — the SteinLib STP file format
//		• eps/       — tolerance-based float comparisons shared by all of
//		  the above
//
// Every elimination is reversible: deleted edges leave their ancestor
// lists behind and folded edges accumulate on a fixed list, so a solution
// of the reduced instance can be mapped back to the original. The costs
// the tests strip away are summed in a fixed offset the caller adds to the
// reduced optimum.
//
// Quick ASCII example:
//
//	    A───x───B          A───────B
//	    │                  │
//	    C                  C
//
//	a non-terminal x of degree 2 is bypassed; the new A-B edge carries
//	the summed cost and remembers both replaced edges.
//
//	go get github.com/katalvlaran/steinred
package steinred
