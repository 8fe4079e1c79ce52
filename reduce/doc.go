// Package reduce implements presolving passes that shrink Steiner instances
// without losing any optimal solution.
//
// DegreeTest handles plain (and grid-built) instances: degree-1 leaves are
// folded away, with terminal leaves contributing their edge cost to the
// caller's fixed offset, and degree-2 pass-through nodes are bypassed.
// DegreeTestPC is the prize-collecting counterpart; it reasons in effective
// degrees (the twin apparatus inflates every terminal's raw degree) and
// trades edge costs against prizes before deleting or contracting.
//
// Every pass records the history needed to expand a reduced solution back
// to the original instance: contracted edges merge their ancestor lists,
// and costs folded into the offset push their ancestors onto the graph's
// fixed list.
//
// Passes return the number of eliminations performed; callers loop until a
// pass reports zero.
package reduce
