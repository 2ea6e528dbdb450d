package kernel

import "github.com/pkg/errors"

// Threading errors up through every recursive operation in cavity digging
// and segment recovery would add a lot of ceremony for little benefit,
// since none of those operations can do anything useful with a partial
// failure anyway. Instead, internal failures panic with one of the four
// sentinel errors below, and the public entry points New and Frontal recover
// and convert back to a plain Go error.

var (
	// ErrInputError marks a degenerate PSLG (duplicate points within
	// tolerance, self-crossing segments, segment endpoints not present in the
	// input point set). Detected in the constructor; no mesh is produced.
	ErrInputError = errors.New("frontdelaunay: invalid input PSLG")

	// ErrGeometricDegeneracy marks a cocircular or collinear configuration
	// encountered by a predicate. The kernel always resolves this internally
	// via symbolic perturbation (see predicates.go); this sentinel exists so
	// internal code has something well-typed to report to the diagnostic
	// stream, but it must never escape to a caller.
	ErrGeometricDegeneracy = errors.New("frontdelaunay: geometric degeneracy")

	// ErrTopologyInvariantViolation marks a bug: a duplicate directed edge in
	// the edge map, or a triangle referencing an unknown point. This is
	// always fatal.
	ErrTopologyInvariantViolation = errors.New("frontdelaunay: topology invariant violation")

	// ErrConvergenceFailure marks the frontal loop exceeding its insertion
	// budget. Advisory: the caller still gets the partial mesh back.
	ErrConvergenceFailure = errors.New("frontdelaunay: frontal loop did not converge")
)

// fatalf panics with an error wrapping sentinel, following the
// panic-then-recover-at-the-boundary convention used throughout this
// package.
func fatalf(sentinel error, format string, args ...interface{}) {
	panic(errors.Wrapf(sentinel, format, args...))
}
