package frontdelaunay

import "github.com/surfacemesh/frontdelaunay/kernel"

// Input errors fail fast, geometric degeneracy is masked inside the kernel
// and never reaches here, topology invariant violations are unrecoverable
// bugs, and convergence failures are advisory.
var (
	ErrInputError                 = kernel.ErrInputError
	ErrTopologyInvariantViolation = kernel.ErrTopologyInvariantViolation
	ErrConvergenceFailure         = kernel.ErrConvergenceFailure
)
