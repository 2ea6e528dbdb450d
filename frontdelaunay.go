package frontdelaunay

import (
	"github.com/surfacemesh/frontdelaunay/kernel"
)

// Triangulator is the public entry point: it owns one kernel.Triangulator
// and sequences construction, frontal refinement, and output exactly the
// way the external interface describes (construction inputs at New time,
// runtime inputs -- feature size and options -- at Run time).
type Triangulator struct {
	inner *kernel.Triangulator
}

// New builds the initial Delaunay mesh from a PSLG: pts are the boundary
// (and any fixed interior) points, segs are index pairs into pts giving
// required constraint edges, holes are seed points whose enclosing region
// is classified outside, and surface evaluates the 3D position of every
// (u,v) point the kernel creates.
func New(pts []UV, segs [][2]int, holes []UV, surface Surface) (*Triangulator, error) {
	inner, err := kernel.New(pts, segs, holes, surface)
	if err != nil {
		return nil, err
	}
	return &Triangulator{inner: inner}, nil
}

// Run sets the runtime collaborators and options and then drives the
// frontal advancement loop to completion (or to ErrConvergenceFailure,
// which is advisory: the partial mesh is still usable afterward).
func (t *Triangulator) Run(featureSize FeatureSize, opts Options) error {
	t.inner.FeatureSize = featureSize
	t.inner.Opts = opts
	t.inner.SetPrintLevel(opts.PrintLevel)
	return t.inner.Frontal()
}

// RemoveDegenerateEdges merges each declared coincident vertex pair,
// dropping any triangle that collapses to a line as a result. Callable
// after Run.
func (t *Triangulator) RemoveDegenerateEdges(pairs [][2]uint32) {
	t.inner.RemoveDegenerateEdges(pairs)
}

// GetMesh returns the cleaned, renumbered triangulation.
func (t *Triangulator) GetMesh() Mesh { return t.inner.GetMesh() }

// Stats reports the current mesh's size and quality distribution.
func (t *Triangulator) Stats() Stats { return t.inner.Stats() }

// Validate runs the structural testable properties (orientation, edge-map
// consistency, manifoldness, PSLG preservation) and returns every
// violation found.
func (t *Triangulator) Validate() []error { return t.inner.Validate() }

// ValidateDelaunay checks the Delaunay property. Only meaningful before Run
// has inserted any frontal point.
func (t *Triangulator) ValidateDelaunay() []error { return t.inner.ValidateDelaunay() }

// ValidateQuality checks that every accepted triangle's quality is within
// slack of the configured threshold.
func (t *Triangulator) ValidateQuality(slack float64) []error { return t.inner.ValidateQuality(slack) }

// Kernel exposes the underlying kernel.Triangulator for callers that need
// lower-level access (debug drawing, direct point-store queries) than the
// facade provides.
func (t *Triangulator) Kernel() *kernel.Triangulator { return t.inner }
