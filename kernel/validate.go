package kernel

import "fmt"

// Validate runs the triangulator's testable invariants as a callable
// self-check and returns every violation found (nil if none). It is not on
// the hot path of any kernel operation; call it from tests or from a caller
// that wants to double-check an externally-supplied collaborator.
func (t *Triangulator) Validate() []error {
	var errs []error
	errs = append(errs, t.validateOrientation()...)
	errs = append(errs, t.validateEdgeMapConsistency()...)
	errs = append(errs, t.validateManifold()...)
	errs = append(errs, t.validatePSLGPreservation()...)
	return errs
}

func (t *Triangulator) validateOrientation() []error {
	var errs []error
	t.Tris.Range(func(h uint32) {
		tri := t.Tris.Get(h)
		if tri.Status == DeleteMe {
			return
		}
		u, v, w := tri.Vertices()
		if SignedArea2(t.Points.UV(u), t.Points.UV(v), t.Points.UV(w)) <= 0 {
			errs = append(errs, fmt.Errorf("triangle %d (%d,%d,%d) is not CCW", h, u, v, w))
		}
	})
	return errs
}

func (t *Triangulator) validateEdgeMapConsistency() []error {
	var errs []error
	t.Tris.Range(func(h uint32) {
		tri := t.Tris.Get(h)
		if tri.Status == DeleteMe {
			return
		}
		for _, e := range tri.edges() {
			owner, ok := t.Tris.Complete(e.A, e.B)
			if !ok {
				errs = append(errs, fmt.Errorf("edge map missing directed edge (%d,%d) of triangle %d", e.A, e.B, h))
				continue
			}
			if owner != h {
				errs = append(errs, fmt.Errorf("edge map entry for (%d,%d) points at triangle %d, not owning triangle %d", e.A, e.B, owner, h))
			}
		}
	})
	return errs
}

func (t *Triangulator) validateManifold() []error {
	var errs []error
	seen := map[edgeKey]int{}
	t.Tris.Range(func(h uint32) {
		tri := t.Tris.Get(h)
		if tri.Status == DeleteMe {
			return
		}
		for _, e := range tri.edges() {
			seen[e]++
		}
	})
	for e, count := range seen {
		if count > 1 {
			errs = append(errs, fmt.Errorf("directed edge (%d,%d) appears %d times", e.A, e.B, count))
		}
	}
	return errs
}

func (t *Triangulator) validatePSLGPreservation() []error {
	var errs []error
	t.PSLG.All(func(a, b uint32) {
		if !t.Tris.HasEdge(a, b) && !t.Tris.HasEdge(b, a) {
			errs = append(errs, fmt.Errorf("PSLG edge (%d,%d) is not present in any live triangle", a, b))
		}
	})
	return errs
}

// ValidateDelaunay checks the Delaunay property (testable property 5) over
// every non-PSLG interior edge. This only holds before Frontal runs
// (frontal advancement deliberately inserts points that are not Delaunay
// with respect to the unrefined mesh), so it is offered as a separate call
// rather than folded into Validate.
func (t *Triangulator) ValidateDelaunay() []error {
	var errs []error
	t.Tris.Range(func(h uint32) {
		tri := t.Tris.Get(h)
		if tri.Status == DeleteMe {
			return
		}
		u, v, w := tri.Vertices()
		for _, e := range [3][2]uint32{{u, v}, {v, w}, {w, u}} {
			a, b := e[0], e[1]
			if t.PSLG.Has(a, b) {
				continue
			}
			other, ok := t.Tris.Complete(b, a)
			if !ok {
				continue
			}
			c := thirdVertex(tri, a, b)
			d := thirdVertex(t.Tris.Get(other), a, b)
			if inCircleRobust(t.Points.UV(a), t.Points.UV(b), t.Points.UV(c), t.Points.UV(d), a, b, c, d) == orientPositive {
				errs = append(errs, fmt.Errorf("edge (%d,%d): opposite vertex %d lies inside circumcircle of (%d,%d,%d)", a, b, d, a, b, c))
			}
		}
	})
	return errs
}

// ValidateQuality checks testable property 6: every live, accepted,
// interior triangle has quality at most beta + slack.
func (t *Triangulator) ValidateQuality(slack float64) []error {
	var errs []error
	t.Tris.Range(func(h uint32) {
		tri := t.Tris.Get(h)
		if tri.Status != Accepted {
			return
		}
		if tri.Quality > t.Opts.QualityThreshold+slack {
			errs = append(errs, fmt.Errorf("triangle %d has quality %.4f > beta+slack %.4f", h, tri.Quality, t.Opts.QualityThreshold+slack))
		}
	})
	return errs
}
