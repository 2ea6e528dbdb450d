// Package surface provides ready-made Surface implementations for the
// kernel's parametric-domain-to-3D mapping, usable directly in tests and
// demos or as a template for a caller's own surface.
package surface

import "github.com/surfacemesh/frontdelaunay/kernel"

// Planar embeds the parametric domain directly into the z=0 plane of
// ambient space: EvalPoint(u,v) = (u,v,0). Useful whenever feature size is
// purely a function of planar position: unit disk, unit square, annulus,
// L-shape, and similar flat domains.
type Planar struct{}

func (Planar) EvalPoint(u, v float64) (x, y, z float64) {
	return u, v, 0
}

func (Planar) EvalDeriv(u, v float64) (pos, dXdu, dXdv kernel.XYZ) {
	return kernel.XYZ{X: u, Y: v, Z: 0},
		kernel.XYZ{X: 1, Y: 0, Z: 0},
		kernel.XYZ{X: 0, Y: 1, Z: 0}
}
