package surface

import "github.com/surfacemesh/frontdelaunay/kernel"

// Parametric wraps three caller-supplied scalar functions of (u, v) into a
// kernel.Surface, finite-differencing the partial derivatives when the
// caller has no closed form for them. This is the general-purpose
// collaborator for surfaces the reference Planar type cannot express, such
// as a bump, a saddle, or a sampled height field wrapped in a closure.
type Parametric struct {
	X, Y, Z func(u, v float64) float64
	// Step controls the central-difference step used by EvalDeriv. Zero
	// selects a default of 1e-6.
	Step float64
}

func (p Parametric) step() float64 {
	if p.Step > 0 {
		return p.Step
	}
	return 1e-6
}

func (p Parametric) EvalPoint(u, v float64) (x, y, z float64) {
	return p.X(u, v), p.Y(u, v), p.Z(u, v)
}

func (p Parametric) EvalDeriv(u, v float64) (pos, dXdu, dXdv kernel.XYZ) {
	h := p.step()
	x0, y0, z0 := p.EvalPoint(u, v)
	pos = kernel.XYZ{X: x0, Y: y0, Z: z0}

	xu, yu, zu := p.EvalPoint(u+h, v)
	xu0, yu0, zu0 := p.EvalPoint(u-h, v)
	dXdu = kernel.XYZ{X: (xu - xu0) / (2 * h), Y: (yu - yu0) / (2 * h), Z: (zu - zu0) / (2 * h)}

	xv, yv, zv := p.EvalPoint(u, v+h)
	xv0, yv0, zv0 := p.EvalPoint(u, v-h)
	dXdv = kernel.XYZ{X: (xv - xv0) / (2 * h), Y: (yv - yv0) / (2 * h), Z: (zv - zv0) / (2 * h)}
	return
}
