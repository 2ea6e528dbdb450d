package kernel

import "math/big"

// This file implements the two geometric predicates the kernel cannot get
// wrong: orientation (is c to the left of a->b?) and the in-circle test (does
// d lie inside the circumcircle of a, b, c?). Plain float64 arithmetic is
// used for the common case, but both predicates fall back to exact
// arbitrary-precision arithmetic (math/big) whenever the float64 result is
// too close to zero to trust, the same conservative-error-bound-then-fall-back
// strategy used for s2's orientation predicates. A symbolic perturbation on
// point ids breaks exact ties deterministically so frontal advancement never
// has to special-case a perfectly cocircular quadruple.

// orientation classifies the sign of the result of orient2D.
type orientation int

const (
	orientNegative orientation = -1
	orientZero     orientation = 0
	orientPositive orientation = 1
)

// orient2D returns > 0 if (a, b, c) is counter-clockwise, < 0 if clockwise,
// and 0 if collinear. It is the plain float64 determinant; orient2DRobust
// adds the error bound and the exact fallback.
func orient2D(a, b, c UV) float64 {
	// det | bx-ax  by-ay |
	//     | cx-ax  cy-ay |
	return SignedArea2(a, b, c)
}

// orient2DExact recomputes orient2D with big.Rat arithmetic. Used only when
// the float64 result is within the error bound of zero.
func orient2DExact(a, b, c UV) int {
	ax, ay := big.NewRat(0, 1).SetFloat64(a.U), big.NewRat(0, 1).SetFloat64(a.V)
	bx, by := big.NewRat(0, 1).SetFloat64(b.U), big.NewRat(0, 1).SetFloat64(b.V)
	cx, cy := big.NewRat(0, 1).SetFloat64(c.U), big.NewRat(0, 1).SetFloat64(c.V)

	bxax := new(big.Rat).Sub(bx, ax)
	byay := new(big.Rat).Sub(by, ay)
	cxax := new(big.Rat).Sub(cx, ax)
	cyay := new(big.Rat).Sub(cy, ay)

	left := new(big.Rat).Mul(bxax, cyay)
	right := new(big.Rat).Mul(byay, cxax)
	det := new(big.Rat).Sub(left, right)
	return det.Sign()
}

// orient2DRobust returns the sign of orient2D, falling back to exact
// arithmetic near zero.
func orient2DRobust(a, b, c UV) orientation {
	det := orient2D(a, b, c)
	// Error bound scaled to the magnitude of the inputs; errors in a 2x2
	// determinant of double-precision floats are bounded by a small multiple
	// of machine epsilon times the sum of the magnitudes of the products.
	bound := 1e-12 * (absf(a.U)*absf(b.V) + absf(a.V)*absf(b.U) +
		absf(b.U)*absf(c.V) + absf(b.V)*absf(c.U) +
		absf(c.U)*absf(a.V) + absf(c.V)*absf(a.U) + 1)
	if det > bound {
		return orientPositive
	}
	if det < -bound {
		return orientNegative
	}
	switch orient2DExact(a, b, c) {
	case 1:
		return orientPositive
	case -1:
		return orientNegative
	default:
		return orientZero
	}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// inCircleDet returns the sign of the 4x4 determinant
//
//	| ax ay ax²+ay² 1 |
//	| bx by bx²+by² 1 |
//	| cx cy cx²+cy² 1 |
//	| dx dy dx²+dy² 1 |
//
// which is positive iff d lies inside the circumcircle of a, b, c, assuming
// a, b, c are in counter-clockwise order.
func inCircleDet(a, b, c, d UV) float64 {
	triArea := func(p, q, r UV) float64 { return SignedArea2(p, q, r) }
	sq := func(p UV) float64 { return p.U*p.U + p.V*p.V }
	return sq(a)*triArea(b, c, d) -
		sq(b)*triArea(a, c, d) +
		sq(c)*triArea(a, b, d) -
		sq(d)*triArea(a, b, c)
}

func inCircleExact(a, b, c, d UV) int {
	toRat := func(f float64) *big.Rat { return new(big.Rat).SetFloat64(f) }
	ax, ay := toRat(a.U), toRat(a.V)
	bx, by := toRat(b.U), toRat(b.V)
	cx, cy := toRat(c.U), toRat(c.V)
	dx, dy := toRat(d.U), toRat(d.V)

	sq := func(x, y *big.Rat) *big.Rat {
		r := new(big.Rat).Mul(x, x)
		r.Add(r, new(big.Rat).Mul(y, y))
		return r
	}
	area := func(px, py, qx, qy, rx, ry *big.Rat) *big.Rat {
		t1 := new(big.Rat).Mul(new(big.Rat).Sub(qx, px), new(big.Rat).Sub(ry, py))
		t2 := new(big.Rat).Mul(new(big.Rat).Sub(qy, py), new(big.Rat).Sub(rx, px))
		return new(big.Rat).Sub(t1, t2)
	}

	term1 := new(big.Rat).Mul(sq(ax, ay), area(bx, by, cx, cy, dx, dy))
	term2 := new(big.Rat).Mul(sq(bx, by), area(ax, ay, cx, cy, dx, dy))
	term3 := new(big.Rat).Mul(sq(cx, cy), area(ax, ay, bx, by, dx, dy))
	term4 := new(big.Rat).Mul(sq(dx, dy), area(ax, ay, bx, by, cx, cy))

	result := new(big.Rat).Sub(term1, term2)
	result.Add(result, term3)
	result.Sub(result, term4)
	return result.Sign()
}

// inCircleRobust tells us whether d lies strictly inside, on, or outside the
// circumcircle of (a, b, c), falling back to exact arithmetic near the
// boundary. ids break exact ties (perfectly cocircular points) deterministically
// so that two distinct runs over the same input always flip the same way.
func inCircleRobust(a, b, c, d UV, idA, idB, idC, idD uint32) orientation {
	det := inCircleDet(a, b, c, d)
	scale := absf(a.U) + absf(a.V) + absf(b.U) + absf(b.V) + absf(c.U) + absf(c.V) + absf(d.U) + absf(d.V) + 1
	bound := 1e-10 * scale * scale * scale
	if det > bound {
		return orientPositive
	}
	if det < -bound {
		return orientNegative
	}
	switch s := inCircleExact(a, b, c, d); {
	case s > 0:
		return orientPositive
	case s < 0:
		return orientNegative
	default:
		// Exactly cocircular. Perturb symbolically (see perturbTie), which
		// resolves the tie the same way every time for the same points and
		// ids, regardless of iteration order.
		return perturbTie(a, b, c, d, idA, idB, idC, idD)
	}
}

// perturbTie breaks an exact cocircularity tie by symbolic perturbation:
// each point's lifted coordinate is raised by an infinitesimal that is
// larger the smaller the point's id, so the sign is that of the lifting
// cofactor of the lowest-id point whose cofactor is nonzero. The result
// depends only on the four points and their ids, is unchanged by rotating
// (a, b, c), and is consistent with the in-circle sign of nearby
// non-degenerate inputs, which is all the frontal algorithm needs to avoid
// infinite looping on adversarial cocircular inputs (see the
// square-with-cocircular-corners scenario).
func perturbTie(a, b, c, d UV, idA, idB, idC, idD uint32) orientation {
	ids := [4]uint32{idA, idB, idC, idD}
	cofactor := [4]orientation{
		orient2DRobust(b, c, d), -orient2DRobust(a, c, d),
		orient2DRobust(a, b, d), -orient2DRobust(a, b, c),
	}
	best := -1
	for k, s := range cofactor {
		if s != orientZero && (best < 0 || ids[k] < ids[best]) {
			best = k
		}
	}
	if best < 0 {
		return orientZero
	}
	return cofactor[best]
}
