package kernel

// addPointToMesh is the Bowyer-Watson incremental insertion: add p to the
// store and quadtree, then dig the cavity across each of enclosing's three
// edges.
func (t *Triangulator) addPointToMesh(p UV, enclosing uint32) uint32 {
	id := t.Points.AddPoint(p.U, p.V)
	t.Quad.Insert(id, p)
	t.Points.SetHint(id, enclosing)

	tri := t.Tris.Get(enclosing)
	u, v, w := tri.Vertices()
	t.Tris.DeleteTriangle(enclosing)

	t.digCavity(u, v, id)
	t.digCavity(v, w, id)
	t.digCavity(w, u, id)
	return id
}

// cavityFrame is one pending (a, b, x) triple on the explicit work stack
// that replaces the source's recursive digCavity. See DESIGN.md: worst-case
// cavity depth is O(n), and an explicit stack avoids blowing the call stack
// on a large cavity.
type cavityFrame struct {
	a, b, x uint32
}

// digCavity expands the star-shaped cavity around the newly inserted point x
// starting from its first exposed edge (a, b), stopping at every edge that
// is a mesh boundary, a PSLG constraint, or that fails the in-circle test.
func (t *Triangulator) digCavity(a, b, x uint32) {
	stack := []cavityFrame{{a, b, x}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a, b, x := f.a, f.b, f.x

		otherHandle, ok := t.Tris.Complete(b, a)
		if !ok || t.PSLG.Has(a, b) {
			t.Tris.AddTriangle(a, b, x)
			continue
		}

		other := t.Tris.Get(otherHandle)
		c := thirdVertex(other, a, b)

		sign := inCircleRobust(
			t.Points.UV(b), t.Points.UV(a), t.Points.UV(c), t.Points.UV(x),
			b, a, c, x,
		)
		if sign == orientPositive {
			t.Tris.DeleteTriangle(otherHandle)
			stack = append(stack, cavityFrame{a, c, x}, cavityFrame{c, b, x})
		} else {
			t.Tris.AddTriangle(a, b, x)
		}
	}
}

// thirdVertex returns the vertex of tri that is neither a nor b.
func thirdVertex(tri *Triangle, a, b uint32) uint32 {
	u, v, w := tri.Vertices()
	switch {
	case u != a && u != b:
		return u
	case v != a && v != b:
		return v
	default:
		return w
	}
}

// findEnclosing locates the triangle containing p: seed
// from the hint triangle of the quadtree's nearest existing point, then walk
// toward p by crossing whichever edge has p on its outward side. Falls back
// to a linear scan of the triangle list if the walk doesn't converge within
// 4*pointCount() steps (a cycle can only happen if the mesh is in a
// transiently inconsistent state, which should never happen outside a bug).
func (t *Triangulator) findEnclosing(p UV) uint32 {
	seed, ok := t.Quad.FindClosest(p)
	var cur uint32
	if ok {
		cur = t.Points.Hint(seed)
	} else {
		// Quadtree is empty before any boundary point has been inserted; seed
		// from either of the two super-triangles.
		cur = 0
	}

	maxSteps := 4 * (t.Points.PointCount() + 1)
	visited := map[uint32]bool{}
	for step := 0; step < maxSteps; step++ {
		if visited[cur] {
			break
		}
		visited[cur] = true
		tri := t.Tris.Get(cur)
		if !tri.live {
			break
		}
		u, v, w := tri.Vertices()
		crossed := false
		for _, e := range [3][2]uint32{{u, v}, {v, w}, {w, u}} {
			a, b := e[0], e[1]
			if orient2DRobust(t.Points.UV(a), t.Points.UV(b), p) == orientNegative {
				if next, ok := t.Tris.Complete(b, a); ok {
					cur = next
					crossed = true
					break
				}
			}
		}
		if !crossed {
			return cur
		}
	}
	return t.findEnclosingLinear(p)
}

func (t *Triangulator) findEnclosingLinear(p UV) uint32 {
	var best uint32
	found := false
	t.Tris.Range(func(h uint32) {
		if found {
			return
		}
		tri := t.Tris.Get(h)
		u, v, w := tri.Vertices()
		if pointInOrNearTriangle(t.Points.UV(u), t.Points.UV(v), t.Points.UV(w), p) {
			best = h
			found = true
		}
	})
	if !found {
		// Degenerate fallback: just return the first live triangle, and let
		// the caller's cavity digging sort out consistency. This only
		// happens on pathological/degenerate geometry inputs.
		t.Tris.Range(func(h uint32) {
			if !found {
				best = h
				found = true
			}
		})
	}
	return best
}

// pointInOrNearTriangle tests p against (a,b,c) using signed areas with a
// tolerance scaled by the triangle's own area, so thin triangles near a
// query point are not spuriously rejected by float noise.
func pointInOrNearTriangle(a, b, c, p UV) bool {
	area := SignedArea2(a, b, c)
	if area == 0 {
		return false
	}
	tol := Tolerance * (absf(area) + 1)
	s1 := SignedArea2(a, b, p)
	s2 := SignedArea2(b, c, p)
	s3 := SignedArea2(c, a, p)
	return s1 >= -tol && s2 >= -tol && s3 >= -tol
}
