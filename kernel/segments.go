package kernel

// insertSegment forces edge (u, v) into the mesh when it is missing:
// find the fan of triangles the segment's interior
// crosses, delete them, and re-triangulate each side of the resulting
// cavity by gift-wrapping its boundary polygon against the (still
// Delaunay-respecting) remaining candidates. Finally records (u, v) as a
// PSLG constraint so it is never flipped away again.
func (t *Triangulator) insertSegment(u, v uint32) {
	t.PSLG.Add(u, v)

	left, right, crossed := t.findCrossingFan(u, v)
	for _, h := range crossed {
		t.Tris.DeleteTriangle(h)
	}

	t.giftWrapSide(u, v, left)
	t.giftWrapSide(v, u, right)
}

// findCrossingFan walks from u toward v, collecting every triangle whose
// interior the open segment (u, v) passes through, and partitions the
// non-segment vertices on the cavity boundary into the chain left of u->v
// and the chain right of u->v.
func (t *Triangulator) findCrossingFan(u, v uint32) (left, right []uint32, crossed []uint32) {
	uv, vv := t.Points.UV(u), t.Points.UV(v)

	cur := t.firstCrossingTriangle(u, v)
	seen := map[uint32]bool{}
	for {
		if cur == nilHandle || seen[cur] {
			break
		}
		seen[cur] = true
		crossed = append(crossed, cur)
		tri := t.Tris.Get(cur)
		a, b, c := tri.Vertices()

		// Classify the vertex of this triangle that isn't u or v (there may
		// be zero, one, two or three such vertices depending on how far
		// along the fan we are; in the steady-state middle of the fan there
		// are exactly two non-segment vertices, one per side).
		for _, id := range [3]uint32{a, b, c} {
			if id == u || id == v {
				continue
			}
			if orient2DRobust(uv, vv, t.Points.UV(id)) == orientPositive {
				left = appendUnique(left, id)
			} else {
				right = appendUnique(right, id)
			}
		}

		if tri.hasVertex(v) {
			break
		}

		// Advance to the neighbor across an edge not touching u that the
		// segment properly crosses, skipping the triangle the walk came from.
		next := nilHandle
		verts := [3]uint32{a, b, c}
		for i := 0; i < 3; i++ {
			p, q := verts[i], verts[(i+1)%3]
			if p == u || q == u {
				continue
			}
			if segmentsProperlyIntersect(uv, vv, t.Points.UV(p), t.Points.UV(q)) {
				if nh, ok := t.Tris.Complete(q, p); ok && !seen[nh] {
					next = nh
					break
				}
			}
		}
		cur = next
	}
	return left, right, crossed
}

func appendUnique(list []uint32, id uint32) []uint32 {
	for _, e := range list {
		if e == id {
			return list
		}
	}
	return append(list, id)
}

// firstCrossingTriangle finds a triangle incident to u whose interior the
// ray toward v enters, by scanning the triangles fanned around u via the
// edge map (every live triangle touching u is reachable by walking
// Complete() around the vertex).
func (t *Triangulator) firstCrossingTriangle(u, v uint32) uint32 {
	uv, vv := t.Points.UV(u), t.Points.UV(v)
	start := t.Points.Hint(u)
	cur := start
	seen := map[uint32]bool{}
	for cur != nilHandle && !seen[cur] {
		seen[cur] = true
		tri := t.Tris.Get(cur)
		if !tri.live {
			break
		}
		a, b, c := tri.Vertices()
		verts := [3]uint32{a, b, c}
		var p, q uint32
		found := false
		for i := 0; i < 3; i++ {
			if verts[i] == u {
				p, q = verts[(i+1)%3], verts[(i+2)%3]
				found = true
				break
			}
		}
		if found {
			// The segment enters this triangle's interior iff v is strictly
			// between rays u->p and u->q (sweeping CCW from p to q).
			if orient2DRobust(uv, t.Points.UV(p), vv) == orientPositive &&
				orient2DRobust(uv, t.Points.UV(q), vv) == orientNegative {
				return cur
			}
			if next, ok := t.Tris.Complete(p, u); ok {
				cur = next
				continue
			}
		}
		break
	}
	// Fall back to a linear scan over all triangles incident to u.
	var result uint32 = nilHandle
	t.Tris.Range(func(h uint32) {
		if result != nilHandle {
			return
		}
		tri := t.Tris.Get(h)
		if !tri.hasVertex(u) {
			return
		}
		a, b, c := tri.Vertices()
		verts := [3]uint32{a, b, c}
		for i := 0; i < 3; i++ {
			if verts[i] != u {
				continue
			}
			p, q := verts[(i+1)%3], verts[(i+2)%3]
			if orient2DRobust(uv, t.Points.UV(p), vv) == orientPositive &&
				orient2DRobust(uv, t.Points.UV(q), vv) == orientNegative {
				result = h
			}
		}
	})
	return result
}

// giftWrapSide re-triangulates one side of the cavity opened by removing the
// crossing fan. base is the segment's own edge, traversed from `from` to
// `to`; chain is the cavity-boundary vertices on this side, in no particular
// order (gift-wrapping sorts that out by always picking whichever candidate
// keeps the emitted triangle both valid (CCW against the current base edge)
// and Delaunay against every other remaining candidate on this side).
func (t *Triangulator) giftWrapSide(from, to uint32, chain []uint32) {
	if len(chain) == 0 {
		return
	}
	remaining := append([]uint32{}, chain...)
	baseA, baseB := from, to

	for len(remaining) > 0 {
		best := -1
		for i, cand := range remaining {
			if orient2DRobust(t.Points.UV(baseA), t.Points.UV(baseB), t.Points.UV(cand)) != orientPositive {
				continue
			}
			if best == -1 || t.giftWrapBetter(baseA, baseB, remaining[best], cand, remaining) {
				best = i
			}
		}
		if best == -1 {
			break
		}
		apex := remaining[best]
		remaining = append(remaining[:best], remaining[best+1:]...)
		t.Tris.AddTriangle(baseA, baseB, apex)

		// The next triangle on this fan shares edge (baseB, apex) or
		// (apex, baseA) with the remaining candidates; advance the base to
		// whichever of those still has candidates outside it. We use
		// (apex, baseB) reversed so the next triangle continues CCW around
		// the cavity.
		baseA, baseB = apex, baseB
	}
}

// giftWrapBetter reports whether candidate c is a better choice than the
// current best apex for the base edge (a, b): better means no other
// remaining point lies inside its circumcircle, i.e. it is locally Delaunay
// against the rest of this side's chain.
func (t *Triangulator) giftWrapBetter(a, b, currentBest, c uint32, remaining []uint32) bool {
	// Prefer c over currentBest if currentBest's circumcircle (a,b,currentBest)
	// contains c -- that means currentBest was not actually a valid ear.
	sign := inCircleRobust(
		t.Points.UV(a), t.Points.UV(b), t.Points.UV(currentBest), t.Points.UV(c),
		a, b, currentBest, c,
	)
	return sign == orientPositive
}
