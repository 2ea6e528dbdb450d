package kernel

import "math"

// updateQuality computes and stores a triangle's 3D circumradius and its
// quality R/h̄, where h̄ is the feature size sampled at the triangle's
// centroid. Mixing a 3D circumradius with a parametric-domain-evaluated
// feature size is deliberate: it is what makes quality behave correctly
// for surfaces under strong parametric distortion.
func (t *Triangulator) updateQuality(handle uint32) {
	tri := t.Tris.Get(handle)
	u, v, w := tri.Vertices()
	pu, pv, pw := t.Points.UV(u), t.Points.UV(v), t.Points.UV(w)
	centroidUV := UV{(pu.U + pv.U + pw.U) / 3, (pu.V + pv.V + pw.V) / 3}
	cx, cy, cz := t.Surface.EvalPoint(centroidUV.U, centroidUV.V)

	tri.Circumradius = circumradius3D(t.Points.XYZ(u), t.Points.XYZ(v), t.Points.XYZ(w))
	h := t.FeatureSize.GetFeatureSize(XYZ{cx, cy, cz})
	if h <= 0 {
		h = Tolerance
	}
	tri.Quality = tri.Circumradius / h
}

// circumradius3D returns the radius of the circle through a, b, c in
// ambient 3D space: R = (|ab|*|bc|*|ca|) / (4 * area).
func circumradius3D(a, b, c XYZ) float64 {
	ab := a.DistanceTo(b)
	bc := b.DistanceTo(c)
	ca := c.DistanceTo(a)
	area := triangleArea3D(a, b, c)
	if area < Tolerance*Tolerance {
		return math.Inf(1)
	}
	return (ab * bc * ca) / (4 * area)
}

func triangleArea3D(a, b, c XYZ) float64 {
	ux, uy, uz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	vx, vy, vz := c.X-a.X, c.Y-a.Y, c.Z-a.Z
	cx := uy*vz - uz*vy
	cy := uz*vx - ux*vz
	cz := ux*vy - uy*vx
	return 0.5 * math.Sqrt(cx*cx+cy*cy+cz*cz)
}

// classifyInitial assigns the initial frontal statuses to every
// triangle that survived Delaunay construction and segment recovery:
// ACCEPTED if quality is already within threshold, WAITING if it has a
// boundary/PSLG edge and is not yet accepted, and left NO_STATUS otherwise
// (a fully interior triangle with no front-adjacency yet).
func (t *Triangulator) classifyInitial() {
	t.Tris.Range(func(h uint32) {
		t.updateQuality(h)
		tri := t.Tris.Get(h)
		if tri.Quality <= t.Opts.QualityThreshold {
			tri.Status = Accepted
			return
		}
		if _, _, ok := t.baseEdge(h); ok {
			tri.Status = Waiting
		}
	})
}

// baseEdge returns an edge of triangle h that is either a PSLG/boundary edge
// or shared with an ACCEPTED neighbor, which is the "base" frontal
// advancement builds its next point from.
func (t *Triangulator) baseEdge(h uint32) (a, b uint32, ok bool) {
	tri := t.Tris.Get(h)
	u, v, w := tri.Vertices()
	for _, e := range [3][2]uint32{{u, v}, {v, w}, {w, u}} {
		ea, eb := e[0], e[1]
		if t.PSLG.Has(ea, eb) {
			return ea, eb, true
		}
		neighbor, has := t.Tris.Complete(eb, ea)
		if !has {
			return ea, eb, true // mesh boundary
		}
		if t.Tris.Get(neighbor).Status == Accepted {
			return ea, eb, true
		}
	}
	return 0, 0, false
}

// Frontal runs the advancing-front loop until no triangle has quality
// above the threshold, or MaxInsertions is exceeded. In the latter case it
// returns ErrConvergenceFailure alongside the partial mesh: convergence
// failure is advisory, not fatal.
func (t *Triangulator) Frontal() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverTriangulateError(r)
		}
	}()

	t.classifyInitial()

	maxInsertions := t.Opts.MaxInsertions
	if maxInsertions == 0 {
		maxInsertions = 100 * t.initialBoundaryPoints
	}

	for {
		handle, baseA, baseB, found := t.pickWorstActive()
		if !found {
			break
		}
		if t.insertions >= maxInsertions {
			return ErrConvergenceFailure
		}
		t.advanceFront(handle, baseA, baseB)
		t.insertions++

		if t.Opts.SmoothIter > 0 && t.insertions%t.Opts.SmoothIter == 0 {
			t.smoothInteriorPoints()
		}
		if t.Opts.PrintIter > 0 && t.insertions%t.Opts.PrintIter == 0 {
			t.log.snapshot(t, "frontal")
		}
	}
	return nil
}

// pickWorstActive scans all live triangles for the one with the smallest
// quality value that is still above threshold (the one closest to being
// accepted) and has a usable base edge, i.e. it is adjacent to the
// advancing front. This is a linear scan rather than a maintained heap,
// trading asymptotic elegance for straightforwardness, since a mesh-sized
// scan isn't the bottleneck here.
func (t *Triangulator) pickWorstActive() (handle, baseA, baseB uint32, found bool) {
	worstQuality := t.Opts.QualityThreshold
	found = false
	t.Tris.Range(func(h uint32) {
		tri := t.Tris.Get(h)
		if tri.Status == Accepted || tri.Status == DeleteMe {
			return
		}
		if tri.Quality <= t.Opts.QualityThreshold {
			return
		}
		a, b, ok := t.baseEdge(h)
		if !ok {
			return
		}
		if !found || tri.Quality < worstQuality {
			found = true
			worstQuality = tri.Quality
			handle, baseA, baseB = h, a, b
		}
	})
	return handle, baseA, baseB, found
}

// advanceFront inserts (or reuses, via the snap-check) one new point off the
// base edge of triangle handle, following the advancing-front placement rule.
//
// The snap-check searches for the closest existing point not yet considered
// in this call: if the closest candidate turns out to already be a vertex of
// its own enclosing triangle (nothing to merge), it is marked considered and
// the search tries again, so one stale neighbor can't block the whole pass.
func (t *Triangulator) advanceFront(handle, baseA, baseB uint32) {
	tri := t.Tris.Get(handle)
	c := thirdVertex(tri, baseA, baseB)
	candidate, targetH := t.proposeFrontalPoint(baseA, baseB, c)

	t.Quad.BumpSearchTag()
	arenaBefore := uint32(len(t.Tris.arena))

	newID, snapped := nilHandle, false
	for {
		snapID, hasSnap := t.Quad.FindClosestExcluding(candidate, t.Quad.IsConsidered)
		if !hasSnap || t.Points.UV(snapID).DistanceTo(candidate) > 0.5*targetH {
			break
		}
		enclosing := t.findEnclosing(t.Points.UV(snapID))
		if tri2 := t.Tris.Get(enclosing); tri2.live && !tri2.hasVertex(snapID) {
			t.insertExistingPoint(snapID, enclosing)
			newID, snapped = snapID, true
			break
		}
		t.Quad.MarkConsidered(snapID)
	}
	if !snapped {
		enclosing := t.findEnclosing(candidate)
		newID = t.addPointToMesh(candidate, enclosing)
	}

	if t.log.level >= 2 {
		t.log.printf(2, "advanced front from triangle %s to point %s",
			t.log.namedTriangle(handle), t.log.namedPoint(newID))
	}

	arenaAfter := uint32(len(t.Tris.arena))
	t.reclassifyRange(arenaBefore, arenaAfter)
}

// insertExistingPoint re-triangulates around an already-existing point id,
// exactly like addPointToMesh, but without adding a new point to the store
// or quadtree. Used by the snap-check to merge two nearby advancing fronts.
func (t *Triangulator) insertExistingPoint(id, enclosing uint32) {
	tri := t.Tris.Get(enclosing)
	u, v, w := tri.Vertices()
	t.Tris.DeleteTriangle(enclosing)
	t.digCavity(u, v, id)
	t.digCavity(v, w, id)
	t.digCavity(w, u, id)
}

// reclassifyRange recomputes quality/status for every newly created
// triangle in [lo, hi), plus their immediate neighbors, whose ACCEPTED
// status may have changed because a formerly-WAITING neighbor is gone.
func (t *Triangulator) reclassifyRange(lo, hi uint32) {
	touched := map[uint32]bool{}
	for h := lo; h < hi; h++ {
		if !t.Tris.arena[h].live {
			continue
		}
		touched[h] = true
		u, v, w := t.Tris.arena[h].Vertices()
		for _, e := range [3][2]uint32{{u, v}, {v, w}, {w, u}} {
			if n, ok := t.Tris.Complete(e[1], e[0]); ok {
				touched[n] = true
			}
		}
	}
	for h := range touched {
		if !t.Tris.Get(h).live {
			continue
		}
		t.updateQuality(h)
		tri := t.Tris.Get(h)
		if tri.Quality <= t.Opts.QualityThreshold {
			tri.Status = Accepted
			continue
		}
		if _, _, ok := t.baseEdge(h); ok {
			tri.Status = Waiting
		} else {
			tri.Status = NoStatus
		}
	}
}

// proposeFrontalPoint computes the apex of an
// equilateral triangle on base (a, b) in parameter space, adjusted along the
// base's perpendicular bisector until the 3D distance from the candidate to
// both endpoints matches the local feature size.
func (t *Triangulator) proposeFrontalPoint(a, b, oppositeSide uint32) (candidate UV, targetH float64) {
	pa, pb := t.Points.UV(a), t.Points.UV(b)
	mid := UV{(pa.U + pb.U) / 2, (pa.V + pb.V) / 2}
	base := pb.Sub(pa)
	baseLen := math.Hypot(base.U, base.V)
	if baseLen < Tolerance {
		baseLen = Tolerance
	}
	perp := UV{-base.V / baseLen, base.U / baseLen}
	// Orient perp toward the triangle's current third vertex, which is the
	// side the front still needs to advance into.
	if perp.Dot(t.Points.UV(oppositeSide).Sub(pa)) < 0 {
		perp = UV{-perp.U, -perp.V}
	}

	height := baseLen * math.Sqrt(3) / 2
	minHeight, maxHeight := 0.1*baseLen, 4*baseLen

	midX, midY, midZ := t.Surface.EvalPoint(mid.U, mid.V)
	h := t.FeatureSize.GetFeatureSize(XYZ{midX, midY, midZ})
	if h <= 0 {
		h = baseLen
	}

	for iter := 0; iter < 8; iter++ {
		cand := UV{mid.U + perp.U*height, mid.V + perp.V*height}
		cx, cy, cz := t.Surface.EvalPoint(cand.U, cand.V)
		cxyz := XYZ{cx, cy, cz}
		d := (cxyz.DistanceTo(t.Points.XYZ(a)) + cxyz.DistanceTo(t.Points.XYZ(b))) / 2
		h = t.FeatureSize.GetFeatureSize(cxyz)
		if d < Tolerance {
			break
		}
		height *= h / d
		if height < minHeight {
			height = minHeight
		}
		if height > maxHeight {
			height = maxHeight
		}
	}

	return UV{mid.U + perp.U*height, mid.V + perp.V*height}, h
}

// smoothInteriorPoints runs one Laplacian-style smoothing pass over interior
// (non-PSLG, non-boundary) points, moving each to the average of its
// one-ring neighbors' parameter coordinates, but only if doing so keeps
// every incident triangle's orientation positive -- preserving invariant 1
// and the PSLG (which is never touched since only interior points move).
func (t *Triangulator) smoothInteriorPoints() {
	n := t.Points.PointCount()
	for id := uint32(FixedPointOffset); id < uint32(n); id++ {
		if t.isPSLGPoint(id) {
			continue
		}
		neighbors, incident := t.oneRing(id)
		if len(neighbors) < 3 {
			continue
		}
		var avgU, avgV float64
		for _, nb := range neighbors {
			p := t.Points.UV(nb)
			avgU += p.U
			avgV += p.V
		}
		newUV := UV{avgU / float64(len(neighbors)), avgV / float64(len(neighbors))}

		if !t.smoothMovePreservesOrientation(id, newUV, incident) {
			continue
		}
		t.moveInteriorPoint(id, newUV)
	}
}

// isPSLGPoint reports whether id is an endpoint of any PSLG constraint.
func (t *Triangulator) isPSLGPoint(id uint32) bool {
	found := false
	t.PSLG.All(func(a, b uint32) {
		if a == id || b == id {
			found = true
		}
	})
	return found
}

// oneRing returns the distinct vertices adjacent to id across its incident
// live triangles, and the handles of those triangles.
func (t *Triangulator) oneRing(id uint32) (neighbors []uint32, incident []uint32) {
	seenN := map[uint32]bool{}
	seenT := map[uint32]bool{}
	start := t.Points.Hint(id)
	if start == nilHandle || !t.Tris.Get(start).live || !t.Tris.Get(start).hasVertex(id) {
		// Hint is stale; fall back to a linear scan.
		t.Tris.Range(func(h uint32) {
			if t.Tris.Get(h).hasVertex(id) && !seenT[h] {
				t.collectRingFrom(id, h, seenN, seenT, &neighbors, &incident)
			}
		})
		return neighbors, incident
	}
	t.collectRingFrom(id, start, seenN, seenT, &neighbors, &incident)
	return neighbors, incident
}

func (t *Triangulator) collectRingFrom(id, start uint32, seenN, seenT map[uint32]bool, neighbors, incident *[]uint32) {
	queue := []uint32{start}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		if seenT[h] {
			continue
		}
		tri := t.Tris.Get(h)
		if !tri.live || !tri.hasVertex(id) {
			continue
		}
		seenT[h] = true
		*incident = append(*incident, h)
		u, v, w := tri.Vertices()
		for _, other := range [3]uint32{u, v, w} {
			if other != id && !seenN[other] {
				seenN[other] = true
				*neighbors = append(*neighbors, other)
			}
		}
		for _, e := range [3][2]uint32{{u, v}, {v, w}, {w, u}} {
			if e[0] != id && e[1] != id {
				continue
			}
			if n, ok := t.Tris.Complete(e[1], e[0]); ok && !seenT[n] {
				queue = append(queue, n)
			}
			if n, ok := t.Tris.Complete(e[0], e[1]); ok && !seenT[n] {
				queue = append(queue, n)
			}
		}
	}
}

func (t *Triangulator) smoothMovePreservesOrientation(id uint32, newUV UV, incident []uint32) bool {
	for _, h := range incident {
		tri := t.Tris.Get(h)
		u, v, w := tri.Vertices()
		pu, pv, pw := t.Points.UV(u), t.Points.UV(v), t.Points.UV(w)
		switch id {
		case u:
			pu = newUV
		case v:
			pv = newUV
		case w:
			pw = newUV
		}
		if SignedArea2(pu, pv, pw) <= 0 {
			return false
		}
	}
	return true
}

// moveInteriorPoint relocates id's stored coordinates and re-indexes it in
// the quadtree, which keys nodes by the UV a point had when inserted: leaving
// the old entry in place would make that node's box stop bounding the point,
// breaking distSqLowerBound's pruning guarantee for every later nearest-point
// query.
func (t *Triangulator) moveInteriorPoint(id uint32, newUV UV) {
	p := &t.Points.points[id]
	oldUV := p.uv
	x, y, z := t.Surface.EvalPoint(newUV.U, newUV.V)
	t.Quad.Remove(id, oldUV)
	p.uv = newUV
	p.xyz = XYZ{x, y, z}
	t.Quad.Insert(id, newUV)
}
