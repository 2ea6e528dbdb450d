package kernel

// RemoveDegenerateEdges merges each declared degenerate vertex pair (both
// endpoints are the same 3D point -- typically a coincident PSLG boundary
// edge) by rewriting every triangle reference from the higher id to the
// lower id, and dropping any triangle that collapses to a line as a
// result. Callable after Frontal.
func (t *Triangulator) RemoveDegenerateEdges(pairs [][2]uint32) {
	if len(pairs) == 0 {
		return
	}
	remap := make(map[uint32]uint32)
	for _, p := range pairs {
		lo, hi := p[0], p[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		remap[hi] = lo
	}
	// Follow chains (a merges to b which itself merges to c) to a fixed point.
	resolve := func(id uint32) uint32 {
		for {
			next, ok := remap[id]
			if !ok || next == id {
				return id
			}
			id = next
		}
	}

	type liveTri struct{ u, v, w uint32 }
	var kept []liveTri
	t.Tris.Range(func(h uint32) {
		tri := t.Tris.Get(h)
		if tri.Status == DeleteMe {
			return
		}
		u, v, w := resolve(tri.U), resolve(tri.V), resolve(tri.W)
		if u == v || v == w || w == u {
			return // collapsed to a line (or a point)
		}
		kept = append(kept, liveTri{u, v, w})
	})

	newTris := newTriangleList()
	for _, k := range kept {
		newTris.AddTriangle(k.u, k.v, k.w)
	}
	t.Tris = newTris

	// PSLG edges may also reference merged ids; rewrite them too.
	newPSLG := newPSLG()
	t.PSLG.All(func(a, b uint32) {
		ra, rb := resolve(a), resolve(b)
		if ra != rb {
			newPSLG.Add(ra, rb)
		}
	})
	t.PSLG = newPSLG
}
