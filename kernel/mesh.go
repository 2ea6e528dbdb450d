package kernel

// Mesh is the cleaned output of the triangulator: super-points and any
// DELETE_ME triangle are excluded, and remaining points are renumbered
// densely starting at zero.
type Mesh struct {
	Params [][2]float64 // parametric (u,v) per output point
	Coords [][3]float64 // ambient (x,y,z) per output point
	Tris   [][3]int      // point indices into Params/Coords, CCW
}

// GetMesh returns the accepted, cleaned triangulation.
func (t *Triangulator) GetMesh() Mesh {
	remap := map[uint32]int{}
	var params [][2]float64
	var coords [][3]float64

	assign := func(id uint32) int {
		if idx, ok := remap[id]; ok {
			return idx
		}
		idx := len(params)
		remap[id] = idx
		uv := t.Points.UV(id)
		xyz := t.Points.XYZ(id)
		params = append(params, [2]float64{uv.U, uv.V})
		coords = append(coords, [3]float64{xyz.X, xyz.Y, xyz.Z})
		return idx
	}

	var tris [][3]int
	t.Tris.Range(func(h uint32) {
		tri := t.Tris.Get(h)
		if tri.Status == DeleteMe {
			return
		}
		u, v, w := tri.Vertices()
		tris = append(tris, [3]int{assign(u), assign(v), assign(w)})
	})

	return Mesh{Params: params, Coords: coords, Tris: tris}
}

// Stats summarizes the current mesh, used by diagnostics and by callers
// that want a cheap health check without walking GetMesh's full output.
type Stats struct {
	PointCount    int
	TriangleCount int
	Insertions    int
	MinQuality    float64
	MaxQuality    float64
	MeanQuality   float64
}

// Stats computes a snapshot of the current mesh's size and quality
// distribution over live, non-DELETE_ME triangles.
func (t *Triangulator) Stats() Stats {
	s := Stats{PointCount: t.Points.PointCount(), Insertions: t.insertions}
	s.MinQuality = -1
	var sum float64
	var n int
	t.Tris.Range(func(h uint32) {
		tri := t.Tris.Get(h)
		if tri.Status == DeleteMe {
			return
		}
		s.TriangleCount++
		if s.MinQuality < 0 || tri.Quality < s.MinQuality {
			s.MinQuality = tri.Quality
		}
		if tri.Quality > s.MaxQuality {
			s.MaxQuality = tri.Quality
		}
		sum += tri.Quality
		n++
	})
	if n > 0 {
		s.MeanQuality = sum / float64(n)
	}
	if s.MinQuality < 0 {
		s.MinQuality = 0
	}
	return s
}
