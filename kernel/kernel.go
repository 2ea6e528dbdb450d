package kernel

import (
	"math"

	"github.com/pkg/errors"
)

// Triangulator owns the entire working mesh: the point store, the quadtree
// spatial index, the triangle list and its edge map, and the PSLG
// constraint set. It is strictly single-threaded; every method must be
// called from one goroutine, and no operation suspends.
type Triangulator struct {
	Surface     Surface
	FeatureSize FeatureSize
	Opts        Options

	Points *PointStore
	Quad   *Quadtree
	Tris   *TriangleList
	PSLG   *PSLG

	bbox                  quadBox
	outsideUV             UV
	insertions            int
	initialBoundaryPoints int
	log                   *diagnostics
}

// New builds the initial mesh from a PSLG: npts boundary (and fixed
// interior) points, nsegs required constraint segments indexing into pts,
// and nholes optional hole seed points. surface evaluates the 3D position
// of every (u,v) the kernel creates.
//
// New performs the entire initialization pipeline: bounding box
// computation, super-point insertion, incremental Delaunay
// insertion of the boundary points, segment recovery, PSLG-based
// classification, and super-point removal. The returned Triangulator has no
// WAITING/ACTIVE triangles yet; call Frontal to run the advancing front.
func New(pts []UV, segs [][2]int, holes []UV, surface Surface) (t *Triangulator, err error) {
	defer func() {
		if r := recover(); r != nil {
			t = nil
			err = recoverTriangulateError(r)
		}
	}()

	if err := validateInput(pts, segs); err != nil {
		return nil, err
	}

	tr := &Triangulator{
		Surface:               surface,
		Opts:                  DefaultOptions(),
		Points:                newPointStore(surface),
		Tris:                  newTriangleList(),
		PSLG:                  newPSLG(),
		initialBoundaryPoints: len(pts),
		log:                   newDiagnostics(0),
	}

	tr.initialize(pts, segs, holes)
	return tr, nil
}

func validateInput(pts []UV, segs [][2]int) error {
	if len(pts) < 3 {
		return errors.Wrap(ErrInputError, "need at least 3 boundary points")
	}
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			if pts[i].DistanceSqTo(pts[j]) < Tolerance*Tolerance {
				return errors.Wrapf(ErrInputError, "duplicate points within tolerance: %d and %d", i, j)
			}
		}
	}
	for _, s := range segs {
		if s[0] < 0 || s[0] >= len(pts) || s[1] < 0 || s[1] >= len(pts) {
			return errors.Wrapf(ErrInputError, "segment endpoint out of range: (%d,%d)", s[0], s[1])
		}
		if s[0] == s[1] {
			return errors.Wrapf(ErrInputError, "degenerate zero-length segment at index %d", s[0])
		}
	}
	if segsSelfCross(pts, segs) {
		return errors.Wrap(ErrInputError, "PSLG segments self-intersect")
	}
	return nil
}

// segsSelfCross does an O(n^2) pairwise check, which is fine at PSLG
// construction scale (boundary descriptions are rarely more than a few
// thousand points).
func segsSelfCross(pts []UV, segs [][2]int) bool {
	for i := 0; i < len(segs); i++ {
		a0, a1 := pts[segs[i][0]], pts[segs[i][1]]
		for j := i + 1; j < len(segs); j++ {
			if segs[i][0] == segs[j][0] || segs[i][0] == segs[j][1] ||
				segs[i][1] == segs[j][0] || segs[i][1] == segs[j][1] {
				continue // sharing an endpoint is fine
			}
			b0, b1 := pts[segs[j][0]], pts[segs[j][1]]
			if segmentsProperlyIntersect(a0, a1, b0, b1) {
				return true
			}
		}
	}
	return false
}

func segmentsProperlyIntersect(a0, a1, b0, b1 UV) bool {
	d1 := orient2DRobust(a0, a1, b0)
	d2 := orient2DRobust(a0, a1, b1)
	d3 := orient2DRobust(b0, b1, a0)
	d4 := orient2DRobust(b0, b1, a1)
	return d1 != d2 && d1 != orientZero && d2 != orientZero &&
		d3 != d4 && d3 != orientZero && d4 != orientZero
}

func recoverTriangulateError(r interface{}) error {
	if err, ok := r.(error); ok {
		if errors.Is(err, ErrTopologyInvariantViolation) {
			panic(r) // fatal: re-panic past the recover
		}
		return err
	}
	panic(r)
}

// initialize runs the full construction pipeline.
func (t *Triangulator) initialize(pts []UV, segs [][2]int, holes []UV) {
	box := boundingBox(pts)
	t.bbox = box
	// A point well outside the inflated box, used by classify as the origin
	// of the exterior flood-fill.
	t.outsideUV = UV{box.MinU - (box.MaxU-box.MinU), box.MinV - (box.MaxV - box.MinV)}

	t.Quad = NewQuadtree(box, func(id uint32) UV { return t.Points.UV(id) })

	// Four super-points at the corners of the inflated box, ids 0..3.
	t.Points.AddPointWithXYZ(box.MinU, box.MinV, XYZ{})
	t.Points.AddPointWithXYZ(box.MaxU, box.MinV, XYZ{})
	t.Points.AddPointWithXYZ(box.MaxU, box.MaxV, XYZ{})
	t.Points.AddPointWithXYZ(box.MinU, box.MaxV, XYZ{})

	// Two triangles covering the box: (0,1,2) and (0,2,3), both CCW.
	seed1 := t.Tris.AddTriangle(0, 1, 2)
	t.Tris.AddTriangle(0, 2, 3)
	for id := uint32(0); id < 4; id++ {
		t.Points.SetHint(id, seed1)
	}

	// Boundary points are inserted incrementally. addPointToMesh adds each
	// point to the quadtree as soon as it is in the mesh, so findEnclosing
	// for point i can seed from any of ids < FixedPointOffset+i.
	idByInputIndex := make([]uint32, len(pts))
	for i, p := range pts {
		enclosing := t.findEnclosing(p)
		id := t.addPointToMesh(p, enclosing)
		idByInputIndex[i] = id
	}

	for _, s := range segs {
		a, b := idByInputIndex[s[0]], idByInputIndex[s[1]]
		t.PSLG.Add(a, b)
		if !t.Tris.HasEdge(a, b) && !t.Tris.HasEdge(b, a) {
			t.insertSegment(a, b)
		}
	}

	holeIDs := make([]UV, len(holes))
	copy(holeIDs, holes)
	t.classify(holeIDs)
	t.removeSuperPoints()
}

func boundingBox(pts []UV) quadBox {
	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minU = math.Min(minU, p.U)
		minV = math.Min(minV, p.V)
		maxU = math.Max(maxU, p.U)
		maxV = math.Max(maxV, p.V)
	}
	du := maxU - minU
	dv := maxV - minV
	if du == 0 {
		du = 1
	}
	if dv == 0 {
		dv = 1
	}
	const inflate = 0.10
	return quadBox{
		MinU: minU - du*inflate,
		MinV: minV - dv*inflate,
		MaxU: maxU + du*inflate,
		MaxV: maxV + dv*inflate,
	}
}
