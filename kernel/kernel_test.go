package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// planarSurface and constantFeatureSize are the smallest possible
// collaborators for exercising the kernel in isolation, rather than pulling
// in the surface/featuresize packages, which themselves import this one.
type planarSurface struct{}

func (planarSurface) EvalPoint(u, v float64) (x, y, z float64) { return u, v, 0 }
func (planarSurface) EvalDeriv(u, v float64) (pos, dXdu, dXdv XYZ) {
	return XYZ{u, v, 0}, XYZ{1, 0, 0}, XYZ{0, 1, 0}
}

type constantFeatureSize float64

func (c constantFeatureSize) GetFeatureSize(XYZ) float64 { return float64(c) }

func unitSquare() []UV {
	return []UV{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
}

func square(pts []UV) [][2]int {
	n := len(pts)
	segs := make([][2]int, n)
	for i := range pts {
		segs[i] = [2]int{i, (i + 1) % n}
	}
	return segs
}

func TestNew_UnitSquare(t *testing.T) {
	pts := unitSquare()
	tr, err := New(pts, square(pts), nil, planarSurface{})
	require.NoError(t, err)
	assert.Empty(t, tr.Validate())
	assert.Empty(t, tr.ValidateDelaunay())

	mesh := tr.GetMesh()
	assert.Len(t, mesh.Params, 4)
	assert.Len(t, mesh.Tris, 2)
}

func TestNew_UnitSquareWithDiagonalPSLG(t *testing.T) {
	pts := append(unitSquare(), UV{0.75, 0.25})
	segs := append(square(pts[:4]), [2]int{0, 2})
	tr, err := New(pts, segs, nil, planarSurface{})
	require.NoError(t, err)
	assert.Empty(t, tr.Validate())
	assert.True(t, tr.PSLG.Has(FixedPointOffset+0, FixedPointOffset+2))
	assert.Empty(t, tr.validatePSLGPreservation())
}

func regularPolygon(n int, radius float64) []UV {
	pts := make([]UV, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = UV{radius * math.Cos(theta), radius * math.Sin(theta)}
	}
	return pts
}

func TestNew_UnitDisk(t *testing.T) {
	pts := regularPolygon(16, 1.0)
	tr, err := New(pts, square(pts), nil, planarSurface{})
	require.NoError(t, err)
	assert.Empty(t, tr.Validate())
	assert.Empty(t, tr.ValidateDelaunay())
}

func TestNew_AnnulusWithHole(t *testing.T) {
	outer := regularPolygon(16, 2.0)
	inner := regularPolygon(12, 0.5)
	// inner boundary must wind CW to make the ring the enclosed region once
	// combined with a hole seed at the disk's center.
	for i, j := 0, len(inner)-1; i < j; i, j = i+1, j-1 {
		inner[i], inner[j] = inner[j], inner[i]
	}
	pts := append(append([]UV{}, outer...), inner...)
	segs := append(square(outer), offsetSegs(square(inner), len(outer))...)
	holes := []UV{{0, 0}}

	tr, err := New(pts, segs, holes, planarSurface{})
	require.NoError(t, err)
	assert.Empty(t, tr.Validate())
}

func offsetSegs(segs [][2]int, offset int) [][2]int {
	out := make([][2]int, len(segs))
	for i, s := range segs {
		out[i] = [2]int{s[0] + offset, s[1] + offset}
	}
	return out
}

func TestNew_LShape(t *testing.T) {
	pts := []UV{
		{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2},
	}
	tr, err := New(pts, square(pts), nil, planarSurface{})
	require.NoError(t, err)
	assert.Empty(t, tr.Validate())
	assert.Empty(t, tr.ValidateDelaunay())
}

func TestNew_DuplicatePointsRejected(t *testing.T) {
	pts := []UV{{0, 0}, {1, 0}, {1, 1}, {1, 0}}
	_, err := New(pts, square(pts), nil, planarSurface{})
	require.Error(t, err)
	assert.True(t, isInputError(err))
}

func TestNew_SelfCrossingSegmentsRejected(t *testing.T) {
	pts := []UV{{0, 0}, {1, 1}, {1, 0}, {0, 1}}
	segs := [][2]int{{0, 1}, {2, 3}}
	_, err := New(pts, segs, nil, planarSurface{})
	require.Error(t, err)
	assert.True(t, isInputError(err))
}

func isInputError(err error) bool {
	for err != nil {
		if err == ErrInputError {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func TestInCircleRobust_CocircularQuartetIsDeterministic(t *testing.T) {
	// Four points exactly on a common circle (a unit square) are an
	// adversarial case for a naive predicate: the exact determinant is zero,
	// so the result must come from the symbolic tie-break, not float noise,
	// and must be stable across argument order permutations that preserve
	// identity.
	a, b, c, d := UV{0, 0}, UV{1, 0}, UV{1, 1}, UV{0, 1}
	r1 := inCircleRobust(a, b, c, d, 0, 1, 2, 3)
	r2 := inCircleRobust(b, c, a, d, 1, 2, 0, 3)
	assert.Equal(t, r1, r2)
}

func TestFrontal_RefinesUnitSquare(t *testing.T) {
	pts := unitSquare()
	tr, err := New(pts, square(pts), nil, planarSurface{})
	require.NoError(t, err)

	tr.FeatureSize = constantFeatureSize(0.3)
	tr.Opts = DefaultOptions()
	err = tr.Frontal()
	require.NoError(t, err)

	assert.Empty(t, tr.Validate())
	assert.Empty(t, tr.ValidateQuality(1e-6))

	mesh := tr.GetMesh()
	assert.Greater(t, len(mesh.Tris), 2)
}

func TestFrontal_ConvergenceFailureReturnsPartialMesh(t *testing.T) {
	pts := unitSquare()
	tr, err := New(pts, square(pts), nil, planarSurface{})
	require.NoError(t, err)

	tr.FeatureSize = constantFeatureSize(0.05)
	tr.Opts = DefaultOptions()
	tr.Opts.MaxInsertions = 3

	err = tr.Frontal()
	assert.ErrorIs(t, err, ErrConvergenceFailure)
	mesh := tr.GetMesh()
	assert.NotEmpty(t, mesh.Tris)
}

func TestRemoveDegenerateEdges_CollapsesCoincidentBoundary(t *testing.T) {
	pts := []UV{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	tr, err := New(pts, square(pts), nil, planarSurface{})
	require.NoError(t, err)

	before := len(tr.GetMesh().Tris)
	tr.RemoveDegenerateEdges([][2]uint32{{FixedPointOffset, FixedPointOffset + 1}})
	after := tr.GetMesh()

	assert.LessOrEqual(t, len(after.Tris), before)
	assert.Empty(t, tr.validateManifold())
}

func TestGetMesh_ExcludesSuperPoints(t *testing.T) {
	pts := unitSquare()
	tr, err := New(pts, square(pts), nil, planarSurface{})
	require.NoError(t, err)

	mesh := tr.GetMesh()
	assert.Len(t, mesh.Params, len(pts))
	for _, tri := range mesh.Tris {
		for _, idx := range tri {
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, len(mesh.Params))
		}
	}
}
