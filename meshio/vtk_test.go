package meshio

import (
	"bytes"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfacemesh/frontdelaunay/kernel"
)

func sampleMesh() kernel.Mesh {
	return kernel.Mesh{
		Params: [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Coords: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Tris:   [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
}

func TestWriteVTK_ExactFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeVTK(&buf, sampleMesh(), Space3D))

	want := "# vtk DataFile Version 3.0\n" +
		"vtk output\n" +
		"ASCII\n" +
		"DATASET UNSTRUCTURED_GRID\n" +
		"POINTS 4 float\n" +
		"0 0 0\n" +
		"1 0 0\n" +
		"1 1 0\n" +
		"0 1 0\n" +
		"CELLS 2 8\n" +
		"3 0 1 2\n" +
		"3 0 2 3\n" +
		"CELL_TYPES 2\n" +
		"5\n" +
		"5\n"

	if buf.String() != want {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(want),
			B:        difflib.SplitLines(buf.String()),
			FromFile: "want",
			ToFile:   "got",
			Context:  3,
		})
		t.Fatalf("VTK output mismatch:\n%s", diff)
	}
}

func TestWriteReadVTK_RoundTrip(t *testing.T) {
	mesh := sampleMesh()
	var buf bytes.Buffer
	require.NoError(t, writeVTK(&buf, mesh, Space3D))

	got, err := readVTK(&buf)
	require.NoError(t, err)
	assert.Equal(t, mesh.Coords, got.Coords)
	assert.Equal(t, mesh.Tris, got.Tris)
}

func TestReadSVGPolygon(t *testing.T) {
	svg := `<svg><polygon points="0,0 1,0 1,1 0,1"/></svg>`
	pslg, err := readSVGPolygon(bytes.NewReader([]byte(svg)))
	require.NoError(t, err)
	assert.Len(t, pslg.Points, 4)
	assert.Len(t, pslg.Segments, 4)
}

func TestReadTextPolygons(t *testing.T) {
	text := "0 0\n1 0\n1 1\n0 1\n\n2 2\n3 2\n3 3\n"
	pslg, err := readTextPolygons(bytes.NewReader([]byte(text)))
	require.NoError(t, err)
	assert.Len(t, pslg.Points, 7)
	assert.Len(t, pslg.Segments, 7)
}
