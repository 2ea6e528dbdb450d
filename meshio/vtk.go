// Package meshio reads and writes meshes and PSLG descriptions in the
// on-disk formats the triangulator's external interface names: ASCII VTK
// 3.0 UNSTRUCTURED_GRID, SVG polygon/polyline outlines, and a plain-text
// point-list format.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/surfacemesh/frontdelaunay/kernel"
)

// Space selects which of a mesh's two coordinate systems WriteVTK emits.
type Space int

const (
	Space3D    Space = 0
	SpaceParam Space = 1
)

// WriteVTK writes mesh to path as an ASCII VTK 3.0 UNSTRUCTURED_GRID file:
// triangle cells (VTK cell type 5), zero-indexed connectivity, a leading
// vertex count of 3 on every CELLS row.
func WriteVTK(path string, mesh kernel.Mesh, space Space) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "meshio: create VTK file")
	}
	defer f.Close()
	return writeVTK(f, mesh, space)
}

func writeVTK(w io.Writer, mesh kernel.Mesh, space Space) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# vtk DataFile Version 3.0")
	fmt.Fprintln(bw, "vtk output")
	fmt.Fprintln(bw, "ASCII")
	fmt.Fprintln(bw, "DATASET UNSTRUCTURED_GRID")
	fmt.Fprintf(bw, "POINTS %d float\n", len(mesh.Coords))
	for i := range mesh.Coords {
		if space == SpaceParam {
			p := mesh.Params[i]
			fmt.Fprintf(bw, "%g %g %g\n", p[0], p[1], 0.0)
			continue
		}
		c := mesh.Coords[i]
		fmt.Fprintf(bw, "%g %g %g\n", c[0], c[1], c[2])
	}
	fmt.Fprintf(bw, "CELLS %d %d\n", len(mesh.Tris), 4*len(mesh.Tris))
	for _, t := range mesh.Tris {
		fmt.Fprintf(bw, "3 %d %d %d\n", t[0], t[1], t[2])
	}
	fmt.Fprintf(bw, "CELL_TYPES %d\n", len(mesh.Tris))
	for range mesh.Tris {
		fmt.Fprintln(bw, "5")
	}
	return bw.Flush()
}

// ReadVTK parses the exact format WriteVTK emits back into a Mesh. It does
// not attempt to read arbitrary third-party VTK files: only the single
// UNSTRUCTURED_GRID/triangle-cell shape this package writes.
func ReadVTK(path string) (kernel.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return kernel.Mesh{}, errors.Wrap(err, "meshio: open VTK file")
	}
	defer f.Close()
	return readVTK(f)
}

func readVTK(r io.Reader) (kernel.Mesh, error) {
	sc := bufio.NewScanner(r)
	var mesh kernel.Mesh

	nextLine := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	for i := 0; i < 4; i++ {
		if _, ok := nextLine(); !ok {
			return mesh, errors.Wrap(kernel.ErrInputError, "meshio: truncated VTK header")
		}
	}

	header, ok := nextLine()
	if !ok {
		return mesh, errors.Wrap(kernel.ErrInputError, "meshio: missing POINTS line")
	}
	nPoints, err := parseCountLine(header, "POINTS", 1)
	if err != nil {
		return mesh, err
	}
	mesh.Coords = make([][3]float64, nPoints)
	mesh.Params = make([][2]float64, nPoints)
	for i := 0; i < nPoints; i++ {
		line, ok := nextLine()
		if !ok {
			return mesh, errors.Wrap(kernel.ErrInputError, "meshio: truncated POINTS block")
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return mesh, errors.Wrapf(kernel.ErrInputError, "meshio: malformed point line %q", line)
		}
		x, _ := strconv.ParseFloat(fields[0], 64)
		y, _ := strconv.ParseFloat(fields[1], 64)
		z, _ := strconv.ParseFloat(fields[2], 64)
		mesh.Coords[i] = [3]float64{x, y, z}
		mesh.Params[i] = [2]float64{x, y}
	}

	cellsHeader, ok := nextLine()
	if !ok {
		return mesh, errors.Wrap(kernel.ErrInputError, "meshio: missing CELLS line")
	}
	nCells, err := parseCountLine(cellsHeader, "CELLS", 1)
	if err != nil {
		return mesh, err
	}
	mesh.Tris = make([][3]int, nCells)
	for i := 0; i < nCells; i++ {
		line, ok := nextLine()
		if !ok {
			return mesh, errors.Wrap(kernel.ErrInputError, "meshio: truncated CELLS block")
		}
		fields := strings.Fields(line)
		if len(fields) != 4 || fields[0] != "3" {
			return mesh, errors.Wrapf(kernel.ErrInputError, "meshio: malformed cell line %q, expected a triangle", line)
		}
		a, _ := strconv.Atoi(fields[1])
		b, _ := strconv.Atoi(fields[2])
		c, _ := strconv.Atoi(fields[3])
		mesh.Tris[i] = [3]int{a, b, c}
	}

	// CELL_TYPES section follows but every row must be "5"; skip past it.
	if _, ok := nextLine(); !ok {
		return mesh, errors.Wrap(kernel.ErrInputError, "meshio: missing CELL_TYPES line")
	}
	for i := 0; i < nCells; i++ {
		if _, ok := nextLine(); !ok {
			return mesh, errors.Wrap(kernel.ErrInputError, "meshio: truncated CELL_TYPES block")
		}
	}

	return mesh, nil
}

func parseCountLine(line, want string, field int) (int, error) {
	fields := strings.Fields(line)
	if len(fields) < field+1 || fields[0] != want {
		return 0, errors.Wrapf(kernel.ErrInputError, "meshio: expected %s line, got %q", want, line)
	}
	n, err := strconv.Atoi(fields[field])
	if err != nil {
		return 0, errors.Wrapf(kernel.ErrInputError, "meshio: bad count in %q", line)
	}
	return n, nil
}
