package meshio

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"

	"github.com/surfacemesh/frontdelaunay/kernel"
)

// PSLG is a planar straight-line graph in the form the kernel's constructor
// wants it: a flat point list and index pairs into that list.
type PSLG struct {
	Points   []kernel.UV
	Segments [][2]int
}

// ReadSVGPolygon loads the single <polygon> element of an SVG file (or, when
// there is none, the single <polyline>) as a closed PSLG boundary: its
// points become the point list and consecutive (and wraparound) pairs
// become the boundary segments. A file with no such element, or with more
// than one, is rejected with ErrInputError.
func ReadSVGPolygon(path string) (PSLG, error) {
	f, err := os.Open(path)
	if err != nil {
		return PSLG{}, errors.Wrap(err, "meshio: open SVG file")
	}
	defer f.Close()
	return readSVGPolygon(f)
}

func readSVGPolygon(r io.Reader) (PSLG, error) {
	root, err := svgparser.Parse(r, true)
	if err != nil {
		return PSLG{}, errors.Wrap(err, "meshio: parse SVG")
	}

	elements := root.FindAll("polygon")
	if len(elements) == 0 {
		elements = root.FindAll("polyline")
	}
	if len(elements) == 0 {
		return PSLG{}, errors.Wrap(kernel.ErrInputError, "meshio: no polygon or polyline element in SVG")
	}
	if len(elements) > 1 {
		return PSLG{}, errors.Wrap(kernel.ErrInputError, "meshio: more than one polygon/polyline element in SVG")
	}

	pts, err := parsePointsAttr(elements[0].Attributes["points"])
	if err != nil {
		return PSLG{}, err
	}
	if len(pts) < 3 {
		return PSLG{}, errors.Wrap(kernel.ErrInputError, "meshio: polygon needs at least 3 points")
	}

	if SignedArea2(pts) < 0 {
		reverse(pts)
	}

	segs := make([][2]int, len(pts))
	for i := range pts {
		segs[i] = [2]int{i, (i + 1) % len(pts)}
	}
	return PSLG{Points: pts, Segments: segs}, nil
}

func parsePointsAttr(attr string) ([]kernel.UV, error) {
	var pts []kernel.UV
	for _, tok := range strings.Fields(attr) {
		if tok == "" {
			continue
		}
		parts := strings.Split(tok, ",")
		if len(parts) != 2 {
			return nil, errors.Wrapf(kernel.ErrInputError, "meshio: invalid SVG point %q", tok)
		}
		u, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, errors.Wrapf(kernel.ErrInputError, "meshio: invalid SVG x %q", parts[0])
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, errors.Wrapf(kernel.ErrInputError, "meshio: invalid SVG y %q", parts[1])
		}
		pts = append(pts, kernel.UV{U: u, V: v})
	}
	return pts, nil
}

// SignedArea2 returns twice the signed area of the closed polyline pts.
func SignedArea2(pts []kernel.UV) float64 {
	var sum float64
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		sum += a.U*b.V - b.U*a.V
	}
	return sum
}

func reverse(pts []kernel.UV) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
