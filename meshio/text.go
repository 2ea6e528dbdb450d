package meshio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/surfacemesh/frontdelaunay/kernel"
)

// ReadTextPolygons loads a newline-separated "x y" point
// format: one polygon per blank-line-separated block, each a closed
// boundary whose points and wraparound segments are concatenated into a
// single PSLG.
func ReadTextPolygons(path string) (PSLG, error) {
	f, err := os.Open(path)
	if err != nil {
		return PSLG{}, errors.Wrap(err, "meshio: open point list")
	}
	defer f.Close()
	return readTextPolygons(f)
}

func readTextPolygons(r io.Reader) (PSLG, error) {
	var pts []kernel.UV
	var segs [][2]int

	sc := bufio.NewScanner(r)
	var block []kernel.UV
	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		if len(block) < 3 {
			return errors.Wrap(kernel.ErrInputError, "meshio: polygon block needs at least 3 points")
		}
		base := len(pts)
		pts = append(pts, block...)
		for i := range block {
			segs = append(segs, [2]int{base + i, base + (i+1)%len(block)})
		}
		block = nil
		return nil
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			if err := flush(); err != nil {
				return PSLG{}, err
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return PSLG{}, errors.Wrapf(kernel.ErrInputError, "meshio: malformed point line %q", line)
		}
		u, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return PSLG{}, errors.Wrapf(kernel.ErrInputError, "meshio: invalid x %q", fields[0])
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return PSLG{}, errors.Wrapf(kernel.ErrInputError, "meshio: invalid y %q", fields[1])
		}
		block = append(block, kernel.UV{U: u, V: v})
	}
	if err := flush(); err != nil {
		return PSLG{}, err
	}
	return PSLG{Points: pts, Segments: segs}, nil
}
