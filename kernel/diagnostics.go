package kernel

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/logrusorgru/aurora"

	"github.com/surfacemesh/frontdelaunay/dbg"
)

// diagPrefix is the fixed prefix used for every diagnostic
// line written to the standard diagnostic stream.
const diagPrefix = "TMRTriangularize:"

// diagnostics owns the print_level-gated diagnostic output: plain lines at
// level 1, colorized lines at level 2 (via aurora), periodic PNG snapshots
// at level 3 (via the gg/imgcat pipeline in debugdraw.go), and a dump of the
// point, triangle and PSLG-edge counts at level 4 (via go-spew).
type diagnostics struct {
	level int
}

func newDiagnostics(level int) *diagnostics { return &diagnostics{level: level} }

func (d *diagnostics) printf(level int, format string, args ...interface{}) {
	if d.level < level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if d.level >= 2 {
		fmt.Fprintln(os.Stderr, aurora.Sprintf("%s %s", aurora.Yellow(diagPrefix), msg))
	} else {
		fmt.Fprintf(os.Stderr, "%s %s\n", diagPrefix, msg)
	}
}

func (d *diagnostics) namedTriangle(h uint32) string { return dbg.Triangle(h) }
func (d *diagnostics) namedPoint(id uint32) string   { return dbg.Point(id) }

// snapshot emits the periodic diagnostics for the frontal loop: progress at
// level 1+, a PNG render at level 3+, and a spew dump of the point, triangle
// and PSLG-edge counts at level 4+.
func (d *diagnostics) snapshot(t *Triangulator, phase string) {
	if d.level <= 0 {
		return
	}
	stats := t.Stats()
	d.printf(1, "[%s] insertions=%d points=%d triangles=%d quality(min/mean/max)=%.3f/%.3f/%.3f",
		phase, stats.Insertions, stats.PointCount, stats.TriangleCount,
		stats.MinQuality, stats.MeanQuality, stats.MaxQuality)

	if d.level >= 3 {
		if err := t.dbgDrawMesh(); err != nil {
			d.printf(1, "debug draw failed: %v", err)
		}
	}

	if d.level >= 4 {
		fmt.Fprintln(os.Stderr, diagPrefix, "kernel state dump:")
		spew.Fdump(os.Stderr, struct {
			Points    int
			Triangles int
			PSLGEdges int
		}{t.Points.PointCount(), t.Tris.Count(), t.PSLG.Len()})
	}
}

// SetPrintLevel adjusts diagnostic verbosity after construction.
func (t *Triangulator) SetPrintLevel(level int) {
	t.Opts.PrintLevel = level
	t.log.level = level
}
