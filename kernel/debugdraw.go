package kernel

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
)

// dbgDrawScale controls how many pixels represent one parametric unit in
// the debug snapshot.
const dbgDrawScale = 400.0
const dbgDrawPadding = 20.0

// dbgDrawMesh renders the current mesh to /tmp/frontdelaunay-mesh.png,
// coloring triangles by status (grey ACCEPTED, amber WAITING/ACTIVE, and
// skipping DELETE_ME), and streams it inline if the terminal understands
// iTerm2's image protocol. Debugging-only: failures here are never fatal to
// triangulation, only to the diagnostic itself.
func (t *Triangulator) dbgDrawMesh() error {
	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	t.Tris.Range(func(h uint32) {
		tri := t.Tris.Get(h)
		if tri.Status == DeleteMe {
			return
		}
		u, v, w := tri.Vertices()
		for _, id := range [3]uint32{u, v, w} {
			p := t.Points.UV(id)
			minU, maxU = math.Min(minU, p.U), math.Max(maxU, p.U)
			minV, maxV = math.Min(minV, p.V), math.Max(maxV, p.V)
		}
	})
	if math.IsInf(minU, 1) {
		return nil // nothing to draw yet
	}

	width := int(dbgDrawScale*(maxU-minU)) + int(2*dbgDrawPadding)
	height := int(dbgDrawScale*(maxV-minV)) + int(2*dbgDrawPadding)
	c := gg.NewContext(width, height)
	c.SetRGB(1, 1, 1)
	c.Clear()
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	c.Scale(dbgDrawScale, dbgDrawScale)
	c.Translate(-minU, -minV)
	c.SetLineWidth(1.0 / dbgDrawScale)

	t.Tris.Range(func(h uint32) {
		tri := t.Tris.Get(h)
		if tri.Status == DeleteMe {
			return
		}
		u, v, w := tri.Vertices()
		pu, pv, pw := t.Points.UV(u), t.Points.UV(v), t.Points.UV(w)
		c.MoveTo(pu.U, pu.V)
		c.LineTo(pv.U, pv.V)
		c.LineTo(pw.U, pw.V)
		c.ClosePath()
		switch tri.Status {
		case Accepted:
			c.SetRGB(0.85, 0.85, 0.85)
		default:
			c.SetRGB(0.95, 0.75, 0.4)
		}
		c.FillPreserve()
		c.SetRGB(0.1, 0.1, 0.1)
		c.Stroke()
	})

	const path = "/tmp/frontdelaunay-mesh.png"
	if err := c.SavePNG(path); err != nil {
		return err
	}
	return imgcat.CatFile(path, os.Stdout)
}
