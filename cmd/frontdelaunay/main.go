// Command frontdelaunay drives the triangulator end to end from a PSLG
// file: it builds the initial mesh, runs frontal refinement, and writes a
// VTK mesh.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/surfacemesh/frontdelaunay"
	"github.com/surfacemesh/frontdelaunay/featuresize"
	"github.com/surfacemesh/frontdelaunay/meshio"
	"github.com/surfacemesh/frontdelaunay/surface"
)

var (
	app = kingpin.New("frontdelaunay", "Frontal-Delaunay surface triangulation.")

	input = app.Arg("input", "PSLG input file (.svg or .txt point list)").Required().String()
	output = app.Flag("output", "VTK output path").Short('o').Default("mesh.vtk").String()
	quality = app.Flag("quality", "quality threshold (beta)").Short('q').Default("1.0").Float64()
	featureSizeFlag = app.Flag("feature-size", "uniform target element size").Short('h').Default("0.1").Float64()
	printLevel = app.Flag("print-level", "diagnostic verbosity (0-4)").Default("0").Int()
	optionsFile = app.Flag("options", "YAML options file, overrides -q/--print-level").String()
	space = app.Flag("space", "VTK output space: 3d or parametric").Default("3d").Enum("3d", "parametric")
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	pslg, err := loadPSLG(*input)
	if err != nil {
		fatal(err)
	}

	opts := frontdelaunay.DefaultOptions()
	if *optionsFile != "" {
		opts, err = frontdelaunay.LoadOptions(*optionsFile)
		if err != nil {
			fatal(err)
		}
	} else {
		opts.QualityThreshold = *quality
		opts.PrintLevel = *printLevel
	}

	tri, err := frontdelaunay.New(pslg.Points, pslg.Segments, nil, surface.Planar{})
	if err != nil {
		fatal(err)
	}

	fs := featuresize.Constant(*featureSizeFlag)
	if err := tri.Run(fs, opts); err != nil {
		if err != frontdelaunay.ErrConvergenceFailure {
			fatal(err)
		}
		fmt.Fprintln(os.Stderr, "TMRTriangularize: convergence budget exceeded, writing partial mesh")
	}

	mesh := tri.GetMesh()
	outSpace := meshio.Space3D
	if *space == "parametric" {
		outSpace = meshio.SpaceParam
	}
	if err := meshio.WriteVTK(*output, mesh, outSpace); err != nil {
		fatal(err)
	}

	stats := tri.Stats()
	fmt.Printf("wrote %s: %d points, %d triangles, quality(min/mean/max)=%.3f/%.3f/%.3f\n",
		*output, stats.PointCount, stats.TriangleCount, stats.MinQuality, stats.MeanQuality, stats.MaxQuality)
}

func loadPSLG(path string) (meshio.PSLG, error) {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return meshio.ReadSVGPolygon(path)
	}
	return meshio.ReadTextPolygons(path)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "TMRTriangularize:", err)
	os.Exit(1)
}
