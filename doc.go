// Package frontdelaunay implements a two-dimensional frontal-Delaunay
// triangulation core for an unstructured surface mesh generator.
//
// Given a planar straight-line graph (a set of boundary points, required
// constraint segments, and optional hole seeds) embedded in the parameter
// domain of a parametric surface, the core produces a conforming
// unstructured triangulation whose element sizes follow a caller-supplied
// feature-size field and whose interior elements satisfy a geometric
// quality criterion.
//
// The parametric surface and the feature-size field are supplied by the
// caller as the Surface and FeatureSize interfaces; this package never
// constructs a surface of its own. See the surface and featuresize
// subpackages for reference implementations usable in tests and demos.
package frontdelaunay

import "github.com/surfacemesh/frontdelaunay/kernel"

// UV is a point in the surface's parametric domain.
type UV = kernel.UV

// XYZ is a point in the surface's ambient 3D space.
type XYZ = kernel.XYZ

// Surface evaluates a parametric surface's position and, where needed, its
// partial derivatives. It is a caller-supplied, read-only, reentrant
// collaborator: the triangulator never constructs one itself.
type Surface = kernel.Surface

// FeatureSize evaluates the desired local element size at a point in
// ambient 3D space. Like Surface, it is read-only and reentrant.
type FeatureSize = kernel.FeatureSize

// Options controls the frontal loop's quality threshold and diagnostic
// verbosity.
type Options = kernel.Options

// Mesh is the cleaned triangulation returned by GetMesh.
type Mesh = kernel.Mesh

// Stats summarizes the current mesh's size and quality distribution.
type Stats = kernel.Stats

// DefaultOptions returns quality_threshold = 1.0 with diagnostics off.
func DefaultOptions() Options { return kernel.DefaultOptions() }
