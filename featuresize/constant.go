// Package featuresize provides ready-made FeatureSize implementations:
// uniform element size and a sampled 3D field with inverse-distance
// weighting, usable directly or as a template for a caller's own field.
package featuresize

import "github.com/surfacemesh/frontdelaunay/kernel"

// Constant is the trivial feature-size field: every point in space gets the
// same target element size.
type Constant float64

func (c Constant) GetFeatureSize(kernel.XYZ) float64 { return float64(c) }
