package featuresize

import "github.com/surfacemesh/frontdelaunay/kernel"

// Sample is one control point of a Field: the desired element size at p.
type Sample struct {
	P    kernel.XYZ
	Size float64
}

// Field interpolates element size from a scattered set of samples using
// inverse-squared-distance weighting, clamped between Min and Max so a
// query far from every sample still returns a sane answer.
type Field struct {
	Samples []Sample
	Min, Max float64
}

func (f Field) GetFeatureSize(p kernel.XYZ) float64 {
	if len(f.Samples) == 0 {
		return f.clamp(f.Max)
	}
	var weightSum, valueSum float64
	for _, s := range f.Samples {
		d2 := p.DistanceTo(s.P)
		d2 *= d2
		if d2 < kernel.Tolerance*kernel.Tolerance {
			return f.clamp(s.Size)
		}
		w := 1.0 / d2
		weightSum += w
		valueSum += w * s.Size
	}
	return f.clamp(valueSum / weightSum)
}

func (f Field) clamp(v float64) float64 {
	if f.Min > 0 && v < f.Min {
		return f.Min
	}
	if f.Max > 0 && v > f.Max {
		return f.Max
	}
	return v
}
