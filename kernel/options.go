package kernel

// Options controls the frontal loop and diagnostic verbosity. The zero value
// is not valid; use DefaultOptions() as a base.
type Options struct {
	// QualityThreshold (beta) is the target ceiling on circumradius / feature
	// size. Triangles at or below this are ACCEPTED rather than refined.
	QualityThreshold float64 `yaml:"quality_threshold"`
	// PrintLevel controls diagnostic verbosity: 0 silent, 1 progress lines,
	// 2 colorized progress, 3 periodic PNG snapshots, 4 dumps of the point,
	// triangle and PSLG-edge counts.
	PrintLevel int `yaml:"print_level"`
	// PrintIter is how many frontal insertions elapse between periodic
	// diagnostic snapshots when PrintLevel >= 1.
	PrintIter int `yaml:"print_iter"`
	// SmoothIter is how many frontal insertions elapse between interior
	// Laplacian smoothing passes. Independent of PrintIter/PrintLevel: smoothing
	// runs on its own cadence regardless of diagnostic verbosity.
	SmoothIter int `yaml:"smooth_iter"`
	// MaxInsertions bounds the frontal loop. Zero means
	// 100 * initial boundary point count.
	MaxInsertions int `yaml:"max_insertions"`
}

// DefaultOptions returns a default quality threshold of beta = 1.0 with
// diagnostics off.
func DefaultOptions() Options {
	return Options{
		QualityThreshold: 1.0,
		PrintLevel:       0,
		PrintIter:        25,
		SmoothIter:       25,
		MaxInsertions:    0,
	}
}
