package frontdelaunay

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadOptions reads Options from a YAML file, so a batch job's quality
// threshold and diagnostic verbosity can be checked into version control
// instead of hardcoded. Unset fields keep DefaultOptions' values.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, errors.Wrap(err, "frontdelaunay: read options file")
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, errors.Wrap(err, "frontdelaunay: parse options file")
	}
	return opts, nil
}
