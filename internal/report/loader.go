package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"formset/pkg/logging"

	"sigs.k8s.io/yaml"
)

// definitionFile is the on-disk shape of a report definition file.
type definitionFile struct {
	Reports []ReportSpec `json:"reports"`
}

// LoadDefinitions reads every .yaml/.yml file in dir and returns the report
// specs they declare, in filename order. A missing directory yields an empty
// slice; a malformed file is an error (the whole load is rejected rather
// than serving a partial table).
func LoadDefinitions(dir string) ([]ReportSpec, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading report definition directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	var specs []ReportSpec
	for _, name := range files {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading report definition %s: %w", path, err)
		}
		var file definitionFile
		if err := yaml.UnmarshalStrict(data, &file); err != nil {
			return nil, fmt.Errorf("parsing report definition %s: %w", path, err)
		}
		specs = append(specs, file.Reports...)
		logging.Debug("config", "Loaded %d report definitions from %s", len(file.Reports), path)
	}
	return specs, nil
}

// BuildRegistry combines the built-in report table with definitions from dir
// (empty dir name skips the file load).
func BuildRegistry(dir string) (*Registry, error) {
	specs := BuiltinSpecs()
	if dir != "" {
		extra, err := LoadDefinitions(dir)
		if err != nil {
			return nil, err
		}
		specs = append(specs, extra...)
	}
	return NewRegistry(specs)
}
