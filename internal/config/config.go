// Package config loads and saves parameter defaults as a YAML file, so that
// calibrated defaults survive between server runs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rate_planner/internal/model"
)

// File is the on-disk shape of a defaults file.
type File struct {
	Params model.Params    `yaml:"params"`
	Years  model.YearRange `yaml:"years"`
}

// Load reads a defaults file. The bundle is validated against the file's
// year range before it is returned.
func Load(path string) (model.Params, model.YearRange, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Params{}, model.YearRange{}, fmt.Errorf("reading defaults file: %w", err)
	}

	f := File{
		Params: model.DefaultParams(),
		Years:  model.DefaultYearRange,
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return model.Params{}, model.YearRange{}, fmt.Errorf("parsing defaults file %s: %w", path, err)
	}

	if err := f.Params.Validate(f.Years); err != nil {
		return model.Params{}, model.YearRange{}, fmt.Errorf("defaults file %s: %w", path, err)
	}
	return f.Params, f.Years, nil
}

// Save writes a defaults file.
func Save(path string, p model.Params, years model.YearRange) error {
	data, err := Marshal(p, years)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing defaults file: %w", err)
	}
	return nil
}

// Marshal renders a defaults file without touching the filesystem.
func Marshal(p model.Params, years model.YearRange) ([]byte, error) {
	data, err := yaml.Marshal(File{Params: p, Years: years})
	if err != nil {
		return nil, fmt.Errorf("marshaling defaults: %w", err)
	}
	return data, nil
}
