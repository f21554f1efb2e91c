package demodata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Dataset file names inside the generated data directory.
const (
	SurveysFile   = "surveys.json"
	UsersFile     = "users.json"
	ResponsesFile = "responses.json"
)

// Datasets bundles the three generated files the seeder consumes.
type Datasets struct {
	Surveys   []Survey
	Users     []User
	Responses []Response
}

// LoadDatasets reads all three dataset files from dir. A missing file fails
// the load with an error that points at the generate command.
func LoadDatasets(dir string) (Datasets, error) {
	var ds Datasets
	if err := loadFile(filepath.Join(dir, SurveysFile), &ds.Surveys); err != nil {
		return Datasets{}, err
	}
	if err := loadFile(filepath.Join(dir, UsersFile), &ds.Users); err != nil {
		return Datasets{}, err
	}
	if err := loadFile(filepath.Join(dir, ResponsesFile), &ds.Responses); err != nil {
		return Datasets{}, err
	}
	return ds, nil
}

func loadFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("required data file %s not found, run the generate command first: %w", filepath.Base(path), err)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteFile writes a dataset as indented JSON so the files stay reviewable
// and hand-editable between generate and seed runs.
func WriteFile(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
