package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Manifest is the JSON document written after a batch run.
type Manifest struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Results   []Result `json:"results"`
}

// NewManifest summarizes results.
func NewManifest(results []Result) Manifest {
	m := Manifest{Total: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			m.Succeeded++
		} else {
			m.Failed++
		}
	}
	return m
}

// WriteManifest writes the run manifest as indented JSON.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(NewManifest(results), "", "  ")
	if err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("batch: manifest mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: manifest write %s: %w", path, err)
	}
	return nil
}
