package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Suffix is appended to the collage path to name its manifest.
const Suffix = ".manifest.json"

// PathFor returns the manifest path for a collage written to outputPath.
func PathFor(outputPath string) string {
	return outputPath + Suffix
}

// New creates an empty manifest with defaults.
func New(profileName string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
	}
}

// ComputeStats recalculates aggregate statistics from cells and folders.
// InputBytes is left as set by the caller.
func (m *Manifest) ComputeStats() {
	s := Stats{
		TotalImages: len(m.Cells),
		Folders:     len(m.Folders),
		InputBytes:  m.Stats.InputBytes,
	}
	for _, c := range m.Cells {
		if c.Status == StatusPlaced {
			s.Placed++
		} else {
			s.Failed++
		}
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Read loads a manifest. Unknown fields are ignored.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}
