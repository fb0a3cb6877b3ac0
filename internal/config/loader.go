package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML session file from the given path.
func LoadFile(path string) (*SessionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a SessionFile.
func Parse(data []byte) (*SessionFile, error) {
	var sf SessionFile

	err := yaml.Unmarshal(data, &sf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session YAML: %w", err)
	}

	applyDefaults(&sf)

	return &sf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(sf *SessionFile) {
	if sf.Version == "" {
		sf.Version = "1"
	}

	for i := range sf.Mappers {
		m := &sf.Mappers[i]
		if m.NullValueStrategy == "" {
			m.NullValueStrategy = "propagate"
		}

		if m.Package == "" {
			m.Package = "mappers"
		}
	}
}
