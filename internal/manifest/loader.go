package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the only manifest schema version.
const Version = "1"

// LoadFile loads and parses a manifest from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = Version
	}

	for i := range f.Types {
		t := &f.Types[i]
		if t.Assembly == "" {
			t.Assembly = f.Assembly
		}

		for j := range t.Members {
			m := &t.Members[j]
			if m.Get != nil && m.Get.disabled {
				m.Get = nil
			}

			if m.Set != nil && m.Set.disabled {
				m.Set = nil
			}
		}
	}

	for i := range f.Mocks {
		if f.Mocks[i].Unit == "" {
			f.Mocks[i].Unit = f.Assembly
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
