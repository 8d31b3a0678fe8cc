// Package settings reads and writes the edited simulation state that the
// patch direction consumes: a typed settings map, boundary conditions, file
// references and the port table.
package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/emstudio/emsync/internal/pyliteral"
	"github.com/emstudio/emsync/internal/script"
)

// File is the on-disk YAML form of an edit set.
type File struct {
	Tool          string                 `yaml:"tool,omitempty"`
	Settings      map[string]interface{} `yaml:"settings,omitempty"`
	Boundaries    map[string]string      `yaml:"boundaries,omitempty"`
	GdsFile       string                 `yaml:"gds_file,omitempty"`
	TopCell       string                 `yaml:"top_cell,omitempty"`
	SubstrateFile string                 `yaml:"substrate_file,omitempty"`
	Ports         []script.Port          `yaml:"ports,omitempty"`
}

// Load reads and parses an edit set from the given path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("validating settings file: %w", err)
	}

	return &f, nil
}

// Validate checks boundary side names and port numbers.
func (f *File) Validate() error {
	for side := range f.Boundaries {
		if !validBoundarySide(side) {
			return fmt.Errorf("unknown boundary side %q (expected one of X-,X+,Y-,Y+,Z-,Z+)", side)
		}
	}
	for i, p := range f.Ports {
		if p.Number <= 0 {
			return fmt.Errorf("port %d: number must be positive, got %d", i+1, p.Number)
		}
	}
	return nil
}

func validBoundarySide(side string) bool {
	for _, s := range script.BoundarySides {
		if s == side {
			return true
		}
	}
	return false
}

// Values converts the plain YAML settings map into typed literal values.
func (f *File) Values() map[string]pyliteral.Value {
	out := make(map[string]pyliteral.Value, len(f.Settings))
	for k, v := range f.Settings {
		out[k] = pyliteral.FromInterface(v)
	}
	return out
}

// FromResult builds an edit set from a parse result, so "emsync parse -o"
// output can be edited and fed back into "emsync apply".
func FromResult(res script.Result) *File {
	f := &File{
		Settings:      make(map[string]interface{}, len(res.Settings)),
		GdsFile:       res.GdsFilename,
		SubstrateFile: res.XMLFilename,
		Ports:         res.Ports,
	}

	for key, s := range res.Settings {
		if key == "Boundaries" || key == "boundary" {
			if items := script.ParseBoundaryItems(s.Value.StrV); len(items) == len(script.BoundarySides) {
				f.Boundaries = make(map[string]string, len(items))
				for i, side := range script.BoundarySides {
					f.Boundaries[side] = items[i]
				}
				continue
			}
		}
		f.Settings[key] = s.Value.Interface()
	}

	return f
}

// Save writes the edit set to the given path.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding settings file: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
