package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"rollcall/internal/api"
	"rollcall/pkg/logging"
)

const subsystem = "manifest"

// Manifest is the on-disk description of a service set.
type Manifest struct {
	Services []*api.ServiceDefinition `yaml:"services"`
}

// Default returns the built-in empty manifest.
func Default() *Manifest {
	return &Manifest{}
}

// Names returns the declared service names in declaration order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Services))
	for i, def := range m.Services {
		names[i] = def.Name
	}
	return names
}

// Load reads one manifest file. A missing file is not fatal: it logs at
// debug and falls back to the default manifest, so optional configuration
// paths never break startup. Malformed content is always an error.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug(subsystem, "No manifest at %s, using defaults", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	logging.Info(subsystem, "Loaded %d services from %s", len(m.Services), path)
	return m, nil
}

// LoadPath loads the manifest at an explicitly requested path, which may
// name a file or a directory. Unlike Load and LoadDir it treats a missing
// path as an error: a path the user asked for by name must exist.
func LoadPath(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("manifest path %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return Load(path)
}

// LoadDir merges every *.yaml and *.yml file in dir, in lexical filename
// order. A service name declared in more than one file is a load error that
// names both files. A missing directory falls back to the default manifest.
func LoadDir(dir string) (*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug(subsystem, "No manifest directory at %s, using defaults", dir)
			return Default(), nil
		}
		return nil, fmt.Errorf("reading manifest directory %s: %w", dir, err)
	}

	merged := Default()
	// name of the file each service came from, for the duplicate report
	source := make(map[string]string)

	// ReadDir returns entries sorted by filename, which fixes the merge
	// order.
	for _, entry := range entries {
		if entry.IsDir() || !isManifestFile(entry.Name()) {
			continue
		}

		m, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		for _, def := range m.Services {
			if prev, taken := source[def.Name]; taken {
				return nil, fmt.Errorf("service %s declared in both %s and %s", def.Name, prev, entry.Name())
			}
			source[def.Name] = entry.Name()
			merged.Services = append(merged.Services, def)
		}
	}

	logging.Info(subsystem, "Merged %d services from %s", len(merged.Services), dir)
	return merged, nil
}

// Parse decodes and validates manifest bytes. Decoding is strict: unknown
// fields are rejected. Every validation problem in the document is
// collected before returning, so one pass surfaces the complete list.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty file is an empty manifest.
			return Default(), nil
		}
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	if err := validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// validate applies the per-definition structural checks and the
// unique-name rule.
func validate(m *Manifest) error {
	var errs []error
	seen := make(map[string]bool, len(m.Services))
	for i, def := range m.Services {
		if def == nil {
			errs = append(errs, fmt.Errorf("service %d: %w", i, api.ErrNilDefinition))
			continue
		}
		if err := def.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[def.Name] {
			errs = append(errs, api.NewDuplicateServiceError(def.Name))
			continue
		}
		seen[def.Name] = true
	}
	return errors.Join(errs...)
}

func isManifestFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
