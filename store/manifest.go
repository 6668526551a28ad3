package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// ManifestEntry is one named template source in a manifest file: Path is
// resolved relative to the manifest file's own directory.
type ManifestEntry struct {
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	Description string `yaml:"description,omitempty"`
}

// Manifest is a declarative, file-based description of a set of templates
// to load in bulk, keyed by name.
type Manifest struct {
	Templates []ManifestEntry `yaml:"templates"`
}

// LoadManifest reads a YAML manifest from manifestPath and replaces each
// named template in m with the contents of its referenced file, then
// refreshes m's in-memory registry once at the end.
func LoadManifest(m *Manager, manifestPath string) error {
	f, err := os.Open(manifestPath)
	if err != nil {
		return fmt.Errorf("wisp/store: open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	var manifest Manifest
	if err := yaml.NewDecoder(f).Decode(&manifest); err != nil {
		return fmt.Errorf("wisp/store: parse manifest: %w", err)
	}

	baseDir := filepath.Dir(manifestPath)
	for _, entry := range manifest.Templates {
		if entry.Name == "" || entry.Path == "" {
			return fmt.Errorf("wisp/store: manifest entry missing name or path: %+v", entry)
		}
		srcPath := entry.Path
		if !filepath.IsAbs(srcPath) {
			srcPath = filepath.Join(baseDir, srcPath)
		}
		source, err := os.ReadFile(srcPath)
		if err != nil {
			return fmt.Errorf("wisp/store: read template %q: %w", entry.Name, err)
		}
		if err := m.store.Replace(entry.Name, string(source)); err != nil {
			return fmt.Errorf("wisp/store: load template %q: %w", entry.Name, err)
		}
		m.logger.Info("template loaded from manifest", "name", entry.Name, "path", srcPath)
	}

	return m.Refresh()
}

// snapshotDocument is the serializable form of a Snapshot: a flat mapping of
// template name to source text.
type snapshotDocument struct {
	Templates map[string]string `json:"templates"`
}

// Snapshot writes every currently-stored template's source to path as a
// single JSON document, using an atomic rename so the file is never
// observed half-written.
func (m *Manager) Snapshot(path string) error {
	names := m.store.List()
	doc := snapshotDocument{Templates: make(map[string]string, len(names))}
	for _, name := range names {
		source, ok := m.store.Source(name)
		if !ok {
			continue
		}
		doc.Templates[name] = source
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("wisp/store: marshal snapshot: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("wisp/store: write snapshot: %w", err)
	}
	m.logger.Info("snapshot written", "path", path, "templates", len(doc.Templates))
	return nil
}

// Restore reads a JSON document written by Snapshot from path and replaces
// every template it names, then refreshes m's in-memory registry once.
func (m *Manager) Restore(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("wisp/store: read snapshot: %w", err)
	}
	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("wisp/store: parse snapshot: %w", err)
	}
	for name, source := range doc.Templates {
		if err := m.store.Replace(name, source); err != nil {
			return fmt.Errorf("wisp/store: restore template %q: %w", name, err)
		}
	}
	m.logger.Info("snapshot restored", "path", path, "templates", len(doc.Templates))
	return m.Refresh()
}
