package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "greeting.wisp"), "Hi, {{ name }}!")
	writeFile(t, filepath.Join(dir, "farewell.wisp"), "Bye, {{ name }}.")
	manifestYAML := `
templates:
  - name: greeting
    path: greeting.wisp
    description: the landing page greeting
  - name: farewell
    path: farewell.wisp
`
	manifestPath := filepath.Join(dir, "manifest.yaml")
	writeFile(t, manifestPath, manifestYAML)

	m := newTestManager(t)
	if err := LoadManifest(m, manifestPath); err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	names := m.Names()
	if len(names) != 2 {
		t.Fatalf("got %v", names)
	}
}

func TestLoadManifestMissingFieldRejected(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.yaml")
	writeFile(t, manifestPath, "templates:\n  - name: greeting\n")

	m := newTestManager(t)
	if err := LoadManifest(m, manifestPath); err == nil {
		t.Fatalf("expected an error for a manifest entry missing a path")
	}
}

func TestSnapshotAndRestore(t *testing.T) {
	m := newTestManager(t)
	if err := m.Add("greeting", "Hi, {{ name }}!"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := m.Add("farewell", "Bye."); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	snapPath := filepath.Join(t.TempDir(), "snapshot.json")
	if err := m.Snapshot(snapPath); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	fresh := newTestManager(t)
	if err := fresh.Restore(snapPath); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	names := fresh.Names()
	if len(names) != 2 {
		t.Fatalf("got %v", names)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
