// Package testutil provides reusable test utilities for Packsmith tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// TestProject represents a temporary project directory for testing.
type TestProject struct {
	Path  string
	t     *testing.T
	files map[string][]byte
}

// NewTestProject creates a new test project builder.
// Call Build() to create the actual project directory.
func NewTestProject(t *testing.T) *TestProject {
	t.Helper()
	return &TestProject{
		t:     t,
		files: make(map[string][]byte),
	}
}

// WithFile adds a text file to the project.
// The path is relative to the project root.
func (p *TestProject) WithFile(path, content string) *TestProject {
	p.files[path] = []byte(content)
	return p
}

// WithBinaryFile adds a file with raw byte content to the project.
func (p *TestProject) WithBinaryFile(path string, content []byte) *TestProject {
	p.files[path] = content
	return p
}

// WithArchive adds a zip archive built from the given entries.
// Entry paths use forward slashes relative to the archive root.
func (p *TestProject) WithArchive(path string, entries map[string]string) *TestProject {
	p.files[path] = BuildZip(p.t, entries)
	return p
}

// WithProjectConfig sets the packsmith.yml content for the project.
func (p *TestProject) WithProjectConfig(yaml string) *TestProject {
	p.files["packsmith.yml"] = []byte(yaml)
	return p
}

// Build creates the project directory and all configured files.
// Returns the TestProject for method chaining.
func (p *TestProject) Build() *TestProject {
	p.t.Helper()
	p.Path = p.t.TempDir()
	for path, content := range p.files {
		p.writeFile(path, content)
	}
	return p
}

// writeFile writes a file to the project, creating directories as needed.
func (p *TestProject) writeFile(relPath string, content []byte) {
	p.t.Helper()
	fullPath := filepath.Join(p.Path, filepath.FromSlash(relPath))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		p.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		p.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the project.
// Returns the content as a string.
func (p *TestProject) ReadFile(relPath string) string {
	p.t.Helper()
	fullPath := filepath.Join(p.Path, filepath.FromSlash(relPath))
	content, err := os.ReadFile(fullPath)
	if err != nil {
		p.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the project.
func (p *TestProject) FileExists(relPath string) bool {
	p.t.Helper()
	fullPath := filepath.Join(p.Path, filepath.FromSlash(relPath))
	_, err := os.Stat(fullPath)
	return err == nil
}

// BuildZip assembles an in-memory zip archive from the given entries.
func BuildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s to test archive: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s to test archive: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to finalize test archive: %v", err)
	}
	return buf.Bytes()
}

// MinimalProjectConfig returns a minimal valid packsmith.yml content.
func MinimalProjectConfig() string {
	return "name: Test Project\nnamespace: test\n"
}
