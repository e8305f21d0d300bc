// Package bundle lays a platform transformation out as a file tree: the
// generated code files, configuration.json and the documentation as
// README.md.
package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kolah/plugforge/internal/model"
)

const (
	ConfigurationFile = "configuration.json"
	DocumentationFile = "README.md"
)

var ErrUnsafePath = errors.New("unsafe bundle path")

type Entry struct {
	Path    string
	Content []byte
}

// Entries returns the files of the bundle in output order. Paths are
// slash separated and must stay inside the bundle root.
func Entries(t *model.PlatformTransformation) ([]Entry, error) {
	entries := make([]Entry, 0, len(t.CodeFiles)+2)
	for _, f := range t.CodeFiles {
		entries = append(entries, Entry{Path: f.Path, Content: []byte(f.Content)})
	}

	cfg := t.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", ConfigurationFile, err)
	}
	entries = append(entries,
		Entry{Path: ConfigurationFile, Content: append(data, '\n')},
		Entry{Path: DocumentationFile, Content: []byte(t.Documentation)},
	)

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !filepath.IsLocal(filepath.FromSlash(e.Path)) {
			return nil, fmt.Errorf("%w: %q", ErrUnsafePath, e.Path)
		}
		if seen[e.Path] {
			return nil, fmt.Errorf("duplicate bundle path %q", e.Path)
		}
		seen[e.Path] = true
	}
	return entries, nil
}

// Write stores the bundle under dir and returns the written paths.
func Write(dir string, t *model.PlatformTransformation) ([]string, error) {
	entries, err := Entries(t)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	written := make([]string, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(dir, filepath.FromSlash(e.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return written, fmt.Errorf("creating directory for %s: %w", e.Path, err)
		}
		if err := os.WriteFile(path, e.Content, 0644); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// Print writes every bundle file to w, each preceded by a path header.
func Print(w io.Writer, t *model.PlatformTransformation) error {
	entries, err := Entries(t)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "// %s\n%s\n", e.Path, e.Content); err != nil {
			return err
		}
	}
	return nil
}
