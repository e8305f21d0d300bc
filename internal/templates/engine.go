// Package templates loads the named file templates used by the platform
// transformers.
package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
)

const templateExt = ".tmpl"

type Engine interface {
	Execute(name string, data any) (string, error)
}

// TextTemplateEngine parses every .tmpl file of a file system into one
// template set. Templates are addressed by their slash-separated path without
// the extension, e.g. "wordpress/plugin.php".
type TextTemplateEngine struct {
	templates *template.Template
	funcs     template.FuncMap
	source    fs.FS
	customDir string
	names     []string
}

// NewEngine loads templates from source and then from customDir, if set.
// A custom template with the same name replaces the built-in one.
func NewEngine(source fs.FS, customDir string, funcs template.FuncMap) (*TextTemplateEngine, error) {
	e := &TextTemplateEngine{
		source:    source,
		customDir: customDir,
		funcs:     funcs,
	}
	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *TextTemplateEngine) load() error {
	e.templates = template.New("").Funcs(e.funcs).Option("missingkey=error")

	if err := e.loadFS(e.source, "embedded"); err != nil {
		return err
	}

	if e.customDir != "" {
		if _, err := os.Stat(e.customDir); err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("loading custom templates: %w", err)
		}
		if err := e.loadFS(os.DirFS(e.customDir), "custom"); err != nil {
			return err
		}
	}

	slices.Sort(e.names)
	e.names = slices.Compact(e.names)
	return nil
}

func (e *TextTemplateEngine) loadFS(fsys fs.FS, kind string) error {
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, templateExt) {
			return nil
		}
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading %s template %s: %w", kind, path, err)
		}
		name := strings.TrimSuffix(filepath.ToSlash(path), templateExt)
		if _, err := e.templates.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("parsing %s template %s: %w", kind, path, err)
		}
		e.names = append(e.names, name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("loading %s templates: %w", kind, err)
	}
	return nil
}

func (e *TextTemplateEngine) Execute(name string, data any) (string, error) {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return buf.String(), nil
}

// Names returns the sorted names of all loaded templates.
func (e *TextTemplateEngine) Names() []string {
	return slices.Clone(e.names)
}

// Has reports whether a template with the given name is loaded.
func (e *TextTemplateEngine) Has(name string) bool {
	return e.templates.Lookup(name) != nil
}
