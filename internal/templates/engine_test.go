package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"text/template"

	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"figma/manifest.json.tmpl": {Data: []byte(`{"name": "{{ .Name }}"}`)},
		"shared/header.tmpl":       {Data: []byte(`# {{ upper .Name }}`)},
		"README.md":                {Data: []byte("not a template")},
	}
}

func testFuncs() template.FuncMap {
	return template.FuncMap{"upper": strings.ToUpper}
}

func TestEngineExecute(t *testing.T) {
	e, err := NewEngine(testFS(), "", testFuncs())
	require.NoError(t, err)

	require.Equal(t, []string{"figma/manifest.json", "shared/header"}, e.Names())
	require.True(t, e.Has("figma/manifest.json"))
	require.False(t, e.Has("README.md"))

	out, err := e.Execute("figma/manifest.json", map[string]string{"Name": "Acme"})
	require.NoError(t, err)
	require.Equal(t, `{"name": "Acme"}`, out)

	out, err = e.Execute("shared/header", struct{ Name string }{"acme"})
	require.NoError(t, err)
	require.Equal(t, "# ACME", out)
}

func TestEngineErrors(t *testing.T) {
	e, err := NewEngine(testFS(), "", testFuncs())
	require.NoError(t, err)

	_, err = e.Execute("missing", nil)
	require.ErrorContains(t, err, "template not found: missing")

	_, err = e.Execute("figma/manifest.json", map[string]string{})
	require.ErrorContains(t, err, "executing template figma/manifest.json")

	broken := fstest.MapFS{"bad.tmpl": {Data: []byte("{{ .Name ")}}
	_, err = NewEngine(broken, "", nil)
	require.ErrorContains(t, err, "parsing embedded template bad.tmpl")
}

func TestEngineCustomDirOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "figma"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "figma", "manifest.json.tmpl"), []byte(`custom {{ .Name }}`), 0o644))

	e, err := NewEngine(testFS(), dir, testFuncs())
	require.NoError(t, err)

	out, err := e.Execute("figma/manifest.json", map[string]string{"Name": "Acme"})
	require.NoError(t, err)
	require.Equal(t, "custom Acme", out)
	require.Len(t, e.Names(), 2)
}

func TestEngineMissingCustomDirIsIgnored(t *testing.T) {
	e, err := NewEngine(testFS(), filepath.Join(t.TempDir(), "nope"), testFuncs())
	require.NoError(t, err)
	require.Len(t, e.Names(), 2)
}
