package bundle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolah/plugforge/internal/model"
)

func sampleTransformation() *model.PlatformTransformation {
	return &model.PlatformTransformation{
		Platform: "figma",
		CodeFiles: []model.CodeFile{
			{Path: "figma-plugin/manifest.json", Content: `{"name":"Demo"}`},
			{Path: "figma-plugin/code.js", Content: "figma.showUI(__html__);"},
		},
		Configuration: map[string]any{"zeta": 1, "alpha": true},
		Documentation: "# Demo\n",
	}
}

func TestEntries(t *testing.T) {
	entries, err := Entries(sampleTransformation())
	require.NoError(t, err)

	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	require.Equal(t, []string{
		"figma-plugin/manifest.json",
		"figma-plugin/code.js",
		ConfigurationFile,
		DocumentationFile,
	}, paths)
	require.Equal(t, "{\n  \"alpha\": true,\n  \"zeta\": 1\n}\n", string(entries[2].Content))
}

func TestEntriesNilConfiguration(t *testing.T) {
	tr := sampleTransformation()
	tr.Configuration = nil

	entries, err := Entries(tr)
	require.NoError(t, err)
	require.Equal(t, "{}\n", string(entries[2].Content))
}

func TestEntriesRejectsBadPaths(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"parent", "../escape.js"},
		{"absolute", "/etc/passwd"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := sampleTransformation()
			tr.CodeFiles = append(tr.CodeFiles, model.CodeFile{Path: tt.path})
			_, err := Entries(tr)
			require.ErrorIs(t, err, ErrUnsafePath)
		})
	}

	t.Run("duplicate", func(t *testing.T) {
		tr := sampleTransformation()
		tr.CodeFiles = append(tr.CodeFiles, model.CodeFile{Path: DocumentationFile})
		_, err := Entries(tr)
		require.ErrorContains(t, err, "duplicate bundle path")
	})
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	written, err := Write(dir, sampleTransformation())
	require.NoError(t, err)
	require.Len(t, written, 4)

	data, err := os.ReadFile(filepath.Join(dir, "figma-plugin", "code.js"))
	require.NoError(t, err)
	require.Equal(t, "figma.showUI(__html__);", string(data))

	data, err = os.ReadFile(filepath.Join(dir, DocumentationFile))
	require.NoError(t, err)
	require.Equal(t, "# Demo\n", string(data))
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, sampleTransformation()))

	out := buf.String()
	require.Contains(t, out, "// figma-plugin/manifest.json\n{\"name\":\"Demo\"}\n")
	require.Contains(t, out, "// README.md\n# Demo\n")
}
