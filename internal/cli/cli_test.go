package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolah/plugforge/internal/session"
)

const specYAML = `
openapi: "3.0.3"
info:
  title: Lingo
  version: "2.1.0"
servers:
  - url: https://lingo.test/v1
paths:
  /translate:
    post:
      operationId: translateText
      tags: [translation]
      responses:
        "200":
          description: OK
  /languages:
    get:
      operationId: listLanguages
      responses:
        "200":
          description: OK
`

func writeSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lingo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(specYAML), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := RootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestPlatformsCommand(t *testing.T) {
	out, _, err := execute(t, "platforms")
	require.NoError(t, err)
	require.Equal(t, "figma\nwordpress\nshopify\n", out)
}

func TestGenerateDryRun(t *testing.T) {
	out, stderr, err := execute(t, "generate", "figma", "-s", writeSpec(t), "--dry-run")
	require.NoError(t, err)
	require.Contains(t, stderr, "Loaded Lingo v2.1.0")
	require.Contains(t, out, "// figma-plugin/manifest.json\n")
	require.Contains(t, out, "// configuration.json\n")
	require.Contains(t, out, "// README.md\n")
}

func TestGenerateWritesBundle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bundle")

	_, stderr, err := execute(t, "generate", "shopify",
		"--spec", writeSpec(t),
		"--output-dir", dir,
		"--ui-style", "minimal",
		"--features", "language-detection",
	)
	require.NoError(t, err)
	require.Contains(t, stderr, "Written: ")

	for _, name := range []string{"shopify.app.toml", "configuration.json", "README.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "configuration.json"))
	require.NoError(t, err)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal(data, &cfg))
	require.NotEmpty(t, cfg)
}

func TestGenerateWordPressFeatures(t *testing.T) {
	out, _, err := execute(t, "generate", "wordpress", "-s", writeSpec(t), "--dry-run",
		"--wordpress-features", "no-such-feature")
	require.NoError(t, err)
	require.Contains(t, out, "// lingo-integration.php\n")
	require.Contains(t, out, "// admin/help.html\n")
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing platform", []string{"generate", "-s", "api.yaml"}, "platform is required"},
		{"unknown platform", []string{"generate", "sketch", "-s", "api.yaml"}, "sketch"},
		{"missing spec", []string{"generate", "figma"}, "spec file is required"},
		{"bad extension", []string{"generate", "figma", "-s", "api.txt"}, "invalid spec"},
		{"bad ui style", []string{"generate", "figma", "-s", "api.yaml", "--ui-style", "fancy"}, "invalid ui style"},
		{"unreadable spec", []string{"generate", "figma", "-s", "missing.yaml"}, "loading spec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestAnalyzeCommand(t *testing.T) {
	out, _, err := execute(t, "analyze", "-s", writeSpec(t), "--wordpress", "--debug", "--purpose", "Multilingual Content")
	require.NoError(t, err)

	var result struct {
		Session   session.Session `json:"session"`
		WordPress *struct {
			DetectedPurpose string `json:"detectedPurpose"`
		} `json:"wordpress"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	require.Equal(t, session.StatusReady, result.Session.Status)
	require.Equal(t, "Multilingual Content", result.Session.UserChoices.ConfirmedPurpose)
	require.True(t, result.Session.UserChoices.AdvancedSettings.DebugMode)
	require.NotEmpty(t, result.Session.RefinedSpec.FocusedEndpoints)
	require.NotNil(t, result.WordPress)
}
