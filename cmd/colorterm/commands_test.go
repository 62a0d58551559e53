package main

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/colorterm/internal/render"
	"github.com/alexisbeaulieu97/colorterm/internal/server"
	cterrors "github.com/alexisbeaulieu97/colorterm/pkg/errors"
)

// execute runs the root command against an isolated config file so a user's
// colorterm.yaml never leaks into a test.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "colorterm.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: error\n"), 0o644))

	root := newRootCmd(NewAppContext())
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateJSON(t *testing.T) {
	out, err := execute(t, "generate", "--format", "json", "--count", "2")
	require.NoError(t, err)

	var palettes []generatedPalette
	require.NoError(t, json.Unmarshal([]byte(out), &palettes))
	require.Len(t, palettes, 2)

	for _, p := range palettes {
		assert.Equal(t, "iterm", p.Target)
		assert.Equal(t, "cubehelix", p.Mode)
		assert.Len(t, p.Colors, 5)
		assert.NotEmpty(t, p.ID)
		assert.InDelta(t, 1.0, p.SelectedAlpha, 1e-9)
	}
	assert.NotEqual(t, palettes[0].ID, palettes[1].ID)
}

func TestGenerateYAMLForWarp(t *testing.T) {
	out, err := execute(t, "generate", "--format", "yaml", "--target", "warp", "--mode", "random")
	require.NoError(t, err)

	var palettes []generatedPalette
	require.NoError(t, yaml.Unmarshal([]byte(out), &palettes))
	require.Len(t, palettes, 1)
	assert.Equal(t, "warp", palettes[0].Target)
	assert.Equal(t, "random", palettes[0].Mode)
	assert.Contains(t, palettes[0].Colors, "accent")
	assert.Len(t, palettes[0].Colors, 3)
}

func TestGenerateText(t *testing.T) {
	out, err := execute(t, "generate", "--target", "hyper")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "# cubehelix hyper "))
	assert.True(t, strings.HasPrefix(lines[1], "background  rgba("))
	assert.True(t, strings.HasPrefix(lines[3], "selected    rgba("))
}

func TestGenerateRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "generate", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	_, err = execute(t, "generate", "--count", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count must be at least 1")
}

func TestUnknownTargetFailsValidation(t *testing.T) {
	_, err := execute(t, "generate", "--target", "kitty")
	require.Error(t, err)

	var verr *cterrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "target", verr.Field)
}

func TestRoles(t *testing.T) {
	out, err := execute(t, "roles", "--target", "warp")
	require.NoError(t, err)
	assert.Contains(t, out, "TARGET")
	assert.Regexp(t, `warp\s+accent\s+2\s+\*`, out)
	assert.NotContains(t, out, "iterm")

	out, err = execute(t, "roles", "--all")
	require.NoError(t, err)
	assert.Regexp(t, `iterm\s+selectedText\s+4`, out)
	assert.Regexp(t, `hyper\s+selected\s+3\s+\*`, out)
}

func TestRenderWritesThemeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes", "colorterm.hyper.js")

	out, err := execute(t, "render", "--target", "hyper", "--out", path)
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backgroundColor")
}

func TestRenderDiffDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colorterm.yaml")

	out, err := execute(t, "render", "--target", "warp", "--out", path, "--diff")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "--- "+path+"\n+++ "+path+" (new)\n"))
	assert.Contains(t, out, "+accent: ")

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestExportAgainstRenderService(t *testing.T) {
	r, err := render.New()
	require.NoError(t, err)
	srv := httptest.NewServer(server.New(server.Config{RateLimit: 100, Burst: 100}, r, nil).Handler())
	defer srv.Close()

	dir := t.TempDir()
	out, err := execute(t, "export", "--target", "warp", "--endpoint", srv.URL+"/generate", "--out", dir)
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(dir, "colorterm-warp.zip"), path)

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 2)
	assert.Equal(t, render.InstallFilename, zr.File[0].Name)
	assert.Equal(t, "colorterm.yaml", zr.File[1].Name)
}

func TestExportUnreachableService(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	_, err := execute(t, "export", "--endpoint", url+"/generate", "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to export")
}

func TestConfigCommandHonoursEnvironment(t *testing.T) {
	t.Setenv("COLORTERM_TARGET", "hyper")
	t.Setenv("COLORTERM_EXPORT_ENDPOINT", "http://render.internal:9000/generate")

	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "target: hyper")
	assert.Contains(t, out, "endpoint: http://render.internal:9000/generate")
	assert.Contains(t, out, "level: error")
}

func TestEditFallsBackToGenerateWithoutTerminal(t *testing.T) {
	original := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = original })

	for _, args := range [][]string{{"edit", "--target", "warp"}, {}} {
		out, err := execute(t, args...)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "# cubehelix "), "args %v", args)
	}
}
