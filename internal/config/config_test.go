package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/colorterm/internal/palette"
	"github.com/alexisbeaulieu97/colorterm/internal/schema"
	cterrors "github.com/alexisbeaulieu97/colorterm/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colorterm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, palette.ModeCubehelix, cfg.Generator.GenerationMode())
	assert.Equal(t, palette.DefaultMinContrast, cfg.Generator.MinContrast)
	assert.Equal(t, schema.TargetIterm, cfg.TargetSchema())
	assert.Equal(t, 30*time.Second, cfg.Export.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  human: true
generator:
  mode: random
  min_contrast: 7
  reset_after: 50
  max_iterations: 5000
target: warp
export:
  endpoint: https://colorterm.example/generate
  timeout: 5s
  output_dir: ./themes
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Human)
	assert.Equal(t, palette.ModeRandom, cfg.Generator.GenerationMode())
	assert.Equal(t, 7.0, cfg.Generator.MinContrast)
	assert.Equal(t, 50, cfg.Generator.ResetAfter)
	assert.Equal(t, schema.TargetWarp, cfg.TargetSchema())
	assert.Equal(t, "https://colorterm.example/generate", cfg.Export.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Export.Timeout)
	assert.Equal(t, "./themes", cfg.Export.OutputDir)
	// untouched keys keep defaults
	assert.Equal(t, 10, cfg.Server.Burst)
}

func TestLoadTrustedProxies(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  trusted_proxies:\n    - 10.0.0.0/8\n    - 192.0.2.7\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.7"}, cfg.Server.TrustedProxies)

	cfg, err = Load(writeConfig(t, "target: warp\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "target: warp\n")
	t.Setenv("COLORTERM_TARGET", "hyper")
	t.Setenv("COLORTERM_EXPORT_ENDPOINT", "http://render.internal:9000/generate")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, schema.TargetHyper, cfg.TargetSchema())
	assert.Equal(t, "http://render.internal:9000/generate", cfg.Export.Endpoint)
}

func TestLoadFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("COLORTERM_LOG_LEVEL", "warn")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--log-level", "error"}))

	cfg, err := Load(writeConfig(t, ""), WithFlag("log.level", flags.Lookup("log-level")))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadWithValue(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""), WithValue("generator.mode", "random"))
	require.NoError(t, err)
	assert.Equal(t, "random", cfg.Generator.Mode)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	var parseErr *cterrors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "log: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)

	var parseErr *cterrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Path)
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"unknown target", "target: kitty\n", "target"},
		{"unknown mode", "generator:\n  mode: sunset\n", "generator.mode"},
		{"contrast too high", "generator:\n  min_contrast: 30\n", "generator.min_contrast"},
		{"reset zero", "generator:\n  reset_after: 0\n", "generator.reset_after"},
		{"iterations below reset", "generator:\n  reset_after: 10\n  max_iterations: 5\n", "generator.max_iterations"},
		{"bad endpoint", "export:\n  endpoint: not a url\n", "export.endpoint"},
		{"bad log level", "log:\n  level: loud\n", "log.level"},
		{"bad addr", "server:\n  addr: nowhere\n", "server.addr"},
		{"zero burst", "server:\n  burst: 0\n", "server.burst"},
		{"bad trusted proxy", "server:\n  trusted_proxies: [\"10.0.0.0/8\", \"proxy.local\"]\n", "server.trusted_proxies[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)

			var ve *cterrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidateNil(t *testing.T) {
	err := Validate(nil)
	var ve *cterrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "config", ve.Field)
}

func TestCustomValidatorTags(t *testing.T) {
	v := GetValidator()
	assert.Same(t, v, GetValidator())

	assert.NoError(t, v.Var("cubehelix", "generation_mode"))
	assert.NoError(t, v.Var("random", "generation_mode"))
	assert.Error(t, v.Var("cubix", "generation_mode"))

	for _, target := range schema.Targets() {
		assert.NoError(t, v.Var(string(target), "target_schema"))
	}
	assert.Error(t, v.Var("kitty", "target_schema"))
}

func TestDumpRoundTrips(t *testing.T) {
	cfg := Default()
	cfg.Target = string(schema.TargetHyper)

	data, err := cfg.Dump()
	require.NoError(t, err)
	assert.Contains(t, string(data), "target: hyper")
	assert.Contains(t, string(data), "timeout: 30s")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "generator")

	loaded, err := Load(writeConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
