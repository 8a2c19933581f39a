package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Analysis.BlockScopes)
	assert.False(t, cfg.Analysis.AllowFunctionRedeclaration)
	assert.Equal(t, FormatText, cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, "warn", cfg.Output.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestDecodeTOML(t *testing.T) {
	content := `
[analysis]
block_scopes = false

[output]
format = "json"
`
	cfg := Default()
	require.NoError(t, cfg.decode([]byte(content), ".toml"))

	assert.False(t, cfg.Analysis.BlockScopes)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	// Keys not present keep their defaults.
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, "warn", cfg.Output.LogLevel)
}

func TestDecodeYAML(t *testing.T) {
	content := `
analysis:
  allow_function_redeclaration: true
output:
  color: false
  log_level: debug
`
	for _, ext := range []string{".yaml", ".yml", ".YAML"} {
		cfg := Default()
		require.NoError(t, cfg.decode([]byte(content), ext), ext)

		assert.True(t, cfg.Analysis.AllowFunctionRedeclaration)
		assert.True(t, cfg.Analysis.BlockScopes)
		assert.False(t, cfg.Output.Color)
		assert.Equal(t, "debug", cfg.Output.LogLevel)
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.decode(nil, ".yaml"))
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := cfg.decode([]byte("[analysis]\nblock_scope = true\n"), ".toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis.block_scope")

	err = cfg.decode([]byte("output:\n  colour: true\n"), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestDecodeSyntaxError(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.decode([]byte("[analysis"), ".toml"))
	assert.Error(t, cfg.decode([]byte("analysis: [1, 2"), ".yaml"))
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvBlockScopes:                "false",
		EnvAllowFunctionRedeclaration: "1",
		EnvColor:                      "f",
		EnvFormat:                     "yaml",
		EnvLogLevel:                   "error",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.False(t, cfg.Analysis.BlockScopes)
	assert.True(t, cfg.Analysis.AllowFunctionRedeclaration)
	assert.False(t, cfg.Output.Color)
	assert.Equal(t, FormatYAML, cfg.Output.Format)
	assert.Equal(t, "error", cfg.Output.LogLevel)
}

func TestApplyEnvUnset(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(noEnv))
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnvInvalidBool(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(name string) (string, bool) {
		if name == EnvBlockScopes {
			return "sometimes", true
		}
		return "", false
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvBlockScopes)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "JSON"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, FormatJSON, cfg.Output.Format)

	cfg.Output.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Output.LogLevel = "loud"
	assert.Error(t, cfg.Validate())
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		level, err := OutputConfig{LogLevel: tt.name}.Level()
		require.NoError(t, err)
		assert.Equal(t, tt.expected, level)
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "sprout.toml", "[analysis]\nallow_function_redeclaration = true\n")
	t.Setenv(EnvFormat, "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Analysis.AllowFunctionRedeclaration)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "info")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Output.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, "bad.yaml", "output:\n  format: xml\n")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Analysis.AllowFunctionRedeclaration = true
	logger := slog.New(slog.DiscardHandler)

	opts := cfg.Options(logger)
	assert.True(t, opts.BlockScopes)
	assert.True(t, opts.AllowFunctionRedeclaration)
	assert.Same(t, logger, opts.Logger)
}

func TestLoadEnvFile(t *testing.T) {
	const name = "SPROUT_CONFIG_TEST_FROM_DOTENV"
	t.Cleanup(func() { os.Unsetenv(name) })

	path := writeFile(t, ".env", name+"=from-file\n")
	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv(name))
}

func TestLoadEnvFileKeepsExisting(t *testing.T) {
	const name = "SPROUT_CONFIG_TEST_EXISTING"
	t.Setenv(name, "from-env")

	path := writeFile(t, ".env", name+"=from-file\n")
	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-env", os.Getenv(name))
}

func TestLoadEnvFileMissing(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))
}
