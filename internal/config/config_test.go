package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.False(t, cfg.Output.DMS)
	assert.Equal(t, 6, cfg.Output.Precision)
}

func TestLoad_NilFlags(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_CustomEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ISRIDGEO_LOG_LEVEL", "debug")
	t.Setenv("ISRIDGEO_LOG_FORMAT", "json")
	t.Setenv("ISRIDGEO_OUTPUT_FORMAT", "json")
	t.Setenv("ISRIDGEO_OUTPUT_DMS", "true")
	t.Setenv("ISRIDGEO_OUTPUT_PRECISION", "3")

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.DMS)
	assert.Equal(t, 3, cfg.Output.Precision)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ISRIDGEO_OUTPUT_FORMAT", "json")

	cfg, err := Load(newFlags(t, "-o", "text", "--precision", "2", "--dms"))
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 2, cfg.Output.Precision)
	assert.True(t, cfg.Output.DMS)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "isridgeo.yaml"),
		[]byte("log:\n  level: warn\noutput:\n  precision: 4\n"), 0o600))

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Output.Precision)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Cleanup(func() { os.Unsetenv("ISRIDGEO_LOG_FORMAT") })
	t.Setenv("ISRIDGEO_OUTPUT_FORMAT", "json")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("ISRIDGEO_LOG_FORMAT=json\nISRIDGEO_OUTPUT_FORMAT=kml\n"), 0o600))

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	// variables already in the environment win over .env
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: json\n"), 0o600))

	cfg, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)

	_, err = Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"log level", "ISRIDGEO_LOG_LEVEL", "verbose"},
		{"log format", "ISRIDGEO_LOG_FORMAT", "xml"},
		{"output format", "ISRIDGEO_OUTPUT_FORMAT", "csv"},
		{"precision", "ISRIDGEO_OUTPUT_PRECISION", "20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			_, err := Load(newFlags(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}
