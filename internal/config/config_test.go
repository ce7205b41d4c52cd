package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lcaengine/internal/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_Defaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "global", cfg.Engine.DefaultRegion)
	assert.Equal(t, 4, cfg.Engine.Concurrency)
	assert.Equal(t, "LME", cfg.Valuation.Market)
	assert.Equal(t, 2*time.Second, cfg.Valuation.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"bad format", func(c *Config) { c.Output.DefaultFormat = "xml" }, ErrInvalidOutputFormat},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, ErrInvalidLogLevel},
		{"bad log format", func(c *Config) { c.Logging.Format = "logfmt" }, ErrInvalidLogFormat},
		{"zero concurrency", func(c *Config) { c.Engine.Concurrency = 0 }, ErrInvalidConcurrency},
		{"ttl too short", func(c *Config) { c.Valuation.CacheTTLSeconds = 10 }, ErrInvalidCacheTTL},
		{"ttl too long", func(c *Config) { c.Valuation.CacheTTLSeconds = 604801 }, ErrInvalidCacheTTL},
		{"zero timeout", func(c *Config) { c.Valuation.Timeout = 0 }, ErrInvalidTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := New()
	cfg.Output.DefaultFormat = "xml"
	cfg.Engine.Concurrency = -1

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidOutputFormat)
	require.ErrorIs(t, err, ErrInvalidConcurrency)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDefaultRegion, "India")
	t.Setenv(EnvOutputFormat, "json")
	t.Setenv(EnvPriceCacheTTL, "900")
	t.Setenv(EnvValuationTimeoutMS, "250")

	cfg := New()
	require.NoError(t, cfg.ApplyEnvOverrides())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "India", cfg.Engine.DefaultRegion)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, 900, cfg.Valuation.CacheTTLSeconds)
	assert.Equal(t, 250*time.Millisecond, cfg.Valuation.Timeout)
}

func TestApplyEnvOverrides_CacheTTL(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"900", 900, false},
		{"15m", 900, false},
		{"soon", 0, true},
		{"10", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(EnvPriceCacheTTL, tt.value)
			cfg := New()
			err := cfg.ApplyEnvOverrides()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Valuation.CacheTTLSeconds)
		})
	}
}

func TestShallowMergeYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
engine:
  default_region: China
valuation:
  market: COMEX
  timeout: 500ms
unknown_section:
  foo: bar
`)

	cfg := New()
	cfg.Engine.Concurrency = 16
	require.NoError(t, ShallowMergeYAML(cfg, path))

	assert.Equal(t, "China", cfg.Engine.DefaultRegion)
	// Section replaced, omitted fields come back as defaults.
	assert.Equal(t, DefaultConcurrency, cfg.Engine.Concurrency)
	assert.Equal(t, "COMEX", cfg.Valuation.Market)
	assert.Equal(t, 500*time.Millisecond, cfg.Valuation.Timeout)
	assert.Equal(t, DefaultCacheTTL, cfg.Valuation.CacheTTLSeconds)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	require.Error(t, ShallowMergeYAML(nil, "x"))
	require.Error(t, ShallowMergeYAML(New(), filepath.Join(t.TempDir(), "missing.yaml")))

	bad := writeFile(t, t.TempDir(), "bad.yaml", "engine: [unclosed")
	require.Error(t, ShallowMergeYAML(New(), bad))

	wrongShape := writeFile(t, t.TempDir(), "shape.yaml", "engine: [1, 2]\n")
	require.Error(t, ShallowMergeYAML(New(), wrongShape))

	empty := writeFile(t, t.TempDir(), "empty.yaml", "# nothing\n")
	cfg := New()
	require.NoError(t, ShallowMergeYAML(cfg, empty))
	assert.Equal(t, New(), cfg)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "output:\n  default_format: ndjson\n")
	t.Setenv(EnvDefaultRegion, "France")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ndjson", cfg.Output.DefaultFormat)
	assert.Equal(t, "France", cfg.Engine.DefaultRegion)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoad_DefaultPathFromEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "engine:\n  concurrency: 8\n")
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvHome, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Engine.Concurrency)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "engine:\n  concurrency: 0\n")
	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConcurrency)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := New()
	cfg.Engine.DefaultRegion = "United States"
	cfg.Valuation.Timeout = 750 * time.Millisecond
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)
	t.Setenv(EnvConfigPath, "")

	got, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	p, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), p)

	cacheDir, err := New().GetCacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cache", "prices"), cacheDir)

	t.Setenv(EnvConfigPath, "/etc/lca.yaml")
	p, err = GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/lca.yaml", p)

	require.NoError(t, EnsureConfigDir())
}

func TestGlobalConfig(t *testing.T) {
	t.Cleanup(ResetGlobalConfigForTest)

	ResetGlobalConfigForTest()
	assert.Equal(t, New(), GetGlobalConfig())

	custom := New()
	custom.Engine.DefaultRegion = "India"
	SetGlobalConfig(custom)
	assert.Same(t, custom, GetGlobalConfig())
}

func TestToLoggingConfig(t *testing.T) {
	tests := []struct {
		file       string
		wantOutput string
		wantFile   string
	}{
		{"", logging.OutputStderr, ""},
		{"file", logging.OutputFile, fallbackLogFile},
		{"/var/log/lca.log", logging.OutputFile, "/var/log/lca.log"},
	}
	for _, tt := range tests {
		lc := LoggingConfig{Level: "debug", Format: "json", File: tt.file}.ToLoggingConfig()
		assert.Equal(t, tt.wantOutput, lc.Output, tt.file)
		assert.Equal(t, tt.wantFile, lc.File, tt.file)
		assert.Equal(t, "debug", lc.Level)
	}
}

func TestInitLogger_File(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "lca.log")
	res := InitLogger(LoggingConfig{Level: "debug", Format: "json", File: logPath})
	t.Cleanup(CloseLogFile)

	require.True(t, res.UsingFile)
	l := GetLogger()
	l.Debug().Msg("hello from test")
	CloseLogFile()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")

	SetLogLevel("warn")
	assert.Equal(t, "warn", GetLogger().GetLevel().String())
}
