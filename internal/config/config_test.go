package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srcstats/internal/config"
	"srcstats/internal/ignore"
)

func validConfig() config.Config {
	return config.Config{
		Scan: config.ScanConfig{
			Workers:     4,
			MaxFileSize: "1MiB",
		},
		Output: config.OutputConfig{
			Format: "json",
		},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "srcstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate_ValidConfig_NoError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_InvalidValues_ReturnError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{"negative workers", func(c *config.Config) { c.Scan.Workers = -1 }, config.ErrInvalidWorkers},
		{"bad max file size", func(c *config.Config) { c.Scan.MaxFileSize = "lots" }, config.ErrInvalidMaxFileSize},
		{"bad output format", func(c *config.Config) { c.Output.Format = "xml" }, config.ErrInvalidOutputFormat},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "loud" }, config.ErrInvalidLogLevel},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "logfmt" }, config.ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestMaxFileSizeBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want uint64
	}{
		{"10MiB", 10 << 20},
		{"1MB", 1000000},
		{"512", 512},
		{"", 0},
		{"0", 0},
	}

	for _, tt := range tests {
		got, err := config.ScanConfig{MaxFileSize: tt.text}.MaxFileSizeBytes()
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfigFile(t, "# nothing here\n"))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultScanWorkers, cfg.Scan.Workers)
	assert.Equal(t, config.DefaultScanMaxFileSize, cfg.Scan.MaxFileSize)
	assert.Equal(t, ignore.DefaultDirs, cfg.Scan.IgnoreDirs)
	assert.True(t, cfg.Scan.Gitignore)
	assert.True(t, cfg.Scan.SkipVendor)
	assert.False(t, cfg.Scan.PerFile)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadConfig_File_OverridesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfigFile(t, `
scan:
  workers: 3
  max_file_size: 2MiB
  exclude:
    - "*_generated.cpp"
  gitignore: false
  per_file: true
output:
  format: yaml
  path: out/report.yaml
logging:
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Scan.Workers)
	assert.Equal(t, []string{"*_generated.cpp"}, cfg.Scan.Exclude)
	assert.False(t, cfg.Scan.Gitignore)
	assert.True(t, cfg.Scan.PerFile)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, "out/report.yaml", cfg.Output.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)

	size, err := cfg.Scan.MaxFileSizeBytes()
	require.NoError(t, err)
	assert.Equal(t, uint64(2<<20), size)

	options := cfg.Scan.IgnoreOptions()
	assert.Equal(t, []string{"*_generated.cpp"}, options.Patterns)
	assert.False(t, options.Gitignore)
	assert.True(t, options.SkipVendor)
}

func TestLoadConfig_Env_OverridesFile(t *testing.T) {
	t.Setenv("SRCSTATS_SCAN_WORKERS", "7")
	t.Setenv("SRCSTATS_OUTPUT_FORMAT", "json")

	cfg, err := config.LoadConfig(writeConfigFile(t, "scan:\n  workers: 3\n"))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Scan.Workers)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadConfig_InvalidValue_ReturnsValidationError(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfigFile(t, "output:\n  format: xml\n"))
	require.ErrorIs(t, err, config.ErrInvalidOutputFormat)
}

func TestLoadConfig_MalformedFile_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfigFile(t, "scan: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
