// Package config 负责加载 srcstats 的配置：默认值、配置文件、环境变量。
// 命令行参数覆盖在 cmd 层完成。
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap/zapcore"

	"srcstats/internal/ignore"
	"srcstats/internal/report"
)

// Config 是顶层配置，字段使用 mapstructure 标签供 viper 反序列化。
type Config struct {
	Scan    ScanConfig    `mapstructure:"scan"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ScanConfig 是扫描相关配置。
type ScanConfig struct {
	Workers     int      `mapstructure:"workers"`
	MaxFileSize string   `mapstructure:"max_file_size"`
	Exclude     []string `mapstructure:"exclude"`
	IgnoreDirs  []string `mapstructure:"ignore_dirs"`
	Gitignore   bool     `mapstructure:"gitignore"`
	SkipVendor  bool     `mapstructure:"skip_vendor"`
	SkipHidden  bool     `mapstructure:"skip_hidden"`
	PerFile     bool     `mapstructure:"per_file"`
}

// OutputConfig 是输出相关配置。
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
	Color  bool   `mapstructure:"color"`
}

// LoggingConfig 是日志相关配置。
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// 默认值。
const (
	DefaultScanWorkers     = 0
	DefaultScanMaxFileSize = "10MiB"
	DefaultScanGitignore   = true
	DefaultScanSkipVendor  = true
	DefaultScanSkipHidden  = true
	DefaultScanPerFile     = false
	DefaultOutputFormat    = "table"
	DefaultOutputPath      = ""
	DefaultOutputColor     = true
	DefaultLoggingLevel    = "warn"
	DefaultLoggingFormat   = "console"
)

// 配置校验失败时返回的哨兵错误。
var (
	// ErrInvalidWorkers 表示 worker 数为负数。
	ErrInvalidWorkers = errors.New("scan.workers must be non-negative")
	// ErrInvalidMaxFileSize 表示文件大小上限无法解析。
	ErrInvalidMaxFileSize = errors.New("scan.max_file_size must be a byte size such as 10MiB")
	// ErrInvalidOutputFormat 表示输出格式不受支持。
	ErrInvalidOutputFormat = errors.New("output.format must be one of table, json, yaml")
	// ErrInvalidLogLevel 表示日志级别不受支持。
	ErrInvalidLogLevel = errors.New("logging.level must be one of debug, info, warn, error")
	// ErrInvalidLogFormat 表示日志格式不受支持。
	ErrInvalidLogFormat = errors.New("logging.format must be console or json")
)

// Validate 检查配置约束，返回遇到的第一个错误。
func (c *Config) Validate() error {
	if c.Scan.Workers < 0 {
		return ErrInvalidWorkers
	}
	if _, err := c.Scan.MaxFileSizeBytes(); err != nil {
		return err
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, c.Output.Format)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	return nil
}

// MaxFileSizeBytes 把 max_file_size 解析为字节数。空字符串和 0 表示不限制。
func (s ScanConfig) MaxFileSizeBytes() (uint64, error) {
	text := strings.TrimSpace(s.MaxFileSize)
	if text == "" {
		return 0, nil
	}
	size, err := humanize.ParseBytes(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxFileSize, s.MaxFileSize)
	}
	return size, nil
}

// IgnoreOptions 把扫描配置转换为忽略规则。
func (s ScanConfig) IgnoreOptions() ignore.Options {
	return ignore.Options{
		Dirs:       s.IgnoreDirs,
		Patterns:   s.Exclude,
		Gitignore:  s.Gitignore,
		SkipVendor: s.SkipVendor,
		SkipHidden: s.SkipHidden,
	}
}
