package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"srcstats/internal/ignore"
)

// configName 是不带扩展名的配置文件名。
const configName = ".srcstats"

// configType 是配置文件格式。
const configType = "yaml"

// envPrefix 是环境变量前缀，例如 SRCSTATS_SCAN_WORKERS。
const envPrefix = "SRCSTATS"

// envKeySeparator 是嵌套 key 在环境变量名中的分隔符。
const envKeySeparator = "_"

// LoadConfig 依次应用默认值、配置文件和环境变量。
// configPath 非空时直接使用该文件，否则在当前目录和 $HOME 中查找。
// 找不到配置文件不是错误。
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	if err := viperCfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viperCfg.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("scan.workers", DefaultScanWorkers)
	viperCfg.SetDefault("scan.max_file_size", DefaultScanMaxFileSize)
	viperCfg.SetDefault("scan.exclude", []string{})
	viperCfg.SetDefault("scan.ignore_dirs", ignore.DefaultDirs)
	viperCfg.SetDefault("scan.gitignore", DefaultScanGitignore)
	viperCfg.SetDefault("scan.skip_vendor", DefaultScanSkipVendor)
	viperCfg.SetDefault("scan.skip_hidden", DefaultScanSkipHidden)
	viperCfg.SetDefault("scan.per_file", DefaultScanPerFile)

	viperCfg.SetDefault("output.format", DefaultOutputFormat)
	viperCfg.SetDefault("output.path", DefaultOutputPath)
	viperCfg.SetDefault("output.color", DefaultOutputColor)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.format", DefaultLoggingFormat)
}
