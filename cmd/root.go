// Package cmd 提供 srcstats 的命令行入口与子命令编排。
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"srcstats/internal/config"
	"srcstats/internal/languages"
	"srcstats/internal/logging"
)

// rootOptions 存放全局参数。
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// app 是子命令共享的运行时状态，在 PersistentPreRunE 中完成初始化。
type app struct {
	registry *languages.Registry
	options  rootOptions
	config   *config.Config
	logger   *zap.Logger
}

// Execute 组装根命令并执行。收到中断信号时取消正在进行的扫描。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd(version, languages.NewRegistry())
	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string, registry *languages.Registry) *cobra.Command {
	state := &app{
		registry: registry,
		logger:   zap.NewNop(),
	}

	rootCmd := &cobra.Command{
		Use:   "srcstats",
		Short: "C 系源码的行长度与文件长度统计工具",
		Long: "srcstats 逐字节扫描 C++、C#、Go 源码，去掉注释后统计\n" +
			"每个文件的行数与每行的字节数（计数/总和/最小/最大/平均），\n" +
			"同时给出含注释与不含注释两种口径。",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.init(cmd.Flags())
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = state.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&state.options.configPath, "config", "", "配置文件路径，默认查找 ./.srcstats.yaml 与 ~/.srcstats.yaml")
	flags.StringVar(&state.options.logLevel, "log-level", config.DefaultLoggingLevel, "日志级别: debug/info/warn/error")
	flags.StringVar(&state.options.logFormat, "log-format", config.DefaultLoggingFormat, "日志格式: console 或 json")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(registry))
	rootCmd.AddCommand(newScanCmd(state))
	rootCmd.AddCommand(newDecommentCmd(state))

	return rootCmd
}

// init 加载配置并创建 logger。命令行参数优先于配置文件与环境变量。
func (a *app) init(flags *pflag.FlagSet) error {
	cfg, err := config.LoadConfig(a.options.configPath)
	if err != nil {
		return err
	}

	overrideString(flags, "log-level", a.options.logLevel, &cfg.Logging.Level)
	overrideString(flags, "log-format", a.options.logFormat, &cfg.Logging.Format)

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}

	a.config = cfg
	a.logger = logger
	return nil
}

// overrideString 仅在用户显式传入参数时覆盖配置值。
func overrideString(flags *pflag.FlagSet, name string, value string, target *string) {
	if flags.Changed(name) {
		*target = value
	}
}

// overrideBool 仅在用户显式传入参数时覆盖配置值。
func overrideBool(flags *pflag.FlagSet, name string, value bool, target *bool) {
	if flags.Changed(name) {
		*target = value
	}
}
