package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"srcstats/internal/report"
	"srcstats/internal/scanner"
)

// scanOptions 存放 scan 命令的可配置参数。未显式传入的参数沿用配置文件的值。
type scanOptions struct {
	format        string
	output        string
	workers       int
	maxFileSize   string
	exclude       []string
	noGitignore   bool
	includeVendor bool
	includeHidden bool
	perFile       bool
	noColor       bool
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	srcstats scan .
//	srcstats scan ./src ./include --format json --output result.json
func newScanCmd(state *app) *cobra.Command {
	var options scanOptions

	scanCmd := &cobra.Command{
		Use:   "scan [path...]",
		Short: "扫描目录或文件并输出统计信息",
		Long: "扫描给定的目录或文件（默认当前目录）。\n" +
			"目录中无法识别或读取失败的文件会被跳过；显式指定的文件必须可识别且可读。",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *state.config
			cfg.Scan.Exclude = append([]string(nil), cfg.Scan.Exclude...)

			flags := cmd.Flags()
			overrideString(flags, "format", options.format, &cfg.Output.Format)
			overrideString(flags, "output", options.output, &cfg.Output.Path)
			overrideString(flags, "max-file-size", options.maxFileSize, &cfg.Scan.MaxFileSize)
			overrideBool(flags, "files", options.perFile, &cfg.Scan.PerFile)
			if flags.Changed("workers") {
				cfg.Scan.Workers = options.workers
			}
			if flags.Changed("exclude") {
				cfg.Scan.Exclude = append(cfg.Scan.Exclude, options.exclude...)
			}
			if flags.Changed("no-gitignore") {
				cfg.Scan.Gitignore = !options.noGitignore
			}
			if flags.Changed("include-vendor") {
				cfg.Scan.SkipVendor = !options.includeVendor
			}
			if flags.Changed("include-hidden") {
				cfg.Scan.SkipHidden = !options.includeHidden
			}
			if flags.Changed("no-color") {
				cfg.Output.Color = !options.noColor
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			format, err := report.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}
			maxFileSize, err := cfg.Scan.MaxFileSizeBytes()
			if err != nil {
				return err
			}

			service := scanner.NewService(state.registry, scanner.Options{
				Workers:     cfg.Scan.Workers,
				MaxFileSize: maxFileSize,
				PerFile:     cfg.Scan.PerFile,
				Ignore:      cfg.Scan.IgnoreOptions(),
			}, state.logger)

			result, err := service.ScanPaths(cmd.Context(), args...)
			if err != nil {
				return err
			}

			if cfg.Output.Path != "" {
				if err := report.WriteFile(cfg.Output.Path, format, result); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Report (%s) exported to %s\n", format, cfg.Output.Path)
				return nil
			}

			return report.Render(cmd.OutOrStdout(), format, result, report.TableOptions{Color: cfg.Output.Color})
		},
	}

	flags := scanCmd.Flags()
	flags.StringVar(&options.format, "format", "table", "输出格式: table/json/yaml")
	flags.StringVarP(&options.output, "output", "o", "", "导出文件路径，为空时输出到 stdout")
	flags.IntVar(&options.workers, "workers", 0, "并发 worker 数量，0 表示使用 CPU 核数")
	flags.StringVar(&options.maxFileSize, "max-file-size", "10MiB", "单文件大小上限，例如 512KiB、10MiB，0 表示不限制")
	flags.StringArrayVar(&options.exclude, "exclude", nil, "排除的通配符，可重复指定")
	flags.BoolVar(&options.noGitignore, "no-gitignore", false, "不读取根目录的 .gitignore")
	flags.BoolVar(&options.includeVendor, "include-vendor", false, "统计 vendor/第三方目录")
	flags.BoolVar(&options.includeHidden, "include-hidden", false, "统计以点号开头的文件和目录")
	flags.BoolVar(&options.perFile, "files", false, "输出逐文件明细")
	flags.BoolVar(&options.noColor, "no-color", false, "关闭表格标题颜色")

	return scanCmd
}
