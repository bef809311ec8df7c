package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"srcstats/internal/decomment"
	"srcstats/internal/normalize"
	"srcstats/internal/scanner"
)

// decommentOptions 存放 decomment 命令的参数。
type decommentOptions struct {
	dialect   string
	normalize bool
}

// newDecommentCmd 创建 decomment 子命令，输出去掉注释后的源码，便于核对统计口径。
// 示例：
//
//	srcstats decomment main.cpp
//	cat Program.cs | srcstats decomment - --dialect csharp --normalize
func newDecommentCmd(state *app) *cobra.Command {
	var options decommentOptions

	decommentCmd := &cobra.Command{
		Use:   "decomment <file|->",
		Short: "输出去掉注释后的文件内容",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			dialect, err := resolveDialect(state, path, options.dialect)
			if err != nil {
				return err
			}

			data, err := readSource(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			if options.normalize {
				data = normalize.ControlBytes(data)
			}
			data = decomment.InPlace(data, dialect)
			if options.normalize {
				data = normalize.Lines(data)
				if len(data) > 0 {
					data = append(data, '\n')
				}
			}

			state.logger.Debug("decommented",
				zap.String("path", path),
				zap.Stringer("dialect", dialect),
				zap.Int("bytes", len(data)),
			)

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	names := make([]string, 0, len(decomment.Dialects()))
	for _, dialect := range decomment.Dialects() {
		names = append(names, dialect.String())
	}

	flags := decommentCmd.Flags()
	flags.StringVar(&options.dialect, "dialect", "", "指定方言: "+strings.Join(names, "/")+"，默认按后缀识别")
	flags.BoolVar(&options.normalize, "normalize", false, "同时过滤控制字符并删除空白行，与统计口径一致")

	return decommentCmd
}

// resolveDialect 优先使用显式指定的方言，否则按文件后缀路由。
func resolveDialect(state *app, path string, name string) (decomment.Dialect, error) {
	if name != "" {
		dialect, ok := decomment.ParseDialect(name)
		if !ok {
			return 0, fmt.Errorf("unknown dialect %q", name)
		}
		return dialect, nil
	}

	fileType, ok := state.registry.Lookup(path)
	if !ok {
		return 0, &scanner.FileError{Path: path, Op: "route", Err: scanner.ErrUnsupportedFile}
	}
	return fileType.Dialect, nil
}

// readSource 读取文件，路径为 - 时读取标准输入。
func readSource(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &scanner.FileError{Path: path, Op: "read", Err: err}
	}
	return data, nil
}
