package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"srcstats/internal/model"
)

// Format 是输出格式。
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat 表示不支持的输出格式。
var ErrUnknownFormat = errors.New("unknown output format")

// Formats 返回全部支持的输出格式。
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatYAML}
}

// ParseFormat 解析格式名称，大小写不敏感，空字符串视为 table。
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatTable, "":
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Render 按格式输出扫描结果。
func Render(writer io.Writer, format Format, result model.ScanResult, options TableOptions) error {
	switch format {
	case FormatTable:
		return PrintTable(writer, result, options)
	case FormatJSON:
		return PrintJSON(writer, result)
	case FormatYAML:
		return PrintYAML(writer, result)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// WriteFile 将结果导出到指定路径，表格格式不带颜色。
// 如果目录不存在会自动创建。
func WriteFile(path string, format Format, result model.ScanResult) error {
	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	renderErr := Render(file, format, result, TableOptions{})
	closeErr := file.Close()
	if renderErr != nil {
		return renderErr
	}
	if closeErr != nil {
		return fmt.Errorf("write output file: %w", closeErr)
	}
	return nil
}
