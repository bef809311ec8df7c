// Package report 提供 srcstats 的输出能力。
// 支持 table 控制台格式、JSON 与 YAML（含文件导出）。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"srcstats/internal/model"
)

// TableOptions 控制表格输出。
type TableOptions struct {
	// Color 为 false 时强制关闭标题颜色；为 true 时由终端能力决定。
	Color bool
}

// 表头。文件维度的观测值是行数，行维度的观测值是字节数。
var statisticsHeader = table.Row{
	"VARIANT", "SUBTYPE", "FILES", "LINES", "MIN", "MAX", "AVG", "CHARS", "MIN LINE", "MAX LINE", "AVG LINE",
}

// PrintTable 使用表格展示扫描结果。
// 每个语言分 raw/decommented 两组，组内超过一个子类型有数据时才追加合计行。
func PrintTable(writer io.Writer, result model.ScanResult, options TableOptions) error {
	heading := color.New(color.FgCyan, color.Bold)
	warning := color.New(color.FgYellow, color.Bold)
	if !options.Color {
		heading.DisableColor()
		warning.DisableColor()
	}

	if _, err := fmt.Fprintf(writer, "%s %s\n\n", heading.Sprint("SCANNED PATHS"), strings.Join(result.ScannedPaths, ", ")); err != nil {
		return err
	}

	if len(result.Languages) == 0 {
		if _, err := fmt.Fprintln(writer, "No supported source files have been found."); err != nil {
			return err
		}
	}

	for _, language := range result.Languages {
		title := fmt.Sprintf("%s [%s] %s", language.Language, language.Dialect, strings.Join(language.Extensions, " "))
		if _, err := fmt.Fprintln(writer, heading.Sprint(title)); err != nil {
			return err
		}

		tbl := newTable()
		tbl.AppendHeader(statisticsHeader)
		appendVariantRows(tbl, "Raw", language.Raw)
		appendVariantRows(tbl, "Decommented", language.Decommented)
		if _, err := fmt.Fprintf(writer, "%s\n\n", tbl.Render()); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(writer, heading.Sprint("TOTAL")); err != nil {
		return err
	}
	totals := newTable()
	totals.AppendHeader(statisticsHeader)
	totals.AppendRow(statisticsRow("Raw", "All", result.Total.Raw))
	totals.AppendRow(statisticsRow("Decommented", "All", result.Total.Decommented))
	totals.AppendFooter(table.Row{fmt.Sprintf("Files: %s", humanize.Comma(int64(result.Total.Files)))})
	if _, err := fmt.Fprintf(writer, "%s\n", totals.Render()); err != nil {
		return err
	}

	if len(result.Files) > 0 {
		if _, err := fmt.Fprintf(writer, "\n%s\n", heading.Sprint("FILES")); err != nil {
			return err
		}
		files := newTable()
		files.AppendHeader(table.Row{"PATH", "LANGUAGE", "SUBTYPE", "RAW LINES", "DECOMMENTED LINES"})
		for _, item := range result.Files {
			files.AppendRow(table.Row{
				item.Path,
				item.Language,
				item.Subtype,
				humanize.Comma(int64(item.RawLines)),
				humanize.Comma(int64(item.DecommentedLines)),
			})
		}
		if _, err := fmt.Fprintf(writer, "%s\n", files.Render()); err != nil {
			return err
		}
	}

	if len(result.Errors) > 0 {
		if _, err := fmt.Fprintf(writer, "\n%s\n", warning.Sprint("ERRORS")); err != nil {
			return err
		}
		errorsTable := newTable()
		errorsTable.AppendHeader(table.Row{"PATH", "ERROR"})
		for _, item := range result.Errors {
			errorsTable.AppendRow(table.Row{item.Path, item.Error})
		}
		if _, err := fmt.Fprintf(writer, "%s\n", errorsTable.Render()); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(writer, "\nTime elapsed: %s\n", result.Elapsed.Round(time.Microsecond))
	return err
}

// newTable 创建统一风格的 go-pretty 表格。
func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	return tbl
}

// appendVariantRows 追加某个口径的子类型行与合计行。
func appendVariantRows(tbl table.Writer, variant string, report model.VariantReport) {
	for _, subtype := range report.Subtypes {
		tbl.AppendRow(statisticsRow(variant, subtypeLabel(subtype), subtype.Statistics))
	}
	if len(report.Subtypes) > 1 {
		tbl.AppendRow(statisticsRow(variant, "Total", report.Total))
	}
}

// subtypeLabel 返回子类型的展示名，单子类型语言显示 All。
func subtypeLabel(subtype model.SubtypeReport) string {
	switch {
	case subtype.Title != "":
		return subtype.Title
	case subtype.Subtype != "":
		return subtype.Subtype
	}
	return "All"
}

func statisticsRow(variant string, subtype string, stats model.FileStatistics) table.Row {
	return table.Row{
		variant,
		subtype,
		humanize.Comma(int64(stats.Files.Count)),
		humanize.Comma(int64(stats.Files.Total)),
		humanize.Comma(int64(stats.Files.Min)),
		humanize.Comma(int64(stats.Files.Max)),
		formatAverage(stats.Files.Average),
		humanize.Comma(int64(stats.Lines.Total)),
		humanize.Comma(int64(stats.Lines.Min)),
		humanize.Comma(int64(stats.Lines.Max)),
		formatAverage(stats.Lines.Average),
	}
}

// formatAverage 格式化平均值，没有观测值时显示 -。
func formatAverage(average *float64) string {
	if average == nil {
		return "-"
	}
	return humanize.CommafWithDigits(*average, 2)
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	content = append(content, '\n')
	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// PrintYAML 把扫描结果按 YAML 输出到任意 writer。
func PrintYAML(writer io.Writer, result model.ScanResult) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)

	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return nil
}
