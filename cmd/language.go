package cmd

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"srcstats/internal/languages"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示当前支持的语言、方言、子类型以及对应文件后缀。
func newLanguageCmd(registry *languages.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示已支持语言及后缀",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl := table.NewWriter()
			tbl.SetStyle(table.StyleLight)
			tbl.Style().Options.DrawBorder = false
			tbl.Style().Options.SeparateColumns = false
			tbl.AppendHeader(table.Row{"LANGUAGE", "DIALECT", "SUBTYPE", "EXTENSIONS"})

			for _, language := range registry.Languages() {
				for _, subtype := range language.Subtypes {
					name := subtype.Title
					if name == "" {
						name = "-"
					}
					tbl.AppendRow(table.Row{
						language.Name,
						language.Dialect.String(),
						name,
						strings.Join(subtype.Extensions, ", "),
					})
				}
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
			return err
		},
	}
}
