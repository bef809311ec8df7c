// Package model 定义 srcstats 的报告数据模型。
// 这些结构只承载数值快照，会被统计层、扫描器、输出层和命令层共同使用。
package model

import "time"

// Accumulator 是一组观测值的只读快照。
//
// 注意：
// - Total 是所有观测值之和
// - Count 为 0 时 Min/Max 固定为 0，Average 为 nil（JSON/YAML 中输出 null）
type Accumulator struct {
	Count   uint64   `json:"count" yaml:"count"`
	Total   uint64   `json:"total" yaml:"total"`
	Min     uint64   `json:"min" yaml:"min"`
	Max     uint64   `json:"max" yaml:"max"`
	Average *float64 `json:"average" yaml:"average"`
}

// FileStatistics 描述一组文件的统计值。
// Files 的观测值是“每个文件的行数”，Lines 的观测值是“每行的字节数”。
type FileStatistics struct {
	Files Accumulator `json:"files" yaml:"files"`
	Lines Accumulator `json:"lines" yaml:"lines"`
}

// SubtypeReport 表示某语言下一个文件子类型（如 header/source）的统计。
type SubtypeReport struct {
	Subtype    string         `json:"subtype" yaml:"subtype"`
	Title      string         `json:"title" yaml:"title"`
	Statistics FileStatistics `json:"statistics" yaml:"statistics"`
}

// VariantReport 表示同一语言在 raw 或 decommented 口径下的统计。
type VariantReport struct {
	Subtypes []SubtypeReport `json:"subtypes" yaml:"subtypes"`
	Total    FileStatistics  `json:"total" yaml:"total"`
}

// LanguageReport 表示某个语言的聚合结果。
type LanguageReport struct {
	Language    string        `json:"language" yaml:"language"`
	Dialect     string        `json:"dialect" yaml:"dialect"`
	Extensions  []string      `json:"extensions" yaml:"extensions"`
	Raw         VariantReport `json:"raw" yaml:"raw"`
	Decommented VariantReport `json:"decommented" yaml:"decommented"`
}

// TotalReport 表示所有语言合并后的总计信息。
type TotalReport struct {
	Files       uint64         `json:"files" yaml:"files"`
	Raw         FileStatistics `json:"raw" yaml:"raw"`
	Decommented FileStatistics `json:"decommented" yaml:"decommented"`
}

// FileReport 表示单文件明细，仅在开启逐文件输出时填充。
type FileReport struct {
	Path             string `json:"path" yaml:"path"`
	Language         string `json:"language" yaml:"language"`
	Subtype          string `json:"subtype" yaml:"subtype"`
	RawLines         int    `json:"raw_lines" yaml:"raw_lines"`
	DecommentedLines int    `json:"decommented_lines" yaml:"decommented_lines"`
}

// ScanError 记录单文件扫描失败信息。
// 目录扫描时“错误不阻断全量扫描”，失败文件只记录在这里。
type ScanError struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// ScanResult 是 scan 命令的完整输出模型。
type ScanResult struct {
	ScannedPaths []string         `json:"scanned_paths" yaml:"scanned_paths"`
	Languages    []LanguageReport `json:"languages" yaml:"languages"`
	Total        TotalReport      `json:"total" yaml:"total"`
	Files        []FileReport     `json:"files,omitempty" yaml:"files,omitempty"`
	Errors       []ScanError      `json:"errors" yaml:"errors"`
	Elapsed      time.Duration    `json:"elapsed_ns" yaml:"elapsed"`
}
