package stats

import (
	"bytes"

	"srcstats/internal/model"
)

// FileStatistics 同时统计“文件长度（行）”和“行长度（字节）”。
//
// 约束说明：
// - 每次 Ingest 恰好向 files 提交一个观测值
// - 该观测值等于本次提交给 lines 的观测值个数
type FileStatistics struct {
	files Accumulator
	lines Accumulator
}

// Ingest 统计一个文件的文本内容。
// 文本按 LF 切分；以 LF 结尾时，最后那个空“行”不计入。
func (f *FileStatistics) Ingest(text []byte) {
	f.files.Observe(uint64(f.ingestLines(text)))
}

// ingestLines 逐行提交行长度并返回行数。
func (f *FileStatistics) ingestLines(text []byte) int {
	lineCount := 0
	for len(text) > 0 {
		end := bytes.IndexByte(text, '\n')
		if end < 0 {
			f.lines.Observe(uint64(len(text)))
			lineCount++
			break
		}
		f.lines.Observe(uint64(end))
		lineCount++
		text = text[end+1:]
	}
	return lineCount
}

// Merge 合并另一组文件统计。
func (f *FileStatistics) Merge(other FileStatistics) {
	f.files.Merge(other.files)
	f.lines.Merge(other.lines)
}

// Files 返回文件维度累加器，观测值是每个文件的行数。
func (f FileStatistics) Files() Accumulator {
	return f.files
}

// Lines 返回行维度累加器，观测值是每行的字节数。
func (f FileStatistics) Lines() Accumulator {
	return f.lines
}

// IsEmpty 判断是否还没有统计过任何文件。
func (f FileStatistics) IsEmpty() bool {
	return f.files.IsEmpty()
}

// Report 生成只读快照。
func (f FileStatistics) Report() model.FileStatistics {
	return model.FileStatistics{
		Files: f.files.Report(),
		Lines: f.lines.Report(),
	}
}

// CountLines 按 Ingest 的同一口径计算行数，不做任何统计。
func CountLines(text []byte) int {
	if len(text) == 0 {
		return 0
	}
	count := bytes.Count(text, []byte{'\n'})
	if text[len(text)-1] != '\n' {
		count++
	}
	return count
}
