package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileStatisticsIngest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		wantLines  []uint64
		wantLength uint64
	}{
		{name: "empty file", text: "", wantLines: nil, wantLength: 0},
		{name: "single line without newline", text: "int x;", wantLines: []uint64{6}, wantLength: 1},
		{name: "trailing newline not counted", text: "int x;\nint y;\n", wantLines: []uint64{6, 6}, wantLength: 2},
		{name: "inner empty line counted", text: "a\n\nbc", wantLines: []uint64{1, 0, 2}, wantLength: 3},
		{name: "lone newline", text: "\n", wantLines: []uint64{0}, wantLength: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var fs FileStatistics
			fs.Ingest([]byte(tt.text))

			assert.Equal(t, observeAll(tt.wantLength), fs.Files())
			assert.Equal(t, observeAll(tt.wantLines...), fs.Lines())
			assert.Equal(t, int(tt.wantLength), CountLines([]byte(tt.text)))
		})
	}
}

func TestFileStatisticsOneFileObservationPerIngest(t *testing.T) {
	t.Parallel()

	var fs FileStatistics
	fs.Ingest([]byte("a\nb\n"))
	fs.Ingest([]byte(""))
	fs.Ingest([]byte("xyz"))

	assert.Equal(t, uint64(3), fs.Files().Count())
	assert.Equal(t, fs.Lines().Count(), fs.Files().Total())
	assert.False(t, fs.IsEmpty())
}

func TestFileStatisticsMerge(t *testing.T) {
	t.Parallel()

	var header, source, both FileStatistics
	header.Ingest([]byte("#pragma once\n"))
	source.Ingest([]byte("int main() {\n  return 0;\n}\n"))
	both.Ingest([]byte("#pragma once\n"))
	both.Ingest([]byte("int main() {\n  return 0;\n}\n"))

	merged := header
	merged.Merge(source)

	assert.Equal(t, both, merged)

	report := merged.Report()
	assert.Equal(t, uint64(2), report.Files.Count)
	assert.Equal(t, uint64(4), report.Files.Total)
	assert.Equal(t, uint64(4), report.Lines.Count)
	assert.Equal(t, uint64(12), report.Lines.Max)
	assert.Equal(t, uint64(1), report.Lines.Min)
}
