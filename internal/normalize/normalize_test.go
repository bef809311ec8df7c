package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"srcstats/internal/decomment"
	"srcstats/internal/stats"
)

func TestLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only blank lines", input: "\n \n\t\n", want: ""},
		{name: "decommented example", input: "int x; \n \nint y;\n", want: "int x;\nint y;"},
		{name: "keeps indentation", input: "{\n    return 1;   \n}\n", want: "{\n    return 1;\n}"},
		{name: "leading blank lines", input: "\n\n  \na", want: "a"},
		{name: "carriage returns trimmed", input: "a\r\n\r\nb\r\n", want: "a\nb"},
		{name: "no trailing newline", input: "a\nb", want: "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Lines([]byte(tt.input))
			assert.Equal(t, tt.want, string(got))

			again := Lines([]byte(string(got)))
			assert.Equal(t, string(got), string(again), "normalizing twice must be a no-op")
		})
	}
}

func TestControlBytes(t *testing.T) {
	t.Parallel()

	got := ControlBytes([]byte("a\r\n\tb\x00\x1bc\x7f\n"))

	assert.Equal(t, "a\n\tbc\x7f\n", string(got))
}

// TestDecommentNormalizeIngest 覆盖“去注释 -> 规整 -> 统计”的完整链路。
func TestDecommentNormalizeIngest(t *testing.T) {
	t.Parallel()

	buf := []byte("int x; // comment\n/* block\ncomment */\nint y;\n")
	buf = decomment.InPlace(buf, decomment.Cpp)
	buf = Lines(buf)

	assert.Equal(t, "int x;\nint y;", string(buf))

	var fs stats.FileStatistics
	fs.Ingest(buf)

	assert.Equal(t, uint64(1), fs.Files().Count())
	assert.Equal(t, uint64(2), fs.Files().Total())
	assert.Equal(t, uint64(2), fs.Lines().Count())
	assert.Equal(t, uint64(6), fs.Lines().Min())
	assert.Equal(t, uint64(6), fs.Lines().Max())
}

func TestLinesDoesNotAllocate(t *testing.T) {
	src := []byte("  a  \n\n\tb\t\n   \nc")
	buf := make([]byte, len(src))

	allocs := testing.AllocsPerRun(100, func() {
		copy(buf, src)
		_ = Lines(buf)
		_ = ControlBytes(buf)
	})

	assert.Zero(t, allocs)
}
