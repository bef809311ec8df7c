package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitIgnoreMatch(t *testing.T) {
	t.Parallel()

	gi, err := ParseGitIgnore(strings.NewReader(strings.Join([]string{
		"# generated",
		"",
		"*.gen.cpp",
		"/out",
		"cache/",
		"docs/*.cs",
		"**/tmp",
		"!keep.gen.cpp",
	}, "\n")))
	require.NoError(t, err)

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{"a.gen.cpp", false, true},
		{"src/b.gen.cpp", false, true},
		{"src/keep.gen.cpp", false, false},
		{"out", true, true},
		{"src/out", true, false},
		{"cache", true, true},
		{"src/cache", true, true},
		{"cache", false, false},
		{"docs/a.cs", false, true},
		{"src/docs/a.cs", false, false},
		{"deep/tmp", true, true},
		{"main.cpp", false, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, gi.Match(tt.path, tt.isDir), tt.path)
	}
}

func TestNilGitIgnoreMatchesNothing(t *testing.T) {
	t.Parallel()

	var gi *GitIgnore
	assert.False(t, gi.Match("anything", false))
}

func TestLoadGitIgnoreMissingFile(t *testing.T) {
	t.Parallel()

	gi, err := LoadGitIgnore(filepath.Join(t.TempDir(), ".gitignore"))
	require.NoError(t, err)
	assert.Nil(t, gi)
}

func TestMatcherSkip(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("generated/\n*.pb.cc\n"), 0o644))

	matcher, err := New(root, Options{
		Dirs:       DefaultDirs,
		Patterns:   []string{"*_test.go", "third/*.h"},
		Gitignore:  true,
		SkipVendor: true,
		SkipHidden: true,
	})
	require.NoError(t, err)

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{root, true, false},
		{filepath.Join(root, "node_modules"), true, true},
		{filepath.Join(root, "src", "build"), true, true},
		{filepath.Join(root, "build.cpp"), false, false},
		{filepath.Join(root, ".cache"), true, true},
		{filepath.Join(root, ".clang-format"), false, true},
		{filepath.Join(root, "vendor"), true, true},
		{filepath.Join(root, "pkg", "scan_test.go"), false, true},
		{filepath.Join(root, "third", "lib.h"), false, true},
		{filepath.Join(root, "src", "third", "lib.h"), false, false},
		{filepath.Join(root, "generated"), true, true},
		{filepath.Join(root, "api", "msg.pb.cc"), false, true},
		{filepath.Join(root, "src", "main.cpp"), false, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matcher.Skip(tt.path, tt.isDir), tt.path)
	}
}

func TestMatcherWithoutOptionalRules(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.cpp\n"), 0o644))

	matcher, err := New(root, Options{})
	require.NoError(t, err)

	assert.False(t, matcher.Skip(filepath.Join(root, "main.cpp"), false))
	assert.False(t, matcher.Skip(filepath.Join(root, "vendor"), true))
	assert.False(t, matcher.Skip(filepath.Join(root, ".hidden.cs"), false))
}

func TestMatcherRejectsBadPattern(t *testing.T) {
	t.Parallel()

	_, err := New(t.TempDir(), Options{Patterns: []string{"[abc"}})
	require.Error(t, err)
}
