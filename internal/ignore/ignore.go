// Package ignore 决定目录遍历时哪些路径需要跳过。
// 规则来源：默认忽略目录、用户排除通配符、根目录 .gitignore、vendor 与隐藏文件识别。
package ignore

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/src-d/enry/v2"
)

// DefaultDirs 是默认跳过的目录名，命中后整个目录不再下钻。
var DefaultDirs = []string{
	".git",
	".hg",
	".svn",
	".idea",
	".vscode",
	"node_modules",
	"__pycache__",
	"bin",
	"obj",
	"build",
	"dist",
	"target",
	"coverage",
}

// Options 是忽略规则的配置。
type Options struct {
	// Dirs 是按目录名跳过的目录。
	Dirs []string
	// Patterns 是用户指定的排除通配符；含 / 时匹配相对路径，否则匹配文件名。
	Patterns []string
	// Gitignore 为 true 时读取根目录下的 .gitignore。
	Gitignore bool
	// SkipVendor 为 true 时跳过 linguist 规则识别出的 vendor 路径。
	SkipVendor bool
	// SkipHidden 为 true 时跳过以点号开头的文件和目录。
	SkipHidden bool
}

// Matcher 对某个根目录应用忽略规则。只读，可并发使用。
type Matcher struct {
	root      string
	dirs      map[string]bool
	patterns  []string
	gitignore *GitIgnore
	options   Options
}

// New 为 root 目录创建 Matcher。
func New(root string, options Options) (*Matcher, error) {
	matcher := &Matcher{
		root:    root,
		dirs:    make(map[string]bool, len(options.Dirs)),
		options: options,
	}

	for _, name := range options.Dirs {
		if name = strings.TrimSpace(name); name != "" {
			matcher.dirs[name] = true
		}
	}

	for _, pattern := range options.Patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		matcher.patterns = append(matcher.patterns, filepath.ToSlash(pattern))
	}

	if options.Gitignore {
		gitignore, err := LoadGitIgnore(filepath.Join(root, ".gitignore"))
		if err != nil {
			return nil, err
		}
		matcher.gitignore = gitignore
	}

	return matcher, nil
}

// Skip 判断路径是否需要跳过。根目录本身永远不会被跳过。
func (m *Matcher) Skip(filePath string, isDir bool) bool {
	relPath, err := filepath.Rel(m.root, filePath)
	if err != nil {
		relPath = filePath
	}
	relPath = filepath.ToSlash(relPath)
	if relPath == "." {
		return false
	}

	name := path.Base(relPath)

	if isDir && m.dirs[name] {
		return true
	}
	if m.options.SkipHidden && enry.IsDotFile(relPath) {
		return true
	}
	if m.options.SkipVendor && m.isVendor(relPath, isDir) {
		return true
	}
	if m.matchPatterns(relPath, name) {
		return true
	}
	return m.gitignore.Match(relPath, isDir)
}

// isVendor 使用 linguist 的 vendor 规则，目录需要补上结尾的 /。
func (m *Matcher) isVendor(relPath string, isDir bool) bool {
	if isDir {
		relPath += "/"
	}
	return enry.IsVendor(relPath)
}

// matchPatterns 检查用户排除规则。
func (m *Matcher) matchPatterns(relPath string, name string) bool {
	for _, pattern := range m.patterns {
		target := name
		if strings.Contains(pattern, "/") {
			target = relPath
		}
		if ok, err := path.Match(pattern, target); err == nil && ok {
			return true
		}
	}
	return false
}
