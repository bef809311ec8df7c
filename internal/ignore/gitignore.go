package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

// GitIgnore 是 .gitignore 的一个精简实现。
//
// 支持：空行与 # 注释、! 取反、/ 开头的根相对规则、/ 结尾的目录规则、
// 不含 / 的规则只匹配文件名、**/ 前缀。后出现的规则优先。
type GitIgnore struct {
	rules []gitRule
}

// gitRule 是解析后的一条规则。
type gitRule struct {
	pattern  string
	negate   bool
	dirOnly  bool
	basename bool
}

// LoadGitIgnore 读取指定的 .gitignore 文件。
// 文件不存在时返回 (nil, nil)，nil 的 *GitIgnore 不忽略任何路径。
func LoadGitIgnore(filePath string) (*GitIgnore, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open .gitignore: %w", err)
	}
	defer file.Close()

	gi, err := ParseGitIgnore(file)
	if err != nil {
		return nil, fmt.Errorf("read .gitignore: %w", err)
	}
	return gi, nil
}

// ParseGitIgnore 从 reader 逐行解析规则。
func ParseGitIgnore(reader io.Reader) (*GitIgnore, error) {
	gi := &GitIgnore{}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if rule, ok := parseRule(line); ok {
			gi.rules = append(gi.rules, rule)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return gi, nil
}

// parseRule 把一行文本转换为规则。
func parseRule(line string) (gitRule, bool) {
	var rule gitRule

	if strings.HasPrefix(line, "!") {
		rule.negate = true
		line = strings.TrimSpace(line[1:])
	}
	if strings.HasSuffix(line, "/") {
		rule.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	line = strings.TrimPrefix(line, "**/")

	rooted := strings.HasPrefix(line, "/")
	line = strings.TrimPrefix(line, "/")
	if line == "" {
		return gitRule{}, false
	}

	rule.pattern = line
	rule.basename = !rooted && !strings.Contains(line, "/")
	return rule, true
}

// Match 判断相对根目录的路径（使用 / 分隔）是否被忽略。
func (gi *GitIgnore) Match(relPath string, isDir bool) bool {
	if gi == nil {
		return false
	}

	relPath = strings.TrimPrefix(relPath, "./")
	ignored := false
	for _, rule := range gi.rules {
		if rule.matches(relPath, isDir) {
			ignored = !rule.negate
		}
	}
	return ignored
}

// matches 判断单条规则是否命中。
func (r gitRule) matches(relPath string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}

	candidate := relPath
	if r.basename {
		candidate = path.Base(relPath)
	}

	matched, err := path.Match(r.pattern, candidate)
	if err != nil {
		return false
	}
	return matched
}
