package decomment

import "strings"

// Dialect 表示一种受支持的词法方言。
// 方言集合是封闭的，扫描器在每个文件开始时按方言选择一次状态转移表。
type Dialect uint8

const (
	// Cpp 是 C/C++：// 与 /* */ 注释，'/" 字面量，R"tag(...)tag" 原始字符串。
	Cpp Dialect = iota + 1
	// CSharp 是 C#：在 Cpp 注释规则之上支持 """ 多行字面量和 @"..." 逐字字符串，不识别 R"。
	CSharp
	// Go：// 与 /* */ 注释，'/" 字面量，反引号原始字符串；行注释没有续行。
	Go
)

// dialectNames 保存方言的展示名，也用于 ParseDialect 反查。
var dialectNames = []struct {
	dialect Dialect
	name    string
}{
	{Cpp, "cpp"},
	{CSharp, "csharp"},
	{Go, "go"},
}

// String 返回方言名称。
func (d Dialect) String() string {
	for _, item := range dialectNames {
		if item.dialect == d {
			return item.name
		}
	}
	return "unknown"
}

// Dialects 返回全部受支持的方言。
func Dialects() []Dialect {
	result := make([]Dialect, 0, len(dialectNames))
	for _, item := range dialectNames {
		result = append(result, item.dialect)
	}
	return result
}

// ParseDialect 按名称查找方言，大小写不敏感。
func ParseDialect(name string) (Dialect, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, item := range dialectNames {
		if item.name == name {
			return item.dialect, true
		}
	}
	return 0, false
}

// lineContinuation 判断行注释是否支持“行尾反斜杠续行”。
func (d Dialect) lineContinuation() bool {
	return d == Cpp || d == CSharp
}
