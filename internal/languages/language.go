// Package languages 描述受支持的语言：名称、词法方言、文件子类型与后缀。
// 它只负责把文件路由到正确的扫描方言和统计桶，不做任何解析。
package languages

import (
	"sort"

	"srcstats/internal/decomment"
)

// DefaultSubtype 是只有一个子类型的语言所使用的子类型名。
const DefaultSubtype = ""

// Subtype 是语言内部的二级分类（例如 C++ 的 header/source）。
type Subtype struct {
	// Name 是统计桶的 key。
	Name string
	// Title 是展示用标题，单子类型语言可以为空。
	Title string
	// Extensions 是包含点号的后缀列表，例如 .hpp。
	Extensions []string
}

// Language 是一个受支持语言的注册信息。
type Language struct {
	Name     string
	Dialect  decomment.Dialect
	Subtypes []Subtype
}

// Extensions 返回该语言全部子类型的后缀（已排序）。
func (l Language) Extensions() []string {
	var result []string
	for _, subtype := range l.Subtypes {
		result = append(result, subtype.Extensions...)
	}
	sort.Strings(result)
	return result
}

// SubtypeTitle 返回子类型的展示标题，未知子类型返回其名称本身。
func (l Language) SubtypeTitle(name string) string {
	for _, subtype := range l.Subtypes {
		if subtype.Name == name {
			return subtype.Title
		}
	}
	return name
}

// SubtypeNames 按注册顺序返回子类型名称。
func (l Language) SubtypeNames() []string {
	names := make([]string, 0, len(l.Subtypes))
	for _, subtype := range l.Subtypes {
		names = append(names, subtype.Name)
	}
	return names
}

// FileType 是一次路由的结果：文件属于哪个语言、哪个子类型、用哪个方言扫描。
type FileType struct {
	Language string
	Subtype  string
	Dialect  decomment.Dialect
}

// Builtin 返回内置语言表。
func Builtin() []Language {
	return []Language{
		{
			Name:    "C++",
			Dialect: decomment.Cpp,
			Subtypes: []Subtype{
				{Name: "header", Title: "Header", Extensions: []string{".h", ".hpp", ".hxx", ".ixx"}},
				{Name: "source", Title: "Source", Extensions: []string{".c", ".cc", ".cpp", ".cxx"}},
			},
		},
		{
			Name:    "C#",
			Dialect: decomment.CSharp,
			Subtypes: []Subtype{
				{Name: DefaultSubtype, Extensions: []string{".cs", ".csx"}},
			},
		},
		{
			Name:    "Go",
			Dialect: decomment.Go,
			Subtypes: []Subtype{
				{Name: DefaultSubtype, Extensions: []string{".go"}},
			},
		},
	}
}
