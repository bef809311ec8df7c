package languages

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/src-d/enry/v2"
)

// ErrDuplicateExtension 表示同一个后缀被注册到了两个位置。
var ErrDuplicateExtension = errors.New("extension already registered")

// ErrEmptyLanguage 表示注册的语言缺少名称或子类型。
var ErrEmptyLanguage = errors.New("language must have a name and at least one subtype")

// Registry 管理语言注册与“后缀 -> 文件类型”路由。
// 注册完成后只读，可被多个 worker 并发查询。
type Registry struct {
	languages []Language
	typeByExt map[string]FileType
}

// NewRegistry 创建并注册所有内置语言。
func NewRegistry() *Registry {
	registry, err := NewRegistryWith(Builtin()...)
	if err != nil {
		panic(fmt.Sprintf("builtin languages: %v", err))
	}
	return registry
}

// NewRegistryWith 用给定语言创建注册表。
func NewRegistryWith(languages ...Language) (*Registry, error) {
	registry := &Registry{
		typeByExt: make(map[string]FileType),
	}
	for _, language := range languages {
		if err := registry.Register(language); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register 注册一个语言及其全部子类型后缀。
// 任何一个后缀冲突时整个语言都不会被注册。
func (r *Registry) Register(language Language) error {
	if language.Name == "" || len(language.Subtypes) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyLanguage, language.Name)
	}

	pending := make(map[string]FileType)
	for _, subtype := range language.Subtypes {
		for _, ext := range subtype.Extensions {
			key := normalizeExtension(ext)
			if existing, ok := r.typeByExt[key]; ok {
				return fmt.Errorf("%w: %s (%s)", ErrDuplicateExtension, key, existing.Language)
			}
			if _, ok := pending[key]; ok {
				return fmt.Errorf("%w: %s (%s)", ErrDuplicateExtension, key, language.Name)
			}
			pending[key] = FileType{
				Language: language.Name,
				Subtype:  subtype.Name,
				Dialect:  language.Dialect,
			}
		}
	}

	for key, fileType := range pending {
		r.typeByExt[key] = fileType
	}
	r.languages = append(r.languages, language.clone())
	return nil
}

// Lookup 根据文件后缀查找文件类型。
func (r *Registry) Lookup(path string) (FileType, bool) {
	fileType, ok := r.typeByExt[strings.ToLower(filepath.Ext(path))]
	return fileType, ok
}

// Languages 返回已注册语言清单，按名称排序。
func (r *Registry) Languages() []Language {
	result := make([]Language, 0, len(r.languages))
	for _, language := range r.languages {
		result = append(result, language.clone())
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Language 按名称查找语言。
func (r *Registry) Language(name string) (Language, bool) {
	for _, language := range r.languages {
		if language.Name == name {
			return language.clone(), true
		}
	}
	return Language{}, false
}

// ExtensionsForLanguage 返回指定语言对应的全部后缀（已排序）。
func (r *Registry) ExtensionsForLanguage(name string) []string {
	language, ok := r.Language(name)
	if !ok {
		return nil
	}
	return language.Extensions()
}

// Detect 识别注册表不支持的文件实际是什么语言，只用于提示信息。
// content 可以为 nil，此时只按文件名判断。
func (r *Registry) Detect(path string, content []byte) string {
	return enry.GetLanguage(filepath.Base(path), content)
}

// normalizeExtension 统一为小写并补齐前导点号。
func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// clone 深拷贝语言描述，避免调用方修改注册表内部切片。
func (l Language) clone() Language {
	subtypes := make([]Subtype, 0, len(l.Subtypes))
	for _, subtype := range l.Subtypes {
		subtype.Extensions = slices.Clone(subtype.Extensions)
		subtypes = append(subtypes, subtype)
	}
	l.Subtypes = subtypes
	return l
}
