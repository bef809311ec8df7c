package stats

import (
	"maps"
	"slices"
)

// SubtypeStatistics 按文件子类型（如 header/source）分桶保存 FileStatistics。
// 子类型集合由语言注册表决定，这里只负责按 key 分桶。
type SubtypeStatistics struct {
	cells map[string]*FileStatistics
}

// cell 返回子类型对应的桶，不存在时创建。
func (s *SubtypeStatistics) cell(subtype string) *FileStatistics {
	if s.cells == nil {
		s.cells = make(map[string]*FileStatistics)
	}
	item, ok := s.cells[subtype]
	if !ok {
		item = &FileStatistics{}
		s.cells[subtype] = item
	}
	return item
}

// Ingest 把一个文件的文本统计进指定子类型。
func (s *SubtypeStatistics) Ingest(subtype string, text []byte) {
	s.cell(subtype).Ingest(text)
}

// Get 返回指定子类型的统计，不存在时返回空统计。
func (s SubtypeStatistics) Get(subtype string) FileStatistics {
	if item, ok := s.cells[subtype]; ok {
		return *item
	}
	return FileStatistics{}
}

// Subtypes 返回已有数据的子类型，按名称排序。
func (s SubtypeStatistics) Subtypes() []string {
	return slices.Sorted(maps.Keys(s.cells))
}

// Total 返回全部子类型两两合并后的总计。
func (s SubtypeStatistics) Total() FileStatistics {
	var total FileStatistics
	for _, item := range s.cells {
		total.Merge(*item)
	}
	return total
}

// IsEmpty 判断是否没有任何子类型包含数据。
func (s SubtypeStatistics) IsEmpty() bool {
	for _, item := range s.cells {
		if !item.IsEmpty() {
			return false
		}
	}
	return true
}

// Merge 按子类型逐桶合并。
func (s *SubtypeStatistics) Merge(other SubtypeStatistics) {
	for subtype, item := range other.cells {
		s.cell(subtype).Merge(*item)
	}
}

// LanguageStatistics 保存一个语言“含注释”和“去注释”两套子类型统计。
type LanguageStatistics struct {
	raw         SubtypeStatistics
	decommented SubtypeStatistics
}

// AccumulateRaw 统计一个未去注释的文件。
func (l *LanguageStatistics) AccumulateRaw(subtype string, text []byte) {
	l.raw.Ingest(subtype, text)
}

// AccumulateDecommented 统计一个已去注释、已规整空行的文件。
func (l *LanguageStatistics) AccumulateDecommented(subtype string, text []byte) {
	l.decommented.Ingest(subtype, text)
}

// Raw 返回含注释口径的子类型统计。
func (l *LanguageStatistics) Raw() SubtypeStatistics {
	return l.raw
}

// Decommented 返回去注释口径的子类型统计。
func (l *LanguageStatistics) Decommented() SubtypeStatistics {
	return l.decommented
}

// TotalWithComments 返回含注释口径的语言总计。
func (l *LanguageStatistics) TotalWithComments() FileStatistics {
	return l.raw.Total()
}

// TotalDecommented 返回去注释口径的语言总计。
func (l *LanguageStatistics) TotalDecommented() FileStatistics {
	return l.decommented.Total()
}

// IsEmpty 判断是否还没有统计任何文件。
func (l *LanguageStatistics) IsEmpty() bool {
	return l.raw.IsEmpty()
}

// Merge 合并另一个语言统计。
func (l *LanguageStatistics) Merge(other *LanguageStatistics) {
	l.raw.Merge(other.raw)
	l.decommented.Merge(other.decommented)
}

// Collection 以语言名为 key 保存全部语言统计。
// 零值可直接使用；每个 worker 持有一个私有 Collection，最后再合并。
type Collection struct {
	languages map[string]*LanguageStatistics
}

// NewCollection 创建空集合。
func NewCollection() *Collection {
	return &Collection{languages: make(map[string]*LanguageStatistics)}
}

// Language 返回指定语言的统计，不存在时创建。
func (c *Collection) Language(name string) *LanguageStatistics {
	if c.languages == nil {
		c.languages = make(map[string]*LanguageStatistics)
	}
	item, ok := c.languages[name]
	if !ok {
		item = &LanguageStatistics{}
		c.languages[name] = item
	}
	return item
}

// Lookup 返回指定语言的统计，不存在时 ok 为 false。
func (c *Collection) Lookup(name string) (*LanguageStatistics, bool) {
	item, ok := c.languages[name]
	return item, ok
}

// Languages 返回已出现的语言名，按名称排序。
func (c *Collection) Languages() []string {
	return slices.Sorted(maps.Keys(c.languages))
}

// Merge 把另一个集合合并进来。
func (c *Collection) Merge(other *Collection) {
	if other == nil {
		return
	}
	for name, item := range other.languages {
		c.Language(name).Merge(item)
	}
}

// TotalWithComments 返回所有语言含注释口径的总计。
func (c *Collection) TotalWithComments() FileStatistics {
	var total FileStatistics
	for _, item := range c.languages {
		total.Merge(item.TotalWithComments())
	}
	return total
}

// TotalDecommented 返回所有语言去注释口径的总计。
func (c *Collection) TotalDecommented() FileStatistics {
	var total FileStatistics
	for _, item := range c.languages {
		total.Merge(item.TotalDecommented())
	}
	return total
}
