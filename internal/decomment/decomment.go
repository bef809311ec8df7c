// Package decomment 提供基于有限状态机的注释剥离扫描器。
//
// 扫描器单遍读取输入字节，把代码字节原样复制到输出，
// 每段行注释替换为一个 LF，每段块注释替换为一个空格。
// 字符串、原始字符串中的“类注释”片段不会被误删，反之亦然。
//
// 扫描器没有错误状态：未闭合的注释或字面量会一直延伸到缓冲区末尾，
// 注释被丢弃且不追加分隔符，字面量被原样复制。
package decomment

import "bytes"

// 词法中用到的特殊字节。
const (
	eof       = 0
	lf        = '\n'
	space     = ' '
	slash     = '/'
	backslash = '\\'
	asterisk  = '*'
	apos      = '\''
	quote     = '"'
	backtick  = '`'
	at        = '@'
	dollar    = '$'
	parOpen   = '('
	parClose  = ')'
	rawPrefix = 'R'
)

// minMultilineQuotes 是 C# 多行字面量开头引号串的最小长度。
const minMultilineQuotes = 3

var blockCommentEnd = []byte("*/")

// Decomment 把 src 去注释后追加到 dst 并返回结果。
//
// 输出长度永远不超过输入长度，因此 dst 可以与 src 共用底层数组
// （例如 dst = src[:0]），此时只需 cap(dst) >= len(src) 即不会触发分配。
// 该函数不持有任何全局可变状态，可在多个 goroutine 中对不同缓冲区并发调用。
func Decomment(dst, src []byte, dialect Dialect) []byte {
	s := scanner{src: src, dialect: dialect}
	return s.run(dst)
}

// InPlace 原地去注释，返回 buf 的前缀切片。
func InPlace(buf []byte, dialect Dialect) []byte {
	return Decomment(buf[:0], buf, dialect)
}

// scanner 维护单次扫描的游标，只在一次 Decomment 调用内存活。
type scanner struct {
	src     []byte
	pos     int
	dialect Dialect
}

// peek 返回游标之后第 offset 个字节，越界时返回 eof 哨兵。
// 哨兵 0 不会与任何触发字节相等，所以越界等价于“不匹配”。
func (s *scanner) peek(offset int) byte {
	if i := s.pos + offset; i < len(s.src) {
		return s.src[i]
	}
	return eof
}

// run 交替执行“复制代码段”和“跳过注释”。
func (s *scanner) run(dst []byte) []byte {
	for s.pos < len(s.src) {
		from := s.pos
		commentStart, separator, terminated := s.skipUntilComment()
		dst = append(dst, s.src[from:commentStart]...)
		if terminated {
			dst = append(dst, separator)
		}
	}
	return dst
}

// skipUntilComment 在 Code 状态中前进，直到遇到注释或缓冲区结束。
// 返回注释起点、替换用的分隔符以及注释是否正常闭合；
// 返回时游标已位于注释之后。没有遇到注释时起点为 len(src)。
func (s *scanner) skipUntilComment() (int, byte, bool) {
	for s.pos < len(s.src) {
		start := s.pos
		head := s.src[s.pos]
		s.pos++

		switch head {
		case slash:
			switch s.peek(0) {
			case slash:
				s.pos++
				return start, lf, s.skipLineComment()
			case asterisk:
				s.pos++
				return start, space, s.skipBlockComment()
			}
		case apos:
			s.skipLiteral(apos)
		case quote:
			s.skipQuoted()
		case rawPrefix:
			if s.dialect == Cpp && s.peek(0) == quote {
				s.pos++
				s.skipRawLiteral()
			}
		case backtick:
			if s.dialect == Go {
				s.skipBacktickLiteral()
			}
		case at:
			if s.dialect == CSharp {
				s.skipVerbatimPrefix()
			}
		}
	}
	return len(s.src), 0, false
}

// skipQuoted 处理双引号开头的字面量，游标位于开引号之后。
func (s *scanner) skipQuoted() {
	if s.dialect == CSharp && s.peek(0) == quote && s.peek(1) == quote {
		run := 1 + s.quoteRun()
		s.pos += run - 1
		s.skipMultilineLiteral(run)
		return
	}
	s.skipLiteral(quote)
}

// skipLiteral 跳过普通字面量，游标位于开引号之后。
// 反斜杠会无条件带走下一个字节，不解释其含义。
func (s *scanner) skipLiteral(term byte) {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		s.pos++
		if c == term {
			return
		}
		if c == backslash {
			s.pos++
		}
	}
	s.pos = len(s.src)
}

// skipRawLiteral 跳过 C++ 原始字符串，游标位于 R" 之后。
// '(' 之前的字节构成分隔标签（可以为空），只有 ')' + 标签 + '"' 才能闭合。
func (s *scanner) skipRawLiteral() {
	open := bytes.IndexByte(s.src[s.pos:], parOpen)
	if open < 0 {
		s.pos = len(s.src)
		return
	}
	tag := s.src[s.pos : s.pos+open]
	s.pos += open + 1

	for {
		closeAt := bytes.IndexByte(s.src[s.pos:], parClose)
		if closeAt < 0 {
			s.pos = len(s.src)
			return
		}
		s.pos += closeAt + 1

		rest := s.src[s.pos:]
		if len(rest) > len(tag) && bytes.HasPrefix(rest, tag) && rest[len(tag)] == quote {
			s.pos += len(tag) + 1
			return
		}
	}
}

// quoteRun 返回从游标开始连续引号的个数。
func (s *scanner) quoteRun() int {
	n := 0
	for s.pos+n < len(s.src) && s.src[s.pos+n] == quote {
		n++
	}
	return n
}

// skipMultilineLiteral 跳过 C# 多行字面量，游标位于开头引号串之后。
// 闭合条件是第一次出现与开头等长的连续引号，长度按每次出现单独计算。
func (s *scanner) skipMultilineLiteral(run int) {
	for s.pos < len(s.src) {
		next := bytes.IndexByte(s.src[s.pos:], quote)
		if next < 0 {
			break
		}
		s.pos += next

		n := s.quoteRun()
		if n >= run {
			s.pos += run
			return
		}
		s.pos += n
	}
	s.pos = len(s.src)
}

// skipVerbatimPrefix 识别 C# 的 @" 与 @$" 逐字字符串，游标位于 @ 之后。
func (s *scanner) skipVerbatimPrefix() {
	switch {
	case s.peek(0) == quote:
		s.pos++
	case s.peek(0) == dollar && s.peek(1) == quote:
		s.pos += 2
	default:
		return
	}
	s.skipVerbatimLiteral()
}

// skipVerbatimLiteral 跳过逐字字符串：反斜杠不是转义，"" 表示一个引号。
func (s *scanner) skipVerbatimLiteral() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		s.pos++
		if c != quote {
			continue
		}
		if s.peek(0) != quote {
			return
		}
		s.pos++
	}
}

// skipBacktickLiteral 跳过 Go 原始字符串，没有任何转义。
func (s *scanner) skipBacktickLiteral() {
	end := bytes.IndexByte(s.src[s.pos:], backtick)
	if end < 0 {
		s.pos = len(s.src)
		return
	}
	s.pos += end + 1
}

// skipLineComment 跳过行注释，游标位于 // 之后。
// 行尾紧贴反斜杠时（且方言支持续行），注释延续到下一行。
// 返回 false 表示直到缓冲区末尾也没有遇到结束换行。
func (s *scanner) skipLineComment() bool {
	for {
		next := bytes.IndexByte(s.src[s.pos:], lf)
		if next < 0 {
			s.pos = len(s.src)
			return false
		}
		newline := s.pos + next
		s.pos = newline + 1

		if !s.dialect.lineContinuation() || s.src[newline-1] != backslash {
			return true
		}
	}
}

// skipBlockComment 跳过块注释，游标位于 /* 之后。块注释不嵌套。
func (s *scanner) skipBlockComment() bool {
	end := bytes.Index(s.src[s.pos:], blockCommentEnd)
	if end < 0 {
		s.pos = len(s.src)
		return false
	}
	s.pos += end + len(blockCommentEnd)
	return true
}
