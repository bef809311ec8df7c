// Package normalize 提供统计前的文本规整：控制字符过滤与空行清理。
// 两个函数都在原缓冲区上就地改写并返回其前缀切片，不分配内存。
package normalize

import "bytes"

// trailingSpace 是行尾需要裁掉的空白字节。
const trailingSpace = " \t\r\v\f"

// ControlBytes 删除除 TAB 与 LF 以外所有小于空格的字节。
// CRLF 文件经过处理后与 LF 文件按相同口径统计。
func ControlBytes(data []byte) []byte {
	out := data[:0]
	for _, c := range data {
		if c < ' ' && c != '\t' && c != '\n' {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Lines 删除只含空白的行，并裁掉其余每行的行尾空白。
//
// 保留的行之间以单个 LF 连接，结果不以 LF 结尾；行首缩进保持不变。
// 对已规整的文本再次调用不会产生任何变化。
func Lines(data []byte) []byte {
	out := data[:0]
	rest := data

	for len(rest) > 0 {
		line := rest
		if end := bytes.IndexByte(rest, '\n'); end >= 0 {
			line, rest = rest[:end], rest[end+1:]
		} else {
			rest = nil
		}

		line = bytes.TrimRight(line, trailingSpace)
		if len(line) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, '\n')
		}
		out = append(out, line...)
	}

	return out
}
