package source

import (
	"strings"
	"unicode/utf8"
)

// Underline renders every line touched by the span [start, end) of
// start.Text, each followed by a row of carets under the spanned columns.
// Tab characters are dropped from the result.
func Underline(start, end Position) string {
	text := start.Text
	idx := start.Index
	if idx > len(text) {
		idx = len(text)
	}
	if idx < 0 {
		idx = 0
	}
	lineStart := strings.LastIndexByte(text[:idx], '\n') + 1

	count := end.Line - start.Line + 1
	if count < 1 {
		count = 1
	}

	var b strings.Builder
	for i := 0; i < count; i++ {
		lineEnd := len(text)
		if n := strings.IndexByte(text[lineStart:], '\n'); n >= 0 {
			lineEnd = lineStart + n
		}
		line := strings.TrimSuffix(text[lineStart:lineEnd], "\r")

		colStart := 0
		if i == 0 {
			colStart = start.Column
		}
		colEnd := utf8.RuneCountInString(line)
		if i == count-1 {
			colEnd = end.Column
		}
		if colEnd < colStart {
			colEnd = colStart
		}

		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", colStart))
		b.WriteString(strings.Repeat("^", colEnd-colStart))

		lineStart = lineEnd + 1
		if lineStart > len(text) {
			lineStart = len(text)
		}
	}
	return strings.ReplaceAll(b.String(), "\t", "")
}
