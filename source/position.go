package source

import "unicode/utf8"

// Position tracks a cursor within a named source text.
type Position struct {
	Index    int // zero-based byte offset into Text
	Line     int // zero-based line number
	Column   int // zero-based column number (rune count)
	Filename string
	Text     string
}

// Start returns the position of the first character of text.
func Start(filename, text string) Position {
	return Position{
		Filename: filename,
		Text:     text,
	}
}

// Rune returns the character under the cursor and its width in bytes.
// Past the end of Text it returns (0, 0).
func (p Position) Rune() (rune, int) {
	if p.Index < 0 || p.Index >= len(p.Text) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(p.Text[p.Index:])
}

// Next returns the position just past the character under the cursor.
// Stepping over a newline moves to column zero of the next line; stepping
// past the end of Text still advances by one column.
func (p Position) Next() Position {
	r, w := p.Rune()
	if w == 0 {
		w = 1
	}
	p.Index += w
	p.Column++
	if r == '\n' {
		p.Line++
		p.Column = 0
	}
	return p
}

// LineNumber returns the one-based line number for display.
func (p Position) LineNumber() int {
	return p.Line + 1
}
