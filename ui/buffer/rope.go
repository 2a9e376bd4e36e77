package buffer

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/zyedidia/rope"
)

var newline = []byte{'\n'}

// A RopeBuffer implements Buffer on top of a rope, so inserting into the middle of
// a large file does not copy the whole file.
type RopeBuffer rope.Node

func NewRopeBuffer(contents []byte) *RopeBuffer {
	return (*RopeBuffer)(rope.New(contents))
}

func (b *RopeBuffer) node() *rope.Node {
	return (*rope.Node)(b)
}

// lineStart returns the first byte index of the given line (starting from zero).
// The returned index can be equal to the length of the buffer, which means the
// line is the last, and empty, line of the buffer. If line is greater than or equal
// to the number of lines in the buffer, a panic is issued.
func (b *RopeBuffer) lineStart(line int) int {
	if line < 0 {
		panic("lineStart: negative line")
	}

	var pos int
	if line > 0 {
		n := b.node()
		n.IndexAllFunc(0, n.Len(), newline, func(idx int) bool {
			line--
			pos = idx + 1
			return line <= 0 // Stop once pos is the start of the line we want
		})
	}

	if line > 0 {
		panic("lineStart: not enough lines in buffer to reach position")
	}
	return pos
}

// lineEnd returns the index of the '\n' ending the line starting at pos, or the
// length of the buffer when the line is the last one.
func (b *RopeBuffer) lineEnd(start int) int {
	n := b.node()
	end := n.Len()
	if start < end {
		n.IndexAllFunc(start, end, newline, func(idx int) bool {
			end = idx
			return true
		})
	}
	return end
}

// lineContent returns the bytes of a line without its delimiter ("\n" or "\r\n").
func (b *RopeBuffer) lineContent(line int) (start int, content []byte) {
	start = b.lineStart(line)
	content = b.Range(start, b.lineEnd(start))
	return start, bytes.TrimSuffix(content, []byte{'\r'})
}

// Line returns a slice of the data at the given line, including the ending line-
// delimiter.
func (b *RopeBuffer) Line(line int) []byte {
	start := b.lineStart(line)
	end := b.lineEnd(start)
	if end < b.Len() {
		end++ // Include the '\n'
	}
	return b.Range(start, end)
}

func (b *RopeBuffer) Slice(startLine, startCol, endLine, endCol int) []byte {
	return b.Range(b.LineColToPos(startLine, startCol), b.LineColToPos(endLine, endCol)+1)
}

func (b *RopeBuffer) Range(start, end int) []byte {
	start, end = Clamp(start, 0, b.Len()), Clamp(end, 0, b.Len())
	if start >= end {
		return []byte{}
	}
	return b.node().Slice(start, end)
}

func (b *RopeBuffer) Bytes() []byte {
	return b.node().Value()
}

func (b *RopeBuffer) Insert(line, col int, value []byte) {
	b.InsertAt(b.LineColToPos(line, col), value)
}

func (b *RopeBuffer) InsertAt(pos int, value []byte) {
	if len(value) == 0 {
		return
	}
	b.node().Insert(Clamp(pos, 0, b.Len()), value)
}

func (b *RopeBuffer) Remove(startLine, startCol, endLine, endCol int) {
	b.RemoveRange(b.LineColToPos(startLine, startCol), b.LineColToPos(endLine, endCol)+1)
}

func (b *RopeBuffer) RemoveRange(start, end int) {
	start, end = Clamp(start, 0, b.Len()), Clamp(end, 0, b.Len())
	if start >= end {
		return
	}
	b.node().Remove(start, end)
}

func (b *RopeBuffer) Count(startLine, startCol, endLine, endCol int, sequence []byte) int {
	startPos := b.LineColToPos(startLine, startCol)
	endPos := b.LineColToPos(endLine, endCol)
	if startPos >= endPos {
		return 0
	}
	return b.node().Count(startPos, endPos, sequence)
}

func (b *RopeBuffer) Len() int {
	return b.node().Len()
}

func (b *RopeBuffer) Lines() int {
	n := b.node()
	if n.Len() == 0 {
		return 1
	}
	return n.Count(0, n.Len(), newline) + 1
}

func (b *RopeBuffer) RunesInLine(line int) int {
	_, content := b.lineContent(line)
	return utf8.RuneCount(content)
}

func (b *RopeBuffer) ClampLineCol(line, col int) (int, int) {
	line = Clamp(line, 0, b.Lines()-1)
	col = Clamp(col, 0, b.RunesInLine(line))
	return line, col
}

func (b *RopeBuffer) LineColToPos(line, col int) int {
	start, content := b.lineContent(line)
	var i int
	for col > 0 && i < len(content) {
		_, size := utf8.DecodeRune(content[i:])
		i += size
		col--
	}
	return start + i
}

func (b *RopeBuffer) PosToLineCol(pos int) (int, int) {
	pos = Clamp(pos, 0, b.Len())
	if pos == 0 {
		return 0, 0
	}

	n := b.node()
	line := n.Count(0, pos, newline)
	start := b.lineStart(line)
	return line, utf8.RuneCount(b.Range(start, pos))
}

func (b *RopeBuffer) WriteTo(w io.Writer) (int64, error) {
	return b.node().WriteTo(w)
}

// Clamp keeps v within lo and hi. lo must not be greater than hi.
func Clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
