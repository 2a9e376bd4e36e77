package buffer

import (
	"io"
)

// A Buffer is a wrapper around any buffer data structure like ropes or a gap buffer
// that can be used for text editors. Most of the API speaks in line and column
// indexes, so it is simple to index and use like a text editor. Lines and columns
// start at zero, columns count runes, and "end" ranges taking lines and columns
// are inclusive.
//
// A few functions use byte offsets ("positions") instead. Those ranges are
// half-open, like Go slices, and are what the highlighter and the tags work with.
//
// Any line out of range is a panic! If you are unsure your position or range
// may be out of bounds, use ClampLineCol() or compare with Lines() or RunesInLine().
type Buffer interface {
	// Line returns a slice of the data at the given line, including the ending line-
	// delimiter. line starts from zero. Data returned may or may not be a copy: do not
	// write to it.
	Line(line int) []byte

	// Slice returns the buffer from startLine, startCol, to endLine, endCol,
	// inclusive bounds. The returned value may or may not be a copy of the data,
	// so do not write to it.
	Slice(startLine, startCol, endLine, endCol int) []byte

	// Range returns the bytes between positions start and end, [start, end).
	Range(start, end int) []byte

	// Bytes returns all of the bytes in the buffer. This function is very likely
	// to copy all of the data in the buffer.
	Bytes() []byte

	// Insert copies a byte slice (inserting it) into the position at line, col.
	Insert(line, col int, value []byte)

	// InsertAt inserts value before the byte at pos.
	InsertAt(pos int, value []byte)

	// Remove deletes any characters between startLine, startCol, and endLine,
	// endCol, inclusive bounds.
	Remove(startLine, startCol, endLine, endCol int)

	// RemoveRange deletes the bytes between positions start and end, [start, end).
	RemoveRange(start, end int)

	// Count returns the number of occurrences of 'sequence' in the buffer, within the
	// range of start line and col, to end line and col. [start, end) (exclusive end).
	Count(startLine, startCol, endLine, endCol int, sequence []byte) int

	// Len returns the number of bytes in the buffer.
	Len() int

	// Lines returns the number of lines in the buffer. If the buffer is empty,
	// 1 is returned, because there is always at least one line.
	Lines() int

	// RunesInLine returns the number of runes in the given line, excluding the
	// line delimiter.
	RunesInLine(line int) int

	// ClampLineCol clamps any provided line and col to only possible values within
	// the buffer. It first clamps the line, then clamps the column between zero and
	// the position just before the line delimiter.
	ClampLineCol(line, col int) (int, int)

	// LineColToPos returns the index of the byte at line, col. If col is greater
	// than the length of the line, the position of the line delimiter is returned.
	LineColToPos(line, col int) int

	// PosToLineCol converts a byte offset of the buffer into a line and column.
	// Position will be clamped.
	PosToLineCol(pos int) (int, int)

	WriteTo(w io.Writer) (int64, error)
}
