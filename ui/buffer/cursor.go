package buffer

import (
	"math"
	"unicode"
)

// The cursor needs a reference to the buffer to know where lines end and how it
// can move. The buffer is the city, and the Cursor is the car.

// A Region is a selected part of the buffer, as half-open byte positions. Start
// is never greater than End.
type Region struct {
	Start int
	End   int
}

// NewRegion orders a and b into a Region.
func NewRegion(a, b int) Region {
	if a > b {
		a, b = b, a
	}
	return Region{a, b}
}

func (r Region) Empty() bool {
	return r.Start >= r.End
}

func (r Region) Contains(pos int) bool {
	return pos >= r.Start && pos < r.End
}

// A Cursor is a line and column (in runes) inside of a Buffer. Movement functions
// return a new Cursor and never go outside of the buffer.
type Cursor struct {
	buffer Buffer
	line   int
	col    int
}

func NewCursor(in Buffer) Cursor {
	return Cursor{buffer: in}
}

func (c Cursor) Left() Cursor {
	if c.col == 0 && c.line != 0 { // If we are at the beginning of the current line...
		// Go to the end of the above line
		c.line--
		c.col = c.buffer.RunesInLine(c.line)
	} else {
		c.col = max(c.col-1, 0)
	}
	return c
}

func (c Cursor) Right() Cursor {
	// If we are at the end of the current line, and not at the last line...
	if c.col >= c.buffer.RunesInLine(c.line) && c.line < c.buffer.Lines()-1 {
		c.line, c.col = c.line+1, 0
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line, c.col+1)
	}
	return c
}

func (c Cursor) Up() Cursor {
	if c.line == 0 {
		c.col = 0
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line-1, c.col)
	}
	return c
}

func (c Cursor) Down() Cursor {
	if c.line == c.buffer.Lines()-1 {
		c.line, c.col = c.buffer.ClampLineCol(c.line, math.MaxInt32) // End of the last line
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line+1, c.col)
	}
	return c
}

// NextWordEnd moves past the run of same-classed characters to the right of the
// Cursor, skipping whitespace first.
func (c Cursor) NextWordEnd() Cursor {
	pos := c.Pos()
	data := c.buffer.Range(pos, c.buffer.Len())
	runes := []rune(string(data))

	i := 0
	for i < len(runes) && runeCharclass(runes[i]) == charWhitespace {
		i++
	}
	if i < len(runes) {
		class := runeCharclass(runes[i])
		for i < len(runes) && runeCharclass(runes[i]) == class {
			i++
		}
	}
	return c.SetPos(pos + len(string(runes[:i])))
}

// PrevWordStart moves to the start of the run of same-classed characters to the
// left of the Cursor, skipping whitespace first.
func (c Cursor) PrevWordStart() Cursor {
	pos := c.Pos()
	runes := []rune(string(c.buffer.Range(0, pos)))

	i := len(runes)
	for i > 0 && runeCharclass(runes[i-1]) == charWhitespace {
		i--
	}
	if i > 0 {
		class := runeCharclass(runes[i-1])
		for i > 0 && runeCharclass(runes[i-1]) == class {
			i--
		}
	}
	return c.SetPos(len(string(runes[:i])))
}

func (c Cursor) GetLineCol() (line, col int) {
	return c.line, c.col
}

// SetLineCol sets the line and col of the Cursor to those provided. `line` is
// clamped within the range (0, lines in buffer). `col` is then clamped within
// the range (0, line length in runes).
func (c Cursor) SetLineCol(line, col int) Cursor {
	c.line, c.col = c.buffer.ClampLineCol(line, col)
	return c
}

// Pos returns the byte position of the Cursor in the buffer.
func (c Cursor) Pos() int {
	return c.buffer.LineColToPos(c.line, c.col)
}

// SetPos moves the Cursor to the byte position pos, clamped to the buffer.
func (c Cursor) SetPos(pos int) Cursor {
	c.line, c.col = c.buffer.PosToLineCol(pos)
	return c
}

func (c Cursor) Eq(other Cursor) bool {
	return c.line == other.line && c.col == other.col
}

type charclass uint8

const (
	charWhitespace charclass = iota
	charWord
	charSymbol
)

func runeCharclass(r rune) charclass {
	if unicode.IsSpace(r) {
		return charWhitespace
	} else if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return charWord
	}
	return charSymbol
}
