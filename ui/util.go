package ui

import (
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// QuickCharInString is used for finding the "quick char" in a string. The rune
// is always made lowercase. A rune of value zero is returned if the index was
// less than zero, or greater or equal to, the number of runes in s.
func QuickCharInString(s string, idx int) rune {
	if idx < 0 {
		return 0
	}

	var runeIdx int
	for i := 0; i < len(s); runeIdx++ { // i is a byte index
		r, size := utf8.DecodeRuneInString(s[i:])
		if runeIdx == idx {
			return unicode.ToLower(r)
		}
		i += size
	}
	return 0
}

// inRect reports whether the cell at px, py is within the rectangle.
func inRect(px, py, x, y, width, height int) bool {
	return px >= x && px < x+width && py >= y && py < y+height
}

// primaryDown returns the position of a mouse event and whether the primary
// button is down.
func primaryDown(ev *tcell.EventMouse) (x, y int, down bool) {
	x, y = ev.Position()
	return x, y, ev.Buttons()&tcell.Button1 != 0
}
