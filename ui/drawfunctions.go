package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawRect renders a filled box at `x` and `y`, of size `width` and `height`.
// Will not call `Show()`.
func DrawRect(s tcell.Screen, x, y, width, height int, char rune, style tcell.Style) {
	for col := x; col < x+width; col++ {
		for row := y; row < y+height; row++ {
			s.SetContent(col, row, char, nil, style)
		}
	}
}

// DrawStr renders str at `x` and `y`, and returns the number of columns it used.
// A '\n' continues on the next row at `x`. Wide runes take two columns.
func DrawStr(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	col, widest := x, 0
	for _, r := range str {
		if r == '\n' {
			col = x
			y++
			continue
		}
		s.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
		widest = max(widest, col-x)
	}
	return widest
}

// DrawQuickCharStr renders str like DrawStr, but the rune at index quickChar is
// drawn with the "QuickChar" colors over the background of style. A negative
// quickChar draws the plain string. Returns the number of columns used.
func DrawQuickCharStr(s tcell.Screen, x, y int, str string, quickChar int, style tcell.Style, theme *Theme) int {
	_, bg, _ := style.Decompose()
	qfg, _, _ := theme.GetOrDefault("QuickChar").Decompose()
	quickStyle := style.Foreground(qfg).Background(bg).Underline(true)

	col := x
	var runeIdx int
	for _, r := range str {
		sty := style
		if runeIdx == quickChar {
			sty = quickStyle
		}
		s.SetContent(col, y, r, nil, sty)
		col += runewidth.RuneWidth(r)
		runeIdx++
	}
	return col - x
}

// DrawRectOutline draws only the outline of a rectangle, using `ul`, `ur`, `bl`, and `br`
// for the corner runes, and `hor` and `vert` for the horizontal and vertical runes, respectively.
func DrawRectOutline(s tcell.Screen, x, y, _width, _height int, ul, ur, bl, br, hor, vert rune, style tcell.Style) {
	width := x + _width - 1   // Length across
	height := y + _height - 1 // Length top-to-bottom

	// Horizontals and verticals
	for col := x + 1; col < width; col++ {
		s.SetContent(col, y, hor, nil, style)      // Top line
		s.SetContent(col, height, hor, nil, style) // Bottom line
	}
	for row := y + 1; row < height; row++ {
		s.SetContent(x, row, vert, nil, style)     // Left line
		s.SetContent(width, row, vert, nil, style) // Right line
	}
	// Corners
	s.SetContent(x, y, ul, nil, style)
	s.SetContent(width, y, ur, nil, style)
	s.SetContent(x, height, bl, nil, style)
	s.SetContent(width, height, br, nil, style)
}

// DrawRectOutlineDefault calls DrawRectOutline with the default edge runes.
func DrawRectOutlineDefault(s tcell.Screen, x, y, width, height int, style tcell.Style) {
	DrawRectOutline(s, x, y, width, height, '┌', '┐', '└', '┘', '─', '│', style)
}

// DrawShadow darkens the cells one column right of and one row below the box
// at `x`, `y`, keeping their characters.
func DrawShadow(s tcell.Screen, x, y, width, height int) {
	shadow := tcell.Style{}.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	for row := y + 1; row <= y+height; row++ {
		r, _, _, _ := s.GetContent(x+width, row)
		s.SetContent(x+width, row, r, nil, shadow)
	}
	for col := x + 1; col < x+width; col++ {
		r, _, _, _ := s.GetContent(col, y+height)
		s.SetContent(col, y+height, r, nil, shadow)
	}
}

// DrawWindow draws a window: a "WindowHeader" row with the title centered, over
// a "Window" body, with a shadow.
func DrawWindow(s tcell.Screen, x, y, width, height int, title string, theme *Theme) {
	headerStyle := theme.GetOrDefault("WindowHeader")

	DrawRect(s, x, y, width, 1, ' ', headerStyle)
	DrawStr(s, x+width/2-runewidth.StringWidth(title)/2, y, title, headerStyle)
	DrawRect(s, x, y+1, width, height-1, ' ', theme.GetOrDefault("Window"))
	DrawShadow(s, x, y, width, height)
}
