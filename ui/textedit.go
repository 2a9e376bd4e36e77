package ui

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fivemoreminix/codin/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TextEdit is a field for line-based editing. It draws the tags put on its text
// with a Colorscheme, keeps an undo history, and supports selecting with the
// keyboard or by dragging the mouse.
//
// TextEdit knows nothing of languages or highlighting rules: whoever owns it
// decides which tags to put where.
type TextEdit struct {
	Buffer      buffer.Buffer
	Colorscheme buffer.Colorscheme
	LineNumbers bool // Whether to render line numbers (and therefore the column)
	UseHardTabs bool // When true, tabs are '\t'
	TabSize     int  // How many columns a tab occupies, or how many spaces to indent by

	cursor           buffer.Cursor
	scrollx, scrolly int // X and Y offset of view, known as scroll
	dirty            bool

	anchor    int  // Where the selection started; the cursor is the other end
	selecting bool // Whether anchor is in use
	dragging  bool // Whether the primary mouse button went down inside us

	tags    buffer.TagSet
	history buffer.History

	baseComponent
}

// NewTextEdit initializes the buffer with contents.
func NewTextEdit(contents []byte, colorscheme buffer.Colorscheme, theme *Theme) *TextEdit {
	te := &TextEdit{
		Colorscheme:   colorscheme,
		LineNumbers:   true,
		UseHardTabs:   true,
		TabSize:       4,
		baseComponent: baseComponent{theme: theme},
	}
	te.SetText(contents)
	return te
}

// Text returns the whole buffer.
func (t *TextEdit) Text() []byte {
	return t.Buffer.Bytes()
}

// SetText replaces the buffer. The cursor goes to the start, and the tags, the
// selection and the undo history are forgotten. The buffer is clean afterwards.
func (t *TextEdit) SetText(contents []byte) {
	t.Buffer = buffer.NewRopeBuffer(contents)
	t.cursor = buffer.NewCursor(t.Buffer)
	t.scrollx, t.scrolly = 0, 0
	t.selecting, t.dragging = false, false
	t.dirty = false
	t.tags.Clear()
	t.history.Reset()
}

func (t *TextEdit) IsDirty() bool {
	return t.dirty
}

func (t *TextEdit) SetDirty(dirty bool) {
	t.dirty = dirty
}

// replace is the one way text changes: the bytes [start, end) become text. Tags
// are moved along with the text around them, and the edit is recorded for Undo.
func (t *TextEdit) replace(start, end int, text []byte) {
	removed := bytes.Clone(t.Buffer.Range(start, end))
	if len(removed) == 0 && len(text) == 0 {
		return
	}

	t.Buffer.RemoveRange(start, end)
	t.Buffer.InsertAt(start, text)
	t.tags.Shift(start, -len(removed))
	t.tags.Shift(start, len(text))
	t.history.Record(start, removed, text)

	t.selecting = false
	t.dirty = true
	t.cursor = t.cursor.SetPos(start + len(text))
	t.ScrollToCursor()
}

// Insert writes contents at the cursor, replacing the selection if there is one.
// The text is inserted as it is; see HandleEvent for how the Tab key is handled.
func (t *TextEdit) Insert(contents string) {
	pos := t.cursor.Pos()
	start, end := pos, pos
	if sel, ok := t.Selection(); ok {
		start, end = sel.Start, sel.End
	}
	t.replace(start, end, []byte(contents))
}

// Delete with `forwards` false will backspace, destroying the character before the cursor,
// while Delete with `forwards` true will delete the character after the cursor.
// A selection is deleted whole, whichever the direction. A "\r\n" counts as one
// character.
func (t *TextEdit) Delete(forwards bool) {
	if sel, ok := t.Selection(); ok {
		t.replace(sel.Start, sel.End, nil)
		return
	}

	pos := t.cursor.Pos()
	if forwards {
		t.replace(pos, t.nextBoundary(pos), nil)
	} else {
		t.replace(t.prevBoundary(pos), pos, nil)
	}
}

// nextBoundary returns the position after the character at pos.
func (t *TextEdit) nextBoundary(pos int) int {
	if pos >= t.Buffer.Len() {
		return pos
	}
	data := t.Buffer.Range(pos, pos+utf8.UTFMax)
	if bytes.HasPrefix(data, []byte("\r\n")) {
		return pos + 2
	}
	_, size := utf8.DecodeRune(data)
	return pos + size
}

// prevBoundary returns the position of the character before pos.
func (t *TextEdit) prevBoundary(pos int) int {
	if pos <= 0 {
		return 0
	}
	data := t.Buffer.Range(pos-utf8.UTFMax, pos)
	if bytes.HasSuffix(data, []byte("\r\n")) {
		return pos - 2
	}
	_, size := utf8.DecodeLastRune(data)
	return pos - size
}

// Undo reverts the last edit and reports whether there was one. Tags are cleared,
// since they no longer match the text.
func (t *TextEdit) Undo() bool {
	pos, ok := t.history.Undo(t.Buffer)
	if ok {
		t.afterHistory(pos)
	}
	return ok
}

// Redo applies the last undone edit again.
func (t *TextEdit) Redo() bool {
	pos, ok := t.history.Redo(t.Buffer)
	if ok {
		t.afterHistory(pos)
	}
	return ok
}

func (t *TextEdit) afterHistory(pos int) {
	t.tags.Clear()
	t.selecting = false
	t.dirty = true
	t.cursor = t.cursor.SetPos(pos)
	t.ScrollToCursor()
}

// Selection returns the selected region, and false when nothing is selected.
func (t *TextEdit) Selection() (buffer.Region, bool) {
	if !t.selecting {
		return buffer.Region{}, false
	}
	sel := buffer.NewRegion(t.anchor, t.cursor.Pos())
	return sel, !sel.Empty()
}

func (t *TextEdit) HasSelection() bool {
	_, ok := t.Selection()
	return ok
}

// SelectedText returns a copy of the selected bytes, or nil.
func (t *TextEdit) SelectedText() []byte {
	sel, ok := t.Selection()
	if !ok {
		return nil
	}
	return bytes.Clone(t.Buffer.Range(sel.Start, sel.End))
}

// DeleteSelection deletes the selected text. Without a selection it does nothing.
func (t *TextEdit) DeleteSelection() {
	if sel, ok := t.Selection(); ok {
		t.replace(sel.Start, sel.End, nil)
	}
}

// SelectAll selects the whole buffer, leaving the cursor at its end.
func (t *TextEdit) SelectAll() {
	t.anchor = 0
	t.selecting = true
	t.cursor = t.cursor.SetPos(t.Buffer.Len())
	t.ScrollToCursor()
}

func (t *TextEdit) ClearTags(syntaxes ...buffer.Syntax) {
	if len(syntaxes) == 0 {
		t.tags.Clear()
		return
	}
	t.tags.Remove(syntaxes...)
}

func (t *TextEdit) AddTag(syntax buffer.Syntax, start, end int) {
	t.tags.Add(syntax, start, end)
}

// Tags returns the spans tagged with any of syntaxes, or every span.
func (t *TextEdit) Tags(syntaxes ...buffer.Syntax) []buffer.Span {
	return t.tags.Spans(syntaxes...)
}

// TagCursorLine tags the cursor's line, from its first character to its last.
// Earlier spans of syntax on that line are replaced.
func (t *TextEdit) TagCursorLine(syntax buffer.Syntax) {
	line, _ := t.cursor.GetLineCol()
	start, content := t.lineContent(line)
	t.tags.Untag(syntax, start, start+len(content))
	t.tags.Add(syntax, start, start+len(content))
}

// lineContent returns where a line starts and its bytes without the delimiter.
func (t *TextEdit) lineContent(line int) (int, []byte) {
	start := t.Buffer.LineColToPos(line, 0)
	end := t.Buffer.LineColToPos(line, t.Buffer.RunesInLine(line))
	return start, t.Buffer.Range(start, end)
}

func (t *TextEdit) GetCursor() buffer.Cursor {
	return t.cursor
}

// SetCursor moves the cursor and drops the selection.
func (t *TextEdit) SetCursor(newCursor buffer.Cursor) {
	t.selecting = false
	t.cursor = newCursor
	t.ScrollToCursor()
}

// CursorLineCol returns the zero-based line and rune column of the cursor.
func (t *TextEdit) CursorLineCol() (line, col int) {
	return t.cursor.GetLineCol()
}

func (t *TextEdit) CursorLine() int {
	line, _ := t.cursor.GetLineCol()
	return line
}

func (t *TextEdit) LineBeforeCursor() string {
	line, _ := t.cursor.GetLineCol()
	start := t.Buffer.LineColToPos(line, 0)
	return string(t.Buffer.Range(start, t.cursor.Pos()))
}

func (t *TextEdit) FirstLine() string {
	_, content := t.lineContent(0)
	return string(content)
}

func (t *TextEdit) MoveCursorToEnd() {
	t.SetCursor(t.cursor.SetPos(t.Buffer.Len()))
}

// GotoLine moves the cursor to the start of the one-based line, clamped to the
// buffer.
func (t *TextEdit) GotoLine(line int) {
	t.SetCursor(t.cursor.SetLineCol(line-1, 0))
}

// moveCursor puts the cursor at c. With extend the selection grows from where
// the cursor was; otherwise the selection is dropped.
func (t *TextEdit) moveCursor(c buffer.Cursor, extend bool) {
	if extend {
		if !t.selecting {
			t.anchor = t.cursor.Pos()
			t.selecting = true
		}
	} else {
		t.selecting = false
	}
	t.cursor = c
	t.ScrollToCursor()
}

// tabSize is TabSize, but never less than one.
func (t *TextEdit) tabSize() int {
	return max(t.TabSize, 1)
}

// advance returns the visual column after drawing r at column vc. Tabs advance
// to the next tab stop.
func (t *TextEdit) advance(vc int, r rune) int {
	if r == '\t' {
		return vc + t.tabSize() - vc%t.tabSize()
	}
	return vc + max(runewidth.RuneWidth(r), 1)
}

// visualCol returns the screen column (before scrolling) of the rune at runeCol.
func (t *TextEdit) visualCol(content []byte, runeCol int) int {
	vc := 0
	for _, r := range string(content) {
		if runeCol <= 0 {
			break
		}
		vc = t.advance(vc, r)
		runeCol--
	}
	return vc
}

// runeColAt returns the rune column drawn at the visual column vc.
func (t *TextEdit) runeColAt(content []byte, vc int) int {
	col, at := 0, 0
	for _, r := range string(content) {
		next := t.advance(at, r)
		if vc < next {
			return col
		}
		at = next
		col++
	}
	return col
}

// Scroll moves the view by lines without moving the cursor.
func (t *TextEdit) Scroll(lines int) {
	t.scrolly = buffer.Clamp(t.scrolly+lines, 0, t.Buffer.Lines()-1)
}

// ScrollPos returns the first visible line and column.
func (t *TextEdit) ScrollPos() (x, y int) {
	return t.scrollx, t.scrolly
}

// ScrollToCursor scrolls the view just enough to show the cursor.
func (t *TextEdit) ScrollToCursor() {
	line, col := t.cursor.GetLineCol()
	height := max(t.height, 1)

	// Scroll the screen when going to lines out of view
	if line >= t.scrolly+height { // If the new line is below view...
		t.scrolly = line - height + 1 // Scroll just enough to view that line
	}
	if line < t.scrolly { // If the new line is above view
		t.scrolly = line
	}

	_, content := t.lineContent(line)
	vc := t.visualCol(content, col)
	textWidth := max(t.width-t.getColumnWidth(), 1)

	// Scroll the screen horizontally when going to columns out of view
	if vc >= t.scrollx+textWidth { // If the new column is right of view
		t.scrollx = vc - textWidth + 1 // Scroll just enough to view that column
	}
	if vc < t.scrollx { // If the new column is left of view
		t.scrollx = vc
	}
}

// getColumnWidth returns the width of the line numbers column if it is present.
func (t *TextEdit) getColumnWidth() int {
	if !t.LineNumbers {
		return 0
	}
	// Digits of the greatest line number, a space before and a separator after
	return max(3, 2+len(strconv.Itoa(t.Buffer.Lines())))
}

// posAt returns the buffer position drawn at the screen cell x, y. Cells past
// the end of a line map to its end.
func (t *TextEdit) posAt(x, y int) int {
	line := buffer.Clamp(y-t.y+t.scrolly, 0, t.Buffer.Lines()-1)
	_, content := t.lineContent(line)
	col := t.runeColAt(content, max(x-t.x-t.getColumnWidth(), 0)+t.scrollx)
	return t.Buffer.LineColToPos(line, col)
}

// Draw renders the TextEdit component.
func (t *TextEdit) Draw(s tcell.Screen) {
	columnWidth := t.getColumnWidth()
	textWidth := t.width - columnWidth
	bufferLines := t.Buffer.Lines()

	defaultStyle := t.Colorscheme.GetStyle(buffer.Default)
	columnStyle := t.Colorscheme.GetStyle(buffer.Column)
	selectedStyle := t.theme.GetOrDefault("TextEditSelected")
	sel, hasSel := t.Selection()

	DrawRect(s, t.x+columnWidth, t.y, textWidth, t.height, ' ', defaultStyle)

	// put draws r at visual column vc of row y, when it is in view.
	put := func(vc, y int, r rune, style tcell.Style) {
		if vc >= t.scrollx && vc-t.scrollx < textWidth {
			s.SetContent(t.x+columnWidth+vc-t.scrollx, y, r, nil, style)
		}
	}

	for row := 0; row < t.height; row++ {
		line := row + t.scrolly // The line number being drawn (starts at zero)
		y := t.y + row

		if t.LineNumbers {
			lineNumStr := ""
			if line < bufferLines {
				lineNumStr = strconv.Itoa(line + 1)
			}
			columnStr := strings.Repeat(" ", columnWidth-len(lineNumStr)-1) + lineNumStr + "│" // Right align line number
			DrawStr(s, t.x, y, columnStr, columnStyle)
		}

		if line >= bufferLines {
			continue
		}

		start, content := t.lineContent(line)
		spans := t.tags.Within(start, start+len(content))

		vc := 0
		for i, r := range string(content) {
			pos := start + i
			next := t.advance(vc, r)

			style := t.Colorscheme.GetStyle(buffer.StyleSyntax(spans, pos))
			if hasSel && sel.Contains(pos) {
				style = selectedStyle
			}

			switch {
			case r == '\t':
				for c := vc; c < next; c++ {
					put(c, y, ' ', style)
				}
			case r < ' ':
				put(vc, y, '?', style) // Other control characters
			default:
				put(vc, y, r, style)
			}
			vc = next
		}

		// Show a selected line break as one selected cell.
		if hasSel && line < bufferLines-1 && sel.Contains(start+len(content)) {
			put(vc, y, ' ', selectedStyle)
		}
	}

	if t.focused {
		line, col := t.cursor.GetLineCol()
		_, content := t.lineContent(line)
		vc := t.visualCol(content, col) - t.scrollx
		row := line - t.scrolly
		if vc >= 0 && vc < textWidth && row >= 0 && row < t.height {
			s.ShowCursor(t.x+columnWidth+vc, t.y+row)
		}
	}
}

// HandleEvent handles keys when the TextEdit is focused, and the primary mouse
// button inside it. Returns whether the TextEdit handled the event.
func (t *TextEdit) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		if !t.focused {
			return false
		}
		return t.handleKey(ev)
	case *tcell.EventMouse:
		return t.handleMouse(ev)
	}
	return false
}

func (t *TextEdit) handleKey(ev *tcell.EventKey) bool {
	shift := ev.Modifiers()&tcell.ModShift != 0
	word := ev.Modifiers()&tcell.ModCtrl != 0

	switch ev.Key() {
	// Cursor movement
	case tcell.KeyUp:
		t.moveCursor(t.cursor.Up(), shift)
	case tcell.KeyDown:
		t.moveCursor(t.cursor.Down(), shift)
	case tcell.KeyLeft:
		if word {
			t.moveCursor(t.cursor.PrevWordStart(), shift)
		} else {
			t.moveCursor(t.cursor.Left(), shift)
		}
	case tcell.KeyRight:
		if word {
			t.moveCursor(t.cursor.NextWordEnd(), shift)
		} else {
			t.moveCursor(t.cursor.Right(), shift)
		}
	case tcell.KeyHome:
		cursLine, _ := t.cursor.GetLineCol()
		t.moveCursor(t.cursor.SetLineCol(cursLine, 0), shift)
	case tcell.KeyEnd:
		cursLine, _ := t.cursor.GetLineCol()
		t.moveCursor(t.cursor.SetLineCol(cursLine, math.MaxInt32), shift) // Max column
	case tcell.KeyPgUp:
		cursLine, cursCol := t.cursor.GetLineCol()
		t.moveCursor(t.cursor.SetLineCol(cursLine-t.height, cursCol), shift) // Go a page up
	case tcell.KeyPgDn:
		cursLine, cursCol := t.cursor.GetLineCol()
		t.moveCursor(t.cursor.SetLineCol(cursLine+t.height, cursCol), shift) // Go a page down

	// Deleting
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		t.Delete(false)
	case tcell.KeyDelete:
		t.Delete(true)

	// Other control
	case tcell.KeyTab:
		if t.UseHardTabs {
			t.Insert("\t")
		} else {
			t.Insert(strings.Repeat(" ", t.tabSize()))
		}
	case tcell.KeyEnter:
		t.Insert("\n")

	// Inserting
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return false // Left for shortcuts
		}
		t.Insert(string(ev.Rune()))
	default:
		return false
	}
	return true
}

// handleMouse places the cursor where the primary button goes down, and selects
// while it is dragged.
func (t *TextEdit) handleMouse(ev *tcell.EventMouse) bool {
	x, y, down := primaryDown(ev)
	if !down {
		wasDragging := t.dragging
		t.dragging = false
		return wasDragging
	}
	if !t.dragging && !t.contains(x, y) {
		return false
	}

	pos := t.posAt(x, y)
	if !t.dragging {
		t.dragging = true
		t.anchor = pos
		t.selecting = false
	} else {
		t.selecting = true
	}
	t.cursor = t.cursor.SetPos(pos)
	t.ScrollToCursor()
	return true
}
