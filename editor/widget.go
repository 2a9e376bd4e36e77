package editor

import (
	"github.com/fivemoreminix/codin/ui/buffer"
	"github.com/gdamore/tcell/v2"
)

// A Widget is the text area a Session edits through. ui.TextEdit is the real one.
// Positions are byte offsets into Text().
type Widget interface {
	// Text returns the whole buffer. There is no implicit trailing newline.
	Text() []byte
	// SetText replaces the buffer, moves the cursor to the start, and forgets
	// tags, selection and undo history.
	SetText(contents []byte)
	// Insert writes s at the cursor, replacing any selection.
	Insert(s string)

	// CursorLine returns the zero-based line of the cursor.
	CursorLine() int
	// LineBeforeCursor returns the text from the start of the cursor's line up to
	// the cursor.
	LineBeforeCursor() string
	// FirstLine returns the first line of the buffer without its delimiter.
	FirstLine() string
	MoveCursorToEnd()

	HasSelection() bool
	DeleteSelection()
	SelectAll()

	// Scroll moves the view by lines without moving the cursor.
	Scroll(lines int)
	// ScrollToCursor scrolls just enough for the cursor to be in view.
	ScrollToCursor()

	ClearTags(syntaxes ...buffer.Syntax)
	AddTag(syntax buffer.Syntax, start, end int)
	// TagCursorLine tags the whole line the cursor is on.
	TagCursorLine(syntax buffer.Syntax)

	IsDirty() bool
	SetDirty(dirty bool)

	// HandleEvent lets the widget do its default handling of a key or mouse event.
	HandleEvent(event tcell.Event) bool
}
