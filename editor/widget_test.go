package editor

import (
	"strings"
	"time"

	"github.com/fivemoreminix/codin/ui/buffer"
	"github.com/gdamore/tcell/v2"
)

// fakeWidget is a Widget without a screen. Typed runes are inserted at the
// cursor, and mouse events are counted.
type fakeWidget struct {
	buf      *buffer.RopeBuffer
	cursor   int
	sel      buffer.Region
	tags     buffer.TagSet
	dirty    bool
	scroll   int
	mouse    int
	selected int // Times SelectAll was called
}

func newFakeWidget(text string) *fakeWidget {
	return &fakeWidget{buf: buffer.NewRopeBuffer([]byte(text))}
}

func (w *fakeWidget) Text() []byte { return w.buf.Bytes() }

func (w *fakeWidget) SetText(contents []byte) {
	w.buf = buffer.NewRopeBuffer(contents)
	w.cursor = 0
	w.sel = buffer.Region{}
	w.tags.Clear()
	w.dirty = false
}

func (w *fakeWidget) Insert(s string) {
	if w.HasSelection() {
		w.DeleteSelection()
	}
	w.buf.InsertAt(w.cursor, []byte(s))
	w.tags.Shift(w.cursor, len(s))
	w.cursor += len(s)
	w.dirty = true
}

func (w *fakeWidget) CursorLine() int {
	line, _ := w.buf.PosToLineCol(w.cursor)
	return line
}

func (w *fakeWidget) LineBeforeCursor() string {
	text := string(w.buf.Range(0, w.cursor))
	return text[strings.LastIndexByte(text, '\n')+1:]
}

func (w *fakeWidget) FirstLine() string {
	return strings.TrimRight(string(w.buf.Line(0)), "\r\n")
}

func (w *fakeWidget) MoveCursorToEnd() { w.cursor = w.buf.Len() }

func (w *fakeWidget) HasSelection() bool { return !w.sel.Empty() }

func (w *fakeWidget) DeleteSelection() {
	w.buf.RemoveRange(w.sel.Start, w.sel.End)
	w.tags.Shift(w.sel.Start, w.sel.Start-w.sel.End)
	w.cursor = w.sel.Start
	w.sel = buffer.Region{}
	w.dirty = true
}

func (w *fakeWidget) SelectAll() {
	w.selected++
	w.sel = buffer.NewRegion(0, w.buf.Len())
}

func (w *fakeWidget) Scroll(lines int) { w.scroll += lines }
func (w *fakeWidget) ScrollToCursor()  {}

func (w *fakeWidget) ClearTags(syntaxes ...buffer.Syntax) { w.tags.Remove(syntaxes...) }

func (w *fakeWidget) AddTag(syntax buffer.Syntax, start, end int) { w.tags.Add(syntax, start, end) }

func (w *fakeWidget) TagCursorLine(syntax buffer.Syntax) {
	line := w.CursorLine()
	start := w.buf.LineColToPos(line, 0)
	end := start + len(strings.TrimRight(string(w.buf.Line(line)), "\r\n"))
	w.tags.Untag(syntax, start, end)
	w.tags.Add(syntax, start, end)
}

func (w *fakeWidget) IsDirty() bool       { return w.dirty }
func (w *fakeWidget) SetDirty(dirty bool) { w.dirty = dirty }

func (w *fakeWidget) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			w.Insert(string(ev.Rune()))
			return true
		}
	case *tcell.EventMouse:
		w.mouse++
		return true
	}
	return false
}

// tagged returns the text of every span with syntax.
func (w *fakeWidget) tagged(syntax buffer.Syntax) []string {
	var texts []string
	for _, sp := range w.tags.Spans(syntax) {
		texts = append(texts, string(w.buf.Range(sp.Start, sp.End)))
	}
	return texts
}

// manualScheduler runs nothing until its clock is advanced.
type manualScheduler struct {
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d and runs every timer that came due.
func (s *manualScheduler) Advance(d time.Duration) {
	s.now += d
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			t.f()
		}
	}
}

// pending returns how many timers are neither stopped nor fired.
func (s *manualScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// chanPoster collects posted events.
type chanPoster chan tcell.Event

func (p chanPoster) PostEvent(ev tcell.Event) error {
	p <- ev
	return nil
}
