// Package editor holds the state of the one buffer being edited and decides what
// happens on each event: language detection, highlighting, auto-indent, the
// press-and-hold gesture, and loading and saving.
package editor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fivemoreminix/codin/ui/buffer"
	"github.com/gdamore/tcell/v2"
)

const DefaultAppName = "CodiN"

// Options configure a Session. The zero value of every field has a usable default,
// except Scheduler, which is required for the hold gesture.
type Options struct {
	AppName   string
	Scheduler Scheduler
	HoldDelay time.Duration
	// Notify is called with soft errors the user should see, like ErrMissingMarker.
	Notify func(err error)
	Logger *slog.Logger
}

// A Session is the in-memory state of one open buffer: its text (kept by the
// Widget), its file name and its language. It is created at startup, reset by
// New, refilled by Open, and lives until the program exits. Every method must be
// called from the event loop goroutine.
type Session struct {
	AppName string

	widget      Widget
	filename    string
	language    buffer.Language
	highlighter *buffer.Highlighter
	hold        *HoldGesture
	notify      func(err error)
	log         *slog.Logger

	handlers   map[EventKind]Handler
	buttonDown bool
}

func NewSession(widget Widget, opts Options) *Session {
	s := &Session{
		AppName:     opts.AppName,
		widget:      widget,
		highlighter: buffer.NewHighlighter(),
		notify:      opts.Notify,
		log:         opts.Logger,
	}
	if s.AppName == "" {
		s.AppName = DefaultAppName
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.hold = NewHoldGesture(opts.Scheduler, opts.HoldDelay, widget.SelectAll)
	s.handlers = s.defaultHandlers()
	return s
}

func (s *Session) Filename() string {
	return s.filename
}

func (s *Session) Language() buffer.Language {
	return s.language
}

func (s *Session) Dirty() bool {
	return s.widget.IsDirty()
}

// Title is the window title: the application name, and the base name of the
// file when there is one.
func (s *Session) Title() string {
	if s.filename == "" {
		return s.AppName
	}
	return s.AppName + " - " + filepath.Base(s.filename)
}

// New forgets the file, the language and all of the text.
func (s *Session) New() {
	s.filename = ""
	s.language = buffer.Unset
	s.highlighter.Reset()
	s.hold.Release()
	s.widget.SetText(nil)
	s.log.Info("new buffer")
}

// Open replaces the buffer with the contents of the file at path. On failure the
// session is left as it was.
func (s *Session) Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	contents, err := os.ReadFile(abs)
	if err != nil {
		s.log.Error("open failed", "path", abs, "err", err)
		return fmt.Errorf("opening file: %w", err)
	}

	s.filename = abs
	s.language = buffer.Unset
	s.highlighter.Reset()
	s.hold.Release()
	s.widget.SetText(contents)
	s.widget.MoveCursorToEnd() // Loading leaves the cursor after the inserted text
	s.log.Info("opened file", "path", abs, "bytes", len(contents))

	// A missing marker is reported through Notify; it does not fail the open.
	_ = s.DetectLanguage()
	s.Rehighlight()
	return nil
}

// Save writes the buffer, unchanged, to the session's file.
func (s *Session) Save() error {
	if s.filename == "" {
		return ErrNoFilename
	}
	return s.write(s.filename)
}

// SaveAs writes the buffer to path and makes it the session's file.
func (s *Session) SaveAs(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := s.write(abs); err != nil {
		return err
	}
	s.filename = abs
	return nil
}

func (s *Session) write(path string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm() // Keep the permissions of an existing file
	}

	contents := s.widget.Text()
	if err := os.WriteFile(path, contents, mode); err != nil {
		s.log.Error("save failed", "path", path, "err", err)
		return fmt.Errorf("saving file: %w", err)
	}
	s.widget.SetDirty(false)
	s.log.Info("saved file", "path", path, "bytes", len(contents))
	return nil
}

// DetectLanguage sets the session language from the first-line marker. Without a
// marker the language stays unset; when the cursor has already left the first
// line, the cursor's line is tagged as an error and ErrMissingMarker is reported
// and returned. While the cursor is on the first line the user may still be
// typing the marker, so nothing is reported.
func (s *Session) DetectLanguage() error {
	lang, ok := buffer.DetectLanguage(s.widget.FirstLine())
	if ok {
		s.language = lang
		s.log.Info("language detected", "language", string(lang), "known", lang.Known())
		s.Rehighlight()
		return nil
	}

	s.language = buffer.Unset
	if s.widget.CursorLine() == 0 {
		return nil
	}
	s.widget.TagCursorLine(buffer.Error)
	s.log.Warn("missing language marker", "line", s.widget.CursorLine()+1)
	s.report(ErrMissingMarker)
	return ErrMissingMarker
}

// Rehighlight recomputes the semantic tags of the whole buffer. With an unset or
// unknown language the widget's tags are left untouched.
func (s *Session) Rehighlight() {
	if !s.highlighter.Rehighlight(s.widget.Text(), s.language) {
		return
	}
	s.widget.ClearTags(buffer.SemanticTags...)
	for _, sp := range s.highlighter.Spans() {
		s.widget.AddTag(sp.Syntax, sp.Start, sp.End)
	}
}

// KeyReleased runs after every key the widget handled: it looks for the language
// marker once the cursor is off the first line, then highlights.
func (s *Session) KeyReleased() {
	if !s.language.IsSet() && s.widget.CursorLine() != 0 {
		_ = s.DetectLanguage()
	}
	s.Rehighlight()
}

// Return inserts a newline and the auto-indent of the cursor's line. It replaces
// the widget's own handling of Enter.
func (s *Session) Return() {
	s.widget.Insert(buffer.NewlineIndent(s.widget.LineBeforeCursor()))
}

// DeleteSelection deletes the selected text, or returns ErrNoSelection.
func (s *Session) DeleteSelection() error {
	if !s.widget.HasSelection() {
		return ErrNoSelection
	}
	s.widget.DeleteSelection()
	s.Rehighlight()
	return nil
}

// SelectAll selects the entire buffer.
func (s *Session) SelectAll() {
	s.widget.SelectAll()
}

func (s *Session) ScrollUp() {
	s.widget.Scroll(-1)
}

func (s *Session) ScrollDown() {
	s.widget.Scroll(1)
}

// PointerPressed starts the press-and-hold timer.
func (s *Session) PointerPressed() {
	s.hold.Press()
}

// PointerReleased cancels the press-and-hold timer, if one is running.
func (s *Session) PointerReleased() {
	s.hold.Release()
}

// HoldWaiting reports whether a press is waiting to become a select-all.
func (s *Session) HoldWaiting() bool {
	return s.hold.Waiting()
}

func (s *Session) report(err error) {
	if s.notify != nil {
		s.notify(err)
	}
}

// IsNotExist reports whether err means a file was not found.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// HandleEvent runs the handler registered for the kind of event, returning
// whether the event was handled.
func (s *Session) HandleEvent(event tcell.Event) bool {
	h, ok := s.handlers[s.classify(event)]
	if !ok {
		return false
	}
	return h(event)
}
