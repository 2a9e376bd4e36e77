package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fivemoreminix/codin/config"
	"github.com/fivemoreminix/codin/editor"
	"github.com/fivemoreminix/codin/ui"
	"github.com/fivemoreminix/codin/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, cfg config.Config) (*App, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(80, 25)
	t.Cleanup(s.Fini)

	cfg.WatchFiles = false
	clip, err := NewClipboard(false)
	require.NoError(t, err)

	a := NewApp(s, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), clip)
	t.Cleanup(func() { _ = a.Close() })
	return a, s
}

func typeText(a *App, text string) {
	for _, r := range text {
		if r == '\n' {
			a.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
			continue
		}
		a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func press(a *App, k tcell.Key) {
	a.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func ctrl(a *App, k tcell.Key) {
	a.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModCtrl))
}

func screenRow(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	row := make([]rune, w)
	for x := range row {
		row[x], _, _, _ = s.GetContent(x, y)
	}
	return string(row)
}

func TestAppTypingDetectsLanguage(t *testing.T) {
	a, _ := newTestApp(t, config.Default())

	typeText(a, "# --++Python++--\ndef f(self):\n")
	assert.Equal(t, "# --++Python++--\ndef f(self):\n    ", string(a.textEdit.Text()))
	assert.Equal(t, buffer.Python, a.Language())
	assert.Nil(t, a.dialog)

	assert.Contains(t, a.textEdit.Tags(buffer.Keyword), buffer.Span{Start: 17, End: 20, Syntax: buffer.Keyword})
	assert.Contains(t, a.textEdit.Tags(buffer.Builtin), buffer.Span{Start: 23, End: 27, Syntax: buffer.Builtin})
}

func TestAppMissingMarker(t *testing.T) {
	a, _ := newTestApp(t, config.Default())

	typeText(a, "hello")
	assert.Nil(t, a.dialog, "silent while on the first line")

	typeText(a, "\n")
	d, ok := a.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, editor.MissingMarkerHelp, d.Message())
	assert.Equal(t, d, a.focused)

	press(a, tcell.KeyEnter) // OK
	assert.Nil(t, a.dialog)
	assert.Equal(t, a.textEdit, a.focused)
	assert.Equal(t, "hello\n", string(a.textEdit.Text()), "editing continues")
}

func TestAppMissingMarkerKeepsOneErrorTag(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	typeText(a, "no marker\n")
	require.NotNil(t, a.dialog)

	for i := 0; i < 1000; i++ {
		a.session.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	}
	assert.Equal(t, []buffer.Span{{Start: 10, End: 1010, Syntax: buffer.Error}}, a.textEdit.Tags(buffer.Error))
}

func TestAppSaveAsWhenUnnamed(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	path := filepath.Join(t.TempDir(), "main.rb")

	typeText(a, "# --++Ruby++--\nputs 1")
	ctrl(a, tcell.KeyCtrlS)
	_, ok := a.dialog.(*ui.FileSelectorDialog)
	require.True(t, ok, "saving an unnamed buffer asks for a path")

	typeText(a, path+"\n")
	assert.Nil(t, a.dialog)
	assert.Equal(t, path, a.session.Filename())
	assert.False(t, a.session.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# --++Ruby++--\nputs 1", string(data))
}

func TestAppOpenAndSave(t *testing.T) {
	a, s := newTestApp(t, config.Default())
	path := filepath.Join(t.TempDir(), "init.lua")
	require.NoError(t, os.WriteFile(path, []byte("# --++Lua++--\nlocal x"), 0o644))

	a.Open(path)
	require.Nil(t, a.dialog)
	assert.Equal(t, buffer.Lua, a.Language())

	typeText(a, " = nil")
	assert.True(t, a.session.Dirty())
	a.Draw()
	assert.Contains(t, screenRow(s, 1), " CodiN - init.lua * ")

	ctrl(a, tcell.KeyCtrlS)
	assert.Nil(t, a.dialog)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# --++Lua++--\nlocal x = nil", string(data))

	a.Draw()
	assert.Contains(t, screenRow(s, 1), " CodiN - init.lua ")
	assert.NotContains(t, screenRow(s, 1), "*")
	assert.Contains(t, screenRow(s, 24), "Ln 2, Col 14 | lua | Saved ")
}

func TestAppOpenMissingFile(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	typeText(a, "keep")

	a.Open(filepath.Join(t.TempDir(), "nope.py"))
	d, ok := a.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, ui.MessageKindWarning, d.Kind, "a missing file is not a failure")
	assert.Contains(t, d.Message(), "opening file")
	assert.Equal(t, "keep", string(a.textEdit.Text()))
}

func TestAppOpenDirectory(t *testing.T) {
	a, _ := newTestApp(t, config.Default())

	a.Open(t.TempDir())
	d, ok := a.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, ui.MessageKindError, d.Kind)
}

func TestAppNewAsksToDiscard(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	typeText(a, "draft")

	ctrl(a, tcell.KeyCtrlN)
	require.NotNil(t, a.dialog)
	press(a, tcell.KeyEscape)
	assert.Equal(t, "draft", string(a.textEdit.Text()))

	ctrl(a, tcell.KeyCtrlN)
	press(a, tcell.KeyEnter) // Discard
	assert.Empty(t, a.textEdit.Text())
	assert.Nil(t, a.dialog)
}

func TestAppCutPaste(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	typeText(a, "# --++Lua++--\nlocal x")

	ctrl(a, tcell.KeyCtrlA)
	ctrl(a, tcell.KeyCtrlX)
	assert.Empty(t, a.textEdit.Text())
	clipped, err := a.clip.Read()
	require.NoError(t, err)
	assert.Equal(t, "# --++Lua++--\nlocal x", clipped)

	ctrl(a, tcell.KeyCtrlV)
	ctrl(a, tcell.KeyCtrlV)
	assert.Equal(t, "# --++Lua++--\nlocal x# --++Lua++--\nlocal x", string(a.textEdit.Text()))
}

func TestAppNothingSelected(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	typeText(a, "abc")

	ctrl(a, tcell.KeyCtrlC)
	d, ok := a.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, editor.ErrNoSelection.Error(), d.Message())
	press(a, tcell.KeyEnter)

	a.deleteSelection()
	d, ok = a.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, ui.MessageKindWarning, d.Kind)
	assert.Equal(t, "abc", string(a.textEdit.Text()))
}

func TestAppUndoRedo(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	typeText(a, "ab")

	ctrl(a, tcell.KeyCtrlZ)
	assert.Equal(t, "a", string(a.textEdit.Text()))
	ctrl(a, tcell.KeyCtrlY)
	assert.Equal(t, "ab", string(a.textEdit.Text()))
	ctrl(a, tcell.KeyCtrlY)
	assert.Equal(t, "Nothing to redo", a.message)
}

func TestAppQuit(t *testing.T) {
	a, _ := newTestApp(t, config.Default())

	ctrl(a, tcell.KeyCtrlQ)
	d, ok := a.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, "Do you really want to quit?", d.Message())
	press(a, tcell.KeyEscape)
	assert.False(t, a.quit)

	ctrl(a, tcell.KeyCtrlQ)
	press(a, tcell.KeyEnter) // OK
	assert.True(t, a.quit)
}

func TestAppEscapeReachesMenus(t *testing.T) {
	a, _ := newTestApp(t, config.Default())

	press(a, tcell.KeyEscape)
	assert.Equal(t, a.bar, a.focused)
	typeText(a, "h") // Help
	require.True(t, a.bar.MenusVisible())
	typeText(a, "a") // About
	d, ok := a.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, aboutText, d.Message())
	assert.False(t, a.bar.MenusVisible())

	press(a, tcell.KeyEnter)
	assert.Equal(t, a.textEdit, a.focused)

	press(a, tcell.KeyEscape)
	press(a, tcell.KeyEscape)
	assert.Equal(t, a.textEdit, a.focused)
}

func TestAppGotoLine(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	typeText(a, "# --++Cpp++--\na\nb\nc")

	ctrl(a, tcell.KeyCtrlG)
	_, ok := a.dialog.(*GotoLineDialog)
	require.True(t, ok)
	typeText(a, "2\n")
	assert.Nil(t, a.dialog)
	assert.Equal(t, 1, a.textEdit.CursorLine())
}

func TestAppFullGuide(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	var opened []string
	a.OpenURL = func(url string) error {
		opened = append(opened, url)
		return nil
	}

	a.openGuide()
	assert.Equal(t, []string{config.DefaultHelpURL}, opened)
	assert.Nil(t, a.dialog)

	a.OpenURL = func(string) error { return errors.New("no browser") }
	a.openGuide()
	d, ok := a.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Contains(t, d.Message(), "no browser")
}

func TestAppFileChangedOnDisk(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	path := filepath.Join(t.TempDir(), "x.py")
	require.NoError(t, os.WriteFile(path, []byte("# --++Python++--\n"), 0o644))
	a.Open(path)

	require.NoError(t, os.WriteFile(path, []byte("# --++Python++--\npass\n"), 0o644))
	a.HandleEvent(&editor.FileChangedEvent{Path: a.session.Filename()})
	d, ok := a.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, "x.py changed on disk", d.Message())

	press(a, tcell.KeyEnter) // Reload
	assert.Equal(t, "# --++Python++--\npass\n", string(a.textEdit.Text()))

	a.HandleEvent(&editor.FileChangedEvent{Path: "/elsewhere/y.py"})
	assert.Nil(t, a.dialog, "other files are ignored")

	a.HandleEvent(&editor.FileChangedEvent{Path: a.session.Filename(), Removed: true})
	d, ok = a.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, "x.py was removed from disk", d.Message())
}

func TestAppHoldSelectsAll(t *testing.T) {
	cfg := config.Default()
	cfg.HoldSelectAllMs = 20
	a, s := newTestApp(t, cfg)
	typeText(a, "abc")

	a.HandleEvent(tcell.NewEventMouse(5, 2, tcell.Button1, tcell.ModNone))
	assert.True(t, a.session.HoldWaiting())

	deadline := time.Now().Add(5 * time.Second)
	for !a.textEdit.HasSelection() && time.Now().Before(deadline) {
		ev := s.PollEvent()
		if _, ok := ev.(*editor.TimerEvent); ok {
			a.HandleEvent(ev)
		}
	}
	assert.True(t, a.textEdit.HasSelection())
	assert.Equal(t, "abc", string(a.textEdit.SelectedText()))

	a.HandleEvent(tcell.NewEventMouse(5, 2, tcell.ButtonNone, tcell.ModNone))
	assert.False(t, a.pressing)
}

func TestAppPressOutsideTextIsIgnored(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	a.HandleEvent(tcell.NewEventMouse(0, 24, tcell.Button1, tcell.ModNone)) // Status line
	assert.False(t, a.session.HoldWaiting())
	assert.False(t, a.pressing)
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "codin.log")

	logger, closeLog, err := newLogger(cfg)
	require.NoError(t, err)
	logger.Info("hello")
	closeLog()

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")

	cfg.LogFile = ""
	logger, closeLog, err = newLogger(cfg)
	require.NoError(t, err)
	logger.Info("nowhere")
	closeLog()
}

func TestGotoLineDialogRejectsText(t *testing.T) {
	var chosen []int
	d := NewGotoLineDialog(nil, func(line int) { chosen = append(chosen, line) }, nil)
	d.SetSize(d.GetMinSize())
	d.SetFocused(true)

	d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	d.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Empty(t, chosen)
	assert.Equal(t, "Enter a line number", d.problem)

	d.HandleEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone))
	d.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, []int{7}, chosen)
	assert.Empty(t, d.problem)

	assert.True(t, d.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)), "no cancel callback is fine")
}

func TestClipboardInternal(t *testing.T) {
	clip, err := NewClipboard(false)
	require.NoError(t, err)
	assert.False(t, clip.External())

	require.NoError(t, clip.Write("text"))
	got, err := clip.Read()
	require.NoError(t, err)
	assert.Equal(t, "text", got)
}
