package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageDialogButtons(t *testing.T) {
	var chosen []string
	d := NewMessageDialog("", "Do you really want to quit?", MessageKindWarning, []string{"Yes", "No"}, nil,
		func(option string) { chosen = append(chosen, option) })
	assert.Equal(t, "Warning!", d.Title)
	d.SetFocused(true)

	d.HandleEvent(key(tcell.KeyEnter))
	d.HandleEvent(key(tcell.KeyRight))
	d.HandleEvent(key(tcell.KeyEnter))
	d.HandleEvent(key(tcell.KeyTab)) // Wraps around to "Yes"
	d.HandleEvent(key(tcell.KeyEnter))
	d.HandleEvent(key(tcell.KeyEscape))
	assert.Equal(t, []string{"Yes", "No", "Yes", ""}, chosen)
}

func TestMessageDialogDefaults(t *testing.T) {
	var chosen string
	d := NewMessageDialog("", "Failed", MessageKindError, nil, nil, func(option string) { chosen = option })
	assert.Equal(t, "Error!", d.Title)
	d.SetFocused(true)
	d.HandleEvent(key(tcell.KeyEnter))
	assert.Equal(t, "OK", chosen)
}

func TestMessageDialogWraps(t *testing.T) {
	message := strings.Repeat("word ", 30)
	d := NewMessageDialog("Long", message, MessageKindNormal, nil, nil, nil)
	w, h := d.GetSize()
	assert.LessOrEqual(t, w, messageDialogMaxWidth)
	assert.Greater(t, h, 5, "the message takes several lines")
	assert.Equal(t, message, d.Message())

	d.SetMessage("short")
	assert.Equal(t, "short", d.Message())
}

func TestMessageDialogMouse(t *testing.T) {
	s := newTestScreen(t, 80, 24)
	var chosen string
	d := NewMessageDialog("Quit", "Sure?", MessageKindNormal, []string{"Yes", "No"}, nil,
		func(option string) { chosen = option })
	d.SetPos(0, 0)
	d.Draw(s) // Lays out the buttons

	w, h := d.GetSize()
	assert.True(t, d.HandleEvent(tcell.NewEventMouse(w-7, h-2, tcell.Button1, tcell.ModNone)))
	assert.Equal(t, "No", chosen)

	assert.True(t, d.HandleEvent(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)), "clicks on the dialog are kept")
	assert.False(t, d.HandleEvent(tcell.NewEventMouse(79, 23, tcell.Button1, tcell.ModNone)))
	assert.Equal(t, "No", chosen)
}

type fileSelection struct {
	chosen   []string
	canceled int
}

func newTestFileSelector(path string, mustExist bool) (*FileSelectorDialog, *fileSelection) {
	sel := &fileSelection{}
	d := NewFileSelectorDialog("Open file", path, mustExist, nil,
		func(p string) { sel.chosen = append(sel.chosen, p) },
		func() { sel.canceled++ })
	d.SetPos(0, 0)
	d.SetSize(40, 6)
	d.SetFocused(true)
	return d, sel
}

func TestFileSelectorMustExist(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.py")
	require.NoError(t, os.WriteFile(file, []byte("# --++Python++--\n"), 0o644))

	d, sel := newTestFileSelector(file, true)
	d.HandleEvent(key(tcell.KeyEnter))
	assert.Equal(t, []string{file}, sel.chosen)
	assert.Empty(t, d.Problem())

	d, sel = newTestFileSelector(filepath.Join(dir, "missing.py"), true)
	d.HandleEvent(key(tcell.KeyEnter))
	assert.Empty(t, sel.chosen)
	assert.Equal(t, "File does not exist", d.Problem())

	d, sel = newTestFileSelector(dir, true)
	d.HandleEvent(key(tcell.KeyEnter))
	assert.Empty(t, sel.chosen)
	assert.Equal(t, "Path is a directory", d.Problem())

	d, sel = newTestFileSelector("  ", true)
	d.HandleEvent(key(tcell.KeyEnter))
	assert.Empty(t, sel.chosen)
	assert.Equal(t, "Enter a file path", d.Problem())
}

func TestFileSelectorNewFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.lua")

	d, sel := newTestFileSelector("", false)
	for _, r := range path {
		d.HandleEvent(char(r))
	}
	assert.Equal(t, path, d.Path())
	d.HandleEvent(key(tcell.KeyEnter))
	assert.Equal(t, []string{path}, sel.chosen)
}

func TestFileSelectorExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	d, sel := newTestFileSelector("~/notes.rb", false)
	d.HandleEvent(key(tcell.KeyEnter))
	assert.Equal(t, []string{filepath.Join(home, "notes.rb")}, sel.chosen)
}

func TestFileSelectorCancel(t *testing.T) {
	d, sel := newTestFileSelector("x", false)
	d.HandleEvent(key(tcell.KeyEscape))
	assert.Equal(t, 1, sel.canceled)

	// Tab to the cancel button and press it
	d.HandleEvent(key(tcell.KeyTab))
	d.HandleEvent(key(tcell.KeyEnter))
	assert.Equal(t, 2, sel.canceled)
	assert.Empty(t, sel.chosen)

	// Backtab back to the input field
	d.HandleEvent(key(tcell.KeyBacktab))
	d.HandleEvent(key(tcell.KeyEnter))
	assert.Equal(t, []string{"x"}, sel.chosen)
}

func TestFileSelectorDraw(t *testing.T) {
	s := newTestScreen(t, 40, 6)
	d, _ := newTestFileSelector("", true)
	d.HandleEvent(key(tcell.KeyEnter))
	d.Draw(s)

	var row strings.Builder
	for x := 1; x < 20; x++ {
		r, _, _, _ := s.GetContent(x, 3)
		row.WriteRune(r)
	}
	assert.Equal(t, "Enter a file path  ", row.String())
}
