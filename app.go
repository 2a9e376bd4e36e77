package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fivemoreminix/codin/config"
	"github.com/fivemoreminix/codin/editor"
	"github.com/fivemoreminix/codin/ui"
	"github.com/fivemoreminix/codin/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/browser"
)

const aboutText = "CodiN\n" +
	"A small code editor for the terminal.\n" +
	"Supports Python, C#, Ruby, C++, Lua, and Luau syntax highlighting."

const helpText = "CodiN Help\n" +
	"The first line of a file names its language, and highlighting follows it. " +
	"Hold the mouse button down in the text for three seconds to select everything. " +
	"Press Escape to reach the menus."

// An App puts the editing Session on a screen, with a menu bar, a status line and
// the dialogs. All of its methods run on the goroutine that calls Run.
type App struct {
	screen  tcell.Screen
	cfg     config.Config
	log     *slog.Logger
	theme   *ui.Theme
	clip    *Clipboard
	watcher *editor.Watcher // nil when not watching files

	session  *editor.Session
	textEdit *ui.TextEdit
	frame    *ui.Frame
	bar      *ui.MenuBar
	status   *ui.Label

	focused  ui.Component
	dialog   ui.Component // Drawn over everything and given every event; nil if none
	pressing bool         // Whether a press inside the text is held
	message  string       // Shown in the status line
	quit     bool

	// OpenURL shows a web page. Replaced in tests.
	OpenURL func(url string) error
}

func NewApp(s tcell.Screen, cfg config.Config, logger *slog.Logger, clip *Clipboard) *App {
	a := &App{
		screen:  s,
		cfg:     cfg,
		log:     logger,
		theme:   &ui.Theme{},
		clip:    clip,
		OpenURL: browser.OpenURL,
	}

	colorscheme, err := ui.NewColorscheme(cfg.Style)
	if err != nil {
		a.log.Warn("using the default colors", "err", err)
		colorscheme, _ = ui.NewColorscheme("")
	}

	a.textEdit = ui.NewTextEdit(nil, colorscheme, a.theme)
	a.textEdit.LineNumbers = cfg.LineNumbers
	a.textEdit.UseHardTabs = cfg.HardTabs
	a.textEdit.TabSize = cfg.TabSize

	a.session = editor.NewSession(a.textEdit, editor.Options{
		Scheduler: editor.LoopScheduler{Poster: s},
		HoldDelay: cfg.HoldDelay(),
		Notify:    a.notify,
		Logger:    logger,
	})

	if cfg.WatchFiles {
		a.watcher, err = editor.NewWatcher(s, logger)
		if err != nil {
			a.log.Warn("not watching files", "err", err)
		}
	}

	a.frame = ui.NewFrame(a.session.Title(), a.textEdit, a.theme)
	a.status = ui.NewLabel("", ui.AlignLeft, "StatusBar", a.theme)
	a.bar = ui.NewMenuBar(a.theme)
	a.bar.OnOpen = func() {
		if a.focused != a.bar {
			a.changeFocus(a.bar)
		}
	}
	a.bar.OnClose = func() {
		if a.focused == a.bar {
			a.changeFocus(a.textEdit)
		}
	}
	a.buildMenus()

	a.Layout()
	a.changeFocus(a.textEdit)
	return a
}

func (a *App) buildMenus() {
	fileMenu := ui.NewMenu("File", 0, a.theme)
	fileMenu.AddItems([]ui.Item{
		&ui.ItemEntry{Name: "New", Shortcut: "Ctrl+N", Callback: func() {
			a.confirmDiscard(a.New)
		}},
		&ui.ItemEntry{Name: "Open...", Shortcut: "Ctrl+O", Callback: func() {
			a.confirmDiscard(a.promptOpen)
		}},
		&ui.ItemEntry{Name: "Save", Shortcut: "Ctrl+S", Callback: a.Save},
		&ui.ItemEntry{Name: "Save As...", QuickChar: 5, Callback: a.promptSaveAs},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Exit", QuickChar: 1, Shortcut: "Ctrl+Q", Callback: a.confirmQuit},
	})

	editMenu := ui.NewMenu("Edit", 0, a.theme)
	editMenu.AddItems([]ui.Item{
		&ui.ItemEntry{Name: "Undo", Shortcut: "Ctrl+Z", Callback: func() {
			if !a.textEdit.Undo() {
				a.message = "Nothing to undo"
			}
			a.session.KeyReleased()
		}},
		&ui.ItemEntry{Name: "Redo", Shortcut: "Ctrl+Y", Callback: func() {
			if !a.textEdit.Redo() {
				a.message = "Nothing to redo"
			}
			a.session.KeyReleased()
		}},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Cut", QuickChar: 2, Shortcut: "Ctrl+X", Callback: func() {
			if a.copySelection() {
				a.deleteSelection()
			}
		}},
		&ui.ItemEntry{Name: "Copy", Shortcut: "Ctrl+C", Callback: func() {
			a.copySelection()
		}},
		&ui.ItemEntry{Name: "Paste", Shortcut: "Ctrl+V", Callback: a.paste},
		&ui.ItemEntry{Name: "Delete", Callback: a.deleteSelection},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Select All", QuickChar: 7, Shortcut: "Ctrl+A", Callback: a.session.SelectAll},
		&ui.ItemEntry{Name: "Go to line...", Shortcut: "Ctrl+G", Callback: a.promptGotoLine},
	})

	helpMenu := ui.NewMenu("Help", 0, a.theme)
	helpMenu.AddItems([]ui.Item{
		&ui.ItemEntry{Name: "About", Callback: func() {
			a.showMessage("About", aboutText, ui.MessageKindNormal)
		}},
		&ui.ItemEntry{Name: "Help", Callback: func() {
			a.showMessage("Help", helpText+"\n\n"+editor.MissingMarkerHelp, ui.MessageKindNormal)
		}},
		&ui.ItemEntry{Name: "Full Guide", Callback: a.openGuide},
	})

	a.bar.AddMenu(fileMenu)
	a.bar.AddMenu(editMenu)
	a.bar.AddMenu(helpMenu)
}

// Close stops watching files.
func (a *App) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

// changeFocus focuses to and unfocuses whatever was focused. The new component is
// recorded first: unfocusing the menu bar closes its menu, which checks focus.
func (a *App) changeFocus(to ui.Component) {
	old := a.focused
	a.focused = to
	if old != nil && old != to {
		old.SetFocused(false)
	}
	to.SetFocused(true)
}

func (a *App) showDialog(d ui.Component) {
	a.dialog = d
	a.changeFocus(d)
}

func (a *App) closeDialog() {
	a.dialog = nil
	a.changeFocus(a.textEdit)
}

func (a *App) showMessage(title, message string, kind ui.MessageDialogKind) {
	a.showDialog(ui.NewMessageDialog(title, message, kind, nil, a.theme, func(string) {
		a.closeDialog()
	}))
}

func (a *App) showError(err error) {
	a.log.Error("operation failed", "err", err)
	a.showMessage("", err.Error(), ui.MessageKindError)
}

// ask shows a question; yes runs if the user chooses the first option.
func (a *App) ask(title, question string, options []string, yes func()) {
	a.showDialog(ui.NewMessageDialog(title, question, ui.MessageKindWarning, options, a.theme, func(option string) {
		a.closeDialog()
		if option == options[0] {
			yes()
		}
	}))
}

// notify shows the soft errors a Session reports.
func (a *App) notify(err error) {
	if errors.Is(err, editor.ErrMissingMarker) {
		a.message = editor.MissingMarkerHelp
		if a.dialog == nil {
			a.showMessage("Error", editor.MissingMarkerHelp, ui.MessageKindError)
		}
		return
	}
	a.showError(err)
}

// confirmDiscard runs then, after asking first if there are unsaved changes.
func (a *App) confirmDiscard(then func()) {
	if !a.session.Dirty() {
		then()
		return
	}
	a.ask("Unsaved changes", "Discard the changes to "+a.session.Title()+"?", []string{"Discard", "Cancel"}, then)
}

func (a *App) confirmQuit() {
	a.ask("Quit", "Do you really want to quit?", []string{"OK", "Cancel"}, func() {
		a.quit = true
	})
}

// New starts an empty, unnamed buffer.
func (a *App) New() {
	a.session.New()
	a.watch()
	a.message = ""
}

// Open loads the file at path, or shows why it could not.
func (a *App) Open(path string) {
	if err := a.session.Open(path); err != nil {
		if editor.IsNotExist(err) {
			a.log.Warn("file not found", "path", path)
			a.showMessage("", err.Error(), ui.MessageKindWarning)
			return
		}
		a.showError(err)
		return
	}
	a.watch()
	a.message = "Opened " + a.session.Filename()
}

func (a *App) promptOpen() {
	a.showDialog(ui.NewFileSelectorDialog("Open file", a.dir(), true, a.theme,
		func(path string) {
			a.closeDialog()
			a.Open(path)
		},
		a.closeDialog,
	))
}

// Save writes the buffer to its file, asking for a path if it has none.
func (a *App) Save() {
	a.quiet()
	err := a.session.Save()
	switch {
	case errors.Is(err, editor.ErrNoFilename):
		a.promptSaveAs()
	case err != nil:
		a.showError(err)
	default:
		a.message = "Saved " + a.session.Filename()
	}
}

func (a *App) promptSaveAs() {
	path := a.session.Filename()
	if path == "" {
		path = a.dir()
	}
	a.showDialog(ui.NewFileSelectorDialog("Save as", path, false, a.theme,
		func(path string) {
			a.closeDialog()
			a.quiet()
			if err := a.session.SaveAs(path); err != nil {
				a.showError(err)
				return
			}
			a.watch()
			a.message = "Saved " + a.session.Filename()
		},
		a.closeDialog,
	))
}

// dir is where path prompts start: the open file's directory, with a trailing
// separator.
func (a *App) dir() string {
	if a.session.Filename() == "" {
		return ""
	}
	return filepath.Dir(a.session.Filename()) + string(filepath.Separator)
}

func (a *App) watch() {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Watch(a.session.Filename()); err != nil {
		a.log.Warn("cannot watch file", "path", a.session.Filename(), "err", err)
	}
}

// quiet keeps the watcher from reporting our own write.
func (a *App) quiet() {
	if a.watcher != nil {
		a.watcher.Quiet(editor.DefaultQuietPeriod)
	}
}

func (a *App) fileChanged(ev *editor.FileChangedEvent) {
	if ev.Path != a.session.Filename() {
		return // An event for a file we stopped watching
	}
	name := filepath.Base(ev.Path)
	if ev.Removed {
		a.showMessage("", name+" was removed from disk", ui.MessageKindWarning)
		return
	}
	a.ask("", name+" changed on disk", []string{"Reload", "Keep"}, func() {
		a.Open(ev.Path)
	})
}

// copySelection puts the selected text on the clipboard and reports whether
// there was any.
func (a *App) copySelection() bool {
	text := a.textEdit.SelectedText()
	if len(text) == 0 {
		a.showMessage("", editor.ErrNoSelection.Error(), ui.MessageKindWarning)
		return false
	}
	if err := a.clip.Write(string(text)); err != nil {
		a.showError(fmt.Errorf("copying: %w", err))
		return false
	}
	return true
}

func (a *App) deleteSelection() {
	if err := a.session.DeleteSelection(); err != nil {
		a.showMessage("", err.Error(), ui.MessageKindWarning)
	}
}

func (a *App) paste() {
	text, err := a.clip.Read()
	if err != nil {
		a.showError(fmt.Errorf("pasting: %w", err))
		return
	}
	a.textEdit.Insert(text)
	a.session.KeyReleased()
}

func (a *App) promptGotoLine() {
	a.showDialog(NewGotoLineDialog(a.theme,
		func(line int) {
			a.closeDialog()
			a.textEdit.GotoLine(line)
		},
		a.closeDialog,
	))
}

func (a *App) openGuide() {
	if err := a.OpenURL(a.cfg.HelpURL); err != nil {
		a.showError(fmt.Errorf("opening the guide: %w", err))
	}
}

// Layout places the components for the current screen size.
func (a *App) Layout() {
	width, height := a.screen.Size()
	a.bar.SetPos(0, 0)
	a.bar.SetSize(width, 1)
	a.frame.SetPos(0, 1)
	a.frame.SetSize(width, max(height-2, 2))
	a.status.SetPos(0, height-1)
	a.status.SetSize(width, 1)
}

func (a *App) statusText() string {
	line, col := a.textEdit.CursorLineCol()
	lang := "no language"
	if a.session.Language().IsSet() {
		lang = string(a.session.Language())
		if !a.session.Language().Known() {
			lang += " (not highlighted)"
		}
	}
	parts := []string{fmt.Sprintf(" Ln %d, Col %d", line+1, col+1), lang}
	if a.message != "" {
		parts = append(parts, a.message)
	}
	return strings.Join(parts, " | ")
}

// Draw renders everything and shows it.
func (a *App) Draw() {
	s := a.screen
	s.HideCursor() // The focused component shows it again

	a.frame.Title = a.session.Title()
	a.frame.Dirty = a.session.Dirty()
	a.status.Text = a.statusText()

	a.frame.Draw(s)
	a.status.Draw(s)
	a.bar.Draw(s) // Over the others, for its menus

	if a.dialog != nil {
		a.dialog.SetSize(a.dialog.GetMinSize())
		width, height := a.dialog.GetSize()
		sw, sh := s.Size()
		a.dialog.SetPos(sw/2-width/2, sh/2-height/2) // Center
		a.dialog.Draw(s)
	}

	s.Show()
}

// Run draws and handles events until the user quits.
func (a *App) Run() {
	for !a.quit {
		a.Draw()
		ev := a.screen.PollEvent()
		if ev == nil { // The screen was finalized
			return
		}
		a.HandleEvent(ev)
	}
}

// HandleEvent routes one event: a dialog takes everything, then menu shortcuts,
// then the focused component.
func (a *App) HandleEvent(event tcell.Event) {
	switch ev := event.(type) {
	case *tcell.EventResize:
		a.Layout()
		a.screen.Sync()
		a.session.HandleEvent(ev)
	case *editor.TimerEvent:
		ev.Fire()
	case *editor.FileChangedEvent:
		a.fileChanged(ev)
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.dialog != nil {
		a.dialog.HandleEvent(ev)
		return
	}
	if a.bar.HandleShortcut(ev) {
		return
	}
	if ev.Key() == tcell.KeyEscape { // Escape moves between the text and the menu bar
		if a.focused == a.bar {
			a.changeFocus(a.textEdit)
		} else {
			a.changeFocus(a.bar)
		}
		return
	}
	if a.focused == a.bar {
		a.bar.HandleEvent(ev)
		return
	}
	a.session.HandleEvent(ev)
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	if a.dialog != nil {
		a.dialog.HandleEvent(ev)
		return
	}
	if !a.pressing && a.bar.HandleEvent(ev) {
		return
	}

	primary := ev.Buttons()&tcell.Button1 != 0
	if primary && !a.pressing {
		// Only presses that start in the text reach the session
		x, y := ev.Position()
		tx, ty := a.textEdit.GetPos()
		tw, th := a.textEdit.GetSize()
		if x < tx || x >= tx+tw || y < ty || y >= ty+th {
			return
		}
		a.pressing = true
		a.changeFocus(a.textEdit)
	} else if !primary && ev.Buttons()&(tcell.WheelUp|tcell.WheelDown) == 0 {
		a.pressing = false
	}
	a.session.HandleEvent(ev)
}

// Language returns the language of the open buffer.
func (a *App) Language() buffer.Language {
	return a.session.Language()
}
