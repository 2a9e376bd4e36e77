package ui

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/go-homedir"
)

// A FileSelectorDialog is a WindowContainer with an input and buttons for choosing
// one file: an existing one to open, or any path to save to. A leading "~" in
// the path is expanded to the home directory.
type FileSelectorDialog struct {
	MustExist          bool              // Whether the dialog should have a user select an existing file.
	FileChosenCallback func(path string) // Called with the expanded path.
	CancelCallback     func()            // Called when the dialog has been canceled by the user

	container *WindowContainer
	problem   string // Why the last confirmed path was refused

	tabOrder    []Component
	tabOrderIdx int

	inputField    *InputField
	confirmButton *Button
	cancelButton  *Button

	baseComponent
}

func NewFileSelectorDialog(title, path string, mustExist bool, theme *Theme, fileChosenCallback func(string), cancelCallback func()) *FileSelectorDialog {
	dialog := &FileSelectorDialog{
		MustExist:          mustExist,
		FileChosenCallback: fileChosenCallback,
		CancelCallback:     cancelCallback,
		container:          NewWindowContainer(title, nil, theme),
		baseComponent:      baseComponent{theme: theme},
	}

	dialog.inputField = NewInputField(path, theme)
	dialog.inputField.OnSubmit = func(string) { dialog.onConfirm() }
	dialog.confirmButton = NewButton("Confirm", theme, dialog.onConfirm)
	dialog.cancelButton = NewButton("Cancel", theme, dialog.onCancel)
	dialog.tabOrder = []Component{dialog.inputField, dialog.cancelButton, dialog.confirmButton}

	return dialog
}

// onConfirm is a callback called by the confirm button.
func (d *FileSelectorDialog) onConfirm() {
	path := strings.TrimSpace(d.inputField.Text())
	if path == "" {
		d.problem = "Enter a file path"
		return
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		d.problem = err.Error()
		return
	}
	if d.MustExist {
		info, err := os.Stat(expanded)
		switch {
		case err != nil:
			d.problem = "File does not exist"
			return
		case info.IsDir():
			d.problem = "Path is a directory"
			return
		}
	}
	d.problem = ""
	if d.FileChosenCallback != nil {
		d.FileChosenCallback(expanded)
	}
}

func (d *FileSelectorDialog) onCancel() {
	if d.CancelCallback != nil {
		d.CancelCallback()
	}
}

// Path returns the text in the dialog's input field.
func (d *FileSelectorDialog) Path() string {
	return d.inputField.Text()
}

// Problem returns why the last confirmed path was refused, or "".
func (d *FileSelectorDialog) Problem() string {
	return d.problem
}

func (d *FileSelectorDialog) SetTitle(title string) {
	d.container.Title = title
}

func (d *FileSelectorDialog) Draw(s tcell.Screen) {
	d.container.Draw(s)

	btnWidth, _ := d.confirmButton.GetSize()
	d.confirmButton.SetPos(d.x+d.width-btnWidth-1, d.y+4) // Place "Confirm" button on right, bottom

	if d.problem != "" {
		problem := runewidth.Truncate(d.problem, d.width-2, "…")
		DrawStr(s, d.x+1, d.y+3, problem, d.theme.GetOrDefault("Window").Foreground(tcell.ColorMaroon))
	}

	d.inputField.Draw(s)
	d.confirmButton.Draw(s)
	d.cancelButton.Draw(s)
}

func (d *FileSelectorDialog) SetFocused(v bool) {
	d.focused = v
	d.tabOrder[d.tabOrderIdx].SetFocused(v)
}

func (d *FileSelectorDialog) SetTheme(theme *Theme) {
	d.theme = theme
	d.container.Theme = theme
	for _, c := range d.tabOrder {
		c.SetTheme(theme)
	}
}

func (d *FileSelectorDialog) SetPos(x, y int) {
	d.x, d.y = x, y
	d.container.SetPos(x, y)
	d.inputField.SetPos(d.x+1, d.y+2)   // Center input field
	d.cancelButton.SetPos(d.x+1, d.y+4) // Place "Cancel" button on left, bottom
}

func (d *FileSelectorDialog) GetMinSize() (int, int) {
	return max(runewidth.StringWidth(d.container.Title)+2, 40), 6
}

func (d *FileSelectorDialog) SetSize(width, height int) {
	minX, minY := d.GetMinSize()
	d.width, d.height = max(width, minX), max(height, minY)
	d.container.SetSize(d.width, d.height)
	d.inputField.SetSize(d.width-2, 1)
}

func (d *FileSelectorDialog) focus(idx int) {
	d.tabOrder[d.tabOrderIdx].SetFocused(false)
	d.tabOrderIdx = (idx + len(d.tabOrder)) % len(d.tabOrder)
	d.tabOrder[d.tabOrderIdx].SetFocused(true)
}

func (d *FileSelectorDialog) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyTab:
			d.focus(d.tabOrderIdx + 1)
			return true
		case tcell.KeyBacktab:
			d.focus(d.tabOrderIdx - 1)
			return true
		case tcell.KeyEscape:
			d.onCancel()
			return true
		}
		return d.tabOrder[d.tabOrderIdx].HandleEvent(event)
	case *tcell.EventMouse:
		for i, c := range d.tabOrder {
			if c.HandleEvent(event) {
				if _, _, down := primaryDown(ev); down && i == 0 {
					d.focus(0)
				}
				return true
			}
		}
		x, y := ev.Position()
		return d.contains(x, y)
	}
	return false
}
