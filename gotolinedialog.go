package main

import (
	"strconv"
	"strings"

	"github.com/fivemoreminix/codin/ui"
	"github.com/gdamore/tcell/v2"
)

// A GotoLineDialog asks for a one-based line number.
type GotoLineDialog struct {
	LineChosenCallback func(line int)
	CancelCallback     func()

	x, y          int
	width, height int
	focused       bool
	theme         *ui.Theme
	problem       string

	tabOrder    []ui.Component
	tabOrderIdx int

	inputField   *ui.InputField
	acceptButton *ui.Button
	cancelButton *ui.Button
}

func NewGotoLineDialog(theme *ui.Theme, lineChosenCallback func(int), cancelCallback func()) *GotoLineDialog {
	dialog := &GotoLineDialog{
		LineChosenCallback: lineChosenCallback,
		CancelCallback:     cancelCallback,
		theme:              theme,
	}

	dialog.inputField = ui.NewInputField("", theme)
	dialog.inputField.OnSubmit = func(string) { dialog.onConfirm() }
	dialog.acceptButton = ui.NewButton("Go", theme, dialog.onConfirm)
	dialog.cancelButton = ui.NewButton("Cancel", theme, dialog.onCancel)
	dialog.tabOrder = []ui.Component{dialog.inputField, dialog.cancelButton, dialog.acceptButton}

	return dialog
}

func (d *GotoLineDialog) onConfirm() {
	num, err := strconv.Atoi(strings.TrimSpace(d.inputField.Text()))
	if err != nil || num < 1 {
		d.problem = "Enter a line number"
		return
	}
	d.problem = ""
	if d.LineChosenCallback != nil {
		d.LineChosenCallback(num)
	}
}

func (d *GotoLineDialog) onCancel() {
	if d.CancelCallback != nil {
		d.CancelCallback()
	}
}

func (d *GotoLineDialog) Draw(s tcell.Screen) {
	ui.DrawWindow(s, d.x, d.y, d.width, d.height, "Go to line", d.theme)

	btnWidth, _ := d.acceptButton.GetSize()
	d.acceptButton.SetPos(d.x+d.width-btnWidth-1, d.y+4) // Place "Go" button on right, bottom

	if d.problem != "" {
		ui.DrawStr(s, d.x+1, d.y+3, d.problem, d.theme.GetOrDefault("Window").Foreground(tcell.ColorMaroon))
	}

	d.inputField.Draw(s)
	d.acceptButton.Draw(s)
	d.cancelButton.Draw(s)
}

func (d *GotoLineDialog) SetFocused(v bool) {
	d.focused = v
	d.tabOrder[d.tabOrderIdx].SetFocused(v)
}

func (d *GotoLineDialog) SetTheme(theme *ui.Theme) {
	d.theme = theme
	for _, c := range d.tabOrder {
		c.SetTheme(theme)
	}
}

func (d *GotoLineDialog) GetPos() (int, int) {
	return d.x, d.y
}

func (d *GotoLineDialog) SetPos(x, y int) {
	d.x, d.y = x, y
	d.inputField.SetPos(d.x+1, d.y+2)   // Center input field
	d.cancelButton.SetPos(d.x+1, d.y+4) // Place "Cancel" button on left, bottom
}

func (d *GotoLineDialog) GetMinSize() (int, int) {
	return 24, 6
}

func (d *GotoLineDialog) GetSize() (int, int) {
	return d.width, d.height
}

func (d *GotoLineDialog) SetSize(width, height int) {
	minX, minY := d.GetMinSize()
	d.width, d.height = max(width, minX), max(height, minY)
	d.inputField.SetSize(d.width-2, 1)
}

func (d *GotoLineDialog) focus(idx int) {
	d.tabOrder[d.tabOrderIdx].SetFocused(false)
	d.tabOrderIdx = (idx + len(d.tabOrder)) % len(d.tabOrder)
	d.tabOrder[d.tabOrderIdx].SetFocused(true)
}

func (d *GotoLineDialog) HandleEvent(event tcell.Event) bool {
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
	case *tcell.EventMouse:
		for _, c := range d.tabOrder {
			if c.HandleEvent(event) {
				return true
			}
		}
		x, y := ev.Position()
		return x >= d.x && x < d.x+d.width && y >= d.y && y < d.y+d.height
	}
	return d.tabOrder[d.tabOrderIdx].HandleEvent(event)
}
