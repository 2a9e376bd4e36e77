package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type MessageDialogKind uint8

const (
	MessageKindNormal MessageDialogKind = iota
	MessageKindWarning
	MessageKindError
)

// Index of messageDialogKindTitles is any MessageDialogKind.
var messageDialogKindTitles = [3]string{
	"Message",
	"Warning!",
	"Error!",
}

// messageDialogMaxWidth is the widest a dialog grows to fit its message.
const messageDialogMaxWidth = 60

// A MessageDialog shows a message with a row of buttons. Callback receives the
// text of the chosen button, or "" when the dialog is dismissed with Escape.
type MessageDialog struct {
	Title    string
	Kind     MessageDialogKind
	Callback func(string)

	message        string
	messageWrapped string

	buttons     []*Button
	selectedIdx int

	baseComponent
}

func NewMessageDialog(title string, message string, kind MessageDialogKind, options []string, theme *Theme, callback func(string)) *MessageDialog {
	if title == "" {
		title = messageDialogKindTitles[kind] // Use default title
	}
	if len(options) == 0 {
		options = []string{"OK"}
	}

	dialog := &MessageDialog{
		Title:         title,
		Kind:          kind,
		Callback:      callback,
		baseComponent: baseComponent{theme: theme},
	}

	dialog.buttons = make([]*Button, len(options))
	for i := range options {
		option := options[i]
		dialog.buttons[i] = NewButton(option, theme, func() { dialog.choose(option) })
	}

	dialog.message = message
	dialog.SetSize(0, 0) // Minimum size for the message
	return dialog
}

func (d *MessageDialog) choose(option string) {
	if d.Callback != nil {
		d.Callback(option)
	}
}

func (d *MessageDialog) SetMessage(message string) {
	d.message = message
	d.SetSize(d.width, d.height)
}

// Message returns the message as it was given, before wrapping.
func (d *MessageDialog) Message() string {
	return d.message
}

func (d *MessageDialog) Draw(s tcell.Screen) {
	DrawWindow(s, d.x, d.y, d.width, d.height, d.Title, d.theme)

	DrawStr(s, d.x+1, d.y+2, d.messageWrapped, d.theme.GetOrDefault("Window"))

	col := d.width // Start from the right side
	for i := len(d.buttons) - 1; i >= 0; i-- {
		width, _ := d.buttons[i].GetSize()
		col -= width + 1 // Move left enough for each button (1 for padding)
		d.buttons[i].SetPos(d.x+col, d.y+d.height-2)
		d.buttons[i].Draw(s)
	}
}

func (d *MessageDialog) SetFocused(v bool) {
	d.focused = v
	d.buttons[d.selectedIdx].SetFocused(v)
}

func (d *MessageDialog) SetTheme(theme *Theme) {
	d.theme = theme
	for i := range d.buttons {
		d.buttons[i].SetTheme(theme)
	}
}

func (d *MessageDialog) GetMinSize() (int, int) {
	lines := strings.Count(d.messageWrapped, "\n") + 1

	buttonsWidth := 1
	for _, b := range d.buttons {
		w, _ := b.GetSize()
		buttonsWidth += w + 1
	}
	width := max(runewidth.StringWidth(d.Title)+2, buttonsWidth, 30)
	return width, 2 + lines + 2
}

func (d *MessageDialog) SetSize(width, height int) {
	// Wrap to the widest line of the message, within limits, before measuring.
	wrapWidth := 28
	for _, line := range strings.Split(d.message, "\n") {
		wrapWidth = max(wrapWidth, runewidth.StringWidth(line))
	}
	wrapWidth = min(max(wrapWidth, width-2), messageDialogMaxWidth-2)
	d.messageWrapped = runewidth.Wrap(d.message, wrapWidth)

	minWidth, minHeight := d.GetMinSize()
	d.width, d.height = max(width, minWidth, wrapWidth+2), max(height, minHeight)
}

func (d *MessageDialog) selectButton(idx int) {
	d.buttons[d.selectedIdx].SetFocused(false)
	d.selectedIdx = (idx + len(d.buttons)) % len(d.buttons)
	d.buttons[d.selectedIdx].SetFocused(d.focused)
}

func (d *MessageDialog) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyLeft, tcell.KeyBacktab:
			d.selectButton(d.selectedIdx - 1)
			return true
		case tcell.KeyRight, tcell.KeyTab:
			d.selectButton(d.selectedIdx + 1)
			return true
		case tcell.KeyEscape:
			d.choose("")
			return true
		}
		return d.buttons[d.selectedIdx].HandleEvent(event)
	case *tcell.EventMouse:
		for _, b := range d.buttons {
			if b.HandleEvent(event) {
				return true
			}
		}
		x, y := ev.Position()
		return d.contains(x, y) // Clicks on the dialog do not fall through
	}
	return false
}
