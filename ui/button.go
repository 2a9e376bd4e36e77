package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// A Button runs its Callback when Enter is pressed while it is focused, or when
// it is clicked.
type Button struct {
	Text     string
	Callback func()

	baseComponent
}

func NewButton(text string, theme *Theme, callback func()) *Button {
	b := &Button{
		Text:          text,
		Callback:      callback,
		baseComponent: baseComponent{theme: theme},
	}
	b.width, b.height = b.GetMinSize()
	return b
}

func (b *Button) Draw(s tcell.Screen) {
	str := "  " + b.Text + "  "
	if b.focused {
		str = "[ " + b.Text + " ]"
	}
	DrawStr(s, b.x, b.y, str, b.theme.GetOrDefault("Button"))
}

func (b *Button) GetMinSize() (int, int) {
	return runewidth.StringWidth(b.Text) + 4, 1
}

// SetSize does nothing: a Button is always its minimum size.
func (b *Button) SetSize(width, height int) {}

func (b *Button) activate() {
	if b.Callback != nil {
		b.Callback()
	}
}

func (b *Button) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		if b.focused && ev.Key() == tcell.KeyEnter {
			b.activate()
			return true
		}
	case *tcell.EventMouse:
		if x, y, down := primaryDown(ev); down && b.contains(x, y) {
			b.activate()
			return true
		}
	}
	return false
}
