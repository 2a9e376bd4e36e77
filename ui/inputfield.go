package ui

import (
	"github.com/gdamore/tcell/v2"
)

// An InputField is a single-line input box.
type InputField struct {
	// OnSubmit is called with the text when Enter is pressed.
	OnSubmit func(text string)

	text      []rune
	cursorPos int // Rune index into text
	scrollPos int

	baseComponent
}

func NewInputField(text string, theme *Theme) *InputField {
	f := &InputField{baseComponent: baseComponent{theme: theme, height: 1}}
	f.SetText(text)
	return f
}

func (f *InputField) Text() string {
	return string(f.text)
}

// SetText replaces the text and puts the cursor after it.
func (f *InputField) SetText(text string) {
	f.text = []rune(text)
	f.SetCursorPos(len(f.text))
}

func (f *InputField) GetCursorPos() int {
	return f.cursorPos
}

// innerWidth is the number of columns between the brackets.
func (f *InputField) innerWidth() int {
	return max(f.width-2, 1)
}

// SetCursorPos sets the cursor position offset. Offset is clamped to possible values.
// The InputField is scrolled to show the new cursor position.
func (f *InputField) SetCursorPos(offset int) {
	offset = max(0, min(offset, len(f.text)))

	if offset >= f.scrollPos+f.innerWidth() { // If cursor position is out of view to the right...
		f.scrollPos = offset - f.innerWidth() + 1 // Scroll just enough to view that column
	} else if offset < f.scrollPos { // If cursor position is out of view to the left...
		f.scrollPos = offset
	}
	f.cursorPos = offset
}

// Delete removes the rune after the cursor when forward is true, or the rune
// before it otherwise.
func (f *InputField) Delete(forward bool) {
	pos := f.cursorPos
	if !forward {
		pos--
	}
	if pos < 0 || pos >= len(f.text) {
		return
	}
	f.text = append(f.text[:pos], f.text[pos+1:]...)
	f.SetCursorPos(pos)
}

func (f *InputField) insert(r rune) {
	f.text = append(f.text[:f.cursorPos], append([]rune{r}, f.text[f.cursorPos:]...)...)
	f.SetCursorPos(f.cursorPos + 1)
}

func (f *InputField) Draw(s tcell.Screen) {
	style := f.theme.GetOrDefault("InputField")

	DrawRect(s, f.x, f.y, f.width, f.height, ' ', style) // Draw background
	s.SetContent(f.x, f.y, '[', nil, style)
	s.SetContent(f.x+f.width-1, f.y, ']', nil, style)

	if f.scrollPos < len(f.text) {
		end := min(len(f.text), f.scrollPos+f.innerWidth())
		DrawStr(s, f.x+1, f.y, string(f.text[f.scrollPos:end]), style)
	}

	if f.focused {
		s.ShowCursor(f.x+1+f.cursorPos-f.scrollPos, f.y)
	}
}

func (f *InputField) SetSize(width, height int) {
	f.width, f.height = width, 1
	f.scrollPos = 0
	f.SetCursorPos(f.cursorPos)
}

func (f *InputField) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		if !f.focused {
			return false
		}
		switch ev.Key() {
		case tcell.KeyLeft:
			f.SetCursorPos(f.cursorPos - 1)
		case tcell.KeyRight:
			f.SetCursorPos(f.cursorPos + 1)
		case tcell.KeyHome, tcell.KeyCtrlA:
			f.SetCursorPos(0)
		case tcell.KeyEnd, tcell.KeyCtrlE:
			f.SetCursorPos(len(f.text))
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			f.Delete(false)
		case tcell.KeyDelete:
			f.Delete(true)
		case tcell.KeyEnter:
			if f.OnSubmit == nil {
				return false
			}
			f.OnSubmit(f.Text())
		case tcell.KeyRune:
			f.insert(ev.Rune())
		default:
			return false
		}
		return true
	case *tcell.EventMouse:
		if x, y, down := primaryDown(ev); down && f.contains(x, y) {
			f.SetCursorPos(f.scrollPos + x - f.x - 1)
			return true
		}
	}
	return false
}
