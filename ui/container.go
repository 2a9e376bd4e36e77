package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// A Container has zero or more Components. Containers decide how Components are
// laid out in view, and may draw decorations like bounding boxes.
type Container interface {
	Component
}

// A Frame draws an outline around its Child with the window title centered in
// the top edge. A modified buffer is marked with a '*' after the title.
type Frame struct {
	Title string
	Dirty bool
	Child Component

	baseComponent
}

func NewFrame(title string, child Component, theme *Theme) *Frame {
	return &Frame{
		Title:         title,
		Child:         child,
		baseComponent: baseComponent{theme: theme},
	}
}

// Draw renders the outline and the title, then the child component.
func (f *Frame) Draw(s tcell.Screen) {
	DrawRectOutlineDefault(s, f.x, f.y, f.width, f.height, f.theme.GetOrDefault("Frame"))

	title := " " + f.Title + " "
	if f.Dirty {
		title = " " + f.Title + " * "
	}
	title = runewidth.Truncate(title, max(f.width-4, 0), "…")
	DrawStr(s, f.x+f.width/2-runewidth.StringWidth(title)/2, f.y, title, f.theme.GetOrDefault("FrameTitle"))

	if f.Child != nil {
		f.Child.Draw(s)
	}
}

// SetFocused calls SetFocused on the child Component.
func (f *Frame) SetFocused(v bool) {
	f.focused = v
	if f.Child != nil {
		f.Child.SetFocused(v)
	}
}

func (f *Frame) SetTheme(theme *Theme) {
	f.theme = theme
	if f.Child != nil {
		f.Child.SetTheme(theme)
	}
}

// SetPos sets the position of the frame and moves the child inside the outline.
func (f *Frame) SetPos(x, y int) {
	f.x, f.y = x, y
	if f.Child != nil {
		f.Child.SetPos(x+1, y+1)
	}
}

// SetSize sets the size of the frame and sizes the child to fit in the outline.
func (f *Frame) SetSize(width, height int) {
	f.width, f.height = width, height
	if f.Child != nil {
		f.Child.SetSize(max(width-2, 0), max(height-2, 0))
	}
}

// HandleEvent forwards the event to the child Component and returns whether it was handled.
func (f *Frame) HandleEvent(event tcell.Event) bool {
	if f.Child != nil {
		return f.Child.HandleEvent(event)
	}
	return false
}

// A WindowContainer has a header with a title, over a body where its Child is
// drawn.
type WindowContainer struct {
	Title string
	Child Component

	x, y          int
	width, height int
	focused       bool

	Theme *Theme
}

func NewWindowContainer(title string, child Component, theme *Theme) *WindowContainer {
	return &WindowContainer{
		Title: title,
		Child: child,
		Theme: theme,
	}
}

// Draw will draws the window, then it draws its child component.
func (w *WindowContainer) Draw(s tcell.Screen) {
	DrawWindow(s, w.x, w.y, w.width, w.height, w.Title, w.Theme)

	if w.Child != nil {
		w.Child.Draw(s)
	}
}

// SetFocused calls SetFocused on the child Component.
func (w *WindowContainer) SetFocused(v bool) {
	w.focused = v
	if w.Child != nil {
		w.Child.SetFocused(v)
	}
}

func (w *WindowContainer) SetTheme(theme *Theme) {
	w.Theme = theme
	if w.Child != nil {
		w.Child.SetTheme(theme)
	}
}

// GetPos returns the position of the container.
func (w *WindowContainer) GetPos() (int, int) {
	return w.x, w.y
}

// SetPos sets the position of the container and updates the child Component.
func (w *WindowContainer) SetPos(x, y int) {
	w.x, w.y = x, y
	if w.Child != nil {
		w.Child.SetPos(x, y+1)
	}
}

func (w *WindowContainer) GetMinSize() (int, int) {
	return 0, 0
}

// GetSize gets the size of the container.
func (w *WindowContainer) GetSize() (int, int) {
	return w.width, w.height
}

// SetSize sets the size of the container and updates the size of the child Component.
func (w *WindowContainer) SetSize(width, height int) {
	w.width, w.height = width, height
	if w.Child != nil {
		w.Child.SetSize(width, height-1)
	}
}

// HandleEvent forwards the event to the child Component and returns whether it was handled.
func (w *WindowContainer) HandleEvent(event tcell.Event) bool {
	if w.Child != nil {
		return w.Child.HandleEvent(event)
	}
	return false
}
