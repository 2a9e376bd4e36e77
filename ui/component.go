package ui

import (
	"github.com/gdamore/tcell/v2"
)

// A Component is anything drawn in a rectangle of the screen that can take
// focus and handle events: the text area, buttons, input fields, dialogs. Set
// its position with SetPos and, for resizable components, its size with
// SetSize before drawing it.
type Component interface {
	Draw(tcell.Screen)
	// SetFocused tells the Component whether it receives input. A focused
	// TextEdit shows the terminal cursor; a focused Button reacts to Enter.
	SetFocused(bool)
	// SetTheme applies the theme to the component and all of its children.
	SetTheme(*Theme)

	GetPos() (x, y int)
	SetPos(x, y int)

	// GetMinSize returns the smallest size the Component can be.
	GetMinSize() (w, h int)
	GetSize() (w, h int)
	// SetSize sets the size of the component. If size is smaller than minimum,
	// minimum is used, instead.
	SetSize(w, h int)

	// HandleEvent returns true if the Component handled the event. Only a
	// focused Component handles key events; mouse events are handled when they
	// fall inside it.
	HandleEvent(tcell.Event) bool
}

// baseComponent can be embedded in a Component's struct to hide a few of the
// boilerplate fields and functions. It defines defaults for the ...Pos(),
// ...Size(), SetFocused(), and SetTheme() functions that can be overridden.
type baseComponent struct {
	focused       bool
	x, y          int
	width, height int
	theme         *Theme
}

func (c *baseComponent) SetFocused(v bool) {
	c.focused = v
}

func (c *baseComponent) SetTheme(theme *Theme) {
	c.theme = theme
}

func (c *baseComponent) GetPos() (int, int) {
	return c.x, c.y
}

func (c *baseComponent) SetPos(x, y int) {
	c.x, c.y = x, y
}

func (c *baseComponent) GetMinSize() (int, int) {
	return 0, 0
}

func (c *baseComponent) GetSize() (int, int) {
	return c.width, c.height
}

func (c *baseComponent) SetSize(width, height int) {
	c.width, c.height = width, height
}

// contains reports whether the screen cell at x, y is inside the component.
func (c *baseComponent) contains(x, y int) bool {
	return inRect(x, y, c.x, c.y, c.width, c.height)
}
