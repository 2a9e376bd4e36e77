package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Item is an interface implemented by ItemEntry and ItemMenu to be listed in Menus.
type Item interface {
	GetName() string
	// Returns a character/rune index of the name of the item.
	GetQuickCharIdx() int
	// A Shortcut is a string of the modifiers+key name of the action that must be pressed
	// to trigger the shortcut. For example: "Ctrl+S". See ShortcutName for how
	// key events are named. An empty string implies no shortcut.
	GetShortcut() string
}

// An ItemSeparator is like a blank Item that cannot actually be selected. It is useful
// for separating items in a Menu.
type ItemSeparator struct{}

// GetName returns an empty string.
func (i *ItemSeparator) GetName() string {
	return ""
}

func (i *ItemSeparator) GetQuickCharIdx() int {
	return -1
}

func (i *ItemSeparator) GetShortcut() string {
	return ""
}

// ItemEntry is a listing in a Menu with a name and callback.
type ItemEntry struct {
	Name      string
	QuickChar int // Character/rune index of Name
	Shortcut  string
	Callback  func()
}

// GetName returns the name of the ItemEntry.
func (i *ItemEntry) GetName() string {
	return i.Name
}

func (i *ItemEntry) GetQuickCharIdx() int {
	return i.QuickChar
}

func (i *ItemEntry) GetShortcut() string {
	return i.Shortcut
}

// ShortcutName names a key event the way Item shortcuts are written, like
// "Ctrl+S". Control keys are named alike whether or not the terminal reported
// the Ctrl modifier.
func ShortcutName(ev *tcell.EventKey) string {
	name := ev.Name()
	if rest, ok := strings.CutPrefix(name, "Ctrl-"); ok {
		return "Ctrl+" + rest
	}
	return name
}

// A MenuBar is a horizontal list of menus.
type MenuBar struct {
	// OnOpen is called when a menu is shown while none was; OnClose when the
	// shown menu is hidden. An item's callback runs after OnClose.
	OnOpen  func()
	OnClose func()

	menus        []*Menu
	selected     int  // Index of selection in MenuBar
	menusVisible bool // Whether to draw the selected menu

	baseComponent
}

func NewMenuBar(theme *Theme) *MenuBar {
	return &MenuBar{
		menus:         make([]*Menu, 0, 3),
		baseComponent: baseComponent{theme: theme, height: 1},
	}
}

func (b *MenuBar) AddMenu(menu *Menu) {
	menu.itemSelectedCallback = b.HideMenus
	menu.theme = b.theme
	b.menus = append(b.menus, menu)
}

// Menus returns the menus in the order they were added.
func (b *MenuBar) Menus() []*Menu {
	return b.menus
}

// MenusVisible reports whether a menu is shown.
func (b *MenuBar) MenusVisible() bool {
	return b.menusVisible
}

// GetMenuXPos returns the X position of the name of Menu at `idx` visually.
func (b *MenuBar) GetMenuXPos(idx int) int {
	x := b.x + 1
	for i := 0; i < idx; i++ {
		x += runewidth.StringWidth(b.menus[i].Name) + 2 // two for padding
	}
	return x
}

// menuAt returns the index of the menu whose name is drawn at column x.
func (b *MenuBar) menuAt(x int) (int, bool) {
	for i := range b.menus {
		start := b.GetMenuXPos(i)
		if x >= start && x < start+runewidth.StringWidth(b.menus[i].Name)+2 {
			return i, true
		}
	}
	return 0, false
}

func (b *MenuBar) ActivateMenuUnderCursor() {
	wasVisible := b.menusVisible
	b.menusVisible = true
	b.menus[b.selected].SetPos(b.GetMenuXPos(b.selected), b.y+1)
	b.menus[b.selected].SetFocused(true)
	if !wasVisible && b.OnOpen != nil {
		b.OnOpen()
	}
}

// HideMenus hides the shown menu, if any.
func (b *MenuBar) HideMenus() {
	if !b.menusVisible {
		return
	}
	b.menusVisible = false
	b.menus[b.selected].SetFocused(false)
	if b.OnClose != nil {
		b.OnClose()
	}
}

// moveCursor selects the menu `delta` places away, wrapping around.
func (b *MenuBar) moveCursor(delta int) {
	if b.menusVisible {
		b.menus[b.selected].SetFocused(false) // Unfocus current menu
	}

	b.selected = (b.selected + delta + len(b.menus)) % len(b.menus)

	if b.menusVisible {
		// Update position of new menu after changing menu selection
		b.menus[b.selected].SetPos(b.GetMenuXPos(b.selected), b.y+1)
		b.menus[b.selected].SetFocused(true)
	}
}

func (b *MenuBar) CursorLeft() {
	b.moveCursor(-1)
}

func (b *MenuBar) CursorRight() {
	b.moveCursor(1)
}

// Draw renders the MenuBar and its sub-menus.
func (b *MenuBar) Draw(s tcell.Screen) {
	normalStyle := b.theme.GetOrDefault("MenuBar")

	// Draw menus based on whether b.focused and which is selected
	DrawRect(s, b.x, b.y, b.width, 1, ' ', normalStyle)
	col := b.x + 1
	for i, item := range b.menus {
		sty := normalStyle
		if (b.focused || b.menusVisible) && b.selected == i {
			sty = b.theme.GetOrDefault("MenuBarSelected") // Use special style for selected item
		}

		col += DrawQuickCharStr(s, col, b.y, " "+item.Name+" ", item.QuickChar+1, sty, b.theme)
	}

	if b.menusVisible {
		b.menus[b.selected].Draw(s) // Draw menu when it is expanded / visible
	}
}

// SetFocused highlights the MenuBar. Unfocusing hides any shown menu.
func (b *MenuBar) SetFocused(v bool) {
	b.focused = v
	if !v {
		b.HideMenus()
		b.selected = 0 // Reset cursor position every time component is unfocused
	}
}

func (b *MenuBar) SetTheme(theme *Theme) {
	b.theme = theme
	for _, m := range b.menus {
		m.SetTheme(theme)
	}
}

func (b *MenuBar) GetMinSize() (int, int) {
	return 0, 1
}

// HandleShortcut runs the item whose shortcut matches ev, and reports whether
// there was one.
func (b *MenuBar) HandleShortcut(ev *tcell.EventKey) bool {
	name := ShortcutName(ev)
	for i := range b.menus {
		if b.menus[i].handleShortcut(name) {
			return true
		}
	}
	return false
}

// HandleEvent handles keys while the MenuBar is focused and mouse clicks on it
// at any time. Returns true if the MenuBar or one of its menus handled the event.
func (b *MenuBar) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		if !b.focused {
			return false
		}
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return b.HandleShortcut(ev)
		}

		switch ev.Key() {
		case tcell.KeyEnter, tcell.KeyDown:
			if !b.menusVisible {
				b.ActivateMenuUnderCursor()
			} else { // The selected Menu is visible, send the event to it
				return b.menus[b.selected].HandleEvent(event)
			}
		case tcell.KeyLeft:
			b.CursorLeft()
		case tcell.KeyRight:
			b.CursorRight()
		case tcell.KeyTab:
			if b.menusVisible {
				return b.menus[b.selected].HandleEvent(event)
			}
			b.CursorRight()
		case tcell.KeyEscape:
			if !b.menusVisible {
				return false
			}
			b.HideMenus()

		// Quick char
		case tcell.KeyRune: // Search for the matching quick char in menu names
			if b.menusVisible {
				return b.menus[b.selected].HandleEvent(event) // Have menu handle quick char event
			}
			for i, m := range b.menus {
				if r := QuickCharInString(m.Name, m.QuickChar); r != 0 && r == ev.Rune() {
					b.selected = i
					b.ActivateMenuUnderCursor()
					break
				}
			}

		default:
			if b.menusVisible {
				return b.menus[b.selected].HandleEvent(event)
			}
			return false // Nobody to propagate our event to
		}
		return true

	case *tcell.EventMouse:
		x, y, down := primaryDown(ev)
		if b.menusVisible && b.menus[b.selected].HandleEvent(event) {
			return true
		}
		if !down {
			return false
		}
		if y == b.y {
			if i, ok := b.menuAt(x); ok {
				if b.menusVisible && i == b.selected {
					b.HideMenus()
				} else {
					b.moveCursor(i - b.selected)
					b.ActivateMenuUnderCursor()
				}
				return true
			}
		}
		if b.menusVisible { // A click anywhere else closes the menu
			b.HideMenus()
			return true
		}
	}
	return false
}

// A Menu contains one or more ItemEntry or ItemSeparator.
type Menu struct {
	Name      string
	QuickChar int // Character/rune index of Name
	Items     []Item

	x, y                 int
	width, height        int
	selected             int    // Index of selected Item
	itemSelectedCallback func() // Used internally to hide menus on selection

	theme *Theme
}

// NewMenu creates a new, empty Menu.
func NewMenu(name string, quickChar int, theme *Theme) *Menu {
	return &Menu{
		Name:      name,
		QuickChar: quickChar,
		Items:     make([]Item, 0, 6),
		theme:     theme,
	}
}

func (m *Menu) AddItem(item Item) {
	m.Items = append(m.Items, item)
}

func (m *Menu) AddItems(items []Item) {
	for _, item := range items {
		m.AddItem(item)
	}
}

// Entry returns the entry called name, or nil.
func (m *Menu) Entry(name string) *ItemEntry {
	for _, item := range m.Items {
		if entry, ok := item.(*ItemEntry); ok && entry.Name == name {
			return entry
		}
	}
	return nil
}

func (m *Menu) ActivateItemUnderCursor() {
	if entry, ok := m.Items[m.selected].(*ItemEntry); ok {
		if m.itemSelectedCallback != nil {
			m.itemSelectedCallback()
		}
		if entry.Callback != nil {
			entry.Callback()
		}
	}
}

// moveCursor selects the next selectable item in direction (1 or -1), wrapping
// around and skipping separators.
func (m *Menu) moveCursor(direction int) {
	for range m.Items {
		m.selected = (m.selected + direction + len(m.Items)) % len(m.Items)
		if _, sep := m.Items[m.selected].(*ItemSeparator); !sep {
			return
		}
	}
}

func (m *Menu) CursorUp() {
	m.moveCursor(-1)
}

func (m *Menu) CursorDown() {
	m.moveCursor(1)
}

// Draw renders the Menu at its position.
func (m *Menu) Draw(s tcell.Screen) {
	defaultStyle := m.theme.GetOrDefault("Menu")

	m.GetSize()                                                          // Call this to update internal width and height
	DrawRect(s, m.x, m.y, m.width, m.height, ' ', defaultStyle)          // Fill background
	DrawRectOutlineDefault(s, m.x, m.y, m.width, m.height, defaultStyle) // Draw outline
	DrawShadow(s, m.x, m.y, m.width, m.height)

	for i, item := range m.Items {
		row := m.y + 1 + i
		if _, ok := item.(*ItemSeparator); ok {
			DrawStr(s, m.x, row, "├"+strings.Repeat("─", m.width-2)+"┤", defaultStyle)
			continue
		}

		sty := defaultStyle
		if m.selected == i {
			sty = m.theme.GetOrDefault("MenuSelected")
		}

		nameCols := DrawQuickCharStr(s, m.x+1, row, item.GetName(), item.GetQuickCharIdx(), sty, m.theme)
		DrawRect(s, m.x+1+nameCols, row, m.width-2-nameCols, 1, ' ', sty) // Fill space after menu names to border

		if shortcut := item.GetShortcut(); len(shortcut) > 0 { // If the item has a shortcut...
			str := " " + shortcut + " "
			DrawStr(s, m.x+m.width-1-runewidth.StringWidth(str), row, str, sty)
		}
	}
}

// SetFocused resets the selection to the first item when the Menu is hidden.
func (m *Menu) SetFocused(v bool) {
	if !v {
		m.selected = 0
	}
}

func (m *Menu) SetTheme(theme *Theme) {
	m.theme = theme
}

// GetPos returns the position of the Menu.
func (m *Menu) GetPos() (int, int) {
	return m.x, m.y
}

// SetPos sets the position of the Menu.
func (m *Menu) SetPos(x, y int) {
	m.x, m.y = x, y
}

func (m *Menu) GetMinSize() (int, int) {
	return m.GetSize()
}

// GetSize returns the size of the Menu, which fits its widest item.
func (m *Menu) GetSize() (int, int) {
	var widestName, widestShortcut int
	for _, item := range m.Items {
		widestName = max(widestName, runewidth.StringWidth(item.GetName()))
		widestShortcut = max(widestShortcut, runewidth.StringWidth(item.GetShortcut()))
	}

	shortcutsWidth := 0
	if widestShortcut > 0 {
		shortcutsWidth = 1 + widestShortcut + 1 // " Ctrl+X "  (with one cell padding surrounding)
	}

	m.width = 1 + widestName + shortcutsWidth + 1 // Add two for padding
	m.height = 1 + len(m.Items) + 1               // And another two for the same reason ...
	return m.width, m.height
}

// SetSize does nothing: a Menu is always the size of its items.
func (m *Menu) SetSize(width, height int) {}

func (m *Menu) handleShortcut(key string) bool {
	for i, item := range m.Items {
		if entry, ok := item.(*ItemEntry); ok && entry.Shortcut != "" && entry.Shortcut == key {
			m.selected = i
			m.ActivateItemUnderCursor()
			return true
		}
	}
	return false
}

// itemAt returns the index of the item drawn at the screen cell x, y.
func (m *Menu) itemAt(x, y int) (int, bool) {
	if x <= m.x || x >= m.x+m.width-1 {
		return 0, false
	}
	i := y - m.y - 1
	if i < 0 || i >= len(m.Items) {
		return 0, false
	}
	if _, sep := m.Items[i].(*ItemSeparator); sep {
		return 0, false
	}
	return i, true
}

// HandleEvent handles keys for a shown Menu, and clicks or pointer motion over
// its items. Returns true if the event was handled.
func (m *Menu) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEnter:
			m.ActivateItemUnderCursor()
		case tcell.KeyUp:
			m.CursorUp()
		case tcell.KeyTab, tcell.KeyDown:
			m.CursorDown()

		case tcell.KeyRune:
			for i, item := range m.Items {
				if r := QuickCharInString(item.GetName(), item.GetQuickCharIdx()); r != 0 && r == ev.Rune() {
					m.selected = i
					m.ActivateItemUnderCursor()
					break
				}
			}

		default:
			return false
		}
		return true

	case *tcell.EventMouse:
		x, y, down := primaryDown(ev)
		i, ok := m.itemAt(x, y)
		if !ok {
			return inRect(x, y, m.x, m.y, m.width, m.height) // Clicks on the border do nothing
		}
		m.selected = i
		if down {
			m.ActivateItemUnderCursor()
		}
		return true
	}
	return false
}
