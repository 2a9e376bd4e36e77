package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Align defines the text alignment of a label.
type Align uint8

const (
	// AlignLeft is the normal text alignment where text is aligned to the left
	// of its bounding box.
	AlignLeft Align = iota
	// AlignRight causes text to be aligned to the right of its bounding box.
	AlignRight
	// AlignJustify causes text to be left-aligned, but also spaced so that it
	// fits the entire box where it is being rendered.
	AlignJustify
)

// A Label renders one line of text in its bounding box, cut to the box width.
// The status bar is a Label.
type Label struct {
	Text      string
	Alignment Align
	// StyleKey is the theme key the label is drawn with; "Normal" if empty.
	StyleKey string

	baseComponent
}

func NewLabel(text string, alignment Align, styleKey string, theme *Theme) *Label {
	return &Label{
		Text:          text,
		Alignment:     alignment,
		StyleKey:      styleKey,
		baseComponent: baseComponent{theme: theme, height: 1},
	}
}

func (l *Label) Draw(s tcell.Screen) {
	key := l.StyleKey
	if key == "" {
		key = "Normal"
	}
	style := l.theme.GetOrDefault(key)
	DrawRect(s, l.x, l.y, l.width, 1, ' ', style)

	text := runewidth.Truncate(l.Text, l.width, "…")
	switch l.Alignment {
	case AlignRight:
		DrawStr(s, l.x+l.width-runewidth.StringWidth(text), l.y, text, style)
	case AlignJustify:
		DrawStr(s, l.x, l.y, justify(text, l.width), style)
	default:
		DrawStr(s, l.x, l.y, text, style)
	}
}

// justify spreads the words of text over width columns.
func justify(text string, width int) string {
	words := strings.Fields(text)
	if len(words) < 2 {
		return text
	}
	gaps := len(words) - 1
	spaces := width
	for _, w := range words {
		spaces -= runewidth.StringWidth(w)
	}
	if spaces < gaps {
		return text
	}

	var b strings.Builder
	for i, w := range words {
		b.WriteString(w)
		if i < gaps {
			n := spaces / gaps
			if i < spaces%gaps {
				n++ // The leftmost gaps take the remainder
			}
			b.WriteString(strings.Repeat(" ", n))
		}
	}
	return b.String()
}

func (l *Label) SetSize(width, height int) {
	l.width, l.height = width, 1
}

// HandleEvent does nothing; a Label only displays text.
func (l *Label) HandleEvent(tcell.Event) bool {
	return false
}
