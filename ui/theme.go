package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fivemoreminix/codin/ui/buffer"
	"github.com/gdamore/tcell/v2"
)

// A Theme is a map of string names to styles. Themes can be passed by reference to components
// to set their styles. Some components will depend upon the basic keys, but most components
// may use keys specific to their component. If a theme value cannot be found, then the
// `DefaultTheme` value will be used, instead. An updated list of theme keys can be found on
// the default theme.
type Theme map[string]tcell.Style

func (theme *Theme) GetOrDefault(key string) tcell.Style {
	if theme != nil {
		if val, ok := (*theme)[key]; ok {
			return val
		}
	}

	if val, ok := DefaultTheme[key]; ok {
		return val
	}
	panic(fmt.Sprintf("key %q not present in default theme", key))
}

// DefaultTheme uses only the first 16 colors present in most colored terminals.
var DefaultTheme = Theme{
	"Normal":           tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"Button":           tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),
	"InputField":       tcell.Style{}.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	"MenuBar":          tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"MenuBarSelected":  tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"Menu":             tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"MenuSelected":     tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"QuickChar":        tcell.Style{}.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack),
	"Frame":            tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"FrameTitle":       tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"StatusBar":        tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal),
	"TextEdit":         tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"TextEditColumn":   tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorGray),
	"TextEditSelected": tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"Window":           tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"WindowHeader":     tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),
}

// DefaultColorscheme colors each tag with a plain named color on the terminal's
// black background.
var DefaultColorscheme = buffer.Colorscheme{
	buffer.Default: tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	buffer.Column:  tcell.Style{}.Foreground(tcell.ColorDarkGray).Background(tcell.ColorBlack),
	buffer.Keyword: tcell.Style{}.Foreground(tcell.ColorBlue).Background(tcell.ColorBlack),
	buffer.Builtin: tcell.Style{}.Foreground(tcell.ColorPurple).Background(tcell.ColorBlack),
	buffer.Comment: tcell.Style{}.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack),
	buffer.String:  tcell.Style{}.Foreground(tcell.ColorOrange).Background(tcell.ColorBlack),
	buffer.Error:   tcell.Style{}.Foreground(tcell.ColorRed).Background(tcell.ColorBlack),
}

// chromaTokens maps each Syntax to the chroma token type whose style it takes.
var chromaTokens = map[buffer.Syntax]chroma.TokenType{
	buffer.Default: chroma.Background,
	buffer.Column:  chroma.LineNumbers,
	buffer.Keyword: chroma.Keyword,
	buffer.Builtin: chroma.NameBuiltin,
	buffer.Comment: chroma.Comment,
	buffer.String:  chroma.LiteralString,
	buffer.Error:   chroma.Error,
}

// NewColorscheme builds a Colorscheme from the chroma style called name, like
// "monokai" or "dracula". An empty name returns DefaultColorscheme.
func NewColorscheme(name string) (buffer.Colorscheme, error) {
	scheme := make(buffer.Colorscheme, len(DefaultColorscheme))
	if name == "" {
		for syntax, style := range DefaultColorscheme {
			scheme[syntax] = style
		}
		return scheme, nil
	}

	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown style %q, expected one of %s", name, strings.Join(StyleNames(), ", "))
	}

	base := style.Get(chroma.Background)
	fg := chromaToTcell(base.Colour, tcell.ColorSilver)
	bg := chromaToTcell(base.Background, tcell.ColorBlack)
	for syntax, token := range chromaTokens {
		entry := style.Get(token)
		st := tcell.Style{}.
			Foreground(chromaToTcell(entry.Colour, fg)).
			Background(chromaToTcell(entry.Background, bg))
		if entry.Bold == chroma.Yes {
			st = st.Bold(true)
		}
		if entry.Italic == chroma.Yes {
			st = st.Italic(true)
		}
		if entry.Underline == chroma.Yes {
			st = st.Underline(true)
		}
		scheme[syntax] = st
	}
	return scheme, nil
}

// StyleNames lists the chroma styles NewColorscheme accepts, sorted.
func StyleNames() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func chromaToTcell(c chroma.Colour, fallback tcell.Color) tcell.Color {
	if !c.IsSet() {
		return fallback
	}
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
