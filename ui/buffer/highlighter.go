package buffer

import (
	"github.com/gdamore/tcell/v2"
)

type Colorscheme map[Syntax]tcell.Style

// Gets the tcell.Style from the Colorscheme map for the given Syntax.
// If the Syntax cannot be found in the map, either the `Default` Syntax
// is used, or `tcell.StyleDefault` is returned if the Default is not assigned.
func (c *Colorscheme) GetStyle(s Syntax) tcell.Style {
	if c != nil {
		if val, ok := (*c)[s]; ok {
			return val
		} else if s != Default {
			if val, ok := (*c)[Default]; ok {
				return val
			}
		}
	}
	return tcell.StyleDefault
}

// A Span tags the bytes [Start, End) of a buffer with a Syntax.
type Span struct {
	Start  int
	End    int
	Syntax Syntax
}

// A Highlighter answers how to color a buffer. It does so by applying the regular
// expressions of a language's patterns over the whole text.
//
// Every pass starts over from the first byte; there is no incremental or windowed
// highlighting, so a pass costs O(len(text) * patterns). That is fine for the
// small files this editor is meant for.
type Highlighter struct {
	spans []Span
}

func NewHighlighter() *Highlighter {
	return &Highlighter{}
}

// Rehighlight recomputes the spans of text for lang, and returns whether it did.
// If lang has no patterns nothing happens and the previous spans are kept.
//
// Patterns are applied in catalog order, each one collecting all of its
// non-overlapping matches. Spans of different patterns are never merged or
// subtracted from each other, so one range may carry several tags.
func (h *Highlighter) Rehighlight(text []byte, lang Language) bool {
	patterns := PatternsFor(lang)
	if len(patterns) == 0 {
		return false
	}

	h.spans = make([]Span, 0, len(h.spans))
	for _, p := range patterns {
		for _, loc := range p.Regexp.FindAllIndex(text, -1) {
			if loc[0] == loc[1] {
				continue // Empty matches tag nothing
			}
			h.spans = append(h.spans, Span{loc[0], loc[1], p.Syntax})
		}
	}
	return true
}

// Spans returns the spans of the last successful pass, in pattern order.
func (h *Highlighter) Spans() []Span {
	return h.spans
}

// Reset forgets all spans.
func (h *Highlighter) Reset() {
	h.spans = nil
}
