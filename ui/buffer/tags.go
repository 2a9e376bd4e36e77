package buffer

import "slices"

// A TagSet holds the tagged spans of a buffer. Tags are independent: adding a
// span never removes or trims another, even of a different Syntax. When spans
// overlap, StyleSyntax reports the one with the greatest Syntax.
type TagSet struct {
	spans []Span
}

func (t *TagSet) Add(syntax Syntax, start, end int) {
	if start >= end {
		return
	}
	t.spans = append(t.spans, Span{start, end, syntax})
}

// Untag deletes the spans of syntax that overlap or touch [start, end].
func (t *TagSet) Untag(syntax Syntax, start, end int) {
	kept := t.spans[:0]
	for _, sp := range t.spans {
		if sp.Syntax != syntax || sp.Start > end || sp.End < start {
			kept = append(kept, sp)
		}
	}
	t.spans = kept
}

// Remove deletes every span tagged with one of syntaxes.
func (t *TagSet) Remove(syntaxes ...Syntax) {
	kept := t.spans[:0]
	for _, sp := range t.spans {
		if !slices.Contains(syntaxes, sp.Syntax) {
			kept = append(kept, sp)
		}
	}
	t.spans = kept
}

func (t *TagSet) Clear() {
	t.spans = nil
}

// Spans returns the spans with the given Syntax, or all spans when syntaxes is empty.
func (t *TagSet) Spans(syntaxes ...Syntax) []Span {
	var spans []Span
	for _, sp := range t.spans {
		if len(syntaxes) == 0 || slices.Contains(syntaxes, sp.Syntax) {
			spans = append(spans, sp)
		}
	}
	return spans
}

// Within returns the spans overlapping [start, end).
func (t *TagSet) Within(start, end int) []Span {
	var spans []Span
	for _, sp := range t.spans {
		if sp.Start < end && sp.End > start {
			spans = append(spans, sp)
		}
	}
	return spans
}

// Has reports whether the byte at pos is tagged with syntax.
func (t *TagSet) Has(syntax Syntax, pos int) bool {
	for _, sp := range t.spans {
		if sp.Syntax == syntax && pos >= sp.Start && pos < sp.End {
			return true
		}
	}
	return false
}

// Shift moves the spans after an edit at pos that inserted (delta > 0) or
// removed (delta < 0) bytes, so tags stay attached to the text they were put on.
func (t *TagSet) Shift(pos, delta int) {
	kept := t.spans[:0]
	for _, sp := range t.spans {
		sp.Start = shiftPos(sp.Start, pos, delta, false)
		sp.End = shiftPos(sp.End, pos, delta, true)
		if sp.Start < sp.End {
			kept = append(kept, sp)
		}
	}
	t.spans = kept
}

func shiftPos(p, pos, delta int, isEnd bool) int {
	if delta >= 0 {
		// Text inserted right at the end of a span is not part of it.
		if p > pos || (p == pos && !isEnd) {
			return p + delta
		}
		return p
	}
	removedEnd := pos - delta
	switch {
	case p >= removedEnd:
		return p + delta
	case p > pos:
		return pos
	}
	return p
}

// StyleSyntax returns the Syntax with the greatest priority among spans that
// contain pos, or Default.
func StyleSyntax(spans []Span, pos int) Syntax {
	best := Default
	for _, sp := range spans {
		if pos >= sp.Start && pos < sp.End && sp.Syntax > best {
			best = sp.Syntax
		}
	}
	return best
}
