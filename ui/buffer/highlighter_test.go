package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spanText returns the text covered by spans of the given syntax.
func spanText(text string, spans []Span, syntax Syntax) []string {
	var out []string
	for _, sp := range spans {
		if sp.Syntax == syntax {
			out = append(out, text[sp.Start:sp.End])
		}
	}
	return out
}

func TestHighlightPythonInit(t *testing.T) {
	text := "def __init__(self):"
	h := NewHighlighter()
	require.True(t, h.Rehighlight([]byte(text), Python))

	spans := h.Spans()
	assert.Equal(t, []string{"def"}, spanText(text, spans, Keyword))
	assert.Equal(t, []string{"__init__", "self"}, spanText(text, spans, Builtin))
	assert.Empty(t, spanText(text, spans, Comment))
	assert.Empty(t, spanText(text, spans, String))
	assert.Equal(t, Span{0, 3, Keyword}, spans[0])
}

func TestHighlightIdempotent(t *testing.T) {
	text := []byte("// --++CSharp++--\nclass A { void M() { Console.WriteLine(\"hi\"); } } // done\n")
	h := NewHighlighter()

	require.True(t, h.Rehighlight(text, CSharp))
	first := h.Spans()
	require.True(t, h.Rehighlight(text, CSharp))
	assert.Equal(t, first, h.Spans())
	assert.NotEmpty(t, first)
}

func TestHighlightUnknownLanguage(t *testing.T) {
	for _, lang := range []Language{Unset, "cobol", "Python"} {
		h := NewHighlighter()
		assert.False(t, h.Rehighlight([]byte("if x: pass # comment"), lang), "language %q", lang)
		assert.Empty(t, h.Spans())
	}
}

func TestHighlightKeepsStaleSpans(t *testing.T) {
	h := NewHighlighter()
	require.True(t, h.Rehighlight([]byte("while true do end"), Lua))
	before := h.Spans()

	assert.False(t, h.Rehighlight([]byte("something else"), "klingon"))
	assert.Equal(t, before, h.Spans())
}

func TestHighlightTagsOverlap(t *testing.T) {
	text := `x = "if" # if`
	h := NewHighlighter()
	require.True(t, h.Rehighlight([]byte(text), Python))

	spans := h.Spans()
	assert.Equal(t, []string{"if", "if"}, spanText(text, spans, Keyword), "keywords inside strings and comments are tagged too")
	assert.Equal(t, []string{`"if"`}, spanText(text, spans, String))
	assert.Equal(t, []string{"# if"}, spanText(text, spans, Comment))

	// Inside the string, the string tag wins visually.
	assert.Equal(t, String, StyleSyntax(spans, 5))
}

func TestHighlightStrings(t *testing.T) {
	text := `a = 'it\'s' + "say \"hi\"" + ""`
	h := NewHighlighter()
	require.True(t, h.Rehighlight([]byte(text), Ruby))
	assert.Equal(t, []string{`'it\'s'`, `"say \"hi\""`, `""`}, spanText(text, h.Spans(), String))
}

func TestHighlightCppBlockComment(t *testing.T) {
	text := "/* one */ int x; /* two\nlines */ return 0; // tail"
	h := NewHighlighter()
	require.True(t, h.Rehighlight([]byte(text), Cpp))
	assert.Equal(t, []string{"/* one */", "// tail"}, spanText(text, h.Spans(), Comment))
	assert.Equal(t, []string{"int", "return"}, spanText(text, h.Spans(), Keyword))
}

func TestHighlightRubyBeginEnd(t *testing.T) {
	text := "=begin\nnot a comment\n=end\nputs 1 # yes"
	h := NewHighlighter()
	require.True(t, h.Rehighlight([]byte(text), Ruby))
	assert.Equal(t, []string{"# yes"}, spanText(text, h.Spans(), Comment))
	assert.Equal(t, []string{"begin", "not", "end"}, spanText(text, h.Spans(), Keyword))
}

func TestHighlightLuaAndLuau(t *testing.T) {
	text := "local function f() return nil end -- done"
	want := map[Language][]string{
		Lua:  {"local", "function", "return", "nil", "end"},
		Luau: {"local", "function", "nil", "end"}, // Luau's list has no "return"
	}
	for lang, keywords := range want {
		h := NewHighlighter()
		require.True(t, h.Rehighlight([]byte(text), lang))
		assert.Equal(t, keywords, spanText(text, h.Spans(), Keyword), string(lang))
		assert.Equal(t, []string{"-- done"}, spanText(text, h.Spans(), Comment))
	}

	h := NewHighlighter()
	require.True(t, h.Rehighlight([]byte("continue goto"), Luau))
	assert.Equal(t, []string{"continue"}, spanText("continue goto", h.Spans(), Keyword))
}

func TestPatternsFor(t *testing.T) {
	for _, lang := range KnownLanguages() {
		patterns := PatternsFor(lang)
		require.NotEmpty(t, patterns, string(lang))
		assert.True(t, lang.Known())
		assert.Equal(t, Keyword, patterns[0].Syntax)
		assert.Equal(t, String, patterns[len(patterns)-1].Syntax)
	}
	assert.Len(t, PatternsFor(Python), 4)
	assert.Len(t, PatternsFor(Lua), 3)
	assert.Empty(t, PatternsFor(Unset))
	assert.False(t, Language("java").Known())
}
