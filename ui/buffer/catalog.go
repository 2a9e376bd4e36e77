package buffer

import (
	"regexp"
	"strings"
)

// A Pattern tags every match of Regexp with Syntax.
type Pattern struct {
	Regexp *regexp.Regexp
	Syntax Syntax
}

// Every language uses the same string rule, regardless of its own literal syntax.
const stringPattern = `'([^'\\]|\\.)*'|"([^"\\]|\\.)*"`

var catalog = map[Language][]Pattern{
	Python: {
		words(Keyword, "False", "None", "True", "and", "as", "assert", "async", "await",
			"break", "class", "continue", "def", "del", "elif", "else", "except", "finally",
			"for", "from", "global", "if", "import", "in", "is", "lambda", "nonlocal", "not",
			"or", "pass", "raise", "return", "try", "while", "with", "yield"),
		words(Builtin, "__init__", "self"),
		pattern(Comment, `#.*`),
		pattern(String, stringPattern),
	},
	CSharp: {
		words(Keyword, "class", "public", "private", "protected", "internal", "static",
			"void", "int", "string", "bool", "new", "return", "namespace", "using", "if",
			"else", "for", "while", "foreach", "in", "break", "continue", "switch", "case",
			"default", "do", "try", "catch", "finally", "throw"),
		words(Builtin, "Console", "Math", "String", "Int32", "Double", "List", "Dictionary"),
		pattern(Comment, `//.*`),
		pattern(String, stringPattern),
	},
	Ruby: {
		words(Keyword, "alias", "and", "begin", "break", "case", "class", "def", "defined",
			"do", "else", "elsif", "end", "ensure", "false", "for", "if", "in", "module",
			"next", "nil", "not", "or", "redo", "rescue", "retry", "return", "self", "super",
			"then", "true", "undef", "unless", "until", "when", "while", "yield"),
		// `.` stops at newlines, so the =begin form can only match on one line.
		pattern(Comment, `#.*|=begin.*?^=end`),
		pattern(String, stringPattern),
	},
	Cpp: {
		words(Keyword, "auto", "bool", "break", "case", "catch", "char", "class", "const",
			"constexpr", "continue", "default", "delete", "do", "double", "else", "enum",
			"explicit", "export", "extern", "false", "final", "float", "for", "friend",
			"goto", "if", "inline", "int", "long", "mutable", "namespace", "new", "nullptr",
			"operator", "private", "protected", "public", "register", "reinterpret_cast",
			"return", "short", "signed", "sizeof", "static", "static_assert", "static_cast",
			"struct", "switch", "template", "this", "throw", "true", "try", "typedef",
			"typeid", "typename", "union", "unsigned", "using", "virtual", "void",
			"volatile", "wchar_t", "while"),
		// Block comments only match when they open and close on the same line.
		pattern(Comment, `//.*|/\*.*?\*/`),
		pattern(String, stringPattern),
	},
	Lua: {
		words(Keyword, "and", "break", "do", "else", "elseif", "end", "false", "for",
			"function", "goto", "if", "in", "local", "nil", "not", "or", "repeat", "return",
			"then", "true", "until", "while"),
		pattern(Comment, `--.*`),
		pattern(String, stringPattern),
	},
	Luau: {
		words(Keyword, "and", "break", "elseif", "else", "end", "false", "for", "function",
			"if", "in", "local", "nil", "not", "or", "repeat", "then", "true", "until",
			"while", "class", "continue", "extends", "implements", "interface", "readonly",
			"abstract", "struct", "enum", "instanceof", "import", "module", "export",
			"package", "using", "from", "as", "yield"),
		pattern(Comment, `--.*`),
		pattern(String, stringPattern),
	},
}

// PatternsFor returns the ordered patterns of lang. Unset and unknown languages
// have none. The returned slice is shared: do not modify it.
func PatternsFor(lang Language) []Pattern {
	return catalog[lang]
}

// pattern compiles expr in multi-line mode, so ^ and $ match at line boundaries.
func pattern(syntax Syntax, expr string) Pattern {
	return Pattern{regexp.MustCompile("(?m)" + expr), syntax}
}

// words builds a pattern matching any of the words as a whole word.
func words(syntax Syntax, words ...string) Pattern {
	return pattern(syntax, `\b(`+strings.Join(words, "|")+`)\b`)
}
