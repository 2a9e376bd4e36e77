package buffer

// Syntax is the category a highlighted region of text belongs to. The order of
// the constants is the draw priority: when tags overlap, the greater Syntax is
// the one shown.
type Syntax uint8

const (
	Default Syntax = iota
	Column         // Not a tag; used for colorscheming the line number column
	Keyword
	Builtin
	Comment
	String
	Error // Lines flagged by the editor, like a missing language marker
)

var syntaxNames = [...]string{
	Default: "default",
	Column:  "column",
	Keyword: "keyword",
	Builtin: "builtin",
	Comment: "comment",
	String:  "string",
	Error:   "error",
}

func (s Syntax) String() string {
	if int(s) < len(syntaxNames) {
		return syntaxNames[s]
	}
	return "unknown"
}

// SemanticTags are the tags owned by the highlighter. A highlight pass clears
// exactly these before it applies new ones.
var SemanticTags = []Syntax{Keyword, Builtin, Comment, String}

// A Language is the lowercase name found in a buffer's language marker. The zero
// value means no language has been set. Names outside of KnownLanguages are kept
// as they were typed, but nothing is highlighted for them.
type Language string

const (
	Unset  Language = ""
	Python Language = "python"
	CSharp Language = "csharp"
	Ruby   Language = "ruby"
	Cpp    Language = "cpp"
	Lua    Language = "lua"
	Luau   Language = "luau"
)

// KnownLanguages returns the languages that have highlighting patterns.
func KnownLanguages() []Language {
	return []Language{Python, CSharp, Ruby, Cpp, Lua, Luau}
}

// Known reports whether the Pattern Catalog has patterns for l.
func (l Language) Known() bool {
	_, ok := catalog[l]
	return ok
}

func (l Language) IsSet() bool {
	return l != Unset
}
