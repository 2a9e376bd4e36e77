package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		line string
		want Language
		ok   bool
	}{
		{"# --++Python++--", Python, true},
		{"# --++PyThOn++--", Python, true},
		{"// --++CSharp++--", CSharp, true},
		{"//--++cpp++--", Cpp, true},
		{"   #   --++Lua++--  and then some", Lua, true},
		{"-- # --++Luau++--", Unset, false},
		{"# --++Cobol++--", Language("cobol"), true}, // Unknown names are still detected
		{"# --++Pythön++--", Language("pythön"), true}, // Names may use any letters
		{"# --++Lua_5++--", Language("lua_5"), true},
		{"# --++C#++--", Unset, false},
		{"# --++++--", Unset, false},
		{"# Python", Unset, false},
		{"print('hello')", Unset, false},
		{"", Unset, false},
	}

	for _, tt := range tests {
		got, ok := DetectLanguage(tt.line)
		assert.Equal(t, tt.ok, ok, "line %q", tt.line)
		assert.Equal(t, tt.want, got, "line %q", tt.line)
	}
}

func TestDetectLanguageIgnoresCase(t *testing.T) {
	for _, lang := range KnownLanguages() {
		for _, name := range []string{string(lang), upper(string(lang)), mixed(string(lang))} {
			for _, prefix := range []string{"#", "//"} {
				got, ok := DetectLanguage(Marker(prefix, name))
				if assert.True(t, ok, name) {
					assert.Equal(t, lang, got)
				}
			}
		}
	}
}

func upper(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

// mixed uppercases every other letter.
func mixed(s string) string {
	b := []byte(s)
	for i := 0; i < len(b); i += 2 {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}
