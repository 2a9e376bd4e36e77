package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewlineIndent(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"    if x > 0:", "\n        "},
		{"x = 1", "\n"},
		{"", "\n"},
		{"\tfoo()", "\n\t"},
		{"void main() {", "\n    "},
		{"  items = [  ", "\n      "},
		{"  call(", "\n      "},
		{"else", "\n    "},
		{"} catch", "\n    "},
		{"try", "\n    "},
		{"finally", "\n    "},
		{"while", "\n    "},
		{"for", "\n    "},
		{"local motif", "\n    "}, // Plain suffix test: "motif" ends with "if"
		{"  end", "\n  "},
		{"      ", "\n      "},
		{"if x then", "\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NewlineIndent(tt.line), "line %q", tt.line)
	}
}
