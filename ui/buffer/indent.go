package buffer

import (
	"strings"
)

// IndentWidth is how many spaces NewlineIndent adds after a block opener.
const IndentWidth = 4

// blockOpeners are plain suffixes, not keywords: a line ending in "motif" also
// counts as ending in "if".
var blockOpeners = []string{":", "{", "[", "(", "if", "else", "for", "while", "try", "catch", "finally"}

// NewlineIndent returns the text to insert when Enter is pressed at the end of
// currentLine: a newline, the leading whitespace of currentLine, and IndentWidth
// more spaces if the line (ignoring trailing whitespace) ends in a block opener.
func NewlineIndent(currentLine string) string {
	indent := currentLine[:len(currentLine)-len(strings.TrimLeftFunc(currentLine, isIndentSpace))]

	trimmed := strings.TrimRightFunc(currentLine, isIndentSpace)
	for _, opener := range blockOpeners {
		if strings.HasSuffix(trimmed, opener) {
			indent += strings.Repeat(" ", IndentWidth)
			break
		}
	}
	return "\n" + indent
}

func isIndentSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', '\r', '\n':
		return true
	}
	return false
}
