package buffer

import (
	"regexp"
	"strings"
)

// markerRegexp matches the first-line language marker, like "# --++Python++--" or
// "// --++CSharp++--". Text after the closing "++--" is ignored.
var markerRegexp = regexp.MustCompile(`^\s*(#|//)\s*--\+\+([\p{L}\p{N}_]+)\+\+--`)

// DetectLanguage reads the language marker on firstLine. It returns the marker's
// name in lowercase, and false when firstLine carries no marker. Any name is
// accepted, even ones without patterns in the catalog.
func DetectLanguage(firstLine string) (Language, bool) {
	match := markerRegexp.FindStringSubmatch(strings.TrimSpace(firstLine))
	if match == nil {
		return Unset, false
	}
	return Language(strings.ToLower(match[2])), true
}

// Marker returns a marker line declaring the language name, behind commentPrefix.
func Marker(commentPrefix string, name string) string {
	return commentPrefix + " --++" + name + "++--"
}
