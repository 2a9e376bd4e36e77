package editor

import (
	"errors"

	"github.com/fivemoreminix/codin/ui/buffer"
)

var (
	// ErrMissingMarker is reported when the cursor leaves the first line and the
	// first line does not declare a language. It does not stop editing.
	ErrMissingMarker = errors.New("first line does not declare a language")

	// ErrNoSelection is returned when deleting without any selected text.
	ErrNoSelection = errors.New("nothing is selected")

	// ErrNoFilename is returned by Save when the buffer was never saved or opened;
	// the caller should ask for a path and use SaveAs.
	ErrNoFilename = errors.New("buffer has no file name")
)

// MissingMarkerHelp is shown to the user along with ErrMissingMarker.
var MissingMarkerHelp = "First line must specify language, e.g., '" +
	buffer.Marker("#", "Python") + "' or '" + buffer.Marker("//", "CSharp") + "'"
