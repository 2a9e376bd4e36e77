// Package config reads the editor's settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultPath    = "~/.config/codin/config.toml"
	DefaultLogFile = "~/.cache/codin/codin.log"
	DefaultHelpURL = "https://foundation-scott.vercel.app/scottcodin-help.html"
)

// Config holds every setting. Keys missing from the file keep their Default value.
type Config struct {
	TabSize     int  `toml:"tab_size" comment:"Columns a tab character occupies"`
	HardTabs    bool `toml:"hard_tabs" comment:"Insert a tab character instead of spaces"`
	LineNumbers bool `toml:"line_numbers"`
	// HoldSelectAllMs is how long the pointer must stay pressed to select all.
	HoldSelectAllMs int `toml:"hold_select_all_ms"`
	// Style names a chroma style to color the editor with. Empty uses the
	// built-in colors.
	Style      string `toml:"style" comment:"A chroma style name, like \"monokai\"; empty for the built-in colors"`
	LogFile    string `toml:"log_file"`
	LogLevel   string `toml:"log_level" comment:"debug, info, warn or error"`
	HelpURL    string `toml:"help_url"`
	WatchFiles bool   `toml:"watch_files" comment:"Report changes made to the open file by other programs"`
}

func Default() Config {
	return Config{
		TabSize:         4,
		HardTabs:        true,
		LineNumbers:     true,
		HoldSelectAllMs: 3000,
		LogFile:         DefaultLogFile,
		LogLevel:        "info",
		HelpURL:         DefaultHelpURL,
		WatchFiles:      true,
	}
}

// Load reads the configuration at path. A file that does not exist is not an
// error: the defaults are returned.
func Load(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Default(), fmt.Errorf("config path %s: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("reading config file %s: %w", expanded, err)
	}
	return Parse(expanded, data)
}

// Parse decodes TOML data over the defaults and validates the result. source
// names the data in errors.
func Parse(source string, data []byte) (Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return Default(), perr
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", source, err)
	}
	return c, nil
}

// Validate rejects values the editor cannot work with.
func (c Config) Validate() error {
	if c.TabSize < 1 || c.TabSize > 16 {
		return fmt.Errorf("tab_size must be between 1 and 16, got %d", c.TabSize)
	}
	if c.HoldSelectAllMs <= 0 {
		return fmt.Errorf("hold_select_all_ms must be positive, got %d", c.HoldSelectAllMs)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// HoldDelay is HoldSelectAllMs as a time.Duration.
func (c Config) HoldDelay() time.Duration {
	return time.Duration(c.HoldSelectAllMs) * time.Millisecond
}

// Level parses LogLevel. An empty level means info.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// LogPath returns LogFile with a leading ~ expanded. An empty LogFile disables
// logging and returns "".
func (c Config) LogPath() (string, error) {
	return homedir.Expand(c.LogFile)
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	enc := toml.NewEncoder(w)
	return enc.Encode(c)
}

// ParseError describes a config file that is not valid TOML.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
