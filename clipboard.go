package main

import "github.com/zyedidia/clipboard"

// A Clipboard reads and writes the system clipboard when one is available, and
// otherwise keeps the text in memory for the life of the program.
type Clipboard struct {
	external bool
	internal string
}

// NewClipboard tries the system clipboard when useSystem is set. If it cannot be
// initialized the returned Clipboard falls back to memory, and the error says why.
// The error is not fatal.
func NewClipboard(useSystem bool) (*Clipboard, error) {
	c := &Clipboard{}
	if !useSystem {
		return c, nil
	}
	if err := clipboard.Initialize(); err != nil {
		return c, err
	}
	c.external = true
	return c, nil
}

// External reports whether the system clipboard is in use.
func (c *Clipboard) External() bool {
	return c.external
}

func (c *Clipboard) Read() (string, error) {
	if c.external {
		return clipboard.ReadAll("clipboard")
	}
	return c.internal, nil
}

func (c *Clipboard) Write(content string) error {
	if c.external {
		return clipboard.WriteAll(content, "clipboard")
	}
	c.internal = content
	return nil
}
