// Package sysclip exposes the system clipboard through the editor's
// Clipboard interface.
package sysclip

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("sysclip: clipboard unavailable")

// Clipboard reads and writes the system clipboard.
type Clipboard struct{}

func New() Clipboard { return Clipboard{} }

// Available reports whether a clipboard backend was found.
func Available() bool { return !clipboard.Unsupported }

func (Clipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	return clipboard.ReadAll()
}

func (Clipboard) WriteText(s string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(s)
}
