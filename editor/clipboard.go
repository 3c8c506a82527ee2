package editor

// Clipboard provides editor-level clipboard integration.
//
// Errors must not crash the UI; failures surface as error notices.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}
