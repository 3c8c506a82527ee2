package editor

import "github.com/iw2rmb/spellbound/buffer"

// ChangeEvent is passed to Config.OnChange after every text change.
type ChangeEvent struct {
	Version uint64
	Cursor  buffer.Pos
	Source  buffer.ChangeSource
	Text    string
}

func buildChangeEvent(b *buffer.Buffer, source buffer.ChangeSource) ChangeEvent {
	return ChangeEvent{
		Version: b.Version(),
		Cursor:  b.Cursor(),
		Source:  source,
		Text:    b.Text(),
	}
}
