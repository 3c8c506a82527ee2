package buffer

import (
	"strings"

	"github.com/iw2rmb/spellbound/internal/grapheme"
)

// InsertText inserts s at the caret and moves the caret past it.
func (b *Buffer) InsertText(s string) bool {
	if s == "" {
		return false
	}
	s = normalizeNewlines(s)
	off := b.CursorOffset()
	return b.apply(off, off, s, ChangeSourceUser, caretAfterInsert)
}

func (b *Buffer) InsertNewline() bool {
	return b.InsertText("\n")
}

// DeleteBackward removes the grapheme cluster (or line break) before the caret.
func (b *Buffer) DeleteBackward() bool {
	p := b.cursor
	if p.Row == 0 && p.Col == 0 {
		return false
	}
	end := b.OffsetOf(p)
	start := end - 1
	if p.Col > 0 {
		start = end - (p.Col - grapheme.PrevBoundary(b.lines[p.Row], p.Col))
	}
	return b.apply(start, end, "", ChangeSourceUser, caretAfterInsert)
}

// DeleteForward removes the grapheme cluster (or line break) after the caret.
func (b *Buffer) DeleteForward() bool {
	p := b.cursor
	line := b.lines[p.Row]
	if p.Row == len(b.lines)-1 && p.Col == len(line) {
		return false
	}
	start := b.OffsetOf(p)
	end := start + 1
	if p.Col < len(line) {
		end = start + (grapheme.NextBoundary(line, p.Col) - p.Col)
	}
	return b.apply(start, end, "", ChangeSourceUser, caretAfterInsert)
}

// DeleteWordBackward removes from the previous word boundary to the caret.
func (b *Buffer) DeleteWordBackward() bool {
	p := b.cursor
	if p.Col == 0 {
		return b.DeleteBackward()
	}
	col := prevWordBoundary(b.lines[p.Row], p.Col)
	end := b.OffsetOf(p)
	return b.apply(end-(p.Col-col), end, "", ChangeSourceUser, caretAfterInsert)
}

// ReplaceRunes replaces the runes in [start, end) with text. The caret keeps
// its place in the surrounding text: it shifts with edits before it and lands
// after the inserted text when it was inside the replaced span.
func (b *Buffer) ReplaceRunes(start, end int, text string, source ChangeSource) bool {
	return b.apply(start, end, normalizeNewlines(text), source, caretPreserve)
}

// SetText replaces the whole document. The caret moves to the end.
func (b *Buffer) SetText(text string, source ChangeSource) bool {
	return b.apply(0, b.Len(), normalizeNewlines(text), source, caretAfterInsert)
}

// Clear empties the document.
func (b *Buffer) Clear() bool {
	return b.SetText("", ChangeSourceUser)
}

type caretPolicy int

const (
	caretAfterInsert caretPolicy = iota
	caretPreserve
)

func (b *Buffer) apply(start, end int, text string, source ChangeSource, policy caretPolicy) bool {
	runes := b.runes()
	start = clampInt(start, 0, len(runes))
	end = clampInt(end, start, len(runes))

	deleted := string(runes[start:end])
	if deleted == text {
		return false
	}

	change := b.beginChange(source)
	cur := b.OffsetOf(b.cursor)
	ins := []rune(text)

	next := make([]rune, 0, len(runes)-(end-start)+len(ins))
	next = append(next, runes[:start]...)
	next = append(next, ins...)
	next = append(next, runes[end:]...)
	b.lines = splitLines(string(next))

	newEnd := start + len(ins)
	switch {
	case policy == caretAfterInsert:
		cur = newEnd
	case cur >= end:
		cur += newEnd - end
	case cur > start:
		cur = newEnd
	}
	b.cursor = b.PosAt(cur)
	b.version++

	change.addAppliedEdit(AppliedEdit{
		Start:       start,
		OldEnd:      end,
		NewEnd:      newEnd,
		InsertText:  text,
		DeletedText: deleted,
	})
	b.commitChange(change)
	return true
}

func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
