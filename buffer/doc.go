// Package buffer implements the editable text surface: rune-accurate lines, a
// caret, caret movement and change events tagged with their source.
//
// Positions are 0-based (Row, Col) in runes. Offsets are rune indices into
// Text(), with lines joined by '\n'.
package buffer
