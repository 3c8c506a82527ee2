// Package annotate holds the spelling-annotation engine for one editing
// session: the document snapshot, the active misspellings, the ignore set and
// the replacement history.
//
// Offsets are rune indices into the document. A Session is not safe for
// concurrent use; hosts drive it from a single goroutine and run service
// calls elsewhere, feeding responses back through ApplyCheck.
package annotate
