package annotate

// Edit describes one raw change against the previous document: the runes in
// [Start, OldEnd) were replaced by the runes now in [Start, NewEnd).
type Edit struct {
	Start  int
	OldEnd int
	NewEnd int
}

// Reconciliation reports what a raw edit invalidated.
type Reconciliation struct {
	// Collapsed lists the decorations the edits touched, either inside or
	// directly adjacent to a changed range.
	Collapsed []Result
	// Dropped is the total number of results cleared.
	Dropped int
	Changed bool
}

// Reconcile adopts text as the new document after a raw user edit. Any change
// clears every result and the replacement history, because offsets computed
// against the previous document can no longer be trusted.
func (s *Session) Reconcile(text string, edits []Edit) Reconciliation {
	if text == string(s.text) && len(edits) == 0 {
		return Reconciliation{}
	}

	var collapsed []Result
	for _, r := range s.results {
		for _, e := range edits {
			if touches(r, e) {
				collapsed = append(collapsed, r)
				break
			}
		}
	}

	rec := Reconciliation{
		Collapsed: collapsed,
		Dropped:   len(s.results),
		Changed:   text != string(s.text),
	}
	s.text = []rune(text)
	s.results = nil
	s.hist.clear()
	s.generation++
	if rec.Dropped > 0 {
		s.logger.Debug("edit invalidated results", "dropped", rec.Dropped, "collapsed", len(collapsed))
	}
	return rec
}

func touches(r Result, e Edit) bool {
	end := e.OldEnd
	if end < e.Start {
		end = e.Start
	}
	return r.Index <= end && e.Start <= r.End()
}
