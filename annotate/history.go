package annotate

// DefaultHistoryLimit bounds the replacement stack when Options leave it unset.
const DefaultHistoryLimit = 1000

type history struct {
	limit   int
	records []ChangeRecord
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &history{limit: limit}
}

func (h *history) push(rec ChangeRecord) {
	h.records = append(h.records, rec)
	if len(h.records) > h.limit {
		h.records = h.records[len(h.records)-h.limit:]
	}
}

func (h *history) pop() (ChangeRecord, bool) {
	if len(h.records) == 0 {
		return ChangeRecord{}, false
	}
	i := len(h.records) - 1
	rec := h.records[i]
	h.records = h.records[:i]
	return rec, true
}

func (h *history) len() int { return len(h.records) }

func (h *history) clear() { h.records = nil }
