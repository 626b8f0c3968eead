package t2048

// DefaultUndoLimit is the number of undos a single game may consume.
const DefaultUndoLimit = 3

// HistoryEntry is the board and score captured right before a move.
type HistoryEntry struct {
	Board Board
	Score int
}

// History is a bounded stack of snapshots, newest last.
// Pushing onto a full history evicts the oldest entry, so it never holds
// more entries than can still be undone.
// Push and Pop return new values and never mutate the receiver's entries.
type History struct {
	entries []HistoryEntry
	limit   int
}

// NewHistory creates an empty history holding at most limit entries.
func NewHistory(limit int) History {
	return History{limit: max(limit, 0)}
}

// Len returns the number of stored entries.
func (h History) Len() int {
	return len(h.entries)
}

// Push returns a history with e on top.
func (h History) Push(e HistoryEntry) History {
	if h.limit == 0 {
		return h
	}

	keep := h.entries
	if len(keep) >= h.limit {
		keep = keep[len(keep)-h.limit+1:]
	}

	entries := make([]HistoryEntry, len(keep), h.limit)
	copy(entries, keep)
	entries = append(entries, e)

	return History{entries: entries, limit: h.limit}
}

// Pop returns the newest entry and the history without it.
// ok is false when the history is empty.
func (h History) Pop() (e HistoryEntry, rest History, ok bool) {
	n := len(h.entries)
	if n == 0 {
		return HistoryEntry{}, h, false
	}
	return h.entries[n-1], History{entries: h.entries[:n-1:n-1], limit: h.limit}, true
}

// Peek returns the newest entry without removing it.
func (h History) Peek() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}
