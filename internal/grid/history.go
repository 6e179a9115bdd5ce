package grid

// DefaultHistoryLimit caps the number of snapshots kept for undo/redo.
const DefaultHistoryLimit = 50

// History is a linear undo/redo log of snapshots with a cursor on the
// current entry. Pushing discards everything after the cursor.
type History struct {
	states  []Snapshot
	current int // -1 before the first push
	limit   int
}

// NewHistory creates an empty history holding at most limit snapshots.
// A limit below 1 falls back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &History{
		states:  make([]Snapshot, 0, limit),
		current: -1,
		limit:   limit,
	}
}

// Push appends a copy of snap after the cursor and makes it current.
// It reports whether the oldest entry was evicted to stay under the limit.
func (h *History) Push(snap Snapshot) bool {
	h.states = h.states[:h.current+1]
	h.states = append(h.states, snap.Clone())
	h.current = len(h.states) - 1

	if len(h.states) <= h.limit {
		return false
	}
	h.states[0] = Snapshot{}
	h.states = h.states[1:]
	h.current--
	return true
}

// StepBack moves the cursor one entry back and returns that entry.
func (h *History) StepBack() (Snapshot, bool) {
	if !h.CanUndo() {
		return Snapshot{}, false
	}
	h.current--
	return h.states[h.current].Clone(), true
}

// StepForward moves the cursor one entry forward and returns that entry.
func (h *History) StepForward() (Snapshot, bool) {
	if !h.CanRedo() {
		return Snapshot{}, false
	}
	h.current++
	return h.states[h.current].Clone(), true
}

func (h *History) CanUndo() bool {
	return h.current > 0
}

func (h *History) CanRedo() bool {
	return h.current < len(h.states)-1
}

func (h *History) Len() int {
	return len(h.states)
}

// Index is the cursor position, -1 when empty.
func (h *History) Index() int {
	return h.current
}

func (h *History) Limit() int {
	return h.limit
}

// Current returns the entry under the cursor.
func (h *History) Current() (Snapshot, bool) {
	if h.current < 0 {
		return Snapshot{}, false
	}
	return h.states[h.current].Clone(), true
}
