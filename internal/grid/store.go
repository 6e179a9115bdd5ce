package grid

import "time"

const DefaultDimension = 20

// Mode is the edit a drag gesture applies to every cell it enters.
type Mode int

const (
	ModeActivate Mode = iota
	ModeDeactivate
)

func (m Mode) String() string {
	switch m {
	case ModeActivate:
		return "activate"
	case ModeDeactivate:
		return "deactivate"
	default:
		return "unknown"
	}
}

// Store holds the live pattern: the grid dimension and its active cells.
// Callers pass indices in [0, dim²).
type Store struct {
	dim   int
	cells CellSet
}

func NewStore(dim int) *Store {
	if dim < 1 {
		dim = DefaultDimension
	}
	return &Store{dim: dim, cells: CellSet{}}
}

func (s *Store) Dimension() int {
	return s.dim
}

func (s *Store) Has(index int) bool {
	return s.cells.Has(index)
}

func (s *Store) Count() int {
	return len(s.cells)
}

func (s *Store) Total() int {
	return s.dim * s.dim
}

// Cells returns the active indices in ascending order.
func (s *Store) Cells() []int {
	return s.cells.Sorted()
}

// Toggle flips membership of index. It always reports a change.
func (s *Store) Toggle(index int) bool {
	if s.cells.Has(index) {
		s.cells.Remove(index)
	} else {
		s.cells.Add(index)
	}
	return true
}

// SetMode activates or deactivates index and reports whether it changed.
func (s *Store) SetMode(index int, mode Mode) bool {
	has := s.cells.Has(index)
	switch mode {
	case ModeActivate:
		if has {
			return false
		}
		s.cells.Add(index)
		return true
	case ModeDeactivate:
		if !has {
			return false
		}
		s.cells.Remove(index)
		return true
	}
	return false
}

// Clear empties the pattern and reports whether anything was active.
func (s *Store) Clear() bool {
	changed := len(s.cells) > 0
	s.cells = CellSet{}
	return changed
}

// Replace swaps in a new dimension and pattern. The store keeps its own
// copy of cells.
func (s *Store) Replace(dim int, cells CellSet) {
	s.dim = dim
	s.cells = cells.Clone()
}

// Snapshot copies the current state into an immutable Snapshot.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Dimension: s.dim,
		Cells:     s.cells.Clone(),
		Taken:     time.Now(),
		Version:   FormatVersion,
	}
}

// Restore installs a snapshot's state.
func (s *Store) Restore(snap Snapshot) {
	s.Replace(snap.Dimension, snap.Cells)
}
