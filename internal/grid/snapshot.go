package grid

import "time"

// FormatVersion is recorded on every snapshot and in saved files.
const FormatVersion = "1.0"

// Snapshot is a value copy of a pattern. Nothing else holds a reference to
// Cells, so a snapshot never changes after it is taken.
type Snapshot struct {
	Dimension int
	Cells     CellSet
	Taken     time.Time
	Version   string
}

// Clone returns a snapshot that shares no memory with s.
func (s Snapshot) Clone() Snapshot {
	s.Cells = s.Cells.Clone()
	return s
}

// Same reports whether two snapshots hold the same dimension and pattern.
func (s Snapshot) Same(other Snapshot) bool {
	return s.Dimension == other.Dimension && s.Cells.Equal(other.Cells)
}
