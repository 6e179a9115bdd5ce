package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(dim int, cells ...int) Snapshot {
	return Snapshot{Dimension: dim, Cells: NewCellSet(cells...), Version: FormatVersion}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, DefaultHistoryLimit, h.Limit())
	assert.Equal(t, -1, h.Index())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	_, ok := h.Current()
	assert.False(t, ok)
	_, ok = h.StepBack()
	assert.False(t, ok)
	_, ok = h.StepForward()
	assert.False(t, ok)
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(10)
	h.Push(snap(3))
	h.Push(snap(3, 1))
	h.Push(snap(5, 2, 3))

	require.True(t, h.CanUndo())
	got, ok := h.StepBack()
	require.True(t, ok)
	assert.True(t, got.Same(snap(3, 1)))

	got, ok = h.StepBack()
	require.True(t, ok)
	assert.True(t, got.Same(snap(3)))

	_, ok = h.StepBack()
	assert.False(t, ok, "cannot undo past the first entry")
	assert.Equal(t, 0, h.Index())

	got, ok = h.StepForward()
	require.True(t, ok)
	assert.True(t, got.Same(snap(3, 1)))
	got, ok = h.StepForward()
	require.True(t, ok)
	assert.True(t, got.Same(snap(5, 2, 3)))
	_, ok = h.StepForward()
	assert.False(t, ok)
}

func TestHistoryPushDropsRedoTail(t *testing.T) {
	h := NewHistory(10)
	h.Push(snap(3))
	h.Push(snap(3, 1))
	h.Push(snap(3, 1, 2))
	h.StepBack()
	h.StepBack()

	h.Push(snap(3, 8))
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Index())
	assert.False(t, h.CanRedo())

	cur, _ := h.Current()
	assert.True(t, cur.Same(snap(3, 8)))
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(DefaultHistoryLimit)
	for i := 0; i < DefaultHistoryLimit; i++ {
		assert.False(t, h.Push(snap(4, i%16)))
	}
	require.Equal(t, DefaultHistoryLimit, h.Len())

	before, _ := h.Current()
	assert.True(t, h.Push(snap(9, 80)))
	assert.Equal(t, DefaultHistoryLimit, h.Len())
	assert.Equal(t, DefaultHistoryLimit-1, h.Index())

	cur, _ := h.Current()
	assert.True(t, cur.Same(snap(9, 80)))
	prev, ok := h.StepBack()
	require.True(t, ok)
	assert.True(t, prev.Same(before), "cursor still walks the same logical entries")

	// the very first entry (cell 0) is gone; the oldest is now cell 1
	for h.CanUndo() {
		prev, _ = h.StepBack()
	}
	assert.True(t, prev.Same(snap(4, 1)))
}

func TestHistoryEvictionMidLog(t *testing.T) {
	h := NewHistory(3)
	h.Push(snap(2, 0))
	h.Push(snap(2, 1))
	h.Push(snap(2, 2))
	h.StepBack()

	// push after an undo: truncation keeps the log under the cap, nothing evicted
	assert.False(t, h.Push(snap(2, 3)))
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Index())
}

func TestHistoryEntriesAreDetached(t *testing.T) {
	h := NewHistory(5)
	s := snap(3, 1)
	h.Push(s)
	s.Cells.Add(2)

	cur, _ := h.Current()
	assert.Equal(t, []int{1}, cur.Cells.Sorted())

	cur.Cells.Add(4)
	again, _ := h.Current()
	assert.Equal(t, []int{1}, again.Cells.Sorted())
}
