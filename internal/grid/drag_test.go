package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDragModeFromOrigin(t *testing.T) {
	var d Drag
	assert.False(t, d.Active())

	assert.Equal(t, ModeActivate, d.Begin(3, false))
	assert.True(t, d.Active())
	assert.True(t, d.End())

	assert.Equal(t, ModeDeactivate, d.Begin(3, true))
	assert.Equal(t, ModeDeactivate, d.Mode())
}

func TestDragEnterSkipsRepeats(t *testing.T) {
	var d Drag
	assert.False(t, d.Enter(1), "no gesture open")

	d.Begin(1, false)
	assert.False(t, d.Enter(1))
	assert.True(t, d.Enter(2))
	assert.Equal(t, 2, d.Last())
	assert.False(t, d.Enter(2))
	assert.True(t, d.Enter(1))
}

func TestDragEndTwice(t *testing.T) {
	var d Drag
	assert.False(t, d.End())

	d.Begin(0, false)
	assert.True(t, d.End())
	assert.False(t, d.End())
	assert.False(t, d.Active())
}
