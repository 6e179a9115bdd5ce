package grid

// Drag tracks one pointer gesture. The mode is fixed when the gesture
// starts: pressing on an active cell erases, anywhere else paints.
type Drag struct {
	active bool
	mode   Mode
	last   int
}

// Begin opens a gesture on index. originActive is the origin cell's state
// before the press.
func (d *Drag) Begin(index int, originActive bool) Mode {
	d.active = true
	d.last = index
	if originActive {
		d.mode = ModeDeactivate
	} else {
		d.mode = ModeActivate
	}
	return d.mode
}

func (d *Drag) Active() bool {
	return d.active
}

func (d *Drag) Mode() Mode {
	return d.mode
}

// Last is the most recent cell the gesture entered.
func (d *Drag) Last() int {
	return d.last
}

// Enter records index as the gesture's current cell and reports whether it
// differs from the previous one.
func (d *Drag) Enter(index int) bool {
	if !d.active || index == d.last {
		return false
	}
	d.last = index
	return true
}

// End closes the gesture. It reports false when no gesture was open, so a
// duplicate release or blur is ignored.
func (d *Drag) End() bool {
	if !d.active {
		return false
	}
	d.active = false
	d.last = -1
	return true
}
