package main

import "fmt"

func (m *model) undo() {
	if !m.session.Undo() {
		m.successMessage = "Nothing to undo"
		return
	}
	m.successMessage = ""
}

func (m *model) redo() {
	if !m.session.Redo() {
		m.successMessage = "Nothing to redo"
		return
	}
	m.successMessage = ""
}

func (m *model) clearGrid() {
	m.session.Clear()
	m.successMessage = "Grid cleared"
}

// resizeTo changes the grid size, asking first when active cells would be
// dropped.
func (m *model) resizeTo(size int) {
	res, err := m.session.Resize(size)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	if res.NeedsConfirmation {
		m.mode = ModeConfirm
		m.confirmAction = ConfirmShrink
		m.pendingSize = size
		return
	}
	if res.Applied {
		m.successMessage = resizeMessage(res.From, res.To)
	}
}

func (m *model) confirmShrink() {
	from := m.session.Dimension()
	if err := m.session.ConfirmResize(m.pendingSize); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = resizeMessage(from, m.pendingSize)
	m.pendingSize = 0
}

func resizeMessage(from, to int) string {
	switch {
	case to > from:
		return fmt.Sprintf("Grid expanded to %dx%d. Pattern centered!", to, to)
	case to < from:
		return fmt.Sprintf("Grid reduced to %dx%d. Central area preserved!", to, to)
	}
	return ""
}
