package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) handleCursorMove(msg tea.KeyMsg) bool {
	speed := m.getMoveSpeed(msg.String())
	switch {
	case key.Matches(msg, m.keys.Left):
		m.canvas.MoveCursor(0, -speed)
	case key.Matches(msg, m.keys.Right):
		m.canvas.MoveCursor(0, speed)
	case key.Matches(msg, m.keys.Up):
		m.canvas.MoveCursor(-speed, 0)
	case key.Matches(msg, m.keys.Down):
		m.canvas.MoveCursor(speed, 0)
	default:
		return false
	}
	return true
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// handleMouse turns pointer events into drag gestures. A release anywhere
// ends the gesture, inside the grid or not.
func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.mode != ModeNormal || m.showHelp {
		if msg.Action == tea.MouseActionRelease {
			m.session.EndDrag()
		}
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if index, ok := m.canvas.CellAt(msg.X, msg.Y); ok {
			m.clearMessages()
			m.session.BeginDrag(index)
			m.canvas.MoveCursorTo(index)
		}
	case tea.MouseActionMotion:
		if !m.session.Dragging() {
			return
		}
		if index, ok := m.canvas.CellAt(msg.X, msg.Y); ok {
			m.session.DragTo(index)
			m.canvas.MoveCursorTo(index)
		}
	case tea.MouseActionRelease:
		m.session.EndDrag()
	}
}
