package main

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridpat/internal/editor"
	"gridpat/pkg/patternfile"
)

func newTestModel(t *testing.T, dim int) *model {
	t.Helper()
	config := defaultConfig()
	config.SaveDirectory = t.TempDir()
	session := editor.New(editor.Options{Dimension: dim, Zoom: 1})
	m := initialModel(session, config, nil, "")
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestMouseDragPaintsOneEntry(t *testing.T) {
	m := newTestModel(t, 5)

	m.Update(mouse(tea.MouseActionPress, 0, headerLines))
	assert.True(t, m.session.Dragging())
	m.Update(mouse(tea.MouseActionMotion, 8, headerLines))
	m.Update(mouse(tea.MouseActionRelease, 8, headerLines))

	assert.False(t, m.session.Dragging())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, m.session.Cells())
	assert.Equal(t, 2, m.session.HistoryLen())
	assert.Equal(t, 4, m.canvas.Cursor())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	assert.Empty(t, m.session.Cells())
}

func TestReleaseOutsideGridEndsDrag(t *testing.T) {
	m := newTestModel(t, 5)

	m.Update(mouse(tea.MouseActionPress, 2, headerLines+1))
	m.Update(mouse(tea.MouseActionRelease, 100, 50))
	assert.False(t, m.session.Dragging())
	assert.Equal(t, []int{6}, m.session.Cells())
}

func TestBlurEndsDrag(t *testing.T) {
	m := newTestModel(t, 5)

	m.Update(mouse(tea.MouseActionPress, 0, headerLines))
	m.Update(tea.BlurMsg{})
	assert.False(t, m.session.Dragging())
	assert.Equal(t, 2, m.session.HistoryLen())
}

func TestKeyboardToggleUndoRedo(t *testing.T) {
	m := newTestModel(t, 5)

	m.Update(runes("l"))
	m.Update(runes("j"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, []int{6}, m.session.Cells())

	m.Update(runes("u"))
	assert.Empty(t, m.session.Cells())
	m.Update(runes("u"))
	assert.Equal(t, "Nothing to undo", m.successMessage)

	m.Update(runes("U"))
	assert.Equal(t, []int{6}, m.session.Cells())
}

func TestShrinkAsksBeforeDroppingCells(t *testing.T) {
	m := newTestModel(t, 10)
	m.session.ToggleCell(0)

	m.Update(runes("["))
	require.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmShrink, m.confirmAction)
	assert.Equal(t, 5, m.pendingSize)
	assert.Equal(t, 10, m.session.Dimension())

	m.Update(runes("n"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 10, m.session.Dimension())
	assert.Equal(t, "Resize cancelled", m.successMessage)

	m.Update(runes("["))
	m.Update(runes("y"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 5, m.session.Dimension())
	assert.Equal(t, 5, m.canvas.dim)
	assert.Equal(t, "Grid reduced to 5x5. Central area preserved!", m.successMessage)
	assert.Empty(t, m.session.Cells())
}

func TestGrowCentersPattern(t *testing.T) {
	m := newTestModel(t, 5)
	m.session.ToggleCell(12)

	m.Update(runes("]"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 10, m.session.Dimension())
	assert.Equal(t, []int{44}, m.session.Cells())
	assert.Equal(t, "Grid expanded to 10x10. Pattern centered!", m.successMessage)

	m.Update(runes("u"))
	assert.Equal(t, 5, m.session.Dimension())
	assert.Equal(t, 5, m.canvas.dim)
}

func TestClearConfirms(t *testing.T) {
	m := newTestModel(t, 5)
	m.session.ToggleCell(3)

	m.Update(tea.KeyMsg{Type: tea.KeyDelete})
	require.Equal(t, ModeConfirm, m.mode)
	m.Update(runes("y"))
	assert.Empty(t, m.session.Cells())
	assert.Equal(t, "Grid cleared", m.successMessage)
}

func TestZoomKeys(t *testing.T) {
	m := newTestModel(t, 5)

	for i := 0; i < 10; i++ {
		m.Update(runes("+"))
	}
	assert.Equal(t, editor.MaxZoom, m.session.Zoom())
	assert.Equal(t, editor.MaxZoom, m.canvas.zoom)

	m.Update(runes("-"))
	assert.Equal(t, editor.MaxZoom-1, m.canvas.zoom)
}

func TestSaveThenOpen(t *testing.T) {
	m := newTestModel(t, 5)
	m.session.ToggleCell(7)

	m.Update(runes("s"))
	require.Equal(t, ModeFileInput, m.mode)
	m.filename = ""
	for _, r := range "heart" {
		m.Update(runes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ModeNormal, m.mode, m.errorMessage)

	path := filepath.Join(m.config.SaveDirectory, "heart.json")
	assert.Equal(t, path, m.currentFile)
	p, err := patternfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, p.ActivePattern)

	m.session.Clear()
	m.Update(runes("o"))
	require.Equal(t, []string{"heart.json"}, m.fileList)
	assert.Equal(t, "heart", m.filename)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Pattern loaded!", m.successMessage)
	assert.Equal(t, []int{7}, m.session.Cells())

	m.quit()
}

func TestOwnSaveDoesNotFlagChange(t *testing.T) {
	m := newTestModel(t, 5)
	m.currentFile = filepath.Join(t.TempDir(), "p.json")

	m.lastSaved = time.Now()
	m.Update(fileChangedMsg{path: m.currentFile})
	assert.False(t, m.fileChanged)

	m.lastSaved = time.Time{}
	m.Update(fileChangedMsg{path: m.currentFile})
	assert.True(t, m.fileChanged)
}

func TestViewShowsStatus(t *testing.T) {
	m := newTestModel(t, 5)
	m.session.ToggleCell(0)

	view := m.View()
	assert.Contains(t, view, "5x5")
	assert.Contains(t, view, "Active 1/25")
	assert.Contains(t, view, "untitled")
}
