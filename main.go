package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gridpat/internal/editor"
	"gridpat/pkg/patternfile"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ignore watcher events this soon after our own save
const selfWriteWindow = time.Second

func initialModel(session *editor.Session, config *Config, logger *slog.Logger, currentFile string) *model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &model{
		session:           session,
		canvas:            NewCanvas(session.Dimension(), session.Zoom()),
		config:            config,
		log:               logger,
		mode:              ModeNormal,
		keys:              defaultKeyMap(),
		help:              help.New(),
		selectedFileIndex: -1,
		currentFile:       currentFile,
	}
	session.OnDimensionChange(m.canvas.Rebuild)
	m.watchCurrentFile()
	return m
}

func (m *model) now() time.Time {
	return time.Now()
}

func (m *model) Init() tea.Cmd {
	return m.waitForFileChange()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.BlurMsg:
		// the release may never arrive once focus is gone
		m.session.EndDrag()
		return m, nil

	case fileChangedMsg:
		if time.Since(m.lastSaved) > selfWriteWindow && msg.path == filepath.Clean(m.currentFile) {
			m.fileChanged = true
			m.log.Info("file changed on disk", "path", msg.path)
		}
		return m, m.waitForFileChange()

	case watchErrMsg:
		m.log.Warn("file watch error", "err", msg.err)
		return m, m.waitForFileChange()

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch m.mode {
		case ModeNormal:
			return m.updateNormal(msg)
		case ModeFileInput:
			return m.updateFileInput(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		}
	}
	return m, nil
}

func (m *model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.handleCursorMove(msg) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Toggle):
		m.clearMessages()
		m.session.ToggleCell(m.canvas.Cursor())
	case key.Matches(msg, m.keys.Undo):
		m.clearMessages()
		m.undo()
	case key.Matches(msg, m.keys.Redo):
		m.clearMessages()
		m.redo()
	case key.Matches(msg, m.keys.Clear):
		m.clearMessages()
		if m.config.Confirmations && m.session.ActiveCount() > 0 {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmClear
			return m, nil
		}
		m.clearGrid()
	case key.Matches(msg, m.keys.Shrink):
		m.clearMessages()
		m.resizeTo(m.config.nextSize(m.session.Dimension(), -1))
	case key.Matches(msg, m.keys.Grow):
		m.clearMessages()
		m.resizeTo(m.config.nextSize(m.session.Dimension(), 1))
	case key.Matches(msg, m.keys.ZoomIn):
		m.session.ZoomIn()
		m.canvas.SetZoom(m.session.Zoom())
	case key.Matches(msg, m.keys.ZoomOut):
		m.session.ZoomOut()
		m.canvas.SetZoom(m.session.Zoom())
	case key.Matches(msg, m.keys.Save):
		m.promptFile(FileOpSave)
	case key.Matches(msg, m.keys.Open):
		m.promptFile(FileOpOpen)
	case key.Matches(msg, m.keys.ExportPNG):
		m.promptFile(FileOpSavePNG)
	case key.Matches(msg, m.keys.ExportTXT):
		m.promptFile(FileOpSaveTXT)
	case key.Matches(msg, m.keys.Copy):
		m.clearMessages()
		m.copyToClipboard()
	case key.Matches(msg, m.keys.Paste):
		m.clearMessages()
		m.pasteFromClipboard()
	case key.Matches(msg, m.keys.Reload):
		m.clearMessages()
		if m.currentFile == "" {
			m.errorMessage = "No file to reload"
			return m, nil
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmReload
	}
	return m, nil
}

func (m *model) promptFile(op FileOperation) {
	m.clearMessages()
	m.session.EndDrag()
	m.mode = ModeFileInput
	m.fileOp = op
	if op == FileOpOpen {
		m.scanPatternFiles()
		return
	}
	m.fileList = nil
	m.selectedFileIndex = -1
	m.filename = m.defaultFilename()
}

func (m *model) updateFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		m.selectFile(msg.Type == tea.KeyDown)
		return m, nil
	case tea.KeyEnter:
		return m, m.runFileOp()
	case tea.KeyBackspace:
		if len(m.filename) > 0 {
			m.filename = m.filename[:len(m.filename)-1]
			m.selectedFileIndex = -1
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		m.filename += string(msg.Runes)
		m.selectedFileIndex = -1
	}
	return m, nil
}

// selectFile walks the open list, wrapping at both ends. Once the user has
// typed a name the arrows do nothing.
func (m *model) selectFile(down bool) {
	if m.fileOp != FileOpOpen || len(m.fileList) == 0 {
		return
	}
	if m.selectedFileIndex < 0 && m.filename != "" {
		return
	}
	n := len(m.fileList)
	switch {
	case m.selectedFileIndex < 0 && down:
		m.selectedFileIndex = 0
	case m.selectedFileIndex < 0:
		m.selectedFileIndex = n - 1
	case down:
		m.selectedFileIndex = (m.selectedFileIndex + 1) % n
	default:
		m.selectedFileIndex = (m.selectedFileIndex + n - 1) % n
	}
	m.filename = trimExt(m.fileList[m.selectedFileIndex], patternfile.Ext)
}

func (m *model) runFileOp() tea.Cmd {
	before := m.watcher
	name := strings.TrimSpace(m.filename)
	if name == "" {
		m.errorMessage = "Please enter a filename"
		return nil
	}

	switch m.fileOp {
	case FileOpSave:
		path := m.config.GetSavePath(withExt(name, patternfile.Ext))
		if _, err := os.Stat(path); err == nil && path != m.currentFile {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			m.pendingPath = path
			return nil
		}
		if err := m.savePattern(path); err != nil {
			m.errorMessage = fmt.Sprintf("Error saving file: %s", err)
			return nil
		}
		m.successMessage = fmt.Sprintf("Saved to %s", path)
	case FileOpOpen:
		path := filepath.Join(m.config.SaveDir(), withExt(name, patternfile.Ext))
		if filepath.IsAbs(name) {
			path = withExt(name, patternfile.Ext)
		}
		if err := m.openPattern(path); err != nil {
			m.errorMessage = fmt.Sprintf("Error loading pattern: %s", err)
			return nil
		}
		m.successMessage = "Pattern loaded!"
	case FileOpSavePNG:
		path := m.config.GetSavePath(withExt(name, ".png"))
		if err := exportPNG(path, m.session, m.session.Zoom()); err != nil {
			m.errorMessage = fmt.Sprintf("Error exporting PNG: %s", err)
			return nil
		}
		m.successMessage = fmt.Sprintf("Exported to %s", path)
	case FileOpSaveTXT:
		path := m.config.GetSavePath(withExt(name, ".txt"))
		if err := exportTXT(path, m.session); err != nil {
			m.errorMessage = fmt.Sprintf("Error exporting text: %s", err)
			return nil
		}
		m.successMessage = fmt.Sprintf("Exported to %s", path)
	}

	m.mode = ModeNormal
	m.filename = ""
	return m.rewatch(before)
}

func (m *model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmShrink:
			m.confirmShrink()
		case ConfirmClear:
			m.clearGrid()
		case ConfirmQuit:
			return m, m.quit()
		case ConfirmOverwriteFile:
			before := m.watcher
			path := m.pendingPath
			m.pendingPath = ""
			if err := m.savePattern(path); err != nil {
				m.errorMessage = fmt.Sprintf("Error saving file: %s", err)
				m.mode = ModeFileInput
				return m, nil
			}
			m.filename = ""
			m.successMessage = fmt.Sprintf("Saved to %s", path)
			return m, m.rewatch(before)
		case ConfirmReload:
			if err := m.openPattern(m.currentFile); err != nil {
				m.errorMessage = fmt.Sprintf("Error loading pattern: %s", err)
				return m, nil
			}
			m.successMessage = "Pattern loaded!"
		}
		return m, nil
	case "n", "N", "esc":
		switch m.confirmAction {
		case ConfirmOverwriteFile:
			m.mode = ModeFileInput
			m.pendingPath = ""
			return m, nil
		case ConfirmShrink:
			m.pendingSize = 0
			m.successMessage = "Resize cancelled"
		}
		m.mode = ModeNormal
	}
	return m, nil
}

func (m *model) quit() tea.Cmd {
	m.session.EndDrag()
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
	return tea.Quit
}

func (m *model) View() string {
	if m.showHelp {
		return m.helpView()
	}

	gridHeight := m.height - headerLines - statusLines
	if gridHeight < 1 {
		gridHeight = 1
	}

	var result strings.Builder
	result.WriteString(m.headerLine())
	result.WriteString("\n")

	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		m.renderFileList(&result, gridHeight)
	} else {
		lines := m.canvas.Render(m.session, m.width, gridHeight, m.mode == ModeNormal)
		result.WriteString(strings.Join(lines, "\n"))
	}

	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m *model) headerLine() string {
	name := "untitled"
	if m.currentFile != "" {
		name = filepath.Base(m.currentFile)
	}
	header := fmt.Sprintf("gridpat: %s", name)
	if m.fileChanged {
		header += " (changed on disk, R to reload)"
	}
	return headerStyle.Render(header)
}

func (m *model) renderFileList(b *strings.Builder, height int) {
	b.WriteString("Select a saved pattern:\n")
	maxFiles := height - 2
	if maxFiles < 1 {
		maxFiles = 1
	}
	if len(m.fileList) == 0 {
		b.WriteString("(No .json files found)\n")
	} else {
		start := 0
		if m.selectedFileIndex >= maxFiles {
			start = m.selectedFileIndex - maxFiles + 1
		}
		end := min(start+maxFiles, len(m.fileList))
		for i := start; i < end; i++ {
			name := trimExt(m.fileList[i], patternfile.Ext)
			if i == m.selectedFileIndex {
				b.WriteString("> " + name + " <\n")
			} else {
				b.WriteString("  " + name + "\n")
			}
		}
	}
	b.WriteString("Filename: " + m.filename + "█")
}

func (m *model) statusLine() string {
	switch m.mode {
	case ModeFileInput:
		var op string
		switch m.fileOp {
		case FileOpSave:
			op = "Save"
		case FileOpOpen:
			op = "Open"
		case FileOpSavePNG:
			op = "Export PNG"
		case FileOpSaveTXT:
			op = "Export text"
		}
		status := fmt.Sprintf("Mode: FILE | %s filename: %s | Enter=confirm, Esc=cancel", op, m.filename)
		if m.errorMessage != "" {
			return errorStyle.Render(fmt.Sprintf("Mode: FILE | ERROR: %s | %s filename: %s", m.errorMessage, op, m.filename))
		}
		return statusStyle.Render(status)
	case ModeConfirm:
		return statusStyle.Render(fmt.Sprintf("Mode: CONFIRM | %s", m.confirmMessage()))
	}

	dim := m.session.Dimension()
	status := fmt.Sprintf("Mode: %s | %dx%d | Active %d/%d | undo:%s redo:%s | Zoom %dx",
		m.modeString(), dim, dim, m.session.ActiveCount(), m.session.TotalCellCount(),
		yesNo(m.session.CanUndo()), yesNo(m.session.CanRedo()), m.session.Zoom())
	switch {
	case m.errorMessage != "":
		return statusStyle.Render(status) + " " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		return statusStyle.Render(status) + " " + successStyle.Render(m.successMessage)
	}
	return statusStyle.Render(status + " | ? for help | q to quit")
}

func (m *model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmShrink:
		return fmt.Sprintf("Resizing to %dx%d will remove some active cells. Continue? (y/n)", m.pendingSize, m.pendingSize)
	case ConfirmClear:
		return "Clear all active cells? (y/n)"
	case ConfirmQuit:
		return "Quit gridpat? (y/n)"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingPath)
	case ConfirmReload:
		return "Reload from disk? Unsaved changes will be lost. (y/n)"
	}
	return ""
}

func (m *model) modeString() string {
	switch m.mode {
	case ModeNormal:
		if m.session.Dragging() {
			return "DRAG " + strings.ToUpper(m.session.DragMode().String())
		}
		return "NORMAL"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m *model) helpView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("gridpat help"))
	b.WriteString("\n\n")
	b.WriteString("Click or drag on the grid to paint. Dragging from an active cell erases.\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\nPress any key to close")
	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
