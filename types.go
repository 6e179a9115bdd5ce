package main

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"

	"gridpat/internal/editor"
)

type model struct {
	width  int
	height int

	session *editor.Session
	canvas  *Canvas
	config  *Config
	log     *slog.Logger

	mode Mode
	keys keyMap
	help help.Model

	showHelp bool

	// file prompt
	filename          string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation

	// currentFile is the pattern file being edited, "" for a new pattern
	currentFile string
	lastSaved   time.Time
	watcher     *fileWatcher
	fileChanged bool

	confirmAction ConfirmAction
	pendingSize   int
	pendingPath   string

	errorMessage   string
	successMessage string
}

type fileChangedMsg struct {
	path string
}

type watchErrMsg struct {
	err error
}
