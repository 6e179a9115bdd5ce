package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"gridpat/pkg/patternfile"
)

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

// scanPatternFiles lists *.json files in the save directory for the open
// prompt.
func (m *model) scanPatternFiles() {
	m.fileList = []string{}

	entries, err := os.ReadDir(m.config.SaveDir())
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), patternfile.Ext) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = trimExt(m.fileList[0], patternfile.Ext)
	} else {
		m.selectedFileIndex = -1
	}
}

func trimExt(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name[:len(name)-len(ext)]
	}
	return name
}

func withExt(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}

// defaultFilename suggests a name for the save and export prompts.
func (m *model) defaultFilename() string {
	if m.currentFile != "" {
		return trimExt(filepath.Base(m.currentFile), patternfile.Ext)
	}
	return trimExt(patternfile.Filename(m.session.Dimension(), m.now()), patternfile.Ext)
}

func (m *model) savePattern(path string) error {
	if err := patternfile.Save(path, m.session.ExportSnapshot()); err != nil {
		return err
	}
	m.lastSaved = m.now()
	if path != m.currentFile {
		m.currentFile = path
		m.watchCurrentFile()
	}
	m.fileChanged = false
	m.log.Info("pattern saved", "path", path, "dimension", m.session.Dimension(), "active", m.session.ActiveCount())
	return nil
}

func (m *model) openPattern(path string) error {
	p, err := patternfile.Load(path)
	if err != nil {
		return err
	}
	if err := m.session.ImportPattern(p); err != nil {
		return err
	}
	m.currentFile = path
	m.fileChanged = false
	m.watchCurrentFile()
	return nil
}

func (m *model) copyToClipboard() {
	data, err := patternfile.Marshal(m.session.ExportSnapshot())
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.errorMessage = fmt.Sprintf("Clipboard unavailable: %v", err)
		return
	}
	m.successMessage = "Pattern copied to clipboard"
}

func (m *model) pasteFromClipboard() {
	text, err := clipboard.ReadAll()
	if err != nil {
		m.errorMessage = fmt.Sprintf("Clipboard unavailable: %v", err)
		return
	}
	if err := m.session.ImportSnapshot([]byte(strings.TrimSpace(text))); err != nil {
		m.errorMessage = fmt.Sprintf("Error loading pattern: %v", err)
		return
	}
	m.successMessage = "Pattern loaded!"
}
