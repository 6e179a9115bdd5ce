package main

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fileWatcher reports writes to one file. It watches the parent directory
// so editors that replace the file by rename are still seen.
type fileWatcher struct {
	w      *fsnotify.Watcher
	path   string
	events chan tea.Msg
	done   chan struct{}
}

func newFileWatcher(path string) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	fw := &fileWatcher{
		w:      w,
		path:   filepath.Clean(path),
		events: make(chan tea.Msg, 1),
		done:   make(chan struct{}),
	}
	go fw.run()
	return fw, nil
}

func (fw *fileWatcher) run() {
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			fw.send(fileChangedMsg{path: fw.path})
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.send(watchErrMsg{err: err})
		case <-fw.done:
			return
		}
	}
}

// send keeps at most one pending message; bursts of writes collapse.
func (fw *fileWatcher) send(msg tea.Msg) {
	select {
	case fw.events <- msg:
	default:
	}
}

// Wait is a tea.Cmd that blocks until the next change.
func (fw *fileWatcher) Wait() tea.Msg {
	select {
	case msg := <-fw.events:
		return msg
	case <-fw.done:
		return nil
	}
}

func (fw *fileWatcher) Close() error {
	close(fw.done)
	return fw.w.Close()
}

func (m *model) watchCurrentFile() {
	if m.watcher != nil {
		if m.watcher.path == filepath.Clean(m.currentFile) {
			return
		}
		m.watcher.Close()
		m.watcher = nil
	}
	if m.currentFile == "" {
		return
	}
	fw, err := newFileWatcher(m.currentFile)
	if err != nil {
		m.log.Warn("file watch unavailable", "path", m.currentFile, "err", err)
		return
	}
	m.watcher = fw
}

func (m *model) waitForFileChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Wait
}

// rewatch starts listening when the watched file changed since before.
func (m *model) rewatch(before *fileWatcher) tea.Cmd {
	if m.watcher == before {
		return nil
	}
	return m.waitForFileChange()
}
