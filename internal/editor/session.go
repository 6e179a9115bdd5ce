// Package editor holds one editing session over a grid pattern: the live
// pattern, its undo/redo history and any in-progress drag gesture.
//
// A Session is not safe for concurrent use. The terminal front end drives
// it from the bubbletea update loop, one event at a time.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gridpat/internal/grid"
	"gridpat/pkg/patternfile"
)

const (
	MinZoom     = 1
	MaxZoom     = 4
	DefaultZoom = 1
)

var ErrInvalidDimension = errors.New("editor: invalid grid dimension")

// ResizeResult tells the caller whether a resize happened or needs the
// user to confirm that cells will be dropped.
type ResizeResult struct {
	Applied           bool
	NeedsConfirmation bool
	WillLoseData      bool
	From, To          int
}

type Options struct {
	// Dimension is the starting grid size. Zero means grid.DefaultDimension.
	Dimension int
	// HistoryLimit caps undo entries. Zero means grid.DefaultHistoryLimit.
	HistoryLimit int
	// SkipConfirm applies destructive shrinks without asking.
	SkipConfirm bool
	Zoom        int
	Logger      *slog.Logger
	// Now is the clock used for exported timestamps.
	Now func() time.Time
}

type Session struct {
	store   *grid.Store
	history *grid.History
	drag    grid.Drag

	zoom        int
	skipConfirm bool
	log         *slog.Logger
	now         func() time.Time

	dimListeners []func(from, to int)
}

// New starts a session with an empty pattern and records it as the first
// history entry.
func New(opts Options) *Session {
	dim := opts.Dimension
	if dim < 1 || dim > patternfile.MaxGridSize {
		dim = grid.DefaultDimension
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Session{
		store:       grid.NewStore(dim),
		history:     grid.NewHistory(opts.HistoryLimit),
		zoom:        clampZoom(opts.Zoom),
		skipConfirm: opts.SkipConfirm,
		log:         logger,
		now:         now,
	}
	s.commit("start")
	return s
}

// OnDimensionChange registers fn to run after every change of grid size,
// whether from resize, undo, redo or import.
func (s *Session) OnDimensionChange(fn func(from, to int)) {
	s.dimListeners = append(s.dimListeners, fn)
}

func (s *Session) Dimension() int {
	return s.store.Dimension()
}

func (s *Session) ActiveCount() int {
	return s.store.Count()
}

func (s *Session) TotalCellCount() int {
	return s.store.Total()
}

func (s *Session) IsActive(i int) bool {
	return s.store.Has(i)
}

func (s *Session) Cells() []int {
	return s.store.Cells()
}

func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

func (s *Session) HistoryLen() int {
	return s.history.Len()
}

func (s *Session) HistoryIndex() int {
	return s.history.Index()
}

func (s *Session) Dragging() bool {
	return s.drag.Active()
}

func (s *Session) DragMode() grid.Mode {
	return s.drag.Mode()
}

func (s *Session) Zoom() int {
	return s.zoom
}

func (s *Session) SkipConfirm() bool {
	return s.skipConfirm
}

func (s *Session) validIndex(i int) bool {
	return i >= 0 && i < s.store.Total()
}

// ToggleCell flips one cell as a discrete edit.
func (s *Session) ToggleCell(index int) {
	if !s.validIndex(index) {
		return
	}
	s.EndDrag()
	s.store.Toggle(index)
	s.commit("toggle")
}

// BeginDrag starts a gesture on index. The gesture paints when the origin
// cell was empty and erases when it was active. An unfinished gesture is
// closed first.
func (s *Session) BeginDrag(index int) {
	if !s.validIndex(index) {
		return
	}
	if s.drag.Active() {
		s.EndDrag()
	}
	mode := s.drag.Begin(index, s.store.Has(index))
	s.store.SetMode(index, mode)
	s.log.Debug("drag begin", "index", index, "mode", mode)
}

// ContinueDrag applies the gesture's mode to index. Re-entering a cell that
// is already in the right state changes nothing.
func (s *Session) ContinueDrag(index int) {
	if !s.drag.Active() || !s.validIndex(index) {
		return
	}
	s.drag.Enter(index)
	s.store.SetMode(index, s.drag.Mode())
}

// DragTo applies the gesture along the straight line from the last cell
// entered to index, so a pointer that jumps several cells leaves no gaps.
func (s *Session) DragTo(index int) {
	if !s.drag.Active() || !s.validIndex(index) {
		return
	}
	for _, cell := range grid.Path(s.drag.Last(), index, s.store.Dimension()) {
		s.ContinueDrag(cell)
	}
}

// EndDrag closes the gesture and records it as a single history entry. It
// is safe to call when no gesture is open.
func (s *Session) EndDrag() {
	if !s.drag.End() {
		return
	}
	// one entry per gesture, even when it changed nothing
	s.commit("drag")
}

// Clear deactivates every cell.
func (s *Session) Clear() {
	s.EndDrag()
	s.store.Clear()
	s.commit("clear")
}

// Resize changes the grid size, keeping the pattern centered. Shrinking
// that would drop active cells is not applied unless confirmations are
// off; the caller asks the user and then calls ConfirmResize.
func (s *Session) Resize(newDim int) (ResizeResult, error) {
	old := s.store.Dimension()
	res := ResizeResult{From: old, To: newDim}
	if err := checkDimension(newDim); err != nil {
		return res, err
	}
	if newDim == old {
		return res, nil
	}
	res.WillLoseData = grid.WillLoseData(s.store.Snapshot().Cells, old, newDim)
	if res.WillLoseData && !s.skipConfirm {
		res.NeedsConfirmation = true
		s.log.Debug("resize needs confirmation", "from", old, "to", newDim)
		return res, nil
	}
	s.applyResize(newDim)
	res.Applied = true
	return res, nil
}

// ConfirmResize resizes even when active cells fall off the new grid.
func (s *Session) ConfirmResize(newDim int) error {
	if err := checkDimension(newDim); err != nil {
		return err
	}
	if newDim == s.store.Dimension() {
		return nil
	}
	s.applyResize(newDim)
	return nil
}

func (s *Session) applyResize(newDim int) {
	s.EndDrag()
	old := s.store.Dimension()
	cells := grid.Remap(s.store.Snapshot().Cells, old, newDim)
	dropped := s.store.Count() - len(cells)
	s.store.Replace(newDim, cells)
	s.log.Info("grid resized", "from", old, "to", newDim, "dropped", dropped)
	s.commit("resize")
	s.notifyDimension(old, newDim)
}

// Undo restores the previous history entry. It reports false when there is
// nothing to undo.
func (s *Session) Undo() bool {
	s.EndDrag()
	snap, ok := s.history.StepBack()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// Redo reapplies the next history entry. It reports false when there is
// nothing to redo.
func (s *Session) Redo() bool {
	s.EndDrag()
	snap, ok := s.history.StepForward()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

func (s *Session) restore(snap grid.Snapshot) {
	old := s.store.Dimension()
	s.store.Restore(snap)
	if snap.Dimension != old {
		s.notifyDimension(old, snap.Dimension)
	}
}

// ExportSnapshot returns the current pattern in file form.
func (s *Session) ExportSnapshot() patternfile.Pattern {
	return patternfile.Encode(s.store.Dimension(), s.store.Cells(), s.now())
}

// ImportSnapshot decodes data and replaces the pattern with it. On error
// the session is left unchanged.
func (s *Session) ImportSnapshot(data []byte) error {
	p, err := patternfile.Decode(data)
	if err != nil {
		s.log.Warn("import rejected", "err", err)
		return err
	}
	return s.ImportPattern(p)
}

// ImportPattern replaces the pattern with an already decoded one.
func (s *Session) ImportPattern(p patternfile.Pattern) error {
	if err := checkDimension(p.GridSize); err != nil {
		return &patternfile.FormatError{Field: "gridSize", Reason: err.Error()}
	}
	total := p.GridSize * p.GridSize
	cells := grid.NewCellSet()
	for _, i := range p.ActivePattern {
		if i < 0 || i >= total {
			return &patternfile.FormatError{
				Field:  "activePattern",
				Reason: fmt.Sprintf("index %d is outside a %dx%d grid", i, p.GridSize, p.GridSize),
			}
		}
		cells.Add(i)
	}

	s.EndDrag()
	old := s.store.Dimension()
	s.store.Replace(p.GridSize, cells)
	s.log.Info("pattern imported", "dimension", p.GridSize, "active", len(cells), "version", p.Version)
	s.commit("import")
	if old != p.GridSize {
		s.notifyDimension(old, p.GridSize)
	}
	return nil
}

func (s *Session) SetZoom(z int) {
	s.zoom = clampZoom(z)
}

func (s *Session) ZoomIn() {
	s.SetZoom(s.zoom + 1)
}

func (s *Session) ZoomOut() {
	s.SetZoom(s.zoom - 1)
}

func (s *Session) commit(reason string) {
	if s.history.Push(s.store.Snapshot()) {
		s.log.Debug("history full, dropped oldest entry", "limit", s.history.Limit())
	}
	s.log.Debug("snapshot", "reason", reason, "index", s.history.Index(), "len", s.history.Len())
}

func (s *Session) notifyDimension(from, to int) {
	for _, fn := range s.dimListeners {
		fn(from, to)
	}
}

func checkDimension(dim int) error {
	if dim < 1 || dim > patternfile.MaxGridSize {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidDimension, dim, patternfile.MaxGridSize)
	}
	return nil
}

func clampZoom(z int) int {
	if z < MinZoom {
		if z == 0 {
			return DefaultZoom
		}
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
