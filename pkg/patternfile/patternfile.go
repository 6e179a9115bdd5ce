// Package patternfile reads and writes grid patterns as JSON files.
//
// A pattern file looks like:
//
//	{
//	  "gridSize": 20,
//	  "activePattern": [21, 22, 41],
//	  "timestamp": "2025-03-01T12:00:00.000Z",
//	  "version": "1.0"
//	}
//
// gridSize and activePattern are required. Other fields are informational
// and unknown fields are ignored.
package patternfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

const (
	Version = "1.0"
	Ext     = ".json"

	// MaxGridSize bounds gridSize so gridSize² stays a sane cell count.
	MaxGridSize = 1000

	timeLayout = "2006-01-02T15:04:05.000Z07:00"
)

var ErrFormat = errors.New("patternfile: invalid pattern format")

// FormatError describes why a pattern could not be decoded.
type FormatError struct {
	Field  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return "invalid pattern file: " + e.Reason
	}
	return fmt.Sprintf("invalid pattern file: %s %s", e.Field, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// Pattern is the decoded content of a pattern file.
type Pattern struct {
	GridSize      int
	ActivePattern []int
	Timestamp     time.Time
	Version       string
}

// Encode builds a Pattern from a dimension and its active cells. Cells are
// written in the order given.
func Encode(gridSize int, cells []int, now time.Time) Pattern {
	active := make([]int, len(cells))
	copy(active, cells)
	return Pattern{
		GridSize:      gridSize,
		ActivePattern: active,
		Timestamp:     now.UTC(),
		Version:       Version,
	}
}

type wirePattern struct {
	GridSize      int    `json:"gridSize"`
	ActivePattern []int  `json:"activePattern"`
	Timestamp     string `json:"timestamp"`
	Version       string `json:"version"`
}

// Marshal renders p as indented JSON.
func Marshal(p Pattern) ([]byte, error) {
	active := p.ActivePattern
	if active == nil {
		active = []int{}
	}
	version := p.Version
	if version == "" {
		version = Version
	}
	w := wirePattern{
		GridSize:      p.GridSize,
		ActivePattern: active,
		Timestamp:     p.Timestamp.UTC().Format(timeLayout),
		Version:       version,
	}
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode parses a pattern file. Any problem with the required fields is
// reported as a *FormatError.
func Decode(data []byte) (Pattern, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Pattern{}, &FormatError{Reason: "is not a JSON object: " + err.Error()}
	}

	size, err := decodeGridSize(raw["gridSize"])
	if err != nil {
		return Pattern{}, err
	}
	active, err := decodeActive(raw["activePattern"], size)
	if err != nil {
		return Pattern{}, err
	}

	p := Pattern{GridSize: size, ActivePattern: active}
	if v, ok := raw["version"]; ok {
		// informational only
		var s string
		if json.Unmarshal(v, &s) == nil {
			p.Version = s
		} else {
			p.Version = string(v)
		}
	}
	if ts, ok := raw["timestamp"]; ok {
		var s string
		if json.Unmarshal(ts, &s) == nil {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				p.Timestamp = t
			}
		}
	}
	return p, nil
}

func decodeGridSize(raw json.RawMessage) (int, error) {
	if isNull(raw) {
		return 0, &FormatError{Field: "gridSize", Reason: "is missing"}
	}
	n, ok := decodeInt(raw)
	if !ok {
		return 0, &FormatError{Field: "gridSize", Reason: "must be an integer"}
	}
	if n < 1 {
		return 0, &FormatError{Field: "gridSize", Reason: "must be positive"}
	}
	if n > MaxGridSize {
		return 0, &FormatError{Field: "gridSize", Reason: fmt.Sprintf("must not exceed %d", MaxGridSize)}
	}
	return n, nil
}

func decodeActive(raw json.RawMessage, size int) ([]int, error) {
	if isNull(raw) {
		return nil, &FormatError{Field: "activePattern", Reason: "is missing"}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &FormatError{Field: "activePattern", Reason: "must be an array of integers"}
	}
	total := size * size
	active := make([]int, 0, len(items))
	for i, item := range items {
		n, ok := decodeInt(item)
		if !ok {
			return nil, &FormatError{Field: fmt.Sprintf("activePattern[%d]", i), Reason: "must be an integer"}
		}
		if n < 0 || n >= total {
			return nil, &FormatError{
				Field:  fmt.Sprintf("activePattern[%d]", i),
				Reason: fmt.Sprintf("%d is outside a %dx%d grid", n, size, size),
			}
		}
		active = append(active, n)
	}
	return active, nil
}

func decodeInt(raw json.RawMessage) (int, bool) {
	// json.Number also accepts quoted numbers
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '-' && (trimmed[0] < '0' || trimmed[0] > '9')) {
		return 0, false
	}
	var num json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&num); err != nil {
		return 0, false
	}
	if n, err := num.Int64(); err == nil {
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	}
	// 20.0 is still an integer
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// Filename is the default export name for a pattern saved at t.
func Filename(gridSize int, t time.Time) string {
	return fmt.Sprintf("grid-pattern-%dx%d-%d%s", gridSize, gridSize, t.UnixMilli(), Ext)
}

// Save writes p to path, creating parent directories.
func Save(path string, p Pattern) error {
	data, err := Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pattern: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads and decodes the pattern file at path.
func Load(path string) (Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pattern{}, err
	}
	p, err := Decode(data)
	if err != nil {
		return Pattern{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return p, nil
}
