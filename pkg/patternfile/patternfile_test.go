package patternfile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripSaveLoad(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 123000000, time.UTC)
	p := Encode(5, []int{0, 6, 12, 18, 24}, now)

	path := filepath.Join(t.TempDir(), "nested", Filename(5, now))
	require.NoError(t, Save(path, p))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.GridSize)
	assert.Equal(t, []int{0, 6, 12, 18, 24}, loaded.ActivePattern)
	assert.Equal(t, Version, loaded.Version)
	assert.True(t, loaded.Timestamp.Equal(now))
}

func TestMarshalWireShape(t *testing.T) {
	now := time.Date(2024, 12, 24, 8, 30, 0, 0, time.UTC)
	data, err := Marshal(Encode(3, nil, now))
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, float64(3), wire["gridSize"])
	assert.Equal(t, []any{}, wire["activePattern"])
	assert.Equal(t, "2024-12-24T08:30:00.000Z", wire["timestamp"])
	assert.Equal(t, "1.0", wire["version"])
	assert.Contains(t, string(data), "\n  \"gridSize\": 3")
}

func TestDecodeIgnoresUnknownFieldsAndVersion(t *testing.T) {
	p, err := Decode([]byte(`{"gridSize": 4, "activePattern": [3, 1, 3], "version": "9.7", "author": "x"}`))
	require.NoError(t, err)
	assert.Equal(t, 4, p.GridSize)
	assert.Equal(t, []int{3, 1, 3}, p.ActivePattern)
	assert.Equal(t, "9.7", p.Version)
	assert.True(t, p.Timestamp.IsZero())
}

func TestDecodeAcceptsIntegralFloats(t *testing.T) {
	p, err := Decode([]byte(`{"gridSize": 3.0, "activePattern": [2.0]}`))
	require.NoError(t, err)
	assert.Equal(t, 3, p.GridSize)
	assert.Equal(t, []int{2}, p.ActivePattern)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"not json", `{gridSize`, ""},
		{"array root", `[1,2]`, ""},
		{"missing gridSize", `{"activePattern":[1,2]}`, "gridSize"},
		{"null gridSize", `{"gridSize":null,"activePattern":[]}`, "gridSize"},
		{"zero gridSize", `{"gridSize":0,"activePattern":[]}`, "gridSize"},
		{"negative gridSize", `{"gridSize":-3,"activePattern":[]}`, "gridSize"},
		{"string gridSize", `{"gridSize":"20","activePattern":[]}`, "gridSize"},
		{"fractional gridSize", `{"gridSize":2.5,"activePattern":[]}`, "gridSize"},
		{"huge gridSize", `{"gridSize":100000,"activePattern":[]}`, "gridSize"},
		{"missing activePattern", `{"gridSize":5}`, "activePattern"},
		{"object activePattern", `{"gridSize":5,"activePattern":{"0":1}}`, "activePattern"},
		{"string entry", `{"gridSize":5,"activePattern":[1,"2"]}`, "activePattern[1]"},
		{"out of range entry", `{"gridSize":2,"activePattern":[0,4]}`, "activePattern[1]"},
		{"negative entry", `{"gridSize":2,"activePattern":[-1]}`, "activePattern[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat))

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
			assert.NotEmpty(t, fe.Error())
		})
	}
}

func TestLoadWrapsFormatError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"activePattern":[1,2]}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, err.Error(), "broken.json")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, ErrFormat)
}

func TestFilename(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	assert.Equal(t, "grid-pattern-20x20-1700000000123.json", Filename(20, ts))
}

func TestEncodeCopiesCells(t *testing.T) {
	cells := []int{1, 2}
	p := Encode(3, cells, time.Now())
	cells[0] = 8
	assert.Equal(t, []int{1, 2}, p.ActivePattern)
}
