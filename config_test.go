package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridpat/internal/grid"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridpat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, grid.DefaultDimension, config.DefaultSize)
	assert.Equal(t, grid.DefaultHistoryLimit, config.MaxHistory)
	assert.Equal(t, defaultSizes, config.Sizes)
	assert.True(t, config.Confirmations)
	assert.Equal(t, 1, config.Zoom)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
save_directory: `+dir+`
default_size: 12
sizes: [30, 6, 12]
max_history: 20
confirmations: false
zoom: 3
`)

	config, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, dir, config.SaveDirectory)
	assert.Equal(t, 12, config.DefaultSize)
	assert.Equal(t, []int{6, 12, 30}, config.Sizes)
	assert.Equal(t, 20, config.MaxHistory)
	assert.False(t, config.Confirmations)
	assert.Equal(t, 3, config.Zoom)
	assert.Equal(t, dir, config.SaveDir())
	assert.Equal(t, filepath.Join(dir, "a.json"), config.GetSavePath("a.json"))
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"zoom too large":   "zoom: 9\n",
		"size too large":   "default_size: 5000\n",
		"zero in sizes":    "sizes: [5, 0]\n",
		"empty sizes":      "sizes: []\n",
		"history negative": "max_history: -1\n",
		"not yaml":         "sizes: [1, 2\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestNextSize(t *testing.T) {
	config := defaultConfig()

	assert.Equal(t, 25, config.nextSize(20, 1))
	assert.Equal(t, 15, config.nextSize(20, -1))
	assert.Equal(t, 10, config.nextSize(7, 1))
	assert.Equal(t, 5, config.nextSize(7, -1))
	assert.Equal(t, 5, config.nextSize(5, -1))
	assert.Equal(t, 50, config.nextSize(50, 1))
	assert.Equal(t, 50, config.nextSize(64, -1))
}
