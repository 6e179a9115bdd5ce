package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"gridpat/internal/grid"
)

const configFileName = ".gridpat.yaml"

type Config struct {
	SaveDirectory string `yaml:"save_directory"`
	DefaultSize   int    `yaml:"default_size" validate:"min=1,max=1000"`
	Sizes         []int  `yaml:"sizes" validate:"min=1,dive,min=1,max=1000"`
	MaxHistory    int    `yaml:"max_history" validate:"min=1,max=10000"`
	Confirmations bool   `yaml:"confirmations"`
	Zoom          int    `yaml:"zoom" validate:"min=1,max=4"`
	LogFile       string `yaml:"log_file"`
	Debug         bool   `yaml:"debug"`
}

func defaultConfig() *Config {
	sizes := make([]int, len(defaultSizes))
	copy(sizes, defaultSizes)
	return &Config{
		DefaultSize:   grid.DefaultDimension,
		Sizes:         sizes,
		MaxHistory:    grid.DefaultHistoryLimit,
		Confirmations: true,
		Zoom:          1,
	}
}

// loadConfig reads path, or ~/.gridpat.yaml when path is empty. A missing
// file yields the defaults.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	homeDir, _ := os.UserHomeDir()
	if path == "" {
		if homeDir == "" {
			return config, nil
		}
		path = filepath.Join(homeDir, configFileName)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	config.SaveDirectory = expandPath(config.SaveDirectory, homeDir)
	config.LogFile = expandPath(config.LogFile, homeDir)
	sort.Ints(config.Sizes)
	return config, nil
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// SaveDir is the directory listed by the open prompt.
func (c *Config) SaveDir() string {
	if c.SaveDirectory != "" {
		return c.SaveDirectory
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

// nextSize returns the configured size after current in direction dir
// (+1 grows, -1 shrinks), or current when there is none.
func (c *Config) nextSize(current, dir int) int {
	if dir > 0 {
		for _, s := range c.Sizes {
			if s > current {
				return s
			}
		}
		return current
	}
	for i := len(c.Sizes) - 1; i >= 0; i-- {
		if c.Sizes[i] < current {
			return c.Sizes[i]
		}
	}
	return current
}
