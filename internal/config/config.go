package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/mosaic/internal/layout"
)

// Config holds the gallery settings read from config.toml.
type Config struct {
	Seed               string
	BatchSize          int
	Overscan           float64
	PaddingTop         float64
	PaddingBottom      float64
	EstimatedRowHeight float64
	MaxSafeOffset      float64
	ThumbnailNeighbors int
	HistoryDebounce    time.Duration
	InlineImages       bool
	LogPath            string
	Breakpoints        layout.Breakpoints
}

const (
	defaultConfigPath    = "~/.config/mosaic/config.toml"
	defaultLogPath       = "~/.local/state/mosaic/mosaic.log"
	defaultSeed          = "mosaic"
	defaultBatchSize     = 12
	defaultPaddingBottom = 1
	defaultRowHeight     = 12
	defaultMaxSafeOffset = 16777200
	defaultNeighbors     = 15
	defaultDebounce      = 300 * time.Millisecond

	// SeedEnv overrides the configured seed.
	SeedEnv = "MOSAIC_SEED"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Seed:               defaultSeed,
		BatchSize:          defaultBatchSize,
		PaddingBottom:      defaultPaddingBottom,
		EstimatedRowHeight: defaultRowHeight,
		MaxSafeOffset:      defaultMaxSafeOffset,
		ThumbnailNeighbors: defaultNeighbors,
		HistoryDebounce:    defaultDebounce,
		LogPath:            mustExpand(defaultLogPath),
		Breakpoints:        layout.DefaultBreakpoints(),
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

type rawBreakpoints struct {
	SM  *int `toml:"sm"`
	MD  *int `toml:"md"`
	LG  *int `toml:"lg"`
	XL  *int `toml:"xl"`
	XXL *int `toml:"2xl"`
}

type rawConfig struct {
	Seed               string         `toml:"seed"`
	BatchSize          *int           `toml:"batch_size"`
	Overscan           *float64       `toml:"overscan"`
	PaddingTop         *float64       `toml:"padding_top"`
	PaddingBottom      *float64       `toml:"padding_bottom"`
	EstimatedRowHeight *float64       `toml:"estimated_row_height"`
	MaxSafeOffset      *float64       `toml:"max_safe_offset"`
	ThumbnailNeighbors *int           `toml:"thumbnail_neighbors"`
	HistoryDebounce    string         `toml:"history_debounce"`
	InlineImages       bool           `toml:"inline_images"`
	LogPath            string         `toml:"log_path"`
	Breakpoints        rawBreakpoints `toml:"breakpoints"`
}

// Load parses the config at path (or the default path), falling back to
// defaults when the file is missing. MOSAIC_SEED overrides the seed.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, cfg.Validate()
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if seed := strings.TrimSpace(raw.Seed); seed != "" {
		cfg.Seed = seed
	}
	setInt(&cfg.BatchSize, raw.BatchSize)
	setFloat(&cfg.Overscan, raw.Overscan)
	setFloat(&cfg.PaddingTop, raw.PaddingTop)
	setFloat(&cfg.PaddingBottom, raw.PaddingBottom)
	setFloat(&cfg.EstimatedRowHeight, raw.EstimatedRowHeight)
	setFloat(&cfg.MaxSafeOffset, raw.MaxSafeOffset)
	setInt(&cfg.ThumbnailNeighbors, raw.ThumbnailNeighbors)
	if d := strings.TrimSpace(raw.HistoryDebounce); d != "" {
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: history_debounce: %w", err)
		}
		cfg.HistoryDebounce = parsed
	}
	cfg.InlineImages = raw.InlineImages
	if logPath := strings.TrimSpace(raw.LogPath); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}
	setInt(&cfg.Breakpoints.SM, raw.Breakpoints.SM)
	setInt(&cfg.Breakpoints.MD, raw.Breakpoints.MD)
	setInt(&cfg.Breakpoints.LG, raw.Breakpoints.LG)
	setInt(&cfg.Breakpoints.XL, raw.Breakpoints.XL)
	setInt(&cfg.Breakpoints.XXL, raw.Breakpoints.XXL)

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the grid cannot work with.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Seed) == "" {
		problems = append(problems, "seed must not be empty")
	}
	if c.BatchSize <= 0 {
		problems = append(problems, fmt.Sprintf("batch_size must be positive, got %d", c.BatchSize))
	}
	if c.EstimatedRowHeight <= 0 {
		problems = append(problems, fmt.Sprintf("estimated_row_height must be positive, got %v", c.EstimatedRowHeight))
	}
	if c.MaxSafeOffset <= 0 {
		problems = append(problems, fmt.Sprintf("max_safe_offset must be positive, got %v", c.MaxSafeOffset))
	}
	if c.Overscan < 0 || c.PaddingTop < 0 || c.PaddingBottom < 0 {
		problems = append(problems, "overscan and padding must not be negative")
	}
	if c.ThumbnailNeighbors < 0 {
		problems = append(problems, fmt.Sprintf("thumbnail_neighbors must not be negative, got %d", c.ThumbnailNeighbors))
	}
	if c.HistoryDebounce < 0 {
		problems = append(problems, "history_debounce must not be negative")
	}
	if err := c.Breakpoints.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func applyEnv(cfg *Config) {
	if seed := strings.TrimSpace(os.Getenv(SeedEnv)); seed != "" {
		cfg.Seed = seed
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
