package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/mosaic/internal/layout"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(SeedEnv, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Seed != defaultSeed {
		t.Fatalf("Seed = %q, want %q", cfg.Seed, defaultSeed)
	}
	if cfg.BatchSize != 12 || cfg.ThumbnailNeighbors != 15 {
		t.Fatalf("BatchSize/ThumbnailNeighbors = %d/%d, want 12/15", cfg.BatchSize, cfg.ThumbnailNeighbors)
	}
	if cfg.MaxSafeOffset != 16777200 {
		t.Fatalf("MaxSafeOffset = %v, want 16777200", cfg.MaxSafeOffset)
	}
	if cfg.HistoryDebounce != 300*time.Millisecond {
		t.Fatalf("HistoryDebounce = %v, want 300ms", cfg.HistoryDebounce)
	}
	wantLog, err := expandPath(defaultLogPath)
	if err != nil {
		t.Fatalf("expandPath(defaultLogPath) returned error: %v", err)
	}
	if cfg.LogPath != wantLog {
		t.Fatalf("LogPath = %q, want %q", cfg.LogPath, wantLog)
	}
	if cfg.Breakpoints != layout.DefaultBreakpoints() {
		t.Fatalf("Breakpoints = %+v, want defaults", cfg.Breakpoints)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(SeedEnv, "")

	path := writeConfig(t, `
seed = "  test  "
batch_size = 24
overscan = 4
padding_top = 0
padding_bottom = 0
estimated_row_height = 9.5
max_safe_offset = 100000
thumbnail_neighbors = 5
history_debounce = "50ms"
inline_images = true
log_path = "  ~/logs/mosaic.log  "

[breakpoints]
sm = 50
2xl = 200
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Seed != "test" {
		t.Fatalf("Seed = %q, want %q", cfg.Seed, "test")
	}
	if cfg.BatchSize != 24 || cfg.Overscan != 4 || cfg.PaddingBottom != 0 {
		t.Fatalf("numbers = %d/%v/%v, want 24/4/0", cfg.BatchSize, cfg.Overscan, cfg.PaddingBottom)
	}
	if cfg.EstimatedRowHeight != 9.5 || cfg.MaxSafeOffset != 100000 || cfg.ThumbnailNeighbors != 5 {
		t.Fatalf("virtualizer settings = %v/%v/%d", cfg.EstimatedRowHeight, cfg.MaxSafeOffset, cfg.ThumbnailNeighbors)
	}
	if cfg.HistoryDebounce != 50*time.Millisecond || !cfg.InlineImages {
		t.Fatalf("HistoryDebounce/InlineImages = %v/%v", cfg.HistoryDebounce, cfg.InlineImages)
	}
	if !strings.HasPrefix(cfg.LogPath, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", cfg.LogPath, home)
	}
	want := layout.Breakpoints{SM: 50, MD: 80, LG: 100, XL: 128, XXL: 200}
	if cfg.Breakpoints != want {
		t.Fatalf("Breakpoints = %+v, want %+v", cfg.Breakpoints, want)
	}
}

func TestLoad_SeedEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(SeedEnv, "from-env")

	cfg, err := Load(writeConfig(t, `seed = "from-file"`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Seed != "from-env" {
		t.Fatalf("Seed = %q, want %q", cfg.Seed, "from-env")
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(SeedEnv, "")

	cfg, err := Load(writeConfig(t, `
seed = "   "
log_path = ""
history_debounce = ""
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Seed != defaultSeed {
		t.Fatalf("Seed = %q, want %q", cfg.Seed, defaultSeed)
	}
	if cfg.HistoryDebounce != defaultDebounce {
		t.Fatalf("HistoryDebounce = %v, want %v", cfg.HistoryDebounce, defaultDebounce)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, `seed = [`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	cases := map[string]string{
		"batch":       `batch_size = 0`,
		"row height":  `estimated_row_height = -1`,
		"offset":      `max_safe_offset = 0`,
		"overscan":    `overscan = -2`,
		"breakpoints": "[breakpoints]\nmd = 200",
		"debounce":    `history_debounce = "soon"`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("Load(%q) returned nil error", body)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
