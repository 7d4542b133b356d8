package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/mosaic/internal/logger"
	"github.com/five82/mosaic/internal/state"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MOSAIC_SEED", "")
	t.Cleanup(logger.Reset)
	return Options{
		ConfigPath: filepath.Join(dir, "config.toml"),
		PrefsPath:  filepath.Join(dir, "prefs.toml"),
		LogPath:    filepath.Join(dir, "logs", "mosaic.log"),
	}
}

func TestNewSessionBootstrapsRoute(t *testing.T) {
	opts := testOptions(t)
	opts.Route = "/p/42"
	opts.Seed = "test"

	s, err := newSession(opts)
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}

	want := state.AppState{CurrentImageIndex: 42, LastImageIndex: -1, IsViewerOpen: true}
	if got := s.store.Read(); got != want {
		t.Fatalf("state = %+v, want %+v", got, want)
	}
	if s.gen.Seed() != "test" {
		t.Fatalf("seed = %q, want test", s.gen.Seed())
	}

	s.history.Flush()
	if got := s.history.Last(); got != "/p/42" {
		t.Fatalf("history last = %q, want /p/42", got)
	}

	s.close()
	data, err := os.ReadFile(opts.LogPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	log := string(data)
	for _, want := range []string{"session started", "seed=test", "session ended"} {
		if !strings.Contains(log, want) {
			t.Fatalf("log missing %q:\n%s", want, log)
		}
	}
}

func TestNewSessionUnknownRouteShowsGrid(t *testing.T) {
	opts := testOptions(t)
	opts.Route = "/albums/3"

	s, err := newSession(opts)
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	defer s.close()

	if got := s.store.Read(); got != state.Default {
		t.Fatalf("state = %+v, want default %+v", got, state.Default)
	}
}

func TestNewSessionSeedFromConfig(t *testing.T) {
	opts := testOptions(t)
	if err := os.WriteFile(opts.ConfigPath, []byte("seed = \"from-file\"\nbatch_size = 24\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	s, err := newSession(opts)
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	defer s.close()

	if s.gen.Seed() != "from-file" {
		t.Fatalf("seed = %q, want from-file", s.gen.Seed())
	}
	if s.cfg.BatchSize != 24 {
		t.Fatalf("batch size = %d, want 24", s.cfg.BatchSize)
	}
}

func TestNewSessionInvalidConfig(t *testing.T) {
	opts := testOptions(t)
	if err := os.WriteFile(opts.ConfigPath, []byte("batch_size = 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := newSession(opts); err == nil {
		t.Fatal("newSession accepted batch_size = 0")
	}
}
