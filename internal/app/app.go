package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/five82/mosaic/internal/config"
	"github.com/five82/mosaic/internal/delivery"
	"github.com/five82/mosaic/internal/history"
	"github.com/five82/mosaic/internal/imagedata"
	"github.com/five82/mosaic/internal/logger"
	"github.com/five82/mosaic/internal/prefs"
	"github.com/five82/mosaic/internal/route"
	"github.com/five82/mosaic/internal/state"
	"github.com/five82/mosaic/internal/ui"
)

// Options configure the Mosaic application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/mosaic/prefs.toml
	LogPath    string // overrides the configured log path
	Seed       string // overrides the configured seed and MOSAIC_SEED
	Route      string // initial path, e.g. "/p/42"
	Debug      bool
}

// session holds everything Run builds before handing control to the UI.
type session struct {
	cfg     config.Config
	prefs   prefs.Prefs
	store   *state.Store
	gen     *imagedata.Generator
	tracker *delivery.Tracker
	history *history.Sync
	bridge  *ui.Bridge
}

// Run boots the Mosaic TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return ui.Run(ctx, ui.Options{
		Store:     s.store,
		Generator: s.gen,
		Tracker:   s.tracker,
		Config:    s.cfg,
		ThemeName: s.prefs.Theme,
		PrefsPath: prefsPath,
		Chrome:    s.prefs.Chrome(),
		LogPath:   logger.Path(),
		Title:     route.Path(s.store.Read()),
		Bridge:    s.bridge,
	})
}

func newSession(opts Options) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if seed := strings.TrimSpace(opts.Seed); seed != "" {
		cfg.Seed = seed
	}
	if opts.LogPath != "" {
		cfg.LogPath = opts.LogPath
	}

	if err := logger.Init(cfg.LogPath); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDebug(opts.Debug)
	log := logger.Component("app")

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Warn("load prefs failed", "error", err)
	}

	boot, err := route.Parse(opts.Route)
	if err != nil {
		if !errors.Is(err, route.ErrNotFound) {
			logger.Close()
			return nil, err
		}
		log.Warn("unknown route, showing the grid", "route", opts.Route)
		boot = state.Bootstrap{}
	}

	s := &session{
		cfg:    cfg,
		prefs:  userPrefs,
		store:  state.New(boot),
		gen:    imagedata.NewGenerator(cfg.Seed),
		bridge: ui.NewBridge(),
	}

	var loader delivery.Loader
	if cfg.InlineImages {
		loader = delivery.NewChafaLoader()
	}
	s.tracker = delivery.NewTracker(s.gen, loader, func(ev delivery.Event) {
		s.bridge.Send(ui.PictureMsg(ev))
	})
	s.history = history.Start(s.store, cfg.HistoryDebounce, s.bridge.Title)

	initial := s.store.Read()
	log.Info("session started",
		"seed", cfg.Seed,
		"route", route.Path(initial),
		"inline_images", cfg.InlineImages,
		"session", logger.SessionID(),
	)
	return s, nil
}

// close stops the background work in dependency order.
func (s *session) close() {
	s.history.Stop()
	s.tracker.Stop()
	s.store.Close()
	logger.Component("app").Info("session ended", "route", s.history.Last())
	logger.Close()
}
