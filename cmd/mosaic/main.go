package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/mosaic/internal/app"
)

// Version information set via ldflags at build time
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mosaic: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "mosaic [path]",
		Short: "Browse an endless, seeded photo gallery in the terminal",
		Long: `Mosaic is a terminal photo gallery. Every item is derived from a seed,
so the same seed always produces the same gallery.

The optional path selects the starting location: "/" shows the grid and
"/p/<id>" opens the viewer on item id.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Route = args[0]
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "override config path (default ~/.config/mosaic/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "override preferences path (default ~/.config/mosaic/prefs.toml)")
	flags.StringVar(&opts.Seed, "seed", "", "gallery seed (overrides config and MOSAIC_SEED)")
	flags.StringVar(&opts.LogPath, "log", "", "override session log path")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	return cmd
}
