// Package cmd wires the layout-viewer command line: flags over config
// file over defaults, then hands off to the viewer window.
package cmd

import (
	"context"
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/atopile/atopile-sub007/internal/log"
	"github.com/atopile/atopile-sub007/internal/viewer"
	"github.com/atopile/atopile-sub007/pkg/layoutapi"
)

var (
	flagServer   string
	flagConfig   string
	flagTheme    string
	flagLogLevel string
	flagLogFile  string
)

var rootCmd = &cobra.Command{
	Use:   "layout-viewer",
	Short: "Interactive PCB layout viewer",
	Long: `layout-viewer connects to a running layout server, renders the
board it serves, and lets you inspect and rearrange footprints.

Controls:
  Left Click / Drag   - Select and move footprints
  Drag on empty space - Box select
  Middle/Right Drag   - Pan
  Scroll Wheel        - Zoom at cursor (Ctrl/Shift: pan)
  R / F               - Rotate / flip selection
  N                   - Highlight the selection's net
  Ctrl+Z / Ctrl+Shift+Z - Undo / redo
  Space               - Fit board to window
  F5                  - Reload board from disk
  Escape              - Clear selection`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runViewer,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&flagServer, "server", "s", "", "layout server base URL")
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to YAML config file")
	rootCmd.Flags().StringVar(&flagTheme, "theme", "", "color theme (classic, nord)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "rotated log file path")
}

func runViewer(cmd *cobra.Command, args []string) error {
	cfg, err := viewer.LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}

	log.Init(log.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	logger := log.WithComponent("viewer")

	client := layoutapi.New(cfg.ServerURL, log.WithComponent("api"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The first model fetch may race server startup; the viewer also
	// copes with starting empty and filling in from the subscription.
	model, err := client.RenderModel(ctx)
	if err != nil {
		logger.Warn("initial model fetch failed, waiting for updates", "err", err)
	}
	updates, err := client.Subscribe(ctx)
	if err != nil {
		if model == nil {
			return fmt.Errorf("connect to %s: %w", cfg.ServerURL, err)
		}
		logger.Warn("model subscription unavailable", "err", err)
	}

	v := viewer.New(cfg, client, model, updates, logger)

	go func() {
		w := new(app.Window)
		w.Option(app.Title("Layout Viewer - " + cfg.ServerURL))
		w.Option(app.Size(unit.Dp(1000), unit.Dp(800)))
		if err := v.Run(w); err != nil {
			logger.Error("window closed with error", "err", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}
