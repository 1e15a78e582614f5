package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/cyberfolio/logging"
	"github.com/milk9111/cyberfolio/prefabs"
	"github.com/milk9111/cyberfolio/save"
	"github.com/milk9111/cyberfolio/telemetry"
	"github.com/milk9111/cyberfolio/transition"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const appName = "cyberfolio"

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Fly a camera between the sections of a neon portfolio scene",
	Long: `cyberfolio renders the portfolio scene and flies the camera between section
anchors declared in prefabs/scene.yaml. Keys 1-5, arrows, swipes, clicks on a
beacon or the button bar start a transition.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := runFlags{}
		flags.debug, _ = cmd.Flags().GetBool("debug")
		flags.section, _ = cmd.Flags().GetString("section")
		flags.metricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		flags.watch, _ = cmd.Flags().GetBool("watch")
		flags.baseMonitor, _ = cmd.Flags().GetBool("base-monitor")
		return runGame(cmd.Context(), flags)
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging, the debug overlay and anchor copy (C)")
	rootCmd.Flags().String("section", "", "section to fly to on boot (defaults to the saved or initial section)")
	rootCmd.Flags().String("metrics-addr", "", "serve /metrics, /state and /healthz on this address (e.g. :9090)")
	rootCmd.Flags().Bool("watch", false, "hot reload prefabs/*.yaml and prefabs/scripts/*.tengo on change")
	rootCmd.Flags().BoolP("base-monitor", "m", false, "use base monitor instead of primary (for multi-monitor setups)")
}

type runFlags struct {
	debug       bool
	section     string
	metricsAddr string
	watch       bool
	baseMonitor bool
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runGame(ctx context.Context, flags runFlags) error {
	log, err := logging.New(flags.debug)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, gctx := errgroup.WithContext(ctx)

	var changes <-chan prefabs.Change
	if flags.watch {
		watcher, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			log.Warn("watch: prefabs directory unavailable, hot reload disabled", zap.Error(err))
		} else {
			changes = watcher.Events
			group.Go(func() error { return watcher.Run(gctx) })
			group.Go(func() error {
				for {
					select {
					case <-gctx.Done():
						return nil
					case err := <-watcher.Errors:
						log.Warn("watch: fsnotify error", zap.Error(err))
					}
				}
			})
		}
	}

	metrics := telemetry.NewMetrics()
	game, err := NewGame(gameOptions{
		log:     log,
		debug:   flags.debug,
		section: transition.Section(flags.section),
		metrics: metrics,
		saves:   save.Open(appName, log),
		changes: changes,
	})
	if err != nil {
		return err
	}
	defer game.Close()

	if flags.metricsAddr != "" {
		handler := telemetry.NewHandler(metrics, game.Engine().Store())
		group.Go(func() error {
			return telemetry.Serve(gctx, flags.metricsAddr, handler, log)
		})
	}

	if flags.baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(appName)

	runErr := ebiten.RunGame(game)
	cancel()
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("background task failed", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}
