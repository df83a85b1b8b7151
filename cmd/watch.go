package cmd

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/slotmill/slotmill/internal/build"
	"github.com/slotmill/slotmill/internal/config"
	"github.com/slotmill/slotmill/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Watch for source changes and rebuild the site",
	Long: `Watch the component, page, and static directories and rerun the full build
whenever something changes. Every rebuild is a complete batch build; there is
no incremental rendering.

Examples:
  slotmill watch                  # Watch with configured settings`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger()
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := build.NewPipeline(cfg, logger)

	// Initial build before settling into the watch loop.
	if result, buildErr := pipeline.Run(ctx); buildErr != nil {
		logger.Error(ctx, buildErr, "initial build failed")
	} else {
		fmt.Printf("Built %d pages into %s (stamp %s)\n",
			len(result.Pages), result.OutputDir, result.Stamp)
	}

	fw, err := watcher.NewFileWatcher(time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Stop()

	// Changes inside the output or staging trees are our own writes.
	fw.AddFilter(outputFilter(cfg.Site.Output))

	fw.AddHandler(func(events []watcher.ChangeEvent) error {
		logger.Info(ctx, "source changed, rebuilding", "changes", len(events))
		result, buildErr := pipeline.Run(ctx)
		if buildErr != nil {
			logger.Error(ctx, buildErr, "rebuild failed")
			return buildErr
		}
		fmt.Printf("Rebuilt %d pages (stamp %s)\n", len(result.Pages), result.Stamp)
		return nil
	})

	for _, dir := range []string{cfg.Site.Components, cfg.Site.Pages, cfg.Site.Static, cfg.Site.Root} {
		if err := fw.AddRecursive(dir); err != nil {
			logger.Warn(ctx, err, "cannot watch directory", "dir", dir)
		}
	}

	fw.Start(ctx)
	fmt.Println("Watching for changes. Press Ctrl+C to stop.")
	<-ctx.Done()
	return nil
}

// outputFilter rejects events from the output and staging trees. Matching is
// path-segment aware: an output of "docs" must not swallow "docs-notes".
func outputFilter(output string) watcher.FileFilter {
	out := filepath.Clean(output)
	staging := out + ".staging"
	return func(path string) bool {
		return !underTree(path, out) && !underTree(path, staging)
	}
}

func underTree(path, root string) bool {
	path = filepath.Clean(path)
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}
