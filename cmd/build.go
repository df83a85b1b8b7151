package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/slotmill/slotmill/internal/build"
	"github.com/slotmill/slotmill/internal/config"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Build the site",
	Long: `Expand every page source against the component templates, write full pages
and fragments into the output tree, and stamp the cache asset.

The build is all-or-nothing: pages render into a staging directory that only
replaces the previous output once the whole build, including the cache stamp,
has succeeded.

Examples:
  slotmill build                        # Build with configured settings
  slotmill build --base-url /docs/      # Override the base URL
  slotmill build --output public        # Build into a different directory`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("base-url", "", "Base URL substituted into rendered pages")
	buildCmd.Flags().StringP("output", "o", "", "Output directory")
	_ = viper.BindPFlag("site.base_url", buildCmd.Flags().Lookup("base-url"))
	_ = viper.BindPFlag("site.output", buildCmd.Flags().Lookup("output"))
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger()
	start := time.Now()

	pipeline := build.NewPipeline(cfg, logger)
	result, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Built %d pages into %s in %s (stamp %s)\n",
		len(result.Pages), result.OutputDir, time.Since(start).Round(time.Millisecond), result.Stamp)
	return nil
}
