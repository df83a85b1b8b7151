// Package cmd provides the command-line interface for slotmill with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --base-url, etc.) - highest priority
//	2. SLOTMILL_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (SLOTMILL_SITE_BASE_URL, etc.)
//	4. Configuration files (.slotmill.yml) - lowest priority
//
// Environment Variables:
//
//	SLOTMILL_CONFIG_FILE: Path to custom configuration file
//	SLOTMILL_SITE_BASE_URL: Override the base URL substituted into pages
//	SLOTMILL_SITE_OUTPUT: Override the output directory
//	And more following the SLOTMILL_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/slotmill/slotmill/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "slotmill",
	Short: "A static site builder with build-time web components",
	Long: `Slotmill renders a tree of page-source HTML documents into a static site
by expanding reusable component templates with slot-based content substitution.
Each page also gets a fragment for partial-page navigation, and a cache-busting
fingerprint is stamped into the client service worker after every build.

Key Features:
  • Build-time custom elements with <slot> expansion
  • Per-page fragments for partial page loads
  • Deterministic cache stamping over the whole output tree
  • Atomic publish: the previous site stays intact until a build fully succeeds

Quick Start:
  slotmill init                   Scaffold a new site
  slotmill build                  Build the site
  slotmill watch                  Rebuild on source changes
  slotmill list                   List registered components

Command Aliases (for faster typing):
  build (b), watch (w), list (l), generate (g), validate (v)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .slotmill.yml, can also use SLOTMILL_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. SLOTMILL_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .slotmill.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("SLOTMILL_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".slotmill")
	}

	viper.SetEnvPrefix("SLOTMILL")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing or malformed config files degrade gracefully to defaults.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the logger shared by commands from the persistent flags.
func newLogger() *logging.BuildLogger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(viper.GetString("log-level")),
		Format: viper.GetString("log-format"),
		Output: os.Stderr,
	})
}
