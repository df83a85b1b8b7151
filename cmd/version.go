package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/slotmill/slotmill/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("slotmill %s\n", version.GetShortVersion())
		fmt.Printf("  go:       %s\n", runtime.Version())
		fmt.Printf("  platform: %s\n", version.Platform())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
