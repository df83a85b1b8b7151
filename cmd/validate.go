package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/slotmill/slotmill/internal/config"
	"github.com/slotmill/slotmill/internal/fragment"
	"github.com/slotmill/slotmill/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"v"},
	Short:   "Validate the rendered output tree",
	Long: `Parse every rendered page in the output tree and report problems:
custom-element tags that survived expansion, and full pages missing the
content root element.

Examples:
  slotmill validate               # Validate the configured output directory`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := os.Stat(cfg.Site.Output); err != nil {
		return fmt.Errorf("output directory %s not found, run a build first: %w", cfg.Site.Output, err)
	}

	issues, err := validation.CheckOutput(
		cfg.Site.Output, cfg.Site.Fragments,
		fragment.ContentRootTag, fragment.ContentRootID,
	)
	if err != nil {
		return fmt.Errorf("failed to validate output: %w", err)
	}

	if len(issues) == 0 {
		fmt.Printf("Output tree %s is clean\n", cfg.Site.Output)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tISSUE\tTAG")
	for _, issue := range issues {
		fmt.Fprintf(w, "%s\t%s\t%s\n", issue.File, issue.Kind, issue.Tag)
	}
	w.Flush()

	return fmt.Errorf("found %d issues in %s", len(issues), cfg.Site.Output)
}
