package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/slotmill/slotmill/internal/config"
	"github.com/slotmill/slotmill/internal/validation"
)

var generateCmd = &cobra.Command{
	Use:     "generate component <tag-name>",
	Aliases: []string{"g"},
	Short:   "Generate a new component template",
	Long: `Generate a component template scaffold in the component directory.
The tag name must be a valid custom-element name: lowercase, containing at
least one hyphen.

Examples:
  slotmill generate component greeting-box
  slotmill generate component nav-menu --force`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

var generateForce bool

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(&generateForce, "force", false, "Overwrite an existing template")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if args[0] != "component" {
		return fmt.Errorf("unknown generate target %q (expected component)", args[0])
	}
	tag := args[1]

	if err := validation.ValidateTagName(tag); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	path := filepath.Join(cfg.Site.Components, tag+".html")
	if _, statErr := os.Stat(path); statErr == nil && !generateForce {
		return fmt.Errorf("component %s already exists at %s (use --force to overwrite)", tag, path)
	}

	if err := os.MkdirAll(cfg.Site.Components, 0o755); err != nil {
		return fmt.Errorf("failed to create component directory: %w", err)
	}

	title := cases.Title(language.English).String(strings.ReplaceAll(tag, "-", " "))
	scaffold := fmt.Sprintf(`<section class="%s">
  <h2><slot name="title">%s</slot></h2>
  <div class="%s-body">
    <slot></slot>
  </div>
</section>
`, tag, title, tag)

	if err := os.WriteFile(path, []byte(scaffold), 0o644); err != nil {
		return fmt.Errorf("failed to write component template: %w", err)
	}

	fmt.Printf("Created component <%s> at %s\n", tag, path)
	return nil
}
