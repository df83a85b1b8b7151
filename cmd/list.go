package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/slotmill/slotmill/internal/config"
	"github.com/slotmill/slotmill/internal/registry"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List all registered components",
	Long: `List the component templates registered from the component directory,
with their tag names and source files.

Examples:
  slotmill list                   # List components in table format
  slotmill list -f json           # Output as JSON
  slotmill list --format yaml     # Output as YAML`,
	RunE: runList,
}

var listFormat string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "Output format (table, json, yaml)")
}

type componentListing struct {
	Tag  string `json:"tag" yaml:"tag"`
	Path string `json:"path" yaml:"path"`
	Size int    `json:"size" yaml:"size"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	reg, err := registry.Load(cfg.Site.Components)
	if err != nil {
		return fmt.Errorf("failed to load components: %w", err)
	}

	listings := make([]componentListing, 0, reg.Len())
	for _, tag := range reg.Names() {
		tmpl, _ := reg.Get(tag)
		listings = append(listings, componentListing{
			Tag:  tmpl.Tag,
			Path: tmpl.Path,
			Size: len(tmpl.Markup),
		})
	}

	switch listFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(listings)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(listings)
	case "table":
		if len(listings) == 0 {
			fmt.Printf("No components found in %s\n", cfg.Site.Components)
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TAG\tFILE\tSIZE")
		for _, l := range listings {
			fmt.Fprintf(w, "%s\t%s\t%d\n", l.Tag, l.Path, l.Size)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown format %q (expected table, json, or yaml)", listFormat)
	}
}
