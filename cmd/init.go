package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/slotmill/slotmill/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Scaffold a new site",
	Long: `Create the canonical site layout with a starter component, page, static
asset, service worker, and configuration file.

Examples:
  slotmill init                   # Scaffold in the current directory
  slotmill init mysite            # Scaffold in ./mysite`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

const (
	starterComponent = `<section class="greeting">
  <h2><slot name="title">Hello</slot></h2>
  <p><slot>Welcome to your new site.</slot></p>
</section>
`

	starterPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Home</title>
  <link rel="stylesheet" href="{{BASE_URL}}static/style.css">
</head>
<body>
  <main id="content">
    <greeting-box>
      <span slot="title">Hello, slotmill</span>
      Edit site/pages/index.html to get started.
    </greeting-box>
  </main>
  <script src="{{BASE_URL}}sw.js"></script>
</body>
</html>
`

	starterStylesheet = `body { font-family: sans-serif; margin: 2rem auto; max-width: 42rem; }
`

	starterServiceWorker = `const CACHE = "site-{{CACHE_HASH}}";

self.addEventListener("activate", (event) => {
  event.waitUntil(
    caches.keys().then((keys) =>
      Promise.all(keys.filter((k) => k !== CACHE).map((k) => caches.delete(k)))
    )
  );
});
`
)

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg := config.Default()

	files := map[string]string{
		filepath.Join(cfg.Site.Components, "greeting-box.html"): starterComponent,
		filepath.Join(cfg.Site.Pages, "index.html"):             starterPage,
		filepath.Join(cfg.Site.Static, "style.css"):             starterStylesheet,
		filepath.Join(cfg.Site.Root, cfg.Cache.Asset):           starterServiceWorker,
	}

	for rel, content := range files {
		path := filepath.Join(root, rel)
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping existing %s\n", path)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	cfgPath := filepath.Join(root, ".slotmill.yml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		data, marshalErr := yaml.Marshal(cfg)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal default config: %w", marshalErr)
		}
		if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", cfgPath, err)
		}
	}

	fmt.Printf("Scaffolded site in %s\n", root)
	fmt.Println("Next: slotmill build")
	return nil
}
