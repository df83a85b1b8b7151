// Package config provides configuration management for slotmill using Viper
// for flexible configuration loading from files, environment variables, and
// command-line flags.
//
// The configuration system supports YAML files and environment variable
// overrides with the SLOTMILL_ prefix. It manages the site directory layout
// (components, pages, static assets, output tree), the base URL substituted
// into rendered pages, cache stamping, and engine limits.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Site   SiteConfig   `yaml:"site"`
	Cache  CacheConfig  `yaml:"cache"`
	Engine EngineConfig `yaml:"engine"`
	Watch  WatchConfig  `yaml:"watch"`
}

// SiteConfig describes the source and output directory layout.
type SiteConfig struct {
	// Components is the directory holding component template files. A
	// missing directory is not an error; expansion becomes a pass-through.
	Components string `yaml:"components"`
	// Pages is the root of the page-source tree.
	Pages string `yaml:"pages"`
	// Static is copied verbatim into <output>/static when present.
	Static string `yaml:"static"`
	// Root holds site-level client scripts (service worker etc.) copied
	// into the output root before pages render.
	Root string `yaml:"root"`
	// Output is the published site tree.
	Output string `yaml:"output"`
	// Fragments is the subdirectory of Output receiving per-page fragments.
	Fragments string `yaml:"fragments"`
	// BaseURL replaces the base-URL token in every rendered page. Always
	// normalized to end with a slash.
	BaseURL string `yaml:"base_url"`
	// BaseURLToken is the literal placeholder substituted with BaseURL.
	BaseURLToken string `yaml:"base_url_token"`
}

// CacheConfig controls the cache-stamp pass.
type CacheConfig struct {
	// Asset is the output-relative path of the client asset that receives
	// the stamp. It is excluded from the digest.
	Asset string `yaml:"asset"`
	// Token is the literal placeholder in Asset replaced with the stamp.
	Token string `yaml:"token"`
	// Length is the number of hex characters kept from the digest.
	Length int `yaml:"length"`
}

// EngineConfig holds expansion-engine limits.
type EngineConfig struct {
	// MaxDepth bounds template-introduced expansion nesting. The active
	// tag stack catches true cycles; the depth ceiling backs it up.
	MaxDepth int `yaml:"max_depth"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	// DebounceMillis groups rapid file changes into one rebuild.
	DebounceMillis int `yaml:"debounce_ms"`
}

// Load builds a Config from viper state, applying defaults for anything not
// explicitly set.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	// Workarounds for viper's handling of nested keys set only through
	// env vars or flags.
	if viper.IsSet("site.base_url") {
		config.Site.BaseURL = viper.GetString("site.base_url")
	}
	if viper.IsSet("site.output") {
		config.Site.Output = viper.GetString("site.output")
	}
	if viper.IsSet("engine.max_depth") {
		config.Engine.MaxDepth = viper.GetInt("engine.max_depth")
	}

	config.Site.BaseURL = NormalizeBaseURL(config.Site.BaseURL)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns the configuration used when no file, env var, or flag
// overrides anything. The values mirror the canonical site layout.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	config.Site.BaseURL = NormalizeBaseURL(config.Site.BaseURL)
	return &config
}

func applyDefaults(config *Config) {
	if config.Site.Components == "" {
		config.Site.Components = "site/components"
	}
	if config.Site.Pages == "" {
		config.Site.Pages = "site/pages"
	}
	if config.Site.Static == "" {
		config.Site.Static = "site/static"
	}
	if config.Site.Root == "" {
		config.Site.Root = "site"
	}
	if config.Site.Output == "" {
		config.Site.Output = "docs"
	}
	if config.Site.Fragments == "" {
		config.Site.Fragments = "_f"
	}
	if config.Site.BaseURL == "" {
		config.Site.BaseURL = "/"
	}
	if config.Site.BaseURLToken == "" {
		config.Site.BaseURLToken = "{{BASE_URL}}"
	}
	if config.Cache.Asset == "" {
		config.Cache.Asset = "sw.js"
	}
	if config.Cache.Token == "" {
		config.Cache.Token = "{{CACHE_HASH}}"
	}
	if config.Cache.Length == 0 {
		config.Cache.Length = 8
	}
	if config.Engine.MaxDepth == 0 {
		config.Engine.MaxDepth = 64
	}
	if config.Watch.DebounceMillis == 0 {
		config.Watch.DebounceMillis = 300
	}
}

// NormalizeBaseURL guarantees a trailing slash so page links can concatenate
// paths directly after the token.
func NormalizeBaseURL(base string) string {
	if base == "" {
		return "/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}
