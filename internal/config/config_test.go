package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "site/components", cfg.Site.Components)
	assert.Equal(t, "site/pages", cfg.Site.Pages)
	assert.Equal(t, "site/static", cfg.Site.Static)
	assert.Equal(t, "site", cfg.Site.Root)
	assert.Equal(t, "docs", cfg.Site.Output)
	assert.Equal(t, "_f", cfg.Site.Fragments)
	assert.Equal(t, "/", cfg.Site.BaseURL)
	assert.Equal(t, "{{BASE_URL}}", cfg.Site.BaseURLToken)
	assert.Equal(t, "sw.js", cfg.Cache.Asset)
	assert.Equal(t, "{{CACHE_HASH}}", cfg.Cache.Token)
	assert.Equal(t, 8, cfg.Cache.Length)
	assert.Equal(t, 64, cfg.Engine.MaxDepth)
	assert.Equal(t, 300, cfg.Watch.DebounceMillis)

	require.NoError(t, cfg.Validate())
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/site-name", "/site-name/"},
		{"/site-name/", "/site-name/"},
		{"https://example.com/sub", "https://example.com/sub/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeBaseURL(tt.in), "input %q", tt.in)
	}
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("site.base_url", "/project-pages")
	viper.Set("site.output", "public")
	viper.Set("engine.max_depth", 10)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/project-pages/", cfg.Site.BaseURL, "base URL gains a trailing slash")
	assert.Equal(t, "public", cfg.Site.Output)
	assert.Equal(t, 10, cfg.Engine.MaxDepth)

	// Everything untouched keeps its default.
	assert.Equal(t, "site/pages", cfg.Site.Pages)
	assert.Equal(t, "sw.js", cfg.Cache.Asset)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("site.output", "site/pages")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not overlap")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"traversal in components", func(c *Config) { c.Site.Components = "../outside" }},
		{"absolute pages dir", func(c *Config) { c.Site.Pages = "/etc/pages" }},
		{"fragments with separator", func(c *Config) { c.Site.Fragments = "a/b" }},
		{"empty fragments", func(c *Config) { c.Site.Fragments = "" }},
		{"output overlaps pages", func(c *Config) { c.Site.Output = "site/pages" }},
		{"output is cwd", func(c *Config) { c.Site.Output = "." }},
		{"empty base url token", func(c *Config) { c.Site.BaseURLToken = "" }},
		{"empty cache token", func(c *Config) { c.Cache.Token = "" }},
		{"absolute cache asset", func(c *Config) { c.Cache.Asset = "/sw.js" }},
		{"cache length too short", func(c *Config) { c.Cache.Length = 2 }},
		{"cache length too long", func(c *Config) { c.Cache.Length = 100 }},
		{"non-positive max depth", func(c *Config) { c.Engine.MaxDepth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
