package config

import (
	"path/filepath"
	"strings"

	"github.com/slotmill/slotmill/internal/errors"
	"github.com/slotmill/slotmill/internal/validation"
)

// Validate checks the configuration for values that would make a build
// unsafe or nonsensical. It is called by Load, and again by commands that
// build a Config by hand.
func (c *Config) Validate() error {
	for field, path := range map[string]string{
		"site.components": c.Site.Components,
		"site.pages":      c.Site.Pages,
		"site.static":     c.Site.Static,
		"site.root":       c.Site.Root,
		"site.output":     c.Site.Output,
	} {
		if err := validation.ValidatePath(path); err != nil {
			return errors.NewConfigError(errors.ErrCodeConfigInvalid, field+": "+err.Error())
		}
	}

	if c.Site.Fragments == "" || strings.ContainsAny(c.Site.Fragments, `/\`) {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid,
			"site.fragments must be a bare directory name: "+c.Site.Fragments)
	}

	// The output tree is removed on publish; refuse to point it at a
	// source directory.
	out := filepath.Clean(c.Site.Output)
	for _, src := range []string{c.Site.Components, c.Site.Pages, c.Site.Static, "."} {
		if out == filepath.Clean(src) {
			return errors.NewConfigError(errors.ErrCodeConfigInvalid,
				"site.output must not overlap a source directory: "+c.Site.Output)
		}
	}

	if c.Site.BaseURLToken == "" {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid, "site.base_url_token must not be empty")
	}
	if c.Cache.Token == "" {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid, "cache.token must not be empty")
	}
	if strings.ContainsAny(c.Cache.Asset, `\`) || filepath.IsAbs(c.Cache.Asset) {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid,
			"cache.asset must be an output-relative path: "+c.Cache.Asset)
	}
	if c.Cache.Length < 4 || c.Cache.Length > 64 {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid,
			"cache.length must be between 4 and 64 hex characters")
	}
	if c.Engine.MaxDepth < 1 {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid, "engine.max_depth must be positive")
	}
	return nil
}
