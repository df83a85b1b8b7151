// Package build orchestrates a full site build: load the component registry,
// expand every page source, derive fragments, copy static assets, stamp the
// cache asset, and publish the output tree atomically.
package build

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/slotmill/slotmill/internal/config"
	"github.com/slotmill/slotmill/internal/engine"
	"github.com/slotmill/slotmill/internal/errors"
	"github.com/slotmill/slotmill/internal/fragment"
	"github.com/slotmill/slotmill/internal/logging"
	"github.com/slotmill/slotmill/internal/registry"
	"github.com/slotmill/slotmill/internal/stamp"
)

// Result summarizes a completed build.
type Result struct {
	// Components are the registered tag names, sorted.
	Components []string
	// Pages are the output-relative paths of rendered pages, in render
	// order.
	Pages []string
	// Stamp is the cache token injected into the client asset.
	Stamp string
	// OutputDir is the published output tree.
	OutputDir string
}

// Pipeline runs builds for one configuration. It is single-threaded and
// batch: one Run processes the whole page-source tree, all-or-nothing. No
// partial output is ever published; pages render into a staging directory
// that replaces the previous output only after the cache stamp pass
// succeeds.
type Pipeline struct {
	cfg    *config.Config
	logger logging.Logger
}

// NewPipeline creates a build pipeline.
func NewPipeline(cfg *config.Config, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Pipeline{cfg: cfg, logger: logger.WithComponent("build")}
}

// Run executes one full build.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	staging := p.cfg.Site.Output + ".staging"
	if err := os.RemoveAll(staging); err != nil {
		return nil, errors.NewIOError("clearing staging directory "+staging, err)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return nil, errors.NewIOError("creating staging directory "+staging, err)
	}
	defer os.RemoveAll(staging)

	if err := p.copyAssets(ctx, staging); err != nil {
		return nil, err
	}

	reg, err := registry.Load(p.cfg.Site.Components)
	if err != nil {
		return nil, err
	}
	if reg.Len() == 0 {
		// Non-fatal: expansion becomes a pass-through.
		var warnErr error
		if _, statErr := os.Stat(p.cfg.Site.Components); os.IsNotExist(statErr) {
			warnErr = errors.NewConfigError(errors.ErrCodeMissingComponentDir,
				"component directory does not exist: "+p.cfg.Site.Components)
		}
		p.logger.Warn(ctx, warnErr, "no component templates found, pages pass through unchanged",
			"dir", p.cfg.Site.Components)
	} else {
		p.logger.Info(ctx, "components loaded",
			"count", reg.Len(), "tags", strings.Join(reg.Names(), ", "))
	}

	eng := engine.New(reg, p.logger, p.cfg.Engine.MaxDepth)

	result := &Result{
		Components: reg.Names(),
		OutputDir:  p.cfg.Site.Output,
	}
	renderPerf := p.logger.StartOperation("render")
	if err := p.renderPages(ctx, eng, staging, result); err != nil {
		renderPerf.EndWithError(ctx, err)
		return nil, err
	}
	renderPerf.End(ctx)

	// Hard ordering barrier: the stamp digests every flushed page and
	// fragment, so it cannot run until all rendering is done. Any earlier
	// failure aborts before this point, so a stamp is never computed over
	// an incomplete output set.
	stamper := stamp.New(p.logger, p.cfg.Cache.Asset, p.cfg.Cache.Token, p.cfg.Cache.Length)
	stampPerf := p.logger.StartOperation("stamp")
	token, err := stamper.Apply(ctx, staging)
	if err != nil {
		stampPerf.EndWithError(ctx, err)
		return nil, err
	}
	stampPerf.End(ctx)
	result.Stamp = token

	if err := p.publish(staging); err != nil {
		return nil, err
	}

	p.logger.Info(ctx, "build complete",
		"pages", len(result.Pages), "output", result.OutputDir, "stamp", result.Stamp)
	return result, nil
}

// renderPages expands every page source into staging, writing the full page
// at its mirrored relative path and its fragment under the fragment root.
func (p *Pipeline) renderPages(ctx context.Context, eng *engine.Engine, staging string, result *Result) error {
	pagesDir := p.cfg.Site.Pages
	if _, err := os.Stat(pagesDir); err != nil {
		return errors.NewIOError("page source directory "+pagesDir, err)
	}

	fragRoot := filepath.Join(staging, p.cfg.Site.Fragments)
	if err := os.MkdirAll(fragRoot, 0o755); err != nil {
		return errors.NewIOError("creating fragment directory "+fragRoot, err)
	}

	return filepath.WalkDir(pagesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.NewIOError("walking page sources", err)
		}
		if d.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}

		rel, relErr := filepath.Rel(pagesDir, path)
		if relErr != nil {
			return errors.NewInternalError("resolving page path "+path, relErr)
		}

		if renderErr := p.renderPage(ctx, eng, path, rel, staging, fragRoot); renderErr != nil {
			return renderErr
		}
		result.Pages = append(result.Pages, filepath.ToSlash(rel))
		return nil
	})
}

func (p *Pipeline) renderPage(ctx context.Context, eng *engine.Engine, path, rel, staging, fragRoot string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.NewIOError("reading page source "+path, err)
	}

	page, err := eng.Expand(ctx, string(source))
	if err != nil {
		var be *errors.BuildError
		if stderrors.As(err, &be) {
			return be.WithFile(path)
		}
		return err
	}

	page = strings.ReplaceAll(page, p.cfg.Site.BaseURLToken, p.cfg.Site.BaseURL)

	dest := filepath.Join(staging, rel)
	if err := writeFile(dest, []byte(page)); err != nil {
		return err
	}

	frag, found := fragment.Extract(page)
	if !found {
		p.logger.Warn(ctx, nil, "page has no content root, serving whole page as fragment",
			"page", rel)
	}
	if err := writeFile(filepath.Join(fragRoot, rel), []byte(frag)); err != nil {
		return err
	}

	p.logger.Debug(ctx, "page rendered", "page", rel)
	return nil
}

// publish atomically swaps the staging tree into place. The previous output
// disappears only once the new tree is fully built and stamped.
func (p *Pipeline) publish(staging string) error {
	out := p.cfg.Site.Output
	if err := os.RemoveAll(out); err != nil {
		return errors.NewIOError("removing previous output "+out, err)
	}
	if err := os.Rename(staging, out); err != nil {
		return errors.NewIOError("publishing output tree "+out, err)
	}
	return nil
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewIOError("creating directory for "+path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.NewIOError("writing "+path, err)
	}
	return nil
}
