package build

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/slotmill/slotmill/internal/errors"
)

// copyAssets seeds the staging tree with everything that isn't a rendered
// page: the static tree under <out>/static, and site-root client scripts
// (service worker and friends) in the output root.
func (p *Pipeline) copyAssets(ctx context.Context, staging string) error {
	staticDir := p.cfg.Site.Static
	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		if err := copyTree(staticDir, filepath.Join(staging, "static")); err != nil {
			return err
		}
	} else {
		p.logger.Debug(ctx, "no static directory to copy", "dir", staticDir)
	}

	scripts, err := filepath.Glob(filepath.Join(p.cfg.Site.Root, "*.js"))
	if err != nil {
		return errors.NewInternalError("globbing root scripts", err)
	}
	for _, script := range scripts {
		dest := filepath.Join(staging, filepath.Base(script))
		if err := copyFile(script, dest); err != nil {
			return err
		}
	}
	return nil
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.NewIOError("walking static tree "+src, err)
		}
		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return errors.NewInternalError("resolving static path "+path, relErr)
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			if mkErr := os.MkdirAll(target, 0o755); mkErr != nil {
				return errors.NewIOError("creating static directory "+target, mkErr)
			}
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.NewIOError("opening asset "+src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.NewIOError("creating directory for "+dst, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return errors.NewIOError("creating asset "+dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.NewIOError("copying asset "+dst, err)
	}
	return out.Close()
}
