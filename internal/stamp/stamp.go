// Package stamp fingerprints the rendered output tree and injects the result
// into the client cache asset. Identical output bytes always produce the same
// token; any single-byte change anywhere in the included files changes it.
package stamp

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/slotmill/slotmill/internal/errors"
	"github.com/slotmill/slotmill/internal/logging"
)

// Stamper computes and applies cache stamps.
type Stamper struct {
	logger logging.Logger
	// Asset is the output-relative path of the client asset that receives
	// the stamp. It is excluded from the digest so the stamp never
	// fingerprints itself.
	Asset string
	// Token is the literal placeholder in Asset replaced by the stamp.
	Token string
	// Length is the number of hex characters kept from the digest.
	Length int
}

// New creates a Stamper.
func New(logger logging.Logger, asset, token string, length int) *Stamper {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Stamper{
		logger: logger.WithComponent("stamp"),
		Asset:  asset,
		Token:  token,
		Length: length,
	}
}

// Compute digests every file under root in lexicographic path order,
// excluding the designated asset, and returns the truncated hex token.
func (s *Stamper) Compute(root string) (string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if filepath.ToSlash(rel) == filepath.ToSlash(s.Asset) {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return "", errors.NewIOError("walking output tree "+root, err)
	}

	// WalkDir is already lexical; sorting keeps the order contractual.
	sort.Strings(files)

	h := sha256.New()
	for _, rel := range files {
		if err := hashFile(h, filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			return "", err
		}
	}

	digest := hex.EncodeToString(h.Sum(nil))
	if s.Length > 0 && s.Length < len(digest) {
		digest = digest[:s.Length]
	}
	return digest, nil
}

func hashFile(h io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.NewIOError("reading output file "+path, err)
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return errors.NewIOError("hashing output file "+path, err)
	}
	return nil
}

// Apply computes the stamp over root and rewrites the asset, substituting the
// placeholder token. It must only run after every page and fragment has been
// flushed; the digest has to observe the complete output set.
//
// A site without the asset skips stamping with a warning rather than failing
// the build.
func (s *Stamper) Apply(ctx context.Context, root string) (string, error) {
	token, err := s.Compute(root)
	if err != nil {
		return "", err
	}

	assetPath := filepath.Join(root, filepath.FromSlash(s.Asset))
	content, err := os.ReadFile(assetPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn(ctx, nil, "cache asset missing, skipping stamp", "asset", s.Asset)
			return token, nil
		}
		return "", errors.NewIOError("reading cache asset "+assetPath, err)
	}

	if !bytes.Contains(content, []byte(s.Token)) {
		s.logger.Warn(ctx, nil, "cache asset has no placeholder token",
			"asset", s.Asset, "token", s.Token)
		return token, nil
	}

	stamped := bytes.ReplaceAll(content, []byte(s.Token), []byte(token))
	if err := os.WriteFile(assetPath, stamped, 0o644); err != nil {
		return "", errors.NewIOError("rewriting cache asset "+assetPath, err)
	}

	s.logger.Info(ctx, "cache stamp applied", "asset", s.Asset, "stamp", token)
	return token, nil
}
