// Package validation provides path-safety and tag-name checks shared by the
// config layer and the CLI.
package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// tagNameRe follows the custom-element naming rule: lowercase start, at least
// one hyphen, only lowercase letters, digits, and hyphens.
var tagNameRe = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)+$`)

// ValidatePath rejects paths that would let a config value escape the
// project directory.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal detected: %s", path)
	}
	if filepath.IsAbs(cleanPath) {
		return fmt.Errorf("absolute path not allowed: %s", path)
	}
	return nil
}

// ValidateTagName checks that name is a well-formed custom-element tag. The
// registry itself only requires the hyphen; this stricter form is applied to
// tags we generate ourselves.
func ValidateTagName(name string) error {
	if name == "" {
		return fmt.Errorf("tag name cannot be empty")
	}
	if !strings.Contains(name, "-") {
		return fmt.Errorf("tag name %q needs a hyphen to be a custom element", name)
	}
	if !tagNameRe.MatchString(name) {
		return fmt.Errorf("tag name %q is not a valid custom-element name", name)
	}
	return nil
}
