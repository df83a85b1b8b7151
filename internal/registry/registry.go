// Package registry loads and holds the component templates for a build.
//
// The registry is read-once, read-only state: it is fully populated by Load
// before expansion starts and never mutated afterwards, so it is safe to share
// across goroutines without locking.
package registry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/slotmill/slotmill/internal/errors"
)

// ComponentTemplate holds one loaded component template.
type ComponentTemplate struct {
	// Tag is the custom-element tag name, equal to the filename stem. It
	// always contains the hyphen separator.
	Tag string
	// Markup is the raw template text, containing zero or more <slot>
	// placeholders.
	Markup string
	// Path is the file the template was read from.
	Path string
}

// ComponentRegistry maps tag names to their templates.
type ComponentRegistry struct {
	templates map[string]*ComponentTemplate
	names     []string
}

// New returns an empty registry. Expansion against an empty registry is a
// pass-through.
func New() *ComponentRegistry {
	return &ComponentRegistry{templates: make(map[string]*ComponentTemplate)}
}

// Load reads every component template under dir. Only *.html files whose
// stem contains a hyphen (the custom-element separator) are registered;
// everything else is ignored. A missing directory is not an error: the
// returned registry is simply empty.
//
// The directory listing is sorted, so if two files ever mapped to the same
// tag the later name would win deterministically.
func Load(dir string) (*ComponentRegistry, error) {
	reg := New()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, errors.NewIOError("reading component directory "+dir, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != ".html" {
			continue
		}
		tag := strings.TrimSuffix(name, ".html")
		if !strings.Contains(tag, "-") {
			continue
		}

		path := filepath.Join(dir, name)
		markup, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewIOError("reading component template "+path, err)
		}

		reg.templates[tag] = &ComponentTemplate{
			Tag:    tag,
			Markup: string(markup),
			Path:   path,
		}
	}

	reg.names = make([]string, 0, len(reg.templates))
	for tag := range reg.templates {
		reg.names = append(reg.names, tag)
	}
	sort.Strings(reg.names)

	return reg, nil
}

// Get retrieves a template by tag name.
func (r *ComponentRegistry) Get(tag string) (*ComponentTemplate, bool) {
	tmpl, ok := r.templates[tag]
	return tmpl, ok
}

// Names returns all registered tag names in sorted order.
func (r *ComponentRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered templates.
func (r *ComponentRegistry) Len() int {
	return len(r.templates)
}

// register is used by tests to build registries without a directory.
func (r *ComponentRegistry) register(tmpl *ComponentTemplate) {
	r.templates[tmpl.Tag] = tmpl
	r.names = append(r.names, tmpl.Tag)
	sort.Strings(r.names)
}

// FromMap builds a registry from in-memory templates, keyed by tag. Tags
// without the hyphen separator are rejected.
func FromMap(templates map[string]string) (*ComponentRegistry, error) {
	reg := New()
	tags := make([]string, 0, len(templates))
	for tag := range templates {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		if !strings.Contains(tag, "-") {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidTagName,
				"component tag needs a hyphen: "+tag)
		}
		reg.register(&ComponentTemplate{Tag: tag, Markup: templates[tag]})
	}
	return reg, nil
}
