// Package engine expands build-time web components in page-source markup.
//
// A component usage is an occurrence of a registered custom-element tag.
// Usages resolve innermost-first: a usage's children are fully expanded
// before its slot content is captured, so slot values always arrive as plain
// markup, never as unexpanded component tags. Expansion runs to a fixpoint in
// which no registered tag marker remains.
package engine

import (
	"context"
	"strings"

	"github.com/slotmill/slotmill/internal/errors"
	"github.com/slotmill/slotmill/internal/logging"
	"github.com/slotmill/slotmill/internal/registry"
)

// DefaultMaxDepth bounds template-introduced nesting when no limit is
// configured.
const DefaultMaxDepth = 64

// Engine resolves component usages against a read-only registry. It holds no
// mutable state, so one Engine may expand any number of documents.
type Engine struct {
	registry *registry.ComponentRegistry
	logger   logging.Logger
	maxDepth int
}

// New creates an expansion engine. maxDepth <= 0 selects DefaultMaxDepth.
func New(reg *registry.ComponentRegistry, logger logging.Logger, maxDepth int) *Engine {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Engine{
		registry: reg,
		logger:   logger.WithComponent("engine"),
		maxDepth: maxDepth,
	}
}

// Expand resolves every component usage in source and returns the fully
// expanded document. With an empty registry the source passes through
// unchanged. Documents already free of registered tags come back
// byte-identical.
//
// Expansion fails with an unresolved-tag error when a registered marker
// cannot collapse (unclosed or stray tag), and with a cyclic-reference error
// when a template reintroduces a tag that is already being expanded.
func (e *Engine) Expand(ctx context.Context, source string) (string, error) {
	if e.registry.Len() == 0 {
		return source, nil
	}

	out, err := e.expand(ctx, source, nil)
	if err != nil {
		return "", err
	}

	// Anything that looks like a registered tag at this point never
	// matched a complete usage; refuse to emit the broken document.
	for _, name := range e.registry.Names() {
		if containsTagMarker(out, name) {
			return "", errors.NewUnresolvedTagError(name)
		}
	}
	return out, nil
}

// expand walks doc left to right, replacing each registered usage with its
// filled template. stack holds the tags whose templates are currently being
// expanded; a repeat within it is a cycle in the template set.
func (e *Engine) expand(ctx context.Context, doc string, stack []string) (string, error) {
	var out strings.Builder

	i := 0
	for i < len(doc) {
		idx := strings.IndexByte(doc[i:], '<')
		if idx < 0 {
			out.WriteString(doc[i:])
			break
		}
		out.WriteString(doc[i : i+idx])
		i += idx

		name, _, openEnd, ok := parseOpenTag(doc, i)
		if !ok {
			out.WriteByte('<')
			i++
			continue
		}

		tmpl, registered := e.registry.Get(name)
		if !registered {
			out.WriteString(doc[i:openEnd])
			i = openEnd
			continue
		}

		for _, active := range stack {
			if active == name {
				return "", errors.NewCyclicReferenceError(stack, name)
			}
		}
		if len(stack) >= e.maxDepth {
			return "", errors.NewCyclicReferenceError(stack, name)
		}

		closeStart, closeEnd, found := findMatchingClose(doc, openEnd, name)
		if !found {
			return "", errors.NewUnresolvedTagError(name)
		}

		// Children must collapse before slot content is captured;
		// otherwise still-unexpanded tags would be frozen into slot
		// values as opaque text.
		inner, err := e.expand(ctx, doc[openEnd:closeStart], stack)
		if err != nil {
			return "", err
		}

		slots := ExtractSlots(inner)
		filled := FillSlots(tmpl.Markup, slots)

		// The filled template may introduce usages of its own; resolve
		// them with this tag marked active.
		resolved, err := e.expand(ctx, filled, append(stack, name))
		if err != nil {
			return "", err
		}

		e.logger.Debug(ctx, "expanded component usage", "tag", name, "depth", len(stack))
		out.WriteString(resolved)
		i = closeEnd
	}

	return out.String(), nil
}
