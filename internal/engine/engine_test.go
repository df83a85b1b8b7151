package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotmill/slotmill/internal/errors"
	"github.com/slotmill/slotmill/internal/logging"
	"github.com/slotmill/slotmill/internal/registry"
)

const greetingTemplate = `<div><slot name="title">Hi</slot>: <slot>nobody</slot></div>`

func newTestEngine(t *testing.T, templates map[string]string) *Engine {
	t.Helper()
	reg, err := registry.FromMap(templates)
	require.NoError(t, err)
	return New(reg, logging.NewNopLogger(), 0)
}

func TestExpandSlotFallback(t *testing.T) {
	eng := newTestEngine(t, map[string]string{"greeting-box": greetingTemplate})

	out, err := eng.Expand(context.Background(), `<greeting-box></greeting-box>`)
	require.NoError(t, err)
	assert.Equal(t, `<div>Hi: nobody</div>`, out)
}

func TestExpandSlotOverride(t *testing.T) {
	eng := newTestEngine(t, map[string]string{"greeting-box": greetingTemplate})

	out, err := eng.Expand(context.Background(),
		`<greeting-box><span slot="title">Hello</span>World</greeting-box>`)
	require.NoError(t, err)
	assert.Equal(t, `<div>Hello: World</div>`, out)
	assert.NotContains(t, out, "Hi")
	assert.NotContains(t, out, "nobody")
}

func TestExpandIdempotence(t *testing.T) {
	eng := newTestEngine(t, map[string]string{"greeting-box": greetingTemplate})

	tests := []struct {
		name string
		doc  string
	}{
		{"plain text", "hello world"},
		{"ordinary markup", `<div class="x"><p>text</p></div>`},
		{"loose angle bracket", "a < b and c > d"},
		{"unregistered hyphen tag close only", `before </nav-menu> after`},
		{"empty document", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := eng.Expand(context.Background(), tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.doc, out, "tag-free document must come back byte-identical")
		})
	}
}

func TestExpandEmptyRegistryPassThrough(t *testing.T) {
	eng := newTestEngine(t, map[string]string{})

	doc := `<greeting-box><span slot="title">Hello</span></greeting-box>`
	out, err := eng.Expand(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, doc, out)
}

func TestExpandNestingOrder(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"outer-box":  `<div class="outer"><inner-note>from outer</inner-note><slot>empty</slot></div>`,
		"inner-note": `<em><slot>none</slot></em>`,
	})

	out, err := eng.Expand(context.Background(), `<outer-box>Body</outer-box>`)
	require.NoError(t, err)
	assert.Equal(t, `<div class="outer"><em>from outer</em>Body</div>`, out)
	assert.NotContains(t, out, "<outer-box")
	assert.NotContains(t, out, "<inner-note")
}

func TestExpandChildUsageResolvesBeforeSlotCapture(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"card-box":   `<div class="card"><slot>x</slot></div>`,
		"inner-note": `<em><slot>none</slot></em>`,
	})

	out, err := eng.Expand(context.Background(),
		`<card-box><inner-note>T</inner-note></card-box>`)
	require.NoError(t, err)
	assert.Equal(t, `<div class="card"><em>T</em></div>`, out)
}

func TestExpandNestedSameTagInPageSource(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"wrap-box": `<div><slot></slot></div>`,
	})

	out, err := eng.Expand(context.Background(),
		`<wrap-box><wrap-box>deep</wrap-box></wrap-box>`)
	require.NoError(t, err)
	assert.Equal(t, `<div><div>deep</div></div>`, out)
}

func TestExpandAttributesIgnored(t *testing.T) {
	eng := newTestEngine(t, map[string]string{"greeting-box": greetingTemplate})

	out, err := eng.Expand(context.Background(),
		`<greeting-box class="wide" data-x="1">W</greeting-box>`)
	require.NoError(t, err)
	assert.Equal(t, `<div>Hi: W</div>`, out)
}

func TestExpandDeterminism(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"greeting-box": greetingTemplate,
		"outer-box":    `<div><inner-note>n</inner-note><slot></slot></div>`,
		"inner-note":   `<em><slot>none</slot></em>`,
	})

	doc := `<outer-box><greeting-box><span slot="title">A</span>B</greeting-box></outer-box>`

	first, err := eng.Expand(context.Background(), doc)
	require.NoError(t, err)
	second, err := eng.Expand(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExpandFixpoint(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"greeting-box": greetingTemplate,
		"outer-box":    `<div><inner-note>n</inner-note><slot></slot></div>`,
		"inner-note":   `<em><slot>none</slot></em>`,
	})

	out, err := eng.Expand(context.Background(),
		`<outer-box><greeting-box>hey</greeting-box></outer-box>`)
	require.NoError(t, err)

	for _, name := range eng.registry.Names() {
		assert.False(t, containsTagMarker(out, name),
			"expanded output still carries marker for %s", name)
	}
}

func TestExpandCycleGuardDirect(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"self-loop": `<div><self-loop></self-loop></div>`,
	})

	_, err := eng.Expand(context.Background(), `<self-loop></self-loop>`)
	require.Error(t, err)
	assert.True(t, errors.IsCyclicReference(err), "expected cyclic reference, got %v", err)
}

func TestExpandCycleGuardTransitive(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"a-comp": `<div><b-comp></b-comp></div>`,
		"b-comp": `<div><a-comp></a-comp></div>`,
	})

	_, err := eng.Expand(context.Background(), `<a-comp></a-comp>`)
	require.Error(t, err)
	assert.True(t, errors.IsCyclicReference(err), "expected cyclic reference, got %v", err)
}

func TestExpandUnresolvedTag(t *testing.T) {
	eng := newTestEngine(t, map[string]string{"greeting-box": greetingTemplate})

	tests := []struct {
		name string
		doc  string
	}{
		{"unclosed usage", `<p><greeting-box>hello</p>`},
		{"self-closing usage", `<greeting-box/>`},
		{"stray close tag", `before </greeting-box> after`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.Expand(context.Background(), tt.doc)
			require.Error(t, err)
			assert.True(t, errors.IsUnresolvedTag(err), "expected unresolved tag, got %v", err)
		})
	}
}

func TestExpandTagNameBoundary(t *testing.T) {
	// my-tag registered, my-tagline not: the longer tag must not be
	// mistaken for a usage of the shorter one.
	eng := newTestEngine(t, map[string]string{"my-tag": `<b><slot></slot></b>`})

	doc := `<my-tagline>keep</my-tagline>`
	out, err := eng.Expand(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, doc, out)
}

func TestExpandProvidedSlotWithoutPlaceholderDropped(t *testing.T) {
	eng := newTestEngine(t, map[string]string{"greeting-box": greetingTemplate})

	out, err := eng.Expand(context.Background(),
		`<greeting-box><span slot="zzz">Q</span></greeting-box>`)
	require.NoError(t, err)
	assert.Equal(t, `<div>Hi: nobody</div>`, out)
	assert.NotContains(t, out, "Q")
}

func TestExpandEmptySlotValueBeatsFallback(t *testing.T) {
	eng := newTestEngine(t, map[string]string{"greeting-box": greetingTemplate})

	out, err := eng.Expand(context.Background(),
		`<greeting-box><span slot="title"></span>W</greeting-box>`)
	require.NoError(t, err)
	assert.Equal(t, `<div>: W</div>`, out)
}

func TestExpandDepthCeiling(t *testing.T) {
	// An acyclic but deeper-than-allowed chain must abort rather than
	// recurse without bound.
	eng := newTestEngine(t, map[string]string{
		"chain-a": `<chain-b></chain-b>`,
		"chain-b": `<chain-c></chain-c>`,
		"chain-c": `done`,
	})
	eng.maxDepth = 2

	_, err := eng.Expand(context.Background(), `<chain-a></chain-a>`)
	require.Error(t, err)
	assert.True(t, errors.IsCyclicReference(err))
}
