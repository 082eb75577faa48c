package helpers

import (
	"strings"
	"testing"
)

func TestIncludeHelper(t *testing.T) {
	h := newHarness(t, map[string]string{
		"content/snippet.md":    "---\ntitle: x\n---\nHello {{name}}\n",
		"content/docs/local.md": "local {{page.src}}",
		"content/side.md":       "{{sidebarCurrentDepth}}",
		"content/code.html":     "<b>{{x}}</b>\n",
	})
	h.engine.RegisterPartial("greet", "Hi {{who}}")
	h.engine.RegisterPartial("card.hbs", "{{name}}")

	page := map[string]any{
		"name": "Ann",
		"page": map[string]any{"src": "content/docs/index.md"},
		"item": map[string]any{"name": "Card"},
	}

	cases := []struct {
		tpl  string
		want string
	}{
		{tpl: `{{include "snippet.md"}}`, want: "Hello Ann"},
		{tpl: `{{include "snippet.md" name="Bo"}}`, want: "Hello Bo"},
		{tpl: `{{include "snippet.md" hideYFM=false}}`, want: "---\ntitle: x\n---\nHello Ann"},
		{tpl: `{{include "greet" who="Bo"}}`, want: "Hi Bo"},
		{tpl: `{{include "local.md"}}`, want: "local content/docs/index.md"},
		{tpl: `{{include "side.md" sidebarCurrentDepth=1}}`, want: "2"},
		{tpl: `{{include "code.html" render=false escape=true}}`, want: "&lt;b&gt;{{x}}&lt;/b&gt;"},
		{tpl: `{{include "snippet.md" indent=2 hideYFM=true}}`, want: "  Hello Ann"},
		{tpl: `{{includeWith "card.hbs" item}}`, want: "Card"},
		{tpl: `[{{include "missing.md"}}]`, want: "[]"},
	}
	for _, tc := range cases {
		if got := h.render(t, tc.tpl, page); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.tpl, got, tc.want)
		}
	}
}

func TestIncludeTemplateErrorsSurface(t *testing.T) {
	h := newHarness(t, map[string]string{"content/broken.md": "{{#if}}"})

	_, err := h.engine.RenderString(`{{include "broken.md"}}`, map[string]any{"title": "x"})
	if err == nil || !strings.Contains(err.Error(), "Expecting OpenEndBlock") {
		t.Fatalf("expected the inner parse error, got %v", err)
	}
}
