package include

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

type stubRenderer struct {
	partials map[string]string
	seen     []any
	err      error
}

func (s *stubRenderer) Partial(name string) (string, bool) {
	src, ok := s.partials[name]
	return src, ok
}

// RenderString substitutes {{key}} for top level string values.
func (s *stubRenderer) RenderString(source string, data any, _ ...io.Writer) (string, error) {
	s.seen = append(s.seen, data)
	if s.err != nil {
		return "", s.err
	}
	ctx, _ := data.(map[string]any)
	for key, value := range ctx {
		if str, ok := value.(string); ok {
			source = strings.ReplaceAll(source, "{{"+key+"}}", str)
		}
	}
	return source, nil
}

type stubGuard struct {
	depth int
	limit int
}

func (g *stubGuard) Enter(string) (func(), error) {
	if g.depth >= g.limit {
		return nil, errors.New("too deep")
	}
	g.depth++
	return func() { g.depth-- }, nil
}

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, body := range files {
		if err := afero.WriteFile(fsys, name, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return fsys
}

func TestResolveOrder(t *testing.T) {
	fsys := newFs(t, map[string]string{
		"shared.md":              "cwd",
		"content/docs/shared.md": "page",
		"content/only-root.md":   "root",
		"content/docs/local.md":  "local",
	})
	renderer := &stubRenderer{partials: map[string]string{"shared.md": "partial"}}
	r := NewResolver(fsys, renderer, Config{ContentRoot: "content"})

	cases := []struct {
		target string
		want   string
	}{
		{target: "shared.md", want: "partial"},
		{target: "local.md", want: "local"},
		{target: "only-root.md", want: "root"},
	}
	for _, tc := range cases {
		got, found, err := r.Resolve(tc.target, "content/docs/index.md")
		if err != nil || !found {
			t.Fatalf("Resolve(%q): found=%v err=%v", tc.target, found, err)
		}
		if got != tc.want {
			t.Fatalf("Resolve(%q): got %q, want %q", tc.target, got, tc.want)
		}
	}

	delete(renderer.partials, "shared.md")
	got, _, _ := r.Resolve("shared.md", "content/docs/index.md")
	if got != "cwd" {
		t.Fatalf("expected the literal path to win over the page directory, got %q", got)
	}
}

func TestResolveSkipsDirectories(t *testing.T) {
	fsys := newFs(t, map[string]string{"content/docs/a.md": "a"})
	r := NewResolver(fsys, &stubRenderer{}, Config{ContentRoot: "content/"})
	if _, found, err := r.Resolve("docs", ""); found || err != nil {
		t.Fatalf("expected directory to be skipped, found=%v err=%v", found, err)
	}
}

func TestIncludeMissReturnsEmpty(t *testing.T) {
	r := NewResolver(afero.NewMemMapFs(), &stubRenderer{}, Config{})
	got, err := r.Include(Request{Target: "nope.md", Options: DefaultOptions()})
	if err != nil {
		t.Fatalf("Include: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestIncludeRendersWithMergedContext(t *testing.T) {
	fsys := newFs(t, map[string]string{"content/card.md": "---\ntitle: x\n---\n<b>{{name}}</b> {{kind}}\n"})
	renderer := &stubRenderer{}
	r := NewResolver(fsys, renderer, Config{ContentRoot: "content"})

	depth := 0
	opts := DefaultOptions()
	opts.SidebarCurrentDepth = &depth
	opts.Vars = map[string]any{"name": "override"}

	got, err := r.Include(Request{
		Target:  "card.md",
		Context: map[string]any{"name": "ctx", "kind": "card"},
		Options: opts,
	})
	if err != nil {
		t.Fatalf("Include: %v", err)
	}
	if got != "<b>override</b> card" {
		t.Fatalf("got %q", got)
	}

	data := renderer.seen[0].(map[string]any)
	if data["sidebarCurrentDepth"] != 1 {
		t.Fatalf("expected incremented depth, got %v", data["sidebarCurrentDepth"])
	}
}

func TestIncludeRawSkipsRendering(t *testing.T) {
	fsys := newFs(t, map[string]string{"snippet.js": "<script>{{x}}</script>\n"})
	renderer := &stubRenderer{}
	r := NewResolver(fsys, renderer, Config{})

	opts := DefaultOptions()
	opts.Render = false
	opts.Escape = true
	got, err := r.Include(Request{Target: "snippet.js", Options: opts})
	if err != nil {
		t.Fatalf("Include: %v", err)
	}
	if got != "&lt;script&gt;{{x}}&lt;/script&gt;" {
		t.Fatalf("got %q", got)
	}
	if len(renderer.seen) != 0 {
		t.Fatalf("renderer should not run")
	}
}

func TestIncludePropagatesRenderErrors(t *testing.T) {
	fsys := newFs(t, map[string]string{"bad.md": "{{"})
	boom := errors.New("parse error")
	r := NewResolver(fsys, &stubRenderer{err: boom}, Config{})
	if _, err := r.Include(Request{Target: "bad.md", Options: DefaultOptions()}); !errors.Is(err, boom) {
		t.Fatalf("expected renderer error, got %v", err)
	}
}

func TestIncludeDepthGuard(t *testing.T) {
	fsys := newFs(t, map[string]string{"a.md": "a"})
	guard := &stubGuard{limit: 1}
	r := NewResolver(fsys, &stubRenderer{}, Config{}, WithDepthGuard(guard))

	if _, err := r.Include(Request{Target: "a.md", Options: DefaultOptions()}); err != nil {
		t.Fatalf("Include: %v", err)
	}
	if guard.depth != 0 {
		t.Fatalf("expected guard to be released, depth=%d", guard.depth)
	}

	guard.depth = 1
	if _, err := r.Include(Request{Target: "a.md", Options: DefaultOptions()}); err == nil {
		t.Fatal("expected depth error")
	}
}

func TestPageSource(t *testing.T) {
	type page struct{ Src string }
	type ctx struct{ Page page }

	if got := PageSource(nil, map[string]any{"page": map[string]any{"src": "content/a.md"}}); got != "content/a.md" {
		t.Fatalf("map context: got %q", got)
	}
	if got := PageSource(ctx{Page: page{Src: "content/b.md"}}); got != "content/b.md" {
		t.Fatalf("struct context: got %q", got)
	}
	if got := PageSource("scalar", nil); got != "" {
		t.Fatalf("expected empty source, got %q", got)
	}
}

func TestContextMap(t *testing.T) {
	type page struct {
		Title string
		Src   string
	}
	ptr := &page{Title: "Ptr", Src: "content/p.md"}

	cases := []struct {
		name string
		ctx  any
		want map[string]any
	}{
		{name: "nil", ctx: nil, want: map[string]any{}},
		{name: "scalar", ctx: 3, want: map[string]any{}},
		{name: "map", ctx: map[string]any{"title": "Map"}, want: map[string]any{"title": "Map"}},
		{name: "struct", ctx: page{Title: "Value"}, want: map[string]any{"title": "Value", "src": ""}},
		{name: "pointer", ctx: ptr, want: map[string]any{"title": "Ptr", "src": "content/p.md"}},
		{name: "pointer to pointer", ctx: &ptr, want: map[string]any{"title": "Ptr", "src": "content/p.md"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ContextMap(tc.ctx)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for key, want := range tc.want {
				if got[key] != want {
					t.Fatalf("%s: got %v, want %v", key, got[key], want)
				}
			}
		})
	}
}

func TestContextMapDoesNotAliasInput(t *testing.T) {
	in := map[string]any{"title": "a"}
	out := ContextMap(in)
	out["title"] = "b"
	if in["title"] != "a" {
		t.Fatalf("expected input untouched, got %v", in)
	}
}
