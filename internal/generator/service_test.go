package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/afero"

	"github.com/goliatone/go-stache/internal/engine"
	"github.com/goliatone/go-stache/internal/helpers"
	"github.com/goliatone/go-stache/internal/markdown"
	"github.com/goliatone/go-stache/internal/session"
)

type fixture struct {
	fs      afero.Fs
	site    *helpers.Site
	session *session.Session
	service Service
}

func newFixture(t *testing.T, cfg Config, files map[string]string) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, body := range files {
		if err := afero.WriteFile(fs, name, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	site := &helpers.Site{}
	sess := session.New(8)
	md := markdown.NewService(fs, markdown.Config{
		Loader: markdown.LoaderConfig{ContentRoot: "content/", OutputPrefix: "build/"},
	}, nil, nil)

	eng := engine.New(nil)
	eng.RegisterHelper("upper", func(s string) string { return strings.ToUpper(s) })

	svc := NewService(cfg, Dependencies{
		Fs:       fs,
		Renderer: eng,
		Markdown: md,
		Session:  sess,
		Site:     site,
		Writer:   NewFsWriter(fs),
	})
	return &fixture{fs: fs, site: site, session: sess, service: svc}
}

func (f *fixture) read(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func defaultConfig() Config {
	return Config{OutputDir: ".", PartialsDir: "partials"}
}

func dataConfig() Config {
	cfg := defaultConfig()
	cfg.DataFile = "data.yml"
	return cfg
}

func TestBuildRendersPagesWithSiteData(t *testing.T) {
	f := newFixture(t, dataConfig(), map[string]string{
		"data.yml":            "site_name: Docs\n",
		"partials/footer.hbs": "<footer>{{site_name}}</footer>",
		"content/index.md":    "---\ntitle: Home\n---\n# {{upper page.title}}\n\nSource {{page.src}} to {{page.dest}}.\n\n{{> footer}}\n",
		"content/raw.hbs":     "# {{title}}",
		"content/notes.txt":   "ignored",
	})

	result, err := f.service.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.PagesBuilt != 2 || result.PagesSkipped != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if result.SessionID == "" || result.SessionID != f.session.ID() {
		t.Fatalf("expected session id %q, got %q", f.session.ID(), result.SessionID)
	}
	if f.site.Data["site_name"] != "Docs" {
		t.Fatalf("expected site data to be published, got %v", f.site.Data)
	}

	index := f.read(t, "build/index.html")
	for _, want := range []string{
		`<h1 id="home">HOME</h1>`,
		"Source content/index.md to build/index.html.",
		"<footer>Docs</footer>",
	} {
		if !strings.Contains(index, want) {
			t.Fatalf("expected %q in output:\n%s", want, index)
		}
	}

	if raw := f.read(t, "build/raw.html"); raw != "# " {
		t.Fatalf("expected non-markdown source to skip conversion, got %q", raw)
	}
}

func TestBuildRecordsRenderedPages(t *testing.T) {
	f := newFixture(t, defaultConfig(), map[string]string{
		"content/b.md":   "b",
		"content/a/x.md": "x",
	})

	result, err := f.service.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(result.Rendered) != 2 {
		t.Fatalf("expected 2 rendered pages, got %d", len(result.Rendered))
	}
	first := result.Rendered[0]
	if first.Src != "content/a/x.md" || first.Dest != "build/a/x.html" {
		t.Fatalf("unexpected first page %+v", first)
	}
	if first.Output != filepath.Join("build", "a", "x.html") {
		t.Fatalf("unexpected output path %q", first.Output)
	}
	if first.Checksum == "" || first.Checksum != checksum(first.HTML) {
		t.Fatalf("expected checksum of rendered html, got %q", first.Checksum)
	}
}

func TestBuildSkipsDraftsUnlessEnabled(t *testing.T) {
	files := map[string]string{
		"content/live.md":  "live",
		"content/draft.md": "---\ndraft: true\n---\nwip",
	}

	f := newFixture(t, defaultConfig(), files)
	result, err := f.service.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.PagesBuilt != 1 || result.PagesSkipped != 1 {
		t.Fatalf("expected one built and one skipped, got %+v", result)
	}
	if ok, _ := afero.Exists(f.fs, "build/draft.html"); ok {
		t.Fatal("expected draft page to be skipped")
	}

	cfg := defaultConfig()
	cfg.Draft = true
	f = newFixture(t, cfg, files)
	result, err = f.service.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.PagesBuilt != 2 || result.PagesSkipped != 0 {
		t.Fatalf("expected drafts to build, got %+v", result)
	}
}

func TestBuildHonoursPageFilterAndDryRun(t *testing.T) {
	f := newFixture(t, defaultConfig(), map[string]string{
		"content/a.md": "a",
		"content/b.md": "b",
	})

	result, err := f.service.Build(context.Background(), BuildOptions{Pages: []string{" content/b.md "}, DryRun: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !result.DryRun || result.PagesBuilt != 1 || result.Rendered[0].Src != "content/b.md" {
		t.Fatalf("unexpected result %+v", result)
	}
	if ok, _ := afero.DirExists(f.fs, "build"); ok {
		t.Fatal("expected dry run to write nothing")
	}
}

func TestBuildPrefixesTemplateFailures(t *testing.T) {
	f := newFixture(t, defaultConfig(), map[string]string{
		"content/a.md":   "fine",
		"content/bad.md": "{{#if}}",
	})

	result, err := f.service.Build(context.Background(), BuildOptions{})
	if err == nil {
		t.Fatal("expected template failure")
	}
	if !strings.HasPrefix(err.Error(), "build page content/bad.md: ") {
		t.Fatalf("expected page prefix, got %v", err)
	}
	if result == nil || result.PagesBuilt != 1 {
		t.Fatalf("expected partial result with one page, got %+v", result)
	}
}

func TestBuildRejectsInvalidNavData(t *testing.T) {
	f := newFixture(t, dataConfig(), map[string]string{
		"data.yml":     "nav_links:\n  - uri: 3\n",
		"content/a.md": "a",
	})

	_, err := f.service.Build(context.Background(), BuildOptions{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBuildReportsMissingDataFile(t *testing.T) {
	f := newFixture(t, Config{OutputDir: ".", DataFile: "missing.yml"}, map[string]string{
		"content/a.md": "a",
	})

	_, err := f.service.Build(context.Background(), BuildOptions{})
	if err == nil || !strings.Contains(err.Error(), "missing.yml") {
		t.Fatalf("expected missing data file error, got %v", err)
	}
}

func TestBuildResetsSessionBetweenRuns(t *testing.T) {
	f := newFixture(t, defaultConfig(), map[string]string{"content/a.md": "a"})

	first, err := f.service.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	f.session.Increment("hits")
	f.session.Increment("hits")
	second, err := f.service.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if first.SessionID == second.SessionID {
		t.Fatal("expected a fresh session id per build")
	}
	if got := f.session.Count("hits"); got != 0 {
		t.Fatalf("expected counters to reset, got %d", got)
	}
}

func TestBuildStopsOnCancelledContext(t *testing.T) {
	f := newFixture(t, defaultConfig(), map[string]string{"content/a.md": "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.service.Build(ctx, BuildOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuildPageRendersSingleSource(t *testing.T) {
	f := newFixture(t, dataConfig(), map[string]string{
		"data.yml":     "site_name: Docs\n",
		"content/a.md": "{{site_name}}",
		"content/b.md": "b",
	})

	page, err := f.service.BuildPage(context.Background(), "content/a.md")
	if err != nil {
		t.Fatalf("BuildPage: %v", err)
	}
	if page.Dest != "build/a.html" {
		t.Fatalf("unexpected dest %q", page.Dest)
	}
	if got := f.read(t, "build/a.html"); got != "<p>Docs</p>\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if ok, _ := afero.Exists(f.fs, "build/b.html"); ok {
		t.Fatal("expected only the requested page")
	}
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	svc := NewService(Config{}, Dependencies{})
	if _, err := svc.Build(context.Background(), BuildOptions{}); !errors.Is(err, errRendererRequired) {
		t.Fatalf("expected errRendererRequired, got %v", err)
	}
}

func TestAtomicWriterCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "build", "docs", "index.html")

	err := NewAtomicWriter().WriteFile(context.Background(), WriteFileRequest{
		Path:    target,
		Content: strings.NewReader("<p>hi</p>"),
	})
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "<p>hi</p>" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestWritersValidateRequests(t *testing.T) {
	writers := map[string]ArtifactWriter{
		"atomic": NewAtomicWriter(),
		"fs":     NewFsWriter(afero.NewMemMapFs()),
	}
	for name, w := range writers {
		if err := w.WriteFile(context.Background(), WriteFileRequest{Path: "x"}); !errors.Is(err, errWriteContentRequired) {
			t.Fatalf("%s: expected content error, got %v", name, err)
		}
		if err := w.WriteFile(context.Background(), WriteFileRequest{Content: strings.NewReader("x")}); !errors.Is(err, errWritePathRequired) {
			t.Fatalf("%s: expected path error, got %v", name, err)
		}
	}
}

func TestPageContextLayersFrontMatter(t *testing.T) {
	f := newFixture(t, dataConfig(), map[string]string{
		"data.yml":     "title: Site\nowner: ops\n",
		"content/a.md": "---\ntitle: Page\n---\n{{title}}/{{owner}}/{{page.title}}",
	})

	if _, err := f.service.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := f.read(t, "build/a.html"); got != "<p>Page/ops/Page</p>\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
