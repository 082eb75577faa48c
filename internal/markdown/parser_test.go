package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-stache/pkg/interfaces"
)

func TestGoldmarkParser_Parse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, `<h1 id="heading">Heading</h1>`) {
		t.Fatalf("expected rendered HTML to include the heading with id, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected rendered HTML to include <strong>, got %q", got)
	}
}

func TestIndentedTextIsNotCode(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "single indented line",
			src:  "    indented text",
			want: []string{"<p>indented text</p>"},
		},
		{
			name: "content after indented paragraph",
			src:  "Intro\n\n    indented text\n\nafter",
			want: []string{"<p>Intro</p>", "<p>indented text</p>", "<p>after</p>"},
		},
		{
			name: "multi line indented paragraph",
			src:  "    one\n    two",
			want: []string{"<p>one\ntwo</p>"},
		},
		{
			name: "indented html then image",
			src:  "# T\n\n    <b>nested</b>\n\n![logo](/static/logo.png)",
			want: []string{`<h1 id="t">T</h1>`, "<p><b>nested</b></p>", `<img src="/logo.png" alt="logo">`},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			html, err := NewGoldmarkParser(interfaces.ParseOptions{}).Parse([]byte(tc.src))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got := string(html)
			if strings.Contains(got, "<pre>") || strings.Contains(got, "<code>") {
				t.Fatalf("expected no code block, got %q", got)
			}
			for _, want := range tc.want {
				if !strings.Contains(got, want) {
					t.Fatalf("expected %q in %q", want, got)
				}
			}
		})
	}
}

func TestNestedHTMLSurvivesIndentation(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	src := "<div>\n\n    <span>inner</span>\n\n</div>"
	html, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := string(html)
	if strings.Contains(got, "&lt;span&gt;") {
		t.Fatalf("expected raw HTML to pass through, got %q", got)
	}
	for _, want := range []string{"<div>", "<span>inner</span>", "</div>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

func TestFencedCodeStillRenders(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("```\nx\n```"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(html), "<pre><code>x\n</code></pre>") {
		t.Fatalf("expected fenced code block, got %q", html)
	}
}

func TestImageRewrite(t *testing.T) {
	cases := []struct {
		name string
		opts interfaces.ParseOptions
		src  string
		want string
	}{
		{
			name: "static segment stripped",
			src:  "![a](/static/img.png)",
			want: `<img src="/img.png" alt="a">`,
		},
		{
			name: "title kept",
			src:  `![a](x.png "T")`,
			want: `<img src="x.png" alt="a" title="T">`,
		},
		{
			name: "xhtml self closing",
			opts: interfaces.ParseOptions{XHTML: true},
			src:  "![logo](assets/static/logo.svg)",
			want: `<img src="assets/logo.svg" alt="logo"/>`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			html, err := NewGoldmarkParser(tc.opts).Parse([]byte(tc.src))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !strings.Contains(string(html), tc.want) {
				t.Fatalf("got %q, want it to contain %q", html, tc.want)
			}
		})
	}
}

func TestGoldmarkParser_ParseWithOptions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}

	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", string(html))
	}
}

func TestSafeModeEscapesRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{SafeMode: true})

	html, err := parser.Parse([]byte("<script>alert(1)</script>"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("expected raw HTML to be omitted, got %q", html)
	}
}

func TestCollectExtensionsSkipsUnknown(t *testing.T) {
	if got := collectExtensions([]string{"tables", "Tables", "nope", ""}); len(got) != 1 {
		t.Fatalf("expected one extension, got %d", len(got))
	}
	if got := collectExtensions(nil); len(got) != 1 {
		t.Fatalf("expected GFM default, got %d", len(got))
	}
}
