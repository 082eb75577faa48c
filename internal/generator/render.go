package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-stache/pkg/interfaces"
)

// renderPage evaluates the page body as a template, then converts Markdown
// sources to HTML.
func (s *service) renderPage(page *interfaces.Page) (string, error) {
	html, err := s.deps.Renderer.RenderString(string(page.Body), pageContext(page, s.deps.Site.Data))
	if err != nil {
		return "", err
	}
	if !isMarkdown(page.Src) {
		return html, nil
	}
	return s.deps.Markdown.Render(html, true)
}

// pageContext layers the page front matter over the site data. The page
// entry carries src, dest and every front matter key.
func pageContext(page *interfaces.Page, data map[string]any) map[string]any {
	ctx := make(map[string]any, len(data)+len(page.FrontMatter.Raw)+1)
	maps.Copy(ctx, data)
	maps.Copy(ctx, page.FrontMatter.Raw)

	meta := make(map[string]any, len(page.FrontMatter.Raw)+2)
	maps.Copy(meta, page.FrontMatter.Raw)
	meta["src"] = page.Src
	meta["dest"] = page.Dest
	if page.FrontMatter.Title != "" {
		meta["title"] = page.FrontMatter.Title
	}
	ctx["page"] = meta
	return ctx
}

func isMarkdown(src string) bool {
	return strings.EqualFold(path.Ext(src), ".md")
}

func outputPath(outputDir, dest string) string {
	dir := strings.TrimSpace(outputDir)
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, filepath.FromSlash(dest))
}

func checksum(html string) string {
	sum := sha256.Sum256([]byte(html))
	return hex.EncodeToString(sum[:])
}
