package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// imageRenderer replaces goldmark's image output. It shares html.Config so
// the XHTML and unsafe switches of the main renderer apply here too.
type imageRenderer struct {
	html.Config
	staticPath []byte
}

func newImageRenderer(staticPath string) *imageRenderer {
	return &imageRenderer{
		Config:     html.NewConfig(),
		staticPath: []byte(staticPath),
	}
}

func (r *imageRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, r.renderImage)
}

func (r *imageRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)

	dest := RewriteStaticPath(n.Destination, r.staticPath)
	_, _ = w.WriteString(`<img src="`)
	if r.Unsafe || !html.IsDangerousURL(dest) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(dest, true)))
	}
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML(n.Text(source)))
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		r.Writer.Write(w, n.Title)
		_ = w.WriteByte('"')
	}
	if r.XHTML {
		_, _ = w.WriteString("/>")
	} else {
		_ = w.WriteByte('>')
	}
	return ast.WalkSkipChildren, nil
}

// RewriteStaticPath replaces the first occurrence of staticPath in dest with
// "/". An empty staticPath leaves dest untouched.
func RewriteStaticPath(dest, staticPath []byte) []byte {
	if len(staticPath) == 0 || !bytes.Contains(dest, staticPath) {
		return dest
	}
	return bytes.Replace(dest, staticPath, []byte("/"), 1)
}
