package markdown

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// DefaultHeadingSelector is used when no selector is supplied.
const DefaultHeadingSelector = "h2"

const draftClass = "draft"

// Heading is one element matched in rendered HTML.
type Heading struct {
	Name  string
	ID    string
	Draft bool
}

// Map exposes the heading to templates.
func (h Heading) Map() map[string]any {
	return map[string]any{
		"name":  h.Name,
		"id":    h.ID,
		"draft": h.Draft,
	}
}

// Headings returns the elements of document matching selector in document
// order. A heading is a draft when its parent carries the "draft" class.
func Headings(document []byte, selector string) ([]Heading, error) {
	if strings.TrimSpace(selector) == "" {
		selector = DefaultHeadingSelector
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("heading selector %q: %w", selector, err)
	}
	root, err := html.Parse(bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	nodes := sel.MatchAll(root)
	out := make([]Heading, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, Heading{
			Name:  textContent(node),
			ID:    attr(node, "id"),
			Draft: node.Parent != nil && hasClass(node.Parent, draftClass),
		})
	}
	return out, nil
}

func textContent(node *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return b.String()
}

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(node *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(node, "class")), class)
}
