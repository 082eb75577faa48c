package helpers

import (
	"fmt"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/goliatone/go-stache/internal/markdown"
)

// markdownBlock converts its block from Markdown. Line endings are fixed
// unless newline=false.
func (s *Set) markdownBlock(options *raymond.Options) string {
	out, err := s.markdown.Render(options.Fn(), hashBool(options, "newline", true))
	if err != nil {
		fail(err)
	}
	return out
}

// draft renders its block as Markdown inside a draft container when drafts
// are enabled for the build, and nothing otherwise.
func (s *Set) draft(options *raymond.Options) string {
	if !s.config.Build.Draft {
		return ""
	}
	out, err := s.markdown.RenderDraft(options.Fn(), true)
	if err != nil {
		fail(err)
	}
	return out
}

// hasHeadings renders its block when eachHeading would yield anything.
func (s *Set) hasHeadings(options *raymond.Options) string {
	if len(s.headings(options)) > 0 {
		return options.Fn()
	}
	return options.Inverse()
}

// eachHeading renders the page source passed as page=, converts it and
// iterates the headings matching selector= (h2 by default).
func (s *Set) eachHeading(options *raymond.Options) string {
	var b strings.Builder
	for _, heading := range s.headings(options) {
		b.WriteString(options.FnWith(heading.Map()))
	}
	return b.String()
}

func (s *Set) headings(options *raymond.Options) []markdown.Heading {
	source := options.HashStr("page")
	if source == "" {
		return nil
	}
	rendered, err := s.renderer.RenderString(source, s.site.Data)
	if err != nil {
		fail(err)
	}
	headings, err := s.markdown.Headings(rendered, options.HashStr("selector"))
	if err != nil {
		fail(err)
	}
	return headings
}

// stachePostProcess passes its rendered block through the registered hooks.
func (s *Set) stachePostProcess(options *raymond.Options) string {
	html := options.Fn()
	for _, hook := range s.hooks {
		html = hook(html)
	}
	return html
}

// uglify minifies its block as JavaScript.
func (s *Set) uglify(options *raymond.Options) string {
	out, err := s.minifier.String(javascriptMIME, options.Fn())
	if err != nil {
		fail(fmt.Errorf("uglify: %w", err))
	}
	return out
}
