package markdown

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/goliatone/go-stache/internal/include"
	"github.com/goliatone/go-stache/internal/logging"
	"github.com/goliatone/go-stache/pkg/interfaces"
)

const (
	draftOpen  = "<div class=\"draft\">\r\n\r\n"
	draftClose = "\r\n\r\n</div>"
)

// Config controls page discovery and Markdown conversion.
type Config struct {
	Loader LoaderConfig
	Parser interfaces.ParseOptions
}

// Service pairs the page loader with the Markdown parser used by helpers and
// the site builder.
type Service struct {
	parser interfaces.MarkdownParser
	loader *Loader
	logger interfaces.Logger
}

// NewService constructs a Markdown service. When parser is nil a Goldmark
// parser with cfg.Parser defaults is created.
func NewService(fsys afero.Fs, cfg Config, parser interfaces.MarkdownParser, logger interfaces.Logger) *Service {
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		parser: parser,
		loader: NewLoader(fsys, cfg.Loader),
		logger: logger,
	}
}

// Loader exposes the page loader.
func (s *Service) Loader() *Loader {
	return s.loader
}

// LoadPages discovers every page source under the content root.
func (s *Service) LoadPages(ctx context.Context) ([]*interfaces.Page, error) {
	pages, err := s.loader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("markdown pages discovered", "count", len(pages))
	return pages, nil
}

// Render converts Markdown to HTML. When fixNewline is set CRLF line endings
// in the result are converted to LF.
func (s *Service) Render(markdown string, fixNewline bool) (string, error) {
	out, err := s.parser.Parse([]byte(markdown))
	if err != nil {
		return "", err
	}
	if fixNewline {
		return include.Newline(string(out)), nil
	}
	return string(out), nil
}

// RenderDraft wraps converted Markdown in a draft container when drafts are
// enabled and returns "" otherwise.
func (s *Service) RenderDraft(markdown string, enabled bool) (string, error) {
	if !enabled {
		return "", nil
	}
	out, err := s.Render(markdown, false)
	if err != nil {
		return "", err
	}
	return draftOpen + out + draftClose, nil
}

// RenderPage converts the page body to HTML.
func (s *Service) RenderPage(ctx context.Context, page *interfaces.Page) ([]byte, error) {
	if page == nil {
		return nil, errors.New("markdown service: page is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := s.parser.Parse(page.Body)
	if err != nil {
		return nil, fmt.Errorf("markdown render page %s: %w", page.Src, err)
	}
	return out, nil
}

// Headings renders markdown and returns the headings matching selector.
func (s *Service) Headings(markdown, selector string) ([]Heading, error) {
	out, err := s.Render(markdown, false)
	if err != nil {
		return nil, err
	}
	return Headings([]byte(out), selector)
}
