// Package generator renders stache page sources into static HTML artifacts.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/goliatone/go-stache/internal/helpers"
	"github.com/goliatone/go-stache/internal/logging"
	"github.com/goliatone/go-stache/internal/markdown"
	"github.com/goliatone/go-stache/internal/session"
	"github.com/goliatone/go-stache/pkg/interfaces"
)

var (
	errRendererRequired = errors.New("generator: renderer is required")
	errMarkdownRequired = errors.New("generator: markdown service is required")
	errSessionRequired  = errors.New("generator: session is required")
)

// Service renders page sources into static HTML artifacts.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	BuildPage(ctx context.Context, src string) (*RenderedPage, error)
}

// Renderer is the template engine surface the builder needs.
type Renderer interface {
	interfaces.TemplateRenderer
	LoadPartials(fsys afero.Fs, dir string) (int, error)
}

// Config captures builder behaviour.
type Config struct {
	// OutputDir is joined with each page destination.
	OutputDir   string
	PartialsDir string
	// DataFile is the YAML document exposed to templates as site data.
	DataFile string
	// Draft keeps pages whose front matter sets draft: true.
	Draft bool
}

// Dependencies lists the collaborators required by the builder.
type Dependencies struct {
	Fs       afero.Fs
	Renderer Renderer
	Markdown *markdown.Service
	Session  *session.Session
	Site     *helpers.Site
	Writer   ArtifactWriter
	Logger   interfaces.Logger
}

// BuildOptions narrows a build.
type BuildOptions struct {
	// Pages limits the build to the listed source paths.
	Pages  []string
	DryRun bool
}

// BuildResult reports the outcome of a build.
type BuildResult struct {
	SessionID    string
	PagesBuilt   int
	PagesSkipped int
	Duration     time.Duration
	Rendered     []RenderedPage
	DryRun       bool
}

// RenderedPage is one written artifact.
type RenderedPage struct {
	Src      string
	Dest     string
	Output   string
	HTML     string
	Checksum string
	Duration time.Duration
}

// NewService wires the builder.
func NewService(cfg Config, deps Dependencies) Service {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Site == nil {
		deps.Site = &helpers.Site{}
	}
	if deps.Writer == nil {
		deps.Writer = noopWriter{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		now:    time.Now,
	}
}

type service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	now    func() time.Time
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	start := s.now()
	s.deps.Session.Reset()
	logger := logging.WithPageContext(s.logger, "", s.deps.Session.ID())

	if err := s.prepare(); err != nil {
		return nil, err
	}

	pages, err := s.deps.Markdown.LoadPages(ctx)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		SessionID: s.deps.Session.ID(),
		DryRun:    opts.DryRun,
		Rendered:  make([]RenderedPage, 0, len(pages)),
	}
	writer := s.writer(opts.DryRun)
	filter := pageFilter(opts.Pages)

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if filter != nil {
			if _, ok := filter[page.Src]; !ok {
				continue
			}
		}
		pageLogger := logging.WithPageContext(s.logger, page.Src, result.SessionID)
		if page.FrontMatter.Draft && !s.cfg.Draft {
			result.PagesSkipped++
			pageLogger.Debug("generator.page.draft_skipped")
			continue
		}

		rendered, err := s.renderAndWrite(ctx, writer, page)
		if err != nil {
			pageLogger.Error("generator.page.failed", "error", err)
			result.Duration = s.now().Sub(start)
			return result, err
		}
		result.PagesBuilt++
		result.Rendered = append(result.Rendered, rendered)
		pageLogger.Info("generator.page.built", "dest", rendered.Dest, "output", rendered.Output, "duration", rendered.Duration)
	}

	result.Duration = s.now().Sub(start)
	logger.Info("generator.build.completed",
		"pages_built", result.PagesBuilt,
		"pages_skipped", result.PagesSkipped,
		"dry_run", result.DryRun,
		"duration", result.Duration,
	)
	return result, nil
}

func (s *service) BuildPage(ctx context.Context, src string) (*RenderedPage, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	s.deps.Session.Reset()
	if err := s.prepare(); err != nil {
		return nil, err
	}
	page, err := s.deps.Markdown.Loader().LoadFile(ctx, src)
	if err != nil {
		return nil, err
	}
	rendered, err := s.renderAndWrite(ctx, s.writer(false), page)
	if err != nil {
		return nil, err
	}
	logging.WithPageContext(s.logger, page.Src, s.deps.Session.ID()).
		Info("generator.page.built", "dest", rendered.Dest, "output", rendered.Output)
	return &rendered, nil
}

func (s *service) validate() error {
	switch {
	case s.deps.Renderer == nil:
		return errRendererRequired
	case s.deps.Markdown == nil:
		return errMarkdownRequired
	case s.deps.Session == nil:
		return errSessionRequired
	}
	return nil
}

// prepare loads the site data and the partials shared by every page.
func (s *service) prepare() error {
	data, err := loadSiteData(s.deps.Fs, s.cfg.DataFile)
	if err != nil {
		return err
	}
	s.deps.Site.Data = data

	count, err := s.deps.Renderer.LoadPartials(s.deps.Fs, s.cfg.PartialsDir)
	if err != nil {
		return fmt.Errorf("generator: load partials: %w", err)
	}
	s.logger.Debug("generator.partials.loaded", "dir", s.cfg.PartialsDir, "count", count)
	return nil
}

func (s *service) renderAndWrite(ctx context.Context, writer ArtifactWriter, page *interfaces.Page) (RenderedPage, error) {
	started := s.now()
	html, err := s.renderPage(page)
	if err != nil {
		return RenderedPage{}, fmt.Errorf("build page %s: %w", page.Src, err)
	}

	rendered := RenderedPage{
		Src:      page.Src,
		Dest:     page.Dest,
		Output:   outputPath(s.cfg.OutputDir, page.Dest),
		HTML:     html,
		Checksum: checksum(html),
	}
	if err := writer.WriteFile(ctx, WriteFileRequest{
		Path:     rendered.Output,
		Content:  strings.NewReader(html),
		Size:     int64(len(html)),
		Checksum: rendered.Checksum,
	}); err != nil {
		return RenderedPage{}, fmt.Errorf("build page %s: %w", page.Src, err)
	}
	rendered.Duration = s.now().Sub(started)
	return rendered, nil
}

func (s *service) writer(dryRun bool) ArtifactWriter {
	if dryRun {
		return noopWriter{}
	}
	return s.deps.Writer
}

func pageFilter(pages []string) map[string]struct{} {
	if len(pages) == 0 {
		return nil
	}
	filter := make(map[string]struct{}, len(pages))
	for _, src := range pages {
		if src = strings.TrimSpace(src); src != "" {
			filter[src] = struct{}{}
		}
	}
	return filter
}
