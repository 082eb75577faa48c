// Package stache provides Handlebars helpers for static documentation sites:
// content inclusion, navigation matching, grid layout and Markdown rendering,
// plus a page builder that applies them to a content tree.
package stache

import (
	"context"

	"github.com/goliatone/go-stache/internal/di"
	"github.com/goliatone/go-stache/internal/generator"
	"github.com/goliatone/go-stache/internal/helpers"
)

// Option customises the module wiring.
type Option = di.Option

// GeneratorService exports the page builder contract.
type GeneratorService = generator.Service

type (
	BuildOptions     = generator.BuildOptions
	BuildResult      = generator.BuildResult
	RenderedPage     = generator.RenderedPage
	ArtifactWriter   = generator.ArtifactWriter
	WriteFileRequest = generator.WriteFileRequest
	PostHook         = helpers.PostHook
)

var (
	WithFilesystem     = di.WithFilesystem
	WithWriter         = di.WithWriter
	WithLoggerProvider = di.WithLoggerProvider
	WithMarkdownParser = di.WithMarkdownParser
	WithPostHooks      = di.WithPostHooks
)

// Module is the top level stache runtime.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Generator returns the page builder.
func (m *Module) Generator() GeneratorService {
	return m.container.Generator()
}

// Build renders every page under the content root.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return m.container.Generator().Build(ctx, opts)
}

// RenderString evaluates source with every stache helper available.
func (m *Module) RenderString(source string, data any) (string, error) {
	return m.container.Engine().RenderString(source, data)
}

// RegisterHelper adds a host helper next to the stache helpers.
func (m *Module) RegisterHelper(name string, helper any) {
	m.container.Engine().RegisterHelper(name, helper)
}

// RegisterPartial adds a named partial, also visible to include.
func (m *Module) RegisterPartial(name, source string) {
	m.container.Engine().RegisterPartial(name, source)
}

// SetSiteData replaces the site data consulted by helpers outside a build.
func (m *Module) SetSiteData(data map[string]any) {
	m.container.Site().Data = data
}
