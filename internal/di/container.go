package di

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/goliatone/go-stache/internal/engine"
	"github.com/goliatone/go-stache/internal/generator"
	"github.com/goliatone/go-stache/internal/helpers"
	"github.com/goliatone/go-stache/internal/include"
	"github.com/goliatone/go-stache/internal/logging"
	"github.com/goliatone/go-stache/internal/logging/gologger"
	"github.com/goliatone/go-stache/internal/markdown"
	"github.com/goliatone/go-stache/internal/runtimeconfig"
	"github.com/goliatone/go-stache/internal/session"
	"github.com/goliatone/go-stache/pkg/interfaces"
)

// Container wires the helper runtime and the page builder from one Config.
type Container struct {
	Config runtimeconfig.Config

	fs             afero.Fs
	writer         generator.ArtifactWriter
	loggerProvider interfaces.LoggerProvider
	parser         interfaces.MarkdownParser
	postHooks      []helpers.PostHook

	session   *session.Session
	engine    *engine.Engine
	resolver  *include.Resolver
	markdown  *markdown.Service
	site      *helpers.Site
	helpers   *helpers.Set
	generator generator.Service
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithFilesystem sets the filesystem sources, partials and data are read from.
// Non-OS filesystems also receive the build output unless WithWriter is used.
func WithFilesystem(fsys afero.Fs) Option {
	return func(c *Container) {
		if fsys != nil {
			c.fs = fsys
		}
	}
}

// WithWriter overrides the artifact writer used by the builder.
func WithWriter(w generator.ArtifactWriter) Option {
	return func(c *Container) {
		if w != nil {
			c.writer = w
		}
	}
}

// WithLoggerProvider replaces the provider derived from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithMarkdownParser swaps the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithPostHooks appends stachePostProcess hooks.
func WithPostHooks(hooks ...helpers.PostHook) Option {
	return func(c *Container) {
		for _, hook := range hooks {
			if hook != nil {
				c.postHooks = append(c.postHooks, hook)
			}
		}
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.writer == nil {
		c.writer = defaultWriter(c.fs)
	}
	if c.loggerProvider == nil {
		provider, err := configureLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	c.build()
	return c, nil
}

func (c *Container) build() {
	cfg := c.Config

	c.session = session.New(cfg.Include.MaxDepth)
	c.engine = engine.New(logging.ModuleLogger(c.loggerProvider, "stache.engine"))
	c.site = &helpers.Site{Data: map[string]any{}}

	c.resolver = include.NewResolver(c.fs, c.engine,
		include.Config{ContentRoot: cfg.Build.ContentRoot},
		include.WithLogger(logging.IncludeLogger(c.loggerProvider)),
		include.WithDepthGuard(c.session),
	)

	c.markdown = markdown.NewService(c.fs, markdown.Config{
		Loader: markdown.LoaderConfig{
			ContentRoot:  cfg.Build.ContentRoot,
			OutputPrefix: cfg.Build.OutputPrefix,
			Patterns:     []string{cfg.Build.Pattern},
		},
		Parser: interfaces.ParseOptions{
			Extensions: cfg.Markdown.Extensions,
			HardWraps:  cfg.Markdown.HardWraps,
			SafeMode:   cfg.Markdown.SafeMode,
			XHTML:      cfg.Markdown.XHTML,
			StaticPath: cfg.Build.StaticPath,
		},
	}, c.parser, logging.MarkdownLogger(c.loggerProvider))

	c.helpers = helpers.Register(helpers.Deps{
		Renderer:  c.engine,
		Resolver:  c.resolver,
		Session:   c.session,
		Markdown:  c.markdown,
		Site:      c.site,
		Config:    cfg,
		PostHooks: c.postHooks,
		Logger:    logging.NavLogger(c.loggerProvider),
	})

	c.generator = generator.NewService(generator.Config{
		OutputDir:   cfg.Build.OutputDir,
		PartialsDir: cfg.Build.PartialsDir,
		DataFile:    cfg.Build.DataFile,
		Draft:       cfg.Build.Draft,
	}, generator.Dependencies{
		Fs:       c.fs,
		Renderer: c.engine,
		Markdown: c.markdown,
		Session:  c.session,
		Site:     c.site,
		Writer:   c.writer,
		Logger:   logging.BuildLogger(c.loggerProvider),
	})
}

func configureLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "noop":
		return nil, nil
	default:
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	}
}

func defaultWriter(fsys afero.Fs) generator.ArtifactWriter {
	if _, ok := fsys.(*afero.OsFs); ok {
		return generator.NewAtomicWriter()
	}
	return generator.NewFsWriter(fsys)
}

// Engine returns the template engine with every helper installed.
func (c *Container) Engine() *engine.Engine {
	return c.engine
}

// Session returns the build session shared by helpers and builder.
func (c *Container) Session() *session.Session {
	return c.session
}

// Resolver returns the include resolver.
func (c *Container) Resolver() *include.Resolver {
	return c.resolver
}

// Markdown returns the markdown service.
func (c *Container) Markdown() *markdown.Service {
	return c.markdown
}

// Site returns the site data visible to helpers.
func (c *Container) Site() *helpers.Site {
	return c.site
}

// Helpers returns the registered helper set.
func (c *Container) Helpers() *helpers.Set {
	return c.helpers
}

// Generator returns the page builder.
func (c *Container) Generator() generator.Service {
	return c.generator
}

// LoggerProvider returns the active provider, nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}
