package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-stache/pkg/interfaces"
)

// DefaultStaticPath is the asset segment stripped from image sources.
const DefaultStaticPath = "/static/"

const imageRendererPriority = 100

// GoldmarkParser implements interfaces.MarkdownParser using the goldmark engine.
// The default engine is built once; ParseWithOptions builds one per call.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
	engine         goldmark.Markdown
}

// NewGoldmarkParser constructs a parser with the given defaults. An empty
// StaticPath falls back to DefaultStaticPath.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	if defaults.StaticPath == "" {
		defaults.StaticPath = DefaultStaticPath
	}
	return &GoldmarkParser{
		defaultOptions: defaults,
		engine:         newGoldmarkEngine(defaults),
	}
}

// Parse renders Markdown into HTML using the parser's default configuration.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return convert(p.engine, markdown)
}

// ParseWithOptions renders Markdown into HTML using the provided options.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	return convert(newGoldmarkEngine(opts), markdown)
}

// Options returns the defaults the parser was built with.
func (p *GoldmarkParser) Options() interfaces.ParseOptions {
	return p.defaultOptions
}

func convert(engine goldmark.Markdown, markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}

// htmlOption is satisfied by the html.With* constructors.
type htmlOption interface {
	renderer.Option
	html.Option
}

func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	htmlOptions := []htmlOption{}
	if opts.HardWraps {
		htmlOptions = append(htmlOptions, html.WithHardWraps())
	}
	if opts.XHTML {
		htmlOptions = append(htmlOptions, html.WithXHTML())
	}
	if !opts.SafeMode {
		htmlOptions = append(htmlOptions, html.WithUnsafe())
	}

	images := newImageRenderer(opts.StaticPath)
	rendererOptions := []renderer.Option{
		renderer.WithNodeRenderers(util.Prioritized(images, imageRendererPriority)),
	}
	for _, opt := range htmlOptions {
		opt.SetHTMLOption(&images.Config)
		rendererOptions = append(rendererOptions, opt)
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParser(newParser()),
		goldmark.WithRendererOptions(rendererOptions...),
	}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

// newParser mirrors parser.DefaultParser with the indented code block parser
// replaced by indentedParagraphParser. Fenced code blocks are unaffected.
func newParser() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(blockParsers()...),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
		parser.WithAutoHeadingID(),
	)
}

func blockParsers() []util.PrioritizedValue {
	return []util.PrioritizedValue{
		util.Prioritized(parser.NewSetextHeadingParser(), 100),
		util.Prioritized(parser.NewThematicBreakParser(), 200),
		util.Prioritized(parser.NewListParser(), 300),
		util.Prioritized(parser.NewListItemParser(), 400),
		util.Prioritized(newIndentedParagraphParser(), 500),
		util.Prioritized(parser.NewATXHeadingParser(), 600),
		util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
		util.Prioritized(parser.NewBlockquoteParser(), 800),
		util.Prioritized(parser.NewHTMLBlockParser(), 900),
		util.Prioritized(parser.NewParagraphParser(), 1000),
	}
}

// indentedParagraphParser opens a paragraph for lines indented four or more
// columns. goldmark only offers such lines to parsers that accept indented
// lines, so without it they are dropped along with the rest of the document.
type indentedParagraphParser struct {
	parser.BlockParser
}

func newIndentedParagraphParser() parser.BlockParser {
	return &indentedParagraphParser{BlockParser: parser.NewParagraphParser()}
}

func (p *indentedParagraphParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	if pc.BlockIndent() < 4 {
		return nil, parser.NoChildren
	}
	return p.BlockParser.Open(parent, reader, pc)
}

func (p *indentedParagraphParser) CanAcceptIndentedLine() bool {
	return true
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}
