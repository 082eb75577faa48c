// Package helpers installs the stache template helpers on the engine. Every
// helper reads its arguments from the positional parameters and the hash of
// the call; block helpers render their body through the raymond options.
package helpers

import (
	"maps"
	"reflect"
	"strconv"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"

	"github.com/goliatone/go-stache/internal/grid"
	"github.com/goliatone/go-stache/internal/include"
	"github.com/goliatone/go-stache/internal/logging"
	"github.com/goliatone/go-stache/internal/markdown"
	"github.com/goliatone/go-stache/internal/nav"
	"github.com/goliatone/go-stache/internal/paths"
	"github.com/goliatone/go-stache/internal/runtimeconfig"
	"github.com/goliatone/go-stache/internal/session"
	"github.com/goliatone/go-stache/pkg/interfaces"
)

const javascriptMIME = "application/javascript"

// Registrar is the engine surface the helpers are installed on.
type Registrar interface {
	interfaces.TemplateRenderer
	RegisterHelpers(helpers map[string]any)
}

// PostHook rewrites the HTML of a stachePostProcess block.
type PostHook func(html string) string

// Site is the build-wide data helpers consult when a value is not passed in
// explicitly, such as nav_links and operations.
type Site struct {
	Data map[string]any
}

// Value returns the top level site data entry for key.
func (s *Site) Value(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	v, ok := s.Data[key]
	return v, ok
}

// Deps are the collaborators shared by the helpers.
type Deps struct {
	Renderer  Registrar
	Resolver  *include.Resolver
	Session   *session.Session
	Markdown  *markdown.Service
	Site      *Site
	Config    runtimeconfig.Config
	PostHooks []PostHook
	Logger    interfaces.Logger
}

// Set is the helper collection bound to one engine.
type Set struct {
	renderer Registrar
	resolver *include.Resolver
	session  *session.Session
	markdown *markdown.Service
	site     *Site
	config   runtimeconfig.Config
	hooks    []PostHook
	names    paths.Normalizer
	matcher  nav.Matcher
	minifier *minify.M
	logger   interfaces.Logger
}

// New binds the helpers to deps without registering them.
func New(deps Deps) *Set {
	names := paths.NewNormalizer(deps.Config.Build.OutputPrefix)
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	site := deps.Site
	if site == nil {
		site = &Site{}
	}
	m := minify.New()
	m.AddFunc(javascriptMIME, js.Minify)

	return &Set{
		renderer: deps.Renderer,
		resolver: deps.Resolver,
		session:  deps.Session,
		markdown: deps.Markdown,
		site:     site,
		config:   deps.Config,
		hooks:    append([]PostHook(nil), deps.PostHooks...),
		names:    names,
		matcher:  nav.NewMatcher(names),
		minifier: m,
		logger:   logger,
	}
}

// Register binds the helpers to deps and installs them on deps.Renderer.
func Register(deps Deps) *Set {
	s := New(deps)
	deps.Renderer.RegisterHelpers(s.Helpers())
	return s
}

// Helpers returns every helper keyed by its template name.
func (s *Set) Helpers() map[string]any {
	return map[string]any{
		"include":     s.include,
		"includeWith": s.includeWith,

		"isActiveNav":   s.isActiveNav,
		"isHome":        s.isHome,
		"eachChildLink": s.eachChildLink,
		"withNavLinks":  s.withNavLinks,
		"eachWithMod":   s.eachWithMod,
		"loop":          s.loop,

		"markdown":          s.markdownBlock,
		"draft":             s.draft,
		"hasHeadings":       s.hasHeadings,
		"eachHeading":       s.eachHeading,
		"stachePostProcess": s.stachePostProcess,
		"uglify":            s.uglify,

		"count":     s.count,
		"increment": s.increment,

		"json":              jsonHelper,
		"length":            length,
		"withCoverageTotal": withCoverageTotal,
		"withFirstProperty": withFirstProperty,
		"withItem":          withItem,
		"isArray":           isArray,
		"inherit":           inherit,
		"withinParentDepth": withinParentDepth,

		"raw":                    raw,
		"percent":                percent,
		"newline":                include.Newline,
		"withNewline":            withNewline,
		"removeExt":              paths.RemoveExt,
		"getPrismType":           getPrismType,
		"normalizeSandcastleUrl": normalizeSandcastleURL,
		"slugify":                slugify,

		"editInGitHubLink":       s.editInGitHubLink,
		"editInProseLink":        s.editInProseLink,
		"triggerSiteRebuildLink": s.triggerSiteRebuildLink,
		"gitSourceLink":          s.gitSourceLink,

		"getOperation":    s.getOperation,
		"getOperationUri": s.getOperationURI,
		"withOperation":   s.withOperation,
	}
}

func (s *Set) count(key string) int {
	return s.session.Count(key)
}

func (s *Set) increment(key string) string {
	s.session.Increment(key)
	return ""
}

// fail aborts template evaluation; raymond returns the error from Exec.
func fail(err error) {
	panic(err)
}

// hashValue reports a hash entry, distinguishing absent from falsy.
func hashValue(options *raymond.Options, key string) (any, bool) {
	v, ok := options.Hash()[key]
	return v, ok
}

// hashBool returns the truthiness of a hash entry, or def when absent.
func hashBool(options *raymond.Options, key string, def bool) bool {
	if v, ok := hashValue(options, key); ok {
		return raymond.IsTrue(v)
	}
	return def
}

func hashInt(options *raymond.Options, key string) int {
	v, _ := hashValue(options, key)
	n, _ := toInt(v)
	return n
}

func cloneHash(options *raymond.Options) map[string]any {
	return maps.Clone(options.Hash())
}

// fieldString reads key from a map or struct context as a string.
func fieldString(ctx any, key string) string {
	v, ok := grid.FieldOf(ctx, key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return raymond.Str(v)
}

// pageField reads page.<key> from a template context.
func pageField(ctx any, key string) string {
	page, ok := grid.FieldOf(ctx, "page")
	if !ok {
		return ""
	}
	return fieldString(page, key)
}

// firstString returns the first non-empty hash entry or context field named key.
func firstString(options *raymond.Options, key string) string {
	if v := options.HashStr(key); v != "" {
		return v
	}
	return fieldString(options.Ctx(), key)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// toSlice returns the elements of a slice or array collection. Anything else
// yields nil.
func toSlice(collection any) []any {
	switch v := collection.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []nav.Link:
		out := make([]any, len(v))
		for i, link := range v {
			out[i] = link.Fields
		}
		return out
	}
	rv := reflect.ValueOf(collection)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
