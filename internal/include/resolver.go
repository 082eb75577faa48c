// Package include resolves include targets to text and renders them through
// the host template engine.
package include

import (
	"fmt"
	"maps"
	"reflect"
	"strings"

	"dario.cat/mergo"
	"github.com/spf13/afero"

	"github.com/goliatone/go-stache/internal/logging"
	"github.com/goliatone/go-stache/internal/paths"
	"github.com/goliatone/go-stache/pkg/interfaces"
)

const sidebarDepthKey = "sidebarCurrentDepth"

// DepthGuard bounds nested includes. Enter returns the func that pops the
// target once rendering completes.
type DepthGuard interface {
	Enter(target string) (func(), error)
}

// Config holds the lookup settings of the resolver.
type Config struct {
	// ContentRoot is prepended to the target for the last lookup attempt.
	ContentRoot string
}

// Resolver looks include targets up in order: registered partial, the path
// itself, next to the rendering page, under the content root.
type Resolver struct {
	fs          afero.Fs
	renderer    interfaces.TemplateRenderer
	contentRoot string
	guard       DepthGuard
	logger      interfaces.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for lookup misses.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDepthGuard bounds include recursion.
func WithDepthGuard(guard DepthGuard) Option {
	return func(r *Resolver) {
		r.guard = guard
	}
}

// NewResolver builds a resolver reading files from fsys.
func NewResolver(fsys afero.Fs, renderer interfaces.TemplateRenderer, cfg Config, opts ...Option) *Resolver {
	root := cfg.ContentRoot
	if root != "" && !strings.HasSuffix(root, "/") {
		root += "/"
	}
	r := &Resolver{
		fs:          fsys,
		renderer:    renderer,
		contentRoot: root,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the raw text for target. found is false when no lookup
// location matched; that is not an error.
func (r *Resolver) Resolve(target, pageSrc string) (string, bool, error) {
	if source, ok := r.renderer.Partial(target); ok {
		return source, true, nil
	}

	for _, candidate := range r.candidates(target, pageSrc) {
		if !r.isFile(candidate) {
			continue
		}
		data, err := afero.ReadFile(r.fs, candidate)
		if err != nil {
			return "", false, fmt.Errorf("include: read %s: %w", candidate, err)
		}
		return string(data), true, nil
	}
	return "", false, nil
}

// Include resolves, renders and post-processes a request. Template
// evaluation errors are returned as produced by the renderer.
func (r *Resolver) Include(req Request) (string, error) {
	if r.guard != nil {
		leave, err := r.guard.Enter(req.Target)
		if err != nil {
			return "", err
		}
		defer leave()
	}

	source, found, err := r.Resolve(req.Target, req.PageSrc)
	if err != nil {
		return "", err
	}
	if !found {
		r.logger.Debug("include target not found", "target", req.Target, "page_src", req.PageSrc)
		return "", nil
	}

	out := source
	if req.Options.Render {
		out, err = r.renderer.RenderString(source, renderContext(req))
		if err != nil {
			return "", err
		}
	}
	return PostProcess(out, req.Options), nil
}

func (r *Resolver) candidates(target, pageSrc string) []string {
	out := []string{target}
	if pageSrc != "" {
		out = append(out, paths.Dir(pageSrc)+"/"+target)
	}
	return append(out, r.contentRoot+target)
}

func (r *Resolver) isFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := r.fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func renderContext(req Request) map[string]any {
	data := ContextMap(req.Context)
	maps.Copy(data, req.Options.Vars)
	if depth := req.Options.SidebarCurrentDepth; depth != nil {
		data[sidebarDepthKey] = *depth + 1
	}
	return data
}

// ContextMap flattens a template context into a fresh map. Structs are
// converted field by field and exposed as "context" when that fails; other
// values yield an empty map.
func ContextMap(ctx any) map[string]any {
	out := map[string]any{}
	switch v := ctx.(type) {
	case nil:
	case map[string]any:
		maps.Copy(out, v)
	default:
		rv := reflect.ValueOf(ctx)
		for rv.Kind() == reflect.Pointer && !rv.IsNil() {
			rv = rv.Elem()
		}
		if rv.Kind() == reflect.Struct {
			if err := mergo.Map(&out, rv.Interface()); err != nil {
				clear(out)
				out["context"] = ctx
			}
		}
	}
	return out
}

// PageSource finds page.src in the first context that carries one.
func PageSource(contexts ...any) string {
	for _, ctx := range contexts {
		page, ok := ContextMap(ctx)["page"]
		if !ok {
			continue
		}
		if src, ok := ContextMap(page)["src"].(string); ok && src != "" {
			return src
		}
	}
	return ""
}
