// Package engine hosts the Handlebars-compatible template engine the helpers
// are registered on. Parsed templates are cached by source and rebuilt when
// a helper or partial is registered.
package engine

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aymerick/raymond"
	"github.com/spf13/afero"

	"github.com/goliatone/go-stache/internal/logging"
	"github.com/goliatone/go-stache/pkg/interfaces"
)

// Engine implements interfaces.TemplateRenderer on top of raymond.
type Engine struct {
	mu       sync.RWMutex
	helpers  map[string]any
	partials map[string]string
	cache    map[string]*raymond.Template
	logger   interfaces.Logger
}

var _ interfaces.TemplateRenderer = (*Engine)(nil)

// New returns an empty engine.
func New(logger interfaces.Logger) *Engine {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Engine{
		helpers:  map[string]any{},
		partials: map[string]string{},
		cache:    map[string]*raymond.Template{},
		logger:   logger,
	}
}

// RegisterHelper adds or replaces a helper. helper must be a function
// returning exactly one value; an optional trailing *raymond.Options receives
// the hash and block callbacks.
func (e *Engine) RegisterHelper(name string, helper any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.helpers[name] = helper
	clear(e.cache)
}

// RegisterHelpers adds every helper of the map.
func (e *Engine) RegisterHelpers(helpers map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	maps.Copy(e.helpers, helpers)
	clear(e.cache)
}

// RegisterPartial adds or replaces a partial.
func (e *Engine) RegisterPartial(name, source string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.partials[name] = source
	clear(e.cache)
}

// Partial returns the raw source of a registered partial.
func (e *Engine) Partial(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	source, ok := e.partials[name]
	return source, ok
}

// RenderString evaluates source against data. Nil data renders against an
// empty context. The result is also written to every supplied writer.
func (e *Engine) RenderString(source string, data any, out ...io.Writer) (string, error) {
	tpl, err := e.template(source)
	if err != nil {
		return "", err
	}
	if data == nil {
		data = map[string]any{}
	}
	result, err := tpl.Exec(data)
	if err != nil {
		return "", err
	}
	for _, w := range out {
		if _, err := io.WriteString(w, result); err != nil {
			return "", fmt.Errorf("engine: write output: %w", err)
		}
	}
	return result, nil
}

// template returns the cached parse of source. The lock is released before
// execution so helpers may render nested templates.
func (e *Engine) template(source string) (*raymond.Template, error) {
	e.mu.RLock()
	tpl, ok := e.cache[source]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if cached, ok := e.cache[source]; ok {
		return cached, nil
	}
	tpl.RegisterHelpers(e.helpers)
	tpl.RegisterPartials(e.partials)
	e.cache[source] = tpl
	return tpl, nil
}

// LoadPartials registers every file below dir as a partial named by its
// slash separated path relative to dir, without extension. A missing
// directory registers nothing.
func (e *Engine) LoadPartials(fsys afero.Fs, dir string) (int, error) {
	exists, err := afero.DirExists(fsys, dir)
	if err != nil {
		return 0, fmt.Errorf("engine: stat partials %s: %w", dir, err)
	}
	if !exists {
		e.logger.Debug("partials directory missing", "dir", dir)
		return 0, nil
	}

	loaded := map[string]string{}
	walkErr := afero.Walk(fsys, dir, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		data, err := afero.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("engine: read partial %s: %w", p, err)
		}
		loaded[strings.TrimSuffix(rel, path.Ext(rel))] = string(data)
		return nil
	})
	if walkErr != nil {
		return 0, walkErr
	}

	for name, source := range loaded {
		e.RegisterPartial(name, source)
	}
	e.logger.Debug("partials loaded", "dir", dir, "count", len(loaded))
	return len(loaded), nil
}
