package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/goliatone/go-stache/pkg/interfaces"
)

// DefaultPatterns are the page source globs matched against base names.
var DefaultPatterns = []string{"*.md", "*.hbs", "*.html"}

// LoaderConfig configures page discovery.
type LoaderConfig struct {
	// ContentRoot is the directory walked for page sources.
	ContentRoot string
	// OutputPrefix is prepended to every destination, e.g. "build/".
	OutputPrefix string
	// Patterns limit discovered files; DefaultPatterns when empty.
	Patterns []string
}

// Loader turns page sources on an afero filesystem into interfaces.Page.
type Loader struct {
	fs       afero.Fs
	root     string
	prefix   string
	patterns []string
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(fsys afero.Fs, cfg LoaderConfig) *Loader {
	patterns := make([]string, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	root := strings.TrimSuffix(filepath.ToSlash(cfg.ContentRoot), "/")
	if root == "" {
		root = "."
	}
	return &Loader{
		fs:       fsys,
		root:     root,
		prefix:   cfg.OutputPrefix,
		patterns: patterns,
	}
}

// LoadFile reads and splits a single page source. src is slash separated and
// must live under the content root.
func (l *Loader) LoadFile(ctx context.Context, src string) (*interfaces.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(l.fs, src)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", src, err)
	}
	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", src, err)
	}
	sum := sha256.Sum256(data)

	return &interfaces.Page{
		Src:         src,
		Dest:        l.Dest(src),
		FrontMatter: fm,
		Body:        body,
		Checksum:    sum[:],
	}, nil
}

// LoadAll walks the content root and loads every matching source, sorted by
// source path.
func (l *Loader) LoadAll(ctx context.Context) ([]*interfaces.Page, error) {
	var pages []*interfaces.Page

	walkErr := afero.Walk(l.fs, l.root, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		src := filepath.ToSlash(p)
		if !l.matches(src) {
			return nil
		}
		page, err := l.LoadFile(ctx, src)
		if err != nil {
			return err
		}
		pages = append(pages, page)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(pages, func(i, j int) bool {
		return pages[i].Src < pages[j].Src
	})
	return pages, nil
}

// Dest maps a source path to its output path: the content root is replaced
// by the output prefix and the extension becomes ".html".
func (l *Loader) Dest(src string) string {
	rel := src
	if l.root != "." {
		rel = strings.TrimPrefix(src, l.root+"/")
	}
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	return l.prefix + rel + ".html"
}

func (l *Loader) matches(src string) bool {
	base := path.Base(src)
	for _, pattern := range l.patterns {
		if ok, err := path.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
