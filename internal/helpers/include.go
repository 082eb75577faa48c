package helpers

import (
	"github.com/aymerick/raymond"

	"github.com/goliatone/go-stache/internal/include"
)

// include renders target against the current context.
//
//	{{include "sidebar.md" indent=2 title="Docs"}}
func (s *Set) include(target string, options *raymond.Options) raymond.SafeString {
	ctx := options.Ctx()
	return s.runInclude(target, ctx, include.PageSource(ctx), options)
}

// includeWith renders target against an explicit context.
//
//	{{includeWith "card.hbs" item escape=true}}
func (s *Set) includeWith(target string, context any, options *raymond.Options) raymond.SafeString {
	return s.runInclude(target, context, include.PageSource(options.Ctx(), context), options)
}

func (s *Set) runInclude(target string, context any, pageSrc string, options *raymond.Options) raymond.SafeString {
	out, err := s.resolver.Include(include.Request{
		Target:  target,
		Context: context,
		PageSrc: pageSrc,
		Options: includeOptions(options),
	})
	if err != nil {
		fail(err)
	}
	return raymond.SafeString(out)
}

// includeOptions reads the recognized hash keys over the defaults. The whole
// hash is also passed to the inner template as variables.
func includeOptions(options *raymond.Options) include.Options {
	opts := include.DefaultOptions()
	opts.HideYFM = hashBool(options, "hideYFM", opts.HideYFM)
	opts.Render = hashBool(options, "render", opts.Render)
	opts.FixNewline = hashBool(options, "fixNewline", opts.FixNewline)
	opts.Escape = hashBool(options, "escape", opts.Escape)
	opts.Indent = hashInt(options, "indent")

	if v, ok := hashValue(options, "sidebarCurrentDepth"); ok {
		if depth, ok := toInt(v); ok {
			opts.SidebarCurrentDepth = &depth
		}
	}
	opts.Vars = cloneHash(options)
	return opts
}
