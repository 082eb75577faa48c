package helpers

import (
	"github.com/aymerick/raymond"

	"github.com/goliatone/go-stache/internal/nav"
)

const (
	navLinksKey = "nav_links"
	notHome     = "NOT_HOME"
)

// isActiveNav renders its block when the link uri matches the destination.
// dest and uri come from the hash or the current context; parents match by
// default.
func (s *Set) isActiveNav(options *raymond.Options) string {
	dest := firstString(options, "dest")
	uri := firstString(options, "uri")
	parent := hashBool(options, "parentCanBeActive", true)

	if s.matcher.IsActive(dest, uri, parent) {
		return options.Fn()
	}
	return options.Inverse()
}

// isHome renders its block on the site root page.
func (s *Set) isHome(options *raymond.Options) string {
	dest := options.HashStr("dest")
	if dest == "" {
		dest = pageField(options.Ctx(), "dest")
	}
	if dest == "" {
		dest = notHome
	}
	if s.names.Basename(dest) == "" {
		return options.Fn()
	}
	return options.Inverse()
}

// eachChildLink iterates the children of the nav entry matching the current
// page, with the grid options of eachWithMod.
func (s *Set) eachChildLink(options *raymond.Options) string {
	dest := pageField(options.Ctx(), "dest")
	if v, ok := hashValue(options, "dest"); ok {
		dest = raymond.Str(v)
	}

	raw, ok := hashValue(options, navLinksKey)
	if !ok {
		raw, _ = s.site.Value(navLinksKey)
	}

	children, ok := s.matcher.ActiveChildren(dest, nav.FromData(raw))
	if !ok {
		s.logger.Debug("no active nav children", "dest", dest)
		return ""
	}
	return s.arrange(toSlice(children), options)
}

// withNavLinks iterates nav_links from the hash or the site data.
func (s *Set) withNavLinks(options *raymond.Options) string {
	raw, _ := hashValue(options, navLinksKey)
	if !raymond.IsTrue(raw) {
		raw, _ = s.site.Value(navLinksKey)
	}
	return s.arrange(toSlice(raw), options)
}
