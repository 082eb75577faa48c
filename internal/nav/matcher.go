package nav

import (
	"strings"

	"github.com/goliatone/go-stache/internal/paths"
)

// Matcher decides which navigation entry corresponds to a destination.
type Matcher struct {
	names paths.Normalizer
}

// NewMatcher builds a matcher on top of the shared path normalizer.
func NewMatcher(names paths.Normalizer) Matcher {
	return Matcher{names: names}
}

// IsActive compares dest and uri after normalization. Both sides are wrapped
// in "/" so "docs" never matches "docs2". With parentCanBeActive a non-empty
// uri matches any destination below it.
func (m Matcher) IsActive(dest, uri string, parentCanBeActive bool) bool {
	normalizedURI := m.names.Basename(uri)
	wrappedDest := "/" + m.names.Basename(dest) + "/"
	wrappedURI := "/" + normalizedURI + "/"

	if parentCanBeActive && normalizedURI != "" {
		return strings.Contains(wrappedDest, wrappedURI)
	}
	return wrappedDest == wrappedURI
}

// Find walks links depth-first in pre-order and returns the first active
// entry. Links without a uri are never matched but their children are
// searched.
func (m Matcher) Find(dest string, links []Link, parentCanBeActive bool) (Link, bool) {
	for _, link := range links {
		if link.HasURI && m.IsActive(dest, link.URI, parentCanBeActive) {
			return link, true
		}
		if len(link.Children) == 0 {
			continue
		}
		if found, ok := m.Find(dest, link.Children, parentCanBeActive); ok {
			return found, true
		}
	}
	return Link{}, false
}

// ActiveChildren returns the children of the entry exactly matching dest.
// The second result is false when nothing matched or the match is a leaf.
func (m Matcher) ActiveChildren(dest string, links []Link) ([]Link, bool) {
	active, ok := m.Find(dest, links, false)
	if !ok || len(active.Children) == 0 {
		return nil, false
	}
	return active.Children, true
}
