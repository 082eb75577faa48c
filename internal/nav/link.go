// Package nav resolves the active entry of a nested navigation tree.
package nav

import "maps"

const (
	fieldURI       = "uri"
	fieldNavLinks  = "nav_links"
	fieldShowInNav = "showInNav"
)

// Link is one node of the navigation tree. Fields keeps every key of the
// source entry (uri and nav_links included) so templates see the data they
// declared.
type Link struct {
	URI       string
	HasURI    bool
	ShowInNav *bool
	Children  []Link
	Fields    map[string]any
}

// Hidden reports whether the link opted out of navigation listings.
func (l Link) Hidden() bool {
	return l.ShowInNav != nil && !*l.ShowInNav
}

// ChildFields returns the raw data of each child, in order.
func (l Link) ChildFields() []any {
	out := make([]any, 0, len(l.Children))
	for _, child := range l.Children {
		out = append(out, child.Fields)
	}
	return out
}

// FromData converts decoded site data (YAML or JSON) into links. Entries that
// are not objects are skipped.
func FromData(raw any) []Link {
	var entries []any
	switch v := raw.(type) {
	case []Link:
		return v
	case []any:
		entries = v
	case []map[string]any:
		entries = make([]any, 0, len(v))
		for _, entry := range v {
			entries = append(entries, entry)
		}
	default:
		return nil
	}

	links := make([]Link, 0, len(entries))
	for _, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		links = append(links, linkFromFields(fields))
	}
	return links
}

func linkFromFields(fields map[string]any) Link {
	link := Link{Fields: maps.Clone(fields)}
	if uri, ok := fields[fieldURI].(string); ok {
		link.URI = uri
		link.HasURI = true
	}
	if show, ok := fields[fieldShowInNav].(bool); ok {
		link.ShowInNav = &show
	}
	if children, ok := fields[fieldNavLinks]; ok {
		link.Children = FromData(children)
	}
	return link
}
