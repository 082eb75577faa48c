package include

// Options are the recognized include settings. Use DefaultOptions as the
// starting point; the zero value disables rendering and every cleanup step.
type Options struct {
	// HideYFM strips a leading front matter block.
	HideYFM bool
	// Render evaluates the resolved text as a template. When false the raw
	// text is returned, which suits code listings.
	Render bool
	// FixNewline converts CRLF to LF.
	FixNewline bool
	// Escape HTML-escapes the final text.
	Escape bool
	// Indent prefixes every line with that many spaces.
	Indent int
	// SidebarCurrentDepth, when set, is passed to the inner template
	// incremented by one.
	SidebarCurrentDepth *int
	// Vars are extra template variables. They win over the calling context.
	Vars map[string]any
}

// DefaultOptions renders, fixes newlines and hides front matter.
func DefaultOptions() Options {
	return Options{
		HideYFM:    true,
		Render:     true,
		FixNewline: true,
	}
}

// Request is one include call.
type Request struct {
	Target string
	// Context is the calling template context.
	Context any
	// PageSrc is the source path of the page being rendered, used for
	// page-relative lookups. May be empty.
	PageSrc string
	Options Options
}
