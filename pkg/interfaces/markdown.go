package interfaces

// MarkdownParser converts Markdown into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering. Field names stay readable for
// configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
	// XHTML switches void elements such as <img> to the self-closing form.
	XHTML bool
	// StaticPath is the build-time asset segment stripped from image sources,
	// e.g. "/static/".
	StaticPath string
}

// FrontMatter is the metadata block of a page source. Title and Template are
// lifted out for convenience; Raw keeps every key for template contexts.
type FrontMatter struct {
	Title    string         `yaml:"title" json:"title"`
	Template string         `yaml:"template" json:"template"`
	Draft    bool           `yaml:"draft" json:"draft"`
	Raw      map[string]any `yaml:"-" json:"raw"`
}

// Page is a source document discovered under the content root.
type Page struct {
	// Src is the source path relative to the filesystem root, slash separated.
	Src string
	// Dest is the output path including the build prefix, e.g.
	// "build/docs/widgets/index.html".
	Dest        string
	FrontMatter FrontMatter
	Body        []byte
	Checksum    []byte
}
