package interfaces

import "io"

// TemplateRenderer is the host template engine as seen by the content
// resolver: named partial lookup plus compile-and-evaluate of raw source.
type TemplateRenderer interface {
	// Partial returns the source registered under name.
	Partial(name string) (string, bool)
	// RenderString compiles source and evaluates it against data. When out is
	// supplied the result is also written there.
	RenderString(source string, data any, out ...io.Writer) (string, error)
}
