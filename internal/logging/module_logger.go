package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-stache/pkg/interfaces"
)

const (
	rootModule     = "stache"
	includeModule  = "stache.include"
	navModule      = "stache.nav"
	markdownModule = "stache.markdown"
	buildModule    = "stache.build"
)

const (
	fieldPagePath = "page_src"
	fieldSession  = "session_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// IncludeLogger returns the logger namespace reserved for content inclusion.
func IncludeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, includeModule)
}

// NavLogger returns the logger namespace reserved for navigation helpers.
func NavLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, navModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown rendering.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// BuildLogger returns the logger namespace reserved for site builds.
func BuildLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, buildModule)
}

// WithPageContext enriches logger with the page source path and build session
// id. Empty values are ignored.
func WithPageContext(logger interfaces.Logger, src, sessionID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(src); trimmed != "" {
		fields[fieldPagePath] = trimmed
	}
	if trimmed := strings.TrimSpace(sessionID); trimmed != "" {
		fields[fieldSession] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
