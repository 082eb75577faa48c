package stache

import (
	"github.com/spf13/afero"

	"github.com/goliatone/go-stache/internal/runtimeconfig"
)

var (
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
	ErrPartialsDirOutsideRoot = runtimeconfig.ErrPartialsDirOutsideRoot
)

type (
	Config         = runtimeconfig.Config
	BuildConfig    = runtimeconfig.BuildConfig
	IncludeConfig  = runtimeconfig.IncludeConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LinksConfig    = runtimeconfig.LinksConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the conventional content/ to build/ layout.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file over DefaultConfig.
func LoadConfig(fsys afero.Fs, path string) (Config, error) {
	return runtimeconfig.Load(fsys, path)
}
