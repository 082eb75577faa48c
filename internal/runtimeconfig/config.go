package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const configInvalidCode = "CONFIG_INVALID"

var ErrLoggingProviderUnknown = errors.New("stache config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("stache config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("stache config: logging format is invalid")
var ErrPartialsDirOutsideRoot = errors.New("stache config: partials directory must not contain '..'")

// Config aggregates the read-only settings consumed by the helpers and the
// page builder. Values are loaded once per build and never mutated by helpers.
type Config struct {
	Build    BuildConfig    `yaml:"build"`
	Include  IncludeConfig  `yaml:"include"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Links    LinksConfig    `yaml:"links"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// BuildConfig carries the path conventions shared by the normalizer and the
// content resolver.
type BuildConfig struct {
	// OutputPrefix is stripped from destinations before nav comparison.
	OutputPrefix string `yaml:"output_prefix"`
	// ContentRoot is the last-resort lookup location for include targets.
	ContentRoot string `yaml:"content_root"`
	// StaticPath is removed from image sources by the markdown adapter.
	StaticPath  string `yaml:"static_path"`
	Draft       bool   `yaml:"draft"`
	OutputDir   string `yaml:"output_dir"`
	PartialsDir string `yaml:"partials_dir"`
	DataFile    string `yaml:"data_file"`
	Pattern     string `yaml:"pattern"`
}

// IncludeConfig bounds include recursion. MaxDepth of zero disables the guard.
type IncludeConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
	XHTML      bool     `yaml:"xhtml"`
}

// LinksConfig feeds the edit/rebuild link helpers.
type LinksConfig struct {
	GitHubProtocol string `yaml:"github_protocol"`
	GitHubBase     string `yaml:"github_base"`
	GitHubOrg      string `yaml:"github_org"`
	GitHubRepo     string `yaml:"github_repo"`
	GitHubBranch   string `yaml:"github_branch"`
	GitHubToken    string `yaml:"github_token"`
	ProseBase      string `yaml:"prose_base"`
	KuduProtocol   string `yaml:"kudu_protocol"`
	KuduRepo       string `yaml:"kudu_repo"`
	KuduSuffix     string `yaml:"kudu_suffix"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the conventional stache layout: sources under
// content/, output under build/, assets under /static/.
func DefaultConfig() Config {
	return Config{
		Build: BuildConfig{
			OutputPrefix: "build/",
			ContentRoot:  "content/",
			StaticPath:   "/static/",
			OutputDir:    ".",
			PartialsDir:  "partials",
			Pattern:      "*.md",
		},
		Include: IncludeConfig{
			MaxDepth: 64,
		},
		Markdown: MarkdownConfig{},
		Links: LinksConfig{
			GitHubProtocol: "https://",
			GitHubBase:     "github.com",
			GitHubBranch:   "master",
			ProseBase:      "http://prose.io",
			KuduProtocol:   "https://",
			KuduSuffix:     ".scm.azurewebsites.net/deploy",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
		},
	}
}

// Load reads a YAML file on top of DefaultConfig and validates the result.
func Load(fsys afero.Fs, path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("stache config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("stache config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate performs field-level and cross-field consistency checks.
func (cfg Config) Validate() error {
	build := cfg.Build
	include := cfg.Include
	err := validation.Errors{
		"build": validation.ValidateStruct(&build,
			validation.Field(&build.ContentRoot, validation.Required),
			validation.Field(&build.OutputDir, validation.Required),
			validation.Field(&build.Pattern, validation.Required),
		),
		"include": validation.ValidateStruct(&include,
			validation.Field(&include.MaxDepth, validation.Min(0)),
		),
	}.Filter()
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "stache config invalid").
			WithTextCode(configInvalidCode)
	}

	if strings.Contains(build.PartialsDir, "..") {
		return ErrPartialsDirOutsideRoot
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
