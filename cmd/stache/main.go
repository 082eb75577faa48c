package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/goliatone/go-stache"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("stache: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("stache", flag.ContinueOnError)
	var (
		configPath = flags.String("config", "", "Path to a YAML config file (defaults apply when empty)")
		logLevel   = flags.String("log-level", "", "Override the configured log level")
		dryRun     = flags.Bool("dry-run", false, "Render pages without writing output")
		draft      = flags.Bool("draft", false, "Build pages marked as draft")
		pages      = flags.String("pages", "", "Comma separated page sources to build (defaults to all)")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	fs := afero.NewOsFs()
	cfg := stache.DefaultConfig()
	if *configPath != "" {
		loaded, err := stache.LoadConfig(fs, *configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *draft {
		cfg.Build.Draft = true
	}

	module, err := stache.New(cfg, stache.WithFilesystem(fs))
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	result, err := module.Build(ctx, stache.BuildOptions{
		Pages:  splitList(*pages),
		DryRun: *dryRun,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "built %d pages (%d skipped) in %s\n", result.PagesBuilt, result.PagesSkipped, result.Duration)
	if result.DryRun {
		for _, page := range result.Rendered {
			fmt.Fprintf(stdout, "  %s -> %s\n", page.Src, page.Output)
		}
	}
	return nil
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
