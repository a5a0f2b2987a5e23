package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	schemastore "github.com/goliatone/go-schema-store"
	"github.com/goliatone/go-schema-store/internal/commands"
	"github.com/goliatone/go-schema-store/internal/commands/schemacmd"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	sub := os.Args[1]
	switch sub {
	case "validate":
		os.Exit(validateCmd(os.Args[2:]))
	case "ensure":
		os.Exit(ensureCmd(os.Args[2:]))
	case "download":
		os.Exit(downloadCmd(os.Args[2:]))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `schemastore CLI

Usage:
  schemastore validate [flags] file [file...]
  schemastore ensure   [flags]
  schemastore download [flags]

Flags:
  -schema-url URL   canonical schema endpoint (required)
  -cache-dir DIR    cache root (default: user cache dir)
  -cache-key NAME   logical cache key (default: schema.json)
  -format FMT       document format: json, yaml, frontmatter (default: by extension)
  -log-level LVL    trace|debug|info|warn|error|fatal (default: info)
  -log-format FMT   json|console|pretty (default: console)

Exit codes: 0 valid, 1 document rejected, 2 schema unavailable or bad usage.`)
}

type cliFlags struct {
	schemaURL string
	cacheDir  string
	cacheKey  string
	format    string
	logLevel  string
	logFormat string
}

func bindFlags(fs *flag.FlagSet) *cliFlags {
	f := &cliFlags{}
	fs.StringVar(&f.schemaURL, "schema-url", "", "canonical schema endpoint")
	fs.StringVar(&f.cacheDir, "cache-dir", "", "cache root directory")
	fs.StringVar(&f.cacheKey, "cache-key", "", "logical cache key")
	fs.StringVar(&f.format, "format", "", "document format override")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level")
	fs.StringVar(&f.logFormat, "log-format", "console", "log format")
	return f
}

func buildModule(f *cliFlags) (*schemastore.Module, error) {
	cfg := schemastore.DefaultConfig()
	cfg.RemoteURL = f.schemaURL
	cfg.CacheDir = f.cacheDir
	if f.cacheKey != "" {
		cfg.CacheKey = f.cacheKey
	}
	cfg.Logging.Enabled = true
	cfg.Logging.Level = f.logLevel
	cfg.Logging.Format = f.logFormat
	return schemastore.New(cfg)
}

func validateCmd(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	f := bindFlags(fs)
	_ = fs.Parse(args)

	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "validate: at least one document file is required")
		return 2
	}

	module, err := buildModule(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validate: %v\n", err)
		return 2
	}

	logger := commands.CommandLogger(module.LoggerProvider(), "document")
	handler := schemacmd.NewValidateDocumentHandler(module.Store(), logger,
		schemacmd.ValidateDocumentWithResultSink(printResult))

	exit := 0
	for _, file := range files {
		msg := schemacmd.ValidateDocumentCommand{Path: file, Format: f.format}
		if err := handler.Execute(context.Background(), msg); err != nil {
			if errors.Is(err, schemacmd.ErrDocumentNotConformant) {
				if exit == 0 {
					exit = 1
				}
				continue
			}
			fmt.Fprintf(os.Stderr, "validate %s: %v\n", file, err)
			return 2
		}
	}
	return exit
}

func printResult(msg schemacmd.ValidateDocumentCommand, result *schemastore.ValidationResult) {
	if result.Valid() {
		fmt.Printf("%s: valid\n", msg.Path)
		return
	}
	fmt.Printf("%s: %d issue(s)\n", msg.Path, len(result.Issues))
	for _, issue := range result.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		fmt.Printf("  %s: %s\n", location, issue.Message)
	}
}

func ensureCmd(args []string) int {
	fs := flag.NewFlagSet("ensure", flag.ExitOnError)
	f := bindFlags(fs)
	_ = fs.Parse(args)

	module, err := buildModule(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ensure: %v\n", err)
		return 2
	}

	logger := commands.CommandLogger(module.LoggerProvider(), "store")
	handler := schemacmd.NewEnsureSchemaHandler(module.Store(), logger)
	if err := handler.Execute(context.Background(), schemacmd.EnsureSchemaCommand{}); err != nil {
		fmt.Fprintf(os.Stderr, "ensure: %v\n", err)
		return 2
	}
	fmt.Println("schema available")
	return 0
}

func downloadCmd(args []string) int {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	f := bindFlags(fs)
	_ = fs.Parse(args)

	module, err := buildModule(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "download: %v\n", err)
		return 2
	}

	logger := commands.CommandLogger(module.LoggerProvider(), "store")
	handler := schemacmd.NewDownloadSchemaHandler(module.Store(), logger)
	if err := handler.Execute(context.Background(), schemacmd.DownloadSchemaCommand{}); err != nil {
		fmt.Fprintf(os.Stderr, "download: %v\n", err)
		return 2
	}
	fmt.Println("schema downloaded")
	return 0
}
