// Package main provides the ontoload binary entry point.
// Ontoload resolves ontology documents with their import closure and
// reads, exports and stores the result.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/semontology/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "ontoload"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every sub-command.
type globalFlags struct {
	configPath     string
	logLevel       string
	natsURL        string
	metricsAddr    string
	missingImports string
	catalogPath    string
	alternateOnly  bool
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Ontology import resolver",
		Long: `Ontoload loads an ontology document together with everything it imports.

Documents are read as N-Triples, falling back to YAML axiom documents.
Imports are located through a catalog, from the local filesystem, over
HTTP or from a NATS JetStream key-value bucket (kv://bucket/key).`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.natsURL, "nats-url", "", "NATS server URL for kv:// documents")
	pf.StringVar(&flags.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	pf.StringVar(&flags.missingImports, "missing-imports", "", "Missing import policy (throw, warn)")
	pf.StringVar(&flags.catalogPath, "catalog", "", "Catalog file path")
	pf.BoolVar(&flags.alternateOnly, "axioms-only", false, "Read documents as YAML axiom documents only")

	cmd.AddCommand(
		loadCmd(flags),
		axiomsCmd(flags),
		exportCmd(flags),
		storeCmd(flags),
		vocabCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

func newLogger(level string) *slog.Logger {
	l := slog.LevelWarn
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "error":
		l = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// loadConfig applies the layered config files, then the command-line
// overrides.
func (f *globalFlags) loadConfig(logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.NewLoader(logger).Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.natsURL != "" {
		cfg.NATS.URL = f.natsURL
	}
	if f.metricsAddr != "" {
		cfg.Metrics.Addr = f.metricsAddr
	}
	if f.missingImports != "" {
		cfg.Loader.MissingImports = f.missingImports
	}
	if f.catalogPath != "" {
		cfg.Catalog.Path = f.catalogPath
	}
	if f.alternateOnly {
		on := true
		cfg.Loader.AlternateOnly = &on
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// startApp builds and starts an App. The caller must Shutdown it.
func (f *globalFlags) startApp(cmd *cobra.Command) (*App, error) {
	logger := newLogger(f.logLevel)
	slog.SetDefault(logger)

	cfg, err := f.loadConfig(logger)
	if err != nil {
		return nil, err
	}
	app, err := NewApp(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := app.Start(cmd.Context()); err != nil {
		app.Shutdown(5 * time.Second)
		return nil, err
	}
	return app, nil
}
