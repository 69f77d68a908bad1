package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aleksaelezovic/rdfparse/internal/testsuite"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath  string
		concurrency int
		skip        []string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "test-runner [manifest-file-or-directory...]",
		Short: "Run W3C RDF conformance manifests",
		Example: `  test-runner testdata/rdf-tests/rdf/rdf11/rdf-turtle/manifest.ttl
  test-runner testdata/rdf-tests/rdf/rdf11/rdf-n-triples
  test-runner --config testsuite.yaml`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &testsuite.Config{}
			if configPath != "" {
				loaded, err := testsuite.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			for _, arg := range args {
				path, err := manifestPath(arg)
				if err != nil {
					return err
				}
				cfg.Manifests = append(cfg.Manifests, path)
			}
			if len(cfg.Manifests) == 0 {
				return fmt.Errorf("no manifests given")
			}
			if concurrency > 0 {
				cfg.Concurrency = concurrency
			}
			cfg.Skip = append(cfg.Skip, skip...)

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := testsuite.NewTestRunner(*cfg, logger, cmd.OutOrStdout())
			if err := runner.Run(ctx); err != nil {
				return err
			}
			if stats := runner.GetStats(); stats.Failed > 0 {
				return fmt.Errorf("%d of %d tests failed", stats.Failed, stats.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file listing manifests and skipped tests")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "Tests run in parallel (default GOMAXPROCS)")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "Test names or IRIs to skip")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every test result")
	return cmd
}

// manifestPath accepts a manifest file or a directory holding manifest.ttl.
func manifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}
	manifest := filepath.Join(path, "manifest.ttl")
	if _, err := os.Stat(manifest); err != nil {
		return "", fmt.Errorf("no manifest.ttl found in directory: %s", path)
	}
	return manifest, nil
}
