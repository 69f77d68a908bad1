// Package main provides the rdfparse binary: it parses N-Triples, N-Quads,
// Turtle and JSON-LD files and can load them into a Badger quad store.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aleksaelezovic/rdfparse/internal/encoding"
	"github.com/aleksaelezovic/rdfparse/internal/storage"
	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
	"github.com/aleksaelezovic/rdfparse/pkg/rdfio"
	"github.com/aleksaelezovic/rdfparse/pkg/store"
)

const (
	Version = "0.1.0"
	appName = "rdfparse"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	logLevel    string
	contentType string
	base        string
	maxDepth    int
	maxLine     int
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Parse RDF documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVarP(&flags.contentType, "format", "f", "", "Content type; guessed from the file extension when empty")
	pf.StringVar(&flags.base, "base", "", "Base IRI; defaults to the file's IRI")
	pf.IntVar(&flags.maxDepth, "max-depth", 0, "Maximum Turtle nesting depth")
	pf.IntVar(&flags.maxLine, "max-line-bytes", 0, "Maximum N-Triples/N-Quads line length")

	cmd.AddCommand(parseCmd(flags), loadCmd(flags), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})
	return cmd
}

func parseCmd(flags *globalFlags) *cobra.Command {
	var printQuads bool

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse files and report their statement counts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(flags.logLevel)
			out := cmd.OutOrStdout()
			for _, path := range args {
				ds, err := parseFile(path, flags, logger)
				if err != nil {
					return err
				}
				if printQuads {
					if err := rdf.WriteQuadsCanonical(out, ds.Quads()); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintf(out, "%s: %d statements in %d named graphs\n", path, ds.Len(), len(ds.GraphNames()))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&printQuads, "print", "p", false, "Print the statements as canonical N-Quads")
	return cmd
}

func loadCmd(flags *globalFlags) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "load FILE...",
		Short: "Parse files into a Badger quad store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(flags.logLevel)
			db, err := storage.Open(storage.Config{Path: dbPath, Logger: logger})
			if err != nil {
				return err
			}
			qs := store.NewQuadStore(db, encoding.NewTermEncoder(), encoding.NewTermDecoder())
			defer qs.Close()

			for _, path := range args {
				if err := loadFile(qs, path, flags, logger); err != nil {
					return err
				}
			}
			if err := qs.Sync(); err != nil {
				return err
			}
			count, err := qs.Count()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d quads\n", dbPath, count)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "./rdfparse_data", "Database directory")
	return cmd
}

func loadFile(qs *store.QuadStore, path string, flags *globalFlags, logger *slog.Logger) error {
	p, r, err := openParser(path, flags, logger)
	if err != nil {
		return err
	}
	defer r.Close()

	batch := qs.NewBatch()
	if err := p.ReadQuads(r, batch); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := batch.Flush(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("loaded file", "path", path, "quads", batch.Written())
	return nil
}

func parseFile(path string, flags *globalFlags, logger *slog.Logger) (*rdf.Dataset, error) {
	p, r, err := openParser(path, flags, logger)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	ds := rdf.NewDataset()
	if err := p.ReadQuads(r, ds); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// openParser opens path ("-" is stdin) and picks its parser.
func openParser(path string, flags *globalFlags, logger *slog.Logger) (rdfio.RDFParser, io.ReadCloser, error) {
	contentType := flags.contentType
	if contentType == "" {
		ct, ok := rdfio.ContentTypeForExtension(filepath.Ext(path))
		if !ok {
			return nil, nil, fmt.Errorf("%s: cannot guess format, use --format", path)
		}
		contentType = ct
	}

	base := flags.base
	var r io.ReadCloser = os.Stdin
	if path != "-" {
		f, err := os.Open(path) // #nosec G304 - reading user-supplied input is the point
		if err != nil {
			return nil, nil, err
		}
		r = f
		if base == "" {
			base = fileIRI(path)
		}
	}

	p, err := rdfio.NewParser(contentType,
		rdfio.WithBase(base),
		rdfio.WithLogger(logger),
		rdfio.WithMaxDepth(flags.maxDepth),
		rdfio.WithMaxLineBytes(flags.maxLine))
	if err != nil {
		r.Close()
		return nil, nil, err
	}
	return p, r, nil
}

func fileIRI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}
	return "file://" + abs
}

func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
