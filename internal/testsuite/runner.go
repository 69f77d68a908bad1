package testsuite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
	"github.com/aleksaelezovic/rdfparse/pkg/rdfio"
)

// TestRunner runs W3C RDF syntax and evaluation tests
type TestRunner struct {
	cfg    Config
	logger *slog.Logger
	out    io.Writer
	stats  *TestStats
}

// TestStats tracks test execution statistics
type TestStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Errors  []TestError
}

// TestError represents a test failure
type TestError struct {
	TestName string
	Type     TestType
	Error    string
}

// TestResult represents the result of running a test
type TestResult int

const (
	TestResultPass TestResult = iota
	TestResultFail
	TestResultSkip
	TestResultError
)

type outcome struct {
	result TestResult
	err    string
}

// NewTestRunner creates a runner printing its report to out.
func NewTestRunner(cfg Config, logger *slog.Logger, out io.Writer) *TestRunner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TestRunner{cfg: cfg, logger: logger, out: out, stats: &TestStats{}}
}

// Run runs every manifest in the config.
func (r *TestRunner) Run(ctx context.Context) error {
	for _, path := range r.cfg.Manifests {
		if err := r.RunManifest(ctx, path); err != nil {
			return err
		}
	}
	r.printSummary()
	return nil
}

// RunManifest runs all tests in a manifest file
func (r *TestRunner) RunManifest(ctx context.Context, manifestPath string) error {
	manifest, err := ParseManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}

	fmt.Fprintf(r.out, "\n📋 Running manifest: %s\n", manifestPath)
	fmt.Fprintf(r.out, "   Found %d tests\n\n", len(manifest.Tests))

	outcomes := make([]outcome, len(manifest.Tests))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.concurrency())
	for i := range manifest.Tests {
		test := &manifest.Tests[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.runTest(test)
			r.logger.Debug("test finished", "name", test.Name, "type", test.Type, "result", outcomes[i].result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range manifest.Tests {
		r.record(&manifest.Tests[i], outcomes[i])
	}
	return nil
}

func (r *TestRunner) record(test *TestCase, o outcome) {
	r.stats.Total++
	switch o.result {
	case TestResultPass:
		r.stats.Passed++
		fmt.Fprintf(r.out, "  ✅ PASS: %s\n", test.Name)
	case TestResultFail:
		r.stats.Failed++
		fmt.Fprintf(r.out, "  ❌ FAIL: %s\n", test.Name)
	case TestResultSkip:
		r.stats.Skipped++
		fmt.Fprintf(r.out, "  ⏭️  SKIP: %s (type: %s)\n", test.Name, test.Type)
	case TestResultError:
		r.stats.Failed++
		fmt.Fprintf(r.out, "  💥 ERROR: %s\n", test.Name)
	}
	if o.err != "" {
		r.stats.Errors = append(r.stats.Errors, TestError{TestName: test.Name, Type: test.Type, Error: o.err})
	}
}

// runTest runs a single test case
func (r *TestRunner) runTest(test *TestCase) outcome {
	if r.cfg.skipped(test) {
		return outcome{result: TestResultSkip}
	}
	switch test.Type {
	case TestTypeTurtleEval:
		return r.runEvalTest(test, "text/turtle")
	case TestTypeTurtlePositiveSyntax:
		return r.runPositiveSyntaxTest(test, "text/turtle")
	case TestTypeTurtleNegativeSyntax, TestTypeTurtleNegativeEval:
		return r.runNegativeSyntaxTest(test, "text/turtle")
	case TestTypeNTriplesPositiveSyntax, TestTypeNTriplesPositiveC14N:
		return r.runPositiveSyntaxTest(test, "application/n-triples")
	case TestTypeNTriplesNegativeSyntax:
		return r.runNegativeSyntaxTest(test, "application/n-triples")
	case TestTypeNQuadsPositiveSyntax, TestTypeNQuadsPositiveC14N:
		return r.runPositiveSyntaxTest(test, "application/n-quads")
	case TestTypeNQuadsNegativeSyntax:
		return r.runNegativeSyntaxTest(test, "application/n-quads")
	default:
		return outcome{result: TestResultSkip}
	}
}

// runPositiveSyntaxTest verifies an RDF document parses successfully
func (r *TestRunner) runPositiveSyntaxTest(test *TestCase, contentType string) outcome {
	if _, err := r.parseAction(test, contentType); err != nil {
		if isReadError(err) {
			return outcome{TestResultError, err.Error()}
		}
		return outcome{TestResultFail, fmt.Sprintf("Parser error: %v", err)}
	}
	return outcome{result: TestResultPass}
}

// runNegativeSyntaxTest verifies an RDF document fails to parse
func (r *TestRunner) runNegativeSyntaxTest(test *TestCase, contentType string) outcome {
	_, err := r.parseAction(test, contentType)
	if err == nil {
		return outcome{TestResultFail, "Data parsed successfully but should have failed"}
	}
	if isReadError(err) {
		return outcome{TestResultError, err.Error()}
	}
	return outcome{result: TestResultPass}
}

// runEvalTest parses the action and compares it with the expected
// N-Triples up to blank-node renaming.
func (r *TestRunner) runEvalTest(test *TestCase, contentType string) outcome {
	actual, err := r.parseAction(test, contentType)
	if err != nil {
		if isReadError(err) {
			return outcome{TestResultError, err.Error()}
		}
		return outcome{TestResultFail, fmt.Sprintf("Parser error: %v", err)}
	}
	if test.Result == "" {
		return outcome{TestResultError, "No result file specified"}
	}

	data, err := os.ReadFile(test.Result) // #nosec G304 - test suite legitimately reads test result files
	if err != nil {
		return outcome{TestResultError, fmt.Sprintf("Failed to read result file: %v", err)}
	}
	expected, err := rdfio.ParseDataset("application/n-triples", bytes.NewReader(data))
	if err != nil {
		return outcome{TestResultError, fmt.Sprintf("Failed to parse expected results: %v", err)}
	}

	if !rdf.AreDatasetsIsomorphic(expected, actual) {
		return outcome{TestResultFail, fmt.Sprintf("Triples mismatch: expected %d triples, got %d triples", expected.Len(), actual.Len())}
	}
	return outcome{result: TestResultPass}
}

type readError struct{ err error }

func (e *readError) Error() string { return e.err.Error() }
func (e *readError) Unwrap() error { return e.err }

func isReadError(err error) bool {
	_, ok := err.(*readError)
	return ok
}

// parseAction parses the test input with the action IRI as base.
func (r *TestRunner) parseAction(test *TestCase, contentType string) (*rdf.Dataset, error) {
	if test.Action == "" {
		return nil, &readError{fmt.Errorf("no action file specified")}
	}
	data, err := os.ReadFile(test.Action) // #nosec G304 - test suite legitimately reads test data files
	if err != nil {
		return nil, &readError{fmt.Errorf("failed to read data file: %w", err)}
	}
	return rdfio.ParseDataset(contentType, bytes.NewReader(data),
		rdfio.WithBase(test.ActionIRI), rdfio.WithLogger(r.logger))
}

// printSummary prints test execution summary
func (r *TestRunner) printSummary() {
	fmt.Fprintln(r.out, "\n"+strings.Repeat("━", 60))
	fmt.Fprintln(r.out, "📊 TEST SUMMARY")
	fmt.Fprintln(r.out, strings.Repeat("━", 60))
	fmt.Fprintf(r.out, "Total:   %d\n", r.stats.Total)
	if r.stats.Total > 0 {
		fmt.Fprintf(r.out, "Passed:  %d (%.1f%%)\n", r.stats.Passed,
			float64(r.stats.Passed)/float64(r.stats.Total)*100)
	}
	fmt.Fprintf(r.out, "Failed:  %d\n", r.stats.Failed)
	fmt.Fprintf(r.out, "Skipped: %d\n", r.stats.Skipped)

	if len(r.stats.Errors) > 0 {
		fmt.Fprintln(r.out, "\n❌ ERRORS:")
		for i, err := range r.stats.Errors {
			if i >= 10 {
				fmt.Fprintf(r.out, "   ... and %d more\n", len(r.stats.Errors)-10)
				break
			}
			fmt.Fprintf(r.out, "   • %s: %s\n", err.TestName, err.Error)
		}
	}

	fmt.Fprintln(r.out, strings.Repeat("━", 60))
}

// GetStats returns the current test statistics
func (r *TestRunner) GetStats() *TestStats {
	return r.stats
}
