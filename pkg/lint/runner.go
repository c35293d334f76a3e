package lint

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/bqlint/pkg/parser"
	"github.com/leapstack-labs/bqlint/pkg/syntax"
)

// Source is a named SQL text to lint.
type Source struct {
	Path string
	SQL  string
}

// Result holds the outcome of linting one Source. Err carries a parse
// error; the diagnostics of the partial tree are still reported.
type Result struct {
	Path        string
	Diagnostics []Diagnostic
	Err         error
}

// Report is the outcome of one Runner.Run call.
type Report struct {
	RunID   string
	Results []Result // in input order
}

// ParseFunc turns SQL text into a syntax tree. It returns a usable root
// even when err is non-nil.
type ParseFunc func(sql string) (syntax.Node, error)

// DefaultParse parses with the built-in BigQuery parser.
func DefaultParse(sql string) (syntax.Node, error) {
	tree, err := parser.Parse(sql)
	return tree.Root(), err
}

// Runner lints many sources concurrently.
type Runner struct {
	analyzer    *Analyzer
	parse       ParseFunc
	concurrency int
	logger      *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithParser replaces the parser used for each source.
func WithParser(parse ParseFunc) RunnerOption {
	return func(r *Runner) {
		if parse != nil {
			r.parse = parse
		}
	}
}

// WithConcurrency bounds the number of sources analyzed at once.
// Values below 1 select runtime.GOMAXPROCS(0).
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// WithRunnerLogger sets the logger for run and per-source records.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a runner around an analyzer.
func NewRunner(analyzer *Analyzer, opts ...RunnerOption) *Runner {
	if analyzer == nil {
		analyzer = NewAnalyzer(nil)
	}
	r := &Runner{
		analyzer: analyzer,
		parse:    DefaultParse,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency < 1 {
		r.concurrency = runtime.GOMAXPROCS(0)
	}
	return r
}

// Run lints all sources. Sources not yet started when ctx is canceled are
// skipped and the context error is returned with the partial report.
func (r *Runner) Run(ctx context.Context, sources []Source) (*Report, error) {
	report := &Report{
		RunID:   uuid.NewString(),
		Results: make([]Result, len(sources)),
	}
	logger := r.logger.With(slog.String("run_id", report.RunID))
	logger.Debug("lint run started",
		slog.Int("sources", len(sources)),
		slog.Int("concurrency", r.concurrency))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, src := range sources {
		report.Results[i].Path = src.Path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Results[i] = r.lintOne(src, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, fmt.Errorf("lint run %s: %w", report.RunID, err)
	}

	logger.Debug("lint run finished")
	return report, nil
}

func (r *Runner) lintOne(src Source, logger *slog.Logger) Result {
	res := Result{Path: src.Path}
	root, err := r.parse(src.SQL)
	if err != nil {
		res.Err = fmt.Errorf("parse %s: %w", src.Path, err)
		logger.Debug("parse failed", slog.String("path", src.Path), slog.Any("error", err))
	}
	if root != nil {
		res.Diagnostics = r.analyzer.Analyze(root, src.SQL)
	}
	logger.Debug("source linted",
		slog.String("path", src.Path),
		slog.Int("diagnostics", len(res.Diagnostics)))
	return res
}

// HasDiagnostics reports whether any source produced a diagnostic.
func (rep *Report) HasDiagnostics() bool {
	for _, res := range rep.Results {
		if len(res.Diagnostics) > 0 {
			return true
		}
	}
	return false
}
