package lint

import (
	"log/slog"

	"github.com/leapstack-labs/bqlint/pkg/syntax"
)

// Analyzer runs lint rules against parsed SQL.
type Analyzer struct {
	config *Config
	rules  []Rule // nil means every registered rule at analysis time
	logger *slog.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLogger sets the logger used for per-rule debug records.
func WithLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRules restricts the analyzer to the given rules instead of the
// global registry.
func WithRules(rules ...Rule) AnalyzerOption {
	return func(a *Analyzer) {
		a.rules = rules
	}
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(config *Config, opts ...AnalyzerOption) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	a := &Analyzer{
		config: config,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Rules returns the rules the analyzer runs, including disabled ones.
func (a *Analyzer) Rules() []Rule {
	if a.rules != nil {
		return a.rules
	}
	return GetAll()
}

// Analyze runs every enabled rule against the tree rooted at root and
// returns the diagnostics ordered by position.
func (a *Analyzer) Analyze(root syntax.Node, source string) []Diagnostic {
	if root == nil {
		return nil
	}

	var diagnostics []Diagnostic
	for _, rule := range a.Rules() {
		// Skip disabled rules
		if a.config.IsDisabled(rule.ID()) {
			a.logger.Debug("rule disabled", slog.String("rule", rule.ID()))
			continue
		}

		diags := rule.Check(root, source)

		for i := range diags {
			d := &diags[i]
			if d.RuleID == "" {
				d.RuleID = rule.ID()
			}
			d.Severity = a.config.GetSeverity(rule.ID(), d.Severity)
			if d.DocumentationURL == "" {
				d.DocumentationURL = BuildDocURL(rule.ID())
			}
			if d.ImpactScore == 0 {
				d.ImpactScore = DefaultImpact(d.Severity).Int()
			}
		}

		a.logger.Debug("rule checked",
			slog.String("rule", rule.ID()),
			slog.Int("diagnostics", len(diags)))
		diagnostics = append(diagnostics, diags...)
	}

	SortDiagnostics(diagnostics)
	return diagnostics
}
