// Package config loads bqlint settings from defaults, a YAML file and the
// environment, and turns them into a logger and a lint runner:
//
//	cfg, err := config.LoadFromDir(dir)
//	if err != nil {
//		return err
//	}
//	runner := cfg.NewRunner(cfg.NewLogger(os.Stderr))
//	report, err := runner.Run(ctx, sources)
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/bqlint/pkg/lint"
)

var (
	// ErrInvalidSeverity is returned when a severity name is not recognized.
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrInvalidConfig is returned when a loaded value is out of range.
	ErrInvalidConfig = errors.New("invalid config")
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all bqlint settings.
type Config struct {
	LogLevel    slog.Level `koanf:"log_level"`
	LogFormat   string     `koanf:"log_format"`  // text or json
	Concurrency int        `koanf:"concurrency"` // batch runner workers
	Lint        LintConfig `koanf:"lint"`
}

// LintConfig holds lint rule configuration.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled"`

	// Severity maps rule ID to severity override (error, warning, info, hint)
	Severity map[string]lint.Severity `koanf:"severity"`

	// DocsBaseURL overrides where rule documentation links point
	DocsBaseURL string `koanf:"docs_base_url"`
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidConfig, c.Concurrency)
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log_format must be %q or %q, got %q", ErrInvalidConfig, LogFormatText, LogFormatJSON, c.LogFormat)
	}
	return nil
}

// LintConfig converts the lint section to a *lint.Config. Rule IDs are
// matched case-insensitively, since environment keys arrive lowercased.
func (c *Config) LintConfig() *lint.Config {
	cfg := lint.NewConfig()
	for _, id := range c.Lint.Disabled {
		if id = normalizeRuleID(id); id != "" {
			cfg.Disable(id)
		}
	}
	for id, sev := range c.Lint.Severity {
		cfg.SetSeverity(normalizeRuleID(id), sev)
	}
	return cfg
}

// NewRunner builds a lint runner over the enabled registered rules, using
// the configured concurrency and logging through logger.
func (c *Config) NewRunner(logger *slog.Logger) *lint.Runner {
	analyzer := lint.NewAnalyzer(c.LintConfig(), lint.WithLogger(logger))
	return lint.NewRunner(analyzer,
		lint.WithConcurrency(c.Concurrency),
		lint.WithRunnerLogger(logger))
}

// ApplyDocsBaseURL points rule documentation links at the configured base
// URL, if one is set.
func (c *Config) ApplyDocsBaseURL() {
	if c.Lint.DocsBaseURL != "" {
		lint.SetDocsBaseURL(c.Lint.DocsBaseURL)
	}
}

func normalizeRuleID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
