package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bqlint/internal/testutil"
	"github.com/leapstack-labs/bqlint/pkg/lint"
	_ "github.com/leapstack-labs/bqlint/pkg/lint/rules"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, LogFormatText, cfg.LogFormat)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	assert.Empty(t, cfg.Lint.Disabled)
	assert.Empty(t, cfg.Lint.Severity)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, t.TempDir(), ConfigFileName, `
log_level: debug
log_format: json
concurrency: 2
lint:
  disabled: [ST11]
  severity:
    ST11: error
  docs_base_url: http://localhost/rules
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, []string{"ST11"}, cfg.Lint.Disabled)
	assert.Equal(t, lint.SeverityError, cfg.Lint.Severity["ST11"])
	assert.Equal(t, "http://localhost/rules", cfg.Lint.DocsBaseURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), ConfigFileName, "concurrency: 2\nlog_format: json\n")
	t.Setenv("BQLINT_CONCURRENCY", "8")
	t.Setenv("BQLINT_LINT__DISABLED", "ST11,AM01")
	t.Setenv("BQLINT_LINT__SEVERITY__ST03", "hint")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
	assert.Equal(t, []string{"ST11", "AM01"}, cfg.Lint.Disabled)

	// environment keys arrive lowercased
	assert.Equal(t, lint.SeverityHint, cfg.Lint.Severity["st03"])
	lintCfg := cfg.LintConfig()
	assert.Equal(t, lint.SeverityHint, lintCfg.GetSeverity("ST03", lint.SeverityWarning))
	assert.True(t, lintCfg.IsDisabled("AM01"))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{
			name:      "unknown severity",
			content:   "lint:\n  severity:\n    ST11: fatal\n",
			errSubstr: "invalid severity",
		},
		{
			name:      "zero concurrency",
			content:   "concurrency: 0\n",
			errSubstr: "concurrency must be at least 1",
		},
		{
			name:      "unknown log format",
			content:   "log_format: xml\n",
			errSubstr: "log_format",
		},
		{
			name:      "malformed yaml",
			content:   "lint: [unclosed\n",
			errSubstr: "error reading config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, "bad.yaml", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)

	writeConfig(t, dir, ConfigFileNameAlt, "concurrency: 3\n")
	cfg, err = LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Concurrency)

	writeConfig(t, dir, ConfigFileName, "concurrency: 5\n")
	cfg, err = LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Concurrency, "bqlint.yaml wins over bqlint.yml")
}

func TestValidate(t *testing.T) {
	cfg := &Config{Concurrency: 1, LogFormat: LogFormatText}
	require.NoError(t, cfg.Validate())

	cfg.Concurrency = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestLintConfig(t *testing.T) {
	cfg := &Config{Lint: LintConfig{
		Disabled: []string{" st11 ", ""},
		Severity: map[string]lint.Severity{"am01": lint.SeverityInfo},
	}}

	lintCfg := cfg.LintConfig()
	assert.Equal(t, []string{"ST11"}, lintCfg.Disabled())
	assert.Equal(t, lint.SeverityInfo, lintCfg.GetSeverity("AM01", lint.SeverityError))
}

func TestApplyDocsBaseURL(t *testing.T) {
	t.Cleanup(lint.ResetDocsBaseURL)

	(&Config{}).ApplyDocsBaseURL()
	assert.Equal(t, lint.DefaultDocsBaseURL, lint.DocsBaseURL())

	(&Config{Lint: LintConfig{DocsBaseURL: "http://localhost/rules"}}).ApplyDocsBaseURL()
	assert.Equal(t, "http://localhost/rules/st11", lint.BuildDocURL("ST11"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: slog.LevelWarn, LogFormat: LogFormatJSON}
	logger := cfg.NewLogger(&buf)

	logger.Info("dropped")
	logger.Warn("kept", "rule", "ST11")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
	assert.Contains(t, buf.String(), `"rule":"ST11"`)

	buf.Reset()
	cfg.LogFormat = LogFormatText
	cfg.NewLogger(&buf).Warn("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestNewRunner(t *testing.T) {
	sources := []lint.Source{
		{Path: "a.sql", SQL: "WITH a AS (SELECT x, y FROM t) SELECT x FROM a"},
	}

	tests := []struct {
		name      string
		lint      LintConfig
		wantCount int
		wantSev   lint.Severity
	}{
		{name: "defaults", wantCount: 1, wantSev: lint.SeverityWarning},
		{
			name:      "severity override",
			lint:      LintConfig{Severity: map[string]lint.Severity{"st11": lint.SeverityError}},
			wantCount: 1,
			wantSev:   lint.SeverityError,
		},
		{name: "disabled", lint: LintConfig{Disabled: []string{"ST11"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Concurrency: 2, LogFormat: LogFormatText, Lint: tt.lint}
			report, err := cfg.NewRunner(testutil.NewTestLogger(t)).Run(context.Background(), sources)
			require.NoError(t, err)
			require.Len(t, report.Results, 1)

			diags := report.Results[0].Diagnostics
			require.Len(t, diags, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, "Unused column: y", diags[0].Message)
				assert.Equal(t, tt.wantSev, diags[0].Severity)
			}
		})
	}
}
