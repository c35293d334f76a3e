package config_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bqlint/pkg/config"
	"github.com/leapstack-labs/bqlint/pkg/lint"
	_ "github.com/leapstack-labs/bqlint/pkg/lint/rules"
)

func TestLoadFromDir_Run(t *testing.T) {
	sources := []lint.Source{
		{Path: "a.sql", SQL: "WITH a AS (SELECT x, y FROM t) SELECT x FROM a"},
	}

	tests := []struct {
		name      string
		yaml      string
		wantCount int
		wantSev   lint.Severity
	}{
		{name: "no config file", wantCount: 1, wantSev: lint.SeverityWarning},
		{
			name:      "severity override",
			yaml:      "lint:\n  severity:\n    ST11: error\n",
			wantCount: 1,
			wantSev:   lint.SeverityError,
		},
		{name: "disabled", yaml: "lint:\n  disabled: [ST11]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.yaml != "" {
				path := filepath.Join(dir, config.ConfigFileName)
				require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))
			}

			cfg, err := config.LoadFromDir(dir)
			require.NoError(t, err)

			runner := cfg.NewRunner(cfg.NewLogger(io.Discard))
			report, err := runner.Run(context.Background(), sources)
			require.NoError(t, err)
			require.Len(t, report.Results, 1)

			diags := report.Results[0].Diagnostics
			require.Len(t, diags, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantSev, diags[0].Severity)
				assert.Equal(t, "Unused column: y", diags[0].Message)
			}
		})
	}
}
