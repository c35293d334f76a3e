package lint_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bqlint/internal/testutil"
	"github.com/leapstack-labs/bqlint/pkg/lint"
	"github.com/leapstack-labs/bqlint/pkg/syntax"
)

func newTestRunner(opts ...lint.RunnerOption) *lint.Runner {
	analyzer := lint.NewAnalyzer(nil, lint.WithRules(lint.WrapRuleDef(identifierRule)))
	return lint.NewRunner(analyzer, opts...)
}

func TestRunner_Run(t *testing.T) {
	var sources []lint.Source
	for i := 0; i < 20; i++ {
		cols := "a"
		if i%2 == 1 {
			cols = "a, b"
		}
		sources = append(sources, lint.Source{
			Path: fmt.Sprintf("q%02d.sql", i),
			SQL:  "SELECT " + cols + " FROM t",
		})
	}

	logger, logs := testutil.NewCaptureLogger()
	report, err := newTestRunner(lint.WithConcurrency(4), lint.WithRunnerLogger(logger)).
		Run(context.Background(), sources)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.True(t, report.HasDiagnostics())
	require.Len(t, report.Results, len(sources))
	for i, res := range report.Results {
		assert.Equal(t, sources[i].Path, res.Path)
		assert.NoError(t, res.Err)
		want := 2
		if i%2 == 1 {
			want = 3
		}
		assert.Len(t, res.Diagnostics, want, res.Path)
	}

	assert.Contains(t, logs.String(), `"run_id":"`+report.RunID+`"`)
	assert.Contains(t, logs.String(), `"msg":"lint run finished"`)
}

func TestRunner_ParseError(t *testing.T) {
	sql := "SELECT a FROM t WHERE ("
	report, err := newTestRunner().Run(context.Background(), []lint.Source{{Path: "bad.sql", SQL: sql}})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	res := report.Results[0]
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "parse bad.sql")
	// the partial tree is still analyzed
	assert.NotEmpty(t, res.Diagnostics)
}

func TestRunner_CustomParser(t *testing.T) {
	parseErr := errors.New("no tree")
	var calls atomic.Int32
	parse := func(string) (syntax.Node, error) {
		calls.Add(1)
		return nil, parseErr
	}

	report, err := newTestRunner(lint.WithParser(parse)).Run(context.Background(), []lint.Source{
		{Path: "a.sql", SQL: "SELECT 1"},
		{Path: "b.sql", SQL: "SELECT 2"},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.False(t, report.HasDiagnostics())
	for _, res := range report.Results {
		assert.ErrorIs(t, res.Err, parseErr)
		assert.Empty(t, res.Diagnostics)
	}
}

func TestRunner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestRunner(lint.WithConcurrency(1)).Run(ctx, []lint.Source{
		{Path: "a.sql", SQL: "SELECT a FROM t"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Equal(t, "a.sql", report.Results[0].Path)
	assert.Empty(t, report.Results[0].Diagnostics)
}

func TestRunner_Empty(t *testing.T) {
	report, err := newTestRunner().Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.False(t, report.HasDiagnostics())
}
