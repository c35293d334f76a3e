package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/bqlint/pkg/lint"
	"github.com/leapstack-labs/bqlint/pkg/lint/report"
	"github.com/leapstack-labs/bqlint/pkg/token"
)

func sampleReport() *lint.Report {
	return &lint.Report{
		RunID: "run-1",
		Results: []lint.Result{
			{
				Path: "models/a.sql",
				Diagnostics: []lint.Diagnostic{
					{RuleID: "ST11", Severity: lint.SeverityWarning, Message: "Unused column: b", Pos: token.Position{Line: 1, Column: 20}},
					{RuleID: "ST11", Severity: lint.SeverityWarning, Message: "Unused column: c", Pos: token.Position{Line: 2, Column: 3}},
				},
			},
			{Path: "models/b.sql"},
			{Path: "models/c.sql", Err: errors.New("parse models/c.sql: 1:8: expected expression")},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  report.Format
	}{
		{"", report.FormatText},
		{"text", report.FormatText},
		{"TABLE", report.FormatTable},
		{"json", report.FormatJSON},
		{"yml", report.FormatYAML},
		{"yaml", report.FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := report.ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := report.ParseFormat("xml")
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleReport(), report.FormatText))
	assert.Equal(t,
		"models/a.sql:1:20: Unused column: b\n"+
			"models/a.sql:2:3: Unused column: c\n"+
			"models/c.sql: parse models/c.sql: 1:8: expected expression\n",
		buf.String())
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleReport(), report.FormatTable))
	out := buf.String()
	assert.Contains(t, out, "models/a.sql")
	assert.Contains(t, out, "Unused column: c")
	assert.Contains(t, out, "(2 diagnostics)")

	buf.Reset()
	require.NoError(t, report.Write(&buf, &lint.Report{}, report.FormatTable))
	assert.Equal(t, "(0 diagnostics)\n", buf.String())
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleReport(), report.FormatJSON))

	var doc report.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "run-1", doc.RunID)
	require.Len(t, doc.Files, 3)
	require.Len(t, doc.Files[0].Diagnostics, 2)
	assert.Equal(t, report.Entry{
		RuleID:   "ST11",
		Severity: "warning",
		Row:      2,
		Col:      3,
		Message:  "Unused column: c",
	}, doc.Files[0].Diagnostics[1])
	assert.Empty(t, doc.Files[1].Diagnostics)
	assert.Contains(t, doc.Files[2].Error, "expected expression")
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleReport(), report.FormatYAML))
	assert.Contains(t, buf.String(), "run_id: run-1")

	var doc report.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Files, 3)
	assert.Equal(t, "models/a.sql", doc.Files[0].Path)
	assert.Equal(t, 20, doc.Files[0].Diagnostics[0].Col)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := report.Write(&bytes.Buffer{}, sampleReport(), report.Format("xml"))
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestHasDiagnostics(t *testing.T) {
	assert.True(t, report.HasDiagnostics(sampleReport()))
	assert.False(t, report.HasDiagnostics(&lint.Report{Results: []lint.Result{{Path: "x.sql"}}}))
	assert.False(t, report.HasDiagnostics(nil))
}
