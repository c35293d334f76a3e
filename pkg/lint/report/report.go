// Package report renders lint results for humans and machines.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/bqlint/pkg/lint"
)

// Format selects an output rendering.
type Format string

// Supported formats.
const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat is returned for format names that are not supported.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat converts a format name to a Format. An empty name selects text.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Entry is the serialized form of one diagnostic.
type Entry struct {
	RuleID           string `json:"rule_id" yaml:"rule_id"`
	Severity         string `json:"severity" yaml:"severity"`
	Row              int    `json:"row" yaml:"row"`
	Col              int    `json:"col" yaml:"col"`
	Message          string `json:"message" yaml:"message"`
	DocumentationURL string `json:"documentation_url,omitempty" yaml:"documentation_url,omitempty"`
}

// File is the serialized form of one linted source.
type File struct {
	Path        string  `json:"path" yaml:"path"`
	Error       string  `json:"error,omitempty" yaml:"error,omitempty"`
	Diagnostics []Entry `json:"diagnostics" yaml:"diagnostics"`
}

// Document is the serialized form of a whole report.
type Document struct {
	RunID string `json:"run_id" yaml:"run_id"`
	Files []File `json:"files" yaml:"files"`
}

// NewDocument flattens a report for serialization.
func NewDocument(rep *lint.Report) Document {
	doc := Document{Files: []File{}}
	if rep == nil {
		return doc
	}
	doc.RunID = rep.RunID
	for _, res := range rep.Results {
		f := File{Path: res.Path, Diagnostics: []Entry{}}
		if res.Err != nil {
			f.Error = res.Err.Error()
		}
		for _, d := range res.Diagnostics {
			f.Diagnostics = append(f.Diagnostics, Entry{
				RuleID:           d.RuleID,
				Severity:         d.Severity.String(),
				Row:              d.Row(),
				Col:              d.Col(),
				Message:          d.Message,
				DocumentationURL: d.DocumentationURL,
			})
		}
		doc.Files = append(doc.Files, f)
	}
	return doc
}

// HasDiagnostics reports whether any rule fired in rep.
func HasDiagnostics(rep *lint.Report) bool {
	return rep != nil && rep.HasDiagnostics()
}

// Write renders rep to w in the given format.
func Write(w io.Writer, rep *lint.Report, format Format) error {
	switch format {
	case FormatText, "":
		return writeText(w, rep)
	case FormatTable:
		return writeTable(w, rep)
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatYAML:
		return writeYAML(w, rep)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// writeText prints one "path:row:col: message" line per diagnostic, and one
// "path: error" line per source that failed to parse.
func writeText(w io.Writer, rep *lint.Report) error {
	if rep == nil {
		return nil
	}
	for _, res := range rep.Results {
		if res.Err != nil {
			if _, err := fmt.Fprintf(w, "%s: %v\n", res.Path, res.Err); err != nil {
				return err
			}
		}
		for _, d := range res.Diagnostics {
			if _, err := fmt.Fprintf(w, "%s:%s\n", res.Path, d.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTable(w io.Writer, rep *lint.Report) error {
	doc := NewDocument(rep)

	total := 0
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Line", "Col", "Rule", "Severity", "Message"})
	for _, f := range doc.Files {
		for _, e := range f.Diagnostics {
			t.AppendRow(table.Row{f.Path, e.Row, e.Col, e.RuleID, e.Severity, e.Message})
			total++
		}
	}

	if total == 0 {
		_, _ = fmt.Fprintln(w, "(0 diagnostics)")
		return nil
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d diagnostics)\n", total)
	return nil
}

func writeJSON(w io.Writer, rep *lint.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(rep))
}

func writeYAML(w io.Writer, rep *lint.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(rep)); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return enc.Close()
}
