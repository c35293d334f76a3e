package lint

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/bqlint/pkg/syntax"
	"github.com/leapstack-labs/bqlint/pkg/token"
)

// Severity indicates the importance of a diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// ErrUnknownSeverity is returned by ParseSeverity for unrecognized names.
var ErrUnknownSeverity = errors.New("unknown severity")

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a severity name (case-insensitive) to a Severity.
// "warn" is accepted as an alias of "warning".
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "hint":
		return SeverityHint, nil
	}
	return SeverityError, fmt.Errorf("%w: %q", ErrUnknownSeverity, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Check function parameters.
type RuleDef struct {
	ID          string    // Unique identifier, e.g., "ST11"
	Name        string    // Human-readable name, e.g., "structure.unused_cte_column"
	Group       string    // Category, e.g., "structure"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc analyzes a syntax tree and returns diagnostics. source is the
// text the tree was built from; node text is sliced out of it.
type CheckFunc func(root syntax.Node, source string) []Diagnostic

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string
	Severity Severity
	Message  string
	Pos      token.Position // 1-based line and column

	// Remediation metadata
	DocumentationURL string // URL to rule documentation, e.g., "https://bqlint.dev/docs/rules/st11"
	ImpactScore      int    // 0-100
}

// Row returns the 1-based line of the diagnostic.
func (d Diagnostic) Row() int { return d.Pos.Line }

// Col returns the 1-based column of the diagnostic.
func (d Diagnostic) Col() int { return d.Pos.Column }

// String renders the diagnostic as "row:col: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Pos.Line, d.Pos.Column, d.Message)
}

// PositionOf returns the 1-based start position of a node.
func PositionOf(n syntax.Node) token.Position {
	p := n.StartPoint()
	return token.Position{Line: p.Row + 1, Column: p.Column + 1, Offset: n.StartByte()}
}

// SortDiagnostics orders diagnostics by position, keeping the relative
// order of diagnostics at the same position.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Pos.Line, b.Pos.Line),
			cmp.Compare(a.Pos.Column, b.Pos.Column),
		)
	})
}
