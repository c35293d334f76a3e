package unusedcolumn

import (
	"slices"

	"github.com/leapstack-labs/bqlint/pkg/lint"
	"github.com/leapstack-labs/bqlint/pkg/syntax"
	"github.com/leapstack-labs/bqlint/pkg/token"
)

func init() {
	lint.Register(UnusedCTEColumn)
}

// RuleID identifies the rule in configuration and diagnostics.
const RuleID = "ST11"

// UnusedCTEColumn warns about CTE columns that nothing downstream reads.
var UnusedCTEColumn = lint.RuleDef{
	ID:          RuleID,
	Name:        "structure.unused_cte_column",
	Group:       "structure",
	Description: "CTE column is defined but never used by a later query stage.",
	Severity:    lint.SeverityWarning,
	Check:       Check,
	Rationale: "Columns that no query stage consumes cost bytes scanned and hide " +
		"the real shape of the data a query depends on.",
	BadExample: `WITH orders AS (SELECT id, amount, note FROM raw.orders)
SELECT id, amount FROM orders`,
	GoodExample: `WITH orders AS (SELECT id, amount FROM raw.orders)
SELECT id, amount FROM orders`,
	Fix: "Remove the column from the CTE, or use it downstream.",
}

// Check reports every unused CTE column under root. Each top-level
// statement of a source file is analyzed on its own.
func Check(root syntax.Node, source string) []lint.Diagnostic {
	unused := UnusedColumns(root, source)
	if len(unused) == 0 {
		return nil
	}
	diags := make([]lint.Diagnostic, 0, len(unused))
	for _, col := range unused {
		diags = append(diags, newDiagnostic(col))
	}
	return diags
}

// UnusedColumns returns the unused CTE columns under root ordered by
// position.
func UnusedColumns(root syntax.Node, source string) []ColumnInfo {
	if root == nil {
		return nil
	}
	if root.Kind() != syntax.KindSourceFile {
		return analyze(root, source)
	}

	var unused []ColumnInfo
	for i := 0; i < root.NamedChildCount(); i++ {
		unused = append(unused, analyze(root.NamedChild(i), source)...)
	}
	slices.SortStableFunc(unused, ColumnInfo.Compare)
	return unused
}

func newDiagnostic(col ColumnInfo) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:   RuleID,
		Severity: lint.SeverityWarning,
		Message:  "Unused column: " + col.ColumnName,
		Pos:      token.Position{Line: col.Row, Column: col.Col},
	}
}
