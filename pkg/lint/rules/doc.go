// Package rules bundles the BigQuery lint rules shipped with bqlint.
//
// Rules are organized by what they inspect:
//   - unusedcolumn: CTE columns never read by a later query stage (ST11)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/bqlint/pkg/lint/rules"
//
// Individual rules can also be imported:
//
//	import _ "github.com/leapstack-labs/bqlint/pkg/lint/rules/unusedcolumn"
package rules
