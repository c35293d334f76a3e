// Package lint provides the rule framework for BigQuery SQL linting.
//
// # Architecture
//
// Rules analyze a syntax tree (package syntax) together with its source
// text and return diagnostics. The package defines the shared contracts,
// the global rule registry, the Analyzer that runs registered rules, and a
// Runner that lints many sources concurrently. Rule implementations live in
// subpackages of pkg/lint/rules.
//
// # Rule Registration
//
// Rules are automatically registered via init() functions when their
// packages are imported:
//
//	import _ "github.com/leapstack-labs/bqlint/pkg/lint/rules"
//
// # Rule Categories
//
//   - ST (Structure): Rules about SQL query structure, e.g. ST11
//     (structure.unused_cte_column)
//
// # Using the Registry
//
//	rules := lint.GetAll()
//	rule, ok := lint.GetByID("ST11")
//	structure := lint.GetByGroup("structure")
//
// # Configuration
//
// Use Config to control which rules are enabled and their severity:
//
//	config := lint.NewConfig()
//	config.Disable("ST11")
//	config.SetSeverity("ST11", lint.SeverityError)
//
// # Running
//
//	tree, err := parser.Parse(sql)
//	diags := lint.NewAnalyzer(config).Analyze(tree.Root(), sql)
//
//	report, err := lint.NewRunner(analyzer, lint.WithConcurrency(8)).Run(ctx, sources)
//
// # Creating Custom Rules
//
// Implement the Rule interface or use RuleDef:
//
//	var MyRule = lint.RuleDef{
//		ID:          "MY01",
//		Name:        "my.custom_rule",
//		Group:       "custom",
//		Description: "My custom rule description",
//		Severity:    lint.SeverityWarning,
//		Check:       checkMyRule,
//	}
//
//	func init() {
//		lint.Register(MyRule)
//	}
package lint
