package lint

import "github.com/leapstack-labs/bqlint/pkg/syntax"

// Rule is the interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g., "ST11"
	ID() string

	// Name returns the human-readable name, e.g., "structure.unused_cte_column"
	Name() string

	// Group returns the category, e.g., "structure"
	Group() string

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the default severity for this rule
	DefaultSeverity() Severity

	// Check analyzes a syntax tree and returns diagnostics.
	Check(root syntax.Node, source string) []Diagnostic
}

// RuleInfo provides metadata about a rule for documentation/tooling.
type RuleInfo struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Group            string   `json:"group" yaml:"group"`
	Description      string   `json:"description" yaml:"description"`
	DefaultSeverity  Severity `json:"default_severity" yaml:"default_severity"`
	DocumentationURL string   `json:"documentation_url" yaml:"documentation_url"`
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) RuleInfo {
	return RuleInfo{
		ID:               r.ID(),
		Name:             r.Name(),
		Group:            r.Group(),
		Description:      r.Description(),
		DefaultSeverity:  r.DefaultSeverity(),
		DocumentationURL: BuildDocURL(r.ID()),
	}
}

// wrappedRuleDef wraps a RuleDef to implement Rule.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement Rule.
func WrapRuleDef(def RuleDef) Rule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                { return w.def.ID }
func (w *wrappedRuleDef) Name() string              { return w.def.Name }
func (w *wrappedRuleDef) Group() string             { return w.def.Group }
func (w *wrappedRuleDef) Description() string       { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() Severity { return w.def.Severity }

func (w *wrappedRuleDef) Check(root syntax.Node, source string) []Diagnostic {
	if w.def.Check == nil || root == nil {
		return nil
	}
	return w.def.Check(root, source)
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}
