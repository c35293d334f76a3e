package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	// Structure rules
	_ "github.com/leapstack-labs/bqlint/pkg/lint/rules/unusedcolumn"
)
