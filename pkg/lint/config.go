package lint

import (
	"maps"
	"slices"
)

// Config selects the rules an Analyzer runs and the severity each one
// reports with. A nil *Config enables every rule at its default severity.
type Config struct {
	disabled  map[string]struct{}
	overrides map[string]Severity
}

// NewConfig returns a Config with every rule enabled.
func NewConfig() *Config {
	return &Config{
		disabled:  make(map[string]struct{}),
		overrides: make(map[string]Severity),
	}
}

// IsDisabled reports whether the rule is skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	_, off := c.disabled[ruleID]
	return off
}

// GetSeverity returns the override for ruleID, or defaultSeverity.
func (c *Config) GetSeverity(ruleID string, defaultSeverity Severity) Severity {
	if c == nil {
		return defaultSeverity
	}
	if sev, ok := c.overrides[ruleID]; ok {
		return sev
	}
	return defaultSeverity
}

// Disable skips ruleID.
func (c *Config) Disable(ruleID string) *Config {
	c.disabled[ruleID] = struct{}{}
	return c
}

// Enable undoes Disable.
func (c *Config) Enable(ruleID string) *Config {
	delete(c.disabled, ruleID)
	return c
}

// SetSeverity makes ruleID report with severity.
func (c *Config) SetSeverity(ruleID string, severity Severity) *Config {
	c.overrides[ruleID] = severity
	return c
}

// Disabled returns the disabled rule IDs in sorted order.
func (c *Config) Disabled() []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.disabled))
}
