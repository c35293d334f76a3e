package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bqlint/pkg/lint"
	_ "github.com/leapstack-labs/bqlint/pkg/lint/rules"
)

func TestAllRulesRegistered(t *testing.T) {
	rule, ok := lint.GetByID("ST11")
	require.True(t, ok)
	assert.Equal(t, "structure", rule.Group())
	assert.NotEmpty(t, lint.GetByGroup("structure"))
}
