package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"select", SELECT},
		{"with", WITH},
		{"unnest", IDENT}, // dynamic, not builtin
		{"my_column", IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupIdent(tt.ident))
		})
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "SELECT", SELECT.String())
	assert.Equal(t, "<<", LSHIFT.String())
	assert.Equal(t, "TOKEN(998)", TokenType(998).String())
}

func TestTokenClassification(t *testing.T) {
	assert.True(t, IsKeyword(SELECT))
	assert.True(t, IsKeyword(WITH))
	assert.False(t, IsKeyword(IDENT))
	assert.True(t, IsKeyword(Register("TEST_CLASSIFY")))

	assert.True(t, IsOperator(PLUS))
	assert.True(t, IsOperator(RBRACKET))
	assert.False(t, IsOperator(ALL))
}

func TestTokenEnd(t *testing.T) {
	tok := Token{Type: STRING, Literal: "'abc'", Pos: Position{Line: 1, Column: 8, Offset: 7}}
	assert.Equal(t, 12, tok.End())
	assert.Equal(t, "1:8", tok.Pos.String())
	assert.True(t, tok.Pos.IsValid())
	assert.False(t, Position{}.IsValid())
}
