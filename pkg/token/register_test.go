package token

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	qualify := Register("QUALIFY_TEST")

	tests := []struct {
		name  string
		input string
	}{
		{"same name", "QUALIFY_TEST"},
		{"lower case", "qualify_test"},
		{"mixed case", "Qualify_Test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, qualify, Register(tt.input))
			got, ok := LookupDynamicKeyword(tt.input)
			require.True(t, ok)
			assert.Equal(t, qualify, got)
		})
	}

	assert.Equal(t, "QUALIFY_TEST", qualify.String())
	assert.True(t, IsDynamic(qualify))
	assert.True(t, IsKeyword(qualify))
	assert.NotEqual(t, qualify, Register("PIVOT_TEST"))
}

func TestRegister_Concurrent(t *testing.T) {
	const workers = 50
	var wg sync.WaitGroup
	got := make([]TokenType, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = Register("UNNEST_CONCURRENT")
		}()
	}
	wg.Wait()

	for _, id := range got {
		require.Equal(t, got[0], id)
	}
}

func TestLookupDynamicKeyword_Unknown(t *testing.T) {
	tok, ok := LookupDynamicKeyword("not_a_keyword_anywhere")
	assert.False(t, ok)
	assert.Equal(t, IDENT, tok)

	_, ok = getDynamicName(TokenType(99999))
	assert.False(t, ok)
	assert.False(t, IsDynamic(SELECT))
}
