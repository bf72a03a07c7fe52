package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	s, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, s, DefaultLength)

	for _, r := range s {
		assert.Contains(t, alphabet, string(r))
	}
}

func TestNewIsPrefixedAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		v := New(PrefixEntry)
		assert.True(t, HasPrefix(v, PrefixEntry))
		assert.False(t, seen[v])
		seen[v] = true
	}
	assert.False(t, HasPrefix("ent_", PrefixEntry))
	assert.False(t, HasPrefix("usr_abc", PrefixEntry))
}
