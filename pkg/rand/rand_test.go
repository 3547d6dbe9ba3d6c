package rand

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	re := regexp.MustCompile(`^[a-z0-9]{5}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		s, err := String(5)
		require.NoError(t, err)
		assert.Regexp(t, re, s)
		seen[s] = struct{}{}
	}
	assert.Greater(t, len(seen), 90)

	s, err := String(0)
	require.NoError(t, err)
	assert.Empty(t, s)
}
