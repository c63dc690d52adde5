package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCheckinCodeFormat(t *testing.T) {
	code := NewCheckinCode()
	assert.Len(t, code, 32)
	assert.NotContains(t, code, "-")
	for _, r := range code {
		assert.True(t, (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F'),
			"unexpected character %q in code %s", r, code)
	}
}

func TestNewCheckinCodeUnique(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		code := NewCheckinCode()
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}
