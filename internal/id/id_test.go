package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		v := New()
		require.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(New()))
	assert.Error(t, Validate("not-an-id"))
	assert.Error(t, Validate(""))
}
