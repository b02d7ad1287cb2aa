package shared_utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTinyID(t *testing.T) {
	id, err := GenerateTinyID(10)
	require.NoError(t, err)
	assert.Len(t, id, 10)
	for _, r := range id {
		assert.True(t, strings.ContainsRune(charset, r), "unexpected rune %q", r)
	}

	other, err := GenerateTinyID(10)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestGenerateTinyIDRejectsBadLength(t *testing.T) {
	_, err := GenerateTinyID(0)
	assert.Error(t, err)
	_, err = GenerateTinyID(1001)
	assert.Error(t, err)
}

func TestGenerateTinyIDMaxLength(t *testing.T) {
	id, err := GenerateTinyID(maxTinyID)
	require.NoError(t, err)
	assert.Len(t, id, maxTinyID)
	_, err = GenerateTinyID(maxTinyID + 1)
	assert.Error(t, err)
}
