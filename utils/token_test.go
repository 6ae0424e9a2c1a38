package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	token, err := GenerateResetToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 43) // 32 bytes, base64 raw URL encoding

	other, err := GenerateResetToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
