package paseto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "cmFoYXNpYS1yb25kYS1yYWhhc2lhLXJvbmRhLTEyMzQ="

func TestNewMakerRejectsBadSecrets(t *testing.T) {
	_, err := NewMaker("bukan base64!!!")
	assert.Error(t, err)

	// Valid Base64 tapi bukan 32 byte.
	_, err = NewMaker("cGVuZGVr")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	maker, err := NewMaker(testSecret)
	require.NoError(t, err)

	token, err := maker.GenerateToken("admin", "admin")
	require.NoError(t, err)

	claims, err := maker.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateRejectsGarbage(t *testing.T) {
	maker, err := NewMaker(testSecret)
	require.NoError(t, err)

	_, err = maker.ValidateToken("v2.local.bukan-token")
	assert.Error(t, err)
}

func TestValidateRejectsTokenFromOtherKey(t *testing.T) {
	maker, err := NewMaker(testSecret)
	require.NoError(t, err)

	other, err := NewMaker("a3VuY2ktY2FkYW5nYW4tcm9uZGEtMzItYnl0ZS1hYmM=")
	require.NoError(t, err)

	token, err := other.GenerateToken("admin", "admin")
	require.NoError(t, err)

	_, err = maker.ValidateToken(token)
	assert.Error(t, err)
}
