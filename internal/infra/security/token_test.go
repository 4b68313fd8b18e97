package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueResolveRoundtrip(t *testing.T) {
	manager := JWTTokenManager{Secret: []byte("test-secret")}

	token, err := manager.Issue("user-42", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := manager.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestResolveRejectsForeignSignature(t *testing.T) {
	token, err := JWTTokenManager{Secret: []byte("secret-a")}.Issue("user-42", time.Hour)
	require.NoError(t, err)

	_, err = JWTTokenManager{Secret: []byte("secret-b")}.Resolve(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestResolveRejectsExpiredToken(t *testing.T) {
	manager := JWTTokenManager{Secret: []byte("test-secret")}

	token, err := manager.Issue("user-42", -time.Minute)
	require.NoError(t, err)

	_, err = manager.Resolve(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestResolveRejectsGarbage(t *testing.T) {
	manager := JWTTokenManager{Secret: []byte("test-secret")}
	_, err := manager.Resolve("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSecretRequired(t *testing.T) {
	_, err := JWTTokenManager{}.Issue("user-42", time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = JWTTokenManager{}.Resolve("anything")
	assert.ErrorIs(t, err, ErrNoSecret)
}
