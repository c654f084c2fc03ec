package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.Generate(Identity{
		UserID:   "user-1",
		Role:     "owner",
		WarungID: "warung-1",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	identity, err := manager.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "owner", identity.Role)
	assert.Equal(t, "warung-1", identity.WarungID)
}

func TestTokenWithoutWarung(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.Generate(Identity{UserID: "user-2", Role: "owner"})
	assert.NoError(t, err)

	identity, err := manager.Parse(token)
	assert.NoError(t, err)
	assert.Empty(t, identity.WarungID)
}

func TestExpiredTokenRejected(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	manager.now = func() time.Time { return issuedAt }

	token, err := manager.Generate(Identity{UserID: "user-3", Role: "staff"})
	assert.NoError(t, err)

	manager.now = time.Now
	_, err = manager.Parse(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	signer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := signer.Generate(Identity{UserID: "user-4", Role: "staff"})
	assert.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("rahasia-banget")
	assert.NoError(t, err)
	assert.NotEqual(t, "rahasia-banget", hash)

	assert.True(t, CheckPassword(hash, "rahasia-banget"))
	assert.False(t, CheckPassword(hash, "salah"))
}
