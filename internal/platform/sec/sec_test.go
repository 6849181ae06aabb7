// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

/*
TestTokenService_RoundTrip verifies that minted tokens verify with the matching key.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	key := newKey(t)
	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "inkwell.app")

	token, err := service.GenerateAccessToken(sec.TokenInput{
		UserID:     "user-1",
		Email:      "ada@example.com",
		Role:       sec.RoleAuthor,
		TimeToLive: time.Minute,
	})
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, string(sec.RoleAuthor), claims.Role)
}

/*
TestTokenService_Rejects verifies expired, foreign and mis-issued tokens.
*/
func TestTokenService_Rejects(t *testing.T) {
	key := newKey(t)
	verifier := sec.NewTokenServiceFromKeys(nil, &key.PublicKey, "inkwell.app")

	t.Run("expired", func(t *testing.T) {
		signer := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "inkwell.app")
		token, err := signer.GenerateAccessToken(sec.TokenInput{UserID: "u", TimeToLive: -time.Minute})
		require.NoError(t, err)

		_, err = verifier.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("other key", func(t *testing.T) {
		other := newKey(t)
		signer := sec.NewTokenServiceFromKeys(other, &other.PublicKey, "inkwell.app")
		token, err := signer.GenerateAccessToken(sec.TokenInput{UserID: "u", TimeToLive: time.Minute})
		require.NoError(t, err)

		_, err = verifier.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("other issuer", func(t *testing.T) {
		signer := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "elsewhere")
		token, err := signer.GenerateAccessToken(sec.TokenInput{UserID: "u", TimeToLive: time.Minute})
		require.NoError(t, err)

		_, err = verifier.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.VerifyToken("not-a-token")
		assert.Error(t, err)
	})
}

/*
TestTokenService_VerifyOnly verifies that signing fails without a private key.
*/
func TestTokenService_VerifyOnly(t *testing.T) {
	key := newKey(t)
	verifier := sec.NewTokenServiceFromKeys(nil, &key.PublicKey, "inkwell.app")

	_, err := verifier.GenerateAccessToken(sec.TokenInput{UserID: "u", TimeToLive: time.Minute})
	assert.ErrorIs(t, err, sec.ErrSigningDisabled)
}

/*
TestUserRole_AtLeast verifies the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAuthor))
	assert.True(t, sec.RoleAuthor.AtLeast(sec.RoleAuthor))
	assert.False(t, sec.RoleReader.AtLeast(sec.RoleAuthor))
	assert.False(t, sec.UserRole("ghost").AtLeast(sec.RoleReader))
	assert.False(t, sec.UserRole("ghost").Valid())
}
