package jwtpayload

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return s
}

func TestDecode_ReadsUserIDAndSubject(t *testing.T) {
	tok := sign(t, jwt.MapClaims{
		"sub":     "ana@example.com",
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	c, err := NewDecoder().Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", c.UserID)
	assert.Equal(t, "ana@example.com", c.Email)
}

func TestDecode_DoesNotVerifySignatureOrExpiry(t *testing.T) {
	// firmado con otra clave y vencido: igual se decodifica (sólo presentación)
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "7",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("other"))
	require.NoError(t, err)

	c, err := NewDecoder().Decode(s)
	require.NoError(t, err)
	assert.Equal(t, "7", c.UserID)
}

func TestDecode_Failures(t *testing.T) {
	d := NewDecoder()

	_, err := d.Decode("  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = d.Decode("not-a-jwt")
	assert.Error(t, err)

	_, err = d.Decode(sign(t, jwt.MapClaims{"sub": "x@example.com"}))
	assert.ErrorIs(t, err, ErrMissingUserID)
}
