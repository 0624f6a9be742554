package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "server-side-secret"

func signToken(t *testing.T, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestDecode(t *testing.T) {
	t.Run("decode server token without secret", func(t *testing.T) {
		token := signToken(t, Claims{
			Roles: []string{"ROLE_ADMIN"},
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "testuser",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
		})

		claims, err := Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "testuser", claims.Username())
		assert.Equal(t, []string{"ROLE_ADMIN"}, claims.Roles)
	})

	t.Run("bearer prefix is stripped", func(t *testing.T) {
		token := signToken(t, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "rider"}})

		claims, err := Decode("Bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, "rider", claims.Username())
	})

	t.Run("decode expired token", func(t *testing.T) {
		token := signToken(t, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "old",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})

		claims, err := Decode(token)
		require.NoError(t, err)
		assert.True(t, claims.ExpiredAt(time.Now()))
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := Decode("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbled token", func(t *testing.T) {
		_, err := Decode("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("opaque token", func(t *testing.T) {
		_, err := Decode("abc123")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("not expired", func(t *testing.T) {
		token := signToken(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		}})
		_, err := Validate(token, now)
		assert.NoError(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token := signToken(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		}})
		claims, err := Validate(token, now)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.NotNil(t, claims)
	})

	t.Run("no exp claim", func(t *testing.T) {
		token := signToken(t, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "x"}})
		_, err := Validate(token, now)
		assert.NoError(t, err)
	})
}

func TestClaims_NilSafe(t *testing.T) {
	var c *Claims
	assert.Empty(t, c.Username())
	assert.False(t, c.ExpiredAt(time.Now()))
}

func TestErrors(t *testing.T) {
	assert.Equal(t, "invalid token", ErrInvalidToken.Error())
	assert.Equal(t, "token has expired", ErrExpiredToken.Error())
}
