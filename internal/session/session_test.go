package session

import (
	"context"
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("disk gone") }
func (failingStore) Delete(context.Context, ...string) error   { return errors.New("disk gone") }

func TestSession_Token(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryStore())

	assert.Empty(t, s.GetToken(ctx))
	assert.False(t, s.IsLoggedIn(ctx))

	require.NoError(t, s.SetToken(ctx, "abc"))
	assert.Equal(t, "abc", s.GetToken(ctx))
	assert.True(t, s.IsLoggedIn(ctx))
}

func TestSession_IsAdmin(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		raw   *string
		admin bool
	}{
		{"missing", nil, false},
		{"empty string", strPtr(""), false},
		{"empty array", strPtr("[]"), false},
		{"malformed", strPtr("not-json"), false},
		{"object instead of array", strPtr(`{"role":"ROLE_ADMIN"}`), false},
		{"null", strPtr("null"), false},
		{"user only", strPtr(`["ROLE_USER"]`), false},
		{"lower case admin", strPtr(`["role_admin"]`), false},
		{"bare ADMIN", strPtr(`["ADMIN"]`), false},
		{"admin", strPtr(`["ROLE_ADMIN"]`), true},
		{"admin among others", strPtr(`["ROLE_USER","ROLE_ADMIN"]`), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.raw != nil {
				require.NoError(t, store.Set(ctx, KeyUserRoles, *tt.raw))
			}
			assert.Equal(t, tt.admin, New(store).IsAdmin(ctx))
		})
	}
}

func TestSession_IsAdminReevaluatedEachCall(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryStore())

	require.NoError(t, s.SetUserRoles(ctx, []string{"ROLE_ADMIN"}))
	assert.True(t, s.IsAdmin(ctx))

	require.NoError(t, s.SetUserRoles(ctx, []string{"ROLE_USER"}))
	assert.False(t, s.IsAdmin(ctx))
}

func TestSession_SetUserRoles(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := New(store)

	require.NoError(t, s.SetUserRoles(ctx, []string{"ROLE_USER", "ROLE_ADMIN"}))

	raw, ok, _ := store.Get(ctx, KeyUserRoles)
	require.True(t, ok)
	assert.JSONEq(t, `["ROLE_USER","ROLE_ADMIN"]`, raw)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, s.UserRoles(ctx))

	require.NoError(t, s.SetUserRoles(ctx, nil))
	assert.Nil(t, s.UserRoles(ctx))
	assert.False(t, s.IsAdmin(ctx))
}

func TestSession_ClearUserData(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := New(store)
			require.NoError(t, s.SetToken(ctx, "abc"))
			require.NoError(t, s.SetUserRoles(ctx, []string{"ROLE_ADMIN"}))
			require.True(t, s.IsAdmin(ctx))

			require.NoError(t, s.ClearUserData(ctx))

			assert.Empty(t, s.GetToken(ctx))
			assert.False(t, s.IsAdmin(ctx))
			assert.False(t, s.IsLoggedIn(ctx))
			assert.Nil(t, s.UserRoles(ctx))
		})
	}
}

func TestSession_FailingStoreFailsClosed(t *testing.T) {
	ctx := context.Background()
	s := New(failingStore{})

	assert.Empty(t, s.GetToken(ctx))
	assert.False(t, s.IsAdmin(ctx))
	assert.Nil(t, s.Claims(ctx))
	assert.Error(t, s.SetToken(ctx, "x"))
	assert.Error(t, s.ClearUserData(ctx))
}

func TestSession_Claims(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryStore())

	assert.Nil(t, s.Claims(ctx))
	assert.Empty(t, s.Username(ctx))

	require.NoError(t, s.SetToken(ctx, "garbled"))
	assert.Nil(t, s.Claims(ctx))

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		Subject:   "testuser",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("whatever"))
	require.NoError(t, err)

	require.NoError(t, s.SetToken(ctx, signed))
	claims := s.Claims(ctx)
	require.NotNil(t, claims)
	assert.Equal(t, "testuser", claims.Subject)
	assert.Equal(t, "testuser", s.Username(ctx))
}

func strPtr(s string) *string { return &s }
