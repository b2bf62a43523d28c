package devserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/alumni/internal/platform"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("k"), time.Hour)

	token, err := issuer.Issue(platform.User{ID: "u1", Email: "a@x.com", Role: platform.RoleAlumni})
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, platform.RoleAlumni, claims.Role)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenIssuerRejects(t *testing.T) {
	issuer := NewTokenIssuer([]byte("k"), time.Hour)
	good, err := issuer.Issue(platform.User{ID: "u1"})
	require.NoError(t, err)

	expired := NewTokenIssuer([]byte("k"), time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue(platform.User{ID: "u1"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "abc.def"},
		{"wrong key", mustIssue(t, "other", platform.User{ID: "u1"})},
		{"expired", old},
		{"tampered", good[:len(good)-2] + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestUserStore(t *testing.T) {
	store := NewUserStore(4)

	created, err := store.Create(Account{User: platform.User{Email: "A@x.com"}}, "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = store.Create(Account{User: platform.User{Email: "a@X.com"}}, "pw")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	got, err := store.Authenticate("a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = store.Authenticate("a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginLimiter(t *testing.T) {
	limiter := NewLoginLimiter(0.001, 2)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	assert.True(t, limiter.Allow("10.0.0.2"), "limits are per IP")
	assert.Equal(t, 2, limiter.Active())
}
