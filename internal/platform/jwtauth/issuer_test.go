package jwtauth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tend_backend/internal/feature/auth/domain/entity"
)

var testUser = &entity.User{ID: "2abc", Email: "alice@example.com"}

func TestNewIssuer_Defaults(t *testing.T) {
	t.Parallel()

	i := NewIssuer("secret", 0)
	assert.Equal(t, 24*time.Hour, i.expiration)
	assert.True(t, i.Enabled())

	assert.False(t, NewIssuer("", time.Hour).Enabled())
}

func TestIssuer_RoundTrip(t *testing.T) {
	t.Parallel()

	i := NewIssuer("my-secret-key", time.Hour)

	signed, exp, err := i.Issue("session-token", testUser, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 2*time.Second)

	sid, err := i.ParseSessionToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "session-token", sid)
}

func TestIssuer_Issue_CappedBySessionExpiry(t *testing.T) {
	t.Parallel()

	i := NewIssuer("secret", 24*time.Hour)
	sessionExp := time.Now().Add(10 * time.Minute).Truncate(time.Second)

	_, exp, err := i.Issue("sid", testUser, sessionExp)

	require.NoError(t, err)
	assert.True(t, sessionExp.Equal(exp))
}

func TestIssuer_Parse_Failures(t *testing.T) {
	t.Parallel()

	i := NewIssuer("secret", time.Hour)
	other := NewIssuer("another-secret", time.Hour)
	foreign, _, err := other.Issue("sid", testUser, time.Time{})
	require.NoError(t, err)

	expiredIssuer := NewIssuer("secret", time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiredIssuer.Issue("sid", testUser, time.Time{})
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{SessionID: "sid"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong secret", foreign},
		{"expired", expired},
		{"none algorithm", noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sid, err := i.ParseSessionToken(tt.token)
			assert.Error(t, err)
			assert.Empty(t, sid)
		})
	}
}

func TestIssuer_Disabled(t *testing.T) {
	t.Parallel()

	i := NewIssuer("", time.Hour)

	_, _, err := i.Issue("sid", testUser, time.Time{})
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = i.ParseSessionToken("anything")
	assert.ErrorIs(t, err, ErrDisabled)
}
