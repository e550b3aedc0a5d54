package shared

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager(t *testing.T, ttl time.Duration) (*TokenManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewTokenManager(client, ttl), mr
}

func TestTokenIssueAndResolve(t *testing.T) {
	tm, _ := newTestTokenManager(t, time.Hour)
	ctx := context.Background()

	token, err := tm.Issue(ctx, 7, "0912345678", "agent")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := tm.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, "0912345678", identity.Phone)
	assert.Equal(t, "agent", identity.Role)
	assert.Equal(t, token, identity.Token)
}

func TestTokenExpiry(t *testing.T) {
	tm, mr := newTestTokenManager(t, time.Minute)
	ctx := context.Background()

	token, err := tm.Issue(ctx, 7, "0912345678", "agent")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = tm.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenResolveRefreshesTTL(t *testing.T) {
	tm, mr := newTestTokenManager(t, time.Minute)
	ctx := context.Background()

	token, err := tm.Issue(ctx, 7, "0912345678", "agent")
	require.NoError(t, err)

	// Touch the token just before expiry; the refresh keeps it alive.
	mr.FastForward(50 * time.Second)
	_, err = tm.Resolve(ctx, token)
	require.NoError(t, err)

	mr.FastForward(50 * time.Second)
	_, err = tm.Resolve(ctx, token)
	assert.NoError(t, err)
}

func TestTokenRevoke(t *testing.T) {
	tm, _ := newTestTokenManager(t, time.Hour)
	ctx := context.Background()

	token, err := tm.Issue(ctx, 7, "0912345678", "agent")
	require.NoError(t, err)
	require.NoError(t, tm.Revoke(ctx, token))

	_, err = tm.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	assert.NoError(t, tm.Revoke(ctx, ""))
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, FromRequest(r))

	r.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, FromRequest(r))

	r.Header.Set("Authorization", "Bearer my-token ")
	assert.Equal(t, "my-token", FromRequest(r))
}
