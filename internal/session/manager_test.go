package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewManager(NewRedisStore(client), ttl)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", CookieName)
	return nil
}

func TestEstablishThenResolve(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, time.Hour)

	rec := httptest.NewRecorder()
	s, err := m.Establish(ctx, rec, "user-1", "alice@example.com")
	require.NoError(t, err)

	cookie := sessionCookie(t, rec)
	assert.Equal(t, s.SessionID, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/secrets", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie.Value})

	got, err := m.Resolve(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestResolveAnonymousRequest(t *testing.T) {
	m := newTestManager(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/secrets", nil)
	got, err := m.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, got)

	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged-token"})
	got, err = m.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDestroyInvalidatesToken(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, time.Hour)

	rec := httptest.NewRecorder()
	_, err := m.Establish(ctx, rec, "user-1", "alice@example.com")
	require.NoError(t, err)
	cookie := sessionCookie(t, rec)

	logoutReq := httptest.NewRequest(http.MethodGet, "/logout", nil)
	logoutReq.AddCookie(&http.Cookie{Name: CookieName, Value: cookie.Value})

	logoutRec := httptest.NewRecorder()
	require.NoError(t, m.Destroy(ctx, logoutRec, logoutReq))

	cleared := sessionCookie(t, logoutRec)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// the old token no longer authenticates
	req := httptest.NewRequest(http.MethodGet, "/secrets", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie.Value})
	got, err := m.Resolve(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, got)

	// duplicate logout is a no-op
	require.NoError(t, m.Destroy(ctx, httptest.NewRecorder(), logoutReq))
}

func TestResolveDeletesExpiredRecords(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	s, err := m.Establish(ctx, rec, "user-1", "alice@example.com")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/secrets", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: s.SessionID})

	got, err := m.Resolve(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestKeeperOwnsCredentialChecks(t *testing.T) {
	k := NewKeeper()
	assert.Equal(t, "delegated", k.Name())

	material, err := k.Material("wonderland")
	require.NoError(t, err)

	assert.NoError(t, k.Verify("wonderland", material))
	assert.Error(t, k.Verify("wrongpass", material))
}
