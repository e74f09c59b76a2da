package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/require"

	"github.com/CIMAN01/Web-Authentication-Security/internal/session"
)

func newTestSessions(t *testing.T) *session.Manager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return session.NewManager(session.NewRedisStore(client), time.Hour)
}

func TestRequireAuth(t *testing.T) {
	sessions := newTestSessions(t)
	mw := NewAuthMiddleware(sessions)

	var count uint32
	protected := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "user-1", sess.UserID)
		atomic.AddUint32(&count, 1)
		http.Error(w, "OK", http.StatusOK)
	}))

	// anonymous browsers are sent to the login entry point
	apitest.Handler(protected).
		Get("/secrets").
		Expect(t).
		Status(http.StatusFound).
		Header("Location", "/login").
		End()

	rec := httptest.NewRecorder()
	s, err := sessions.Establish(context.Background(), rec, "user-1", "alice@example.com")
	require.NoError(t, err)

	apitest.Handler(protected).
		Get("/secrets").
		Cookies(apitest.NewCookie(session.CookieName).Value(s.SessionID)).
		Expect(t).
		Status(http.StatusOK).
		End()

	require.EqualValues(t, 1, count)
}
