package session

import (
	"context"
	"net/http"
	"time"
)

// Manager owns the session state transitions: minting a record on
// successful authentication, validating it on protected requests, and
// destroying it on logout. Handlers never touch the store or the cookie
// directly.
type Manager struct {
	store Store
	ttl   time.Duration
	opts  CookieOptions
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		ttl:   ttl,
		opts: CookieOptions{
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Establish moves the browser from Anonymous to Authenticated: a fresh
// opaque token, a server-side record with absolute expiry, and an
// HttpOnly cookie carrying the token.
func (m *Manager) Establish(
	ctx context.Context,
	w http.ResponseWriter,
	userID string,
	email string,
) (*Session, error) {

	sessionID, err := GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := Session{
		SessionID: sessionID,
		UserID:    userID,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}

	SetCookie(w, sessionID, s.ExpiresAt, m.opts)
	return &s, nil
}

// Resolve returns the live session for the request, or nil when the
// request is anonymous. Expired records are deleted on touch so a stale
// token can never authenticate again.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (*Session, error) {

	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	s, err := m.store.Get(ctx, cookie.Value)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}

	if time.Now().After(s.ExpiresAt) {
		_ = m.store.Delete(ctx, s.SessionID)
		return nil, nil
	}

	return s, nil
}

// Destroy tears the session down: the record is deleted and the cookie
// invalidated. Destroying an already-destroyed session is a no-op.
func (m *Manager) Destroy(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
) error {

	cookie, err := r.Cookie(CookieName)
	if err == nil && cookie.Value != "" {
		if err := m.store.Delete(ctx, cookie.Value); err != nil {
			return err
		}
	}

	ClearCookie(w, m.opts)
	return nil
}
