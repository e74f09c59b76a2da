package session

import (
	"context"
	"time"
)

// Session is one server-side authenticated-browser record. It stores
// identity pointers only, never credential state.
type Session struct {
	SessionID string    // opaque token, also the cookie value
	UserID    string    // references users.id
	Email     string    // denormalized for page rendering
	CreatedAt time.Time // when the session was established
	ExpiresAt time.Time // absolute expiry
}

// Store persists session records keyed by session id. Get returns
// (nil, nil) when no record exists; Delete of a missing record is a no-op.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
