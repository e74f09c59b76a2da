package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("users: not found")
	ErrDuplicateEmail = errors.New("users: email already registered")
)

// Repository persists user accounts. Email lookups are case-insensitive.
// UpdateSecret must be a single atomic write keyed by user id so that
// concurrent submissions cannot lose each other through a stale read.
type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)

	GetByIdentity(ctx context.Context, provider, providerUserID string) (*User, error)
	CreateFederated(ctx context.Context, u *User) (*User, error)
	// LinkIdentity attaches a provider identity to an existing user.
	// Linking the same identity twice is a no-op.
	LinkIdentity(ctx context.Context, userID, provider, providerUserID string) error

	UpdateSecret(ctx context.Context, userID, secret string) error
	ListSecrets(ctx context.Context) ([]string, error)
}
