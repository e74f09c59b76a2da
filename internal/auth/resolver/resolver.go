package resolver

import (
	"context"
	"errors"

	"github.com/CIMAN01/Web-Authentication-Security/internal/auth"
	"github.com/CIMAN01/Web-Authentication-Security/internal/users"
)

// ErrUnverifiedEmail means the identity claims an email the provider has
// not verified and that email already belongs to a local account.
var ErrUnverifiedEmail = errors.New("resolver: provider has not verified the claimed email")

// Resolver decides which local user a federated identity belongs to,
// creating one when none exists. Identity-to-user mapping lives here and
// nowhere else.
type Resolver interface {
	Resolve(ctx context.Context, identity *auth.Identity) (*users.User, error)
}
