package resolver

import (
	"context"
	"errors"

	"github.com/CIMAN01/Web-Authentication-Security/internal/auth"
	"github.com/CIMAN01/Web-Authentication-Security/internal/users"
)

// StoreResolver implements find-or-create against the users repository.
// Trust in the provider's claims is wholesale: a verified callback is the
// authentication, no local re-verification happens.
type StoreResolver struct {
	repo users.Repository
}

func NewStoreResolver(repo users.Repository) *StoreResolver {
	return &StoreResolver{repo: repo}
}

func (r *StoreResolver) Resolve(
	ctx context.Context,
	identity *auth.Identity,
) (*users.User, error) {

	if identity == nil {
		return nil, errors.New("resolver: identity is nil")
	}

	// 1. Known identity: reuse the record.
	u, err := r.repo.GetByIdentity(ctx, identity.Provider, identity.ProviderUserID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, users.ErrNotFound) {
		return nil, err
	}

	// 2. Existing account with the same email: link the new provider to
	// it, but only when the provider vouches for the email. An unverified
	// claim over someone else's address must never grant their account.
	if identity.EmailVerified {
		u, err = r.repo.GetByEmail(ctx, identity.Email)
		if err == nil {
			if err := r.repo.LinkIdentity(ctx, u.ID, identity.Provider, identity.ProviderUserID); err != nil {
				return nil, err
			}
			u.Provider = identity.Provider
			u.ProviderUserID = identity.ProviderUserID
			return u, nil
		}
		if !errors.Is(err, users.ErrNotFound) {
			return nil, err
		}
	}

	// 3. First sign-in: create a federated account with no local verifier
	// material.
	u, err = r.repo.CreateFederated(ctx, &users.User{
		Email:          identity.Email,
		Provider:       identity.Provider,
		ProviderUserID: identity.ProviderUserID,
	})

	// A concurrent callback for the same identity can win the insert race;
	// fall back to the lookup so both calls land on one record. When the
	// lookup also misses, the email belongs to an account this identity
	// was not allowed to link to.
	if errors.Is(err, users.ErrDuplicateEmail) {
		u, lookupErr := r.repo.GetByIdentity(ctx, identity.Provider, identity.ProviderUserID)
		if lookupErr == nil {
			return u, nil
		}
		if errors.Is(lookupErr, users.ErrNotFound) {
			return nil, ErrUnverifiedEmail
		}
		return nil, lookupErr
	}
	if err != nil {
		return nil, err
	}

	return u, nil
}
