package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CIMAN01/Web-Authentication-Security/internal/auth"
	"github.com/CIMAN01/Web-Authentication-Security/internal/users"
)

func TestResolveFindOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := users.NewMemoryRepository()
	r := NewStoreResolver(repo)

	identity := &auth.Identity{
		Provider:       "google",
		ProviderUserID: "g-12345",
		Email:          "alice@example.com",
		EmailVerified:  true,
	}

	first, err := r.Resolve(ctx, identity)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.Empty(t, first.Material)

	// second sign-in reuses the record
	second, err := r.Resolve(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.GetByIdentity(ctx, "google", "g-12345")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestResolveLinksToExistingEmail(t *testing.T) {
	ctx := context.Background()
	repo := users.NewMemoryRepository()
	r := NewStoreResolver(repo)

	local, err := repo.Create(ctx, &users.User{
		Email:    "alice@example.com",
		Material: []byte("hash"),
		Policy:   "bcrypt",
	})
	require.NoError(t, err)

	resolved, err := r.Resolve(ctx, &auth.Identity{
		Provider:       "google",
		ProviderUserID: "g-12345",
		Email:          "alice@example.com",
		EmailVerified:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, local.ID, resolved.ID)

	// the local credential material survives the linking
	got, err := repo.GetByID(ctx, local.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hash"), got.Material)
}

func TestResolveRejectsUnverifiedEmailClaim(t *testing.T) {
	ctx := context.Background()
	repo := users.NewMemoryRepository()
	r := NewStoreResolver(repo)

	victim, err := repo.Create(ctx, &users.User{
		Email:    "victim@example.com",
		Material: []byte("hash"),
		Policy:   "bcrypt",
	})
	require.NoError(t, err)

	// the provider does not vouch for the claimed address, so the
	// sign-in must not land on the existing account
	_, err = r.Resolve(ctx, &auth.Identity{
		Provider:       "google",
		ProviderUserID: "attacker-sub",
		Email:          "victim@example.com",
		EmailVerified:  false,
	})
	assert.ErrorIs(t, err, ErrUnverifiedEmail)

	// no identity was attached to the victim's account
	_, err = repo.GetByIdentity(ctx, "google", "attacker-sub")
	assert.ErrorIs(t, err, users.ErrNotFound)

	got, err := repo.GetByID(ctx, victim.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ProviderUserID)
}

func TestResolveUnverifiedEmailStillCreatesFreshAccounts(t *testing.T) {
	ctx := context.Background()
	repo := users.NewMemoryRepository()
	r := NewStoreResolver(repo)

	// unverified claim over an unused address: a new federated account
	// is fine, nothing is being taken over
	u, err := r.Resolve(ctx, &auth.Identity{
		Provider:       "google",
		ProviderUserID: "g-67890",
		Email:          "newcomer@example.com",
		EmailVerified:  false,
	})
	require.NoError(t, err)
	assert.Empty(t, u.Material)

	again, err := r.Resolve(ctx, &auth.Identity{
		Provider:       "google",
		ProviderUserID: "g-67890",
		Email:          "newcomer@example.com",
		EmailVerified:  false,
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
}

func TestResolveNilIdentity(t *testing.T) {
	r := NewStoreResolver(users.NewMemoryRepository())
	_, err := r.Resolve(context.Background(), nil)
	assert.Error(t, err)
}
