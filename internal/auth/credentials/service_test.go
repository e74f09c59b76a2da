package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CIMAN01/Web-Authentication-Security/internal/users"
)

func newTestService(t *testing.T) (*Service, *users.MemoryRepository) {
	t.Helper()
	repo := users.NewMemoryRepository()
	return NewService(repo, Bcrypt{}), repo
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	u, err := svc.Register(ctx, "alice@example.com", "wonderland")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	assert.Equal(t, PolicyBcrypt, u.Policy)
	assert.NotEqual(t, []byte("wonderland"), u.Material)

	got, err := svc.Authenticate(ctx, "alice@example.com", "wonderland")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// email lookup is case-insensitive
	_, err = svc.Authenticate(ctx, "ALICE@example.com", "wonderland")
	assert.NoError(t, err)
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Register(ctx, "alice@example.com", "wonderland")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateHidesUnknownAccounts(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	first, err := svc.Register(ctx, "alice@example.com", "wonderland")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice@example.com", "other-secret")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// the prior record survives untouched
	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.NoError(t, Bcrypt{}.Verify("wonderland", got.Material))
}

func TestRegisterRequiresFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Register(ctx, "", "wonderland")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Register(ctx, "alice@example.com", "")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Authenticate(ctx, "alice@example.com", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestAuthenticateRejectsForeignPolicyMaterial(t *testing.T) {
	ctx := context.Background()
	repo := users.NewMemoryRepository()

	// material written under sha256, checked under bcrypt
	sha := NewService(repo, SHA256{})
	_, err := sha.Register(ctx, "alice@example.com", "wonderland")
	require.NoError(t, err)

	bc := NewService(repo, Bcrypt{})
	_, err = bc.Authenticate(ctx, "alice@example.com", "wonderland")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsFederatedAccounts(t *testing.T) {
	ctx := context.Background()
	repo := users.NewMemoryRepository()
	svc := NewService(repo, Bcrypt{})

	_, err := repo.CreateFederated(ctx, &users.User{
		Email:          "alice@example.com",
		Provider:       "google",
		ProviderUserID: "g-12345",
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
