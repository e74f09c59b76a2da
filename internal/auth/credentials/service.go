package credentials

import (
	"context"
	"errors"

	"github.com/CIMAN01/Web-Authentication-Security/internal/users"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("account already exists")
	ErrMissingFields      = errors.New("email and password are required")
)

// Service owns local registration and credential checks. All persistence
// goes through the users repository; the storage policy is fixed at
// construction time.
type Service struct {
	repo     users.Repository
	verifier Verifier
}

func NewService(repo users.Repository, verifier Verifier) *Service {
	return &Service{repo: repo, verifier: verifier}
}

// Policy reports the active storage policy name.
func (s *Service) Policy() string {
	return s.verifier.Name()
}

func (s *Service) Register(
	ctx context.Context,
	email string,
	password string,
) (*users.User, error) {

	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	material, err := s.verifier.Material(password)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, &users.User{
		Email:    email,
		Material: material,
		Policy:   s.verifier.Name(),
	})

	if errors.Is(err, users.ErrDuplicateEmail) {
		return nil, ErrAlreadyRegistered
	}
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (*users.User, error) {

	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, users.ErrNotFound) {
		// hide whether the account exists
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	// material written under another policy, or a federated account with
	// no material at all, never matches
	if u.Policy != s.verifier.Name() || len(u.Material) == 0 {
		return nil, ErrInvalidCredentials
	}

	if err := s.verifier.Verify(password, u.Material); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
