package users

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is a mutex-guarded in-memory Repository. It backs the
// handler and resolver test suites and keeps the same uniqueness and
// atomicity rules as the Postgres implementation.
type MemoryRepository struct {
	mu         sync.Mutex
	byID       map[string]*User
	byEmail    map[string]string // lowered email -> id
	byIdentity map[string]string // provider + "\x00" + provider user id -> id
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:       make(map[string]*User),
		byEmail:    make(map[string]string),
		byIdentity: make(map[string]string),
	}
}

func identityKey(provider, providerUserID string) string {
	return provider + "\x00" + providerUserID
}

func (r *MemoryRepository) Create(ctx context.Context, u *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, ErrDuplicateEmail
	}

	stored := *u
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()

	r.byID[stored.ID] = &stored
	r.byEmail[key] = stored.ID

	out := stored
	return &out, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryRepository) GetByIdentity(ctx context.Context, provider, providerUserID string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byIdentity[identityKey(provider, providerUserID)]
	if !ok {
		return nil, ErrNotFound
	}
	out := *r.byID[id]
	// identities linked later live in the index only; mirror the join the
	// Postgres implementation returns
	out.Provider = provider
	out.ProviderUserID = providerUserID
	return &out, nil
}

func (r *MemoryRepository) CreateFederated(ctx context.Context, u *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, ErrDuplicateEmail
	}

	stored := *u
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()

	r.byID[stored.ID] = &stored
	r.byEmail[key] = stored.ID
	r.byIdentity[identityKey(u.Provider, u.ProviderUserID)] = stored.ID

	out := stored
	return &out, nil
}

func (r *MemoryRepository) LinkIdentity(ctx context.Context, userID, provider, providerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[userID]; !ok {
		return ErrNotFound
	}

	key := identityKey(provider, providerUserID)
	if _, ok := r.byIdentity[key]; ok {
		return nil
	}
	r.byIdentity[key] = userID
	return nil
}

func (r *MemoryRepository) UpdateSecret(ctx context.Context, userID, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return ErrNotFound
	}
	u.Secret = secret
	return nil
}

func (r *MemoryRepository) ListSecrets(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*User, 0, len(r.byID))
	for _, u := range r.byID {
		if u.Secret != "" {
			all = append(all, u)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	secrets := make([]string, 0, len(all))
	for _, u := range all {
		secrets = append(secrets, u.Secret)
	}
	return secrets, nil
}
