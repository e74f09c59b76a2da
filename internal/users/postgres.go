package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/CIMAN01/Web-Authentication-Security/internal/db"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *db.DB
}

func NewPostgresRepository(db *db.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, u *User) (*User, error) {

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, material, policy)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, u.Email, u.Material, u.Policy).Scan(&u.ID, &u.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("users: insert failed: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {

	u := &User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, material, policy, secret, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&u.ID, &u.Email, &u.Material, &u.Policy, &u.Secret, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users: lookup by email failed: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {

	u := &User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, material, policy, secret, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Material, &u.Policy, &u.Secret, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users: lookup by id failed: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) GetByIdentity(ctx context.Context, provider, providerUserID string) (*User, error) {

	u := &User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.email, u.material, u.policy, u.secret, u.created_at,
		       i.provider, i.provider_user_id
		FROM users u
		JOIN identities i ON i.user_id = u.id
		WHERE i.provider = $1
		  AND i.provider_user_id = $2
	`, provider, providerUserID).Scan(
		&u.ID, &u.Email, &u.Material, &u.Policy, &u.Secret, &u.CreatedAt,
		&u.Provider, &u.ProviderUserID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users: lookup by identity failed: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) CreateFederated(ctx context.Context, u *User) (*User, error) {

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("users: begin tx failed: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email)
		VALUES ($1)
		RETURNING id, created_at
	`, u.Email).Scan(&u.ID, &u.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("users: federated insert failed: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO identities (user_id, provider, provider_user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT identities_provider_unique DO NOTHING
	`, u.ID, u.Provider, u.ProviderUserID)

	if err != nil {
		return nil, fmt.Errorf("users: identity insert failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("users: commit failed: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) LinkIdentity(ctx context.Context, userID, provider, providerUserID string) error {

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO identities (user_id, provider, provider_user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT identities_provider_unique DO NOTHING
	`, userID, provider, providerUserID)

	if err != nil {
		return fmt.Errorf("users: identity link failed: %w", err)
	}
	return nil
}

// UpdateSecret is a single UPDATE keyed by id. Last writer wins; no update
// can vanish through a read-then-write race.
func (r *PostgresRepository) UpdateSecret(ctx context.Context, userID, secret string) error {

	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET secret = $2 WHERE id = $1
	`, userID, secret)

	if err != nil {
		return fmt.Errorf("users: secret update failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("users: secret update failed: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListSecrets(ctx context.Context) ([]string, error) {

	rows, err := r.db.QueryContext(ctx, `
		SELECT secret FROM users
		WHERE secret <> ''
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("users: secret listing failed: %w", err)
	}
	defer rows.Close()

	var secrets []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("users: secret listing failed: %w", err)
		}
		secrets = append(secrets, s)
	}

	return secrets, rows.Err()
}
