package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
)

// AccountRepository implements ports.AccountRepository on the users table.
type AccountRepository struct {
	db DBTX
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db DBTX) ports.AccountRepository {
	return &AccountRepository{db: db}
}

// FindByEmail looks an account up by its exact email.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const q = `SELECT id, name, email, password, role, created_at FROM users WHERE email = ?`

	var (
		a         domain.Account
		createdAt timestamp
	)
	err := r.db.QueryRowContext(ctx, q, email).
		Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.Role, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	a.CreatedAt = createdAt.Time
	return &a, nil
}

// Create inserts a new account. The email uniqueness constraint turns a
// concurrent duplicate into domain.ErrAccountExists.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	const q = `INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?) RETURNING id, created_at`

	out := *account
	if out.Role == "" {
		out.Role = domain.DefaultRole
	}

	var createdAt timestamp
	err := r.db.QueryRowContext(ctx, q, out.Name, out.Email, out.Password, out.Role).
		Scan(&out.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	out.CreatedAt = createdAt.Time
	return &out, nil
}

// Count returns the number of registered accounts.
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}
