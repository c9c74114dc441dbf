package ports

import (
	"context"

	"github.com/cinemind/studio-api/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// FindByEmail returns domain.ErrAccountNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// Create inserts the account and returns it with its generated fields
	// populated. A duplicate email yields domain.ErrAccountExists.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Count(ctx context.Context) (int64, error)
}
