package ports

import (
	"context"

	"github.com/cinemind/studio-api/internal/core/domain"
)

// LoginResult is returned by AuthService.Login.
type LoginResult struct {
	Account *domain.Account
	Token   string
	// Registered is true when the login created the account.
	Registered bool
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// TokenIssuer produces the session token handed back on login.
type TokenIssuer interface {
	Issue(account *domain.Account) (string, error)
}

// PasswordPolicy turns a submitted password into its stored form.
type PasswordPolicy interface {
	Prepare(password string) (string, error)
}
