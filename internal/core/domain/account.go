package domain

import (
	"strings"
	"time"
)

// DefaultRole is assigned to every auto-registered account.
const DefaultRole = "Director"

// Account models a studio user. Accounts are created on first login and are
// never updated afterwards.
type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayNameFromEmail returns the local part of an email address, or the
// whole input when it has no '@'.
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
