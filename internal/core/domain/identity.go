package domain

import "context"

type accountIDKey struct{}

// WithAccountID returns a context carrying the caller's account id.
func WithAccountID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, accountIDKey{}, id)
}

// AccountIDFrom returns the account id stored by WithAccountID, or zero for
// anonymous callers.
func AccountIDFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(accountIDKey{}).(int64)
	return id
}
