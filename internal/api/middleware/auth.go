// Package middleware holds the echo middleware specific to the studio API.
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinemind/studio-api/internal/core/domain"
)

// ContextKeyAccountID is the echo context key set by Identify.
const ContextKeyAccountID = "account_id"

// TokenVerifier resolves a bearer token to an account id.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// Identify attaches the caller's account id to the request when it presents
// a valid bearer token. Requests without one, or with a token that does not
// verify, continue anonymously: no route requires authentication.
func Identify(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if verifier == nil {
				return next(c)
			}

			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return next(c)
			}

			id, err := verifier.Verify(token)
			if err != nil || id <= 0 {
				return next(c)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithAccountID(req.Context(), id)))
			c.Set(ContextKeyAccountID, id)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
