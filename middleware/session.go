package middleware

import (
	"github.com/gofiber/fiber/v2"

	"expense-tracker-go-be/apperror"
	"expense-tracker-go-be/auth"
)

const identityKey = "identity"

// TokenVerifier checks a session token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// RequireSession rejects requests without a valid session cookie and
// stores the caller identity for downstream handlers.
func RequireSession(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(auth.CookieName)
		if token == "" {
			return apperror.ErrMissingToken
		}

		id, err := tokens.Verify(token)
		if err != nil {
			return apperror.ErrInvalidToken.Wrap(err)
		}

		c.Locals(identityKey, id)
		return c.Next()
	}
}

// Identity returns the caller stored by RequireSession. ok is false on
// routes that are not behind it.
func Identity(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(identityKey).(auth.Identity)
	return id, ok
}
