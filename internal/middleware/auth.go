package middleware

import (
	"context"
	"log/slog"

	"ripple/internal/identity"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UserLocal is the Fiber locals key the auth gate stores the resolved user under.
const UserLocal = "user"

// sessionCookie is the identity provider's session cookie name.
const sessionCookie = "__session"

// AuthRequired is the authentication gate for private procedures. It runs
// after the rate-limit gate, validates the session against the identity
// provider and attaches the resolved user to the request context. Every
// failure mode collapses into one UNAUTHORIZED response; the underlying
// cause is only logged.
func AuthRequired(provider identity.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		creds := identity.Credentials{
			Authorization: c.Get(fiber.HeaderAuthorization),
			SessionCookie: c.Cookies(sessionCookie),
		}

		principalID, err := provider.AuthenticateRequest(c.UserContext(), creds)
		if err != nil {
			return unauthorized(c, err)
		}

		user, err := provider.GetUser(c.UserContext(), principalID)
		if err != nil {
			return unauthorized(c, err)
		}

		c.Locals(UserLocal, user)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, user.ID))

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, cause error) error {
	Logger.WarnContext(c.UserContext(), "authentication failed", slog.String("error", cause.Error()))
	return models.RespondWithError(c, fiber.StatusUnauthorized,
		models.NewUnauthorizedError("Unable to get auth"))
}

// UserFromLocals returns the authenticated user attached by AuthRequired.
// Calling this on a route without the auth gate is a programming error.
func UserFromLocals(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(UserLocal).(*models.User)
	return user, ok
}
