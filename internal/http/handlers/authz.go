package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"techreads/internal/services"
)

// ensureSID returns the session id cookie, minting one on first contact.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable behind TLS
		})
	}
	return sid
}

// RequireAuth gates a route on a stored backend token; without one the
// user lands on the login page.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" || !auth.LoggedIn(sid) {
			return c.Redirect("/auth/login")
		}
		return c.Next()
	}
}

// SessionContext stamps the locals templates read on every page: whether a
// token exists and how many items sit in the cart.
func SessionContext(deps *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			c.Locals("loggedIn", deps.Auth.LoggedIn(sid))
			c.Locals("cartCount", deps.Carts.Get(sid).TotalItems())
		}
		return c.Next()
	}
}
