package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"techreads/internal/cart"
	applog "techreads/internal/log"
	"techreads/internal/services"
	"techreads/internal/validate"
)

type AuthHandler struct {
	Auth  *services.AuthService
	Carts *cart.Store
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)

	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_email_format"})
		return render(c.Status(fiber.StatusUnauthorized), "login", fiber.Map{"Err": "Invalid email or password"})
	}

	if err := h.Auth.Login(c.Context(), sid, email, c.FormValue("password")); err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return render(c.Status(fiber.StatusUnauthorized), "login", fiber.Map{"Err": "Invalid email or password"})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/books")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sid := ensureSID(c)

	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return render(c.Status(fiber.StatusBadRequest), "register", fiber.Map{"Err": "A valid email is required"})
	}
	password := c.FormValue("password")
	if len(password) < 8 {
		return render(c.Status(fiber.StatusBadRequest), "register", fiber.Map{"Err": "Password must be at least 8 characters"})
	}

	if err := h.Auth.Register(c.Context(), sid, email, c.FormValue("username"), password); err != nil {
		applog.Security(c, "auth.register.fail", map[string]any{"email": email})
		return render(c.Status(fiber.StatusBadRequest), "register", fiber.Map{"Err": err.Error()})
	}

	applog.Audit(c, "auth.register.success", map[string]any{"email": email})
	return c.Redirect("/books")
}

// Logout drops the stored token and the session's cart, then expires the
// cookie so the next visit starts a clean session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	h.Carts.Drop(sid)

	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/auth/login")
}
