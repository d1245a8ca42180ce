package handlers

import (
	"github.com/gofiber/fiber/v2"

	"techreads/internal/backend"
	applog "techreads/internal/log"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if in, ok := c.Locals("loggedIn").(bool); ok {
		data["LoggedIn"] = in
	}
	if n, ok := c.Locals("cartCount").(int); ok {
		data["CartCount"] = n
	}
	if tok, ok := c.Locals("CSRFToken").(string); ok && tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// failPage is the shared landing spot for backend errors on rendered pages:
// expired credentials restart at login, missing entities get the not-found
// page, anything else gets the message with a retry link back to the same URL.
func failPage(c *fiber.Ctx, action string, err error) error {
	if backend.IsUnauthorized(err) {
		applog.Security(c, action+".unauthorized", nil)
		return c.Redirect("/auth/login")
	}
	if backend.IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": err.Error()})
	}
	applog.Error(c, action, err, nil)
	return render(c.Status(fiber.StatusBadGateway), "error", fiber.Map{
		"Message": err.Error(),
		"Retry":   c.OriginalURL(),
	})
}
