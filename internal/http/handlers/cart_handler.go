package handlers

import (
	"github.com/gofiber/fiber/v2"

	"techreads/internal/cart"
	applog "techreads/internal/log"
	"techreads/internal/services"
	"techreads/internal/validate"
)

type CartHandler struct {
	Catalog *services.CatalogService
	Carts   *cart.Store
	Auth    *services.AuthService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	ct := h.Carts.Get(sid)
	return render(c, "cart", fiber.Map{
		"Items":      ct.Items(),
		"TotalPrice": ct.TotalPrice(),
		"TotalItems": ct.TotalItems(),
	})
}

// Add fetches the book so the cart line carries a fresh price/stock
// snapshot, then merges the requested quantity under the stock clamp.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)

	id, ok := validate.ID(c.FormValue("book_id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "book_id"})
		return c.Status(fiber.StatusBadRequest).SendString("missing book_id")
	}
	qty := validate.Qty(c.FormValue("qty"))

	b, err := h.Catalog.GetBook(c.Context(), id, h.Auth.Creds(sid))
	if err != nil {
		return failPage(c, "cart.add", err)
	}
	h.Carts.Get(sid).Add(b, qty)
	applog.Info(c, "cart.add", map[string]any{"book_id": id, "qty": qty})
	return c.Redirect("/cart")
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)

	id, ok := validate.ID(c.FormValue("book_id"))
	if !ok {
		return c.Redirect("/cart")
	}
	qty := validate.Qty(c.FormValue("qty"))
	h.Carts.Get(sid).UpdateQuantity(id, qty)
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)

	if id, ok := validate.ID(c.FormValue("book_id")); ok {
		h.Carts.Get(sid).Remove(id)
		applog.Info(c, "cart.remove", map[string]any{"book_id": id})
	}
	return c.Redirect("/cart")
}
