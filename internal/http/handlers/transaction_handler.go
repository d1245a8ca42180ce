package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"techreads/internal/backend"
	"techreads/internal/cart"
	applog "techreads/internal/log"
	"techreads/internal/services"
	"techreads/internal/validate"
)

type TransactionHandler struct {
	Checkout *services.CheckoutService
	History  *services.HistoryService
	Carts    *cart.Store
	Auth     *services.AuthService
}

// Place submits the cart as a transaction. Success clears the cart and
// lands on the new transaction's detail page; failure re-renders the cart
// with the backend's message and the items untouched.
func (h *TransactionHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	id, err := h.Checkout.Checkout(c.Context(), sid, h.Auth.Creds(sid))
	if err != nil {
		if errors.Is(err, services.ErrCartEmpty) {
			return c.Redirect("/cart")
		}
		if backend.IsUnauthorized(err) {
			return c.Redirect("/auth/login")
		}
		applog.Error(c, "checkout.fail", err, nil)
		ct := h.Carts.Get(sid)
		return render(c.Status(fiber.StatusBadGateway), "cart", fiber.Map{
			"Items":      ct.Items(),
			"TotalPrice": ct.TotalPrice(),
			"TotalItems": ct.TotalItems(),
			"Error":      err.Error(),
		})
	}

	applog.Audit(c, "checkout.success", map[string]any{"transaction_id": id})
	return c.Redirect(fmt.Sprintf("/transactions/%d", id))
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	sid := ensureSID(c)

	sortBy := strings.TrimSpace(c.Query("sortBy"))
	if sortBy != "id" && sortBy != "id_desc" {
		sortBy = "id_desc"
	}
	q := backend.TransactionQuery{
		ID:     strings.TrimSpace(c.Query("id")),
		SortBy: sortBy,
		Page:   c.QueryInt("page", 1),
	}

	page, err := h.History.List(c.Context(), q, h.Auth.Creds(sid))
	if err != nil {
		return failPage(c, "transactions.list", err)
	}
	return render(c, "transactions", fiber.Map{
		"Transactions": page.Data,
		"Pagination":   page.Pagination,
		"Query":        q,
	})
}

func (h *TransactionHandler) Detail(c *fiber.Ctx) error {
	sid := ensureSID(c)

	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Transaction not found"})
	}
	tx, err := h.History.Get(c.Context(), id, h.Auth.Creds(sid))
	if err != nil {
		return failPage(c, "transactions.detail", err)
	}
	return render(c, "transaction", fiber.Map{"Tx": tx})
}
