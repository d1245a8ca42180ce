package services

import (
	"context"
	"errors"

	"techreads/internal/backend"
	"techreads/internal/cart"
)

var ErrCartEmpty = errors.New("cart is empty")

// CheckoutService turns the session's cart into a backend transaction. The
// backend deducts stock and fixes the total; on success the cart is cleared,
// on any failure it is left untouched so the user can retry.
type CheckoutService struct {
	API   *backend.Client
	Carts *cart.Store
}

func NewCheckoutService(api *backend.Client, carts *cart.Store) *CheckoutService {
	return &CheckoutService{API: api, Carts: carts}
}

func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, creds backend.TokenSource) (int64, error) {
	c := s.Carts.Get(sessionID)
	items := c.Items()
	if len(items) == 0 {
		return 0, ErrCartEmpty
	}

	lines := make([]backend.TransactionLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, backend.TransactionLine{
			BookID:   it.Book.ID,
			Quantity: it.Quantity,
			Price:    it.Book.Price,
		})
	}

	id, err := s.API.CreateTransaction(ctx, lines, creds)
	if err != nil {
		return 0, err
	}
	c.Clear()
	return id, nil
}
