package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"techreads/internal/domain"
)

// TransactionLine is one purchased position as the backend expects it:
// the price is the one the buyer saw, so the backend can flag drift.
type TransactionLine struct {
	BookID   int64           `json:"book_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type TransactionQuery struct {
	ID     string // exact-id search, kept as typed by the user
	SortBy string // id | id_desc
	Page   int
	Limit  int
}

func (q TransactionQuery) encode() string {
	v := url.Values{}
	if q.ID != "" {
		v.Set("id", q.ID)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// CreateTransaction submits a purchase and returns the new transaction id.
func (c *Client) CreateTransaction(ctx context.Context, lines []TransactionLine, creds TokenSource) (int64, error) {
	body := struct {
		Items []TransactionLine `json:"items"`
	}{Items: lines}
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.Post(ctx, "/transactions", body, &out, creds); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) ListTransactions(ctx context.Context, q TransactionQuery, creds TokenSource) (domain.TransactionPage, error) {
	var page domain.TransactionPage
	err := c.Get(ctx, "/transactions"+q.encode(), &page, creds)
	return page, err
}

func (c *Client) GetTransaction(ctx context.Context, id int64, creds TokenSource) (domain.Transaction, error) {
	var tx domain.Transaction
	err := c.Get(ctx, fmt.Sprintf("/transactions/%d", id), &tx, creds)
	return tx, err
}
