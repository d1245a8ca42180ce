package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"techreads/internal/domain"
)

// BookQuery mirrors the list endpoint's query string. Zero values are
// omitted so the backend applies its own defaults.
type BookQuery struct {
	Search    string
	Condition string // "" | new | used
	SortBy    string // title | title_desc | publication_year | price | price_desc
	Page      int
	Limit     int
}

func (q BookQuery) encode() string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Condition != "" {
		v.Set("condition", q.Condition)
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

// BookDraft is the validated write payload for POST/PUT /books.
type BookDraft struct {
	Title           string          `json:"title"`
	Writer          string          `json:"writer"`
	Publisher       string          `json:"publisher,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	GenreID         int64           `json:"genre_id"`
	ISBN            string          `json:"isbn,omitempty"`
	Description     string          `json:"description,omitempty"`
	PublicationYear int             `json:"publication_year,omitempty"`
	Condition       string          `json:"condition,omitempty"`
}

func (c *Client) ListBooks(ctx context.Context, q BookQuery, creds TokenSource) (domain.BookPage, error) {
	var page domain.BookPage
	err := c.Get(ctx, "/books"+q.encode(), &page, creds)
	return page, err
}

func (c *Client) GetBook(ctx context.Context, id int64, creds TokenSource) (domain.Book, error) {
	var b domain.Book
	err := c.Get(ctx, fmt.Sprintf("/books/%d", id), &b, creds)
	return b, err
}

func (c *Client) CreateBook(ctx context.Context, draft BookDraft, creds TokenSource) (domain.Book, error) {
	var b domain.Book
	err := c.Post(ctx, "/books", draft, &b, creds)
	return b, err
}

func (c *Client) UpdateBook(ctx context.Context, id int64, draft BookDraft, creds TokenSource) (domain.Book, error) {
	var b domain.Book
	err := c.Put(ctx, fmt.Sprintf("/books/%d", id), draft, &b, creds)
	return b, err
}

func (c *Client) DeleteBook(ctx context.Context, id int64, creds TokenSource) error {
	return c.Delete(ctx, fmt.Sprintf("/books/%d", id), nil, creds)
}
