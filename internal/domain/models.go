package domain

import "github.com/shopspring/decimal"

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Book struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Writer          string          `json:"writer"`
	Publisher       string          `json:"publisher,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	GenreID         int64           `json:"genre_id"`
	Genre           *Genre          `json:"genre,omitempty"`
	ISBN            string          `json:"isbn,omitempty"`
	Description     string          `json:"description,omitempty"`
	PublicationYear int             `json:"publication_year,omitempty"`
	Condition       string          `json:"condition,omitempty"` // new | used
}

type Transaction struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	TotalPrice decimal.Decimal   `json:"total_price"`
	CreatedAt  string            `json:"created_at"`
	Items      []TransactionItem `json:"items,omitempty"`
}

type TransactionItem struct {
	ID            int64           `json:"id"`
	TransactionID int64           `json:"transaction_id"`
	BookID        int64           `json:"book_id"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Book          *Book           `json:"book,omitempty"`
}

// Subtotal is price*quantity for one rendered line.
func (ti TransactionItem) Subtotal() decimal.Decimal {
	return ti.Price.Mul(decimal.NewFromInt(int64(ti.Quantity)))
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }
func (p Pagination) Prev() int     { return p.Page - 1 }
func (p Pagination) Next() int     { return p.Page + 1 }

type BookPage struct {
	Data       []Book     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type TransactionPage struct {
	Data       []Transaction `json:"data"`
	Pagination Pagination    `json:"pagination"`
}
