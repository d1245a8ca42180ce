package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"techreads/internal/backend"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// BookInput is the raw form submission for the add/edit book pages.
// Everything arrives as strings; Book turns it into a draft or a map of
// per-field messages for inline display.
type BookInput struct {
	Title           string
	Writer          string
	Publisher       string
	Price           string
	Stock           string
	GenreID         string
	ISBN            string
	Description     string
	PublicationYear string
	Condition       string
}

func Book(in BookInput) (backend.BookDraft, map[string]string) {
	errs := map[string]string{}
	var d backend.BookDraft

	d.Title = strings.TrimSpace(in.Title)
	if d.Title == "" {
		errs["title"] = "Title is required"
	} else if len(d.Title) > 200 {
		errs["title"] = "Title must be at most 200 characters"
	}

	d.Writer = strings.TrimSpace(in.Writer)
	if d.Writer == "" {
		errs["writer"] = "Writer is required"
	} else if len(d.Writer) > 100 {
		errs["writer"] = "Writer must be at most 100 characters"
	}

	d.Publisher = strings.TrimSpace(in.Publisher)
	if len(d.Publisher) > 100 {
		errs["publisher"] = "Publisher must be at most 100 characters"
	}

	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || !price.IsPositive() {
		errs["price"] = "Price must be positive"
	} else {
		d.Price = price
	}

	stock, err := strconv.Atoi(strings.TrimSpace(in.Stock))
	if err != nil || stock < 0 {
		errs["stock"] = "Stock must be non-negative"
	} else {
		d.Stock = stock
	}

	genreID, err := strconv.ParseInt(strings.TrimSpace(in.GenreID), 10, 64)
	if err != nil || genreID <= 0 {
		errs["genre_id"] = "Genre is required"
	} else {
		d.GenreID = genreID
	}

	d.ISBN = strings.TrimSpace(in.ISBN)
	if len(d.ISBN) > 20 {
		errs["isbn"] = "ISBN must be at most 20 characters"
	}

	d.Description = strings.TrimSpace(in.Description)
	if len(d.Description) > 1000 {
		errs["description"] = "Description must be at most 1000 characters"
	}

	if y := strings.TrimSpace(in.PublicationYear); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil || year < 1000 || year > time.Now().Year()+1 {
			errs["publication_year"] = "Publication year is invalid"
		} else {
			d.PublicationYear = year
		}
	}

	if cond := strings.TrimSpace(in.Condition); cond != "" {
		if cond != "new" && cond != "used" {
			errs["condition"] = "Condition must be new or used"
		} else {
			d.Condition = cond
		}
	}

	if len(errs) > 0 {
		return backend.BookDraft{}, errs
	}
	return d, nil
}

// Email does a cheap shape check before the credentials go to the backend.
func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Qty parses a cart quantity field; anything unusable becomes 1. The cart
// clamps against stock, this only guards the parse.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ID parses a numeric resource id from a path or form value.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

// Condition validates the catalog filter value; "all" and "" mean no filter.
func Condition(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "all":
		return "", true
	case "new", "used":
		return s, true
	}
	return "", false
}

// SortBy whitelists catalog sort keys, defaulting to title.
func SortBy(s string) string {
	switch strings.TrimSpace(s) {
	case "title", "title_desc", "publication_year", "price", "price_desc":
		return strings.TrimSpace(s)
	}
	return "title"
}
