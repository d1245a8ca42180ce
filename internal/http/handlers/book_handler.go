package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"techreads/internal/backend"
	"techreads/internal/domain"
	applog "techreads/internal/log"
	"techreads/internal/services"
	"techreads/internal/validate"
)

type BookHandler struct {
	Catalog *services.CatalogService
	Books   *services.BookService
	Auth    *services.AuthService
}

// List renders the catalog with search, condition filter, sort and paging.
func (h *BookHandler) List(c *fiber.Ctx) error {
	sid := ensureSID(c)
	creds := h.Auth.Creds(sid)

	cond, ok := validate.Condition(c.Query("condition"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "condition"})
		cond = ""
	}
	q := backend.BookQuery{
		Search:    c.Query("search"),
		Condition: cond,
		SortBy:    validate.SortBy(c.Query("sortBy")),
		Page:      c.QueryInt("page", 1),
	}

	page, err := h.Catalog.ListBooks(c.Context(), q, creds)
	if err != nil {
		return failPage(c, "books.list", err)
	}
	return render(c, "books", fiber.Map{
		"Books":      page.Data,
		"Pagination": page.Pagination,
		"Query":      q,
	})
}

func (h *BookHandler) Detail(c *fiber.Ctx) error {
	sid := ensureSID(c)

	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Book not found"})
	}
	b, err := h.Catalog.GetBook(c.Context(), id, h.Auth.Creds(sid))
	if err != nil {
		return failPage(c, "books.detail", err)
	}
	return render(c, "book", fiber.Map{"Book": b})
}

// AddForm renders an empty draft with the genre list for the select box.
func (h *BookHandler) AddForm(c *fiber.Ctx) error {
	sid := ensureSID(c)
	genres, err := h.Catalog.Genres(c.Context(), h.Auth.Creds(sid))
	if err != nil {
		return failPage(c, "books.add.genres", err)
	}
	return render(c, "book_form", fiber.Map{
		"Title":  "Add New Book",
		"Action": "/books/add",
		"Genres": genres,
		"Form":   validate.BookInput{},
		"Errors": map[string]string{},
	})
}

func (h *BookHandler) Create(c *fiber.Ctx) error {
	sid := ensureSID(c)
	creds := h.Auth.Creds(sid)

	in := bookInput(c)
	draft, errs := validate.Book(in)
	if errs != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "book.add", "fields": len(errs)})
		return h.reRenderForm(c, "Add New Book", "/books/add", in, errs, fiber.StatusBadRequest)
	}

	b, err := h.Books.Create(c.Context(), draft, creds)
	if err != nil {
		return failPage(c, "books.create", err)
	}
	applog.Audit(c, "books.create", map[string]any{"book_id": b.ID})
	return c.Redirect(fmt.Sprintf("/books/%d", b.ID))
}

func (h *BookHandler) EditForm(c *fiber.Ctx) error {
	sid := ensureSID(c)
	creds := h.Auth.Creds(sid)

	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Book not found"})
	}
	b, err := h.Catalog.GetBook(c.Context(), id, creds)
	if err != nil {
		return failPage(c, "books.edit.load", err)
	}
	genres, err := h.Catalog.Genres(c.Context(), creds)
	if err != nil {
		return failPage(c, "books.edit.genres", err)
	}
	return render(c, "book_form", fiber.Map{
		"Title":  "Edit Book",
		"Action": fmt.Sprintf("/books/edit/%d", id),
		"Genres": genres,
		"Form":   inputFromBook(b),
		"Errors": map[string]string{},
	})
}

func (h *BookHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	creds := h.Auth.Creds(sid)

	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Book not found"})
	}
	in := bookInput(c)
	draft, errs := validate.Book(in)
	if errs != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "book.edit", "fields": len(errs)})
		return h.reRenderForm(c, "Edit Book", fmt.Sprintf("/books/edit/%d", id), in, errs, fiber.StatusBadRequest)
	}

	if _, err := h.Books.Update(c.Context(), id, draft, creds); err != nil {
		return failPage(c, "books.update", err)
	}
	applog.Audit(c, "books.update", map[string]any{"book_id": id})
	return c.Redirect(fmt.Sprintf("/books/%d", id))
}

func (h *BookHandler) Delete(c *fiber.Ctx) error {
	sid := ensureSID(c)

	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Book not found"})
	}
	if err := h.Books.Delete(c.Context(), id, h.Auth.Creds(sid)); err != nil {
		return failPage(c, "books.delete", err)
	}
	applog.Audit(c, "books.delete", map[string]any{"book_id": id})
	return c.Redirect("/books")
}

// reRenderForm shows the form again with inline messages and whatever the
// user already typed. Genres are refetched so the select box survives.
func (h *BookHandler) reRenderForm(c *fiber.Ctx, title, action string, in validate.BookInput, errs map[string]string, status int) error {
	sid := ensureSID(c)
	genres, err := h.Catalog.Genres(c.Context(), h.Auth.Creds(sid))
	if err != nil {
		genres = nil // form still renders, just without options
	}
	return render(c.Status(status), "book_form", fiber.Map{
		"Title":  title,
		"Action": action,
		"Genres": genres,
		"Form":   in,
		"Errors": errs,
	})
}

func bookInput(c *fiber.Ctx) validate.BookInput {
	return validate.BookInput{
		Title:           c.FormValue("title"),
		Writer:          c.FormValue("writer"),
		Publisher:       c.FormValue("publisher"),
		Price:           c.FormValue("price"),
		Stock:           c.FormValue("stock"),
		GenreID:         c.FormValue("genre_id"),
		ISBN:            c.FormValue("isbn"),
		Description:     c.FormValue("description"),
		PublicationYear: c.FormValue("publication_year"),
		Condition:       c.FormValue("condition"),
	}
}

func inputFromBook(b domain.Book) validate.BookInput {
	in := validate.BookInput{
		Title:       b.Title,
		Writer:      b.Writer,
		Publisher:   b.Publisher,
		Price:       b.Price.String(),
		Stock:       fmt.Sprintf("%d", b.Stock),
		GenreID:     fmt.Sprintf("%d", b.GenreID),
		ISBN:        b.ISBN,
		Description: b.Description,
		Condition:   b.Condition,
	}
	if b.PublicationYear != 0 {
		in.PublicationYear = fmt.Sprintf("%d", b.PublicationYear)
	}
	return in
}
