package handlers_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"techreads/internal/backend"
	"techreads/internal/cart"
	"techreads/internal/credstore"
	"techreads/internal/http/handlers"
)

// newApp wires the storefront the way main does, minus rate limiting and
// CSRF so tests can post forms directly.
func newApp(t *testing.T, apiURL string) (*fiber.App, *credstore.Store, *cart.Store) {
	t.Helper()

	tokens, err := credstore.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = tokens.Close() })

	carts := cart.NewStore()
	deps := handlers.NewDeps(backend.New(apiURL), carts, tokens)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(handlers.SessionContext(deps))

	gate := handlers.RequireAuth(deps.Auth)
	app.Get("/books", gate, deps.BookHandler.List)
	app.Get("/books/:id", gate, deps.BookHandler.Detail)
	app.Get("/cart", gate, deps.CartHandler.View)
	app.Post("/cart", gate, deps.CartHandler.Add)
	app.Post("/cart/update", gate, deps.CartHandler.Update)
	app.Post("/cart/remove", gate, deps.CartHandler.Remove)
	app.Post("/checkout", gate, deps.TransactionHandler.Place)
	app.Get("/transactions", gate, deps.TransactionHandler.List)
	app.Get("/auth/login", deps.AuthHandler.LoginForm)

	return app, tokens, carts
}

func TestGateRedirectsWithoutToken(t *testing.T) {
	app, _, _ := newApp(t, "http://unused")

	req := httptest.NewRequest("GET", "/books", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("want 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/auth/login" {
		t.Fatalf("want redirect to login, got %q", loc)
	}
}

func TestCartAddThenView(t *testing.T) {
	stub := httptest.NewServer(stubBackend(t))
	defer stub.Close()

	app, tokens, _ := newApp(t, stub.URL)
	if err := tokens.Put("sid-1", "tok"); err != nil {
		t.Fatal(err)
	}

	form := strings.NewReader("book_id=1&qty=2")
	req := httptest.NewRequest("POST", "/cart", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cookie", "sid=sid-1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get("Location") != "/cart" {
		t.Fatalf("want redirect to /cart, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	req = httptest.NewRequest("GET", "/cart", nil)
	req.Header.Set("Cookie", "sid=sid-1")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, "Clean Architecture") {
		t.Fatalf("cart page missing book title; body=%s", s)
	}
	if !strings.Contains(s, "Rp 300000") {
		t.Fatalf("cart page missing subtotal for qty 2; body=%s", s)
	}
}

func TestCheckoutRedirectsToTransaction(t *testing.T) {
	stub := httptest.NewServer(stubBackend(t))
	defer stub.Close()

	app, tokens, carts := newApp(t, stub.URL)
	if err := tokens.Put("sid-1", "tok"); err != nil {
		t.Fatal(err)
	}
	carts.Get("sid-1").Add(stubBook(), 2)

	req := httptest.NewRequest("POST", "/checkout", nil)
	req.Header.Set("Cookie", "sid=sid-1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("want 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/transactions/9" {
		t.Fatalf("want redirect to the new transaction, got %q", loc)
	}
	if carts.Get("sid-1").Len() != 0 {
		t.Fatal("cart not cleared after checkout")
	}
}

func TestBooksListBackendErrorShowsRetry(t *testing.T) {
	stub := httptest.NewServer(failingBackend())
	defer stub.Close()

	app, tokens, _ := newApp(t, stub.URL)
	if err := tokens.Put("sid-1", "tok"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/books?page=1", nil)
	req.Header.Set("Cookie", "sid=sid-1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("want 502, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, "catalog on fire") {
		t.Fatalf("backend message missing; body=%s", s)
	}
	if !strings.Contains(s, "Retry") || !strings.Contains(s, "/books?page=1") {
		t.Fatalf("retry affordance missing; body=%s", s)
	}
}

func TestBookNotFoundPage(t *testing.T) {
	stub := httptest.NewServer(stubBackend(t))
	defer stub.Close()

	app, tokens, _ := newApp(t, stub.URL)
	if err := tokens.Put("sid-1", "tok"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/books/404", nil)
	req.Header.Set("Cookie", "sid=sid-1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Book not found") {
		t.Fatalf("not-found page missing message; body=%s", body)
	}
}
