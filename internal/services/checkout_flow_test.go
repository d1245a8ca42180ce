package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"techreads/internal/backend"
	"techreads/internal/cart"
	"techreads/internal/domain"
	"techreads/internal/services"
)

type staticToken string

func (s staticToken) Token(_ context.Context) (string, bool) { return string(s), s != "" }

func testBook(id int64, price int64, stock int) domain.Book {
	return domain.Book{ID: id, Title: "Book", Writer: "W", Price: decimal.NewFromInt(price), Stock: stock}
}

func TestCheckoutClearsCartAndReturnsID(t *testing.T) {
	var gotAuth string
	var gotBody map[string][]map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/transactions" {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":42}`))
	}))
	defer srv.Close()

	carts := cart.NewStore()
	svc := services.NewCheckoutService(backend.New(srv.URL), carts)

	sid := "sess-1"
	carts.Get(sid).Add(testBook(1, 100000, 5), 2)
	carts.Get(sid).Add(testBook(2, 50000, 5), 1)

	id, err := svc.Checkout(context.Background(), sid, staticToken("tok"))
	if err != nil {
		t.Fatal(err)
	}
	if id != 42 {
		t.Fatalf("want transaction 42, got %d", id)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("checkout must be authenticated, got %q", gotAuth)
	}
	if len(gotBody["items"]) != 2 {
		t.Fatalf("want 2 lines, got %v", gotBody)
	}
	if carts.Get(sid).Len() != 0 {
		t.Fatal("cart must be cleared after successful checkout")
	}
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Insufficient stock"}`))
	}))
	defer srv.Close()

	carts := cart.NewStore()
	svc := services.NewCheckoutService(backend.New(srv.URL), carts)

	sid := "sess-1"
	carts.Get(sid).Add(testBook(1, 100000, 5), 2)

	_, err := svc.Checkout(context.Background(), sid, staticToken("tok"))
	if err == nil || err.Error() != "Insufficient stock" {
		t.Fatalf("want backend message, got %v", err)
	}
	if carts.Get(sid).TotalItems() != 2 {
		t.Fatal("failed checkout must leave the cart untouched")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	carts := cart.NewStore()
	svc := services.NewCheckoutService(backend.New("http://unused"), carts)

	_, err := svc.Checkout(context.Background(), "sess-1", nil)
	if !errors.Is(err, services.ErrCartEmpty) {
		t.Fatalf("want ErrCartEmpty, got %v", err)
	}
}

func TestCatalogListDefaults(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"data":[],"pagination":{"page":0,"limit":0,"total":0,"totalPages":0}}`))
	}))
	defer srv.Close()

	svc := services.NewCatalogService(backend.New(srv.URL))
	page, err := svc.ListBooks(context.Background(), backend.BookQuery{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if query["page"][0] != "1" || query["limit"][0] != "12" {
		t.Fatalf("want page=1 limit=12, got %v", query)
	}
	if page.Pagination.TotalPages != 1 || page.Pagination.Page != 1 {
		t.Fatalf("zero pagination must normalize to page 1 of 1, got %+v", page.Pagination)
	}
}

func TestHistoryListDefaults(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"data":[],"pagination":{"page":1,"limit":10,"total":0,"totalPages":1}}`))
	}))
	defer srv.Close()

	svc := services.NewHistoryService(backend.New(srv.URL))
	if _, err := svc.List(context.Background(), backend.TransactionQuery{}, nil); err != nil {
		t.Fatal(err)
	}
	if query["sortBy"][0] != "id_desc" || query["limit"][0] != "10" {
		t.Fatalf("want id_desc/10 defaults, got %v", query)
	}
}
