package handlers_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"techreads/internal/domain"
)

func stubBook() domain.Book {
	return domain.Book{
		ID:     1,
		Title:  "Clean Architecture",
		Writer: "Robert C. Martin",
		Price:  decimal.NewFromInt(150000),
		Stock:  5,
	}
}

// stubBackend plays the remote books API for handler tests: one known book,
// a happy-path transaction endpoint, 404 for everything else.
func stubBackend(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /books/1", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"title":"Clean Architecture","writer":"Robert C. Martin","price":150000,"stock":5,"genre_id":3}`))
	})

	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":1,"title":"Clean Architecture","writer":"Robert C. Martin","price":150000,"stock":5,"genre_id":3}],"pagination":{"page":1,"limit":12,"total":1,"totalPages":1}}`))
	})

	mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":9}`))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Book not found"}`))
	})

	return mux
}

// failingBackend rejects everything with a recognizable message.
func failingBackend() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"catalog on fire"}`))
	})
}
