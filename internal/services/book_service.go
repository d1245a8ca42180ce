package services

import (
	"context"

	"techreads/internal/backend"
	"techreads/internal/domain"
)

// BookService forwards validated book writes to the backend, which is the
// authority on ids, stock and persistence.
type BookService struct {
	API *backend.Client
}

func NewBookService(api *backend.Client) *BookService {
	return &BookService{API: api}
}

func (s *BookService) Create(ctx context.Context, draft backend.BookDraft, creds backend.TokenSource) (domain.Book, error) {
	return s.API.CreateBook(ctx, draft, creds)
}

func (s *BookService) Update(ctx context.Context, id int64, draft backend.BookDraft, creds backend.TokenSource) (domain.Book, error) {
	return s.API.UpdateBook(ctx, id, draft, creds)
}

func (s *BookService) Delete(ctx context.Context, id int64, creds backend.TokenSource) error {
	return s.API.DeleteBook(ctx, id, creds)
}
