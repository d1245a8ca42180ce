package services

import (
	"context"

	"techreads/internal/backend"
	"techreads/internal/domain"
)

// CatalogService reads books and genres from the backend. It owns the list
// defaults so handlers and templates never see a zero page.
type CatalogService struct {
	API *backend.Client
}

func NewCatalogService(api *backend.Client) *CatalogService {
	return &CatalogService{API: api}
}

func (s *CatalogService) ListBooks(ctx context.Context, q backend.BookQuery, creds backend.TokenSource) (domain.BookPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 12
	}
	page, err := s.API.ListBooks(ctx, q, creds)
	if err != nil {
		return domain.BookPage{}, err
	}
	if page.Pagination.TotalPages < 1 {
		page.Pagination.TotalPages = 1
	}
	if page.Pagination.Page < 1 {
		page.Pagination.Page = q.Page
	}
	return page, nil
}

func (s *CatalogService) GetBook(ctx context.Context, id int64, creds backend.TokenSource) (domain.Book, error) {
	return s.API.GetBook(ctx, id, creds)
}

func (s *CatalogService) Genres(ctx context.Context, creds backend.TokenSource) ([]domain.Genre, error) {
	return s.API.ListGenres(ctx, creds)
}
