package services

import (
	"context"

	"techreads/internal/backend"
	"techreads/internal/domain"
)

// HistoryService reads past transactions. Render-only: nothing here mutates
// backend state.
type HistoryService struct {
	API *backend.Client
}

func NewHistoryService(api *backend.Client) *HistoryService {
	return &HistoryService{API: api}
}

func (s *HistoryService) List(ctx context.Context, q backend.TransactionQuery, creds backend.TokenSource) (domain.TransactionPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.SortBy == "" {
		q.SortBy = "id_desc"
	}
	page, err := s.API.ListTransactions(ctx, q, creds)
	if err != nil {
		return domain.TransactionPage{}, err
	}
	if page.Pagination.TotalPages < 1 {
		page.Pagination.TotalPages = 1
	}
	return page, nil
}

func (s *HistoryService) Get(ctx context.Context, id int64, creds backend.TokenSource) (domain.Transaction, error) {
	return s.API.GetTransaction(ctx, id, creds)
}
