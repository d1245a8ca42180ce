package backend

import (
	"context"

	"techreads/internal/domain"
)

func (c *Client) ListGenres(ctx context.Context, creds TokenSource) ([]domain.Genre, error) {
	var genres []domain.Genre
	err := c.Get(ctx, "/genres", &genres, creds)
	return genres, err
}
