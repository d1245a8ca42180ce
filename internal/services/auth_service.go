package services

import (
	"context"

	"techreads/internal/backend"
	"techreads/internal/credstore"
)

// AuthService trades credentials for a bearer token and keeps it in the
// session token store. The backend is the only party that ever sees a
// password.
type AuthService struct {
	API    *backend.Client
	Tokens *credstore.Store
}

func NewAuthService(api *backend.Client, tokens *credstore.Store) *AuthService {
	return &AuthService{API: api, Tokens: tokens}
}

func (s *AuthService) Login(ctx context.Context, sessionID, email, password string) error {
	tok, err := s.API.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.Tokens.Put(sessionID, tok)
}

func (s *AuthService) Register(ctx context.Context, sessionID, email, username, password string) error {
	tok, err := s.API.Register(ctx, email, username, password)
	if err != nil {
		return err
	}
	return s.Tokens.Put(sessionID, tok)
}

func (s *AuthService) Logout(sessionID string) error {
	return s.Tokens.Delete(sessionID)
}

// LoggedIn reports whether the session currently holds a token.
func (s *AuthService) LoggedIn(sessionID string) bool {
	_, ok := s.Tokens.Get(sessionID)
	return ok
}

// Creds returns the per-session credential provider handed to backend calls.
func (s *AuthService) Creds(sessionID string) credstore.SessionSource {
	return s.Tokens.ForSession(sessionID)
}
