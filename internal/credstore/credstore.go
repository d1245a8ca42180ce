package credstore

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store keeps one bearer token per session id in sqlite. The token is read
// fresh on every authenticated backend call and removed on logout, so a
// rotated token takes effect without restarting anything.
type Store struct {
	db *sqlx.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS tokens(
  session_id TEXT PRIMARY KEY,
  token      TEXT NOT NULL,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

func (s *Store) Put(sessionID, token string) error {
	_, err := s.db.Exec(`
	  INSERT INTO tokens(session_id, token, updated_at) VALUES(?,?,?)
	  ON CONFLICT(session_id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at
	`, sessionID, token, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) Get(sessionID string) (string, bool) {
	var tok string
	if err := s.db.Get(&tok, `SELECT token FROM tokens WHERE session_id = ?`, sessionID); err != nil {
		return "", false
	}
	return tok, tok != ""
}

func (s *Store) Delete(sessionID string) error {
	_, err := s.db.Exec(`DELETE FROM tokens WHERE session_id = ?`, sessionID)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// ForSession binds the store to one session as a credential provider for
// the backend client.
func (s *Store) ForSession(sessionID string) SessionSource {
	return SessionSource{store: s, sid: sessionID}
}

// SessionSource reads the stored token fresh on each call.
type SessionSource struct {
	store *Store
	sid   string
}

// Token satisfies the backend client's TokenSource.
func (t SessionSource) Token(_ context.Context) (string, bool) {
	return t.store.Get(t.sid)
}
