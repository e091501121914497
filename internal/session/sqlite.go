package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"escrowmart-web/internal/models"
)

// SQLiteStore persists sessions in a local sqlite database so logins survive
// gateway restarts, the way browser-local storage survives page loads.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) the session database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			token TEXT NOT NULL DEFAULT '',
			user_json TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMP NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate session database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get retrieves a session by ID, or (nil, nil) if absent
func (s *SQLiteStore) Get(id string) (*Session, error) {
	var (
		token     string
		userJSON  string
		updatedAt time.Time
	)

	query := "SELECT token, user_json, updated_at FROM sessions WHERE id = ?"
	err := s.db.QueryRow(query, id).Scan(&token, &userJSON, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	sess := &Session{ID: id, Token: token, UpdatedAt: updatedAt}
	if userJSON != "" {
		var user models.User
		if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
			return nil, fmt.Errorf("failed to decode cached user: %w", err)
		}
		sess.User = &user
	}

	return sess, nil
}

// Save inserts or replaces a session
func (s *SQLiteStore) Save(sess *Session) error {
	userJSON := ""
	if sess.User != nil {
		data, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("failed to encode cached user: %w", err)
		}
		userJSON = string(data)
	}

	query := `
		INSERT INTO sessions (id, token, user_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_json = excluded.user_json,
			updated_at = excluded.updated_at
	`
	_, err := s.db.Exec(query, sess.ID, sess.Token, userJSON, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Clear removes the stored credentials for a session. Clearing an unknown
// session is a no-op.
func (s *SQLiteStore) Clear(id string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
