// Package store persists the one-municipality-per-chat registration.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the chat_municipio SQLite table. The first registration
// for a chat wins; later attempts keep the original until a reset.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures the
// chat_municipio table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open registration db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS chat_municipio (
		chat_id    TEXT PRIMARY KEY,
		municipio  TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create chat_municipio table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the registered municipality for a chat, or "" when the
// chat has none.
func (s *Store) Get(chatID int64) (string, error) {
	var m string
	err := s.db.QueryRow(
		`SELECT municipio FROM chat_municipio WHERE chat_id = ?`,
		strconv.FormatInt(chatID, 10),
	).Scan(&m)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get municipio for chat %d: %w", chatID, err)
	}
	return m, nil
}

// Register records municipio for the chat unless one is already
// registered (INSERT OR IGNORE — first write wins). It returns the
// name actually stored, which may be an earlier registration.
func (s *Store) Register(chatID int64, municipio string) (string, error) {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO chat_municipio(chat_id, municipio, created_at) VALUES (?, ?, ?)`,
		strconv.FormatInt(chatID, 10), municipio, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("register municipio for chat %d: %w", chatID, err)
	}
	return s.Get(chatID)
}

// Reset removes the chat's registration and reports whether one existed.
func (s *Store) Reset(chatID int64) (bool, error) {
	res, err := s.db.Exec(
		`DELETE FROM chat_municipio WHERE chat_id = ?`,
		strconv.FormatInt(chatID, 10),
	)
	if err != nil {
		return false, fmt.Errorf("reset chat %d: %w", chatID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Count returns the number of registered chats.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chat_municipio`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}
