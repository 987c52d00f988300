package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zappabad/poketrade/internal/logger"
	"github.com/zappabad/poketrade/internal/trainer"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

const (
	keyToken     = "access_token"
	keyTrainerID = "trainer_id"
)

// Store caches the single local session in a SQLite key/value table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the session database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	// One connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating session schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the cached session. An expired JWT is removed and reported as
// ErrExpired.
func (s *Store) Load(ctx context.Context) (Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM settings WHERE key IN (?, ?)`, keyToken, keyTrainerID)
	if err != nil {
		return Session{}, fmt.Errorf("querying session: %w", err)
	}
	defer rows.Close()

	var sess Session
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Session{}, fmt.Errorf("scanning session: %w", err)
		}
		switch key {
		case keyToken:
			sess.Token = value
		case keyTrainerID:
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return Session{}, fmt.Errorf("parsing trainer id %q: %w", value, err)
			}
			sess.TrainerID = trainer.ID(id)
		}
	}
	if err := rows.Err(); err != nil {
		return Session{}, fmt.Errorf("iterating session: %w", err)
	}

	if !sess.Authenticated() {
		return Session{}, ErrNoSession
	}

	if sess.Expired(s.now()) {
		logger.Storage().Info("Dropping expired session", "trainer", sess.TrainerID)
		if err := s.Clear(ctx); err != nil {
			return Session{}, err
		}
		return Session{}, ErrExpired
	}

	return sess, nil
}

// Save replaces the cached session.
func (s *Store) Save(ctx context.Context, sess Session) error {
	if !sess.Authenticated() {
		return errors.New("refusing to save a session without a token")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning session tx: %w", err)
	}
	defer tx.Rollback()

	upsert := `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := tx.ExecContext(ctx, upsert, keyToken, sess.Token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	if sess.HasTrainer() {
		if _, err := tx.ExecContext(ctx, upsert, keyTrainerID, sess.TrainerID.String()); err != nil {
			return fmt.Errorf("storing trainer id: %w", err)
		}
	} else if _, err := tx.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, keyTrainerID); err != nil {
		return fmt.Errorf("clearing trainer id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}

	logger.Storage().Debug("Session saved", "trainer", sess.TrainerID)
	return nil
}

// Clear removes the cached token and trainer id. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM settings WHERE key IN (?, ?)`, keyToken, keyTrainerID)
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
