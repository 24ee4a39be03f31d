package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"petcare-web/internal/session"

	"github.com/jmoiron/sqlx"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS web_sessions (
	sid        TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (sid, key)
)`

type SessionStore struct {
	db *sqlx.DB
}

func NewSessionStore(db *sqlx.DB) *SessionStore {
	return &SessionStore{db: db}
}

// EnsureSchema crea la tabla web_sessions si no existe.
func (s *SessionStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schemaSQL)
	return err
}

func (s *SessionStore) Get(ctx context.Context, sid string, key session.Key) (string, bool, error) {
	sid = strings.TrimSpace(sid)
	if sid == "" {
		return "", false, session.ErrInvalidSessionID
	}

	var value string
	err := s.db.GetContext(ctx, &value, `
		SELECT value FROM web_sessions WHERE sid = $1 AND key = $2
	`, sid, string(key))
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SessionStore) Set(ctx context.Context, sid string, key session.Key, value string) error {
	sid = strings.TrimSpace(sid)
	if sid == "" {
		return session.ErrInvalidSessionID
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO web_sessions (sid, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (sid, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, sid, string(key), value)
	return err
}

func (s *SessionStore) Delete(ctx context.Context, sid string, keys ...session.Key) error {
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, string(k))
	}

	q, args, err := sqlx.In(`DELETE FROM web_sessions WHERE sid = ? AND key IN (?)`, sid, names)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(q), args...)
	return err
}

func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM web_sessions WHERE sid = $1`, sid)
	return err
}
