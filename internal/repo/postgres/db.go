package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the submissions table when it does not exist
// yet. Intended for first startup; not a migration system.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return nil
	}

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS submissions (
			id            BIGSERIAL PRIMARY KEY,
			telegram_id   BIGINT NOT NULL,
			user_info     TEXT NOT NULL,
			content_type  VARCHAR(20) NOT NULL,
			caption       TEXT NOT NULL DEFAULT '',
			media_file_id TEXT,
			status        VARCHAR(20) NOT NULL DEFAULT 'pending',
			submitted_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			admin_comment TEXT
		)
	`)
	return err
}
