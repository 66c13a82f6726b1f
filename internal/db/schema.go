package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Events and signups are stored as JSON documents, Firestore-style. The
// start_at column is derived from the document purely for ordering; it is
// null when the stored start could not be parsed, and such rows sort last.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id         TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		start_at   TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS events_start_at_idx ON events (start_at ASC NULLS LAST)`,
	`CREATE TABLE IF NOT EXISTS signups (
		id         TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		event_id   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS signups_event_id_idx ON signups (event_id)`,
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		_, err := pool.Exec(ctx, stmt)

		if err != nil {
			return err
		}
	}

	return nil
}
