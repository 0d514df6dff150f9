package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

const schema = `
CREATE TABLE IF NOT EXISTS save_archive_events (
  id             BIGSERIAL PRIMARY KEY,
  generated_name TEXT        NOT NULL,
  kind           TEXT        NOT NULL,
  message        TEXT        NOT NULL,
  created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_save_archive_events_name
  ON save_archive_events (generated_name, created_at DESC);`

type EventRepository struct{ db *sql.DB }

func NewEventRepository(db *sql.DB) *EventRepository { return &EventRepository{db: db} }

// EnsureSchema creates the events table when missing.
func (r *EventRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// Save inserts an event and fills its ID.
func (r *EventRepository) Save(ctx context.Context, e *domain.ArchiveEvent) error {
	const q = `
INSERT INTO save_archive_events (generated_name, kind, message, created_at)
VALUES ($1,$2,$3,$4)
RETURNING id;`

	msg := e.Message
	if strings.TrimSpace(msg) == "" {
		msg = "-"
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return r.db.QueryRowContext(ctx, q, e.GeneratedName, string(e.Kind), msg, created).Scan(&e.ID)
}

// ListByArchive returns newest first.
func (r *EventRepository) ListByArchive(ctx context.Context, name string, limit int) ([]*domain.ArchiveEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, generated_name, kind, message, created_at
FROM save_archive_events
WHERE generated_name = $1
ORDER BY created_at DESC, id DESC
LIMIT $2;`
	rows, err := r.db.QueryContext(ctx, q, name, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.ArchiveEvent{}
	for rows.Next() {
		var e domain.ArchiveEvent
		var kind string
		if err := rows.Scan(&e.ID, &e.GeneratedName, &kind, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = domain.EventKind(kind)
		out = append(out, &e)
	}
	return out, rows.Err()
}
