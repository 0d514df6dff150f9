package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

const schema = `
CREATE TABLE IF NOT EXISTS save_archive_events (
  id             BIGINT AUTO_INCREMENT PRIMARY KEY,
  generated_name VARCHAR(128) NOT NULL,
  kind           VARCHAR(32)  NOT NULL,
  message        TEXT         NOT NULL,
  created_at     DATETIME(6)  NOT NULL,
  INDEX idx_save_archive_events_name (generated_name, created_at)
)`

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository { return &EventRepository{db: db} }

// EnsureSchema creates the events table when missing.
func (r *EventRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *EventRepository) Save(ctx context.Context, e *domain.ArchiveEvent) error {
	const q = `
INSERT INTO save_archive_events
  (generated_name, kind, message, created_at)
VALUES (?,?,?,?)
`
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	res, err := r.db.ExecContext(ctx, q, dashIfEmpty(e.GeneratedName), string(e.Kind), dashIfEmpty(e.Message), created.UTC())
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}
	return nil
}

func (r *EventRepository) ListByArchive(ctx context.Context, name string, limit int) ([]*domain.ArchiveEvent, error) {
	const q = `
SELECT id, generated_name, kind, message, created_at
FROM save_archive_events
WHERE generated_name = ?
ORDER BY created_at DESC, id DESC
LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, name, clampLimit(limit))
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
