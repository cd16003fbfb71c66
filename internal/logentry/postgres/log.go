package postgres

import (
	"context"

	"github.com/frahmantamala/cost-manager/internal/logentry"
	"github.com/jmoiron/sqlx"
)

// LogRepository stores log entries with raw SQL via sqlx; the logs service
// is append-and-scan only, so a full ORM buys nothing here.
type LogRepository struct {
	db *sqlx.DB
}

func NewLogRepository(db *sqlx.DB) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) Insert(ctx context.Context, entry *logentry.LogEntry) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO logs (id, service, endpoint, method, message, level, created_at)
		VALUES (:id, :service, :endpoint, :method, :message, :level, :created_at)`,
		entry)
	return err
}

func (r *LogRepository) List(ctx context.Context) ([]logentry.LogEntry, error) {
	var entries []logentry.LogEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, service, endpoint, method, message, level, created_at
		FROM logs
		ORDER BY created_at ASC, id ASC`)
	return entries, err
}
