package pgsql

import (
	"context"
	"fmt"

	"github.com/circletel/debit-order-service/internal/core/domain"
	portsrepo "github.com/circletel/debit-order-service/internal/core/ports/repositories"
	"github.com/circletel/debit-order-service/internal/models"
	"github.com/circletel/debit-order-service/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExecutionLogRepository struct {
	BaseRepository
}

// newPgxExecutionLogRepository creates a new repository for the cron run log.
func newPgxExecutionLogRepository(pool *pgxpool.Pool) portsrepo.ExecutionLogRepositoryFacade {
	return &PgxExecutionLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExecutionLogRepositoryFacade = (*PgxExecutionLogRepository)(nil)

// InsertEntry appends one execution log row. The table has no update path.
func (r *PgxExecutionLogRepository) InsertEntry(ctx context.Context, entry domain.ExecutionLogEntry) error {
	modelEntry := mapping.ToModelExecutionLogEntry(entry)

	query := `
		INSERT INTO cron_execution_log (entry_id, job_name, status, started_at, finished_at, result)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.JobName,
		modelEntry.Status,
		modelEntry.StartedAt,
		modelEntry.FinishedAt,
		modelEntry.Result,
	)
	if err != nil {
		return fmt.Errorf("failed to insert execution log entry for %s: %w", modelEntry.JobName, err)
	}
	return nil
}

// ListEntries retrieves run log rows, newest first, optionally filtered by job.
func (r *PgxExecutionLogRepository) ListEntries(ctx context.Context, jobName string, limit int, offset int) ([]domain.ExecutionLogEntry, error) {
	query := `
		SELECT entry_id, job_name, status, started_at, finished_at, result
		FROM cron_execution_log
		WHERE ($1 = '' OR job_name = $1)
		ORDER BY started_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, jobName, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list execution log entries: %w", err)
	}
	defer rows.Close()

	var modelEntries []models.ExecutionLogEntry
	for rows.Next() {
		var m models.ExecutionLogEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.JobName,
			&m.Status,
			&m.StartedAt,
			&m.FinishedAt,
			&m.Result,
		); err != nil {
			return nil, fmt.Errorf("failed to scan execution log row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating execution log rows: %w", err)
	}

	return mapping.ToDomainExecutionLogEntrySlice(modelEntries), nil
}
