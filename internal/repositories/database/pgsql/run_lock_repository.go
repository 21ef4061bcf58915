package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/circletel/debit-order-service/internal/apperrors"
	portsrepo "github.com/circletel/debit-order-service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRunLockRepository struct {
	BaseRepository
}

// newPgxRunLockRepository creates a new repository for per-date run claims.
func newPgxRunLockRepository(pool *pgxpool.Pool) portsrepo.RunLockRepositoryFacade {
	return &PgxRunLockRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.RunLockRepositoryFacade = (*PgxRunLockRepository)(nil)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// ClaimRun inserts the claim row for (jobName, runDate). The unique key on
// those columns turns a concurrent duplicate invocation into ErrDuplicate.
func (r *PgxRunLockRepository) ClaimRun(ctx context.Context, jobName string, runDate time.Time, runID string) error {
	query := `
		INSERT INTO debit_order_run_locks (job_name, run_date, run_id, claimed_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, jobName, runDate, runID, time.Now())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to claim run %s/%s: %w", jobName, runDate.Format("2006-01-02"), err)
	}
	return nil
}

// ReleaseRun deletes the claim row so a failed run can be retried.
func (r *PgxRunLockRepository) ReleaseRun(ctx context.Context, jobName string, runDate time.Time) error {
	query := `DELETE FROM debit_order_run_locks WHERE job_name = $1 AND run_date = $2;`
	if _, err := r.Pool.Exec(ctx, query, jobName, runDate); err != nil {
		return fmt.Errorf("failed to release run %s/%s: %w", jobName, runDate.Format("2006-01-02"), err)
	}
	return nil
}
