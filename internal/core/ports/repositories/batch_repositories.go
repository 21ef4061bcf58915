package repositories

import (
	"context"
	"time"

	"github.com/circletel/debit-order-service/internal/core/domain"
)

// BatchReader defines read operations on persisted batches and their items.
type BatchReader interface {
	// FindBatchByID retrieves a batch header by its clearing-service id.
	FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error)

	// ListBatches retrieves batch headers, newest first.
	ListBatches(ctx context.Context, limit int, offset int) ([]domain.Batch, error)

	// ListBatchItems retrieves all items of one batch.
	ListBatchItems(ctx context.Context, batchID string) ([]domain.BatchItem, error)

	// FindItemByAccountReference retrieves the most recently submitted batch
	// item carrying the given account reference.
	FindItemByAccountReference(ctx context.Context, accountReference string) (*domain.BatchItem, error)
}

// BatchWriter defines write operations on persisted batches.
type BatchWriter interface {
	// UpsertBatch persists a batch header, keyed on batch id, so that
	// recording the same logical batch twice never duplicates headers.
	UpsertBatch(ctx context.Context, batch domain.Batch) error

	// InsertBatchItems persists the line records of a batch.
	InsertBatchItems(ctx context.Context, items []domain.BatchItem) error

	// UpdateItemOutcome records a reconciliation outcome on a batch item.
	UpdateItemOutcome(ctx context.Context, batchItemID string, status domain.BatchItemStatus, transactionCode string, reconciledAt time.Time) error
}

// BatchRepositoryFacade combines all batch repository interfaces.
type BatchRepositoryFacade interface {
	BatchReader
	BatchWriter
}

// ExecutionLogRepositoryFacade persists the append-only run log.
type ExecutionLogRepositoryFacade interface {
	// InsertEntry appends one execution log row. Entries are never mutated.
	InsertEntry(ctx context.Context, entry domain.ExecutionLogEntry) error

	// ListEntries retrieves run log rows, newest first. jobName filters when
	// non-empty.
	ListEntries(ctx context.Context, jobName string, limit int, offset int) ([]domain.ExecutionLogEntry, error)
}

// RunLockRepositoryFacade implements the per-date run claim guarding against
// overlapping invocations of the same job.
type RunLockRepositoryFacade interface {
	// ClaimRun inserts the claim row for (jobName, runDate). Returns
	// apperrors.ErrDuplicate if the date is already claimed.
	ClaimRun(ctx context.Context, jobName string, runDate time.Time, runID string) error

	// ReleaseRun deletes the claim row so a failed run can be retried.
	ReleaseRun(ctx context.Context, jobName string, runDate time.Time) error
}
