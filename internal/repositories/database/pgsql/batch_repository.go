package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/circletel/debit-order-service/internal/apperrors"
	"github.com/circletel/debit-order-service/internal/core/domain"
	portsrepo "github.com/circletel/debit-order-service/internal/core/ports/repositories"
	"github.com/circletel/debit-order-service/internal/models"
	"github.com/circletel/debit-order-service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBatchRepository struct {
	BaseRepository
}

// newPgxBatchRepository creates a new repository for debit order batch data.
func newPgxBatchRepository(pool *pgxpool.Pool) portsrepo.BatchRepositoryFacade {
	return &PgxBatchRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BatchRepositoryFacade = (*PgxBatchRepository)(nil)

const batchColumns = `batch_id, batch_name, item_count, total_amount, status, submitted_at,
	created_at, created_by, last_updated_at, last_updated_by`

// UpsertBatch persists a batch header keyed on the clearing-service batch id.
// Re-recording the same batch (retried recorder call) updates the existing
// row instead of duplicating it.
func (r *PgxBatchRepository) UpsertBatch(ctx context.Context, batch domain.Batch) error {
	modelBatch := mapping.ToModelBatch(batch)

	query := `
		INSERT INTO debit_order_batches (batch_id, batch_name, item_count, total_amount, status, submitted_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (batch_id) DO UPDATE SET
			batch_name = EXCLUDED.batch_name,
			item_count = EXCLUDED.item_count,
			total_amount = EXCLUDED.total_amount,
			status = EXCLUDED.status,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		modelBatch.BatchID,
		modelBatch.BatchName,
		modelBatch.ItemCount,
		modelBatch.TotalAmount,
		modelBatch.Status,
		modelBatch.SubmittedAt,
		modelBatch.CreatedAt,
		modelBatch.CreatedBy,
		modelBatch.LastUpdatedAt,
		modelBatch.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert batch %s: %w", modelBatch.BatchID, err)
	}
	return nil
}

// InsertBatchItems persists the line records of a batch in one round trip.
func (r *PgxBatchRepository) InsertBatchItems(ctx context.Context, items []domain.BatchItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO debit_order_batch_items (batch_item_id, batch_id, account_reference, amount, action_date, customer_id, invoice_number, order_number, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelBatchItem(item)
		batch.Queue(query,
			m.BatchItemID,
			m.BatchID,
			m.AccountReference,
			m.Amount,
			m.ActionDate,
			m.CustomerID,
			m.InvoiceNumber,
			m.OrderNumber,
			m.Status,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()
	for range items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert batch items: %w", err)
		}
	}
	return nil
}

// UpdateItemOutcome records a reconciliation outcome on a batch item.
// Writing the same outcome twice leaves the row unchanged, which is what
// makes re-running reconciliation for a date safe.
func (r *PgxBatchRepository) UpdateItemOutcome(ctx context.Context, batchItemID string, status domain.BatchItemStatus, transactionCode string, reconciledAt time.Time) error {
	query := `
		UPDATE debit_order_batch_items
		SET status = $1, transaction_code = $2,
		    reconciled_at = COALESCE(reconciled_at, $3),
		    last_updated_at = $3, last_updated_by = $4
		WHERE batch_item_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, string(status), transactionCode, reconciledAt, domain.SystemActor, batchItemID)
	if err != nil {
		return fmt.Errorf("failed to update outcome for batch item %s: %w", batchItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindBatchByID retrieves a batch header by its clearing-service id.
func (r *PgxBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM debit_order_batches WHERE batch_id = $1;`

	var m models.Batch
	err := r.Pool.QueryRow(ctx, query, batchID).Scan(
		&m.BatchID,
		&m.BatchName,
		&m.ItemCount,
		&m.TotalAmount,
		&m.Status,
		&m.SubmittedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find batch %s: %w", batchID, err)
	}

	domainBatch := mapping.ToDomainBatch(m)
	return &domainBatch, nil
}

// ListBatches retrieves batch headers, newest first.
func (r *PgxBatchRepository) ListBatches(ctx context.Context, limit int, offset int) ([]domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM debit_order_batches ORDER BY submitted_at DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var modelBatches []models.Batch
	for rows.Next() {
		var m models.Batch
		if err := rows.Scan(
			&m.BatchID,
			&m.BatchName,
			&m.ItemCount,
			&m.TotalAmount,
			&m.Status,
			&m.SubmittedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan batch row: %w", err)
		}
		modelBatches = append(modelBatches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batch rows: %w", err)
	}

	return mapping.ToDomainBatchSlice(modelBatches), nil
}

const batchItemColumns = `batch_item_id, batch_id, account_reference, amount, action_date, customer_id,
	COALESCE(invoice_number, ''), COALESCE(order_number, ''), status, COALESCE(transaction_code, ''),
	reconciled_at, created_at, created_by, last_updated_at, last_updated_by`

func scanBatchItem(row pgx.Row) (models.BatchItem, error) {
	var m models.BatchItem
	err := row.Scan(
		&m.BatchItemID,
		&m.BatchID,
		&m.AccountReference,
		&m.Amount,
		&m.ActionDate,
		&m.CustomerID,
		&m.InvoiceNumber,
		&m.OrderNumber,
		&m.Status,
		&m.TransactionCode,
		&m.ReconciledAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// ListBatchItems retrieves all items of one batch.
func (r *PgxBatchRepository) ListBatchItems(ctx context.Context, batchID string) ([]domain.BatchItem, error) {
	query := `SELECT ` + batchItemColumns + ` FROM debit_order_batch_items WHERE batch_id = $1 ORDER BY account_reference;`

	rows, err := r.Pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for batch %s: %w", batchID, err)
	}
	defer rows.Close()

	var modelItems []models.BatchItem
	for rows.Next() {
		m, err := scanBatchItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch item row: %w", err)
		}
		modelItems = append(modelItems, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batch item rows: %w", err)
	}

	return mapping.ToDomainBatchItemSlice(modelItems), nil
}

// FindItemByAccountReference retrieves the most recently submitted batch item
// carrying the given account reference. Statement lines match on this.
func (r *PgxBatchRepository) FindItemByAccountReference(ctx context.Context, accountReference string) (*domain.BatchItem, error) {
	query := `SELECT ` + batchItemColumns + ` FROM debit_order_batch_items WHERE account_reference = $1 ORDER BY created_at DESC LIMIT 1;`

	m, err := scanBatchItem(r.Pool.QueryRow(ctx, query, accountReference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find batch item by reference %s: %w", accountReference, err)
	}

	domainItem := mapping.ToDomainBatchItem(m)
	return &domainItem, nil
}
