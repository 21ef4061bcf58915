package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/circletel/debit-order-service/internal/core/domain"
	portsrepo "github.com/circletel/debit-order-service/internal/core/ports/repositories"
	"github.com/circletel/debit-order-service/internal/models"
	"github.com/circletel/debit-order-service/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for customer invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// FindDueDebitOrderInvoices retrieves unpaid debit-order invoices due on the given date.
func (r *PgxInvoiceRepository) FindDueDebitOrderInvoices(ctx context.Context, dueDate time.Time) ([]domain.Invoice, error) {
	query := `
		SELECT invoice_number, customer_id, total_amount, due_date, status, payment_method,
		       COALESCE(failure_reason, ''), created_at, created_by, last_updated_at, last_updated_by
		FROM customer_invoices
		WHERE due_date = $1
		  AND status = $2
		  AND payment_method = $3
		ORDER BY invoice_number;
	`
	rows, err := r.Pool.Query(ctx, query, dueDate, string(domain.PaymentUnpaid), string(domain.PaymentMethodDebitOrder))
	if err != nil {
		return nil, fmt.Errorf("failed to query due invoices for %s: %w", dueDate.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var modelInvoices []models.Invoice
	for rows.Next() {
		var m models.Invoice
		if err := rows.Scan(
			&m.InvoiceNumber,
			&m.CustomerID,
			&m.TotalAmount,
			&m.DueDate,
			&m.Status,
			&m.PaymentMethod,
			&m.FailureReason,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		modelInvoices = append(modelInvoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}

	return mapping.ToDomainInvoiceSlice(modelInvoices), nil
}

// MarkInvoicePaid transitions an unpaid invoice to paid. The status guard in
// the WHERE clause makes reconciliation re-runs and racing admin edits
// no-ops rather than overwrites.
func (r *PgxInvoiceRepository) MarkInvoicePaid(ctx context.Context, invoiceNumber string, transactionCode string, paidAt time.Time) (bool, error) {
	query := `
		UPDATE customer_invoices
		SET status = $1, failure_reason = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE invoice_number = $4 AND status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query,
		string(domain.PaymentPaid),
		paidAt,
		domain.SystemActor,
		invoiceNumber,
		string(domain.PaymentUnpaid),
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark invoice %s paid: %w", invoiceNumber, err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkInvoiceDeclined transitions an unpaid invoice to declined, keeping the
// failure transaction code for support follow-up.
func (r *PgxInvoiceRepository) MarkInvoiceDeclined(ctx context.Context, invoiceNumber string, transactionCode string, declinedAt time.Time) (bool, error) {
	query := `
		UPDATE customer_invoices
		SET status = $1, failure_reason = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_number = $5 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		string(domain.PaymentDeclined),
		transactionCode,
		declinedAt,
		domain.SystemActor,
		invoiceNumber,
		string(domain.PaymentUnpaid),
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark invoice %s declined: %w", invoiceNumber, err)
	}
	return tag.RowsAffected() > 0, nil
}
