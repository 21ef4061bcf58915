package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/circletel/debit-order-service/internal/apperrors"
	"github.com/circletel/debit-order-service/internal/core/domain"
	portsrepo "github.com/circletel/debit-order-service/internal/core/ports/repositories"
	"github.com/circletel/debit-order-service/internal/models"
	"github.com/circletel/debit-order-service/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for consumer order data.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

// FindOrdersDueForBilling retrieves billing-active debit-order orders whose
// next billing date equals the given date.
func (r *PgxOrderRepository) FindOrdersDueForBilling(ctx context.Context, billingDate time.Time) ([]domain.Order, error) {
	query := `
		SELECT order_number, customer_id, package_price, next_billing_date, billing_active,
		       payment_method, payment_status, COALESCE(failure_reason, ''),
		       created_at, created_by, last_updated_at, last_updated_by
		FROM consumer_orders
		WHERE next_billing_date = $1
		  AND billing_active = TRUE
		  AND payment_method = $2
		ORDER BY order_number;
	`
	rows, err := r.Pool.Query(ctx, query, billingDate, string(domain.PaymentMethodDebitOrder))
	if err != nil {
		return nil, fmt.Errorf("failed to query due orders for %s: %w", billingDate.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var modelOrders []models.Order
	for rows.Next() {
		var m models.Order
		if err := rows.Scan(
			&m.OrderNumber,
			&m.CustomerID,
			&m.PackagePrice,
			&m.NextBillingDate,
			&m.BillingActive,
			&m.PaymentMethod,
			&m.PaymentStatus,
			&m.FailureReason,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		modelOrders = append(modelOrders, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	return mapping.ToDomainOrderSlice(modelOrders), nil
}

// AdvanceNextBillingDate moves an order's next billing date forward after a
// successful submission.
func (r *PgxOrderRepository) AdvanceNextBillingDate(ctx context.Context, orderNumber string, nextBillingDate time.Time, updatedBy string) error {
	query := `
		UPDATE consumer_orders
		SET next_billing_date = $1, last_updated_at = $2, last_updated_by = $3
		WHERE order_number = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, nextBillingDate, time.Now(), updatedBy, orderNumber)
	if err != nil {
		return fmt.Errorf("failed to advance billing date for order %s: %w", orderNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkOrderPaid transitions an order awaiting payment to paid. Conditional
// on the current status so re-runs are no-ops.
func (r *PgxOrderRepository) MarkOrderPaid(ctx context.Context, orderNumber string, transactionCode string, paidAt time.Time) (bool, error) {
	query := `
		UPDATE consumer_orders
		SET payment_status = $1, failure_reason = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE order_number = $4 AND payment_status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query,
		string(domain.PaymentPaid),
		paidAt,
		domain.SystemActor,
		orderNumber,
		string(domain.PaymentUnpaid),
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark order %s paid: %w", orderNumber, err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkOrderDeclined transitions an order awaiting payment to declined.
func (r *PgxOrderRepository) MarkOrderDeclined(ctx context.Context, orderNumber string, transactionCode string, declinedAt time.Time) (bool, error) {
	query := `
		UPDATE consumer_orders
		SET payment_status = $1, failure_reason = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_number = $5 AND payment_status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		string(domain.PaymentDeclined),
		transactionCode,
		declinedAt,
		domain.SystemActor,
		orderNumber,
		string(domain.PaymentUnpaid),
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark order %s declined: %w", orderNumber, err)
	}
	return tag.RowsAffected() > 0, nil
}
