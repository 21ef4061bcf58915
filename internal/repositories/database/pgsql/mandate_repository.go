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

type PgxMandateRepository struct {
	BaseRepository
}

// newPgxMandateRepository creates a new repository for payment mandate data.
func newPgxMandateRepository(pool *pgxpool.Pool) portsrepo.MandateReader {
	return &PgxMandateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.MandateReader = (*PgxMandateRepository)(nil)

// FindMandatesByCustomer retrieves all payment mandates for a customer.
// Eligibility filtering happens in the collector, not here, so skipped
// candidates can be reported with their actual mandate state.
func (r *PgxMandateRepository) FindMandatesByCustomer(ctx context.Context, customerID string) ([]domain.PaymentMandate, error) {
	query := `
		SELECT mandate_id, customer_id, method_type, mandate_status, is_active, verified,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM customer_payment_methods
		WHERE customer_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mandates for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	var modelMandates []models.PaymentMandate
	for rows.Next() {
		var m models.PaymentMandate
		if err := rows.Scan(
			&m.MandateID,
			&m.CustomerID,
			&m.MethodType,
			&m.MandateStatus,
			&m.IsActive,
			&m.Verified,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan mandate row: %w", err)
		}
		modelMandates = append(modelMandates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mandate rows: %w", err)
	}

	return mapping.ToDomainMandateSlice(modelMandates), nil
}
