package pgsql

import (
	portsrepo "github.com/circletel/debit-order-service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	orderRepo := newPgxOrderRepository(dbPool)
	mandateRepo := newPgxMandateRepository(dbPool)
	batchRepo := newPgxBatchRepository(dbPool)
	executionLogRepo := newPgxExecutionLogRepository(dbPool)
	runLockRepo := newPgxRunLockRepository(dbPool)

	return portsrepo.RepositoryProvider{
		InvoiceRepo:      invoiceRepo,
		OrderRepo:        orderRepo,
		MandateRepo:      mandateRepo,
		BatchRepo:        batchRepo,
		ExecutionLogRepo: executionLogRepo,
		RunLockRepo:      runLockRepo,
	}
}
