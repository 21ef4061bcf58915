package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/circletel/debit-order-service/internal/apperrors"
	"github.com/circletel/debit-order-service/internal/core/domain"
	portsrepo "github.com/circletel/debit-order-service/internal/core/ports/repositories"
	portssvc "github.com/circletel/debit-order-service/internal/core/ports/services"
	"github.com/circletel/debit-order-service/internal/middleware"
)

type reconciliationService struct {
	clearing     portssvc.ClearingClient
	batchRepo    portsrepo.BatchRepositoryFacade
	invoiceRepo  portsrepo.InvoiceWriter
	orderRepo    portsrepo.OrderWriter
	executionLog portssvc.ExecutionLogSvc
}

// NewReconciliationService creates the settlement reconciliation pipeline.
func NewReconciliationService(
	clearing portssvc.ClearingClient,
	batchRepo portsrepo.BatchRepositoryFacade,
	invoiceRepo portsrepo.InvoiceWriter,
	orderRepo portsrepo.OrderWriter,
	executionLog portssvc.ExecutionLogSvc,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		clearing:     clearing,
		batchRepo:    batchRepo,
		invoiceRepo:  invoiceRepo,
		orderRepo:    orderRepo,
		executionLog: executionLog,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// Run reconciles the settlement statement for settlementDate against the
// recorded batch items.
//
// Per-transaction failures never abort the run; each transaction is handled
// independently and failures accumulate in the result's error list. Only a
// missing configuration or an unreadable statement fails the whole run. The
// statement itself is never persisted.
func (s *reconciliationService) Run(ctx context.Context, settlementDate time.Time) (*domain.ReconciliationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	startedAt := time.Now()
	result := &domain.ReconciliationResult{
		Date:   settlementDate.Format("2006-01-02"),
		Errors: []string{},
	}

	if !s.clearing.IsConfigured() {
		return s.fail(ctx, result, startedAt, "clearing service not configured"), nil
	}

	statement, err := s.clearing.FetchStatement(ctx, settlementDate)
	if err != nil {
		return s.fail(ctx, result, startedAt, fmt.Sprintf("failed to fetch statement: %v", err)), nil
	}
	logger.Info("Statement fetched",
		slog.String("date", result.Date),
		slog.Int("transactions", len(statement.Transactions)))

	for _, txn := range statement.Transactions {
		s.reconcileTransaction(ctx, result, txn, settlementDate)
	}

	if len(result.Errors) > 0 {
		result.Status = domain.RunCompletedWithErrors
	} else {
		result.Status = domain.RunCompleted
	}
	s.executionLog.Record(ctx, domain.JobReconcileDebitOrders, result.Status, startedAt, result)
	return result, nil
}

// reconcileTransaction matches one statement line onto a recorded batch item
// and propagates the outcome to the item's origin invoice or order.
func (s *reconciliationService) reconcileTransaction(ctx context.Context, result *domain.ReconciliationResult, txn domain.StatementTransaction, settlementDate time.Time) {
	logger := middleware.GetLoggerFromCtx(ctx)
	result.TotalProcessed++

	outcome := domain.ClassifyTransactionCode(txn.TransactionCode)
	if outcome == domain.OutcomeUnclassified {
		// Unknown codes must not move any state; they are left for review.
		result.Unclassified++
		logger.Warn("Unclassified transaction code",
			slog.String("code", txn.TransactionCode),
			slog.String("account_reference", txn.Reference()))
		return
	}

	ref := txn.Reference()
	if ref == "" {
		result.NotFound++
		result.Errors = append(result.Errors, fmt.Sprintf("transaction with code %s carries no account reference", txn.TransactionCode))
		return
	}

	item, err := s.batchRepo.FindItemByAccountReference(ctx, ref)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Statement lines for collections submitted outside this service
			// (or before it existed) land here.
			result.NotFound++
			logger.Warn("No batch item for statement line", slog.String("account_reference", ref))
			return
		}
		result.Errors = append(result.Errors, fmt.Sprintf("failed to look up item %s: %v", ref, err))
		return
	}

	itemStatus := domain.BatchItemSuccessful
	if outcome == domain.OutcomeFailed {
		itemStatus = domain.BatchItemUnpaid
	}
	if err := s.batchRepo.UpdateItemOutcome(ctx, item.BatchItemID, itemStatus, txn.TransactionCode, settlementDate); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to update item %s: %v", ref, err))
		return
	}

	if err := s.propagateOutcome(ctx, *item, outcome, txn.TransactionCode, settlementDate); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to update origin of %s: %v", ref, err))
		return
	}

	if outcome == domain.OutcomeSuccessful {
		result.Successful++
	} else {
		result.Unpaid++
	}
}

// propagateOutcome applies the settlement outcome to the item's origin
// record. The origin updates are conditional on the unpaid state, so a
// transaction appearing on two statements settles the origin exactly once.
func (s *reconciliationService) propagateOutcome(ctx context.Context, item domain.BatchItem, outcome domain.TransactionOutcome, code string, settlementDate time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	var applied bool
	var err error
	switch {
	case item.InvoiceNumber != "":
		if outcome == domain.OutcomeSuccessful {
			applied, err = s.invoiceRepo.MarkInvoicePaid(ctx, item.InvoiceNumber, code, settlementDate)
		} else {
			applied, err = s.invoiceRepo.MarkInvoiceDeclined(ctx, item.InvoiceNumber, code, settlementDate)
		}
	case item.OrderNumber != "":
		if outcome == domain.OutcomeSuccessful {
			applied, err = s.orderRepo.MarkOrderPaid(ctx, item.OrderNumber, code, settlementDate)
		} else {
			applied, err = s.orderRepo.MarkOrderDeclined(ctx, item.OrderNumber, code, settlementDate)
		}
	default:
		// Items always carry exactly one origin; a bare item is a data defect.
		return fmt.Errorf("batch item %s has neither invoice nor order origin", item.BatchItemID)
	}
	if err != nil {
		return err
	}
	if !applied {
		logger.Info("Origin already settled, skipping",
			slog.String("account_reference", item.AccountReference),
			slog.String("origin", item.InvoiceNumber+item.OrderNumber))
	}
	return nil
}

func (s *reconciliationService) fail(ctx context.Context, result *domain.ReconciliationResult, startedAt time.Time, msg string) *domain.ReconciliationResult {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Error("Reconciliation run failed", slog.String("date", result.Date), slog.String("error", msg))

	result.Status = domain.RunFailed
	result.Errors = append(result.Errors, msg)
	s.executionLog.Record(ctx, domain.JobReconcileDebitOrders, result.Status, startedAt, result)
	return result
}
