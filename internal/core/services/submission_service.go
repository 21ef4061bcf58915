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
	"github.com/circletel/debit-order-service/internal/utils/billingcycle"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type submissionService struct {
	collector    portssvc.CollectorSvc
	clearing     portssvc.ClearingClient
	batchRepo    portsrepo.BatchWriter
	orderRepo    portsrepo.OrderWriter
	runLockRepo  portsrepo.RunLockRepositoryFacade
	executionLog portssvc.ExecutionLogSvc
}

// NewSubmissionService creates the daily submission pipeline.
func NewSubmissionService(
	collector portssvc.CollectorSvc,
	clearing portssvc.ClearingClient,
	batchRepo portsrepo.BatchWriter,
	orderRepo portsrepo.OrderWriter,
	runLockRepo portsrepo.RunLockRepositoryFacade,
	executionLog portssvc.ExecutionLogSvc,
) portssvc.SubmissionSvcFacade {
	return &submissionService{
		collector:    collector,
		clearing:     clearing,
		batchRepo:    batchRepo,
		orderRepo:    orderRepo,
		runLockRepo:  runLockRepo,
		executionLog: executionLog,
	}
}

var _ portssvc.SubmissionSvcFacade = (*submissionService)(nil)

// Run executes one submission run for billingDate.
//
// Steps run strictly in order: claim date, collect, submit, authorise,
// record, advance billing dates. Only a configuration error or a
// whole-batch rejection terminates the run as failed; authorisation,
// recording and per-order scheduling failures are accumulated into the
// result's error list and the run completes with errors. Exactly one
// execution log entry is written on every path.
func (s *submissionService) Run(ctx context.Context, billingDate time.Time, force bool) (*domain.SubmissionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	startedAt := time.Now()
	result := &domain.SubmissionResult{
		Date:   billingDate.Format("2006-01-02"),
		Errors: []string{},
	}

	// Claim the date before touching anything else: two triggers firing for
	// the same date must not double-submit a batch to the clearing service.
	if err := s.runLockRepo.ClaimRun(ctx, domain.JobSubmitDebitOrders, billingDate, uuid.NewString()); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) && force {
			logger.Warn("Re-claiming billing date after forced retry", slog.String("date", result.Date))
			if relErr := s.runLockRepo.ReleaseRun(ctx, domain.JobSubmitDebitOrders, billingDate); relErr != nil {
				return nil, relErr
			}
			if err = s.runLockRepo.ClaimRun(ctx, domain.JobSubmitDebitOrders, billingDate, uuid.NewString()); err != nil {
				return nil, err
			}
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Submission already ran for date", slog.String("date", result.Date))
			return nil, apperrors.NewAppError(409, fmt.Sprintf("submission run for %s already claimed", result.Date), err)
		} else {
			return nil, err
		}
	}

	collection, err := s.collector.Collect(ctx, billingDate)
	if err != nil {
		// Collector degrades per source; an error here means nothing could
		// be fetched at all.
		return s.fail(ctx, result, startedAt, billingDate, fmt.Sprintf("collection failed: %v", err)), nil
	}
	result.TotalEligible = collection.TotalEligible
	result.Skipped = collection.Skipped
	result.Errors = append(result.Errors, collection.Warnings...)

	if len(collection.Items) == 0 {
		logger.Info("No eligible debit orders for date", slog.String("date", result.Date))
		return s.finish(ctx, result, startedAt), nil
	}

	if !s.clearing.IsConfigured() {
		return s.fail(ctx, result, startedAt, billingDate, "clearing service not configured"), nil
	}

	submittedAt := time.Now()
	batchName := domain.NewBatchName(billingDate, submittedAt)
	submitRes, err := s.clearing.SubmitBatch(ctx, collection.Items, batchName)
	if err != nil {
		// Whole-batch rejection: nothing reached the clearing service, so
		// nothing is recorded locally either.
		return s.fail(ctx, result, startedAt, billingDate, fmt.Sprintf("batch submission failed: %v", err)), nil
	}
	result.BatchID = submitRes.BatchID
	result.Submitted = submitRes.ItemsSubmitted
	result.Errors = append(result.Errors, submitRes.Errors...)
	logger.Info("Batch submitted",
		slog.String("batch_id", submitRes.BatchID),
		slog.String("batch_name", batchName),
		slog.Int("items", submitRes.ItemsSubmitted))

	batchStatus := domain.BatchAuthorised
	if err := s.clearing.AuthoriseBatch(ctx, submitRes.BatchID); err != nil {
		// Submission is the durability boundary; the batch stays
		// submitted-but-unauthorised and can be authorised manually later.
		logger.Warn("Batch authorisation failed", slog.String("batch_id", submitRes.BatchID), slog.String("error", err.Error()))
		result.Errors = append(result.Errors, fmt.Sprintf("authorisation failed for batch %s: %v", submitRes.BatchID, err))
		batchStatus = domain.BatchSubmitted
	}

	s.recordBatch(ctx, result, collection.Items, batchName, batchStatus, billingDate, submittedAt)
	s.advanceOrders(ctx, result, collection.Items, billingDate)

	return s.finish(ctx, result, startedAt), nil
}

// recordBatch persists the batch and its items. The batch already exists on
// the clearing side, so local bookkeeping failure must not fail the run.
func (s *submissionService) recordBatch(ctx context.Context, result *domain.SubmissionResult, items []domain.DebitOrderItem, batchName string, status domain.BatchStatus, billingDate, submittedAt time.Time) {
	logger := middleware.GetLoggerFromCtx(ctx)

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}

	audit := domain.AuditFields{
		CreatedAt:     submittedAt,
		CreatedBy:     domain.SystemActor,
		LastUpdatedAt: submittedAt,
		LastUpdatedBy: domain.SystemActor,
	}
	batch := domain.Batch{
		BatchID:     result.BatchID,
		BatchName:   batchName,
		ItemCount:   len(items),
		TotalAmount: total,
		Status:      status,
		SubmittedAt: submittedAt,
		AuditFields: audit,
	}
	if err := s.batchRepo.UpsertBatch(ctx, batch); err != nil {
		logger.Error("Failed to record batch", slog.String("batch_id", batch.BatchID), slog.String("error", err.Error()))
		result.Errors = append(result.Errors, fmt.Sprintf("failed to record batch %s: %v", batch.BatchID, err))
		return
	}

	batchItems := make([]domain.BatchItem, 0, len(items))
	for _, item := range items {
		batchItems = append(batchItems, domain.BatchItem{
			BatchItemID:      uuid.NewString(),
			BatchID:          batch.BatchID,
			AccountReference: item.AccountReference,
			Amount:           item.Amount,
			ActionDate:       item.ActionDate,
			CustomerID:       item.CustomerID,
			InvoiceNumber:    item.InvoiceNumber,
			OrderNumber:      item.OrderNumber,
			Status:           domain.BatchItemPending,
			AuditFields:      audit,
		})
	}
	if err := s.batchRepo.InsertBatchItems(ctx, batchItems); err != nil {
		logger.Error("Failed to record batch items", slog.String("batch_id", batch.BatchID), slog.String("error", err.Error()))
		result.Errors = append(result.Errors, fmt.Sprintf("failed to record items of batch %s: %v", batch.BatchID, err))
	}
}

// advanceOrders moves every order-origin item's next billing date one month
// forward. Failures are isolated per order.
func (s *submissionService) advanceOrders(ctx context.Context, result *domain.SubmissionResult, items []domain.DebitOrderItem, billingDate time.Time) {
	logger := middleware.GetLoggerFromCtx(ctx)
	next := billingcycle.NextBillingDate(billingDate)

	for _, item := range items {
		if item.OrderNumber == "" {
			// Invoice due dates are advanced by the invoicing subsystem.
			continue
		}
		if err := s.orderRepo.AdvanceNextBillingDate(ctx, item.OrderNumber, next, domain.SystemActor); err != nil {
			logger.Error("Failed to advance billing date",
				slog.String("order_number", item.OrderNumber),
				slog.String("error", err.Error()))
			result.Errors = append(result.Errors, fmt.Sprintf("failed to advance billing date for order %s: %v", item.OrderNumber, err))
		}
	}
}

// finish settles the terminal status and writes the execution log entry.
func (s *submissionService) finish(ctx context.Context, result *domain.SubmissionResult, startedAt time.Time) *domain.SubmissionResult {
	if len(result.Errors) > 0 {
		result.Status = domain.RunCompletedWithErrors
	} else {
		result.Status = domain.RunCompleted
	}
	s.executionLog.Record(ctx, domain.JobSubmitDebitOrders, result.Status, startedAt, result)
	return result
}

// fail marks the run failed, releases the date claim so the run can be
// retried, and writes the execution log entry.
func (s *submissionService) fail(ctx context.Context, result *domain.SubmissionResult, startedAt time.Time, billingDate time.Time, msg string) *domain.SubmissionResult {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Error("Submission run failed", slog.String("date", result.Date), slog.String("error", msg))

	result.Status = domain.RunFailed
	result.Errors = append(result.Errors, msg)
	if err := s.runLockRepo.ReleaseRun(ctx, domain.JobSubmitDebitOrders, billingDate); err != nil {
		logger.Error("Failed to release run claim", slog.String("date", result.Date), slog.String("error", err.Error()))
		result.Errors = append(result.Errors, fmt.Sprintf("failed to release run claim: %v", err))
	}
	s.executionLog.Record(ctx, domain.JobSubmitDebitOrders, result.Status, startedAt, result)
	return result
}
