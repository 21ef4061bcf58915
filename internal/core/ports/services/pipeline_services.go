package services

import (
	"context"
	"time"

	"github.com/circletel/debit-order-service/internal/core/domain"
)

// CollectionResult is the Collector's output for one billing date.
type CollectionResult struct {
	Items []domain.DebitOrderItem
	// Skipped counts candidates dropped for a missing/invalid mandate or
	// removed by deduplication. TotalEligible = len(Items) + Skipped.
	Skipped       int
	TotalEligible int
	// Warnings records per-source fetch failures that degraded, but did not
	// abort, collection.
	Warnings []string
}

// CollectorSvc gathers the debit-order items eligible for submission.
type CollectorSvc interface {
	// Collect scans invoices and orders due on billingDate and returns the
	// deduplicated, mandate-gated item set.
	Collect(ctx context.Context, billingDate time.Time) (*CollectionResult, error)
}

// SubmissionSvcFacade runs the daily submission pipeline end to end:
// collect, submit, authorise, record, advance billing dates, log.
type SubmissionSvcFacade interface {
	// Run executes one submission run for billingDate. force re-claims the
	// date after a previously failed run. Business-level failures are
	// reported inside the result; a non-nil error is returned only for
	// request-level problems (e.g. the date is already claimed).
	Run(ctx context.Context, billingDate time.Time, force bool) (*domain.SubmissionResult, error)
}

// ReconciliationSvcFacade matches settlement statement lines back onto
// previously submitted batch items.
type ReconciliationSvcFacade interface {
	// Run reconciles the statement for settlementDate.
	Run(ctx context.Context, settlementDate time.Time) (*domain.ReconciliationResult, error)
}

// ExecutionLogSvc records one entry per pipeline run.
type ExecutionLogSvc interface {
	// Record appends a run log entry. Best-effort: its own failure is logged
	// and swallowed so it can never mask the failure that triggered it.
	Record(ctx context.Context, jobName string, status domain.RunStatus, startedAt time.Time, result any)
}

// BatchQuerySvcFacade serves the admin inspection API.
type BatchQuerySvcFacade interface {
	ListBatches(ctx context.Context, limit int, offset int) ([]domain.Batch, error)
	GetBatch(ctx context.Context, batchID string) (*domain.Batch, []domain.BatchItem, error)
	ListRuns(ctx context.Context, jobName string, limit int, offset int) ([]domain.ExecutionLogEntry, error)
}
