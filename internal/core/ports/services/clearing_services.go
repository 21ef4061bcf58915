package services

import (
	"context"
	"time"

	"github.com/circletel/debit-order-service/internal/core/domain"
)

// SubmitBatchResult is the clearing service's answer to a batch submission.
type SubmitBatchResult struct {
	BatchID        string
	ItemsSubmitted int
	// Errors holds per-item rejections when the service accepts the batch
	// but refuses individual lines.
	Errors []string
}

// ClearingClient is the outbound contract with the debit-order clearing
// service. The real implementation lives in internal/adapters/netcash;
// tests substitute a fake. The client is injected explicitly rather than
// held as a package-level singleton.
type ClearingClient interface {
	// IsConfigured reports whether the client has usable credentials.
	// When false, no network call is ever attempted.
	IsConfigured() bool

	// SubmitBatch submits the items as one named batch. A returned error
	// means the whole batch was rejected.
	SubmitBatch(ctx context.Context, items []domain.DebitOrderItem, batchName string) (*SubmitBatchResult, error)

	// AuthoriseBatch asks the service to process a previously submitted
	// batch. Failure leaves the batch submitted-but-unauthorised.
	AuthoriseBatch(ctx context.Context, batchID string) error

	// FetchStatement retrieves the settlement statement for a date.
	FetchStatement(ctx context.Context, date time.Time) (*domain.Statement, error)
}
