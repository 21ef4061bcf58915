package services_test

import (
	"context"
	"time"

	"github.com/circletel/debit-order-service/internal/core/domain"
	portssvc "github.com/circletel/debit-order-service/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindDueDebitOrderInvoices(ctx context.Context, dueDate time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) MarkInvoicePaid(ctx context.Context, invoiceNumber string, transactionCode string, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, invoiceNumber, transactionCode, paidAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) MarkInvoiceDeclined(ctx context.Context, invoiceNumber string, transactionCode string, declinedAt time.Time) (bool, error) {
	args := m.Called(ctx, invoiceNumber, transactionCode, declinedAt)
	return args.Bool(0), args.Error(1)
}

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOrdersDueForBilling(ctx context.Context, billingDate time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, billingDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) AdvanceNextBillingDate(ctx context.Context, orderNumber string, nextBillingDate time.Time, updatedBy string) error {
	args := m.Called(ctx, orderNumber, nextBillingDate, updatedBy)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkOrderPaid(ctx context.Context, orderNumber string, transactionCode string, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, orderNumber, transactionCode, paidAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) MarkOrderDeclined(ctx context.Context, orderNumber string, transactionCode string, declinedAt time.Time) (bool, error) {
	args := m.Called(ctx, orderNumber, transactionCode, declinedAt)
	return args.Bool(0), args.Error(1)
}

// --- Mock MandateRepository ---
type MockMandateRepository struct {
	mock.Mock
}

func (m *MockMandateRepository) FindMandatesByCustomer(ctx context.Context, customerID string) ([]domain.PaymentMandate, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMandate), args.Error(1)
}

// --- Mock BatchRepository ---
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchRepository) ListBatches(ctx context.Context, limit int, offset int) ([]domain.Batch, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Batch), args.Error(1)
}

func (m *MockBatchRepository) ListBatchItems(ctx context.Context, batchID string) ([]domain.BatchItem, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BatchItem), args.Error(1)
}

func (m *MockBatchRepository) FindItemByAccountReference(ctx context.Context, accountReference string) (*domain.BatchItem, error) {
	args := m.Called(ctx, accountReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchItem), args.Error(1)
}

func (m *MockBatchRepository) UpsertBatch(ctx context.Context, batch domain.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) InsertBatchItems(ctx context.Context, items []domain.BatchItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockBatchRepository) UpdateItemOutcome(ctx context.Context, batchItemID string, status domain.BatchItemStatus, transactionCode string, reconciledAt time.Time) error {
	args := m.Called(ctx, batchItemID, status, transactionCode, reconciledAt)
	return args.Error(0)
}

// --- Mock ExecutionLogRepository ---
type MockExecutionLogRepository struct {
	mock.Mock
}

func (m *MockExecutionLogRepository) InsertEntry(ctx context.Context, entry domain.ExecutionLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockExecutionLogRepository) ListEntries(ctx context.Context, jobName string, limit int, offset int) ([]domain.ExecutionLogEntry, error) {
	args := m.Called(ctx, jobName, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExecutionLogEntry), args.Error(1)
}

// --- Mock RunLockRepository ---
type MockRunLockRepository struct {
	mock.Mock
}

func (m *MockRunLockRepository) ClaimRun(ctx context.Context, jobName string, runDate time.Time, runID string) error {
	args := m.Called(ctx, jobName, runDate, runID)
	return args.Error(0)
}

func (m *MockRunLockRepository) ReleaseRun(ctx context.Context, jobName string, runDate time.Time) error {
	args := m.Called(ctx, jobName, runDate)
	return args.Error(0)
}

// --- Mock ClearingClient ---
type MockClearingClient struct {
	mock.Mock
}

func (m *MockClearingClient) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockClearingClient) SubmitBatch(ctx context.Context, items []domain.DebitOrderItem, batchName string) (*portssvc.SubmitBatchResult, error) {
	args := m.Called(ctx, items, batchName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.SubmitBatchResult), args.Error(1)
}

func (m *MockClearingClient) AuthoriseBatch(ctx context.Context, batchID string) error {
	args := m.Called(ctx, batchID)
	return args.Error(0)
}

func (m *MockClearingClient) FetchStatement(ctx context.Context, date time.Time) (*domain.Statement, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

// --- Mock CollectorSvc ---
type MockCollector struct {
	mock.Mock
}

func (m *MockCollector) Collect(ctx context.Context, billingDate time.Time) (*portssvc.CollectionResult, error) {
	args := m.Called(ctx, billingDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.CollectionResult), args.Error(1)
}

// --- Mock ExecutionLogSvc ---
type MockExecutionLog struct {
	mock.Mock
}

func (m *MockExecutionLog) Record(ctx context.Context, jobName string, status domain.RunStatus, startedAt time.Time, result any) {
	m.Called(ctx, jobName, status, startedAt, result)
}
