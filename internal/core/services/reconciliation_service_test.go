package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/circletel/debit-order-service/internal/apperrors"
	"github.com/circletel/debit-order-service/internal/core/domain"
	portssvc "github.com/circletel/debit-order-service/internal/core/ports/services"
	"github.com/circletel/debit-order-service/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockClearing   *MockClearingClient
	mockBatches    *MockBatchRepository
	mockInvoices   *MockInvoiceRepository
	mockOrders     *MockOrderRepository
	mockExecLog    *MockExecutionLog
	service        portssvc.ReconciliationSvcFacade
	settlementDate time.Time
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockClearing = new(MockClearingClient)
	suite.mockBatches = new(MockBatchRepository)
	suite.mockInvoices = new(MockInvoiceRepository)
	suite.mockOrders = new(MockOrderRepository)
	suite.mockExecLog = new(MockExecutionLog)
	suite.service = services.NewReconciliationService(
		suite.mockClearing,
		suite.mockBatches,
		suite.mockInvoices,
		suite.mockOrders,
		suite.mockExecLog,
	)
	suite.settlementDate = time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
}

func (suite *ReconciliationServiceTestSuite) expectRecord(status domain.RunStatus) {
	suite.mockExecLog.On("Record", mock.Anything, domain.JobReconcileDebitOrders, status, mock.AnythingOfType("time.Time"), mock.Anything).Once()
}

func statementWith(txns ...domain.StatementTransaction) *domain.Statement {
	return &domain.Statement{
		Date:         time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
		Transactions: txns,
	}
}

func invoiceItem(ref string) *domain.BatchItem {
	return &domain.BatchItem{
		BatchItemID:      "BI-" + ref,
		BatchID:          "B-42",
		AccountReference: ref,
		Amount:           decimal.NewFromInt(500),
		CustomerID:       "C1",
		InvoiceNumber:    ref,
		Status:           domain.BatchItemPending,
	}
}

func (suite *ReconciliationServiceTestSuite) TestRun_SuccessfulCollectionMarksInvoicePaid() {
	ctx := context.Background()

	suite.mockClearing.On("IsConfigured").Return(true).Once()
	suite.mockClearing.On("FetchStatement", mock.Anything, suite.settlementDate).
		Return(statementWith(domain.StatementTransaction{
			TransactionCode:  "TDD",
			Amount:           decimal.NewFromInt(500),
			AccountReference: "INV-1001",
		}), nil).Once()
	suite.mockBatches.On("FindItemByAccountReference", mock.Anything, "INV-1001").Return(invoiceItem("INV-1001"), nil).Once()
	suite.mockBatches.On("UpdateItemOutcome", mock.Anything, "BI-INV-1001", domain.BatchItemSuccessful, "TDD", suite.settlementDate).Return(nil).Once()
	suite.mockInvoices.On("MarkInvoicePaid", mock.Anything, "INV-1001", "TDD", suite.settlementDate).Return(true, nil).Once()
	suite.expectRecord(domain.RunCompleted)

	result, err := suite.service.Run(ctx, suite.settlementDate)

	suite.Require().NoError(err)
	suite.Equal(domain.RunCompleted, result.Status)
	suite.Equal(1, result.TotalProcessed)
	suite.Equal(1, result.Successful)
	suite.Equal(0, result.Unpaid)
	suite.mockInvoices.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestRun_FailureCodeMarksOrderDeclined() {
	ctx := context.Background()

	item := &domain.BatchItem{
		BatchItemID:      "BI-1",
		AccountReference: "PAY-ORD-77",
		OrderNumber:      "ORD-77",
		Status:           domain.BatchItemPending,
	}

	suite.mockClearing.On("IsConfigured").Return(true).Once()
	suite.mockClearing.On("FetchStatement", mock.Anything, suite.settlementDate).
		Return(statementWith(domain.StatementTransaction{
			TransactionCode: "DRU",
			Account:         &domain.StatementAccount{AccountReference: "PAY-ORD-77"},
		}), nil).Once()
	suite.mockBatches.On("FindItemByAccountReference", mock.Anything, "PAY-ORD-77").Return(item, nil).Once()
	suite.mockBatches.On("UpdateItemOutcome", mock.Anything, "BI-1", domain.BatchItemUnpaid, "DRU", suite.settlementDate).Return(nil).Once()
	suite.mockOrders.On("MarkOrderDeclined", mock.Anything, "ORD-77", "DRU", suite.settlementDate).Return(true, nil).Once()
	suite.expectRecord(domain.RunCompleted)

	result, err := suite.service.Run(ctx, suite.settlementDate)

	suite.Require().NoError(err)
	suite.Equal(1, result.Unpaid)
	suite.Equal(0, result.Successful)
	suite.mockOrders.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestRun_UnclassifiedCodeTouchesNothing() {
	ctx := context.Background()

	suite.mockClearing.On("IsConfigured").Return(true).Once()
	suite.mockClearing.On("FetchStatement", mock.Anything, suite.settlementDate).
		Return(statementWith(domain.StatementTransaction{
			TransactionCode:  "XYZ",
			AccountReference: "INV-5",
		}), nil).Once()
	suite.expectRecord(domain.RunCompleted)

	result, err := suite.service.Run(ctx, suite.settlementDate)

	suite.Require().NoError(err)
	suite.Equal(1, result.TotalProcessed)
	suite.Equal(1, result.Unclassified)
	suite.mockBatches.AssertNotCalled(suite.T(), "FindItemByAccountReference", mock.Anything, mock.Anything)
	suite.mockBatches.AssertNotCalled(suite.T(), "UpdateItemOutcome", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestRun_UnknownReferenceCountsNotFound() {
	ctx := context.Background()

	suite.mockClearing.On("IsConfigured").Return(true).Once()
	suite.mockClearing.On("FetchStatement", mock.Anything, suite.settlementDate).
		Return(statementWith(domain.StatementTransaction{
			TransactionCode:  "TDD",
			AccountReference: "EXTERNAL-1",
		}), nil).Once()
	suite.mockBatches.On("FindItemByAccountReference", mock.Anything, "EXTERNAL-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.expectRecord(domain.RunCompleted)

	result, err := suite.service.Run(ctx, suite.settlementDate)

	suite.Require().NoError(err)
	suite.Equal(1, result.NotFound)
	suite.Equal(0, result.Successful)
	suite.Empty(result.Errors)
}

func (suite *ReconciliationServiceTestSuite) TestRun_PerTransactionFailureDoesNotAbortRun() {
	ctx := context.Background()

	suite.mockClearing.On("IsConfigured").Return(true).Once()
	suite.mockClearing.On("FetchStatement", mock.Anything, suite.settlementDate).
		Return(statementWith(
			domain.StatementTransaction{TransactionCode: "TDD", AccountReference: "INV-1"},
			domain.StatementTransaction{TransactionCode: "TDD", AccountReference: "INV-2"},
		), nil).Once()
	suite.mockBatches.On("FindItemByAccountReference", mock.Anything, "INV-1").Return(nil, assert.AnError).Once()
	suite.mockBatches.On("FindItemByAccountReference", mock.Anything, "INV-2").Return(invoiceItem("INV-2"), nil).Once()
	suite.mockBatches.On("UpdateItemOutcome", mock.Anything, "BI-INV-2", domain.BatchItemSuccessful, "TDD", suite.settlementDate).Return(nil).Once()
	suite.mockInvoices.On("MarkInvoicePaid", mock.Anything, "INV-2", "TDD", suite.settlementDate).Return(true, nil).Once()
	suite.expectRecord(domain.RunCompletedWithErrors)

	result, err := suite.service.Run(ctx, suite.settlementDate)

	suite.Require().NoError(err)
	suite.Equal(domain.RunCompletedWithErrors, result.Status)
	suite.Equal(2, result.TotalProcessed)
	suite.Equal(1, result.Successful)
	suite.Len(result.Errors, 1)
}

func (suite *ReconciliationServiceTestSuite) TestRun_AlreadySettledOriginIsNoOp() {
	ctx := context.Background()

	suite.mockClearing.On("IsConfigured").Return(true).Once()
	suite.mockClearing.On("FetchStatement", mock.Anything, suite.settlementDate).
		Return(statementWith(domain.StatementTransaction{
			TransactionCode:  "TDD",
			AccountReference: "INV-3",
		}), nil).Once()
	suite.mockBatches.On("FindItemByAccountReference", mock.Anything, "INV-3").Return(invoiceItem("INV-3"), nil).Once()
	suite.mockBatches.On("UpdateItemOutcome", mock.Anything, "BI-INV-3", domain.BatchItemSuccessful, "TDD", suite.settlementDate).Return(nil).Once()
	// The invoice already left the unpaid state on an earlier run.
	suite.mockInvoices.On("MarkInvoicePaid", mock.Anything, "INV-3", "TDD", suite.settlementDate).Return(false, nil).Once()
	suite.expectRecord(domain.RunCompleted)

	result, err := suite.service.Run(ctx, suite.settlementDate)

	suite.Require().NoError(err)
	suite.Equal(domain.RunCompleted, result.Status)
	suite.Equal(1, result.Successful)
	suite.Empty(result.Errors)
}

func (suite *ReconciliationServiceTestSuite) TestRun_NotConfiguredFails() {
	ctx := context.Background()

	suite.mockClearing.On("IsConfigured").Return(false).Once()
	suite.expectRecord(domain.RunFailed)

	result, err := suite.service.Run(ctx, suite.settlementDate)

	suite.Require().NoError(err)
	suite.Equal(domain.RunFailed, result.Status)
	suite.mockClearing.AssertNotCalled(suite.T(), "FetchStatement", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestRun_StatementFetchFailureFails() {
	ctx := context.Background()

	suite.mockClearing.On("IsConfigured").Return(true).Once()
	suite.mockClearing.On("FetchStatement", mock.Anything, suite.settlementDate).Return(nil, assert.AnError).Once()
	suite.expectRecord(domain.RunFailed)

	result, err := suite.service.Run(ctx, suite.settlementDate)

	suite.Require().NoError(err)
	suite.Equal(domain.RunFailed, result.Status)
	suite.Require().Len(result.Errors, 1)
	suite.Contains(result.Errors[0], "failed to fetch statement")
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
