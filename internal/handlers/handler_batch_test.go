package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/circletel/debit-order-service/internal/apperrors"
	"github.com/circletel/debit-order-service/internal/core/domain"
	portssvc "github.com/circletel/debit-order-service/internal/core/ports/services"
	"github.com/circletel/debit-order-service/internal/dto"
	"github.com/circletel/debit-order-service/internal/handlers"
	"github.com/circletel/debit-order-service/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BatchQueryService ---
type MockBatchQueryService struct {
	mock.Mock
}

func (m *MockBatchQueryService) ListBatches(ctx context.Context, limit int, offset int) ([]domain.Batch, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Batch), args.Error(1)
}

func (m *MockBatchQueryService) GetBatch(ctx context.Context, batchID string) (*domain.Batch, []domain.BatchItem, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Batch), args.Get(1).([]domain.BatchItem), args.Error(2)
}

func (m *MockBatchQueryService) ListRuns(ctx context.Context, jobName string, limit int, offset int) ([]domain.ExecutionLogEntry, error) {
	args := m.Called(ctx, jobName, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExecutionLogEntry), args.Error(1)
}

var _ portssvc.BatchQuerySvcFacade = (*MockBatchQueryService)(nil)

// --- Test Suite ---
type BatchHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockBatchQuery *MockBatchQueryService
	jwtSecret      string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *BatchHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "debit-order-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *BatchHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockBatchQuery = new(MockBatchQueryService)

	cfg := &config.Config{
		IsProduction:     true,
		JWTSecret:        suite.jwtSecret,
		CronSharedSecret: "cron-test-secret",
		RunTimeout:       5 * time.Second,
	}
	services := &portssvc.ServiceContainer{
		BatchQuery: suite.mockBatchQuery,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *BatchHandlerTestSuite) get(path string, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *BatchHandlerTestSuite) TestListBatches_Success() {
	batches := []domain.Batch{{
		BatchID:     "B-42",
		BatchName:   "CIRCLETEL-20250315-1742000000",
		ItemCount:   2,
		TotalAmount: decimal.NewFromInt(800),
		Status:      domain.BatchAuthorised,
		SubmittedAt: time.Now(),
	}}
	suite.mockBatchQuery.On("ListBatches", mock.Anything, 20, 0).Return(batches, nil).Once()

	w := suite.get("/api/v1/batches", suite.generateTestToken("admin-1"))

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.BatchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("B-42", resp[0].BatchID)
	suite.Equal("800.00", resp[0].TotalAmount)
	suite.mockBatchQuery.AssertExpectations(suite.T())
}

func (suite *BatchHandlerTestSuite) TestListBatches_PaginationParamsPassedThrough() {
	suite.mockBatchQuery.On("ListBatches", mock.Anything, 5, 10).Return([]domain.Batch{}, nil).Once()

	w := suite.get("/api/v1/batches?limit=5&offset=10", suite.generateTestToken("admin-1"))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockBatchQuery.AssertExpectations(suite.T())
}

func (suite *BatchHandlerTestSuite) TestListBatches_MissingTokenReturns401() {
	w := suite.get("/api/v1/batches", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBatchQuery.AssertNotCalled(suite.T(), "ListBatches", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BatchHandlerTestSuite) TestGetBatch_Success() {
	batch := &domain.Batch{
		BatchID:     "B-42",
		Status:      domain.BatchAuthorised,
		TotalAmount: decimal.NewFromInt(500),
	}
	items := []domain.BatchItem{{
		BatchItemID:      "BI-1",
		BatchID:          "B-42",
		AccountReference: "INV-1001",
		Amount:           decimal.NewFromInt(500),
		Status:           domain.BatchItemSuccessful,
		TransactionCode:  "TDD",
	}}
	suite.mockBatchQuery.On("GetBatch", mock.Anything, "B-42").Return(batch, items, nil).Once()

	w := suite.get("/api/v1/batches/B-42", suite.generateTestToken("admin-1"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BatchDetailResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("B-42", resp.Batch.BatchID)
	suite.Require().Len(resp.Items, 1)
	suite.Equal("successful", resp.Items[0].Status)
	suite.Equal("TDD", resp.Items[0].TransactionCode)
}

func (suite *BatchHandlerTestSuite) TestGetBatch_NotFoundReturns404() {
	suite.mockBatchQuery.On("GetBatch", mock.Anything, "missing").Return(nil, nil, apperrors.ErrNotFound).Once()

	w := suite.get("/api/v1/batches/missing", suite.generateTestToken("admin-1"))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *BatchHandlerTestSuite) TestListRuns_FilterByJob() {
	entries := []domain.ExecutionLogEntry{{
		EntryID: "E-1",
		JobName: domain.JobSubmitDebitOrders,
		Status:  domain.RunCompleted,
		Result:  json.RawMessage(`{"submitted":2}`),
	}}
	suite.mockBatchQuery.On("ListRuns", mock.Anything, domain.JobSubmitDebitOrders, 20, 0).Return(entries, nil).Once()

	w := suite.get("/api/v1/runs?job=submit-debit-orders", suite.generateTestToken("admin-1"))

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ExecutionLogEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("completed", resp[0].Status)
}

func (suite *BatchHandlerTestSuite) TestListRuns_UnknownJobReturns400() {
	w := suite.get("/api/v1/runs?job=no-such-job", suite.generateTestToken("admin-1"))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBatchQuery.AssertNotCalled(suite.T(), "ListRuns", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBatchHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BatchHandlerTestSuite))
}
