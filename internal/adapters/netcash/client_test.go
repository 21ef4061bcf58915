package netcash_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/circletel/debit-order-service/internal/adapters/netcash"
	"github.com/circletel/debit-order-service/internal/apperrors"
	"github.com/circletel/debit-order-service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *netcash.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return netcash.NewClient(netcash.Config{
		BaseURL:       server.URL,
		ServiceKey:    "test-key",
		AccountNumber: "ACC-1",
		Timeout:       5 * time.Second,
	})
}

func sampleItems() []domain.DebitOrderItem {
	return []domain.DebitOrderItem{{
		AccountReference: "INV-1001",
		Amount:           decimal.NewFromFloat(499.50),
		ActionDate:       time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		CustomerID:       "C1",
		InvoiceNumber:    "INV-1001",
	}}
}

func TestIsConfigured(t *testing.T) {
	assert.False(t, netcash.NewClient(netcash.Config{}).IsConfigured())
	assert.False(t, netcash.NewClient(netcash.Config{BaseURL: "https://api.example", ServiceKey: "k"}).IsConfigured())
	assert.True(t, netcash.NewClient(netcash.Config{BaseURL: "https://api.example", ServiceKey: "k", AccountNumber: "a"}).IsConfigured())
}

func TestSubmitBatch_Success(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/debit-orders/batches", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(map[string]any{
			"success":        true,
			"batchId":        "B-42",
			"itemsSubmitted": 1,
			"errors":         []string{},
		})
	})

	result, err := client.SubmitBatch(context.Background(), sampleItems(), "CIRCLETEL-20250315-1742000000")

	require.NoError(t, err)
	assert.Equal(t, "B-42", result.BatchID)
	assert.Equal(t, 1, result.ItemsSubmitted)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "ACC-1", gotPayload["accountNumber"])
	items := gotPayload["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	// Amounts travel as fixed two-decimal strings.
	assert.Equal(t, "499.50", first["amount"])
	assert.Equal(t, "2025-03-15", first["actionDate"])
}

func TestSubmitBatch_RejectionWrapsSubmissionError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "duplicate batch name",
		})
	})

	result, err := client.SubmitBatch(context.Background(), sampleItems(), "CIRCLETEL-20250315-1742000000")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrSubmission)
	assert.Contains(t, err.Error(), "duplicate batch name")
}

func TestSubmitBatch_HTTPErrorWrapsSubmissionError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	})

	_, err := client.SubmitBatch(context.Background(), sampleItems(), "CIRCLETEL-20250315-1742000000")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSubmission)
	assert.Contains(t, err.Error(), "503")
}

func TestSubmitBatch_MissingBatchIDIsValidationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "itemsSubmitted": 1})
	})

	_, err := client.SubmitBatch(context.Background(), sampleItems(), "CIRCLETEL-20250315-1742000000")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSubmitBatch_NotConfigured(t *testing.T) {
	client := netcash.NewClient(netcash.Config{})

	_, err := client.SubmitBatch(context.Background(), sampleItems(), "CIRCLETEL-20250315-1742000000")

	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestAuthoriseBatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/debit-orders/batches/B-42/authorise", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	require.NoError(t, client.AuthoriseBatch(context.Background(), "B-42"))
}

func TestAuthoriseBatch_Rejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "batch already processed"})
	})

	err := client.AuthoriseBatch(context.Background(), "B-42")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch already processed")
}

func TestFetchStatement_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/statements", r.URL.Path)
		require.Equal(t, "ACC-1", r.URL.Query().Get("accountNumber"))
		require.Equal(t, "2025-03-17", r.URL.Query().Get("date"))
		json.NewEncoder(w).Encode(map[string]any{
			"success":                true,
			"date":                   "2025-03-17",
			"openingBalance":         "1000.00",
			"closingBalance":         "1499.50",
			"totalTransactions":      2,
			"debitOrderTransactions": 2,
			"transactions": []map[string]any{
				{
					"transactionCode":  "TDD",
					"amount":           "499.50",
					"accountReference": "INV-1001",
					"effect":           "credit",
				},
				{
					"transactionCode": "DRU",
					"amount":          "300.00",
					"account":         map[string]any{"accountReference": "PAY-ORD-77"},
					"effect":          "debit",
				},
			},
		})
	})

	stmt, err := client.FetchStatement(context.Background(), time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, stmt.Transactions, 2)
	assert.Equal(t, "INV-1001", stmt.Transactions[0].Reference())
	assert.True(t, stmt.Transactions[0].Amount.Equal(decimal.NewFromFloat(499.50)))
	// Nested account block resolves through Reference().
	assert.Equal(t, "PAY-ORD-77", stmt.Transactions[1].Reference())
	require.NotNil(t, stmt.OpeningBalance)
	assert.True(t, stmt.OpeningBalance.Equal(decimal.NewFromInt(1000)))
}

func TestFetchStatement_MalformedTransactionIsValidationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"date":    "2025-03-17",
			"transactions": []map[string]any{
				{"transactionCode": "TDD"},
			},
		})
	})

	_, err := client.FetchStatement(context.Background(), time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "missing amount")
}

func TestFetchStatement_BadDateIsValidationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "date": "17/03/2025"})
	})

	_, err := client.FetchStatement(context.Background(), time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
