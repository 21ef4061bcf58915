package netcash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/circletel/debit-order-service/internal/apperrors"
	"github.com/circletel/debit-order-service/internal/core/domain"
	portssvc "github.com/circletel/debit-order-service/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Config holds the clearing-service credentials. ServiceKey and
// AccountNumber are issued per merchant; both must be present for the
// client to count as configured.
type Config struct {
	BaseURL       string
	ServiceKey    string
	AccountNumber string
	Timeout       time.Duration
}

// Client is a REST client for the NetCash debit-order service. It is
// constructed once and injected into the services that need it; there is no
// package-level instance.
type Client struct {
	baseURL       string
	serviceKey    string
	accountNumber string
	client        *http.Client
}

// NewClient constructs a clearing-service client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey:    cfg.ServiceKey,
		accountNumber: cfg.AccountNumber,
		client:        &http.Client{Timeout: timeout},
	}
}

// Ensure Client implements the clearing port
var _ portssvc.ClearingClient = (*Client)(nil)

// IsConfigured reports whether the client has usable credentials.
func (c *Client) IsConfigured() bool {
	return c.baseURL != "" && c.serviceKey != "" && c.accountNumber != ""
}

// Wire shapes. The upstream API is loosely typed, so every response passes
// through an explicit validation step before anything downstream sees it.

type submitItemPayload struct {
	AccountReference string `json:"accountReference"`
	Amount           string `json:"amount"` // decimal as string, upstream requirement
	ActionDate       string `json:"actionDate"`
	CustomerID       string `json:"customerId"`
}

type submitBatchPayload struct {
	AccountNumber string              `json:"accountNumber"`
	BatchName     string              `json:"batchName"`
	Items         []submitItemPayload `json:"items"`
}

type submitBatchResponse struct {
	Success        bool     `json:"success"`
	BatchID        string   `json:"batchId"`
	ItemsSubmitted int      `json:"itemsSubmitted"`
	Errors         []string `json:"errors"`
	Error          string   `json:"error"`
}

type authoriseBatchResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type statementTransactionResponse struct {
	TransactionCode  string  `json:"transactionCode"`
	Amount           *string `json:"amount"`
	AccountReference string  `json:"accountReference"`
	Account          *struct {
		AccountReference string `json:"accountReference"`
	} `json:"account"`
	Effect string `json:"effect"`
}

type statementResponse struct {
	Success                bool                           `json:"success"`
	Date                   string                         `json:"date"`
	OpeningBalance         *string                        `json:"openingBalance"`
	ClosingBalance         *string                        `json:"closingBalance"`
	TotalTransactions      int                            `json:"totalTransactions"`
	DebitOrderTransactions int                            `json:"debitOrderTransactions"`
	Transactions           []statementTransactionResponse `json:"transactions"`
	Error                  string                         `json:"error"`
}

// SubmitBatch submits the items as one named batch. A returned error means
// the whole batch was rejected; per-item rejections come back in the result.
func (c *Client) SubmitBatch(ctx context.Context, items []domain.DebitOrderItem, batchName string) (*portssvc.SubmitBatchResult, error) {
	if !c.IsConfigured() {
		return nil, apperrors.ErrConfiguration
	}

	payload := submitBatchPayload{
		AccountNumber: c.accountNumber,
		BatchName:     batchName,
		Items:         make([]submitItemPayload, 0, len(items)),
	}
	for _, item := range items {
		payload.Items = append(payload.Items, submitItemPayload{
			AccountReference: item.AccountReference,
			Amount:           item.Amount.StringFixed(2),
			ActionDate:       item.ActionDate.Format("2006-01-02"),
			CustomerID:       item.CustomerID,
		})
	}

	var resp submitBatchResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/debit-orders/batches", payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSubmission, err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "batch rejected without detail"
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSubmission, msg)
	}
	if resp.BatchID == "" {
		return nil, fmt.Errorf("%w: submission response missing batch id", apperrors.ErrValidation)
	}

	return &portssvc.SubmitBatchResult{
		BatchID:        resp.BatchID,
		ItemsSubmitted: resp.ItemsSubmitted,
		Errors:         resp.Errors,
	}, nil
}

// AuthoriseBatch asks the service to process a previously submitted batch.
func (c *Client) AuthoriseBatch(ctx context.Context, batchID string) error {
	if !c.IsConfigured() {
		return apperrors.ErrConfiguration
	}

	var resp authoriseBatchResponse
	path := fmt.Sprintf("/v1/debit-orders/batches/%s/authorise", batchID)
	if err := c.doJSON(ctx, http.MethodPost, path, struct{}{}, &resp); err != nil {
		return fmt.Errorf("authorise batch %s: %w", batchID, err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "authorisation rejected without detail"
		}
		return fmt.Errorf("authorise batch %s: %s", batchID, msg)
	}
	return nil
}

// FetchStatement retrieves and validates the settlement statement for a date.
func (c *Client) FetchStatement(ctx context.Context, date time.Time) (*domain.Statement, error) {
	if !c.IsConfigured() {
		return nil, apperrors.ErrConfiguration
	}

	var resp statementResponse
	path := fmt.Sprintf("/v1/statements?accountNumber=%s&date=%s", c.accountNumber, date.Format("2006-01-02"))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch statement for %s: %w", date.Format("2006-01-02"), err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "statement fetch rejected without detail"
		}
		return nil, fmt.Errorf("fetch statement for %s: %s", date.Format("2006-01-02"), msg)
	}

	return parseStatement(resp)
}

// parseStatement validates the loosely typed upstream payload into a domain
// Statement, so malformed rows surface here instead of as zero-field bugs in
// the reconciliation loop.
func parseStatement(resp statementResponse) (*domain.Statement, error) {
	stmtDate, err := time.Parse("2006-01-02", resp.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: statement date %q: %v", apperrors.ErrValidation, resp.Date, err)
	}

	stmt := &domain.Statement{
		Date:                   stmtDate,
		TotalTransactions:      resp.TotalTransactions,
		DebitOrderTransactions: resp.DebitOrderTransactions,
		Transactions:           make([]domain.StatementTransaction, 0, len(resp.Transactions)),
	}

	if resp.OpeningBalance != nil {
		bal, err := decimal.NewFromString(*resp.OpeningBalance)
		if err != nil {
			return nil, fmt.Errorf("%w: opening balance %q: %v", apperrors.ErrValidation, *resp.OpeningBalance, err)
		}
		stmt.OpeningBalance = &bal
	}
	if resp.ClosingBalance != nil {
		bal, err := decimal.NewFromString(*resp.ClosingBalance)
		if err != nil {
			return nil, fmt.Errorf("%w: closing balance %q: %v", apperrors.ErrValidation, *resp.ClosingBalance, err)
		}
		stmt.ClosingBalance = &bal
	}

	for i, txn := range resp.Transactions {
		if txn.TransactionCode == "" {
			return nil, fmt.Errorf("%w: transaction %d missing transaction code", apperrors.ErrValidation, i)
		}
		if txn.Amount == nil {
			return nil, fmt.Errorf("%w: transaction %d missing amount", apperrors.ErrValidation, i)
		}
		amount, err := decimal.NewFromString(*txn.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %d amount %q: %v", apperrors.ErrValidation, i, *txn.Amount, err)
		}

		parsed := domain.StatementTransaction{
			TransactionCode:  txn.TransactionCode,
			Amount:           amount,
			AccountReference: txn.AccountReference,
			Effect:           txn.Effect,
		}
		if txn.Account != nil {
			parsed.Account = &domain.StatementAccount{AccountReference: txn.Account.AccountReference}
		}
		stmt.Transactions = append(stmt.Transactions, parsed)
	}

	return stmt, nil
}

// doJSON performs one JSON round trip against the clearing service.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("netcash: marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("netcash: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("netcash: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("netcash: %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: netcash: decode %s response: %v", apperrors.ErrValidation, path, err)
		}
	}
	return nil
}
