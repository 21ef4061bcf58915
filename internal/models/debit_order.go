package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch maps the debit_order_batches table.
type Batch struct {
	BatchID     string          `json:"batchID"` // Primary Key (clearing-service assigned)
	BatchName   string          `json:"batchName"`
	ItemCount   int             `json:"itemCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	SubmittedAt time.Time       `json:"submittedAt"`
	AuditFields
}

// BatchItem maps the debit_order_batch_items table.
type BatchItem struct {
	BatchItemID      string          `json:"batchItemID"` // Primary Key (UUID)
	BatchID          string          `json:"batchID"`     // FK -> debit_order_batches
	AccountReference string          `json:"accountReference"`
	Amount           decimal.Decimal `json:"amount"`
	ActionDate       time.Time       `json:"actionDate"`
	CustomerID       string          `json:"customerID"`
	InvoiceNumber    string          `json:"invoiceNumber"` // Nullable
	OrderNumber      string          `json:"orderNumber"`   // Nullable
	Status           string          `json:"status"`
	TransactionCode  string          `json:"transactionCode"` // Nullable
	ReconciledAt     *time.Time      `json:"reconciledAt"`    // Nullable
	AuditFields
}
