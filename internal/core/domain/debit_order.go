package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderReferencePrefix is prepended to order numbers to build the account
// reference for order-derived items. Invoice-derived items use the invoice
// number as-is, so the prefix also keeps the two namespaces disjoint.
const OrderReferencePrefix = "PAY-"

// DebitOrderItem is the normalized unit sent to the clearing service.
// Exactly one of InvoiceNumber/OrderNumber may be empty; AccountReference
// correlates the item back to its origin during reconciliation.
type DebitOrderItem struct {
	AccountReference string          `json:"accountReference"`
	Amount           decimal.Decimal `json:"amount"`
	ActionDate       time.Time       `json:"actionDate"`
	CustomerID       string          `json:"customerID"`
	InvoiceNumber    string          `json:"invoiceNumber,omitempty"`
	OrderNumber      string          `json:"orderNumber,omitempty"`
}

// ItemFromInvoice builds a DebitOrderItem for an invoice due on actionDate.
func ItemFromInvoice(inv Invoice, actionDate time.Time) DebitOrderItem {
	return DebitOrderItem{
		AccountReference: inv.InvoiceNumber,
		Amount:           inv.TotalAmount,
		ActionDate:       actionDate,
		CustomerID:       inv.CustomerID,
		InvoiceNumber:    inv.InvoiceNumber,
	}
}

// ItemFromOrder builds a DebitOrderItem for a first-bill order due on actionDate.
func ItemFromOrder(ord Order, actionDate time.Time) DebitOrderItem {
	return DebitOrderItem{
		AccountReference: OrderReferencePrefix + ord.OrderNumber,
		Amount:           ord.PackagePrice,
		ActionDate:       actionDate,
		CustomerID:       ord.CustomerID,
		OrderNumber:      ord.OrderNumber,
	}
}

// BatchStatus is the lifecycle state of a submitted batch.
type BatchStatus string

const (
	BatchSubmitted  BatchStatus = "submitted"
	BatchAuthorised BatchStatus = "authorised"
	BatchFailed     BatchStatus = "failed"
)

// Batch is a named group of debit-order items submitted together. BatchID is
// assigned by the clearing service; BatchName is generated locally and is
// unique per run.
type Batch struct {
	BatchID     string          `json:"batchID"` // Primary key
	BatchName   string          `json:"batchName"`
	ItemCount   int             `json:"itemCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      BatchStatus     `json:"status"`
	SubmittedAt time.Time       `json:"submittedAt"`
	AuditFields
}

// BatchNamePrefix is the local batch naming prefix.
const BatchNamePrefix = "CIRCLETEL"

// NewBatchName generates the per-run batch name: prefix + billing date +
// submission timestamp, e.g. CIRCLETEL-20250315-1742022000.
func NewBatchName(billingDate time.Time, submittedAt time.Time) string {
	return fmt.Sprintf("%s-%s-%d", BatchNamePrefix, billingDate.Format("20060102"), submittedAt.Unix())
}

// BatchItemStatus is the reconciliation state of a persisted batch line.
type BatchItemStatus string

const (
	BatchItemPending    BatchItemStatus = "pending"
	BatchItemSuccessful BatchItemStatus = "successful"
	BatchItemUnpaid     BatchItemStatus = "unpaid"
)

// BatchItem is the persisted line record of a DebitOrderItem, kept for audit
// and matched against settlement statement lines during reconciliation.
type BatchItem struct {
	BatchItemID      string          `json:"batchItemID"` // Synthetic UUID
	BatchID          string          `json:"batchID"`
	AccountReference string          `json:"accountReference"`
	Amount           decimal.Decimal `json:"amount"`
	ActionDate       time.Time       `json:"actionDate"`
	CustomerID       string          `json:"customerID"`
	InvoiceNumber    string          `json:"invoiceNumber,omitempty"`
	OrderNumber      string          `json:"orderNumber,omitempty"`
	Status           BatchItemStatus `json:"status"`
	TransactionCode  string          `json:"transactionCode,omitempty"`
	ReconciledAt     *time.Time      `json:"reconciledAt,omitempty"`
	AuditFields
}
