package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethodType identifies how a customer pays.
type PaymentMethodType string

const (
	PaymentMethodDebitOrder PaymentMethodType = "debit_order"
	PaymentMethodCard       PaymentMethodType = "card"
	PaymentMethodEFT        PaymentMethodType = "eft"
)

// PaymentStatus is the settlement state of an invoice or order.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentDeclined PaymentStatus = "declined"
)

// Invoice is a billing obligation owned by the surrounding billing system.
// The pipeline reads invoices due on the billing date and writes back their
// payment status during reconciliation.
type Invoice struct {
	InvoiceNumber string            `json:"invoiceNumber"` // Primary key, doubles as the account reference
	CustomerID    string            `json:"customerID"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	DueDate       time.Time         `json:"dueDate"`
	Status        PaymentStatus     `json:"status"`
	PaymentMethod PaymentMethodType `json:"paymentMethod"`
	FailureReason string            `json:"failureReason,omitempty"` // Transaction code of a failed collection
	AuditFields
}

// Order is a recurring service order with its own billing cycle. First-time
// orders are billed via the pipeline until the invoicing subsystem takes
// over; the pipeline advances NextBillingDate after each submission.
type Order struct {
	OrderNumber     string            `json:"orderNumber"` // Primary key
	CustomerID      string            `json:"customerID"`
	PackagePrice    decimal.Decimal   `json:"packagePrice"`
	NextBillingDate time.Time         `json:"nextBillingDate"`
	BillingActive   bool              `json:"billingActive"`
	PaymentMethod   PaymentMethodType `json:"paymentMethod"`
	PaymentStatus   PaymentStatus     `json:"paymentStatus"`
	FailureReason   string            `json:"failureReason,omitempty"`
	AuditFields
}

// MandateStatus is the lifecycle state of a debit-order mandate.
type MandateStatus string

const (
	MandateActive   MandateStatus = "active"
	MandateApproved MandateStatus = "approved"
	MandatePending  MandateStatus = "pending"
	MandateRejected MandateStatus = "rejected"
)

// PaymentMandate is a customer's authorization for debit-order collection.
type PaymentMandate struct {
	MandateID     string            `json:"mandateID"`
	CustomerID    string            `json:"customerID"`
	MethodType    PaymentMethodType `json:"methodType"`
	MandateStatus MandateStatus     `json:"mandateStatus"`
	IsActive      bool              `json:"isActive"`
	Verified      bool              `json:"verified"`
	AuditFields
}

// Usable reports whether this mandate permits submitting a collection.
// All four conditions must hold simultaneously.
func (m PaymentMandate) Usable() bool {
	if !m.IsActive || !m.Verified {
		return false
	}
	if m.MethodType != PaymentMethodDebitOrder {
		return false
	}
	return m.MandateStatus == MandateActive || m.MandateStatus == MandateApproved
}
