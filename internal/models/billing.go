package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice maps the customer_invoices table (owned by the billing subsystem).
type Invoice struct {
	InvoiceNumber string          `json:"invoiceNumber"` // Primary Key
	CustomerID    string          `json:"customerID"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	DueDate       time.Time       `json:"dueDate"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	FailureReason string          `json:"failureReason"` // Nullable
	AuditFields
}

// Order maps the consumer_orders table (owned by the billing subsystem).
type Order struct {
	OrderNumber     string          `json:"orderNumber"` // Primary Key
	CustomerID      string          `json:"customerID"`
	PackagePrice    decimal.Decimal `json:"packagePrice"`
	NextBillingDate time.Time       `json:"nextBillingDate"`
	BillingActive   bool            `json:"billingActive"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	FailureReason   string          `json:"failureReason"` // Nullable
	AuditFields
}

// PaymentMandate maps the customer_payment_methods table.
type PaymentMandate struct {
	MandateID     string `json:"mandateID"` // Primary Key
	CustomerID    string `json:"customerID"`
	MethodType    string `json:"methodType"`
	MandateStatus string `json:"mandateStatus"`
	IsActive      bool   `json:"isActive"`
	Verified      bool   `json:"verified"`
	AuditFields
}
