package repositories

import (
	"context"
	"time"

	"github.com/circletel/debit-order-service/internal/core/domain"
)

// InvoiceReader defines read operations on billing invoices.
type InvoiceReader interface {
	// FindDueDebitOrderInvoices retrieves unpaid invoices due on the given
	// date whose payment method is debit order.
	FindDueDebitOrderInvoices(ctx context.Context, dueDate time.Time) ([]domain.Invoice, error)
}

// InvoiceWriter defines the payment-status transitions the pipeline applies
// to invoices during reconciliation. Both updates are conditional: an
// invoice that already left the unpaid state is not touched, so re-running
// reconciliation for the same date cannot flap statuses.
type InvoiceWriter interface {
	// MarkInvoicePaid transitions an unpaid invoice to paid. Returns false if
	// the invoice was not in the unpaid state (already reconciled).
	MarkInvoicePaid(ctx context.Context, invoiceNumber string, transactionCode string, paidAt time.Time) (bool, error)

	// MarkInvoiceDeclined transitions an unpaid invoice to declined,
	// preserving the failure transaction code.
	MarkInvoiceDeclined(ctx context.Context, invoiceNumber string, transactionCode string, declinedAt time.Time) (bool, error)
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// OrderReader defines read operations on consumer orders.
type OrderReader interface {
	// FindOrdersDueForBilling retrieves billing-active debit-order orders
	// whose next billing date equals the given date.
	FindOrdersDueForBilling(ctx context.Context, billingDate time.Time) ([]domain.Order, error)
}

// OrderWriter defines the order mutations owned by the pipeline.
type OrderWriter interface {
	// AdvanceNextBillingDate moves an order's next billing date forward
	// after a successful submission.
	AdvanceNextBillingDate(ctx context.Context, orderNumber string, nextBillingDate time.Time, updatedBy string) error

	// MarkOrderPaid transitions an order's payment status to paid. Returns
	// false if the order was not awaiting payment.
	MarkOrderPaid(ctx context.Context, orderNumber string, transactionCode string, paidAt time.Time) (bool, error)

	// MarkOrderDeclined transitions an order's payment status to declined.
	MarkOrderDeclined(ctx context.Context, orderNumber string, transactionCode string, declinedAt time.Time) (bool, error)
}

// OrderRepositoryFacade combines all order repository interfaces.
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}

// MandateReader defines the mandate lookup used for eligibility gating.
type MandateReader interface {
	// FindMandatesByCustomer retrieves all payment mandates for a customer.
	FindMandatesByCustomer(ctx context.Context, customerID string) ([]domain.PaymentMandate, error)
}
