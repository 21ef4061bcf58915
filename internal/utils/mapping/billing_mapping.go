package mapping

import (
	"github.com/circletel/debit-order-service/internal/core/domain"
	"github.com/circletel/debit-order-service/internal/models"
)

// ToDomainInvoice converts a model Invoice to a domain Invoice.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceNumber: m.InvoiceNumber,
		CustomerID:    m.CustomerID,
		TotalAmount:   m.TotalAmount,
		DueDate:       m.DueDate,
		Status:        domain.PaymentStatus(m.Status),
		PaymentMethod: domain.PaymentMethodType(m.PaymentMethod),
		FailureReason: m.FailureReason,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to domain Invoices.
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}

// ToDomainOrder converts a model Order to a domain Order.
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderNumber:     m.OrderNumber,
		CustomerID:      m.CustomerID,
		PackagePrice:    m.PackagePrice,
		NextBillingDate: m.NextBillingDate,
		BillingActive:   m.BillingActive,
		PaymentMethod:   domain.PaymentMethodType(m.PaymentMethod),
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		FailureReason:   m.FailureReason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrderSlice converts a slice of model Orders to domain Orders.
func ToDomainOrderSlice(ms []models.Order) []domain.Order {
	ds := make([]domain.Order, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrder(m)
	}
	return ds
}

// ToDomainMandate converts a model PaymentMandate to a domain PaymentMandate.
func ToDomainMandate(m models.PaymentMandate) domain.PaymentMandate {
	return domain.PaymentMandate{
		MandateID:     m.MandateID,
		CustomerID:    m.CustomerID,
		MethodType:    domain.PaymentMethodType(m.MethodType),
		MandateStatus: domain.MandateStatus(m.MandateStatus),
		IsActive:      m.IsActive,
		Verified:      m.Verified,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMandateSlice converts a slice of model PaymentMandates to domain
// PaymentMandates.
func ToDomainMandateSlice(ms []models.PaymentMandate) []domain.PaymentMandate {
	ds := make([]domain.PaymentMandate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMandate(m)
	}
	return ds
}
