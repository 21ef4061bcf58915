package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/circletel/debit-order-service/internal/core/domain"
	portsrepo "github.com/circletel/debit-order-service/internal/core/ports/repositories"
	portssvc "github.com/circletel/debit-order-service/internal/core/ports/services"
	"github.com/circletel/debit-order-service/internal/middleware"
)

type collectorService struct {
	invoiceRepo portsrepo.InvoiceReader
	orderRepo   portsrepo.OrderReader
	mandateRepo portsrepo.MandateReader
}

// NewCollectorService creates the eligibility collector.
func NewCollectorService(invoiceRepo portsrepo.InvoiceReader, orderRepo portsrepo.OrderReader, mandateRepo portsrepo.MandateReader) portssvc.CollectorSvc {
	return &collectorService{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		mandateRepo: mandateRepo,
	}
}

var _ portssvc.CollectorSvc = (*collectorService)(nil)

// Collect scans invoices and orders due on billingDate and returns the
// deduplicated, mandate-gated item set. Invoices are processed before orders
// so that an order already covered by an invoice for the same customer is
// not double-submitted. A fetch failure on one source degrades to a warning;
// the other source is still collected.
func (s *collectorService) Collect(ctx context.Context, billingDate time.Time) (*portssvc.CollectionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	result := &portssvc.CollectionResult{Warnings: []string{}}

	// Mandate lookups are cached per customer within one run; a customer can
	// appear on several invoices and orders on the same date.
	mandateOK := make(map[string]bool)
	hasUsableMandate := func(customerID string) (bool, error) {
		if ok, seen := mandateOK[customerID]; seen {
			return ok, nil
		}
		mandates, err := s.mandateRepo.FindMandatesByCustomer(ctx, customerID)
		if err != nil {
			return false, fmt.Errorf("mandate lookup for customer %s: %w", customerID, err)
		}
		usable := false
		for _, m := range mandates {
			if m.Usable() {
				usable = true
				break
			}
		}
		mandateOK[customerID] = usable
		return usable, nil
	}

	seenRefs := make(map[string]struct{})
	seenOrders := make(map[string]struct{})
	customersWithInvoiceItem := make(map[string]struct{})

	invoices, err := s.invoiceRepo.FindDueDebitOrderInvoices(ctx, billingDate)
	if err != nil {
		logger.Warn("Invoice fetch failed, continuing with orders only", slog.String("error", err.Error()))
		result.Warnings = append(result.Warnings, fmt.Sprintf("invoice fetch failed: %v", err))
		invoices = nil
	}

	for _, inv := range invoices {
		result.TotalEligible++
		item := domain.ItemFromInvoice(inv, billingDate)

		if _, dup := seenRefs[item.AccountReference]; dup {
			logger.Warn("Duplicate invoice account reference skipped", slog.String("account_reference", item.AccountReference))
			result.Skipped++
			continue
		}

		usable, err := hasUsableMandate(inv.CustomerID)
		if err != nil {
			result.Warnings = append(result.Warnings, err.Error())
			result.Skipped++
			continue
		}
		if !usable {
			logger.Info("Invoice skipped, no usable mandate",
				slog.String("invoice_number", inv.InvoiceNumber),
				slog.String("customer_id", inv.CustomerID))
			result.Skipped++
			continue
		}

		seenRefs[item.AccountReference] = struct{}{}
		customersWithInvoiceItem[inv.CustomerID] = struct{}{}
		result.Items = append(result.Items, item)
	}

	orders, err := s.orderRepo.FindOrdersDueForBilling(ctx, billingDate)
	if err != nil {
		logger.Warn("Order fetch failed, continuing with invoices only", slog.String("error", err.Error()))
		result.Warnings = append(result.Warnings, fmt.Sprintf("order fetch failed: %v", err))
		orders = nil
	}

	for _, ord := range orders {
		result.TotalEligible++
		item := domain.ItemFromOrder(ord, billingDate)

		// An invoice for the same customer already covers this cycle's
		// obligation; submitting the order too would double-collect.
		if _, covered := customersWithInvoiceItem[ord.CustomerID]; covered {
			logger.Info("Order skipped, customer already billed via invoice",
				slog.String("order_number", ord.OrderNumber),
				slog.String("customer_id", ord.CustomerID))
			result.Skipped++
			continue
		}
		if _, dup := seenOrders[ord.OrderNumber]; dup {
			result.Skipped++
			continue
		}
		if _, dup := seenRefs[item.AccountReference]; dup {
			logger.Warn("Duplicate order account reference skipped", slog.String("account_reference", item.AccountReference))
			result.Skipped++
			continue
		}

		usable, err := hasUsableMandate(ord.CustomerID)
		if err != nil {
			result.Warnings = append(result.Warnings, err.Error())
			result.Skipped++
			continue
		}
		if !usable {
			logger.Info("Order skipped, no usable mandate",
				slog.String("order_number", ord.OrderNumber),
				slog.String("customer_id", ord.CustomerID))
			result.Skipped++
			continue
		}

		seenRefs[item.AccountReference] = struct{}{}
		seenOrders[ord.OrderNumber] = struct{}{}
		result.Items = append(result.Items, item)
	}

	logger.Info("Collection finished",
		slog.String("billing_date", billingDate.Format("2006-01-02")),
		slog.Int("eligible", result.TotalEligible),
		slog.Int("emitted", len(result.Items)),
		slog.Int("skipped", result.Skipped))

	return result, nil
}
