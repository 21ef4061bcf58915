package mapping

import (
	"github.com/circletel/debit-order-service/internal/core/domain"
	"github.com/circletel/debit-order-service/internal/models"
)

// ToModelBatch converts a domain Batch to a model Batch.
func ToModelBatch(d domain.Batch) models.Batch {
	return models.Batch{
		BatchID:     d.BatchID,
		BatchName:   d.BatchName,
		ItemCount:   d.ItemCount,
		TotalAmount: d.TotalAmount,
		Status:      string(d.Status),
		SubmittedAt: d.SubmittedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBatch converts a model Batch to a domain Batch.
func ToDomainBatch(m models.Batch) domain.Batch {
	return domain.Batch{
		BatchID:     m.BatchID,
		BatchName:   m.BatchName,
		ItemCount:   m.ItemCount,
		TotalAmount: m.TotalAmount,
		Status:      domain.BatchStatus(m.Status),
		SubmittedAt: m.SubmittedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBatchSlice converts a slice of model Batches to domain Batches.
func ToDomainBatchSlice(ms []models.Batch) []domain.Batch {
	ds := make([]domain.Batch, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBatch(m)
	}
	return ds
}

// ToModelBatchItem converts a domain BatchItem to a model BatchItem.
func ToModelBatchItem(d domain.BatchItem) models.BatchItem {
	return models.BatchItem{
		BatchItemID:      d.BatchItemID,
		BatchID:          d.BatchID,
		AccountReference: d.AccountReference,
		Amount:           d.Amount,
		ActionDate:       d.ActionDate,
		CustomerID:       d.CustomerID,
		InvoiceNumber:    d.InvoiceNumber,
		OrderNumber:      d.OrderNumber,
		Status:           string(d.Status),
		TransactionCode:  d.TransactionCode,
		ReconciledAt:     d.ReconciledAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBatchItem converts a model BatchItem to a domain BatchItem.
func ToDomainBatchItem(m models.BatchItem) domain.BatchItem {
	return domain.BatchItem{
		BatchItemID:      m.BatchItemID,
		BatchID:          m.BatchID,
		AccountReference: m.AccountReference,
		Amount:           m.Amount,
		ActionDate:       m.ActionDate,
		CustomerID:       m.CustomerID,
		InvoiceNumber:    m.InvoiceNumber,
		OrderNumber:      m.OrderNumber,
		Status:           domain.BatchItemStatus(m.Status),
		TransactionCode:  m.TransactionCode,
		ReconciledAt:     m.ReconciledAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBatchItemSlice converts a slice of model BatchItems to domain
// BatchItems.
func ToDomainBatchItemSlice(ms []models.BatchItem) []domain.BatchItem {
	ds := make([]domain.BatchItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBatchItem(m)
	}
	return ds
}

// ToModelExecutionLogEntry converts a domain ExecutionLogEntry to its model.
func ToModelExecutionLogEntry(d domain.ExecutionLogEntry) models.ExecutionLogEntry {
	return models.ExecutionLogEntry{
		EntryID:    d.EntryID,
		JobName:    d.JobName,
		Status:     string(d.Status),
		StartedAt:  d.StartedAt,
		FinishedAt: d.FinishedAt,
		Result:     d.Result,
	}
}

// ToDomainExecutionLogEntry converts a model ExecutionLogEntry to its domain.
func ToDomainExecutionLogEntry(m models.ExecutionLogEntry) domain.ExecutionLogEntry {
	return domain.ExecutionLogEntry{
		EntryID:    m.EntryID,
		JobName:    m.JobName,
		Status:     domain.RunStatus(m.Status),
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
		Result:     m.Result,
	}
}

// ToDomainExecutionLogEntrySlice converts a slice of model entries.
func ToDomainExecutionLogEntrySlice(ms []models.ExecutionLogEntry) []domain.ExecutionLogEntry {
	ds := make([]domain.ExecutionLogEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExecutionLogEntry(m)
	}
	return ds
}
