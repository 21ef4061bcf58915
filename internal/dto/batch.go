package dto

import (
	"time"

	"github.com/circletel/debit-order-service/internal/core/domain"
)

// BatchResponse defines the data returned for a batch header.
type BatchResponse struct {
	BatchID     string    `json:"batchID"`
	BatchName   string    `json:"batchName"`
	ItemCount   int       `json:"itemCount"`
	TotalAmount string    `json:"totalAmount"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// ToBatchResponse converts a domain.Batch to BatchResponse DTO.
func ToBatchResponse(batch *domain.Batch) BatchResponse {
	return BatchResponse{
		BatchID:     batch.BatchID,
		BatchName:   batch.BatchName,
		ItemCount:   batch.ItemCount,
		TotalAmount: batch.TotalAmount.StringFixed(2),
		Status:      string(batch.Status),
		SubmittedAt: batch.SubmittedAt,
		CreatedAt:   batch.CreatedAt,
		CreatedBy:   batch.CreatedBy,
	}
}

// ToListBatchResponse converts a slice of domain.Batch to DTOs.
func ToListBatchResponse(batches []domain.Batch) []BatchResponse {
	res := make([]BatchResponse, len(batches))
	for i, batch := range batches {
		res[i] = ToBatchResponse(&batch)
	}
	return res
}

// BatchItemResponse defines the data returned for one batch line.
type BatchItemResponse struct {
	BatchItemID      string     `json:"batchItemID"`
	BatchID          string     `json:"batchID"`
	AccountReference string     `json:"accountReference"`
	Amount           string     `json:"amount"`
	ActionDate       time.Time  `json:"actionDate"`
	CustomerID       string     `json:"customerID"`
	InvoiceNumber    string     `json:"invoiceNumber,omitempty"`
	OrderNumber      string     `json:"orderNumber,omitempty"`
	Status           string     `json:"status"`
	TransactionCode  string     `json:"transactionCode,omitempty"`
	ReconciledAt     *time.Time `json:"reconciledAt,omitempty"`
}

// ToBatchItemResponse converts a domain.BatchItem to BatchItemResponse DTO.
func ToBatchItemResponse(item *domain.BatchItem) BatchItemResponse {
	return BatchItemResponse{
		BatchItemID:      item.BatchItemID,
		BatchID:          item.BatchID,
		AccountReference: item.AccountReference,
		Amount:           item.Amount.StringFixed(2),
		ActionDate:       item.ActionDate,
		CustomerID:       item.CustomerID,
		InvoiceNumber:    item.InvoiceNumber,
		OrderNumber:      item.OrderNumber,
		Status:           string(item.Status),
		TransactionCode:  item.TransactionCode,
		ReconciledAt:     item.ReconciledAt,
	}
}

// ToListBatchItemResponse converts a slice of domain.BatchItem to DTOs.
func ToListBatchItemResponse(items []domain.BatchItem) []BatchItemResponse {
	res := make([]BatchItemResponse, len(items))
	for i, item := range items {
		res[i] = ToBatchItemResponse(&item)
	}
	return res
}

// BatchDetailResponse is a batch header together with its line records.
type BatchDetailResponse struct {
	Batch BatchResponse       `json:"batch"`
	Items []BatchItemResponse `json:"items"`
}
