package dto

import (
	"time"

	"github.com/circletel/debit-order-service/internal/core/domain"
)

// TriggerRunRequest is the optional body of a cron trigger. Date defaults to
// today when omitted; Force re-claims a date whose previous run failed.
type TriggerRunRequest struct {
	Date  string `json:"date" binding:"omitempty,datetime=2006-01-02" example:"2025-03-15"`
	Force bool   `json:"force"`
}

// ResolveDate parses the requested date, defaulting to now truncated to the
// day when the field is empty.
func (r TriggerRunRequest) ResolveDate(now time.Time) (time.Time, error) {
	if r.Date == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", r.Date)
}

// SubmissionRunResponse is the payload of a submission trigger.
type SubmissionRunResponse struct {
	Date          string   `json:"date"`
	Status        string   `json:"status"`
	TotalEligible int      `json:"totalEligible"`
	Submitted     int      `json:"submitted"`
	Skipped       int      `json:"skipped"`
	BatchID       string   `json:"batchId,omitempty"`
	Errors        []string `json:"errors"`
}

// ToSubmissionRunResponse converts a domain.SubmissionResult to its DTO.
func ToSubmissionRunResponse(res *domain.SubmissionResult) SubmissionRunResponse {
	return SubmissionRunResponse{
		Date:          res.Date,
		Status:        string(res.Status),
		TotalEligible: res.TotalEligible,
		Submitted:     res.Submitted,
		Skipped:       res.Skipped,
		BatchID:       res.BatchID,
		Errors:        res.Errors,
	}
}

// ReconciliationRunResponse is the payload of a reconciliation trigger.
type ReconciliationRunResponse struct {
	Date           string   `json:"date"`
	Status         string   `json:"status"`
	TotalProcessed int      `json:"totalProcessed"`
	Successful     int      `json:"successful"`
	Unpaid         int      `json:"unpaid"`
	NotFound       int      `json:"notFound"`
	Unclassified   int      `json:"unclassified"`
	Errors         []string `json:"errors"`
}

// ToReconciliationRunResponse converts a domain.ReconciliationResult to its DTO.
func ToReconciliationRunResponse(res *domain.ReconciliationResult) ReconciliationRunResponse {
	return ReconciliationRunResponse{
		Date:           res.Date,
		Status:         string(res.Status),
		TotalProcessed: res.TotalProcessed,
		Successful:     res.Successful,
		Unpaid:         res.Unpaid,
		NotFound:       res.NotFound,
		Unclassified:   res.Unclassified,
		Errors:         res.Errors,
	}
}

// ExecutionLogEntryResponse is one run log row in the admin API.
type ExecutionLogEntryResponse struct {
	EntryID    string    `json:"entryID"`
	JobName    string    `json:"jobName"`
	Status     string    `json:"status"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Result     any       `json:"result"`
}

// ToExecutionLogEntryResponse converts a domain.ExecutionLogEntry to its DTO.
// The stored result is raw JSON and is passed through untouched.
func ToExecutionLogEntryResponse(entry *domain.ExecutionLogEntry) ExecutionLogEntryResponse {
	return ExecutionLogEntryResponse{
		EntryID:    entry.EntryID,
		JobName:    entry.JobName,
		Status:     string(entry.Status),
		StartedAt:  entry.StartedAt,
		FinishedAt: entry.FinishedAt,
		Result:     entry.Result,
	}
}

// ToListExecutionLogEntryResponse converts a slice of entries to DTOs.
func ToListExecutionLogEntryResponse(entries []domain.ExecutionLogEntry) []ExecutionLogEntryResponse {
	res := make([]ExecutionLogEntryResponse, len(entries))
	for i, entry := range entries {
		res[i] = ToExecutionLogEntryResponse(&entry)
	}
	return res
}
