package domain

import (
	"encoding/json"
	"time"
)

// Job names used for execution log entries and run locks.
const (
	JobSubmitDebitOrders    = "submit-debit-orders"
	JobReconcileDebitOrders = "reconcile-debit-orders"
)

// RunStatus is the terminal status of one pipeline run.
type RunStatus string

const (
	RunCompleted           RunStatus = "completed"
	RunCompletedWithErrors RunStatus = "completed_with_errors"
	RunFailed              RunStatus = "failed"
)

// ExecutionLogEntry is one append-only row per pipeline run. It is written
// at the end of every run regardless of outcome; it is the only guaranteed
// write on failure paths.
type ExecutionLogEntry struct {
	EntryID    string          `json:"entryID"` // Synthetic UUID
	JobName    string          `json:"jobName"`
	Status     RunStatus       `json:"status"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Result     json.RawMessage `json:"result"`
}

// SubmissionResult is the structured outcome of one submission run. It is
// both the HTTP response payload and the execution log result.
type SubmissionResult struct {
	Date          string    `json:"date"`
	Status        RunStatus `json:"status"`
	TotalEligible int       `json:"totalEligible"`
	Submitted     int       `json:"submitted"`
	Skipped       int       `json:"skipped"`
	BatchID       string    `json:"batchId,omitempty"`
	Errors        []string  `json:"errors"`
}

// ReconciliationResult is the structured outcome of one reconciliation run.
type ReconciliationResult struct {
	Date           string    `json:"date"`
	Status         RunStatus `json:"status"`
	TotalProcessed int       `json:"totalProcessed"`
	Successful     int       `json:"successful"`
	Unpaid         int       `json:"unpaid"`
	NotFound       int       `json:"notFound"`
	Unclassified   int       `json:"unclassified"`
	Errors         []string  `json:"errors"`
}

// RunLock is a "claim the date" row guarding against two overlapping
// invocations of the same job for the same billing date.
type RunLock struct {
	JobName   string    `json:"jobName"`
	RunDate   time.Time `json:"runDate"`
	RunID     string    `json:"runID"`
	ClaimedAt time.Time `json:"claimedAt"`
}
