package models

import (
	"encoding/json"
	"time"
)

// ExecutionLogEntry maps the append-only cron_execution_log table.
type ExecutionLogEntry struct {
	EntryID    string          `json:"entryID"` // Primary Key (UUID)
	JobName    string          `json:"jobName"`
	Status     string          `json:"status"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Result     json.RawMessage `json:"result"` // JSONB
}
