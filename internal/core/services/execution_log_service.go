package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/circletel/debit-order-service/internal/core/domain"
	portsrepo "github.com/circletel/debit-order-service/internal/core/ports/repositories"
	portssvc "github.com/circletel/debit-order-service/internal/core/ports/services"
	"github.com/circletel/debit-order-service/internal/middleware"
	"github.com/google/uuid"
)

type executionLogService struct {
	logRepo portsrepo.ExecutionLogRepositoryFacade
}

// NewExecutionLogService creates the run log recorder.
func NewExecutionLogService(logRepo portsrepo.ExecutionLogRepositoryFacade) portssvc.ExecutionLogSvc {
	return &executionLogService{logRepo: logRepo}
}

var _ portssvc.ExecutionLogSvc = (*executionLogService)(nil)

// Record appends one run log entry. Best-effort: a recording failure is
// logged and swallowed so it can never mask the run outcome it describes.
func (s *executionLogService) Record(ctx context.Context, jobName string, status domain.RunStatus, startedAt time.Time, result any) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payload, err := json.Marshal(result)
	if err != nil {
		logger.Error("Failed to marshal run result", slog.String("job_name", jobName), slog.String("error", err.Error()))
		payload = []byte(`{}`)
	}

	entry := domain.ExecutionLogEntry{
		EntryID:    uuid.NewString(),
		JobName:    jobName,
		Status:     status,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Result:     payload,
	}
	if err := s.logRepo.InsertEntry(ctx, entry); err != nil {
		logger.Error("Failed to write execution log entry",
			slog.String("job_name", jobName),
			slog.String("status", string(status)),
			slog.String("error", err.Error()))
	}
}
