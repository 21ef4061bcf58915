package services

import (
	"context"

	"github.com/circletel/debit-order-service/internal/core/domain"
	portsrepo "github.com/circletel/debit-order-service/internal/core/ports/repositories"
	portssvc "github.com/circletel/debit-order-service/internal/core/ports/services"
)

type batchQueryService struct {
	batchRepo portsrepo.BatchReader
	logRepo   portsrepo.ExecutionLogRepositoryFacade
}

// NewBatchQueryService creates the read-only service behind the admin API.
func NewBatchQueryService(batchRepo portsrepo.BatchReader, logRepo portsrepo.ExecutionLogRepositoryFacade) portssvc.BatchQuerySvcFacade {
	return &batchQueryService{batchRepo: batchRepo, logRepo: logRepo}
}

var _ portssvc.BatchQuerySvcFacade = (*batchQueryService)(nil)

func (s *batchQueryService) ListBatches(ctx context.Context, limit int, offset int) ([]domain.Batch, error) {
	return s.batchRepo.ListBatches(ctx, normalizeLimit(limit), max(offset, 0))
}

func (s *batchQueryService) GetBatch(ctx context.Context, batchID string) (*domain.Batch, []domain.BatchItem, error) {
	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.batchRepo.ListBatchItems(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	return batch, items, nil
}

func (s *batchQueryService) ListRuns(ctx context.Context, jobName string, limit int, offset int) ([]domain.ExecutionLogEntry, error) {
	return s.logRepo.ListEntries(ctx, jobName, normalizeLimit(limit), max(offset, 0))
}

const defaultPageSize = 20

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return defaultPageSize
	}
	return limit
}
