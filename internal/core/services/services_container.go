package services

import (
	portsrepo "github.com/circletel/debit-order-service/internal/core/ports/repositories"
	portssvc "github.com/circletel/debit-order-service/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The clearing client is constructed by the caller since its configuration
// (and whether it is configured at all) is an environment concern.
func NewServiceContainer(repos portsrepo.RepositoryProvider, clearing portssvc.ClearingClient) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Execution log first since both pipelines record through it.
	container.ExecutionLog = NewExecutionLogService(repos.ExecutionLogRepo)

	container.Collector = NewCollectorService(
		repos.InvoiceRepo,
		repos.OrderRepo,
		repos.MandateRepo,
	)

	container.Submission = NewSubmissionService(
		container.Collector,
		clearing,
		repos.BatchRepo,
		repos.OrderRepo,
		repos.RunLockRepo,
		container.ExecutionLog,
	)

	container.Reconciliation = NewReconciliationService(
		clearing,
		repos.BatchRepo,
		repos.InvoiceRepo,
		repos.OrderRepo,
		container.ExecutionLog,
	)

	container.BatchQuery = NewBatchQueryService(repos.BatchRepo, repos.ExecutionLogRepo)

	return container
}
