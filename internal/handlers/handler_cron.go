package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/circletel/debit-order-service/internal/apperrors"
	portssvc "github.com/circletel/debit-order-service/internal/core/ports/services"
	"github.com/circletel/debit-order-service/internal/dto"
	"github.com/circletel/debit-order-service/internal/middleware"
	"github.com/circletel/debit-order-service/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// cronHandler handles the scheduler-facing trigger endpoints. Both GET and
// POST are registered per route because scheduler platforms differ in which
// verb their HTTP trigger emits.
type cronHandler struct {
	submission     portssvc.SubmissionSvcFacade
	reconciliation portssvc.ReconciliationSvcFacade
	runTimeout     time.Duration
}

// newCronHandler creates a new cronHandler.
func newCronHandler(submission portssvc.SubmissionSvcFacade, reconciliation portssvc.ReconciliationSvcFacade, runTimeout time.Duration) *cronHandler {
	return &cronHandler{
		submission:     submission,
		reconciliation: reconciliation,
		runTimeout:     runTimeout,
	}
}

// registerCronRoutes registers the cron trigger routes.
func registerCronRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newCronHandler(services.Submission, services.Reconciliation, cfg.RunTimeout)

	rg.GET("/submit-debit-orders", h.submitDebitOrders)
	rg.POST("/submit-debit-orders", h.submitDebitOrders)
	rg.GET("/reconcile-debit-orders", h.reconcileDebitOrders)
	rg.POST("/reconcile-debit-orders", h.reconcileDebitOrders)
}

// bindTrigger reads the trigger parameters from either the JSON body (POST)
// or the query string (GET).
func bindTrigger(c *gin.Context) (dto.TriggerRunRequest, error) {
	var req dto.TriggerRunRequest
	if c.Request.Method == http.MethodPost && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, err
		}
		return req, nil
	}
	req.Date = c.Query("date")
	req.Force = c.Query("force") == "true"
	return req, nil
}

// submitDebitOrders godoc
// @Summary Trigger the daily debit order submission run
// @Description Collects eligible invoices and orders for the billing date, submits them as one batch to the clearing service, records the batch and advances billing cycles. Business-level failures are reported inside the result payload.
// @Tags cron
// @Accept json
// @Produce json
// @Param run body dto.TriggerRunRequest false "Run parameters"
// @Success 200 {object} dto.SubmissionRunResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 409 {object} map[string]string "Run already claimed for date"
// @Failure 500 {object} map[string]string "Run escaped with an unexpected error"
// @Security BearerAuth
// @Router /cron/submit-debit-orders [post]
func (h *cronHandler) submitDebitOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req, err := bindTrigger(c)
	if err != nil {
		logger.Warn("Failed to bind trigger request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	billingDate, err := req.ResolveDate(time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	logger.Info("Submission run triggered",
		slog.String("date", billingDate.Format("2006-01-02")),
		slog.Bool("force", req.Force))

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.runTimeout)
	defer cancel()

	result, err := h.submission.Run(ctx, billingDate, req.Force)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Submission run already executed for this date. Pass force to re-run."})
			return
		}
		logger.Error("Submission run escaped with error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Submission run failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionRunResponse(result))
}

// reconcileDebitOrders godoc
// @Summary Trigger the settlement reconciliation run
// @Description Fetches the clearing service statement for the settlement date and applies transaction outcomes to recorded batch items, invoices and orders. Business-level failures are reported inside the result payload.
// @Tags cron
// @Accept json
// @Produce json
// @Param run body dto.TriggerRunRequest false "Run parameters"
// @Success 200 {object} dto.ReconciliationRunResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Run escaped with an unexpected error"
// @Security BearerAuth
// @Router /cron/reconcile-debit-orders [post]
func (h *cronHandler) reconcileDebitOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req, err := bindTrigger(c)
	if err != nil {
		logger.Warn("Failed to bind trigger request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	settlementDate, err := req.ResolveDate(time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	logger.Info("Reconciliation run triggered", slog.String("date", settlementDate.Format("2006-01-02")))

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.runTimeout)
	defer cancel()

	result, err := h.reconciliation.Run(ctx, settlementDate)
	if err != nil {
		logger.Error("Reconciliation run escaped with error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation run failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationRunResponse(result))
}
