package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/circletel/debit-order-service/internal/apperrors"
	"github.com/circletel/debit-order-service/internal/core/domain"
	portssvc "github.com/circletel/debit-order-service/internal/core/ports/services"
	"github.com/circletel/debit-order-service/internal/dto"
	"github.com/circletel/debit-order-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// batchHandler handles the read-only admin inspection API.
type batchHandler struct {
	batchQuery portssvc.BatchQuerySvcFacade
}

// newBatchHandler creates a new batchHandler.
func newBatchHandler(bq portssvc.BatchQuerySvcFacade) *batchHandler {
	return &batchHandler{batchQuery: bq}
}

// registerBatchRoutes registers routes related to batch and run inspection.
func registerBatchRoutes(rg *gin.RouterGroup, batchQuery portssvc.BatchQuerySvcFacade) {
	h := newBatchHandler(batchQuery)

	batches := rg.Group("/batches")
	{
		batches.GET("", h.listBatches)
		batches.GET("/:batchID", h.getBatch)
	}
	rg.GET("/runs", h.listRuns)
}

func paginationParams(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// listBatches godoc
// @Summary List submitted debit order batches
// @Description Retrieves batch headers, newest first
// @Tags batches
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.BatchResponse
// @Failure 500 {object} map[string]string "Failed to list batches"
// @Security BearerAuth
// @Router /batches [get]
func (h *batchHandler) listBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := paginationParams(c)

	batches, err := h.batchQuery.ListBatches(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list batches", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list batches"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBatchResponse(batches))
}

// getBatch godoc
// @Summary Get a batch with its line records
// @Description Retrieves one batch header and all its items by clearing-service batch id
// @Tags batches
// @Produce json
// @Param batchID path string true "Batch ID"
// @Success 200 {object} dto.BatchDetailResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 500 {object} map[string]string "Failed to retrieve batch"
// @Security BearerAuth
// @Router /batches/{batchID} [get]
func (h *batchHandler) getBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	batch, items, err := h.batchQuery.GetBatch(c.Request.Context(), batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
			return
		}
		logger.Error("Failed to retrieve batch", slog.String("batch_id", batchID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve batch"})
		return
	}

	c.JSON(http.StatusOK, dto.BatchDetailResponse{
		Batch: dto.ToBatchResponse(batch),
		Items: dto.ToListBatchItemResponse(items),
	})
}

// listRuns godoc
// @Summary List pipeline execution log entries
// @Description Retrieves run log rows, newest first, optionally filtered by job name
// @Tags runs
// @Produce json
// @Param job query string false "Job name filter" Enums(submit-debit-orders, reconcile-debit-orders)
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.ExecutionLogEntryResponse
// @Failure 400 {object} map[string]string "Unknown job name"
// @Failure 500 {object} map[string]string "Failed to list runs"
// @Security BearerAuth
// @Router /runs [get]
func (h *batchHandler) listRuns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := paginationParams(c)

	jobName := c.Query("job")
	if jobName != "" && jobName != domain.JobSubmitDebitOrders && jobName != domain.JobReconcileDebitOrders {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown job name"})
		return
	}

	entries, err := h.batchQuery.ListRuns(c.Request.Context(), jobName, limit, offset)
	if err != nil {
		logger.Error("Failed to list runs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list runs"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExecutionLogEntryResponse(entries))
}
