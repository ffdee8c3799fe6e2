package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ramplink/ramp_link_app/internal/apperrors"
	portssvc "github.com/ramplink/ramp_link_app/internal/core/ports/services"
	"github.com/ramplink/ramp_link_app/internal/dto"
	"github.com/ramplink/ramp_link_app/internal/middleware"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	projectionService  portssvc.ProjectionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, ps portssvc.ProjectionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		projectionService:  ps,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, ps portssvc.ProjectionSvcFacade) {
	h := newTransactionHandler(ts, ps)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/stream", h.streamTransactions)
		transactions.GET("/:txnID", h.getTransaction)
		transactions.PATCH("/:txnID", h.updateTransaction)
	}
}

// listTransactions godoc
// @Summary List all transactions
// @Description Returns the current projection snapshot, newest first
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.ListTransactionsResponse
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	snap := h.projectionService.Snapshot()
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToListTransactionResponse(snap.Transactions),
		Loading:      snap.Loading,
	})
}

// streamTransactions godoc
// @Summary Stream transaction snapshots
// @Description Server-sent events; each event is a complete replacement snapshot
// @Tags transactions
// @Produce text/event-stream
// @Router /transactions/stream [get]
func (h *transactionHandler) streamTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	snapshots, dispose := h.projectionService.Subscribe()
	defer dispose()

	clientGone := c.Writer.CloseNotify()
	for {
		select {
		case <-clientGone:
			logger.Debug("SSE client disconnected")
			return
		case snap, ok := <-snapshots:
			if !ok {
				// Projection shut down; end the stream cleanly.
				return
			}
			c.SSEvent("snapshot", dto.ListTransactionsResponse{
				Transactions: dto.ToListTransactionResponse(snap.Transactions),
				Loading:      snap.Loading,
			})
			c.Writer.Flush()
		}
	}
}

// getTransaction godoc
// @Summary Get a transaction by id
// @Tags transactions
// @Produce json
// @Param txnID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} dto.ActionResult "Transaction not found"
// @Failure 500 {object} dto.ActionResult "Failed to retrieve transaction"
// @Router /transactions/{txnID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID := c.Param("txnID")

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), txnID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found", slog.String("txn_id", txnID))
			c.JSON(http.StatusNotFound, dto.FailResult("Transaction not found"))
		} else {
			logger.Error("Failed to get transaction from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.FailResult("Failed to retrieve transaction"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Partially update a transaction
// @Description Applies a field-level merge; absent keys are untouched, explicit nulls clear
// @Tags transactions
// @Accept json
// @Produce json
// @Param txnID path string true "Transaction ID"
// @Param patch body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.UpdateTransactionResponse
// @Failure 400 {object} dto.ActionResult "Invalid input"
// @Failure 404 {object} dto.ActionResult "Transaction not found"
// @Failure 500 {object} dto.ActionResult "Failed to update transaction"
// @Router /transactions/{txnID} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID := c.Param("txnID")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.FailResult("Invalid request format: "+err.Error()))
		return
	}

	logger = logger.With(slog.String("txn_id", txnID))
	logger.Info("Received request to update transaction")

	updated, err := h.transactionService.UpdateTransaction(c.Request.Context(), txnID, req.ToDomainPatch())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found for update")
			c.JSON(http.StatusNotFound, dto.FailResult("Transaction not found"))
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.FailResult(err.Error()))
		} else {
			logger.Error("Failed to update transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.FailResult("Failed to update transaction"))
		}
		return
	}

	logger.Info("Transaction updated successfully")
	resp := dto.ToTransactionResponse(updated)
	c.JSON(http.StatusOK, dto.UpdateTransactionResponse{
		ActionResult: dto.OKResult(),
		Transaction:  &resp,
	})
}
