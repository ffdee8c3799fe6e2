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

// receiptHandler handles receipt upload and removal for a transaction.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
}

func newReceiptHandler(rs portssvc.ReceiptSvcFacade) *receiptHandler {
	return &receiptHandler{receiptService: rs}
}

// registerReceiptRoutes registers routes related to transaction receipts.
func registerReceiptRoutes(rg *gin.RouterGroup, rs portssvc.ReceiptSvcFacade) {
	h := newReceiptHandler(rs)

	receipts := rg.Group("/transactions/:txnID/receipt")
	{
		receipts.POST("", h.attachReceipt)
		receipts.DELETE("", h.removeReceipt)
	}
}

// attachReceipt godoc
// @Summary Attach a receipt to a transaction
// @Description Uploads the receipt binary and writes its retrieval URL on the transaction
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param txnID path string true "Transaction ID"
// @Param receipt formData file true "Receipt file"
// @Success 200 {object} dto.AttachReceiptResponse
// @Failure 400 {object} dto.ActionResult "Invalid input"
// @Failure 404 {object} dto.ActionResult "Transaction not found"
// @Failure 500 {object} dto.ActionResult "Failed to attach receipt"
// @Router /transactions/{txnID}/receipt [post]
func (h *receiptHandler) attachReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID := c.Param("txnID")

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		logger.Warn("Missing receipt file in upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.FailResult("A 'receipt' file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded receipt", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.FailResult("Failed to read uploaded file"))
		return
	}
	defer file.Close()

	logger = logger.With(slog.String("txn_id", txnID), slog.String("filename", fileHeader.Filename))
	logger.Info("Received request to attach receipt")

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.receiptService.AttachReceipt(c.Request.Context(), txnID, fileHeader.Filename, contentType, file)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found for receipt attach")
			c.JSON(http.StatusNotFound, dto.FailResult("Transaction not found"))
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error attaching receipt", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.FailResult(err.Error()))
		} else {
			logger.Error("Failed to attach receipt in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.FailResult("Failed to attach receipt"))
		}
		return
	}

	logger.Info("Receipt attached successfully")
	c.JSON(http.StatusOK, dto.AttachReceiptResponse{
		ActionResult: dto.OKResult(),
		ReceiptURL:   url,
	})
}

// removeReceipt godoc
// @Summary Remove the receipt from a transaction
// @Description Clears receiptUrl; the stored object is deleted best effort
// @Tags receipts
// @Produce json
// @Param txnID path string true "Transaction ID"
// @Success 200 {object} dto.ActionResult
// @Failure 404 {object} dto.ActionResult "Transaction not found"
// @Failure 500 {object} dto.ActionResult "Failed to remove receipt"
// @Router /transactions/{txnID}/receipt [delete]
func (h *receiptHandler) removeReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID := c.Param("txnID")

	logger = logger.With(slog.String("txn_id", txnID))
	logger.Info("Received request to remove receipt")

	if err := h.receiptService.RemoveReceipt(c.Request.Context(), txnID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found for receipt removal")
			c.JSON(http.StatusNotFound, dto.FailResult("Transaction not found"))
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error removing receipt", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.FailResult(err.Error()))
		} else {
			logger.Error("Failed to remove receipt in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.FailResult("Failed to remove receipt"))
		}
		return
	}

	logger.Info("Receipt removed successfully")
	c.JSON(http.StatusOK, dto.OKResult())
}
