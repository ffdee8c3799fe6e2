package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ramplink/ramp_link_app/internal/apperrors"
	"github.com/ramplink/ramp_link_app/internal/core/domain"
	portssvc "github.com/ramplink/ramp_link_app/internal/core/ports/services"
	"github.com/ramplink/ramp_link_app/internal/dto"
	"github.com/ramplink/ramp_link_app/internal/middleware"
)

// suggestionHandler serves AI accounting-code suggestions for a transaction.
type suggestionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	suggestionService  portssvc.SuggestionSvcFacade
}

func newSuggestionHandler(ts portssvc.TransactionSvcFacade, ss portssvc.SuggestionSvcFacade) *suggestionHandler {
	return &suggestionHandler{
		transactionService: ts,
		suggestionService:  ss,
	}
}

// registerSuggestionRoutes registers the suggestion route.
func registerSuggestionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, ss portssvc.SuggestionSvcFacade) {
	h := newSuggestionHandler(ts, ss)
	rg.POST("/transactions/:txnID/suggest-code", h.suggestCode)
}

// suggestCode godoc
// @Summary Suggest an accounting code for a transaction
// @Description Asks the model for the best-fitting code from the active chart of accounts. The suggestion is advisory; applying it is a separate update.
// @Tags suggestions
// @Accept json
// @Produce json
// @Param txnID path string true "Transaction ID"
// @Param input body dto.SuggestCodeRequest false "Optional overrides and prior codes"
// @Success 200 {object} dto.SuggestCodeResponse
// @Failure 404 {object} dto.ActionResult "Transaction not found"
// @Failure 503 {object} dto.ActionResult "Suggestion unavailable"
// @Router /transactions/{txnID}/suggest-code [post]
func (h *suggestionHandler) suggestCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID := c.Param("txnID")

	var req dto.SuggestCodeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for SuggestCode", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.FailResult("Invalid request format: "+err.Error()))
			return
		}
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), txnID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found for suggestion", slog.String("txn_id", txnID))
			c.JSON(http.StatusNotFound, dto.FailResult("Transaction not found"))
		} else {
			logger.Error("Failed to load transaction for suggestion", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.FailResult("Failed to retrieve transaction"))
		}
		return
	}

	input := domain.SuggestionInput{
		TransactionDescription: txn.Description,
		TransactionAmount:      txn.Amount,
		PreviousCostCodes:      req.PreviousCostCodes,
	}
	if req.Description != "" {
		input.TransactionDescription = req.Description
	}
	if !req.Amount.IsZero() {
		input.TransactionAmount = req.Amount
	}

	logger = logger.With(slog.String("txn_id", txnID))
	logger.Info("Received request for code suggestion")

	suggestion, err := h.suggestionService.SuggestCostCode(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error for code suggestion", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.FailResult(err.Error()))
		} else if errors.Is(err, apperrors.ErrSuggestionUnavailable) {
			logger.Warn("Code suggestion unavailable", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, dto.FailResult("Suggestion is unavailable right now"))
		} else {
			logger.Error("Failed to get code suggestion", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.FailResult("Failed to get suggestion"))
		}
		return
	}

	logger.Info("Code suggestion produced", slog.String("code", suggestion.SuggestedCostCode))
	c.JSON(http.StatusOK, dto.ToSuggestCodeResponse(suggestion))
}
