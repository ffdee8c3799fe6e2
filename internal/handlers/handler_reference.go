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

// referenceHandler handles HTTP requests for the two reference sets.
type referenceHandler struct {
	referenceService portssvc.ReferenceSvcFacade
}

func newReferenceHandler(rs portssvc.ReferenceSvcFacade) *referenceHandler {
	return &referenceHandler{referenceService: rs}
}

// registerReferenceRoutes registers routes related to reference data.
func registerReferenceRoutes(rg *gin.RouterGroup, rs portssvc.ReferenceSvcFacade) {
	h := newReferenceHandler(rs)

	reference := rg.Group("/reference")
	{
		reference.GET("/cost-codes", h.listCostCodes)
		reference.PUT("/cost-codes", h.importCostCodes)
		reference.GET("/accounting-fields", h.listAccountingFields)
		reference.PUT("/accounting-fields", h.importAccountingFields)
		reference.GET("/jobs/:jobName/phases", h.listPhases)
		reference.GET("/jobs/:jobName/phases/:phaseName/categories", h.listCategories)
		reference.POST("/sync-ramp", h.syncToRamp)
	}
}

// listCostCodes godoc
// @Summary List the chart of accounts
// @Tags reference
// @Produce json
// @Param active query bool false "Only return active entries"
// @Success 200 {object} dto.ListCostCodesResponse
// @Failure 500 {object} dto.ActionResult "Failed to list cost codes"
// @Router /reference/cost-codes [get]
func (h *referenceHandler) listCostCodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var (
		codes []domain.CostCode
		err   error
	)
	if c.Query("active") == "true" {
		codes, err = h.referenceService.ActiveCostCodes(c.Request.Context())
	} else {
		codes, err = h.referenceService.CostCodes(c.Request.Context())
	}
	if err != nil {
		logger.Error("Failed to list cost codes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.FailResult("Failed to list cost codes"))
		return
	}

	c.JSON(http.StatusOK, dto.ListCostCodesResponse{Codes: dto.ToListCostCodeResponse(codes)})
}

// importCostCodes godoc
// @Summary Replace the chart of accounts
// @Description Overwrites the stored set wholesale; an empty set is rejected
// @Tags reference
// @Accept json
// @Produce json
// @Param codes body dto.ImportCostCodesRequest true "Complete chart of accounts"
// @Success 200 {object} dto.ActionResult
// @Failure 400 {object} dto.ActionResult "Invalid input"
// @Failure 500 {object} dto.ActionResult "Failed to import cost codes"
// @Router /reference/cost-codes [put]
func (h *referenceHandler) importCostCodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ImportCostCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImportCostCodes", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.FailResult("Invalid request format: "+err.Error()))
		return
	}

	logger.Info("Received request to import cost codes", slog.Int("count", len(req.Codes)))

	if err := h.referenceService.ImportCostCodes(c.Request.Context(), req.ToDomainCostCodes()); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error importing cost codes", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.FailResult(err.Error()))
		} else {
			logger.Error("Failed to import cost codes", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.FailResult("Failed to import cost codes"))
		}
		return
	}

	logger.Info("Cost codes imported successfully")
	c.JSON(http.StatusOK, dto.OKResult())
}

// listAccountingFields godoc
// @Summary List the job costing reference set
// @Tags reference
// @Produce json
// @Success 200 {object} dto.ListAccountingFieldsResponse
// @Failure 500 {object} dto.ActionResult "Failed to list accounting fields"
// @Router /reference/accounting-fields [get]
func (h *referenceHandler) listAccountingFields(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fields, err := h.referenceService.AccountingFields(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list accounting fields", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.FailResult("Failed to list accounting fields"))
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountingFieldsResponse{
		Fields:   dto.ToListAccountingFieldResponse(fields),
		JobNames: domain.JobNames(fields),
	})
}

// importAccountingFields godoc
// @Summary Replace the job costing reference set
// @Description Overwrites the stored set wholesale; an empty set is rejected
// @Tags reference
// @Accept json
// @Produce json
// @Param fields body dto.ImportAccountingFieldsRequest true "Complete tuple set"
// @Success 200 {object} dto.ActionResult
// @Failure 400 {object} dto.ActionResult "Invalid input"
// @Failure 500 {object} dto.ActionResult "Failed to import accounting fields"
// @Router /reference/accounting-fields [put]
func (h *referenceHandler) importAccountingFields(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ImportAccountingFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImportAccountingFields", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.FailResult("Invalid request format: "+err.Error()))
		return
	}

	logger.Info("Received request to import accounting fields", slog.Int("count", len(req.Fields)))

	if err := h.referenceService.ImportAccountingFields(c.Request.Context(), req.ToDomainAccountingFields()); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error importing accounting fields", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.FailResult(err.Error()))
		} else {
			logger.Error("Failed to import accounting fields", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.FailResult("Failed to import accounting fields"))
		}
		return
	}

	logger.Info("Accounting fields imported successfully")
	c.JSON(http.StatusOK, dto.OKResult())
}

// listPhases godoc
// @Summary List the valid phases for a job
// @Tags reference
// @Produce json
// @Param jobName path string true "Job name"
// @Success 200 {object} dto.NameListResponse
// @Failure 500 {object} dto.ActionResult "Failed to list phases"
// @Router /reference/jobs/{jobName}/phases [get]
func (h *referenceHandler) listPhases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	jobName := c.Param("jobName")

	phases, err := h.referenceService.PhasesForJob(c.Request.Context(), jobName)
	if err != nil {
		logger.Error("Failed to list phases", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.FailResult("Failed to list phases"))
		return
	}

	c.JSON(http.StatusOK, dto.NameListResponse{Names: phases})
}

// listCategories godoc
// @Summary List the valid categories for a (job, phase) pair
// @Tags reference
// @Produce json
// @Param jobName path string true "Job name"
// @Param phaseName path string true "Phase name"
// @Success 200 {object} dto.NameListResponse
// @Failure 500 {object} dto.ActionResult "Failed to list categories"
// @Router /reference/jobs/{jobName}/phases/{phaseName}/categories [get]
func (h *referenceHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	jobName := c.Param("jobName")
	phaseName := c.Param("phaseName")

	categories, err := h.referenceService.CategoriesForJobPhase(c.Request.Context(), jobName, phaseName)
	if err != nil {
		logger.Error("Failed to list categories", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.FailResult("Failed to list categories"))
		return
	}

	c.JSON(http.StatusOK, dto.NameListResponse{Names: categories})
}

// syncToRamp godoc
// @Summary Push both reference sets to Ramp
// @Tags reference
// @Produce json
// @Success 200 {object} dto.ActionResult
// @Failure 400 {object} dto.ActionResult "Push not configured"
// @Failure 502 {object} dto.ActionResult "Ramp rejected the push"
// @Router /reference/sync-ramp [post]
func (h *referenceHandler) syncToRamp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to sync reference data to Ramp")

	if err := h.referenceService.SyncToRamp(c.Request.Context()); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Ramp sync not configured", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.FailResult(err.Error()))
		} else {
			logger.Error("Failed to sync reference data to Ramp", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, dto.FailResult("Failed to sync with Ramp"))
		}
		return
	}

	logger.Info("Reference data synced to Ramp")
	c.JSON(http.StatusOK, dto.OKResult())
}
