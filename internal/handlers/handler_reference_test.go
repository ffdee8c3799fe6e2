package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ramplink/ramp_link_app/internal/apperrors"
	"github.com/ramplink/ramp_link_app/internal/core/domain"
	portssvc "github.com/ramplink/ramp_link_app/internal/core/ports/services"
	"github.com/ramplink/ramp_link_app/internal/dto"
	"github.com/ramplink/ramp_link_app/internal/handlers"
	"github.com/ramplink/ramp_link_app/internal/platform/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReferenceSvcFacade ---
type MockReferenceService struct {
	mock.Mock
}

func (m *MockReferenceService) CostCodes(ctx context.Context) ([]domain.CostCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCode), args.Error(1)
}

func (m *MockReferenceService) ActiveCostCodes(ctx context.Context) ([]domain.CostCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCode), args.Error(1)
}

func (m *MockReferenceService) AccountingFields(ctx context.Context) ([]domain.AccountingField, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingField), args.Error(1)
}

func (m *MockReferenceService) ImportCostCodes(ctx context.Context, codes []domain.CostCode) error {
	args := m.Called(ctx, codes)
	return args.Error(0)
}

func (m *MockReferenceService) ImportAccountingFields(ctx context.Context, fields []domain.AccountingField) error {
	args := m.Called(ctx, fields)
	return args.Error(0)
}

func (m *MockReferenceService) PhasesForJob(ctx context.Context, jobName string) ([]string, error) {
	args := m.Called(ctx, jobName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReferenceService) CategoriesForJobPhase(ctx context.Context, jobName, phaseName string) ([]string, error) {
	args := m.Called(ctx, jobName, phaseName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReferenceService) SyncToRamp(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.ReferenceSvcFacade = (*MockReferenceService)(nil)

// --- Test Suite ---
type ReferenceHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockRefSvc *MockReferenceService
}

func (suite *ReferenceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockRefSvc = new(MockReferenceService)

	container := &portssvc.ServiceContainer{Reference: suite.mockRefSvc}
	handlers.RegisterRoutes(suite.router, &config.Config{}, container)
}

// --- Test Cases ---

func (suite *ReferenceHandlerTestSuite) TestListCostCodes() {
	codes := []domain.CostCode{{ID: "cc1", Account: "7210", Name: "Software & Subscriptions", Status: domain.CostCodeActive}}
	suite.mockRefSvc.On("CostCodes", mock.Anything).Return(codes, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reference/cost-codes", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListCostCodesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Codes, 1)
	suite.Equal("7210 - Software & Subscriptions", resp.Codes[0].Label)
	suite.mockRefSvc.AssertExpectations(suite.T())
}

func (suite *ReferenceHandlerTestSuite) TestListCostCodes_ActiveOnly() {
	suite.mockRefSvc.On("ActiveCostCodes", mock.Anything).Return([]domain.CostCode{}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reference/cost-codes?active=true", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockRefSvc.AssertExpectations(suite.T())
	suite.mockRefSvc.AssertNotCalled(suite.T(), "CostCodes")
}

func (suite *ReferenceHandlerTestSuite) TestImportCostCodes_Success() {
	suite.mockRefSvc.On("ImportCostCodes", mock.Anything, mock.MatchedBy(func(codes []domain.CostCode) bool {
		return len(codes) == 1 && codes[0].Account == "7210" && codes[0].Status == domain.CostCodeActive
	})).Return(nil).Once()

	body := bytes.NewBufferString(`{"codes":[{"id":"cc1","account":"7210","name":"Software","status":"Active"}]}`)
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/reference/cost-codes", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockRefSvc.AssertExpectations(suite.T())
}

func (suite *ReferenceHandlerTestSuite) TestImportCostCodes_EmptyRejected() {
	body := bytes.NewBufferString(`{"codes":[]}`)
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/reference/cost-codes", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	// Rejected at binding; the service is never reached.
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRefSvc.AssertNotCalled(suite.T(), "ImportCostCodes")
}

func (suite *ReferenceHandlerTestSuite) TestListPhases() {
	suite.mockRefSvc.On("PhasesForJob", mock.Anything, "Project Titan").
		Return([]string{"Development", "Infrastructure"}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reference/jobs/Project%20Titan/phases", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.NameListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal([]string{"Development", "Infrastructure"}, resp.Names)
	suite.mockRefSvc.AssertExpectations(suite.T())
}

func (suite *ReferenceHandlerTestSuite) TestSyncToRamp_Unconfigured() {
	suite.mockRefSvc.On("SyncToRamp", mock.Anything).Return(apperrors.ErrValidation).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reference/sync-ramp", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRefSvc.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestReferenceHandler(t *testing.T) {
	suite.Run(t, new(ReferenceHandlerTestSuite))
}
