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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionSvcFacade ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, txnID string) (*domain.Transaction, error) {
	args := m.Called(ctx, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, txnID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	args := m.Called(ctx, txnID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock ProjectionSvcFacade ---
type MockProjectionService struct {
	mock.Mock
}

func (m *MockProjectionService) Snapshot() portssvc.ProjectionSnapshot {
	args := m.Called()
	return args.Get(0).(portssvc.ProjectionSnapshot)
}

func (m *MockProjectionService) Subscribe() (<-chan portssvc.ProjectionSnapshot, func()) {
	args := m.Called()
	return args.Get(0).(<-chan portssvc.ProjectionSnapshot), args.Get(1).(func())
}

func (m *MockProjectionService) Close() {
	m.Called()
}

var _ portssvc.ProjectionSvcFacade = (*MockProjectionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockTxnService *MockTransactionService
	mockProjection *MockProjectionService
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockTxnService = new(MockTransactionService)
	suite.mockProjection = new(MockProjectionService)

	container := &portssvc.ServiceContainer{
		Transaction: suite.mockTxnService,
		Projection:  suite.mockProjection,
	}
	handlers.RegisterRoutes(suite.router, &config.Config{}, container)
}

func sampleTransaction() *domain.Transaction {
	code := "7210 - Software & Subscriptions"
	receipt := "https://storage.googleapis.com/receipts-bucket/receipts/txn_1/r.pdf"
	return &domain.Transaction{
		TxnID:       "txn_1",
		Vendor:      "Figma",
		Description: "Design tool subscription",
		Amount:      decimal.NewFromFloat(45.00),
		Date:        "2025-07-01T10:30:00Z",
		ReceiptURL:  &receipt,
		CodedFields: domain.CodedFields{AccountingCode: &code},
	}
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	txn := sampleTransaction()
	suite.mockProjection.On("Snapshot").Return(portssvc.ProjectionSnapshot{
		Transactions: []domain.Transaction{*txn},
		Loading:      false,
	}).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Loading)
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal("txn_1", resp.Transactions[0].TxnID)
	suite.Equal(domain.StatusPendingSync, resp.Transactions[0].Status, "status must be derived on the way out")
	suite.mockProjection.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_Success() {
	txn := sampleTransaction()
	suite.mockTxnService.On("GetTransaction", mock.Anything, "txn_1").Return(txn, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/txn_1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("txn_1", resp.TxnID)
	suite.Equal("Figma", resp.Vendor)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	suite.mockTxnService.On("GetTransaction", mock.Anything, "txn_missing").Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/txn_missing", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)

	var resp dto.ActionResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_PartialPatch() {
	updated := sampleTransaction()
	memo := "Annual plan"
	updated.CodedFields.Memo = &memo

	suite.mockTxnService.On("UpdateTransaction", mock.Anything, "txn_1", mock.MatchedBy(func(p domain.TransactionPatch) bool {
		cf := p.CodedFields
		// Only the memo key was present in the JSON body.
		return cf.Memo.Set && cf.Memo.Valid && cf.Memo.Value == "Annual plan" &&
			!cf.AccountingCode.Set && !cf.JobName.Set && !p.ReceiptURL.Set
	})).Return(updated, nil).Once()

	body := bytes.NewBufferString(`{"codedFields":{"memo":"Annual plan"}}`)
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/transactions/txn_1", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.UpdateTransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Require().NotNil(resp.Transaction)
	suite.Equal("Annual plan", *resp.Transaction.CodedFields.Memo)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_NullClearsField() {
	updated := sampleTransaction()
	updated.CodedFields.AccountingCode = nil

	suite.mockTxnService.On("UpdateTransaction", mock.Anything, "txn_1", mock.MatchedBy(func(p domain.TransactionPatch) bool {
		cf := p.CodedFields
		// Explicit null must arrive as present-but-null, not as absent.
		return cf.AccountingCode.Set && !cf.AccountingCode.Valid
	})).Return(updated, nil).Once()

	body := bytes.NewBufferString(`{"codedFields":{"accountingCode":null}}`)
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/transactions/txn_1", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_NotFound() {
	suite.mockTxnService.On("UpdateTransaction", mock.Anything, "txn_missing", mock.AnythingOfType("domain.TransactionPatch")).
		Return(nil, apperrors.ErrNotFound).Once()

	body := bytes.NewBufferString(`{"codedFields":{"memo":"x"}}`)
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/transactions/txn_missing", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_MalformedBody() {
	body := bytes.NewBufferString(`{"codedFields":{"memo":42}}`)
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/transactions/txn_1", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTxnService.AssertNotCalled(suite.T(), "UpdateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

// --- Run Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
