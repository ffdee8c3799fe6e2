package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/ramplink/ramp_link_app/internal/core/domain"
	portssvc "github.com/ramplink/ramp_link_app/internal/core/ports/services"
	"github.com/ramplink/ramp_link_app/internal/core/services"
	"github.com/ramplink/ramp_link_app/internal/platform/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

// --- Mock TransactionReader ---
type MockTransactionReader struct {
	mock.Mock
}

func (m *MockTransactionReader) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) FindTransactionByID(ctx context.Context, txnID string) (*domain.Transaction, error) {
	args := m.Called(ctx, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Test Suite ---
type ProjectionServiceTestSuite struct {
	suite.Suite
	mockReader *MockTransactionReader
	events     chan notify.Event
	service    portssvc.ProjectionSvcFacade
}

func (suite *ProjectionServiceTestSuite) SetupTest() {
	suite.mockReader = new(MockTransactionReader)
	suite.events = make(chan notify.Event)
	suite.service = nil
}

func (suite *ProjectionServiceTestSuite) TearDownTest() {
	if suite.service != nil {
		suite.service.Close()
	}
}

func (suite *ProjectionServiceTestSuite) start() {
	suite.service = services.NewProjectionService(suite.mockReader, suite.events, slog.Default())
}

func (suite *ProjectionServiceTestSuite) waitLoaded() {
	suite.Require().Eventually(func() bool {
		return !suite.service.Snapshot().Loading
	}, waitFor, tick, "projection never finished loading")
}

// --- Test Cases ---

func (suite *ProjectionServiceTestSuite) TestInitialLoad() {
	txns := []domain.Transaction{
		{TxnID: "txn_a", Date: "2025-06-01T00:00:00Z"},
		{TxnID: "txn_b", Date: "2025-07-01T00:00:00Z"},
	}
	suite.mockReader.On("ListTransactions", mock.Anything).Return(txns, nil)

	suite.start()
	suite.waitLoaded()

	snap := suite.service.Snapshot()
	suite.Require().Len(snap.Transactions, 2)
	suite.Equal("txn_b", snap.Transactions[0].TxnID, "newest first")
	suite.Equal("txn_a", snap.Transactions[1].TxnID)
}

func (suite *ProjectionServiceTestSuite) TestSubscribeGetsCurrentSnapshotImmediately() {
	suite.mockReader.On("ListTransactions", mock.Anything).Return([]domain.Transaction{{TxnID: "txn_a"}}, nil)

	suite.start()
	suite.waitLoaded()

	ch, dispose := suite.service.Subscribe()
	defer dispose()

	select {
	case snap := <-ch:
		suite.False(snap.Loading)
		suite.Len(snap.Transactions, 1)
	case <-time.After(waitFor):
		suite.FailNow("no primed snapshot delivered")
	}
}

func (suite *ProjectionServiceTestSuite) TestChangeEventTriggersReload() {
	first := []domain.Transaction{{TxnID: "txn_a"}}
	second := []domain.Transaction{{TxnID: "txn_a"}, {TxnID: "txn_b"}}
	suite.mockReader.On("ListTransactions", mock.Anything).Return(first, nil).Once()
	suite.mockReader.On("ListTransactions", mock.Anything).Return(second, nil)

	suite.start()
	suite.waitLoaded()

	suite.events <- notify.Event{Channel: notify.TransactionsChannel}

	suite.Require().Eventually(func() bool {
		return len(suite.service.Snapshot().Transactions) == 2
	}, waitFor, tick, "reload after change event never landed")
}

func (suite *ProjectionServiceTestSuite) TestInitialLoadErrorFinishesLoadingEmpty() {
	suite.mockReader.On("ListTransactions", mock.Anything).Return(nil, assert.AnError)

	suite.start()
	suite.waitLoaded()

	snap := suite.service.Snapshot()
	suite.Empty(snap.Transactions)
	suite.NotNil(snap.Transactions)
}

func (suite *ProjectionServiceTestSuite) TestReloadErrorKeepsPreviousSnapshot() {
	suite.mockReader.On("ListTransactions", mock.Anything).Return([]domain.Transaction{{TxnID: "txn_a"}}, nil).Once()
	suite.mockReader.On("ListTransactions", mock.Anything).Return(nil, assert.AnError)

	suite.start()
	suite.waitLoaded()

	suite.events <- notify.Event{Channel: notify.TransactionsChannel}

	suite.Require().Never(func() bool {
		return len(suite.service.Snapshot().Transactions) != 1
	}, 100*time.Millisecond, tick, "failed reload must not drop the previous snapshot")
}

func (suite *ProjectionServiceTestSuite) TestClosedEventsChannelFinishesLoading() {
	suite.mockReader.On("ListTransactions", mock.Anything).Return([]domain.Transaction{}, nil)

	suite.start()
	close(suite.events)
	suite.events = nil

	suite.Require().Eventually(func() bool {
		return !suite.service.Snapshot().Loading
	}, waitFor, tick)

	suite.service.Close()
	suite.service = nil
}

func (suite *ProjectionServiceTestSuite) TestUnsubscribeStopsDelivery() {
	suite.mockReader.On("ListTransactions", mock.Anything).Return([]domain.Transaction{}, nil)

	suite.start()
	suite.waitLoaded()

	ch, dispose := suite.service.Subscribe()
	dispose()

	_, open := <-ch
	suite.False(open, "disposed subscription channel must be closed")
}

func (suite *ProjectionServiceTestSuite) TestCloseClosesSubscribers() {
	suite.mockReader.On("ListTransactions", mock.Anything).Return([]domain.Transaction{}, nil)

	suite.start()
	suite.waitLoaded()

	ch, _ := suite.service.Subscribe()
	<-ch // drain the primed snapshot

	suite.service.Close()
	suite.service = nil

	select {
	case _, open := <-ch:
		suite.False(open)
	case <-time.After(waitFor):
		suite.FailNow("subscriber channel not closed on shutdown")
	}
}

// --- Run Suite ---
func TestProjectionService(t *testing.T) {
	suite.Run(t, new(ProjectionServiceTestSuite))
}
