package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ramplink/ramp_link_app/internal/core/domain"
	portsrepo "github.com/ramplink/ramp_link_app/internal/core/ports/repositories"
	portssvc "github.com/ramplink/ramp_link_app/internal/core/ports/services"
	"github.com/ramplink/ramp_link_app/internal/platform/notify"
)

// projectionService mirrors the remote transaction collection into an
// ordered in-memory list. Every change event triggers a full reload and a
// full replacement snapshot to subscribers; there are no incremental diffs,
// so last remote write simply wins and no merge logic exists client-side.
type projectionService struct {
	repo   portsrepo.TransactionReader
	logger *slog.Logger

	mu      sync.RWMutex
	txns    []domain.Transaction
	loading bool
	subs    map[int]chan portssvc.ProjectionSnapshot
	nextID  int
	closed  bool

	quit     chan struct{}
	done     chan struct{}
	quitOnce sync.Once
}

// NewProjectionService starts the projection: an initial full load followed
// by a reload per change event. The events channel normally comes from a
// notify.Listener subscription; when it closes (watch failure or shutdown)
// the projection settles into its final state instead of retrying.
func NewProjectionService(repo portsrepo.TransactionReader, events <-chan notify.Event, logger *slog.Logger) portssvc.ProjectionSvcFacade {
	s := &projectionService{
		repo:    repo,
		logger:  logger,
		txns:    []domain.Transaction{},
		loading: true,
		subs:    make(map[int]chan portssvc.ProjectionSnapshot),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.run(events)
	return s
}

var _ portssvc.ProjectionSvcFacade = (*projectionService)(nil)

func (s *projectionService) run(events <-chan notify.Event) {
	defer close(s.done)
	defer s.closeSubscribers()

	s.refresh(true)

	for {
		select {
		case <-s.quit:
			return
		case _, ok := <-events:
			if !ok {
				// Watch is gone; make sure nobody is left hanging on a
				// loading state. No automatic retry.
				s.finishLoading()
				return
			}
			s.refresh(false)
		}
	}
}

// refresh reloads the whole collection, re-derives every status through the
// domain mapping and broadcasts a replacement snapshot. An initial-load
// failure surfaces as loading-finished-and-empty; a later failure keeps the
// previous snapshot (the next change event reloads again).
func (s *projectionService) refresh(initial bool) {
	txns, err := s.repo.ListTransactions(context.Background())
	if err != nil {
		s.logger.Error("Failed to refresh transaction projection", slog.String("error", err.Error()))
		if initial {
			s.finishLoading()
		}
		return
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	domain.SortTransactions(txns)

	s.mu.Lock()
	s.txns = txns
	s.loading = false
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.broadcast(snap)
}

func (s *projectionService) finishLoading() {
	s.mu.Lock()
	s.loading = false
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.broadcast(snap)
}

// Snapshot returns the current state without subscribing.
func (s *projectionService) Snapshot() portssvc.ProjectionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *projectionService) snapshotLocked() portssvc.ProjectionSnapshot {
	txns := make([]domain.Transaction, len(s.txns))
	copy(txns, s.txns)
	return portssvc.ProjectionSnapshot{Transactions: txns, Loading: s.loading}
}

// Subscribe registers a consumer and primes its channel with the current
// snapshot. The disposer releases the subscription and closes the channel.
func (s *projectionService) Subscribe() (<-chan portssvc.ProjectionSnapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan portssvc.ProjectionSnapshot, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	ch <- s.snapshotLocked()

	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

// broadcast delivers a full snapshot to every subscriber without blocking:
// a stale undelivered snapshot is replaced by the newer one, which is
// lossless because each emission is a complete replacement.
func (s *projectionService) broadcast(snap portssvc.ProjectionSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (s *projectionService) closeSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// Close tears down the projection and closes all subscriber channels.
func (s *projectionService) Close() {
	s.quitOnce.Do(func() { close(s.quit) })
	<-s.done
}
