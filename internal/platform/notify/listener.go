package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Channel names the database triggers publish on. Any write to the watched
// tables fires a notification, including writes from other clients and the
// external sync job, so the projection observes remote mutation too.
const (
	TransactionsChannel  = "rla_transactions"
	ConfigurationChannel = "rla_configuration"
)

// Event is one change notification from the database.
type Event struct {
	Channel string
	Payload string
}

// Listener holds a dedicated connection in LISTEN mode and fans incoming
// notifications out to subscribers. It does not reconnect: when the watch
// breaks, every subscriber channel is closed and consumers settle into their
// terminal state (spec'd as loading-finished rather than hanging).
type Listener struct {
	pool     *pgxpool.Pool
	logger   *slog.Logger
	channels []string

	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	closed bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewListener creates a listener for the given notification channels.
func NewListener(pool *pgxpool.Pool, logger *slog.Logger, channels ...string) *Listener {
	return &Listener{
		pool:     pool,
		logger:   logger,
		channels: channels,
		subs:     make(map[int]chan Event),
		done:     make(chan struct{}),
	}
}

// Start acquires a dedicated connection, issues LISTEN for every channel and
// spawns the dispatch loop. Call it once, after consumers have subscribed, so
// the first notification already has somewhere to go.
func (l *Listener) Start(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listen connection: %w", err)
	}

	for _, ch := range l.channels {
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ch}.Sanitize()); err != nil {
			conn.Release()
			return fmt.Errorf("failed to listen on %s: %w", ch, err)
		}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	go l.run(runCtx, conn)
	return nil
}

func (l *Listener) run(ctx context.Context, conn *pgxpool.Conn) {
	defer close(l.done)
	defer conn.Release()
	defer l.closeSubscribers()

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() == nil {
				l.logger.Error("Change notification watch failed", slog.String("error", err.Error()))
			}
			return
		}
		l.dispatch(Event{Channel: notification.Channel, Payload: notification.Payload})
	}
}

func (l *Listener) dispatch(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ch := range l.subs {
		// Non-blocking with drop-oldest: events only signal "reload", so a
		// slow consumer can safely coalesce them.
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

// Subscribe registers a consumer. The returned disposer releases the
// subscription; the channel is closed on dispose or listener shutdown.
func (l *Listener) Subscribe() (<-chan Event, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(chan Event, 1)
	if l.closed {
		close(ch)
		return ch, func() {}
	}

	id := l.nextID
	l.nextID++
	l.subs[id] = ch

	return ch, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if sub, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(sub)
		}
	}
}

func (l *Listener) closeSubscribers() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	for id, ch := range l.subs {
		delete(l.subs, id)
		close(ch)
	}
}

// Close stops the watch and closes all subscriber channels.
func (l *Listener) Close() {
	if l.cancel == nil {
		l.closeSubscribers()
		return
	}
	l.cancel()
	<-l.done
}
