// Package notifier delivers outbound notifications for new contact messages.
package notifier

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/folio-hub/folio-server/internal/metrics"
	"github.com/folio-hub/folio-server/internal/models"
)

// Notifier is the interface for a notification channel.
type Notifier interface {
	// Name returns the notifier name (e.g., "email").
	Name() string
	// Send delivers a notification for a contact message.
	Send(ctx context.Context, msg *models.ContactMessage) error
	// Close releases any resources.
	Close() error
}

// DefaultQueueSize bounds the dispatch queue.
const DefaultQueueSize = 64

// defaultSendTimeout caps a single delivery attempt.
const defaultSendTimeout = 30 * time.Second

// Dispatcher queues contact messages and delivers them in the background.
// Delivery failure is logged and never surfaced to the submitting client.
type Dispatcher struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier

	queue   chan *models.ContactMessage
	limiter *rate.Limiter
	done    chan struct{}

	closeOnce sync.Once
}

// NewDispatcher creates a dispatcher with a bounded queue and starts its worker.
// maxPerMinute limits outbound deliveries; zero or negative disables limiting.
func NewDispatcher(queueSize, maxPerMinute int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	var limiter *rate.Limiter
	if maxPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), maxPerMinute)
	}

	d := &Dispatcher{
		notifiers: make(map[string]Notifier),
		queue:     make(chan *models.ContactMessage, queueSize),
		limiter:   limiter,
		done:      make(chan struct{}),
	}

	go d.run()

	return d
}

// Register adds a notifier to the dispatcher.
func (d *Dispatcher) Register(n Notifier) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifiers[n.Name()] = n
}

// Unregister removes a notifier from the dispatcher.
func (d *Dispatcher) Unregister(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.notifiers, name)
}

// Get returns a notifier by name.
func (d *Dispatcher) Get(name string) (Notifier, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n, ok := d.notifiers[name]
	return n, ok
}

// Enqueue queues a message for background delivery without blocking.
// A full queue drops the message with a log line; the caller's request
// succeeds either way.
func (d *Dispatcher) Enqueue(msg *models.ContactMessage) {
	select {
	case d.queue <- msg:
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
	default:
		metrics.NotificationsDroppedTotal.Inc()
		log.Printf("notifier: queue full, dropping notification for message %s", msg.ID)
	}
}

// run is the dispatch loop. It exits once the queue is closed and drained.
func (d *Dispatcher) run() {
	defer close(d.done)

	for msg := range d.queue {
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))

		if d.limiter != nil && !d.limiter.Allow() {
			metrics.NotificationsDroppedTotal.Inc()
			log.Printf("notifier: rate limited, dropping notification for message %s", msg.ID)
			continue
		}

		d.dispatch(msg)
	}
}

// dispatch sends one message to every registered notifier.
func (d *Dispatcher) dispatch(msg *models.ContactMessage) {
	d.mu.RLock()
	targets := make([]Notifier, 0, len(d.notifiers))
	for _, n := range d.notifiers {
		targets = append(targets, n)
	}
	d.mu.RUnlock()

	for _, n := range targets {
		ctx, cancel := context.WithTimeout(context.Background(), defaultSendTimeout)
		err := n.Send(ctx, msg)
		cancel()

		if err != nil {
			metrics.NotificationErrorsTotal.Inc()
			log.Printf("notifier: %s delivery failed for message %s: %v", n.Name(), msg.ID, err)
			continue
		}
		metrics.NotificationsSentTotal.Inc()
	}
}

// Close stops accepting messages, waits for the queue to drain up to the
// given timeout, and closes all registered notifiers.
func (d *Dispatcher) Close(timeout time.Duration) error {
	d.closeOnce.Do(func() {
		close(d.queue)
	})

	select {
	case <-d.done:
	case <-time.After(timeout):
		log.Printf("notifier: shutdown timeout, %d notifications unsent", len(d.queue))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var firstErr error
	for name, n := range d.notifiers {
		if err := n.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(d.notifiers, name)
	}
	return firstErr
}
